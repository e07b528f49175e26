package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pcbmask/internal/engine"
)

var extractKeepUnmasked bool

// extractCmd exports each captured mask as a standalone SVG.
var extractCmd = &cobra.Command{
	Use:   "extract <input.svg> <outdir>",
	Short: "Export each PcbDraw mask as a standalone SVG",
	Args:  cobra.ExactArgs(2),
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().BoolVar(&extractKeepUnmasked, "keep-unmasked", false,
		"Also write a <name>_no_masked.svg copy before isolating the board")
}

func runExtract(cmd *cobra.Command, args []string) error {
	input, outDir := args[0], args[1]
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("input file: %w", err)
	}

	opts, err := engineOptions()
	if err != nil {
		return err
	}
	sess, err := engine.Load(cmd.Context(), input, opts)
	if err != nil {
		return err
	}
	if err := sess.CaptureMasks(); err != nil {
		return err
	}

	if extractKeepUnmasked {
		if err := sess.StripMasks(); err != nil {
			return err
		}
		path, err := sess.SaveUnmasked(outDir)
		if err != nil {
			return err
		}
		logger.Info("wrote unmasked copy", zap.String("path", path))
		if err := sess.IsolateBoard(); err != nil {
			return err
		}
	} else {
		if err := sess.IsolateBoard(); err != nil {
			return err
		}
		if err := sess.StripMasks(); err != nil {
			return err
		}
	}

	if err := sess.SaveMaskFiles(outDir); err != nil {
		return err
	}
	logger.Info("extracted masks",
		zap.String("input", input),
		zap.String("outdir", outDir),
		zap.Int("masks", len(sess.MaskNames())))
	return nil
}
