package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pcbmask/internal/engine"
)

// convertCmd rebuilds a render with its masks inlined as plain groups.
var convertCmd = &cobra.Command{
	Use:   "convert <input.svg> <output.svg>",
	Short: "Inline the PcbDraw masks as plain groups in a single SVG",
	Args:  cobra.ExactArgs(2),
	RunE:  runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]
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
	if err := sess.StripMasks(); err != nil {
		return err
	}
	if err := sess.AddMaskPatterns(); err != nil {
		return err
	}
	if err := sess.Save(output); err != nil {
		return err
	}
	logger.Info("converted masks",
		zap.String("input", input),
		zap.String("output", output))
	return nil
}
