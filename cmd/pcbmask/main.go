// Command pcbmask restructures PcbDraw SVG renders so their masking can be
// reproduced in tools that do not honor SVG mask semantics: it captures the
// named mask subtrees, strips the masking references, and reinserts the
// masks as plain groups or exports each one as a standalone file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pcbmask/internal/config"
	"pcbmask/internal/engine"
	"pcbmask/internal/inkscape"
)

var (
	// Global flags
	verbose bool
	cfgPath string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pcbmask",
	Short: "pcbmask - isolate and export PcbDraw SVG masks",
	Long: `pcbmask captures the hole and pad masks of a PcbDraw SVG render,
strips the masking references the document carries, and either grafts the
masks back in as ordinary groups (convert) or exports each mask as its own
standalone SVG (extract).

Inputs lacking the svg namespace alias are normalized in place with
Inkscape before processing.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to a pcbmask config file (yaml)")
}

// engineOptions assembles engine options from the config file, environment
// and flags.
func engineOptions() (engine.Options, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return engine.Options{}, err
	}
	return engine.Options{
		Logger: logger,
		Normalizer: &inkscape.Normalizer{
			Bin:  cfg.Normalizer.Bin,
			Args: cfg.Normalizer.Args,
		},
		Indent: cfg.Output.Indent,
		Clean:  cfg.Output.Clean,
	}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
