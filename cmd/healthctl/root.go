package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"healthmetrics/config"
	"healthmetrics/ml"
)

// NewRootCmd creates the root command for healthctl.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "healthctl",
		Short: "Run BMI and body fat predictions from the command line",
		Long: `healthctl loads the same model artifacts as the web service and runs
BMI category and body fat percentage predictions without starting a server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("model-dir", config.DefaultModelDir, "Directory containing the model artifacts")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewPredictCmd())
	cmd.AddCommand(NewModelsCmd())
	cmd.AddCommand(NewNotesCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadBundle loads the artifacts named by --model-dir. The bundle is never
// nil; the error describes every artifact that failed.
func loadBundle(cmd *cobra.Command) (*ml.Bundle, string, error) {
	dir, err := cmd.Flags().GetString("model-dir")
	if err != nil {
		return nil, "", err
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, "", err
	}

	logger := zap.NewNop()
	if verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return nil, "", err
		}
		defer logger.Sync()
	}

	bundle, err := ml.NewLoader(dir, logger).Load()
	return bundle, dir, err
}
