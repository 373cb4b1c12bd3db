package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

// NewModelsCmd creates the models command.
func NewModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "Show which model artifacts load from the model directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, dir, loadErr := loadBundle(cmd)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "source: %s\n", dir)
			for _, status := range bundle.Status() {
				state := "missing"
				if status.Loaded {
					state = "loaded"
				}
				fmt.Fprintf(out, "  %-22s %s\n", status.Name, state)
			}
			for _, err := range multierr.Errors(loadErr) {
				fmt.Fprintf(out, "error: %v\n", err)
			}
			if loadErr != nil {
				return fmt.Errorf("%d model artifact(s) failed to load", len(multierr.Errors(loadErr)))
			}
			return nil
		},
	}
}
