package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"healthmetrics/health"
)

// NewNotesCmd creates the notes command.
func NewNotesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notes",
		Short: "Print the BMI categories and body fat guidelines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			notes := health.GetNotes()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "BMI Categories:")
			for _, cutoff := range notes.BMICutoffs {
				fmt.Fprintf(out, "  %s: %s\n", cutoff.Category, cutoff.Range)
			}
			fmt.Fprintln(out, "Body Fat Percentage Guidelines:")
			for _, g := range notes.BodyFatGuidelines {
				fmt.Fprintf(out, "  %s (Men): %s, (Women): %s\n", g.Band, g.Men, g.Women)
			}
			fmt.Fprintln(out, notes.Disclaimer)
			return nil
		},
	}
}
