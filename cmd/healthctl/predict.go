package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"healthmetrics/health"
)

// NewPredictCmd creates the predict command group.
func NewPredictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run a single prediction",
	}
	cmd.AddCommand(newPredictBMICmd())
	cmd.AddCommand(newPredictBodyFatCmd())
	return cmd
}

func newPredictBMICmd() *cobra.Command {
	defaults := health.DefaultBMIInput()
	cmd := &cobra.Command{
		Use:   "bmi",
		Short: "Predict the BMI category from gender, height and weight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetString("gender")
			gender, err := health.ParseGender(raw)
			if err != nil {
				return err
			}
			height, _ := cmd.Flags().GetFloat64(health.HeightField.Key)
			weight, _ := cmd.Flags().GetFloat64(health.WeightField.Key)

			bundle, _, loadErr := loadBundle(cmd)
			result, err := health.PredictBMI(bundle, health.BMIInput{Gender: gender, HeightCm: height, WeightKg: weight})
			if err != nil {
				return withLoadError(err, loadErr)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "BMI Category: %s\n", result.Category)
			return nil
		},
	}

	cmd.Flags().String("gender", string(defaults.Gender), "Male or Female")
	addFieldFlag(cmd, health.HeightField, defaults.HeightCm)
	addFieldFlag(cmd, health.WeightField, defaults.WeightKg)
	return cmd
}

func newPredictBodyFatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bodyfat",
		Short: "Predict the body fat percentage from body measurements",
		Long: `Predict the body fat percentage from age, weight, height and ten
circumference measurements. Omitted measurements use the form defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]float64, len(health.BodyFatFields))
			for i, field := range health.BodyFatFields {
				values[i], _ = cmd.Flags().GetFloat64(field.Key)
			}
			in, err := health.BodyFatInputFromValues(values)
			if err != nil {
				return err
			}

			bundle, _, loadErr := loadBundle(cmd)
			result, err := health.PredictBodyFat(bundle, in)
			if err != nil {
				return withLoadError(err, loadErr)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Predicted Body Fat Percentage: %.2f%%\n", result.Percent)
			fmt.Fprintf(out, "%s: %s\n", result.Band.Name, result.Band.Message)
			return nil
		},
	}

	for _, field := range health.BodyFatFields {
		addFieldFlag(cmd, field, field.Default)
	}
	return cmd
}

func addFieldFlag(cmd *cobra.Command, field health.Field, value float64) {
	cmd.Flags().Float64(field.Key, value, fmt.Sprintf("%s, %g to %g", field.Label, field.Min, field.Max))
}

// withLoadError attaches the artifact load failure to an unavailable-model error.
func withLoadError(err, loadErr error) error {
	if loadErr == nil {
		return err
	}
	return fmt.Errorf("%w (%v)", err, loadErr)
}
