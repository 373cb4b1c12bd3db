package health

import (
	"fmt"
	"math"

	"healthmetrics/ml"
)

type BMIResult struct {
	Label    int         `json:"label"`
	Category BMICategory `json:"category"`
	Features []float64   `json:"features"`
}

type BodyFatResult struct {
	Percent  float64     `json:"percent"`
	Band     BodyFatBand `json:"band"`
	Features []float64   `json:"features"`
	Scaled   []float64   `json:"scaled"`
}

// PredictBMI classifies a gender/height/weight triple. A missing classifier is
// reported before any input handling, and no inference runs in that case.
func PredictBMI(bundle *ml.Bundle, in BMIInput) (BMIResult, error) {
	classifier := bundle.BMIClassifier()
	if classifier == nil {
		return BMIResult{}, unavailable("bmi classifier")
	}
	if err := in.Validate(); err != nil {
		return BMIResult{}, err
	}

	features := BMIFeatureVector(in)
	var label int
	err := invoke("bmi classifier", func() (err error) {
		label, err = classifier.PredictClass(features)
		return err
	})
	if err != nil {
		return BMIResult{}, err
	}
	return BMIResult{
		Label:    label,
		Category: CategoryForLabel(label),
		Features: features,
	}, nil
}

// PredictBodyFat scales the full 14-column row and then runs the regressor.
func PredictBodyFat(bundle *ml.Bundle, in BodyFatInput) (BodyFatResult, error) {
	regressor := bundle.BodyFatRegressor()
	scaler := bundle.BodyFatScaler()
	if regressor == nil || scaler == nil {
		return BodyFatResult{}, unavailable("body fat models")
	}
	if err := in.Validate(); err != nil {
		return BodyFatResult{}, err
	}

	features := BodyFatFeatureVector(in)
	var scaled []float64
	err := invoke("body fat scaler", func() (err error) {
		scaled, err = scaler.Transform(features)
		return err
	})
	if err != nil {
		return BodyFatResult{}, err
	}

	var percent float64
	err = invoke("body fat regressor", func() (err error) {
		percent, err = regressor.PredictValue(scaled)
		if err == nil && (math.IsNaN(percent) || math.IsInf(percent, 0)) {
			err = fmt.Errorf("non-finite prediction %v", percent)
		}
		return err
	})
	if err != nil {
		return BodyFatResult{}, err
	}
	return BodyFatResult{
		Percent:  percent,
		Band:     InterpretBodyFat(percent),
		Features: features,
		Scaled:   scaled,
	}, nil
}

// invoke runs a model call and turns both errors and panics into an
// InferenceError.
func invoke(model string, call func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &InferenceError{Model: model, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if callErr := call(); callErr != nil {
		return &InferenceError{Model: model, Err: callErr}
	}
	return nil
}
