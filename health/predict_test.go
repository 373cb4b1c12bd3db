package health

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"healthmetrics/ml"
)

type fakeClassifier struct {
	label int
	err   error
	calls int
	seen  []float64
}

func (f *fakeClassifier) PredictClass(features []float64) (int, error) {
	f.calls++
	f.seen = append([]float64(nil), features...)
	return f.label, f.err
}

type fakeRegressor struct {
	value float64
	err   error
	calls int
	seen  []float64
}

func (f *fakeRegressor) PredictValue(features []float64) (float64, error) {
	f.calls++
	f.seen = append([]float64(nil), features...)
	return f.value, f.err
}

// fakeScaler doubles every column so the regressor input is distinguishable.
type fakeScaler struct {
	calls int
	seen  []float64
}

func (f *fakeScaler) Transform(features []float64) ([]float64, error) {
	f.calls++
	f.seen = append([]float64(nil), features...)
	out := make([]float64, len(features))
	for i, v := range features {
		out[i] = v * 2
	}
	return out, nil
}

type failingScaler struct{}

func (failingScaler) Transform([]float64) ([]float64, error) {
	return nil, errors.New("column count mismatch")
}

type panickyClassifier struct{}

func (panickyClassifier) PredictClass([]float64) (int, error) {
	panic("corrupt model")
}

func TestPredictBMIFeatureOrder(t *testing.T) {
	classifier := &fakeClassifier{label: 1}
	bundle := ml.NewBundle(classifier, nil, nil)

	result, err := PredictBMI(bundle, BMIInput{Gender: Male, HeightCm: 180, WeightKg: 75})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []float64{1, 180, 75}; !reflect.DeepEqual(classifier.seen, want) {
		t.Fatalf("expected features %v, got %v", want, classifier.seen)
	}
	if result.Category != NormalWeight {
		t.Fatalf("expected %q, got %q", NormalWeight, result.Category)
	}
}

func TestGenderEncoding(t *testing.T) {
	for _, height := range []float64{100, 155.5, 250} {
		male := BMIFeatureVector(BMIInput{Gender: Male, HeightCm: height, WeightKg: 60})
		female := BMIFeatureVector(BMIInput{Gender: Female, HeightCm: height, WeightKg: 60})
		if male[0] != 1 || female[0] != 0 {
			t.Fatalf("unexpected gender encoding: male=%v female=%v", male[0], female[0])
		}
	}
}

func TestPredictBMICategories(t *testing.T) {
	tests := []struct {
		label int
		want  BMICategory
	}{
		{0, Underweight},
		{1, NormalWeight},
		{2, Overweight},
		{3, Obese},
		{4, UnknownBMI},
		{-1, UnknownBMI},
	}
	for _, tt := range tests {
		bundle := ml.NewBundle(&fakeClassifier{label: tt.label}, nil, nil)
		result, err := PredictBMI(bundle, DefaultBMIInput())
		if err != nil {
			t.Fatalf("label %d: unexpected error: %v", tt.label, err)
		}
		if result.Category != tt.want {
			t.Errorf("label %d: expected %q, got %q", tt.label, tt.want, result.Category)
		}
	}
}

func TestPredictBMIModelUnavailable(t *testing.T) {
	regressor := &fakeRegressor{}
	scaler := &fakeScaler{}
	bundle := ml.NewBundle(nil, regressor, scaler)

	_, err := PredictBMI(bundle, DefaultBMIInput())
	if !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
	if regressor.calls != 0 || scaler.calls != 0 {
		t.Fatal("expected no inference calls")
	}

	if _, err := PredictBMI(nil, DefaultBMIInput()); !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable for nil bundle, got %v", err)
	}
}

func TestPredictBMIInvalidInput(t *testing.T) {
	classifier := &fakeClassifier{}
	bundle := ml.NewBundle(classifier, nil, nil)

	_, err := PredictBMI(bundle, BMIInput{Gender: Female, HeightCm: 99, WeightKg: 70})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "height" {
		t.Fatalf("expected height validation error, got %v", err)
	}
	if classifier.calls != 0 {
		t.Fatal("expected classifier not to be called")
	}

	if _, err := PredictBMI(bundle, BMIInput{Gender: "Other", HeightCm: 170, WeightKg: 70}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for gender, got %v", err)
	}
}

func TestPredictBMIInferenceFailure(t *testing.T) {
	cause := errors.New("backend exploded")
	bundle := ml.NewBundle(&fakeClassifier{err: cause}, nil, nil)

	_, err := PredictBMI(bundle, DefaultBMIInput())
	if !errors.Is(err, ErrInference) || !errors.Is(err, cause) {
		t.Fatalf("expected inference error wrapping cause, got %v", err)
	}
	var ierr *InferenceError
	if !errors.As(err, &ierr) || ierr.Model != "bmi classifier" {
		t.Fatalf("expected InferenceError, got %v", err)
	}

	bundle = ml.NewBundle(panickyClassifier{}, nil, nil)
	if _, err := PredictBMI(bundle, DefaultBMIInput()); !errors.Is(err, ErrInference) {
		t.Fatalf("expected panic to become inference error, got %v", err)
	}
}

func TestBodyFatFeatureVector(t *testing.T) {
	inputs := []BodyFatInput{
		DefaultBodyFatInput(),
		{Age: 99, Weight: 199, Height: 249, Neck: 59, Chest: 149, Abdomen: 149, Hip: 149, Thigh: 99, Knee: 59, Ankle: 39, Biceps: 49, Forearm: 39, Wrist: 29},
	}
	for _, in := range inputs {
		vector := BodyFatFeatureVector(in)
		if len(vector) != len(BodyFatFeatureNames) {
			t.Fatalf("expected %d features, got %d", len(BodyFatFeatureNames), len(vector))
		}
		if vector[0] != 0 {
			t.Fatalf("expected density placeholder 0, got %v", vector[0])
		}
		if !reflect.DeepEqual(vector[1:], in.Values()) {
			t.Fatalf("expected measurements after density, got %v", vector)
		}
	}
}

func TestPredictBodyFatDefaults(t *testing.T) {
	scaler := &fakeScaler{}
	regressor := &fakeRegressor{value: 16.4}
	bundle := ml.NewBundle(nil, regressor, scaler)

	result, err := PredictBodyFat(bundle, DefaultBodyFatInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []float64{0, 30, 70, 170, 35, 90, 85, 95, 55, 35, 22, 30, 25, 17}
	if !reflect.DeepEqual(scaler.seen, want) {
		t.Fatalf("expected scaler input %v, got %v", want, scaler.seen)
	}
	if len(regressor.seen) != len(want) || regressor.seen[1] != 60 {
		t.Fatalf("expected regressor to receive scaled row, got %v", regressor.seen)
	}
	if result.Percent != 16.4 || result.Band != Fitness {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestPredictBodyFatModelUnavailable(t *testing.T) {
	regressor := &fakeRegressor{}
	tests := []*ml.Bundle{
		ml.NewBundle(&fakeClassifier{}, regressor, nil),
		ml.NewBundle(&fakeClassifier{}, nil, &fakeScaler{}),
		nil,
	}
	for i, bundle := range tests {
		if _, err := PredictBodyFat(bundle, DefaultBodyFatInput()); !errors.Is(err, ErrModelUnavailable) {
			t.Fatalf("case %d: expected ErrModelUnavailable, got %v", i, err)
		}
	}
	if regressor.calls != 0 {
		t.Fatal("expected regressor not to be called")
	}
}

func TestPredictBodyFatScalerFailure(t *testing.T) {
	regressor := &fakeRegressor{value: 15}
	bundle := ml.NewBundle(nil, regressor, failingScaler{})

	_, err := PredictBodyFat(bundle, DefaultBodyFatInput())
	if !errors.Is(err, ErrInference) {
		t.Fatalf("expected ErrInference, got %v", err)
	}
	var ierr *InferenceError
	if !errors.As(err, &ierr) || ierr.Model != "body fat scaler" {
		t.Fatalf("expected scaler inference error, got %v", err)
	}
	if regressor.calls != 0 {
		t.Fatalf("expected regressor not to be called, got %d calls", regressor.calls)
	}
}

func TestPredictBodyFatNonFinite(t *testing.T) {
	bundle := ml.NewBundle(nil, &fakeRegressor{value: math.NaN()}, &fakeScaler{})
	if _, err := PredictBodyFat(bundle, DefaultBodyFatInput()); !errors.Is(err, ErrInference) {
		t.Fatalf("expected ErrInference, got %v", err)
	}
}

func TestPredictBodyFatInvalidInput(t *testing.T) {
	in := DefaultBodyFatInput()
	in.Wrist = 31
	bundle := ml.NewBundle(nil, &fakeRegressor{}, &fakeScaler{})

	_, err := PredictBodyFat(bundle, in)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "wrist" {
		t.Fatalf("expected wrist validation error, got %v", err)
	}
}

func TestInterpretBodyFatBoundaries(t *testing.T) {
	tests := []struct {
		percent float64
		want    BodyFatBand
	}{
		{-3, BelowEssential},
		{5.9, BelowEssential},
		{6.0, Athletic},
		{13.99, Athletic},
		{14.0, Fitness},
		{17.99, Fitness},
		{18.0, Acceptable},
		{24.99, Acceptable},
		{25.0, AboveRecommended},
		{60, AboveRecommended},
	}
	for _, tt := range tests {
		if got := InterpretBodyFat(tt.percent); got != tt.want {
			t.Errorf("percent %v: expected %s, got %s", tt.percent, tt.want.Name, got.Name)
		}
	}
}

func TestPredictWithLoadedArtifacts(t *testing.T) {
	tree, err := ml.NewDecisionTree([]ml.TreeNode{
		{FeatureIdx: 2, Threshold: 80, LeftChild: 1, RightChild: 2},
		{IsLeaf: true, ClassLabel: 1},
		{IsLeaf: true, ClassLabel: 3},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	coefficients := make([]float64, ml.BodyFatFeatureWidth)
	coefficients[6] = 1
	linear, err := ml.NewLinearRegressor(coefficients, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mean := make([]float64, ml.BodyFatFeatureWidth)
	scale := make([]float64, ml.BodyFatFeatureWidth)
	mean[6], scale[6] = 85, 5
	scaler, err := ml.NewStandardScaler(mean, scale)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bundle := ml.NewBundle(tree, linear, scaler)

	bmi, err := PredictBMI(bundle, BMIInput{Gender: Female, HeightCm: 165, WeightKg: 95})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bmi.Category != Obese {
		t.Fatalf("expected Obese, got %q", bmi.Category)
	}

	in := DefaultBodyFatInput()
	in.Abdomen = 110
	bodyFat, err := PredictBodyFat(bundle, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(bodyFat.Percent-25) > 1e-9 || bodyFat.Band != AboveRecommended {
		t.Fatalf("unexpected body fat result: %+v", bodyFat)
	}
}
