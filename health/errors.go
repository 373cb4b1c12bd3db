package health

import (
	"errors"
	"fmt"
)

var (
	ErrModelUnavailable = errors.New("model unavailable")
	ErrInference        = errors.New("inference failed")
	ErrInvalidInput     = errors.New("invalid input")
)

// ValidationError reports a single field outside its accepted range.
type ValidationError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s must be between %g and %g, got %g", ErrInvalidInput, e.Field, e.Min, e.Max, e.Value)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// InferenceError wraps a failure raised by a model or scaler.
type InferenceError struct {
	Model string
	Err   error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrInference, e.Model, e.Err)
}

func (e *InferenceError) Unwrap() []error {
	return []error{ErrInference, e.Err}
}

func unavailable(model string) error {
	return fmt.Errorf("%w: %s not loaded", ErrModelUnavailable, model)
}
