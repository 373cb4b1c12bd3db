package ml

import (
	"errors"
	"fmt"
)

// StandardScaler computes (x - mean) / scale per column. A zero scale is
// treated as 1, matching how constant columns are fit.
type StandardScaler struct {
	mean  []float64
	scale []float64
}

func NewStandardScaler(mean, scale []float64) (*StandardScaler, error) {
	if len(mean) == 0 {
		return nil, errors.New("standard scaler has no columns")
	}
	if len(mean) != len(scale) {
		return nil, errors.New("mean/scale length mismatch")
	}
	return &StandardScaler{
		mean:  append([]float64(nil), mean...),
		scale: append([]float64(nil), scale...),
	}, nil
}

func (s *StandardScaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(s.mean) {
		return nil, fmt.Errorf("expected %d features, got %d", len(s.mean), len(features))
	}
	result := make([]float64, len(features))
	for i, value := range features {
		scale := s.scale[i]
		if scale == 0 {
			scale = 1
		}
		result[i] = (value - s.mean[i]) / scale
	}
	return result, nil
}

func (s *StandardScaler) Width() int {
	return len(s.mean)
}

// MinMaxScaler computes x*scale + min per column, where scale and min were
// derived from the training range.
type MinMaxScaler struct {
	min   []float64
	scale []float64
}

func NewMinMaxScaler(min, scale []float64) (*MinMaxScaler, error) {
	if len(min) == 0 {
		return nil, errors.New("minmax scaler has no columns")
	}
	if len(min) != len(scale) {
		return nil, errors.New("min/scale length mismatch")
	}
	return &MinMaxScaler{
		min:   append([]float64(nil), min...),
		scale: append([]float64(nil), scale...),
	}, nil
}

func (s *MinMaxScaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(s.min) {
		return nil, fmt.Errorf("expected %d features, got %d", len(s.min), len(features))
	}
	result := make([]float64, len(features))
	for i, value := range features {
		result[i] = value*s.scale[i] + s.min[i]
	}
	return result, nil
}

func (s *MinMaxScaler) Width() int {
	return len(s.min)
}
