package ml

import (
	"errors"
	"fmt"
)

type LinearRegressor struct {
	coefficients []float64
	intercept    float64
}

func NewLinearRegressor(coefficients []float64, intercept float64) (*LinearRegressor, error) {
	if len(coefficients) == 0 {
		return nil, errors.New("linear model has no coefficients")
	}
	return &LinearRegressor{
		coefficients: append([]float64(nil), coefficients...),
		intercept:    intercept,
	}, nil
}

func (lr *LinearRegressor) PredictValue(features []float64) (float64, error) {
	if len(features) != len(lr.coefficients) {
		return 0, fmt.Errorf("expected %d features, got %d", len(lr.coefficients), len(features))
	}
	sum := lr.intercept
	for i, coef := range lr.coefficients {
		sum += coef * features[i]
	}
	return sum, nil
}

func (lr *LinearRegressor) Width() int {
	return len(lr.coefficients)
}
