package ml

type Classifier interface {
	PredictClass(features []float64) (int, error)
}

type Regressor interface {
	PredictValue(features []float64) (float64, error)
}

// Transformer applies pre-fit scaling parameters to a single row.
type Transformer interface {
	Transform(features []float64) ([]float64, error)
}
