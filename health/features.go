package health

import "healthmetrics/ml"

var BMIFeatureNames = [ml.BMIFeatureWidth]string{"Gender", "Height", "Weight"}

var BodyFatFeatureNames = [ml.BodyFatFeatureWidth]string{
	"Density", "Age", "Weight", "Height", "Neck", "Chest", "Abdomen",
	"Hip", "Thigh", "Knee", "Ankle", "Biceps", "Forearm", "Wrist",
}

// DensityPlaceholder fills the Density column. The models were fit with a
// density column that users cannot measure, so it is always sent as 0.
const DensityPlaceholder = 0.0

func BMIFeatureVector(in BMIInput) []float64 {
	return []float64{in.Gender.Encode(), in.HeightCm, in.WeightKg}
}

func BodyFatFeatureVector(in BodyFatInput) []float64 {
	vector := make([]float64, 0, ml.BodyFatFeatureWidth)
	vector = append(vector, DensityPlaceholder)
	return append(vector, in.Values()...)
}
