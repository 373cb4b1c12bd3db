package health

import (
	"fmt"
	"math"
	"strings"
)

type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

// ParseGender accepts "male"/"female" in any case.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return Male, nil
	case "female":
		return Female, nil
	default:
		return "", fmt.Errorf("%w: unknown gender %q", ErrInvalidInput, s)
	}
}

// Encode returns the numeric code the classifier was trained with.
func (g Gender) Encode() float64 {
	if g == Male {
		return 1
	}
	return 0
}

// Field describes one numeric form input.
type Field struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
	Step    float64 `json:"step"`
	Integer bool    `json:"integer,omitempty"`
}

func (f Field) check(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < f.Min || value > f.Max {
		return &ValidationError{Field: f.Key, Value: value, Min: f.Min, Max: f.Max}
	}
	if f.Integer && value != math.Trunc(value) {
		return fmt.Errorf("%w: %s must be a whole number, got %g", ErrInvalidInput, f.Key, value)
	}
	return nil
}

var (
	HeightField = Field{Key: "height", Label: "Height (cm)", Min: 100, Max: 250, Default: 170, Step: 0.1}
	WeightField = Field{Key: "weight", Label: "Weight (kg)", Min: 30, Max: 200, Default: 70, Step: 0.1}
)

type BMIInput struct {
	Gender   Gender  `json:"gender"`
	HeightCm float64 `json:"height"`
	WeightKg float64 `json:"weight"`
}

func DefaultBMIInput() BMIInput {
	return BMIInput{Gender: Male, HeightCm: HeightField.Default, WeightKg: WeightField.Default}
}

func (in BMIInput) Validate() error {
	if in.Gender != Male && in.Gender != Female {
		return fmt.Errorf("%w: unknown gender %q", ErrInvalidInput, in.Gender)
	}
	if err := HeightField.check(in.HeightCm); err != nil {
		return err
	}
	return WeightField.check(in.WeightKg)
}

// BodyFatFields lists the user-entered body-fat inputs in feature order
// (Density excluded).
var BodyFatFields = []Field{
	{Key: "age", Label: "Age", Min: 18, Max: 100, Default: 30, Step: 1, Integer: true},
	WeightField,
	HeightField,
	{Key: "neck", Label: "Neck Circumference (cm)", Min: 20, Max: 60, Default: 35, Step: 0.1},
	{Key: "chest", Label: "Chest Circumference (cm)", Min: 60, Max: 150, Default: 90, Step: 0.1},
	{Key: "abdomen", Label: "Abdomen Circumference (cm)", Min: 60, Max: 150, Default: 85, Step: 0.1},
	{Key: "hip", Label: "Hip Circumference (cm)", Min: 60, Max: 150, Default: 95, Step: 0.1},
	{Key: "thigh", Label: "Thigh Circumference (cm)", Min: 30, Max: 100, Default: 55, Step: 0.1},
	{Key: "knee", Label: "Knee Circumference (cm)", Min: 20, Max: 60, Default: 35, Step: 0.1},
	{Key: "ankle", Label: "Ankle Circumference (cm)", Min: 15, Max: 40, Default: 22, Step: 0.1},
	{Key: "biceps", Label: "Biceps Circumference (cm)", Min: 20, Max: 50, Default: 30, Step: 0.1},
	{Key: "forearm", Label: "Forearm Circumference (cm)", Min: 15, Max: 40, Default: 25, Step: 0.1},
	{Key: "wrist", Label: "Wrist Circumference (cm)", Min: 10, Max: 30, Default: 17, Step: 0.1},
}

type BodyFatInput struct {
	Age     float64 `json:"age"`
	Weight  float64 `json:"weight"`
	Height  float64 `json:"height"`
	Neck    float64 `json:"neck"`
	Chest   float64 `json:"chest"`
	Abdomen float64 `json:"abdomen"`
	Hip     float64 `json:"hip"`
	Thigh   float64 `json:"thigh"`
	Knee    float64 `json:"knee"`
	Ankle   float64 `json:"ankle"`
	Biceps  float64 `json:"biceps"`
	Forearm float64 `json:"forearm"`
	Wrist   float64 `json:"wrist"`
}

func DefaultBodyFatInput() BodyFatInput {
	var in BodyFatInput
	values := make([]float64, len(BodyFatFields))
	for i, f := range BodyFatFields {
		values[i] = f.Default
	}
	in.assign(values)
	return in
}

// Values returns the user-entered measurements in BodyFatFields order.
func (in BodyFatInput) Values() []float64 {
	return []float64{
		in.Age, in.Weight, in.Height, in.Neck, in.Chest, in.Abdomen, in.Hip,
		in.Thigh, in.Knee, in.Ankle, in.Biceps, in.Forearm, in.Wrist,
	}
}

// BodyFatInputFromValues is the inverse of Values.
func BodyFatInputFromValues(values []float64) (BodyFatInput, error) {
	var in BodyFatInput
	if len(values) != len(BodyFatFields) {
		return in, fmt.Errorf("%w: expected %d measurements, got %d", ErrInvalidInput, len(BodyFatFields), len(values))
	}
	in.assign(values)
	return in, nil
}

func (in *BodyFatInput) assign(v []float64) {
	in.Age, in.Weight, in.Height, in.Neck, in.Chest, in.Abdomen, in.Hip = v[0], v[1], v[2], v[3], v[4], v[5], v[6]
	in.Thigh, in.Knee, in.Ankle, in.Biceps, in.Forearm, in.Wrist = v[7], v[8], v[9], v[10], v[11], v[12]
}

func (in BodyFatInput) Validate() error {
	for i, value := range in.Values() {
		if err := BodyFatFields[i].check(value); err != nil {
			return err
		}
	}
	return nil
}
