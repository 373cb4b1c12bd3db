package health

type BMICategory string

const (
	Underweight  BMICategory = "Underweight"
	NormalWeight BMICategory = "Normal Weight"
	Overweight   BMICategory = "Overweight"
	Obese        BMICategory = "Obese"
	UnknownBMI   BMICategory = "Unknown"
)

var bmiCategories = map[int]BMICategory{
	0: Underweight,
	1: NormalWeight,
	2: Overweight,
	3: Obese,
}

// CategoryForLabel never fails; labels outside the table map to Unknown.
func CategoryForLabel(label int) BMICategory {
	if category, ok := bmiCategories[label]; ok {
		return category
	}
	return UnknownBMI
}

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
)

type BodyFatBand struct {
	Name     string   `json:"name"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

var (
	BelowEssential   = BodyFatBand{Name: "BelowEssential", Severity: SeverityWarning, Message: "Body fat percentage is below essential fat levels"}
	Athletic         = BodyFatBand{Name: "Athletic", Severity: SeveritySuccess, Message: "Athletic range"}
	Fitness          = BodyFatBand{Name: "Fitness", Severity: SeveritySuccess, Message: "Fitness range"}
	Acceptable       = BodyFatBand{Name: "Acceptable", Severity: SeveritySuccess, Message: "Acceptable range"}
	AboveRecommended = BodyFatBand{Name: "AboveRecommended", Severity: SeverityWarning, Message: "Body fat percentage is above recommended levels"}
)

var bodyFatThresholds = []struct {
	below float64
	band  BodyFatBand
}{
	{6, BelowEssential},
	{14, Athletic},
	{18, Fitness},
	{25, Acceptable},
}

// InterpretBodyFat walks the thresholds top-down; each band includes its
// lower edge and excludes its upper one.
func InterpretBodyFat(percent float64) BodyFatBand {
	for _, t := range bodyFatThresholds {
		if percent < t.below {
			return t.band
		}
	}
	return AboveRecommended
}
