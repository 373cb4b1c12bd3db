package health

type BMICutoff struct {
	Category BMICategory `json:"category"`
	Range    string      `json:"range"`
}

type BodyFatGuideline struct {
	Band  string `json:"band"`
	Men   string `json:"men"`
	Women string `json:"women"`
}

type Notes struct {
	BMICutoffs        []BMICutoff        `json:"bmi_cutoffs"`
	BodyFatGuidelines []BodyFatGuideline `json:"body_fat_guidelines"`
	Disclaimer        string             `json:"disclaimer"`
}

func GetNotes() Notes {
	return Notes{
		BMICutoffs: []BMICutoff{
			{Category: Underweight, Range: "< 18.5"},
			{Category: NormalWeight, Range: "18.5 - 24.9"},
			{Category: Overweight, Range: "25 - 29.9"},
			{Category: Obese, Range: "≥ 30"},
		},
		BodyFatGuidelines: []BodyFatGuideline{
			{Band: "Essential Fat", Men: "2-5%", Women: "10-13%"},
			{Band: "Athletes", Men: "6-13%", Women: "14-20%"},
			{Band: "Fitness", Men: "14-17%", Women: "21-24%"},
			{Band: "Acceptable", Men: "18-24%", Women: "25-31%"},
		},
		Disclaimer: "These predictions are estimates and should not replace professional medical advice",
	}
}
