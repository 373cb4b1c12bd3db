package ml

import (
	"encoding/json"
	"fmt"
)

const (
	KindDecisionTree = "decision_tree"
	KindLinear       = "linear"
	KindStandard     = "standard"
	KindMinMax       = "minmax"
)

type artifact struct {
	Kind         string     `json:"kind"`
	FeatureNames []string   `json:"feature_names,omitempty"`
	Nodes        []TreeNode `json:"nodes,omitempty"`
	Coefficients []float64  `json:"coefficients,omitempty"`
	Intercept    float64    `json:"intercept,omitempty"`
	Mean         []float64  `json:"mean,omitempty"`
	Min          []float64  `json:"min,omitempty"`
	Scale        []float64  `json:"scale,omitempty"`
}

func parseArtifact(payload []byte, width int) (*artifact, error) {
	var a artifact
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if a.Kind == "" {
		return nil, fmt.Errorf("artifact has no kind")
	}
	if len(a.FeatureNames) > 0 && len(a.FeatureNames) != width {
		return nil, fmt.Errorf("artifact declares %d feature names, want %d", len(a.FeatureNames), width)
	}
	return &a, nil
}

func DecodeClassifier(payload []byte, width int) (Classifier, error) {
	a, err := parseArtifact(payload, width)
	if err != nil {
		return nil, err
	}
	switch a.Kind {
	case KindDecisionTree:
		return decodeTree(a, width)
	default:
		return nil, fmt.Errorf("unsupported classifier kind %q", a.Kind)
	}
}

func DecodeRegressor(payload []byte, width int) (Regressor, error) {
	a, err := parseArtifact(payload, width)
	if err != nil {
		return nil, err
	}
	switch a.Kind {
	case KindDecisionTree:
		return decodeTree(a, width)
	case KindLinear:
		model, err := NewLinearRegressor(a.Coefficients, a.Intercept)
		if err != nil {
			return nil, err
		}
		if model.Width() != width {
			return nil, fmt.Errorf("linear model has %d coefficients, want %d", model.Width(), width)
		}
		return model, nil
	default:
		return nil, fmt.Errorf("unsupported regressor kind %q", a.Kind)
	}
}

func DecodeTransformer(payload []byte, width int) (Transformer, error) {
	a, err := parseArtifact(payload, width)
	if err != nil {
		return nil, err
	}
	var (
		scaler interface {
			Transformer
			Width() int
		}
		buildErr error
	)
	switch a.Kind {
	case KindStandard:
		scaler, buildErr = NewStandardScaler(a.Mean, a.Scale)
	case KindMinMax:
		scaler, buildErr = NewMinMaxScaler(a.Min, a.Scale)
	default:
		return nil, fmt.Errorf("unsupported scaler kind %q", a.Kind)
	}
	if buildErr != nil {
		return nil, buildErr
	}
	if scaler.Width() != width {
		return nil, fmt.Errorf("scaler has %d columns, want %d", scaler.Width(), width)
	}
	return scaler, nil
}

func decodeTree(a *artifact, width int) (*DecisionTree, error) {
	tree, err := NewDecisionTree(a.Nodes)
	if err != nil {
		return nil, err
	}
	if tree.MaxFeatureIdx() >= width {
		return nil, fmt.Errorf("tree splits on feature %d, vector width is %d", tree.MaxFeatureIdx(), width)
	}
	return tree, nil
}
