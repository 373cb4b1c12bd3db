package ml

import (
	"errors"
	"fmt"
)

type DecisionTree struct {
	nodes []TreeNode
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	ClassLabel int     `json:"class_label"`
	Value      float64 `json:"value"`
	IsLeaf     bool    `json:"is_leaf"`
}

func NewDecisionTree(nodes []TreeNode) (*DecisionTree, error) {
	if len(nodes) == 0 {
		return nil, errors.New("decision tree has no nodes")
	}
	for i, node := range nodes {
		if node.IsLeaf {
			continue
		}
		if node.FeatureIdx < 0 {
			return nil, fmt.Errorf("node %d: negative feature index", i)
		}
		if node.LeftChild <= i || node.LeftChild >= len(nodes) ||
			node.RightChild <= i || node.RightChild >= len(nodes) {
			return nil, fmt.Errorf("node %d: child index out of range", i)
		}
	}
	return &DecisionTree{nodes: append([]TreeNode(nil), nodes...)}, nil
}

func (dt *DecisionTree) PredictClass(features []float64) (int, error) {
	leaf, err := dt.walk(features)
	if err != nil {
		return 0, err
	}
	return leaf.ClassLabel, nil
}

func (dt *DecisionTree) PredictValue(features []float64) (float64, error) {
	leaf, err := dt.walk(features)
	if err != nil {
		return 0, err
	}
	return leaf.Value, nil
}

// MaxFeatureIdx reports the highest column index any split reads, or -1 for a
// single-leaf tree.
func (dt *DecisionTree) MaxFeatureIdx() int {
	maxIdx := -1
	for _, node := range dt.nodes {
		if !node.IsLeaf && node.FeatureIdx > maxIdx {
			maxIdx = node.FeatureIdx
		}
	}
	return maxIdx
}

func (dt *DecisionTree) walk(features []float64) (TreeNode, error) {
	if dt == nil || len(dt.nodes) == 0 {
		return TreeNode{}, errors.New("model not loaded")
	}
	idx := 0
	// children always sit after their parent, so the walk terminates
	for {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node, nil
		}
		if node.FeatureIdx >= len(features) {
			return TreeNode{}, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}
