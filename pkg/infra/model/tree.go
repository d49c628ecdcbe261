package model

import (
	"fmt"

	domain "github.com/NeuralTrust/TrustScan/pkg/domain/errors"
	"github.com/NeuralTrust/TrustScan/pkg/domain/model"
)

const (
	outputLogit       = "logit"
	outputProbability = "probability"
)

// nodeSpec values are the expected output of the subtree rooted at the node.
// Inputs less than or equal to Threshold go left.
type nodeSpec struct {
	Feature   int     `mapstructure:"feature"`
	Threshold float64 `mapstructure:"threshold"`
	Left      int     `mapstructure:"left"`
	Right     int     `mapstructure:"right"`
	Value     float64 `mapstructure:"value"`
	Leaf      bool    `mapstructure:"leaf"`
}

type treeSpec struct {
	Nodes []nodeSpec `mapstructure:"nodes"`
}

type treeParams struct {
	BaseScore float64    `mapstructure:"base_score"`
	Output    string     `mapstructure:"output"`
	Trees     []treeSpec `mapstructure:"trees"`
}

// treeEnsemble covers boosted (logit output, summed) and bagged (probability
// output, averaged) forests. Attributions follow the decision path of each tree.
type treeEnsemble struct {
	meta   model.Metadata
	params treeParams
}

func newTreeEnsemble(meta model.Metadata, raw map[string]interface{}) (model.Artifact, error) {
	var p treeParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	if p.Output == "" {
		p.Output = outputLogit
	}
	if p.Output != outputLogit && p.Output != outputProbability {
		return nil, fmt.Errorf("%w: unknown output %q", domain.ErrIncompatibleArtifact, p.Output)
	}
	if len(p.Trees) == 0 {
		return nil, fmt.Errorf("%w: ensemble has no trees", domain.ErrIncompatibleArtifact)
	}
	n := len(meta.FeatureNames)
	for t, tree := range p.Trees {
		if err := validateTree(tree, n); err != nil {
			return nil, fmt.Errorf("%w: tree %d: %v", domain.ErrIncompatibleArtifact, t, err)
		}
	}
	return &treeEnsemble{meta: meta, params: p}, nil
}

// validateTree requires children to sit after their parent, which rules out cycles.
func validateTree(tree treeSpec, features int) error {
	if len(tree.Nodes) == 0 {
		return fmt.Errorf("empty tree")
	}
	for i, node := range tree.Nodes {
		if node.Leaf {
			continue
		}
		if node.Feature < 0 || node.Feature >= features {
			return fmt.Errorf("node %d: feature index %d out of range", i, node.Feature)
		}
		for _, child := range []int{node.Left, node.Right} {
			if child <= i || child >= len(tree.Nodes) {
				return fmt.Errorf("node %d: invalid child %d", i, child)
			}
		}
	}
	return nil
}

func (m *treeEnsemble) Metadata() model.Metadata {
	return m.meta
}

func (m *treeEnsemble) Predict(x []float64) (*model.Prediction, error) {
	if len(x) != len(m.meta.FeatureNames) {
		return nil, fmt.Errorf("expected %d inputs, got %d", len(m.meta.FeatureNames), len(x))
	}
	contributions := make([]float64, len(x))
	var leaves, roots float64
	for _, tree := range m.params.Trees {
		node := tree.Nodes[0]
		roots += node.Value
		for !node.Leaf {
			next := tree.Nodes[node.Right]
			if x[node.Feature] <= node.Threshold {
				next = tree.Nodes[node.Left]
			}
			contributions[node.Feature] += next.Value - node.Value
			node = next
		}
		leaves += node.Value
	}

	scale := 1.0
	if m.params.Output == outputProbability {
		scale = 1 / float64(len(m.params.Trees))
	}
	for i := range contributions {
		contributions[i] *= scale
	}
	pred := &model.Prediction{
		Raw:           m.params.BaseScore + leaves*scale,
		Baseline:      m.params.BaseScore + roots*scale,
		Contributions: contributions,
	}
	if m.params.Output == outputProbability {
		pred.Probability = clamp01(pred.Raw)
	} else {
		pred.Probability = sigmoid(pred.Raw)
	}
	return pred, nil
}
