package model

type Kind string

const (
	KindLinear       Kind = "linear"
	KindTreeEnsemble Kind = "tree_ensemble"
)

type Metrics struct {
	F1       float64 `json:"f1" mapstructure:"f1"`
	Accuracy float64 `json:"accuracy" mapstructure:"accuracy"`
	AUC      float64 `json:"auc" mapstructure:"auc"`
}

// Metadata describes a trained classifier. Name is reported verbatim in verdicts.
type Metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Kind         Kind     `json:"kind"`
	FeatureNames []string `json:"feature_names"`
	Metrics      Metrics  `json:"metrics"`
	TrainedOn    string   `json:"trained_on"`
}

// Prediction is additive: Baseline plus the sum of Contributions equals Raw.
type Prediction struct {
	Raw           float64
	Baseline      float64
	Contributions []float64
	Probability   float64
}

//go:generate mockery --name=Artifact --dir=. --output=./mocks --filename=artifact_mock.go --case=underscore --with-expecter
type Artifact interface {
	Metadata() Metadata
	// Predict expects inputs in Metadata().FeatureNames order.
	Predict(x []float64) (*Prediction, error)
}

type Loader interface {
	Load(path string) (Artifact, error)
}
