package response

import "time"

type ModelInfo struct {
	Loaded       bool     `json:"loaded"`
	Mode         string   `json:"mode"`
	Degraded     bool     `json:"degraded"`
	ModelName    string   `json:"model_name"`
	Version      string   `json:"version,omitempty"`
	Kind         string   `json:"kind,omitempty"`
	F1Score      *float64 `json:"f1_score"`
	Accuracy     *float64 `json:"accuracy"`
	AUC          *float64 `json:"auc"`
	TrainedOn    string   `json:"trained_on,omitempty"`
	NFeatures    int      `json:"n_features"`
	FeatureNames []string `json:"feature_names"`
	Reason       string   `json:"reason,omitempty"`
}

type Health struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	ModelName   string `json:"model_name,omitempty"`
	Mode        string `json:"mode"`
	Version     string `json:"version"`
	Time        string `json:"time"`
}

const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
