package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	domain "github.com/NeuralTrust/TrustScan/pkg/domain/errors"
	"github.com/NeuralTrust/TrustScan/pkg/domain/feature"
	"github.com/NeuralTrust/TrustScan/pkg/domain/model"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
)

type envelope struct {
	model.Metadata
	Params map[string]interface{} `json:"params"`
}

type builder func(meta model.Metadata, params map[string]interface{}) (model.Artifact, error)

var builders = map[model.Kind]builder{
	model.KindLinear:       newLinear,
	model.KindTreeEnsemble: newTreeEnsemble,
}

type fileLoader struct {
	logger *logrus.Logger
}

func NewFileLoader(logger *logrus.Logger) model.Loader {
	return &fileLoader{logger: logger}
}

func (l *fileLoader) Load(path string) (model.Artifact, error) {
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrModelUnavailable, err)
	}
	artifact, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	meta := artifact.Metadata()
	l.logger.WithFields(logrus.Fields{
		"model":    meta.Name,
		"version":  meta.Version,
		"kind":     meta.Kind,
		"features": len(meta.FeatureNames),
		"f1":       meta.Metrics.F1,
	}).Info("model artifact loaded")
	return artifact, nil
}

// Parse decodes an artifact hand-off document.
func Parse(raw []byte) (model.Artifact, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: corrupt artifact: %v", domain.ErrModelUnavailable, err)
	}
	if err := validateMetadata(env.Metadata); err != nil {
		return nil, err
	}
	build, ok := builders[env.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported kind %q", domain.ErrIncompatibleArtifact, env.Kind)
	}
	return build(env.Metadata, env.Params)
}

func validateMetadata(meta model.Metadata) error {
	if meta.Name == "" {
		return fmt.Errorf("%w: missing model name", domain.ErrIncompatibleArtifact)
	}
	if len(meta.FeatureNames) == 0 {
		return fmt.Errorf("%w: missing feature names", domain.ErrIncompatibleArtifact)
	}
	seen := make(map[string]struct{}, len(meta.FeatureNames))
	for _, name := range meta.FeatureNames {
		if _, ok := feature.Lookup(name); !ok {
			return fmt.Errorf("%w: feature %q is not produced by the extractor", domain.ErrIncompatibleArtifact, name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate feature %q", domain.ErrIncompatibleArtifact, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func decodeParams(params map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(params); err != nil {
		return fmt.Errorf("%w: invalid params: %v", domain.ErrIncompatibleArtifact, err)
	}
	return nil
}
