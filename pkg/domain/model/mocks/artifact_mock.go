package mocks

import (
	"github.com/NeuralTrust/TrustScan/pkg/domain/model"
	"github.com/stretchr/testify/mock"
)

type Artifact struct {
	mock.Mock
}

func (m *Artifact) Metadata() model.Metadata {
	args := m.Called()
	meta, _ := args.Get(0).(model.Metadata) //nolint:errcheck
	return meta
}

func (m *Artifact) Predict(x []float64) (*model.Prediction, error) {
	args := m.Called(x)
	pred, _ := args.Get(0).(*model.Prediction) //nolint:errcheck
	return pred, args.Error(1)
}
