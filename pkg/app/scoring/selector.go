package scoring

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/NeuralTrust/TrustScan/pkg/app/rules"
	domain "github.com/NeuralTrust/TrustScan/pkg/domain/errors"
	"github.com/NeuralTrust/TrustScan/pkg/domain/feature"
	"github.com/NeuralTrust/TrustScan/pkg/domain/model"
	"github.com/sirupsen/logrus"
)

type Status struct {
	Mode            Mode
	ModelConfigured bool
	ModelLoaded     bool
	Degraded        bool
	Metadata        *model.Metadata
	Reason          string
}

//go:generate mockery --name=Selector --dir=. --output=./mocks --filename=selector_mock.go --case=underscore --with-expecter
type Selector interface {
	Scorer
	Status() Status
}

type SelectorOption func(*selector)

// WithArtifact serves scores from a loaded model.
func WithArtifact(artifact model.Artifact) SelectorOption {
	return func(s *selector) {
		if artifact == nil {
			return
		}
		meta := artifact.Metadata()
		s.model = NewModelScorer(artifact)
		s.meta = &meta
		s.configured = true
	}
}

// WithLoadError records that a model was configured but could not be loaded.
func WithLoadError(err error) SelectorOption {
	return func(s *selector) {
		if err == nil {
			return
		}
		s.configured = true
		s.reason = err.Error()
	}
}

// WithFaultHook is called once when the model scorer faults.
func WithFaultHook(hook func(err error)) SelectorOption {
	return func(s *selector) {
		s.onFault = hook
	}
}

type selector struct {
	logger     *logrus.Logger
	model      Scorer
	meta       *model.Metadata
	rules      Scorer
	configured bool
	faulted    atomic.Bool
	onFault    func(err error)

	mu     sync.RWMutex
	reason string
}

// NewSelector scores with the model while it is healthy and with rules otherwise.
// A scorer fault disables the model for the lifetime of the selector.
func NewSelector(logger *logrus.Logger, ruleSet *rules.Set, opts ...SelectorOption) Selector {
	s := &selector{
		logger: logger,
		rules:  NewRuleScorer(ruleSet),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *selector) Score(ctx context.Context, vec feature.Vector) (*Assessment, error) {
	if s.model != nil && !s.faulted.Load() {
		assessment, err := s.model.Score(ctx, vec)
		if err == nil {
			return assessment, nil
		}
		s.fault(err)
	}
	return s.rules.Score(ctx, vec)
}

func (s *selector) fault(err error) {
	if !errors.Is(err, domain.ErrScorerFault) {
		s.logger.WithError(err).Warn("model scorer unavailable, using rules for this request")
		return
	}
	if !s.faulted.CompareAndSwap(false, true) {
		return
	}
	s.mu.Lock()
	s.reason = err.Error()
	s.mu.Unlock()

	fields := logrus.Fields{}
	if s.meta != nil {
		fields["model"] = s.meta.Name
	}
	s.logger.WithError(err).WithFields(fields).Error("model scorer faulted, switching to rule-based scoring")
	if s.onFault != nil {
		s.onFault(err)
	}
}

func (s *selector) Status() Status {
	s.mu.RLock()
	reason := s.reason
	s.mu.RUnlock()

	loaded := s.model != nil && !s.faulted.Load()
	status := Status{
		Mode:            ModeRules,
		ModelConfigured: s.configured,
		ModelLoaded:     loaded,
		Degraded:        s.configured && !loaded,
		Metadata:        s.meta,
		Reason:          reason,
	}
	if loaded {
		status.Mode = ModeModel
	}
	return status
}
