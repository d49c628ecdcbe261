package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEnrichmentUnavailable = errors.New("domain enrichment unavailable")
	ErrModelUnavailable      = errors.New("model artifact unavailable")
	ErrScorerFault           = errors.New("scorer fault")
	ErrIncompatibleArtifact  = errors.New("incompatible model artifact")
	ErrEmptyBatch            = errors.New("batch contains no urls")
	ErrItemTimeout           = errors.New("scan did not finish before the batch deadline")
)

// InputError reports a URL that cannot be scanned at all.
type InputError struct {
	URL    string
	Reason string
}

func (e *InputError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("invalid url: %s", e.Reason)
	}
	return fmt.Sprintf("invalid url %q: %s", e.URL, e.Reason)
}

func NewInputError(url, reason string) error {
	return &InputError{URL: url, Reason: reason}
}

func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}

// ScorerFaultError carries the artifact that misbehaved.
type ScorerFaultError struct {
	Model string
	Cause error
}

func (e *ScorerFaultError) Error() string {
	return fmt.Sprintf("%s: model %s: %v", ErrScorerFault, e.Model, e.Cause)
}

func (e *ScorerFaultError) Unwrap() []error {
	return []error{ErrScorerFault, e.Cause}
}

func NewScorerFault(model string, cause error) error {
	return &ScorerFaultError{Model: model, Cause: cause}
}
