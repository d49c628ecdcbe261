package request

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type PredictRequest struct {
	URL                   string `json:"url"`
	IncludeDomainFeatures bool   `json:"include_domain_features"`
}

func (r *PredictRequest) Validate(maxLength int) error {
	return validateURL(r.URL, maxLength)
}

type BatchPredictRequest struct {
	URLs                  []string `json:"urls"`
	IncludeDomainFeatures bool     `json:"include_domain_features"`
}

// Validate only checks the list itself; bad entries are reported per item.
func (r *BatchPredictRequest) Validate() error {
	if len(r.URLs) == 0 {
		return fmt.Errorf("urls is required")
	}
	return nil
}

func validateURL(raw string, maxLength int) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fmt.Errorf("url is required")
	}
	if maxLength > 0 && utf8.RuneCountInString(trimmed) > maxLength {
		return fmt.Errorf("url exceeds the maximum length of %d characters", maxLength)
	}
	return nil
}

// ValidateFeaturesQuery checks the url query parameter of the features endpoint.
func ValidateFeaturesQuery(raw string, maxLength int) error {
	return validateURL(raw, maxLength)
}
