package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Sensitivity levels biasing the decision threshold.
const (
	SensitivityLow    = "low"
	SensitivityMedium = "medium"
	SensitivityHigh   = "high"
)

var (
	ErrEmptyQuery         = errors.New("query must not be empty")
	ErrInvalidSensitivity = errors.New("sensitivity must be one of: low, medium, high")
	ErrInvalidLanguage    = errors.New("language must be an ISO language tag")
)

// languagePattern accepts two-letter primary subtags with an optional region,
// e.g. "en", "ru", "pt-BR".
var languagePattern = regexp.MustCompile(`^[a-z]{2}(-[a-zA-Z]{2})?$`)

type QueryAnalysisRequest struct {
	// Query is the user query to analyze
	Query string `json:"query"`

	// Context carries optional advisory hints (topic, domain, ...). It is
	// passed through to the analyzer verbatim and never validated.
	Context map[string]string `json:"context,omitempty"`

	// Sensitivity is low, medium, or high; defaults to medium when absent
	Sensitivity string `json:"sensitivity,omitempty"`

	// Language of the query; defaults to "en" when absent
	Language string `json:"language,omitempty"`
}

// Normalize validates the request and applies defaults. Sensitivity and
// language default only when absent; a present-but-invalid value is an error.
func (r *QueryAnalysisRequest) Normalize() error {
	if strings.TrimSpace(r.Query) == "" {
		return ErrEmptyQuery
	}
	switch r.Sensitivity {
	case "":
		r.Sensitivity = SensitivityMedium
	case SensitivityLow, SensitivityMedium, SensitivityHigh:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSensitivity, r.Sensitivity)
	}
	if r.Language == "" {
		r.Language = "en"
	} else if !languagePattern.MatchString(r.Language) {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, r.Language)
	}
	return nil
}

type BatchAnalysisRequest struct {
	// Queries to analyze; results are returned index-aligned
	Queries []QueryAnalysisRequest `json:"queries"`
}
