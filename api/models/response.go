package models

// WebSearchAnalysis is the validated decision produced for a single query.
// Once returned it is treated as immutable; reasoning and triggers carry
// enough context to audit the decision without re-running the analysis.
type WebSearchAnalysis struct {
	// Whether the query requires a web search before generation
	NeedsWebSearch bool `json:"needs_web_search"`

	// Confidence in the decision, always within [0.0, 1.0]
	Confidence float64 `json:"confidence"`

	// Taxonomy triggers that influenced the decision
	Triggers []Trigger `json:"triggers"`

	// Human-auditable justification for the decision
	Reasoning string `json:"reasoning"`

	// Up to three refined search queries; empty when no search is needed
	SuggestedQueries []string `json:"suggested_queries"`

	// Optional mitigation when search is unnecessary
	AlternativeApproach string `json:"alternative_approach,omitempty"`
}

// Item error kinds recorded for failed batch slots.
const (
	ItemErrorInvalid   = "invalid"
	ItemErrorCancelled = "cancelled"
	ItemErrorInternal  = "internal"
)

// ItemError records a batch-slot-local failure. It never aborts the batch.
type ItemError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// BatchResult is one slot of a batch response: exactly one of Analysis or
// Error is set.
type BatchResult struct {
	Analysis *WebSearchAnalysis `json:"analysis,omitempty"`
	Error    *ItemError         `json:"error,omitempty"`
}

type BatchAnalysisResponse struct {
	// Results index-aligned with the request queries
	Results []BatchResult `json:"results"`

	TotalAnalyzed int `json:"total_analyzed"`
	SuccessCount  int `json:"success_count"`
	ErrorCount    int `json:"error_count"`
}

// TriggerInfo describes one taxonomy entry for the triggers endpoint.
type TriggerInfo struct {
	Value       Trigger `json:"value"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
}

type TriggersResponse struct {
	Triggers []TriggerInfo `json:"triggers"`
	Total    int           `json:"total"`
}

type HealthResponse struct {
	Status            string `json:"status"`
	Service           string `json:"service"`
	LLMAvailable      bool   `json:"llm_available"`
	FallbackAvailable bool   `json:"fallback_available"`
}
