package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/presenton/search-advisor/api/models"
	"github.com/presenton/search-advisor/internal/llm"
)

const (
	// Confidence assigned to fallback decisions. Lower than a typical
	// LLM-confirmed decision so consumers can tell the paths apart.
	fallbackConfidenceNeeded    = 0.6
	fallbackConfidenceNotNeeded = 0.4

	fallbackReasoning = "fallback: keyword-based decision"

	maxSuggestedQueries = 3

	defaultLLMTimeout       = 30 * time.Second
	defaultBatchConcurrency = 8
)

// errUnavailable collapses every provider-side failure (transport error,
// timeout, malformed response, invariant violation) into the single
// condition that routes to the fallback heuristic.
var errUnavailable = errors.New("analysis unavailable")

var sensitivityInstructions = map[string]string{
	models.SensitivityLow:    "Be conservative - only recommend web search for clearly time-sensitive queries with strong, unambiguous signals.",
	models.SensitivityMedium: "Balance between accuracy and efficiency - recommend web search for queries that likely need current information.",
	models.SensitivityHigh:   "Be liberal - recommend web search for most queries that could benefit from current information; a single weak signal suffices.",
}

var languageInstructions = map[string]string{
	"en": "Analyze English queries.",
	"ru": "Analyze Russian queries.",
	"es": "Analyze Spanish queries.",
	"fr": "Analyze French queries.",
	"de": "Analyze German queries.",
}

// Analyzer decides whether a query needs web-search augmentation. The LLM
// path produces the full calibrated decision; any failure there lands in the
// keyword fallback, so Analyze always returns a decision for a valid request.
type Analyzer struct {
	provider         llm.Provider
	heuristic        *Heuristic
	llmTimeout       time.Duration
	batchConcurrency int
}

type Option func(*Analyzer)

func WithLLMTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		if d > 0 {
			a.llmTimeout = d
		}
	}
}

func WithBatchConcurrency(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.batchConcurrency = n
		}
	}
}

func New(provider llm.Provider, opts ...Option) *Analyzer {
	a := &Analyzer{
		provider:         provider,
		heuristic:        NewHeuristic(),
		llmTimeout:       defaultLLMTimeout,
		batchConcurrency: defaultBatchConcurrency,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze validates the request and produces a decision. The only possible
// error is an invalid request; provider failure is absorbed by the fallback.
func (a *Analyzer) Analyze(ctx context.Context, req models.QueryAnalysisRequest) (models.WebSearchAnalysis, error) {
	if err := req.Normalize(); err != nil {
		return models.WebSearchAnalysis{}, err
	}
	return a.analyze(ctx, req), nil
}

func (a *Analyzer) analyze(ctx context.Context, req models.QueryAnalysisRequest) (analysis models.WebSearchAnalysis) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("analysis panicked, using fallback", "query", req.Query, "panic", r)
			analysis = a.fallback(req)
		}
	}()

	analysis, err := a.analyzeWithLLM(ctx, req)
	if err != nil {
		slog.Warn("LLM analysis unavailable, using fallback", "query", req.Query, "error", err)
		return a.fallback(req)
	}
	return analysis
}

func (a *Analyzer) analyzeWithLLM(ctx context.Context, req models.QueryAnalysisRequest) (models.WebSearchAnalysis, error) {
	cctx, cancel := context.WithTimeout(ctx, a.llmTimeout)
	defer cancel()

	raw, usage, err := a.provider.StructuredComplete(cctx, systemPrompt(req.Sensitivity, req.Language), userPrompt(req), analysisSchema)
	if err != nil {
		return models.WebSearchAnalysis{}, fmt.Errorf("%w: %v", errUnavailable, err)
	}
	slog.Debug("LLM analysis completed", "query", req.Query, "tokens", usage.TotalTokens)

	analysis, err := parseAnalysis(raw)
	if err != nil {
		return models.WebSearchAnalysis{}, fmt.Errorf("%w: %v", errUnavailable, err)
	}
	return analysis, nil
}

// parseAnalysis validates the raw LLM output against the decision model.
// Anything missing, out of range, or outside the taxonomy rejects the whole
// response rather than being silently coerced.
func parseAnalysis(raw json.RawMessage) (models.WebSearchAnalysis, error) {
	var resp struct {
		NeedsWebSearch      *bool    `json:"needs_web_search"`
		Confidence          *float64 `json:"confidence"`
		Triggers            []string `json:"triggers"`
		Reasoning           string   `json:"reasoning"`
		SuggestedQueries    []string `json:"suggested_queries"`
		AlternativeApproach string   `json:"alternative_approach"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return models.WebSearchAnalysis{}, fmt.Errorf("malformed response: %w", err)
	}
	if resp.NeedsWebSearch == nil {
		return models.WebSearchAnalysis{}, errors.New("response missing needs_web_search")
	}
	if resp.Confidence == nil {
		return models.WebSearchAnalysis{}, errors.New("response missing confidence")
	}
	if strings.TrimSpace(resp.Reasoning) == "" {
		return models.WebSearchAnalysis{}, errors.New("response missing reasoning")
	}

	confidence := clamp(*resp.Confidence, 0, 1)

	triggers := make([]models.Trigger, 0, len(resp.Triggers))
	seen := make(map[models.Trigger]bool)
	for _, s := range resp.Triggers {
		t, ok := models.ParseTrigger(s)
		if !ok {
			slog.Warn("dropping unknown trigger", "trigger", s)
			continue
		}
		if !seen[t] {
			seen[t] = true
			triggers = append(triggers, t)
		}
	}

	needs := *resp.NeedsWebSearch
	if needs && len(triggers) == 0 && confidence < 0.5 {
		return models.WebSearchAnalysis{}, errors.New("positive decision without triggers or confidence")
	}

	suggested := resp.SuggestedQueries
	if !needs {
		suggested = nil
	} else if len(suggested) > maxSuggestedQueries {
		suggested = suggested[:maxSuggestedQueries]
	}
	if suggested == nil {
		suggested = []string{}
	}

	return models.WebSearchAnalysis{
		NeedsWebSearch:      needs,
		Confidence:          confidence,
		Triggers:            triggers,
		Reasoning:           resp.Reasoning,
		SuggestedQueries:    suggested,
		AlternativeApproach: resp.AlternativeApproach,
	}, nil
}

// fallback synthesizes a decision from the keyword heuristic. Triggers come
// from whichever keyword sets matched; suggested queries are always empty on
// this path.
func (a *Analyzer) fallback(req models.QueryAnalysisRequest) models.WebSearchAnalysis {
	match := a.heuristic.Match(req.Query, req.Language)
	needs := match.Count() >= requiredHits(req.Sensitivity)

	confidence := fallbackConfidenceNotNeeded
	if needs {
		confidence = fallbackConfidenceNeeded
	}

	triggers := match.Triggers()
	if triggers == nil {
		triggers = []models.Trigger{}
	}

	return models.WebSearchAnalysis{
		NeedsWebSearch:   needs,
		Confidence:       confidence,
		Triggers:         triggers,
		Reasoning:        fallbackReasoning,
		SuggestedQueries: []string{},
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
