package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenton/search-advisor/api/models"
	"github.com/presenton/search-advisor/internal/llm"
)

// fakeProvider lets tests script the LLM transport.
type fakeProvider struct {
	respond func(system, user string) (json.RawMessage, error)
}

func (f *fakeProvider) StructuredComplete(ctx context.Context, system, user string, schema llm.ResponseSchema, opts ...llm.Option) (json.RawMessage, llm.Usage, error) {
	raw, err := f.respond(system, user)
	return raw, llm.Usage{TotalTokens: 42}, err
}

func failingProvider() *fakeProvider {
	return &fakeProvider{respond: func(system, user string) (json.RawMessage, error) {
		return nil, errors.New("connection refused")
	}}
}

func staticProvider(response string) *fakeProvider {
	return &fakeProvider{respond: func(system, user string) (json.RawMessage, error) {
		return json.RawMessage(response), nil
	}}
}

func panickingProvider() *fakeProvider {
	return &fakeProvider{respond: func(system, user string) (json.RawMessage, error) {
		panic("provider blew up")
	}}
}

func TestAnalyzeRejectsInvalidRequest(t *testing.T) {
	a := New(failingProvider())

	_, err := a.Analyze(context.Background(), models.QueryAnalysisRequest{Query: ""})
	assert.ErrorIs(t, err, models.ErrEmptyQuery)

	_, err = a.Analyze(context.Background(), models.QueryAnalysisRequest{Query: "q", Sensitivity: "maximum"})
	assert.ErrorIs(t, err, models.ErrInvalidSensitivity)

	_, err = a.Analyze(context.Background(), models.QueryAnalysisRequest{Query: "q", Language: "klingon"})
	assert.ErrorIs(t, err, models.ErrInvalidLanguage)
}

func TestAnalyzeFallsBackWhenProviderFails(t *testing.T) {
	a := New(failingProvider())

	analysis, err := a.Analyze(context.Background(), models.QueryAnalysisRequest{Query: "Latest AI trends in 2025"})
	require.NoError(t, err)

	assert.True(t, analysis.NeedsWebSearch)
	assert.Equal(t, fallbackConfidenceNeeded, analysis.Confidence)
	assert.Contains(t, analysis.Triggers, models.TriggerTemporal)
	assert.Equal(t, fallbackReasoning, analysis.Reasoning)
	assert.Empty(t, analysis.SuggestedQueries)
}

func TestAnalyzeFallbackNegativeDecision(t *testing.T) {
	a := New(failingProvider())

	analysis, err := a.Analyze(context.Background(), models.QueryAnalysisRequest{Query: "What is machine learning?"})
	require.NoError(t, err)

	assert.False(t, analysis.NeedsWebSearch)
	assert.Equal(t, fallbackConfidenceNotNeeded, analysis.Confidence)
	assert.Empty(t, analysis.Triggers)
	assert.Empty(t, analysis.SuggestedQueries)
}

func TestAnalyzeFallbackMatchesHeuristic(t *testing.T) {
	// with the provider down, Analyze must equal the heuristic decision
	// composed with the synthesis constants, for every query
	a := New(failingProvider())
	h := NewHeuristic()

	queries := []string{
		"Latest AI trends in 2025",
		"What is machine learning?",
		"stock market news today",
		"explain photosynthesis",
		"2024 election statistics",
	}
	for _, q := range queries {
		analysis, err := a.Analyze(context.Background(), models.QueryAnalysisRequest{Query: q})
		require.NoError(t, err)
		assert.Equal(t, h.Decide(q, "en", models.SensitivityMedium), analysis.NeedsWebSearch, "query %q", q)
	}
}

func TestAnalyzeRecoversFromPanic(t *testing.T) {
	a := New(panickingProvider())

	analysis, err := a.Analyze(context.Background(), models.QueryAnalysisRequest{Query: "latest news"})
	require.NoError(t, err)
	assert.True(t, analysis.NeedsWebSearch)
	assert.Equal(t, fallbackReasoning, analysis.Reasoning)
}

func TestAnalyzeSuccessPath(t *testing.T) {
	a := New(staticProvider(`{
		"needs_web_search": true,
		"confidence": 0.9,
		"triggers": ["temporal", "news"],
		"reasoning": "Query asks for current developments.",
		"suggested_queries": ["AI developments 2025"],
		"alternative_approach": ""
	}`))

	analysis, err := a.Analyze(context.Background(), models.QueryAnalysisRequest{Query: "Latest AI developments"})
	require.NoError(t, err)

	assert.True(t, analysis.NeedsWebSearch)
	assert.Equal(t, 0.9, analysis.Confidence)
	assert.Equal(t, []models.Trigger{models.TriggerTemporal, models.TriggerNews}, analysis.Triggers)
	assert.Equal(t, "Query asks for current developments.", analysis.Reasoning)
	assert.Equal(t, []string{"AI developments 2025"}, analysis.SuggestedQueries)
}

func TestAnalyzeClampsConfidence(t *testing.T) {
	a := New(staticProvider(`{
		"needs_web_search": true,
		"confidence": 1.7,
		"triggers": ["temporal"],
		"reasoning": "r",
		"suggested_queries": []
	}`))

	analysis, err := a.Analyze(context.Background(), models.QueryAnalysisRequest{Query: "latest"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, analysis.Confidence)
}

func TestAnalyzeDropsUnknownAndDuplicateTriggers(t *testing.T) {
	a := New(staticProvider(`{
		"needs_web_search": true,
		"confidence": 0.8,
		"triggers": ["temporal", "astrology", "temporal", "finance"],
		"reasoning": "r",
		"suggested_queries": []
	}`))

	analysis, err := a.Analyze(context.Background(), models.QueryAnalysisRequest{Query: "q"})
	require.NoError(t, err)
	assert.Equal(t, []models.Trigger{models.TriggerTemporal, models.TriggerFinance}, analysis.Triggers)
}

func TestAnalyzeClearsSuggestionsWhenSearchNotNeeded(t *testing.T) {
	a := New(staticProvider(`{
		"needs_web_search": false,
		"confidence": 0.95,
		"triggers": [],
		"reasoning": "Stable general knowledge.",
		"suggested_queries": ["should be discarded"],
		"alternative_approach": "answer from model knowledge"
	}`))

	analysis, err := a.Analyze(context.Background(), models.QueryAnalysisRequest{Query: "what is gravity"})
	require.NoError(t, err)
	assert.False(t, analysis.NeedsWebSearch)
	assert.Empty(t, analysis.SuggestedQueries)
	assert.Equal(t, "answer from model knowledge", analysis.AlternativeApproach)
}

func TestAnalyzeCapsSuggestedQueries(t *testing.T) {
	a := New(staticProvider(`{
		"needs_web_search": true,
		"confidence": 0.8,
		"triggers": ["news"],
		"reasoning": "r",
		"suggested_queries": ["a", "b", "c", "d", "e"]
	}`))

	analysis, err := a.Analyze(context.Background(), models.QueryAnalysisRequest{Query: "q"})
	require.NoError(t, err)
	assert.Len(t, analysis.SuggestedQueries, 3)
}

func TestAnalyzeRejectsUnjustifiedPositive(t *testing.T) {
	// needs_web_search=true with no triggers and confidence below 0.5 is
	// not a justified decision; the response is rejected in favor of the
	// fallback
	a := New(staticProvider(`{
		"needs_web_search": true,
		"confidence": 0.3,
		"triggers": [],
		"reasoning": "not sure",
		"suggested_queries": []
	}`))

	analysis, err := a.Analyze(context.Background(), models.QueryAnalysisRequest{Query: "what is gravity"})
	require.NoError(t, err)
	assert.Equal(t, fallbackReasoning, analysis.Reasoning)
	assert.False(t, analysis.NeedsWebSearch)
}

func TestAnalyzeRejectsMalformedResponses(t *testing.T) {
	responses := []string{
		`not json at all`,
		`{"confidence": 0.5, "triggers": [], "reasoning": "r", "suggested_queries": []}`,
		`{"needs_web_search": true, "triggers": ["temporal"], "reasoning": "r", "suggested_queries": []}`,
		`{"needs_web_search": true, "confidence": 0.9, "triggers": ["temporal"], "reasoning": "  ", "suggested_queries": []}`,
	}

	for _, response := range responses {
		a := New(staticProvider(response))
		analysis, err := a.Analyze(context.Background(), models.QueryAnalysisRequest{Query: "latest news"})
		require.NoError(t, err)
		assert.Equal(t, fallbackReasoning, analysis.Reasoning, "response %q should route to fallback", response)
	}
}

func TestAnalyzeDecisionInvariant(t *testing.T) {
	// needs_web_search == true implies triggers non-empty or confidence >= 0.5
	providers := []*fakeProvider{
		failingProvider(),
		staticProvider(`{"needs_web_search": true, "confidence": 0.6, "triggers": [], "reasoning": "r", "suggested_queries": []}`),
		staticProvider(`{"needs_web_search": true, "confidence": 0.2, "triggers": ["news"], "reasoning": "r", "suggested_queries": []}`),
	}
	queries := []string{"latest news", "what is gravity", "2025 statistics"}

	for _, p := range providers {
		a := New(p)
		for _, q := range queries {
			analysis, err := a.Analyze(context.Background(), models.QueryAnalysisRequest{Query: q})
			require.NoError(t, err)
			assert.GreaterOrEqual(t, analysis.Confidence, 0.0)
			assert.LessOrEqual(t, analysis.Confidence, 1.0)
			if analysis.NeedsWebSearch {
				assert.True(t, len(analysis.Triggers) > 0 || analysis.Confidence >= 0.5)
			}
		}
	}
}

func TestAnalyzeSensitivityDivergence(t *testing.T) {
	// one weak temporal cue: high triggers, low does not
	a := New(failingProvider())
	query := "recent housing market changes"

	high, err := a.Analyze(context.Background(), models.QueryAnalysisRequest{Query: query, Sensitivity: models.SensitivityHigh})
	require.NoError(t, err)
	assert.True(t, high.NeedsWebSearch)

	low, err := a.Analyze(context.Background(), models.QueryAnalysisRequest{Query: query, Sensitivity: models.SensitivityLow})
	require.NoError(t, err)
	assert.False(t, low.NeedsWebSearch)
}

func TestPromptIncludesSensitivityAndContext(t *testing.T) {
	var gotSystem, gotUser string
	p := &fakeProvider{respond: func(system, user string) (json.RawMessage, error) {
		gotSystem, gotUser = system, user
		return nil, errors.New("capture only")
	}}
	a := New(p)

	_, err := a.Analyze(context.Background(), models.QueryAnalysisRequest{
		Query:       "Latest AI trends",
		Sensitivity: models.SensitivityLow,
		Language:    "ru",
		Context:     map[string]string{"topic": "annual report", "domain": "finance"},
	})
	require.NoError(t, err)

	assert.Contains(t, gotSystem, sensitivityInstructions[models.SensitivityLow])
	assert.Contains(t, gotSystem, languageInstructions["ru"])
	assert.Contains(t, gotSystem, "general_knowledge")
	assert.Contains(t, gotUser, `"Latest AI trends"`)
	assert.Contains(t, gotUser, "domain: finance")
	assert.Contains(t, gotUser, "topic: annual report")
}
