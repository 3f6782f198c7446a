package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/presenton/search-advisor/api/models"
	"github.com/presenton/search-advisor/internal/llm"
)

const systemPromptBase = `You are an expert AI assistant that determines whether a user query requires web search for accurate, up-to-date information.

%s

%s

Consider these factors when determining if web search is needed:

TEMPORAL INDICATORS (High Priority):
- Current year references (2024, 2025)
- Time-sensitive words: "current", "latest", "recent", "today", "now", "up-to-date"
- Trend analysis: "trends", "changes", "developments"

NEWS AND CURRENT EVENTS (High Priority):
- News and announcements: "news", "events", "announcements"
- Political events: elections, government, policy
- Economic events: market, economy, crisis
- Global events: conflicts, disasters, pandemics

STATISTICS & DATA (High Priority):
- Statistical queries: "statistics", "data", "figures", "numbers"
- Research requests: "studies", "reports", "analysis"
- Rankings and comparisons: "top", "best", "rankings"
- Market data: "prices", "rates", "indexes"

TECHNOLOGY & INNOVATION (Medium Priority):
- Latest tech: AI, blockchain, quantum, new releases
- Startups and companies: funding, unicorns, IPO
- Research and development: breakthroughs, discoveries

FINANCE & BUSINESS (Medium Priority):
- Financial data: stocks, bonds, investments, earnings
- Business news: mergers, acquisitions, partnerships
- Economic indicators: GDP, inflation, unemployment

GENERAL KNOWLEDGE (Low Priority):
- Historical facts that don't change
- Basic definitions and concepts
- Established scientific principles

Allowed trigger values: %s.

For each query, provide:
1. A clear decision (needs_web_search: true/false)
2. Confidence level (0.0-1.0)
3. Triggers from the allowed values that influenced your decision
4. A one-sentence reasoning
5. Up to three suggested search queries (only if web search is needed)
6. An alternative approach (only if web search is not needed)`

func systemPrompt(sensitivity, language string) string {
	langInstr, ok := languageInstructions[language]
	if !ok {
		langInstr = "Analyze queries in any language."
	}
	return fmt.Sprintf(systemPromptBase, langInstr, sensitivityInstructions[sensitivity], triggerVocabulary())
}

func triggerVocabulary() string {
	taxonomy := models.Triggers()
	values := make([]string, len(taxonomy))
	for i, t := range taxonomy {
		values[i] = string(t)
	}
	return strings.Join(values, ", ")
}

func userPrompt(req models.QueryAnalysisRequest) string {
	parts := []string{
		fmt.Sprintf("Query to analyze: %q", req.Query),
		fmt.Sprintf("Language: %s", req.Language),
		fmt.Sprintf("Sensitivity level: %s", req.Sensitivity),
	}

	if len(req.Context) > 0 {
		parts = append(parts, "Context:")
		keys := make([]string, 0, len(req.Context))
		for k := range req.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("- %s: %s", k, req.Context[k]))
		}
	}

	return strings.Join(parts, "\n")
}

// analysisSchema is the strict output contract for the LLM call. Responses
// that do not conform are rejected and routed to the fallback.
var analysisSchema = llm.ResponseSchema{
	Name:        "web_search_analysis",
	Description: "Decision on whether a query requires web search",
	Schema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"needs_web_search": map[string]interface{}{
				"type":        "boolean",
				"description": "Whether the query requires web search for accurate, up-to-date information",
			},
			"confidence": map[string]interface{}{
				"type":        "number",
				"minimum":     0.0,
				"maximum":     1.0,
				"description": "Confidence level in the decision (0.0 = not confident, 1.0 = very confident)",
			},
			"triggers": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "string",
					"enum": triggerEnum(),
				},
				"description": "Categories that indicate need for web search",
			},
			"reasoning": map[string]interface{}{
				"type":        "string",
				"description": "Explanation of why web search is or isn't needed",
			},
			"suggested_queries": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Suggested search queries if web search is needed",
			},
			"alternative_approach": map[string]interface{}{
				"type":        "string",
				"description": "Alternative approach if web search is not needed",
			},
		},
		"required": []string{"needs_web_search", "confidence", "triggers", "reasoning", "suggested_queries"},
	},
}

func triggerEnum() []string {
	taxonomy := models.Triggers()
	values := make([]string, len(taxonomy))
	for i, t := range taxonomy {
		values[i] = string(t)
	}
	return values
}
