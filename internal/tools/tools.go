package tools

import (
	"github.com/openai/openai-go"

	"github.com/presenton/search-advisor/api/models"
)

// WebSearchTool is the tool spec attached to a generation call when the
// analysis decides the query needs current information.
var WebSearchTool = openai.ChatCompletionToolParam{
	Type: openai.F(openai.ChatCompletionToolTypeFunction),
	Function: openai.F(openai.FunctionDefinitionParam{
		Name:        openai.String("search_web"),
		Description: openai.String("Search the web for current information relevant to the query"),
		Parameters: openai.F(openai.FunctionParameters{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]string{
					"type":        "string",
					"description": "The search query",
				},
				"max_results": map[string]string{
					"type":        "integer",
					"description": "Maximum number of results to return",
				},
			},
			"required": []string{"query"},
		}),
	}),
}

// SelectTools maps a decision to the tool set for the downstream generation
// call. Pure: no side effects, and it never re-runs the analysis.
func SelectTools(analysis models.WebSearchAnalysis) []openai.ChatCompletionToolParam {
	if !analysis.NeedsWebSearch {
		return nil
	}
	return []openai.ChatCompletionToolParam{WebSearchTool}
}
