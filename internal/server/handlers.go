package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/presenton/search-advisor/api/models"
)

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req models.QueryAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	analysis, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	slog.Info("Analyzed query",
		"query", req.Query,
		"needs_web_search", analysis.NeedsWebSearch,
		"confidence", analysis.Confidence,
	)

	respondJSON(w, analysis)
}

func (s *Server) handleBatchAnalyze(w http.ResponseWriter, r *http.Request) {
	var req models.BatchAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if len(req.Queries) == 0 {
		http.Error(w, "queries must not be empty", http.StatusBadRequest)
		return
	}

	results := s.analyzer.AnalyzeBatch(r.Context(), req.Queries)

	resp := models.BatchAnalysisResponse{
		Results:       results,
		TotalAnalyzed: len(results),
	}
	for _, result := range results {
		if result.Error != nil {
			resp.ErrorCount++
		} else {
			resp.SuccessCount++
		}
	}

	slog.Info("Batch analysis completed", "total", resp.TotalAnalyzed, "success", resp.SuccessCount, "errors", resp.ErrorCount)

	respondJSON(w, resp)
}

func (s *Server) handleTriggers(w http.ResponseWriter, r *http.Request) {
	taxonomy := models.Triggers()
	infos := make([]models.TriggerInfo, len(taxonomy))
	for i, t := range taxonomy {
		infos[i] = models.TriggerInfo{
			Value:       t,
			Name:        triggerName(t),
			Description: t.Description(),
		}
	}

	respondJSON(w, models.TriggersResponse{Triggers: infos, Total: len(infos)})
}

// triggerName turns "current_events" into "Current Events".
func triggerName(t models.Trigger) string {
	words := strings.Split(string(t), "_")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, models.HealthResponse{
		Status:            "healthy",
		Service:           "web_search_analysis",
		LLMAvailable:      s.llmAvailable,
		FallbackAvailable: true,
	})
}

func respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
