package analyzer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/presenton/search-advisor/api/models"
)

// AnalyzeBatch fans the requests out to Analyze concurrently and returns one
// result per request, index-aligned regardless of completion order. Each item
// runs inside its own failure boundary: a bad query, a cancelled context, or
// even a panic degrades only its own slot. The batch call itself never fails.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, reqs []models.QueryAnalysisRequest) []models.BatchResult {
	results := make([]models.BatchResult, len(reqs))

	var g errgroup.Group
	g.SetLimit(a.batchConcurrency)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			results[i] = a.analyzeItem(ctx, i, req)
			return nil
		})
	}
	g.Wait()

	return results
}

func (a *Analyzer) analyzeItem(ctx context.Context, index int, req models.QueryAnalysisRequest) (result models.BatchResult) {
	itemID := uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("batch item panicked", "item_id", itemID, "index", index, "panic", r)
			result = models.BatchResult{Error: &models.ItemError{
				Kind:    models.ItemErrorInternal,
				Message: fmt.Sprintf("internal error: %v", r),
			}}
		}
	}()

	if err := ctx.Err(); err != nil {
		return models.BatchResult{Error: &models.ItemError{
			Kind:    models.ItemErrorCancelled,
			Message: err.Error(),
		}}
	}

	analysis, err := a.Analyze(ctx, req)
	if err != nil {
		slog.Warn("batch item rejected", "item_id", itemID, "index", index, "error", err)
		return models.BatchResult{Error: &models.ItemError{
			Kind:    models.ItemErrorInvalid,
			Message: err.Error(),
		}}
	}

	slog.Debug("batch item analyzed",
		"item_id", itemID,
		"index", index,
		"needs_web_search", analysis.NeedsWebSearch,
		"confidence", analysis.Confidence,
	)
	return models.BatchResult{Analysis: &analysis}
}
