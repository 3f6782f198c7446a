package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenton/search-advisor/api/models"
)

func TestAnalyzeBatchIndexAlignment(t *testing.T) {
	a := New(failingProvider())

	reqs := []models.QueryAnalysisRequest{
		{Query: "Latest AI trends"},
		{Query: "What is machine learning?"},
	}
	results := a.AnalyzeBatch(context.Background(), reqs)

	require.Len(t, results, 2)
	require.NotNil(t, results[0].Analysis)
	require.NotNil(t, results[1].Analysis)
	assert.True(t, results[0].Analysis.NeedsWebSearch)
	assert.False(t, results[1].Analysis.NeedsWebSearch)
}

func TestAnalyzeBatchIsolatesItemFailure(t *testing.T) {
	a := New(failingProvider())

	// the middle item is invalid; its neighbors must be unaffected
	reqs := []models.QueryAnalysisRequest{
		{Query: "Latest AI trends"},
		{Query: ""},
		{Query: "stock market news"},
	}
	results := a.AnalyzeBatch(context.Background(), reqs)
	require.Len(t, results, 3)

	require.NotNil(t, results[1].Error)
	assert.Equal(t, models.ItemErrorInvalid, results[1].Error.Kind)
	assert.Nil(t, results[1].Analysis)

	// the surviving slots match individual analysis of the same queries
	for _, i := range []int{0, 2} {
		individual, err := a.Analyze(context.Background(), reqs[i])
		require.NoError(t, err)
		require.NotNil(t, results[i].Analysis)
		assert.Equal(t, individual, *results[i].Analysis)
	}
}

func TestAnalyzeBatchAllItemsFail(t *testing.T) {
	a := New(failingProvider())

	reqs := []models.QueryAnalysisRequest{
		{Query: ""},
		{Query: "q", Sensitivity: "bogus"},
		{Query: "q", Language: "not-a-tag"},
	}
	results := a.AnalyzeBatch(context.Background(), reqs)

	require.Len(t, results, 3)
	for i, result := range results {
		require.NotNil(t, result.Error, "slot %d", i)
		assert.Equal(t, models.ItemErrorInvalid, result.Error.Kind)
	}
}

func TestAnalyzeBatchCancelledContext(t *testing.T) {
	a := New(failingProvider())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reqs := []models.QueryAnalysisRequest{
		{Query: "Latest AI trends"},
		{Query: "stock market news"},
	}
	results := a.AnalyzeBatch(ctx, reqs)

	require.Len(t, results, 2)
	for i, result := range results {
		require.NotNil(t, result.Error, "slot %d", i)
		assert.Equal(t, models.ItemErrorCancelled, result.Error.Kind)
	}
}

func TestAnalyzeBatchLargeBatchWithBoundedConcurrency(t *testing.T) {
	a := New(failingProvider(), WithBatchConcurrency(2))

	reqs := make([]models.QueryAnalysisRequest, 25)
	for i := range reqs {
		reqs[i] = models.QueryAnalysisRequest{Query: "latest news"}
	}
	results := a.AnalyzeBatch(context.Background(), reqs)

	require.Len(t, results, 25)
	for i, result := range results {
		require.NotNil(t, result.Analysis, "slot %d", i)
		assert.True(t, result.Analysis.NeedsWebSearch)
	}
}

func TestAnalyzeBatchEmpty(t *testing.T) {
	a := New(failingProvider())
	results := a.AnalyzeBatch(context.Background(), nil)
	assert.Empty(t, results)
}
