package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	ai "github.com/spetersoncode/aidispatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func costResponse(model string, cost float64, at time.Time) *ai.Response {
	resp := ai.NewResponse(ai.ProviderAnthropic, model, "ok", &ai.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15, Cost: cost})
	resp.Timestamp = at.UnixMilli()
	return resp
}

func TestCostLedger_Append(t *testing.T) {
	ctx := context.Background()
	l := NewCostLedger(NewFileAdapter(filepath.Join(t.TempDir(), "costs.json")))

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rec, err := l.Append(ctx, costResponse("claude-3-haiku", 0.25, at))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, ai.ProviderAnthropic, rec.Provider)
	assert.Equal(t, 15, rec.TotalTokens)
	assert.True(t, at.Equal(rec.Time()))

	t.Run("responses without usage are skipped", func(t *testing.T) {
		rec, err := l.Append(ctx, ai.NewResponse(ai.ProviderGemini, "gemini-pro", "x", nil))
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	records, err := l.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, *rec, records[0])
}

func TestCostLedger_TotalBetween(t *testing.T) {
	ctx := context.Background()
	l := NewCostLedger(NewMemoryAdapter())

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	for _, r := range []*ai.Response{
		costResponse("gpt-4", 1.0, day(1)),
		costResponse("gpt-4", 2.0, day(2)),
		costResponse("claude-3-opus", 4.0, day(3)),
		costResponse("gpt-4", 8.0, day(4)),
	} {
		_, err := l.Append(ctx, r)
		require.NoError(t, err)
	}

	t.Run("bounds are inclusive", func(t *testing.T) {
		sum, err := l.TotalBetween(ctx, day(2), day(3))
		require.NoError(t, err)
		assert.Equal(t, 6.0, sum.Total)
		assert.Equal(t, 2, sum.Count)
		assert.Equal(t, map[string]float64{"gpt-4": 2.0, "claude-3-opus": 4.0}, sum.ByModel)
	})

	t.Run("zero bounds are open", func(t *testing.T) {
		sum, err := l.TotalBetween(ctx, time.Time{}, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, 15.0, sum.Total)
		assert.Equal(t, 11.0, sum.ByModel["gpt-4"])
	})

	t.Run("empty range", func(t *testing.T) {
		sum, err := l.TotalBetween(ctx, day(10), time.Time{})
		require.NoError(t, err)
		assert.Zero(t, sum.Total)
		assert.Empty(t, sum.ByModel)
	})
}
