package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	ai "github.com/spetersoncode/aidispatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func response(content string) *ai.Response {
	return ai.NewResponse(ai.ProviderOpenAI, "gpt-4", content, &ai.Usage{PromptTokens: 3, CompletionTokens: 4, TotalTokens: 7, Cost: 0.00033})
}

func TestHistory_AddListGet(t *testing.T) {
	ctx := context.Background()
	h := NewHistory(NewFileAdapter(filepath.Join(t.TempDir(), "history.json")))

	first, err := h.Add(ctx, ai.Request{Prompt: "one"}, response("1"))
	require.NoError(t, err)
	second, err := h.Add(ctx, ai.Request{Prompt: "two", Model: "gpt-4", Format: ai.FormatJSON}, response("2"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	entries, err := h.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)

	got, ok, err := h.Get(ctx, second.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, second, got)
	assert.Equal(t, ai.FormatJSON, got.Format)
	assert.Equal(t, second.Response.Time().UnixMilli(), got.Time().UnixMilli())

	_, ok, err = h.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHistory_Eviction(t *testing.T) {
	ctx := context.Background()
	h := NewHistory(NewMemoryAdapter())

	var ids []string
	for i := 0; i < DefaultHistoryLimit+1; i++ {
		e, err := h.Add(ctx, ai.Request{Prompt: fmt.Sprintf("p%d", i)}, response("r"))
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}

	entries, err := h.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, DefaultHistoryLimit)
	assert.Equal(t, ids[len(ids)-1], entries[0].ID)
	assert.Equal(t, ids[1], entries[len(entries)-1].ID)

	_, ok, err := h.Get(ctx, ids[0])
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHistory_DeleteClear(t *testing.T) {
	ctx := context.Background()
	h := NewHistory(NewMemoryAdapter())

	a, _ := h.Add(ctx, ai.Request{Prompt: "a"}, response("a"))
	b, _ := h.Add(ctx, ai.Request{Prompt: "b"}, response("b"))

	ok, err := h.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	entries, _ := h.List(ctx)
	require.Len(t, entries, 1)
	assert.Equal(t, b.ID, entries[0].ID)

	require.NoError(t, h.Clear(ctx))
	entries, err = h.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistory_CorruptValue(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()
	require.NoError(t, adapter.Set(ctx, historyKey, []byte(`{"not": "a list"}`)))

	_, err := NewHistory(adapter).List(ctx)
	var serr *SerializationError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, historyKey, serr.Key)
}

func TestHistory_ClearEmptiesAdapter(t *testing.T) {
	ctx := context.Background()
	adapter := NewFileAdapter(filepath.Join(t.TempDir(), "history.json"))
	h := NewHistory(adapter)

	_, err := h.Add(ctx, ai.Request{Prompt: "one"}, response("1"))
	require.NoError(t, err)

	require.NoError(t, h.Clear(ctx))
	doc, err := adapter.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc)
}
