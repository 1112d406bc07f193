package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates(t *testing.T) {
	ctx := context.Background()
	tmpl := NewTemplates(NewFileAdapter(filepath.Join(t.TempDir(), "templates.json")))

	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	tmpl.now = func() time.Time { return clock }

	created, err := tmpl.Set(ctx, "review", "Review this code", "code review")
	require.NoError(t, err)
	assert.Equal(t, clock, created.CreatedAt)

	_, err = tmpl.Set(ctx, "commit", "Write a commit message", "")
	require.NoError(t, err)

	t.Run("get", func(t *testing.T) {
		got, ok, err := tmpl.Get(ctx, "review")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Review this code", got.Prompt)
		assert.Equal(t, "code review", got.Description)

		_, ok, err = tmpl.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("update keeps creation time", func(t *testing.T) {
		clock = clock.Add(time.Hour)
		updated, err := tmpl.Set(ctx, "review", "Review this diff", "")
		require.NoError(t, err)
		assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
		assert.True(t, clock.Equal(updated.UpdatedAt))
	})

	t.Run("list is sorted by name", func(t *testing.T) {
		all, err := tmpl.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "commit", all[0].Name)
		assert.Equal(t, "review", all[1].Name)
		assert.Equal(t, "Review this diff", all[1].Prompt)
	})

	t.Run("delete", func(t *testing.T) {
		ok, err := tmpl.Delete(ctx, "commit")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = tmpl.Delete(ctx, "commit")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("name is required", func(t *testing.T) {
		_, err := tmpl.Set(ctx, "  ", "x", "")
		assert.ErrorIs(t, err, ErrEmptyTemplateName)
	})
}

func TestTemplates_ListCorruptValue(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()
	require.NoError(t, adapter.Set(ctx, "broken", []byte(`[1, 2]`)))

	_, err := NewTemplates(adapter).List(ctx)
	var serr *SerializationError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "broken", serr.Key)
}
