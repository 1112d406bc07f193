package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// adapters returns a fresh instance of every Adapter implementation.
func adapters(t *testing.T) map[string]Adapter {
	return map[string]Adapter{
		"memory": NewMemoryAdapter(),
		"file":   NewFileAdapter(filepath.Join(t.TempDir(), "data.json")),
	}
}

func TestAdapter_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	for name, adapter := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := adapter.Get(ctx, "key1")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, adapter.Set(ctx, "key1", json.RawMessage(`"value1"`)))

			raw, ok, err := adapter.Get(ctx, "key1")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.JSONEq(t, `"value1"`, string(raw))

			has, err := adapter.Has(ctx, "key1")
			require.NoError(t, err)
			assert.True(t, has)

			require.NoError(t, adapter.Delete(ctx, "key1"))
			require.NoError(t, adapter.Delete(ctx, "nonexistent"))

			has, err = adapter.Has(ctx, "key1")
			require.NoError(t, err)
			assert.False(t, has)
		})
	}
}

func TestAdapter_LoadClear(t *testing.T) {
	ctx := context.Background()
	for name, adapter := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			loaded, err := adapter.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, loaded)

			require.NoError(t, adapter.Set(ctx, "key1", json.RawMessage(`"v1"`)))
			require.NoError(t, adapter.Set(ctx, "key2", json.RawMessage(`{"n": 2}`)))

			loaded, err = adapter.Load(ctx)
			require.NoError(t, err)
			assert.Len(t, loaded, 2)
			assert.JSONEq(t, `"v1"`, string(loaded["key1"]))
			assert.JSONEq(t, `{"n": 2}`, string(loaded["key2"]))

			require.NoError(t, adapter.Clear(ctx))
			loaded, err = adapter.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, loaded)
		})
	}
}

func TestAdapter_Concurrent(t *testing.T) {
	ctx := context.Background()
	for name, adapter := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(2)
				go func() {
					defer wg.Done()
					_ = adapter.Set(ctx, "key", json.RawMessage(`"value"`))
				}()
				go func() {
					defer wg.Done()
					_, _, _ = adapter.Get(ctx, "key")
				}()
			}
			wg.Wait()

			has, err := adapter.Has(ctx, "key")
			require.NoError(t, err)
			assert.True(t, has)
		})
	}
}

func TestFileAdapter(t *testing.T) {
	ctx := context.Background()

	t.Run("persists across instances", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "store.json")
		require.NoError(t, NewFileAdapter(path).Set(ctx, "a", json.RawMessage(`[1,2]`)))

		raw, ok, err := NewFileAdapter(path).Get(ctx, "a")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `[1,2]`, string(raw))
	})

	t.Run("empty file is an empty document", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.json")
		require.NoError(t, os.WriteFile(path, nil, 0o600))

		loaded, err := NewFileAdapter(path).Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})

	t.Run("corrupt file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		_, _, err := NewFileAdapter(path).Get(ctx, "a")
		assert.ErrorContains(t, err, "decode")
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		dir := t.TempDir()
		a := NewFileAdapter(filepath.Join(dir, "store.json"))
		require.NoError(t, a.Set(ctx, "a", json.RawMessage(`1`)))
		require.NoError(t, a.Set(ctx, "b", json.RawMessage(`2`)))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "store.json", entries[0].Name())
	})
}

func TestMemoryAdapter_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryAdapter()

	value := json.RawMessage(`"abc"`)
	require.NoError(t, m.Set(ctx, "k", value))
	value[1] = 'x'

	raw, _, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, string(raw))

	raw[1] = 'y'
	again, _, _ := m.Get(ctx, "k")
	assert.Equal(t, `"abc"`, string(again))

	loaded, err := m.Load(ctx)
	require.NoError(t, err)
	loaded["k"][1] = 'z'
	again, _, _ = m.Get(ctx, "k")
	assert.Equal(t, `"abc"`, string(again))
}
