package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileAdapter stores all keys as one JSON object in a single file.
// Every call reads the whole document and every write replaces it. The
// mutex serializes callers within a process; separate processes sharing a
// file race and the last writer wins.
type FileAdapter struct {
	mu   sync.Mutex
	path string
}

// NewFileAdapter returns an adapter backed by path. The file and its
// directory are created on first write.
func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

// Get retrieves a value by key.
func (f *FileAdapter) Get(_ context.Context, key string) (json.RawMessage, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.read()
	if err != nil {
		return nil, false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

// Set stores a value by key.
func (f *FileAdapter) Set(_ context.Context, key string, value json.RawMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.read()
	if err != nil {
		return err
	}
	data[key] = value
	return f.write(data)
}

// Delete removes a key.
func (f *FileAdapter) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return f.write(data)
}

// Has returns true if the key exists.
func (f *FileAdapter) Has(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.read()
	if err != nil {
		return false, err
	}
	_, ok := data[key]
	return ok, nil
}

// Clear removes all data.
func (f *FileAdapter) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(map[string]json.RawMessage{})
}

// Load retrieves all data as a map.
func (f *FileAdapter) Load(_ context.Context) (map[string]json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

// read loads the document. A missing or empty file is an empty document.
func (f *FileAdapter) read() (map[string]json.RawMessage, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	data := map[string]json.RawMessage{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return data, nil
}

// write replaces the document through a temp file and rename.
func (f *FileAdapter) write(data map[string]json.RawMessage) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}

var (
	_ Adapter = (*FileAdapter)(nil)
	_ Adapter = (*MemoryAdapter)(nil)
)
