package store

import (
	"context"
	"encoding/json"
)

// Adapter is the key/value backend the stores are built on. Values are raw
// JSON documents. Implementations must be safe for concurrent use within
// one process.
type Adapter interface {
	// Get returns the value at key. A missing key is nil, false, nil.
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)

	// Set replaces the value at key.
	Set(ctx context.Context, key string, value json.RawMessage) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	Has(ctx context.Context, key string) (bool, error)

	// Clear removes every key.
	Clear(ctx context.Context) error

	// Load returns a copy of the whole document.
	Load(ctx context.Context) (map[string]json.RawMessage, error)
}
