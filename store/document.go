package store

import (
	"context"
	"encoding/json"
)

// getJSON decodes the value stored at key into a T.
func getJSON[T any](ctx context.Context, a Adapter, key string) (T, bool, error) {
	var v T
	raw, ok, err := a.Get(ctx, key)
	if err != nil || !ok {
		return v, false, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, &SerializationError{Key: key, Err: err}
	}
	return v, true, nil
}

// setJSON encodes v and stores it at key.
func setJSON[T any](ctx context.Context, a Adapter, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return &SerializationError{Key: key, Err: err}
	}
	return a.Set(ctx, key, raw)
}
