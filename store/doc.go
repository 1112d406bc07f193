// Package store persists history, templates and cost records.
//
// Each store sits on an Adapter, a small key/value interface over JSON
// values. MemoryAdapter keeps data in process; FileAdapter keeps one JSON
// object per file:
//
//	history := store.NewHistory(store.NewFileAdapter(filepath.Join(dir, "history.json")))
//	entry, err := history.Add(ctx, req, resp)
//
// File stores are read and rewritten whole on every change. There is no
// locking between processes.
package store
