package store

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"
)

// ErrEmptyTemplateName is returned when a template is saved without a name.
var ErrEmptyTemplateName = errors.New("template name is required")

// Template is a named, reusable prompt.
type Template struct {
	Name        string    `json:"name"`
	Prompt      string    `json:"prompt"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Templates stores one template per adapter key.
type Templates struct {
	mu      sync.Mutex
	adapter Adapter
	now     func() time.Time
}

// NewTemplates returns a template store over adapter.
func NewTemplates(adapter Adapter) *Templates {
	return &Templates{adapter: adapter, now: time.Now}
}

// Get returns the template called name.
func (t *Templates) Get(ctx context.Context, name string) (Template, bool, error) {
	return getJSON[Template](ctx, t.adapter, name)
}

// Set creates or replaces a template, keeping its original creation time.
func (t *Templates) Set(ctx context.Context, name, prompt, description string) (Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Template{}, ErrEmptyTemplateName
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	tmpl := Template{
		Name:        name,
		Prompt:      prompt,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	existing, ok, err := getJSON[Template](ctx, t.adapter, name)
	if err != nil {
		return Template{}, err
	}
	if ok {
		tmpl.CreatedAt = existing.CreatedAt
	}

	if err := setJSON(ctx, t.adapter, name, tmpl); err != nil {
		return Template{}, err
	}
	return tmpl, nil
}

// Delete removes the template called name and reports whether it existed.
func (t *Templates) Delete(ctx context.Context, name string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ok, err := t.adapter.Has(ctx, name)
	if err != nil || !ok {
		return false, err
	}
	return true, t.adapter.Delete(ctx, name)
}

// List returns all templates sorted by name.
func (t *Templates) List(ctx context.Context) ([]Template, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	data, err := t.adapter.Load(ctx)
	if err != nil {
		return nil, err
	}

	templates := make([]Template, 0, len(data))
	for _, name := range slices.Sorted(maps.Keys(data)) {
		var tmpl Template
		if err := json.Unmarshal(data[name], &tmpl); err != nil {
			return nil, &SerializationError{Key: name, Err: err}
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
