package client

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	ai "github.com/spetersoncode/aidispatch"
	"github.com/spetersoncode/aidispatch/internal/provider/anthropic"
	"github.com/spetersoncode/aidispatch/internal/provider/google"
	"github.com/spetersoncode/aidispatch/internal/provider/openai"
)

// APIKeys holds API keys for different providers.
// A provider without a key can still be selected; its first Send fails
// with *ai.ConfigurationError.
type APIKeys struct {
	OpenAI    string
	Anthropic string
	Gemini    string
}

// BaseURLs overrides provider endpoints. Empty fields use the SDK default.
type BaseURLs struct {
	OpenAI    string
	Anthropic string
	Gemini    string
}

// Vertex routes Gemini models through Vertex AI. Leave Project empty to use
// the Gemini API with an API key.
type Vertex struct {
	Project  string
	Location string
}

// Config holds configuration for creating a dispatching client.
type Config struct {
	// APIKeys contains authentication keys for each provider.
	APIKeys APIKeys

	// BaseURLs optionally points providers at other endpoints.
	BaseURLs BaseURLs

	// Vertex optionally serves Gemini models from Vertex AI.
	Vertex Vertex

	// StreamWriter receives streamed chunks. Defaults to stdout.
	StreamWriter io.Writer

	// Events is an optional channel for receiving client operation events.
	// Events are sent non-blocking; if the channel is full, events are dropped.
	Events chan<- Event
}

// Client picks an adapter for each request and sends it.
// Adapters are built once; each one connects lazily on first use.
type Client struct {
	adapters []ai.Adapter
	byName   map[ai.Provider]ai.Adapter
	events   chan<- Event
}

// New creates a client with one adapter per provider.
func New(cfg Config) *Client {
	var googleOpts []google.ClientOption
	if cfg.BaseURLs.Gemini != "" {
		googleOpts = append(googleOpts, google.WithBaseURL(cfg.BaseURLs.Gemini))
	}
	if cfg.Vertex.Project != "" {
		googleOpts = append(googleOpts, google.WithVertex(cfg.Vertex.Project, cfg.Vertex.Location))
	}
	if cfg.StreamWriter != nil {
		googleOpts = append(googleOpts, google.WithStreamWriter(cfg.StreamWriter))
	}

	var openaiOpts []openai.ClientOption
	if cfg.BaseURLs.OpenAI != "" {
		openaiOpts = append(openaiOpts, openai.WithBaseURL(cfg.BaseURLs.OpenAI))
	}

	var anthropicOpts []anthropic.ClientOption
	if cfg.BaseURLs.Anthropic != "" {
		anthropicOpts = append(anthropicOpts, anthropic.WithBaseURL(cfg.BaseURLs.Anthropic))
	}

	return newWithAdapters(cfg.Events,
		openai.New(cfg.APIKeys.OpenAI, openaiOpts...),
		anthropic.New(cfg.APIKeys.Anthropic, anthropicOpts...),
		google.New(cfg.APIKeys.Gemini, googleOpts...),
	)
}

// newWithAdapters builds a client over adapters listed in probe order.
func newWithAdapters(events chan<- Event, adapters ...ai.Adapter) *Client {
	c := &Client{
		adapters: adapters,
		byName:   make(map[ai.Provider]ai.Adapter, len(adapters)),
		events:   events,
	}
	for _, a := range adapters {
		c.byName[a.Provider()] = a
	}
	return c
}

// Resolve returns the adapter for a request. An explicit provider wins
// regardless of model. Otherwise the first adapter that supports the model
// exactly is used, falling back to OpenAI. Resolve never fails.
func (c *Client) Resolve(modelID string, provider ai.Provider) ai.Adapter {
	if provider != "" && provider != ai.ProviderAuto {
		if a, ok := c.byName[provider]; ok {
			return a
		}
		slog.Warn("unknown provider, selecting by model", "provider", provider)
	}

	if modelID != "" {
		for _, a := range c.adapters {
			if a.SupportsModel(modelID) {
				return a
			}
		}
	}

	if a, ok := c.byName[ai.ProviderOpenAI]; ok {
		return a
	}
	return c.adapters[0]
}

// Send resolves the adapter for req and sends it.
func (c *Client) Send(ctx context.Context, req ai.Request) (*ai.Response, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ai.ErrEmptyPrompt
	}

	adapter := c.Resolve(req.Model, req.Provider)
	provider := adapter.Provider()
	slog.Debug("provider selected", "provider", provider, "model", req.Model)

	start := time.Now()
	emit(c.events, Event{
		Type:     EventRequestStart,
		Provider: provider,
		Model:    req.Model,
	})

	resp, err := adapter.Send(ctx, req)
	if err != nil {
		emit(c.events, Event{
			Type:     EventRequestError,
			Provider: provider,
			Model:    req.Model,
			Duration: time.Since(start),
			Error:    err,
		})
		return nil, err
	}

	emit(c.events, Event{
		Type:     EventRequestComplete,
		Provider: provider,
		Model:    resp.Model,
		Duration: time.Since(start),
		Usage:    resp.Usage,
	})
	return resp, nil
}
