package google

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	ai "github.com/spetersoncode/aidispatch"
	"github.com/spetersoncode/aidispatch/model"
	"google.golang.org/genai"
)

// DefaultVertexLocation is used when Vertex AI is enabled without a location.
const DefaultVertexLocation = "us-central1"

// generator is the part of the GenAI SDK the adapter calls.
// *genai.Models satisfies it.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]
}

// Client adapts the Gemini API to ai.Adapter. It is the only adapter that
// streams: with Request.Stream set, chunks are echoed to the stream writer
// as they arrive.
type Client struct {
	apiKey   string
	baseURL  string
	project  string
	location string
	stream   io.Writer
	newAPI   func(ctx context.Context, cfg *genai.ClientConfig) (generator, error)

	mu  sync.Mutex
	api generator
}

// ClientOption configures the Google client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithVertex routes requests through Vertex AI in project and location,
// authenticating with Application Default Credentials instead of an API key.
func WithVertex(project, location string) ClientOption {
	return func(c *Client) {
		c.project = project
		c.location = location
	}
}

// WithStreamWriter sets where streamed chunks are echoed. Defaults to stdout.
func WithStreamWriter(w io.Writer) ClientOption {
	return func(c *Client) {
		c.stream = w
	}
}

// New creates a Gemini adapter. No network connection is made until Send.
func New(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey: apiKey,
		stream: os.Stdout,
		newAPI: newSDKGenerator,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newSDKGenerator(ctx context.Context, cfg *genai.ClientConfig) (generator, error) {
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google client: %w", err)
	}
	return client.Models, nil
}

// models returns the SDK handle, creating it if needed. A failed
// initialization is not cached.
func (c *Client) models(ctx context.Context) (generator, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.api != nil {
		return c.api, nil
	}
	cfg, err := c.clientConfig()
	if err != nil {
		return nil, err
	}
	api, err := c.newAPI(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.api = api
	return c.api, nil
}

// clientConfig selects the Vertex AI backend when a project is set and the
// Gemini API otherwise.
func (c *Client) clientConfig() (*genai.ClientConfig, error) {
	cfg := &genai.ClientConfig{}
	if c.project != "" {
		cfg.Backend = genai.BackendVertexAI
		cfg.Project = c.project
		cfg.Location = c.location
		if cfg.Location == "" {
			cfg.Location = DefaultVertexLocation
		}
	} else {
		if c.apiKey == "" {
			return nil, &ai.ConfigurationError{Provider: ai.ProviderGemini, Setting: "GEMINI_API_KEY"}
		}
		cfg.Backend = genai.BackendGeminiAPI
		cfg.APIKey = c.apiKey
	}
	if c.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}
	return cfg, nil
}

// Provider returns ai.ProviderGemini.
func (c *Client) Provider() ai.Provider { return ai.ProviderGemini }

// SupportsModel reports whether model is a known Gemini model or alias.
func (c *Client) SupportsModel(id string) bool {
	return slices.Contains(model.SupportedModels(ai.ProviderGemini), id)
}

// Send generates content for req, streaming when req.Stream is set.
func (c *Client) Send(ctx context.Context, req ai.Request) (*ai.Response, error) {
	modelID := req.Model
	if modelID == "" {
		modelID = model.DefaultGeminiModel.String()
	}

	resp, err := c.send(ctx, req, modelID)
	if err != nil {
		slog.Error("gemini request failed", "model", modelID, "stream", req.Stream, "error", err)
		return nil, err
	}
	return resp, nil
}

func (c *Client) send(ctx context.Context, req ai.Request, modelID string) (*ai.Response, error) {
	api, err := c.models(ctx)
	if err != nil {
		return nil, err
	}

	in := ai.BuildInput(req, true)
	parts, err := convertParts(in.Parts())
	if err != nil {
		return nil, err
	}
	contents := []*genai.Content{{Role: "user", Parts: parts}}

	temp := float32(req.TemperatureOrDefault())
	config := &genai.GenerateContentConfig{Temperature: &temp}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	apiModel := model.Resolve(ai.ProviderGemini, modelID)
	if req.Stream {
		return c.sendStream(ctx, api, apiModel, modelID, contents, config, in.Text)
	}

	resp, err := api.GenerateContent(ctx, apiModel, contents, config)
	if err != nil {
		return nil, &ai.RemoteError{Provider: ai.ProviderGemini, Model: modelID, Err: wrapError(err)}
	}
	if err := checkBlocked(resp); err != nil {
		return nil, &ai.RemoteError{Provider: ai.ProviderGemini, Model: modelID, Err: err}
	}

	content := candidateText(resp)
	usage := model.EstimateUsage(modelID, in.Text, content)
	if md := resp.UsageMetadata; md != nil && (md.PromptTokenCount > 0 || md.CandidatesTokenCount > 0) {
		usage = model.Usage(modelID, int(md.PromptTokenCount), int(md.CandidatesTokenCount))
	}

	return ai.NewResponse(ai.ProviderGemini, modelID, content, usage), nil
}

// sendStream echoes each chunk as it arrives and concatenates them. Usage
// is always estimated from the full input and output text.
func (c *Client) sendStream(ctx context.Context, api generator, apiModel, modelID string, contents []*genai.Content, config *genai.GenerateContentConfig, input string) (*ai.Response, error) {
	var sb strings.Builder
	chunks := 0
	for resp, err := range api.GenerateContentStream(ctx, apiModel, contents, config) {
		chunks++
		if err != nil {
			return nil, &ai.RemoteError{Provider: ai.ProviderGemini, Model: modelID, Err: fmt.Errorf("stream error at chunk %d: %w", chunks, wrapError(err))}
		}
		if err := checkBlocked(resp); err != nil {
			return nil, &ai.RemoteError{Provider: ai.ProviderGemini, Model: modelID, Err: err}
		}

		text := candidateText(resp)
		if text == "" {
			continue
		}
		sb.WriteString(text)
		if _, err := io.WriteString(c.stream, text); err != nil {
			slog.Warn("failed to echo stream chunk", "error", err)
		}
	}

	if chunks == 0 {
		return nil, &ai.RemoteError{Provider: ai.ProviderGemini, Model: modelID, Err: fmt.Errorf("stream returned no data")}
	}

	content := sb.String()
	resp := ai.NewResponse(ai.ProviderGemini, modelID, content, model.EstimateUsage(modelID, input, content))
	resp.Streamed = true
	return resp, nil
}

var _ ai.Adapter = (*Client)(nil)
