package openai

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	ai "github.com/spetersoncode/aidispatch"
	"github.com/spetersoncode/aidispatch/model"
)

// completer is the part of the OpenAI SDK the adapter calls.
// *openai.ChatCompletionService satisfies it.
type completer interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Client adapts the OpenAI chat completions API to ai.Adapter.
// The SDK client is created on first use and reused afterwards.
type Client struct {
	apiKey  string
	baseURL string
	newAPI  func(apiKey, baseURL string) completer

	mu  sync.Mutex
	api completer
}

// ClientOption configures the OpenAI client.
type ClientOption func(*Client)

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// New creates an OpenAI adapter. No network connection is made until Send.
func New(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey: apiKey,
		newAPI: newSDKCompleter,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newSDKCompleter(apiKey, baseURL string) completer {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &client.Chat.Completions
}

// completions returns the SDK handle, creating it if needed.
func (c *Client) completions() (completer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.api != nil {
		return c.api, nil
	}
	if c.apiKey == "" {
		return nil, &ai.ConfigurationError{Provider: ai.ProviderOpenAI, Setting: "OPENAI_API_KEY"}
	}
	c.api = c.newAPI(c.apiKey, c.baseURL)
	return c.api, nil
}

// Provider returns ai.ProviderOpenAI.
func (c *Client) Provider() ai.Provider { return ai.ProviderOpenAI }

// SupportsModel reports whether model is a known OpenAI model.
func (c *Client) SupportsModel(id string) bool {
	return slices.Contains(model.SupportedModels(ai.ProviderOpenAI), id)
}

// Send performs one chat completion. Streaming is not used for OpenAI;
// req.Stream is ignored.
func (c *Client) Send(ctx context.Context, req ai.Request) (*ai.Response, error) {
	modelID := req.Model
	if modelID == "" {
		modelID = model.DefaultGPTModel.String()
	}

	resp, err := c.send(ctx, req, modelID)
	if err != nil {
		slog.Error("openai request failed", "model", modelID, "error", err)
		return nil, err
	}
	return resp, nil
}

func (c *Client) send(ctx context.Context, req ai.Request, modelID string) (*ai.Response, error) {
	api, err := c.completions()
	if err != nil {
		return nil, err
	}

	in := ai.BuildInput(req, true)
	params := openai.ChatCompletionNewParams{
		Model:       modelID,
		Messages:    []openai.ChatCompletionMessageParamUnion{userMessage(in)},
		Temperature: openai.Float(req.TemperatureOrDefault()),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := api.New(ctx, params)
	if err != nil {
		return nil, &ai.RemoteError{Provider: ai.ProviderOpenAI, Model: modelID, Err: wrapError(err)}
	}
	if len(resp.Choices) == 0 {
		return nil, &ai.RemoteError{Provider: ai.ProviderOpenAI, Model: modelID, Err: errors.New("response contained no choices")}
	}

	content := resp.Choices[0].Message.Content
	usage := model.Usage(modelID, int(resp.Usage.PromptTokens), int(resp.Usage.CompletionTokens))
	if resp.Usage.PromptTokens == 0 && resp.Usage.CompletionTokens == 0 {
		usage = model.EstimateUsage(modelID, in.Text, content)
	}

	return ai.NewResponse(ai.ProviderOpenAI, modelID, content, usage), nil
}

var _ ai.Adapter = (*Client)(nil)
