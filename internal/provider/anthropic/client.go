package anthropic

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	ai "github.com/spetersoncode/aidispatch"
	"github.com/spetersoncode/aidispatch/model"
)

// DefaultMaxTokens is sent when a request sets no limit; the Messages API
// requires one.
const DefaultMaxTokens = 4000

// messenger is the part of the Anthropic SDK the adapter calls.
// *anthropic.MessageService satisfies it.
type messenger interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Client adapts the Anthropic Messages API to ai.Adapter.
type Client struct {
	apiKey  string
	baseURL string
	newAPI  func(apiKey, baseURL string) messenger

	mu  sync.Mutex
	api messenger
}

// ClientOption configures the Anthropic client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// New creates an Anthropic adapter. No network connection is made until Send.
func New(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey: apiKey,
		newAPI: newSDKMessenger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newSDKMessenger(apiKey, baseURL string) messenger {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := anthropic.NewClient(opts...)
	return &client.Messages
}

// messages returns the SDK handle, creating it if needed.
func (c *Client) messages() (messenger, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.api != nil {
		return c.api, nil
	}
	if c.apiKey == "" {
		return nil, &ai.ConfigurationError{Provider: ai.ProviderAnthropic, Setting: "ANTHROPIC_API_KEY"}
	}
	c.api = c.newAPI(c.apiKey, c.baseURL)
	return c.api, nil
}

// Provider returns ai.ProviderAnthropic.
func (c *Client) Provider() ai.Provider { return ai.ProviderAnthropic }

// SupportsModel reports whether model is a known Claude model.
func (c *Client) SupportsModel(id string) bool {
	return slices.Contains(model.SupportedModels(ai.ProviderAnthropic), id)
}

// Send performs one Messages API call. req.Stream is ignored.
func (c *Client) Send(ctx context.Context, req ai.Request) (*ai.Response, error) {
	modelID := req.Model
	if modelID == "" {
		modelID = model.DefaultClaudeModel.String()
	}

	resp, err := c.send(ctx, req, modelID)
	if err != nil {
		slog.Error("anthropic request failed", "model", modelID, "error", err)
		return nil, err
	}
	return resp, nil
}

func (c *Client) send(ctx context.Context, req ai.Request, modelID string) (*ai.Response, error) {
	api, err := c.messages()
	if err != nil {
		return nil, err
	}

	maxTokens := int64(DefaultMaxTokens)
	if req.MaxTokens > 0 {
		maxTokens = int64(req.MaxTokens)
	}

	in := ai.BuildInput(req, true)
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(model.Resolve(ai.ProviderAnthropic, modelID)),
		MaxTokens:   maxTokens,
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(convertParts(in.Parts())...)},
		Temperature: anthropic.Float(req.TemperatureOrDefault()),
	}

	resp, err := api.New(ctx, params)
	if err != nil {
		return nil, &ai.RemoteError{Provider: ai.ProviderAnthropic, Model: modelID, Err: wrapError(err)}
	}

	content, ok := firstText(resp.Content)
	if !ok {
		return nil, &ai.RemoteError{Provider: ai.ProviderAnthropic, Model: modelID, Err: errors.New("response contained no text block")}
	}

	usage := model.Usage(modelID, int(resp.Usage.InputTokens), int(resp.Usage.OutputTokens))
	if resp.Usage.InputTokens == 0 && resp.Usage.OutputTokens == 0 {
		usage = model.EstimateUsage(modelID, in.Text, content)
	}

	return ai.NewResponse(ai.ProviderAnthropic, modelID, content, usage), nil
}

var _ ai.Adapter = (*Client)(nil)
