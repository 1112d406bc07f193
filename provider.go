package aidispatch

import (
	"context"
	"fmt"
	"strings"
)

// Provider identifies an AI provider.
type Provider string

// String returns the provider identifier.
func (p Provider) String() string { return string(p) }

// Supported providers.
const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"

	// ProviderAuto asks the selector to infer the provider from the model name.
	ProviderAuto Provider = "auto"
)

// Providers lists the concrete providers in selection priority order.
var Providers = []Provider{ProviderOpenAI, ProviderAnthropic, ProviderGemini}

// ParseProvider converts user input into a Provider.
// An empty string yields ProviderAuto.
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case "", ProviderAuto:
		return ProviderAuto, nil
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini:
		return p, nil
	case "google":
		return ProviderGemini, nil
	default:
		return "", fmt.Errorf("unknown provider %q (must be openai, anthropic, gemini, or auto)", s)
	}
}

// Adapter translates the normalized request/response contract to one
// vendor's API. Implementations own a lazily created SDK client.
type Adapter interface {
	// Provider returns the fixed provider tag of this adapter.
	Provider() Provider

	// SupportsModel reports whether model is in this provider's catalogue.
	SupportsModel(model string) bool

	// Send performs a single remote call and returns the normalized response.
	Send(ctx context.Context, req Request) (*Response, error)
}
