package model

import (
	"slices"

	ai "github.com/spetersoncode/aidispatch"
)

// ChatModel represents a chat/completion model from any provider.
type ChatModel struct {
	id       string
	provider ai.Provider
	pricing  Pricing
}

// String returns the identifier users pass with --model.
func (m ChatModel) String() string { return m.id }

// Provider returns which provider this model belongs to.
func (m ChatModel) Provider() ai.Provider { return m.provider }

// Pricing returns the pricing for this model.
func (m ChatModel) Pricing() Pricing { return m.pricing }

// Cost returns the USD cost of a request against this model.
func (m ChatModel) Cost(promptTokens, completionTokens int) float64 {
	return m.pricing.Cost(promptTokens, completionTokens)
}

// OpenAI GPT Models
var (
	GPT4       = ChatModel{id: "gpt-4", provider: ai.ProviderOpenAI, pricing: Pricing{InputPerThousand: 0.03, OutputPerThousand: 0.06}}
	GPT4_32k   = ChatModel{id: "gpt-4-32k", provider: ai.ProviderOpenAI, pricing: Pricing{InputPerThousand: 0.06, OutputPerThousand: 0.12}}
	GPT4Turbo  = ChatModel{id: "gpt-4-turbo", provider: ai.ProviderOpenAI, pricing: Pricing{InputPerThousand: 0.01, OutputPerThousand: 0.03}}
	GPT4o      = ChatModel{id: "gpt-4o", provider: ai.ProviderOpenAI, pricing: Pricing{InputPerThousand: 0.005, OutputPerThousand: 0.015}}
	GPT4oMini  = ChatModel{id: "gpt-4o-mini", provider: ai.ProviderOpenAI, pricing: Pricing{InputPerThousand: 0.00015, OutputPerThousand: 0.0006}}
	GPT35Turbo = ChatModel{id: "gpt-3.5-turbo", provider: ai.ProviderOpenAI, pricing: Pricing{InputPerThousand: 0.0015, OutputPerThousand: 0.002}}

	// DefaultGPTModel is used when an OpenAI request names no model.
	DefaultGPTModel = GPT4
)

// Anthropic Claude Models
var (
	Claude3Opus    = ChatModel{id: "claude-3-opus", provider: ai.ProviderAnthropic, pricing: Pricing{InputPerThousand: 0.015, OutputPerThousand: 0.075}}
	Claude3Sonnet  = ChatModel{id: "claude-3-sonnet", provider: ai.ProviderAnthropic, pricing: Pricing{InputPerThousand: 0.003, OutputPerThousand: 0.015}}
	Claude3Haiku   = ChatModel{id: "claude-3-haiku", provider: ai.ProviderAnthropic, pricing: Pricing{InputPerThousand: 0.00025, OutputPerThousand: 0.00125}}
	Claude35Sonnet = ChatModel{id: "claude-3-5-sonnet", provider: ai.ProviderAnthropic, pricing: Pricing{InputPerThousand: 0.003, OutputPerThousand: 0.015}}

	// DefaultClaudeModel is used when an Anthropic request names no model.
	DefaultClaudeModel = Claude3Sonnet
)

// Google Gemini Models
var (
	GeminiPro     = ChatModel{id: "gemini-pro", provider: ai.ProviderGemini, pricing: Pricing{InputPerThousand: 0.00025, OutputPerThousand: 0.0005}}
	Gemini15Pro   = ChatModel{id: "gemini-1.5-pro", provider: ai.ProviderGemini, pricing: Pricing{InputPerThousand: 0.0035, OutputPerThousand: 0.0105}}
	Gemini15Flash = ChatModel{id: "gemini-1.5-flash", provider: ai.ProviderGemini, pricing: Pricing{InputPerThousand: 0.00035, OutputPerThousand: 0.00105}}
	Gemini20Flash = ChatModel{id: "gemini-2.0-flash", provider: ai.ProviderGemini, pricing: Pricing{InputPerThousand: 0.0001, OutputPerThousand: 0.0004}}
	Gemini25Flash = ChatModel{id: "gemini-2.5-flash", provider: ai.ProviderGemini, pricing: Pricing{InputPerThousand: 0.00015, OutputPerThousand: 0.0006}}
	Gemini25Pro   = ChatModel{id: "gemini-2.5-pro", provider: ai.ProviderGemini, pricing: Pricing{InputPerThousand: 0.00125, OutputPerThousand: 0.01}}

	// DefaultGeminiModel is used when a Gemini request names no model.
	DefaultGeminiModel = GeminiPro
)

// Catalog lists every model with a known price, grouped by provider.
var Catalog = []ChatModel{
	GPT4, GPT4_32k, GPT4Turbo, GPT4o, GPT4oMini, GPT35Turbo,
	Claude3Opus, Claude3Sonnet, Claude3Haiku, Claude35Sonnet,
	GeminiPro, Gemini15Pro, Gemini15Flash, Gemini20Flash, Gemini25Flash, Gemini25Pro,
}

// Lookup returns the catalogue entry for id.
func Lookup(id string) (ChatModel, bool) {
	for _, m := range Catalog {
		if m.id == id {
			return m, true
		}
	}
	return ChatModel{}, false
}

// ForProvider returns the catalogue entries of one provider.
func ForProvider(p ai.Provider) []ChatModel {
	var models []ChatModel
	for _, m := range Catalog {
		if m.provider == p {
			models = append(models, m)
		}
	}
	return models
}

// SupportedModels returns every identifier a provider accepts: its
// catalogue entries followed by its alias names.
func SupportedModels(p ai.Provider) []string {
	var ids []string
	for _, m := range ForProvider(p) {
		ids = append(ids, m.id)
	}
	aliases := Aliases[p]
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		if !slices.Contains(ids, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return append(ids, names...)
}

// Default returns the default model of a provider.
func Default(p ai.Provider) ChatModel {
	switch p {
	case ai.ProviderAnthropic:
		return DefaultClaudeModel
	case ai.ProviderGemini:
		return DefaultGeminiModel
	default:
		return DefaultGPTModel
	}
}
