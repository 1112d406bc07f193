package model

import (
	"testing"

	ai "github.com/spetersoncode/aidispatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateCost(t *testing.T) {
	t.Run("returns zero for unknown models", func(t *testing.T) {
		for _, id := range []string{"", "gpt-99", "claude-3-opus-20240229", "llama-3"} {
			assert.Equal(t, 0.0, CalculateCost(id, 123456, 654321), id)
		}
	})

	t.Run("thousand tokens each equals input plus output price", func(t *testing.T) {
		for _, m := range Catalog {
			p := m.Pricing()
			assert.Equal(t, p.InputPerThousand+p.OutputPerThousand, CalculateCost(m.String(), 1000, 1000), m.String())
		}
	})

	t.Run("gpt-3.5-turbo small request", func(t *testing.T) {
		cost := CalculateCost("gpt-3.5-turbo", 5, 2)
		assert.InDelta(t, 5.0/1000*0.0015+2.0/1000*0.002, cost, 1e-15)
	})

	t.Run("returns zero for zero usage", func(t *testing.T) {
		assert.Equal(t, 0.0, CalculateCost("gpt-4", 0, 0))
	})

	t.Run("is never negative", func(t *testing.T) {
		for _, m := range Catalog {
			assert.GreaterOrEqual(t, CalculateCost(m.String(), 10, 10), 0.0)
		}
	})
}

func TestChatModel_Cost(t *testing.T) {
	t.Run("calculates cost using model pricing", func(t *testing.T) {
		// 10000/1K * $0.003 + 5000/1K * $0.015 = $0.03 + $0.075 = $0.105
		cost := Claude3Sonnet.Cost(10000, 5000)
		assert.InDelta(t, 0.105, cost, 0.0001)
	})

	t.Run("works with different models", func(t *testing.T) {
		assert.Greater(t, Claude3Opus.Cost(100000, 50000), Claude3Haiku.Cost(100000, 50000))
	})
}

func TestPricingFor(t *testing.T) {
	p, ok := PricingFor("gpt-4")
	require.True(t, ok)
	assert.Equal(t, Pricing{InputPerThousand: 0.03, OutputPerThousand: 0.06}, p)

	_, ok = PricingFor("unknown")
	assert.False(t, ok)
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
		{"hello world!", 3},
		{"日本語です", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EstimateTokens(tt.text), tt.text)
	}
}

func TestCatalog(t *testing.T) {
	t.Run("identifiers are unique", func(t *testing.T) {
		seen := map[string]bool{}
		for _, m := range Catalog {
			assert.False(t, seen[m.String()], "duplicate %s", m.String())
			seen[m.String()] = true
		}
	})

	t.Run("defaults", func(t *testing.T) {
		assert.Equal(t, "gpt-4", Default(ai.ProviderOpenAI).String())
		assert.Equal(t, "claude-3-sonnet", Default(ai.ProviderAnthropic).String())
		assert.Equal(t, "gemini-pro", Default(ai.ProviderGemini).String())
		assert.Equal(t, "gpt-4", Default(ai.ProviderAuto).String())
	})

	t.Run("lookup returns provider", func(t *testing.T) {
		m, ok := Lookup("claude-3-opus")
		require.True(t, ok)
		assert.Equal(t, ai.ProviderAnthropic, m.Provider())
	})

	t.Run("supported models include aliases", func(t *testing.T) {
		ids := SupportedModels(ai.ProviderGemini)
		assert.Contains(t, ids, "gemini-pro")
		assert.Contains(t, ids, "gemini-1.0-pro")
		assert.NotContains(t, ids, "gpt-4")
	})

	t.Run("each provider has models", func(t *testing.T) {
		for _, p := range ai.Providers {
			assert.NotEmpty(t, ForProvider(p), p)
		}
	})
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "gemini-pro", Resolve(ai.ProviderGemini, "gemini-1.0-pro"))
	assert.Equal(t, "gemini-1.5-flash", Resolve(ai.ProviderGemini, "gemini-1.5-flash"))
	assert.Equal(t, "claude-3-opus-20240229", Resolve(ai.ProviderAnthropic, "claude-3-opus"))
	assert.Equal(t, "gpt-4", Resolve(ai.ProviderOpenAI, "gpt-4"))
	assert.Equal(t, "custom", Resolve(ai.ProviderGemini, "custom"))
}

func TestUsage(t *testing.T) {
	t.Run("reported counts", func(t *testing.T) {
		u := Usage("gpt-3.5-turbo", 5, 2)
		assert.Equal(t, 5, u.PromptTokens)
		assert.Equal(t, 2, u.CompletionTokens)
		assert.Equal(t, 7, u.TotalTokens)
		assert.InDelta(t, 5.0/1000*0.0015+2.0/1000*0.002, u.Cost, 1e-15)
	})

	t.Run("estimated counts", func(t *testing.T) {
		u := EstimateUsage("unknown-model", "12345678", "123")
		assert.Equal(t, 2, u.PromptTokens)
		assert.Equal(t, 1, u.CompletionTokens)
		assert.Equal(t, 3, u.TotalTokens)
		assert.Equal(t, 0.0, u.Cost)
	})
}
