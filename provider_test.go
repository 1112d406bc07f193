package aidispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProvider(t *testing.T) {
	tests := []struct {
		in   string
		want Provider
	}{
		{"", ProviderAuto},
		{"auto", ProviderAuto},
		{"openai", ProviderOpenAI},
		{"Anthropic", ProviderAnthropic},
		{" gemini ", ProviderGemini},
		{"google", ProviderGemini},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseProvider(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects unknown provider", func(t *testing.T) {
		_, err := ParseProvider("mistral")
		assert.ErrorContains(t, err, `unknown provider "mistral"`)
	})
}

func TestProvidersOrder(t *testing.T) {
	assert.Equal(t, []Provider{ProviderOpenAI, ProviderAnthropic, ProviderGemini}, Providers)
}
