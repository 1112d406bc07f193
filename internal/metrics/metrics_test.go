package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	ai "github.com/spetersoncode/aidispatch"
	"github.com/spetersoncode/aidispatch/client"
	"github.com/spetersoncode/aidispatch/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Observe(t *testing.T) {
	r := New()

	r.Observe(client.Event{Type: client.EventRequestStart, Provider: ai.ProviderOpenAI, Model: "gpt-4"})
	r.Observe(client.Event{
		Type:     client.EventRequestComplete,
		Provider: ai.ProviderOpenAI,
		Model:    "gpt-4",
		Duration: 2 * time.Second,
		Usage:    &ai.Usage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150, Cost: 0.006},
	})
	r.Observe(client.Event{Type: client.EventRequestError, Provider: ai.ProviderAnthropic, Model: "claude-3-opus"})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.requests.WithLabelValues("openai", "gpt-4", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.requests.WithLabelValues("anthropic", "claude-3-opus", "error")))
	assert.Equal(t, 100.0, testutil.ToFloat64(r.tokens.WithLabelValues("openai", "gpt-4", "prompt")))
	assert.Equal(t, 50.0, testutil.ToFloat64(r.tokens.WithLabelValues("openai", "gpt-4", "completion")))
	assert.InDelta(t, 0.006, testutil.ToFloat64(r.cost.WithLabelValues("openai", "gpt-4")), 1e-12)
	assert.Equal(t, 2, testutil.CollectAndCount(r.duration))
}

func TestRecorder_Seed(t *testing.T) {
	r := New()
	r.Seed([]store.CostRecord{
		{Model: "gemini-pro", Provider: ai.ProviderGemini, PromptTokens: 10, CompletionTokens: 5, Cost: 0.001},
		{Model: "gemini-pro", Provider: ai.ProviderGemini, PromptTokens: 20, CompletionTokens: 5, Cost: 0.002},
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(r.requests.WithLabelValues("gemini", "gemini-pro", "success")))
	assert.Equal(t, 30.0, testutil.ToFloat64(r.tokens.WithLabelValues("gemini", "gemini-pro", "prompt")))
	assert.InDelta(t, 0.003, testutil.ToFloat64(r.cost.WithLabelValues("gemini", "gemini-pro")), 1e-12)
}

func TestRecorder_Drain(t *testing.T) {
	r := New()
	ch := make(chan client.Event, 4)
	ch <- client.Event{Type: client.EventRequestStart, Provider: ai.ProviderOpenAI}
	ch <- client.Event{Type: client.EventRequestComplete, Provider: ai.ProviderOpenAI, Model: "gpt-4"}

	r.Drain(ch)

	assert.Empty(t, ch)
	assert.Equal(t, 1.0, testutil.ToFloat64(r.requests.WithLabelValues("openai", "gpt-4", "success")))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := New()
	r.Observe(client.Event{Type: client.EventRequestComplete, Provider: ai.ProviderOpenAI, Model: "gpt-4",
		Usage: &ai.Usage{PromptTokens: 1, CompletionTokens: 1, Cost: 0.5}})

	require.NoError(t, r.WriteTextfile(""))

	path := filepath.Join(t.TempDir(), "aidispatch.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `aidispatch_requests_total{model="gpt-4",provider="openai",status="success"} 1`)
	assert.Contains(t, string(data), `aidispatch_cost_usd_total{model="gpt-4",provider="openai"} 0.5`)
}
