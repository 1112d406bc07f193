// Package metrics tracks request counts, tokens and cost in a private
// Prometheus registry.
//
// The CLI is short-lived, so counters are seeded from the cost ledger at
// startup and the registry can be written to a node-exporter textfile
// after each request.
package metrics

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spetersoncode/aidispatch/client"
	"github.com/spetersoncode/aidispatch/store"
)

const namespace = "aidispatch"

// Recorder collects usage metrics from client events.
//
// Metrics:
//   - aidispatch_requests_total: requests by provider, model and status
//   - aidispatch_tokens_total: tokens by provider, model and kind
//   - aidispatch_cost_usd_total: cost in USD by provider and model
//   - aidispatch_request_duration_seconds: request latency by provider
type Recorder struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	tokens   *prometheus.CounterVec
	cost     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates a recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Requests sent by provider, model and status",
			},
			[]string{"provider", "model", "status"},
		),
		tokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tokens_total",
				Help:      "Tokens used by provider, model and kind",
			},
			[]string{"provider", "model", "kind"},
		),
		cost: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cost_usd_total",
				Help:      "Total cost in USD by provider and model",
			},
			[]string{"provider", "model"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Request latency in seconds",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"provider"},
		),
	}

	r.registry.MustRegister(r.requests, r.tokens, r.cost, r.duration)
	return r
}

// Registry returns the registry the metrics are registered with.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Seed adds previously recorded requests so totals span invocations.
func (r *Recorder) Seed(records []store.CostRecord) {
	for _, rec := range records {
		provider := string(rec.Provider)
		r.requests.WithLabelValues(provider, rec.Model, "success").Inc()
		r.addUsage(provider, rec.Model, rec.PromptTokens, rec.CompletionTokens, rec.Cost)
	}
}

// Observe records one client event. Start events are ignored.
func (r *Recorder) Observe(e client.Event) {
	provider := string(e.Provider)
	switch e.Type {
	case client.EventRequestComplete:
		r.requests.WithLabelValues(provider, e.Model, "success").Inc()
		r.duration.WithLabelValues(provider).Observe(e.Duration.Seconds())
		if e.Usage != nil {
			r.addUsage(provider, e.Model, e.Usage.PromptTokens, e.Usage.CompletionTokens, e.Usage.Cost)
		}
	case client.EventRequestError:
		r.requests.WithLabelValues(provider, e.Model, "error").Inc()
		r.duration.WithLabelValues(provider).Observe(e.Duration.Seconds())
	}
}

// Drain observes every event already buffered in ch without blocking.
func (r *Recorder) Drain(ch <-chan client.Event) {
	for {
		select {
		case e := <-ch:
			r.Observe(e)
		default:
			return
		}
	}
}

func (r *Recorder) addUsage(provider, model string, prompt, completion int, cost float64) {
	r.tokens.WithLabelValues(provider, model, "prompt").Add(float64(prompt))
	r.tokens.WithLabelValues(provider, model, "completion").Add(float64(completion))
	if cost > 0 {
		r.cost.WithLabelValues(provider, model).Add(cost)
	}
}

// WriteTextfile writes the registry to path in the text exposition format.
// An empty path is a no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	slog.Debug("metrics written", "path", path)
	return nil
}
