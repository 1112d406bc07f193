package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	ai "github.com/spetersoncode/aidispatch"
)

const costsKey = "records"

// CostRecord is the billing line for one request that reported usage.
type CostRecord struct {
	ID               string      `json:"id"`
	Model            string      `json:"model"`
	Provider         ai.Provider `json:"provider"`
	PromptTokens     int         `json:"promptTokens"`
	CompletionTokens int         `json:"completionTokens"`
	TotalTokens      int         `json:"totalTokens"`
	Cost             float64     `json:"cost"`
	Timestamp        int64       `json:"timestamp"`
}

// Time returns the record timestamp.
func (r CostRecord) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// Summary totals cost over a range of records.
type Summary struct {
	Total   float64            `json:"total"`
	ByModel map[string]float64 `json:"byModel"`
	Count   int                `json:"count"`
}

// CostLedger is an append-only list of cost records.
type CostLedger struct {
	mu      sync.Mutex
	adapter Adapter
}

// NewCostLedger returns a ledger over adapter.
func NewCostLedger(adapter Adapter) *CostLedger {
	return &CostLedger{adapter: adapter}
}

// Append records the usage of resp. Responses without usage are skipped
// and yield a nil record.
func (l *CostLedger) Append(ctx context.Context, resp *ai.Response) (*CostRecord, error) {
	if resp == nil || resp.Usage == nil {
		return nil, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	records, _, err := getJSON[[]CostRecord](ctx, l.adapter, costsKey)
	if err != nil {
		return nil, err
	}

	record := CostRecord{
		ID:               uuid.NewString(),
		Model:            resp.Model,
		Provider:         resp.Provider,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
		Cost:             resp.Usage.Cost,
		Timestamp:        resp.Timestamp,
	}
	if record.Timestamp == 0 {
		record.Timestamp = time.Now().UnixMilli()
	}

	records = append(records, record)
	if err := setJSON(ctx, l.adapter, costsKey, records); err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns all records, oldest first.
func (l *CostLedger) List(ctx context.Context) ([]CostRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	records, _, err := getJSON[[]CostRecord](ctx, l.adapter, costsKey)
	return records, err
}

// TotalBetween sums records with start <= timestamp <= end. A zero start
// or end leaves that side open.
func (l *CostLedger) TotalBetween(ctx context.Context, start, end time.Time) (Summary, error) {
	records, err := l.List(ctx)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{ByModel: make(map[string]float64)}
	for _, r := range records {
		ts := r.Time()
		if !start.IsZero() && ts.Before(start) {
			continue
		}
		if !end.IsZero() && ts.After(end) {
			continue
		}
		sum.Total += r.Cost
		sum.ByModel[r.Model] += r.Cost
		sum.Count++
	}
	return sum, nil
}
