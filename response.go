package aidispatch

import "time"

// Response is the normalized result returned by every adapter.
type Response struct {
	Content  string   `json:"content"`
	Model    string   `json:"model"`
	Provider Provider `json:"provider"`
	Usage    *Usage   `json:"usage,omitempty"`
	// Timestamp is the completion time in Unix milliseconds.
	Timestamp int64 `json:"timestamp"`
	// Streamed is true when the content was already echoed chunk by chunk.
	Streamed bool `json:"streamed,omitempty"`
}

// Usage contains token counts and the computed cost of a request.
type Usage struct {
	PromptTokens     int     `json:"promptTokens"`
	CompletionTokens int     `json:"completionTokens"`
	TotalTokens      int     `json:"totalTokens"`
	Cost             float64 `json:"cost"`
}

// NewUsage builds a Usage with TotalTokens filled in.
func NewUsage(promptTokens, completionTokens int, cost float64) *Usage {
	return &Usage{
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
		Cost:             cost,
	}
}

// Time returns Timestamp as a time.Time.
func (r *Response) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// NewResponse builds a Response stamped with the current time.
func NewResponse(provider Provider, model, content string, usage *Usage) *Response {
	return &Response{
		Content:   content,
		Model:     model,
		Provider:  provider,
		Usage:     usage,
		Timestamp: time.Now().UnixMilli(),
	}
}
