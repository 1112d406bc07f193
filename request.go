package aidispatch

import (
	"fmt"
	"strings"
)

// Format is the output format requested from the model.
type Format string

// Supported output formats.
const (
	FormatNone       Format = ""
	FormatJSON       Format = "json"
	FormatMarkdown   Format = "markdown"
	FormatText       Format = "text"
	FormatTypeScript Format = "typescript"
)

// ParseFormat converts user input into a Format. Common short names
// ("md", "ts", "txt") are accepted.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return FormatNone, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt", "plain":
		return FormatText, nil
	case "typescript", "ts":
		return FormatTypeScript, nil
	default:
		return "", fmt.Errorf("unknown format %q (must be json, markdown, text, or typescript)", s)
	}
}

// Instruction returns the sentence appended to prompts asking the model for
// this format, or "" when the format needs no instruction.
func (f Format) Instruction() string {
	switch f {
	case FormatJSON:
		return "Please provide the response in valid JSON format."
	case FormatMarkdown:
		return "Please provide the response in Markdown format."
	default:
		return ""
	}
}

// Request is the provider-agnostic description of a single prompt dispatch.
type Request struct {
	Prompt string `json:"prompt"`
	// Model is optional; adapters fall back to their default model.
	Model string `json:"model,omitempty"`
	// Provider is optional; empty and ProviderAuto let the selector decide.
	Provider   Provider `json:"provider,omitempty"`
	Format     Format   `json:"format,omitempty"`
	InputFiles []string `json:"inputFiles,omitempty"`
	OutputFile string   `json:"outputFile,omitempty"`
	Overwrite  bool     `json:"overwrite,omitempty"`
	// Temperature is nil when unset; adapters then use DefaultTemperature.
	Temperature *float64 `json:"temperature,omitempty"`
	// MaxTokens is 0 when unset.
	MaxTokens int  `json:"maxTokens,omitempty"`
	Stream    bool `json:"stream,omitempty"`
}

// DefaultTemperature is used when a request leaves Temperature unset.
const DefaultTemperature = 0.7

// TemperatureOrDefault returns the request temperature or DefaultTemperature.
func (r Request) TemperatureOrDefault() float64 {
	if r.Temperature != nil {
		return *r.Temperature
	}
	return DefaultTemperature
}
