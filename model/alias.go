package model

import ai "github.com/spetersoncode/aidispatch"

// Aliases maps user-facing model names to the identifiers each vendor API
// expects. Names missing from a provider's table are sent unchanged.
// Cost is always computed from the user-facing name.
var Aliases = map[ai.Provider]map[string]string{
	ai.ProviderAnthropic: {
		"claude-3-opus":     "claude-3-opus-20240229",
		"claude-3-sonnet":   "claude-3-sonnet-20240229",
		"claude-3-haiku":    "claude-3-haiku-20240307",
		"claude-3-5-sonnet": "claude-3-5-sonnet-latest",
	},
	ai.ProviderGemini: {
		"gemini-1.0-pro":        "gemini-pro",
		"gemini-1.0-pro-vision": "gemini-pro-vision",
		"gemini-2.0-flash-exp":  "gemini-2.0-flash",
	},
}

// Resolve returns the API identifier for a model name.
func Resolve(p ai.Provider, id string) string {
	if mapped, ok := Aliases[p][id]; ok {
		return mapped
	}
	return id
}
