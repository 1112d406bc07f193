// Package model holds the static model catalogue and the cost model.
//
// Every known chat model carries its provider and its price per thousand
// tokens. The catalogue drives provider selection (a model name routes to
// the provider that lists it) and cost accounting:
//
//	cost := model.CalculateCost("gpt-3.5-turbo", usage.PromptTokens, usage.CompletionTokens)
//
// Models missing from the table cost 0; that is a fallback, not an error.
//
// # Aliases
//
// Some providers accept names that differ from their API identifiers.
// [Aliases] maps them per provider and [Resolve] applies the mapping.
// Costs are always computed from the name the user supplied.
//
// # Token Estimates
//
// When a provider reports no usage (Gemini, streaming), [EstimateTokens]
// approximates tokens as ceil(characters / 4).
package model
