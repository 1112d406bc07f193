// Package google adapts the Gemini API to [aidispatch.Adapter] using the
// google.golang.org/genai SDK.
//
// Legacy model names are rewritten through [model.Aliases] before the call
// (for example "gemini-1.0-pro" becomes "gemini-pro"). Costs use the name
// the caller supplied.
//
// With Request.Stream set, the adapter consumes GenerateContentStream,
// writes each chunk to its stream writer and returns the concatenated text.
// Streamed usage is estimated from character counts.
package google
