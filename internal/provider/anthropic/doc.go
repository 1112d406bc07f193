// Package anthropic adapts the Anthropic Messages API to [aidispatch.Adapter].
//
// The adapter wraps the official Anthropic Go SDK. The SDK client is
// created on the first Send and reused for the life of the adapter.
//
// Short model names such as "claude-3-opus" are mapped to dated API
// identifiers through [model.Aliases]; costs use the short name.
//
// The Messages API requires a token limit, so requests without MaxTokens
// send [DefaultMaxTokens].
package anthropic
