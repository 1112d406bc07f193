package model

import ai "github.com/spetersoncode/aidispatch"

// Pricing contains USD prices per thousand tokens for a chat model.
type Pricing struct {
	InputPerThousand  float64
	OutputPerThousand float64
}

// Cost returns the USD cost of the given token counts.
func (p Pricing) Cost(promptTokens, completionTokens int) float64 {
	return float64(promptTokens)/1000*p.InputPerThousand +
		float64(completionTokens)/1000*p.OutputPerThousand
}

// PricingFor returns the price table entry for a model identifier.
func PricingFor(id string) (Pricing, bool) {
	m, ok := Lookup(id)
	if !ok {
		return Pricing{}, false
	}
	return m.pricing, true
}

// CalculateCost returns the USD cost of a request. Models missing from the
// price table cost 0.
func CalculateCost(id string, promptTokens, completionTokens int) float64 {
	p, ok := PricingFor(id)
	if !ok {
		return 0
	}
	return p.Cost(promptTokens, completionTokens)
}

// EstimateTokens approximates a token count as one token per four
// characters, rounded up. Used when a provider reports no usage.
func EstimateTokens(text string) int {
	n := len([]rune(text))
	return (n + 3) / 4
}

// Usage builds a normalized usage record with its cost for model id.
func Usage(id string, promptTokens, completionTokens int) *ai.Usage {
	return ai.NewUsage(promptTokens, completionTokens, CalculateCost(id, promptTokens, completionTokens))
}

// EstimateUsage builds a usage record from the full input and output text.
func EstimateUsage(id, input, output string) *ai.Usage {
	return Usage(id, EstimateTokens(input), EstimateTokens(output))
}
