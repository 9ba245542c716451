package llm

import "github.com/abhisek/mockview/internal/store"

// ModelCost holds per-million-token pricing for a model in USD.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model ID, or nil if unknown.
func LookupCost(modelID string) *ModelCost {
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	return nil
}

// EstimateCost sums the cost of recorded requests. Requests for models
// without a known price are counted in unpriced.
func EstimateCost(events []store.LLMEventRecord) (usd float64, unpriced int) {
	for _, ev := range events {
		c := LookupCost(ev.Model)
		if c == nil {
			unpriced++
			continue
		}
		usd += c.Cost(ev.InputTokens, ev.OutputTokens)
	}
	return usd, unpriced
}

// modelCosts covers the models the friendly names resolve to plus common
// direct IDs. Prices from models.dev.
var modelCosts = map[string]ModelCost{
	"claude-3-5-haiku-latest":   {0.8, 4},
	"claude-haiku-4-5":          {1, 5},
	"claude-haiku-4-5-20251001": {1, 5},
	"claude-sonnet-4-20250514":  {3, 15},
	"claude-sonnet-4-5":         {3, 15},
	"claude-opus-4-5":           {5, 25},

	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-5-mini":   {0.25, 2},
	"o4-mini":      {1.1, 4.4},

	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-pro":        {1.25, 10},
}
