package llm

import "strings"

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

// LookupCost returns the pricing for a model ID or one of the short
// aliases accepted in configuration, or nil if unknown. OpenRouter IDs
// ("vendor/model") are looked up by their model part.
func LookupCost(modelID string) *ModelCost {
	for _, id := range []string{modelID, resolveAlias(modelID), openRouterModel(modelID)} {
		if c, ok := modelCosts[id]; ok {
			return &c
		}
	}
	return nil
}

// resolveAlias maps a short alias to its full model ID, searching every
// provider's alias table.
func resolveAlias(id string) string {
	for _, aliases := range []map[string]string{anthropicModels, openaiModels, geminiModels} {
		if full, ok := aliases[id]; ok {
			return full
		}
	}
	return id
}

func openRouterModel(id string) string {
	return id[strings.LastIndex(id, "/")+1:]
}

// modelCosts covers the models the classifier is configured with by
// default. Prices from models.dev, 2026-02-15.
var modelCosts = map[string]ModelCost{
	// Anthropic
	"claude-haiku-4-5":           {1, 5},
	"claude-haiku-4-5-20251001":  {1, 5},
	"claude-sonnet-4-5":          {3, 15},
	"claude-sonnet-4-5-20250929": {3, 15},
	"claude-opus-4-5":            {5, 25},
	"claude-opus-4-5-20251101":   {5, 25},

	// OpenAI
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5-nano":   {0.05, 0.4},

	// Google (Gemini)
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
}
