// Package targets holds the fixed list of canonical assets the ticker
// displays. The list is compiled in: changing it requires a redeploy.
package targets

import "github.com/jopli11/PreStocks-Tracker/internal/model"

// Default returns the built-in, ordered target list. Callers receive a
// fresh slice so the configuration stays effectively immutable.
func Default() []model.TargetIdentity {
	return []model.TargetIdentity{
		{Key: "Anthropic", Match: []string{"ANTHROPIC", "ANTH"}},
		{Key: "OpenAI", Match: []string{"OPENAI", "OpenAI"}},
		{Key: "SpaceX", Match: []string{"SPACEX", "SPX"}},
		{Key: "xAI", Match: []string{"XAI"}},
		{Key: "Stripe", Match: []string{"STRIPE"}},
		{Key: "Databricks", Match: []string{"DATABRICKS", "DBRX"}},
		{Key: "Epic Games", Match: []string{"EPIC", "EPIC GAMES"}},
		{Key: "Perplexity", Match: []string{"PERPLEXITY", "PPLX"}},
	}
}
