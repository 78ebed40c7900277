// Package llm defines the language-model client used by the assessment,
// enrichment and ranking pipelines, plus shared helpers for cleaning model
// output before it reaches storage.
package llm

import "context"

// Client is the language-model surface the pipelines depend on. Every method
// takes a batch of word stems and returns results keyed by stem; words the
// model failed to produce usable output for are simply absent from the map.
type Client interface {
	// AssessDifficulty scores each word from 1 (pedestrian) to 10 (obscure).
	AssessDifficulty(ctx context.Context, words []string) (map[string]int, error)

	// Enrich produces a definition, example sentences and quiz distractors
	// for each word.
	Enrich(ctx context.Context, words []string) (map[string]Payload, error)

	// RankTiers assigns each word a frequency tier from 1 (most useful)
	// to 5 (obscure).
	RankTiers(ctx context.Context, words []string) (map[string]int, error)
}

// Payload is the enrichment output for a single word.
type Payload struct {
	Definition  string     `json:"definition"`
	Examples    StringList `json:"examples"`
	Distractors StringList `json:"distractors"`
}
