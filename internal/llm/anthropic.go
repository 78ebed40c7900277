package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/vocabmaster/internal/config"
)

// AnthropicClient implements Client against the Anthropic Messages API.
type AnthropicClient struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	log       *slog.Logger
}

// NewAnthropicClient creates a Client backed by the Anthropic API.
func NewAnthropicClient(cfg config.LLMConfig, log *slog.Logger) *AnthropicClient {
	return &AnthropicClient{
		client: anthropic.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithRequestTimeout(cfg.Timeout),
		),
		model:     cfg.Model,
		maxTokens: int64(cfg.MaxTokens),
		log:       log.With(slog.String("component", "llm")),
	}
}

// AssessDifficulty implements Client.
func (c *AnthropicClient) AssessDifficulty(ctx context.Context, words []string) (map[string]int, error) {
	prompt := fmt.Sprintf(`Analyze the following list of words. Assign a difficulty score (1-10) to each, where 1 is very basic (pedestrian) and 10 is extremely obscure.

Words: %s

Return ONLY a JSON object where keys are the words and values are the integer scores.
Example: {"word1": 5, "word2": 2}`, strings.Join(words, ", "))

	raw, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return c.decodeIntMap(raw, "assess")
}

// Enrich implements Client.
func (c *AnthropicClient) Enrich(ctx context.Context, words []string) (map[string]Payload, error) {
	prompt := fmt.Sprintf(`For each word, return:
- definition: 5-12 words, plain English, no filler.
- distractors: 15 short definition-style phrases (5-12 words), same part of speech.
  Each distractor MUST be a definition-style clause with a verb (e.g., "being...", "having...", "marked by...", "characterized by...").
  Match the definition's format and length (use a similar lead-in like "Relating to...", within 2 words either way).
  Do NOT output noun-only fragments.
  Mix difficulty: 5 easy wrong, 7 medium, 3 hard-but-wrong.
  Avoid close synonyms or near-misses that could confuse learners.
  Do NOT use the target word or close variants.
  Avoid meta labels like category/genre/brand/model/app/software/name/address.
  Do NOT output concrete objects, food items, scene fragments, single nouns, or generic labels like "a type of X".
- examples: 5 sentences, 12-25 words each, each must include the word (or inflected form).
  Provide helpful context for someone learning the word; use book-like usage.
  The context should NOT be a dead giveaway for the definition, and NOT useless for inferring meaning.
  Avoid bland, generic sentences.

Words: %s

Return ONLY a JSON object where the keys are the words and the values are objects with this structure:
{
  "word_stem": {
    "definition": "Short, punchy definition",
    "distractors": ["distractor 1", "...", "distractor 15"],
    "examples": ["sentence 1", "...", "sentence 5"]
  }
}`, strings.Join(words, ", "))

	raw, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	// Decode per word so one malformed entry does not discard the batch.
	var entries map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode enrich response: %w", err)
	}

	payloads := make(map[string]Payload, len(entries))
	for word, entry := range entries {
		var p Payload
		if err := json.Unmarshal(entry, &p); err != nil {
			c.log.Warn("skipping malformed enrichment entry",
				slog.String("word", word), slog.Any("error", err))
			continue
		}
		payloads[word] = p
	}
	return payloads, nil
}

// RankTiers implements Client.
func (c *AnthropicClient) RankTiers(ctx context.Context, words []string) (map[string]int, error) {
	prompt := fmt.Sprintf(`You are a strict lexicographer. I have a list of %d words.
Rank them by frequency of use in modern English and assign them to 5 Tiers.

Constraints:
1. Divide the list into 5 roughly equal groups (Quintiles).
2. Tier 1 = Most Useful / Highest Frequency (e.g., 'Nuance', 'Pragmatic').
3. Tier 5 = Least Useful / Obscure / Archaic (e.g., 'Crapulent', 'Defenestrate').

Words: %s

Return ONLY a JSON object: {"word_stem": tier_integer}`, len(words), strings.Join(words, ", "))

	raw, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return c.decodeIntMap(raw, "rank")
}

// complete sends one prompt and returns the JSON object embedded in the
// model's reply.
func (c *AnthropicClient) complete(ctx context.Context, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm api call: %w", err)
	}
	if len(msg.Content) == 0 {
		return "", fmt.Errorf("empty llm response")
	}

	jsonStr, err := extractJSON(msg.Content[0].Text)
	if err != nil {
		return "", err
	}
	if !json.Valid([]byte(jsonStr)) {
		return "", fmt.Errorf("llm response does not contain valid JSON")
	}
	return jsonStr, nil
}

// decodeIntMap decodes a {"word": n} response, skipping entries whose value
// is not an integer.
func (c *AnthropicClient) decodeIntMap(raw, op string) (map[string]int, error) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", op, err)
	}

	scores := make(map[string]int, len(entries))
	for word, entry := range entries {
		var n int
		if err := json.Unmarshal(entry, &n); err != nil {
			c.log.Warn("skipping non-integer score",
				slog.String("op", op), slog.String("word", word))
			continue
		}
		scores[word] = n
	}
	return scores, nil
}

// extractJSON finds the first complete JSON object in a string.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}
