// Package rank implements the tier-ranking pipeline: active words without a
// priority tier are split into frequency quintiles by the language model.
package rank

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/vocabmaster/internal/domain"
	"github.com/heartmarshall/vocabmaster/internal/llm"
)

// Tiers run from 1 (most useful) to 5 (obscure).
const (
	MinTier = 1
	MaxTier = 5
)

type wordRepo interface {
	ListUnranked(ctx context.Context) ([]domain.Word, error)
	SetTier(ctx context.Context, stem string, tier int) (int64, error)
	ResetTiers(ctx context.Context) (int64, error)
}

// Service provides the tier-ranking pipeline.
type Service struct {
	words     wordRepo
	llm       llm.Client
	batchSize int
	log       *slog.Logger
}

// NewService creates a new Rank service.
func NewService(log *slog.Logger, words wordRepo, client llm.Client, batchSize int) *Service {
	return &Service{
		words:     words,
		llm:       client,
		batchSize: batchSize,
		log:       log.With("service", "rank"),
	}
}

// Summary reports a ranking run.
type Summary struct {
	// Total is how many unranked active words were sent to the model.
	Total int `json:"total"`
	// Ranked is how many received a persisted tier.
	Ranked int `json:"ranked"`
	// Skipped is how many got no usable tier: missing, out of range, or part
	// of a failed batch.
	Skipped int `json:"skipped"`
}

// Run assigns a tier to every active word that has none yet. Ignored words
// never participate. Unlike assessment, the write is not conditioned on
// status: an unranked word keeps its tier even if its status moved mid-run.
func (s *Service) Run(ctx context.Context, progress func(done, total int)) (Summary, error) {
	words, err := s.words.ListUnranked(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("list unranked words: %w", err)
	}

	summary := Summary{Total: len(words)}
	stems := make([]string, len(words))
	for i, w := range words {
		stems[i] = w.WordStem
	}

	for start := 0; start < len(stems); start += s.batchSize {
		end := min(start+s.batchSize, len(stems))
		batch := stems[start:end]

		tiers, err := s.llm.RankTiers(ctx, batch)
		if err != nil {
			s.log.WarnContext(ctx, "rank batch failed, skipping",
				slog.Int("batch_size", len(batch)), slog.Any("error", err))
			summary.Skipped += len(batch)
			if progress != nil {
				progress(end, len(stems))
			}
			continue
		}

		for _, stem := range batch {
			tier, ok := llm.Lookup(tiers, stem)
			if !ok {
				summary.Skipped++
				continue
			}
			if tier < MinTier || tier > MaxTier {
				s.log.WarnContext(ctx, "tier out of range",
					slog.String("word", stem), slog.Int("tier", tier))
				summary.Skipped++
				continue
			}

			if _, err := s.words.SetTier(ctx, stem, tier); err != nil {
				return summary, fmt.Errorf("set tier for %q: %w", stem, err)
			}
			summary.Ranked++
		}

		if progress != nil {
			progress(end, len(stems))
		}
	}

	s.log.InfoContext(ctx, "ranking finished",
		slog.Int("total", summary.Total),
		slog.Int("ranked", summary.Ranked),
		slog.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

// Reset clears every word's tier, ranked or not. The next Run starts from a
// clean slate.
func (s *Service) Reset(ctx context.Context) (int64, error) {
	n, err := s.words.ResetTiers(ctx)
	if err != nil {
		return 0, fmt.Errorf("reset tiers: %w", err)
	}
	s.log.InfoContext(ctx, "tiers reset", slog.Int64("cleared", n))
	return n, nil
}
