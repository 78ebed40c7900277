// Package assess implements the difficulty-assessment pipeline: New words are
// scored 1-10 by the language model and pedestrian ones are auto-ignored.
package assess

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/vocabmaster/internal/domain"
	"github.com/heartmarshall/vocabmaster/internal/llm"
)

type wordRepo interface {
	ListByStatus(ctx context.Context, status domain.WordStatus) ([]domain.Word, error)
	SetDifficulty(ctx context.Context, stem string, score int, status, expectStatus domain.WordStatus) (int64, error)
}

// Service provides the difficulty-assessment pipeline.
type Service struct {
	words     wordRepo
	llm       llm.Client
	batchSize int
	threshold int
	log       *slog.Logger
}

// NewService creates a new Assess service. Words scoring strictly below
// threshold are marked Ignored.
func NewService(log *slog.Logger, words wordRepo, client llm.Client, batchSize, threshold int) *Service {
	return &Service{
		words:     words,
		llm:       client,
		batchSize: batchSize,
		threshold: threshold,
		log:       log.With("service", "assess"),
	}
}

// Summary reports an assessment run.
type Summary struct {
	// Total is how many New words were sent to the model.
	Total int `json:"total"`
	// Scored is how many received a persisted difficulty score.
	Scored int `json:"scored"`
	// Ignored is how many scored below the pedestrian threshold.
	Ignored int `json:"ignored"`
	// Skipped is how many got no usable score (missing, out of range, or a
	// failed batch) or left the New status while the run was in flight.
	Skipped int `json:"skipped"`
}

// Run scores every New word. The score only lands on rows still in New, so a
// word promoted concurrently keeps its later state.
func (s *Service) Run(ctx context.Context, progress func(done, total int)) (Summary, error) {
	words, err := s.words.ListByStatus(ctx, domain.WordStatusNew)
	if err != nil {
		return Summary{}, fmt.Errorf("list new words: %w", err)
	}

	summary := Summary{Total: len(words)}
	stems := make([]string, len(words))
	for i, w := range words {
		stems[i] = w.WordStem
	}

	for start := 0; start < len(stems); start += s.batchSize {
		end := min(start+s.batchSize, len(stems))
		batch := stems[start:end]

		scores, err := s.llm.AssessDifficulty(ctx, batch)
		if err != nil {
			s.log.WarnContext(ctx, "assess batch failed, skipping",
				slog.Int("batch_size", len(batch)), slog.Any("error", err))
			summary.Skipped += len(batch)
			if progress != nil {
				progress(end, len(stems))
			}
			continue
		}

		for _, stem := range batch {
			score, ok := llm.Lookup(scores, stem)
			if !ok {
				summary.Skipped++
				continue
			}
			if score < 1 || score > 10 {
				s.log.WarnContext(ctx, "score out of range",
					slog.String("stem", stem), slog.Int("score", score))
				summary.Skipped++
				continue
			}

			status := domain.WordStatusNew
			if score < s.threshold {
				status = domain.WordStatusIgnored
			}

			n, err := s.words.SetDifficulty(ctx, stem, score, status, domain.WordStatusNew)
			if err != nil {
				return summary, fmt.Errorf("set difficulty for %q: %w", stem, err)
			}
			if n == 0 {
				summary.Skipped++
				continue
			}
			summary.Scored++
			if status == domain.WordStatusIgnored {
				summary.Ignored++
			}
		}

		if progress != nil {
			progress(end, len(stems))
		}
	}

	s.log.InfoContext(ctx, "assessment finished",
		slog.Int("total", summary.Total),
		slog.Int("scored", summary.Scored),
		slog.Int("ignored", summary.Ignored),
		slog.Int("skipped", summary.Skipped),
	)
	return summary, nil
}
