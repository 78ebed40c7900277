// Package enrich implements the enrichment pipeline: the language model
// produces a definition, example sentences and quiz distractors for each word,
// and New words are promoted to On Deck as they gain a definition.
package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/vocabmaster/internal/domain"
	"github.com/heartmarshall/vocabmaster/internal/llm"
)

type wordRepo interface {
	ListByStatus(ctx context.Context, status domain.WordStatus) ([]domain.Word, error)
	IDByStem(ctx context.Context, stem string) (int64, error)
	PromoteWithDefinition(ctx context.Context, stem, definition string, bucketDate time.Time) (int64, error)
	SetDefinition(ctx context.Context, stem, definition string, status domain.WordStatus) (int64, error)
}

type childRepo interface {
	ReplaceForWord(ctx context.Context, wordID int64, items []string) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides the enrichment pipeline.
type Service struct {
	words       wordRepo
	examples    childRepo
	distractors childRepo
	txm         txManager
	llm         llm.Client
	batchSize   int
	now         func() time.Time
	log         *slog.Logger
}

// NewService creates a new Enrich service.
func NewService(
	log *slog.Logger,
	words wordRepo,
	examples childRepo,
	distractors childRepo,
	txm txManager,
	client llm.Client,
	batchSize int,
) *Service {
	return &Service{
		words:       words,
		examples:    examples,
		distractors: distractors,
		txm:         txm,
		llm:         client,
		batchSize:   batchSize,
		now:         time.Now,
		log:         log.With("service", "enrich"),
	}
}

// WordDetail is the per-word line of an enrichment summary.
type WordDetail struct {
	Word        string `json:"word"`
	Examples    int    `json:"examples"`
	Distractors int    `json:"distractors"`
}

// Summary reports an enrichment run.
type Summary struct {
	Total           int          `json:"total"`
	Enriched        int          `json:"enriched"`
	WithExamples    int          `json:"with_examples"`
	WithDistractors int          `json:"with_distractors"`
	AvgExamples     float64      `json:"avg_examples"`
	AvgDistractors  float64      `json:"avg_distractors"`
	Details         []WordDetail `json:"details,omitempty"`
}

// Run enriches every word currently in the given status. Enriching New words
// promotes them to On Deck and stamps today's bucket date; any other status
// only has its definition and children refreshed. Each word lands in its own
// transaction, so a failure mid-run keeps everything enriched so far. A failed
// model call skips its batch and the run moves on to the next one.
func (s *Service) Run(ctx context.Context, status domain.WordStatus, progress func(done, total int)) (Summary, error) {
	words, err := s.words.ListByStatus(ctx, status)
	if err != nil {
		return Summary{}, fmt.Errorf("list %s words: %w", status, err)
	}

	summary := Summary{Total: len(words)}
	stems := make([]string, len(words))
	for i, w := range words {
		stems[i] = w.WordStem
	}

	var totalExamples, totalDistractors int
	for start := 0; start < len(stems); start += s.batchSize {
		end := min(start+s.batchSize, len(stems))
		batch := stems[start:end]

		payloads, err := s.llm.Enrich(ctx, batch)
		if err != nil {
			s.log.WarnContext(ctx, "enrich batch failed, skipping",
				slog.Int("batch_size", len(batch)), slog.Any("error", err))
			if progress != nil {
				progress(end, len(stems))
			}
			continue
		}

		for _, stem := range batch {
			raw, ok := llm.Lookup(payloads, stem)
			if !ok {
				continue
			}
			payload := llm.CleanPayload(raw)
			if payload.Definition == "" {
				s.log.WarnContext(ctx, "empty definition, word skipped", slog.String("word", stem))
				continue
			}

			detail, err := s.enrichWord(ctx, stem, status, payload)
			if err != nil {
				return summary, fmt.Errorf("enrich %q: %w", stem, err)
			}
			if detail == nil {
				continue
			}

			summary.Enriched++
			if detail.Examples > 0 {
				summary.WithExamples++
			}
			if detail.Distractors > 0 {
				summary.WithDistractors++
			}
			totalExamples += detail.Examples
			totalDistractors += detail.Distractors
			summary.Details = append(summary.Details, *detail)
		}

		if progress != nil {
			progress(end, len(stems))
		}
	}

	if summary.Enriched > 0 {
		summary.AvgExamples = float64(totalExamples) / float64(summary.Enriched)
		summary.AvgDistractors = float64(totalDistractors) / float64(summary.Enriched)
	}

	s.log.InfoContext(ctx, "enrichment finished",
		slog.String("status", string(status)),
		slog.Int("total", summary.Total),
		slog.Int("enriched", summary.Enriched),
		slog.Int("with_examples", summary.WithExamples),
		slog.Int("with_distractors", summary.WithDistractors),
	)
	return summary, nil
}

// enrichWord applies one word's payload inside a transaction. A nil detail
// means the word update hit no row, which happens when the word left the
// status while the run was in flight; its children are then left alone.
func (s *Service) enrichWord(ctx context.Context, stem string, status domain.WordStatus, payload llm.Payload) (*WordDetail, error) {
	var detail *WordDetail
	err := s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		var (
			n   int64
			err error
		)
		if status == domain.WordStatusNew {
			n, err = s.words.PromoteWithDefinition(txCtx, stem, payload.Definition, s.now().UTC())
		} else {
			n, err = s.words.SetDefinition(txCtx, stem, payload.Definition, status)
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}

		wordID, err := s.words.IDByStem(txCtx, stem)
		if err != nil {
			return err
		}
		if err := s.examples.ReplaceForWord(txCtx, wordID, payload.Examples); err != nil {
			return err
		}
		if err := s.distractors.ReplaceForWord(txCtx, wordID, payload.Distractors); err != nil {
			return err
		}

		detail = &WordDetail{
			Word:        stem,
			Examples:    len(payload.Examples),
			Distractors: len(payload.Distractors),
		}
		return nil
	})
	return detail, err
}
