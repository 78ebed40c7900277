// Package importer implements Kindle vocabulary import: distinct lookups from
// a vocab.db file become New words, stems already in the bank are skipped.
package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/vocabmaster/internal/adapter/kindle"
)

type wordRepo interface {
	InsertIgnore(ctx context.Context, stem, usage, bookTitle string) (bool, error)
}

// Service provides vocabulary import operations.
type Service struct {
	words    wordRepo
	readFile func(ctx context.Context, path string) ([]kindle.Lookup, error)
	log      *slog.Logger
}

// NewService creates a new Importer service.
func NewService(log *slog.Logger, words wordRepo) *Service {
	return &Service{
		words:    words,
		readFile: kindle.ReadFile,
		log:      log.With("service", "importer"),
	}
}

// Summary reports an import run.
type Summary struct {
	// Found is how many distinct stems the source contained.
	Found int `json:"found"`
	// Added is how many of them were new to the word bank.
	Added int `json:"added"`
}

// Import inserts the lookups into the word bank. Stems that already exist are
// left untouched, whatever their current status.
func (s *Service) Import(ctx context.Context, lookups []kindle.Lookup) (Summary, error) {
	summary := Summary{Found: len(lookups)}
	for _, l := range lookups {
		added, err := s.words.InsertIgnore(ctx, l.Stem, l.Usage, l.BookTitle)
		if err != nil {
			return summary, fmt.Errorf("import %q: %w", l.Stem, err)
		}
		if added {
			summary.Added++
		}
	}

	s.log.InfoContext(ctx, "import finished",
		slog.Int("found", summary.Found),
		slog.Int("added", summary.Added),
	)
	return summary, nil
}

// ImportFile reads a Kindle vocab.db from disk and imports its lookups.
func (s *Service) ImportFile(ctx context.Context, path string) (Summary, error) {
	lookups, err := s.readFile(ctx, path)
	if err != nil {
		return Summary{}, fmt.Errorf("read vocab db: %w", err)
	}
	return s.Import(ctx, lookups)
}
