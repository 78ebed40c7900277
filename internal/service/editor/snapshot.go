package editor

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/vocabmaster/internal/domain"
	"github.com/heartmarshall/vocabmaster/internal/grid"
)

// Snapshot loads the full word bank as grid rows. The returned rows are the
// baseline a later Sync call diffs the edited grid against.
func (s *Service) Snapshot(ctx context.Context) ([]grid.Row, error) {
	words, err := s.words.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}

	rows := make([]grid.Row, 0, len(words))
	for _, w := range words {
		rows = append(rows, wordToRow(w))
	}
	return rows, nil
}

func wordToRow(w domain.Word) grid.Row {
	manualFlag := int64(0)
	if w.ManualFlag {
		manualFlag = 1
	}
	return grid.Row{
		"id":                    w.ID,
		"word_stem":             w.WordStem,
		"original_context":      textCell(w.OriginalContext),
		"book_title":            textCell(w.BookTitle),
		"definition":            textCell(w.Definition),
		"phonetic":              textCell(w.Phonetic),
		"status":                string(w.Status),
		"bucket_date":           dateCell(w.BucketDate),
		"next_review_date":      dateCell(w.NextReviewDate),
		"difficulty_score":      intCell(w.DifficultyScore),
		"priority_tier":         intCell(w.PriorityTier),
		"status_correct_streak": int64(w.StatusCorrectStreak),
		"manual_flag":           manualFlag,
	}
}

func textCell(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func dateCell(p *time.Time) any {
	if p == nil {
		return nil
	}
	return p.Format("2006-01-02")
}

func intCell(p *int) any {
	if p == nil {
		return nil
	}
	return int64(*p)
}
