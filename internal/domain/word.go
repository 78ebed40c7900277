package domain

import (
	"time"
)

// Word is a vocabulary word tracked through its learning lifecycle.
// Identity is the surrogate ID or the unique natural key WordStem;
// both are immutable once the row exists.
type Word struct {
	ID                  int64
	WordStem            string
	OriginalContext     *string
	BookTitle           *string
	Definition          *string
	Phonetic            *string
	Status              WordStatus
	BucketDate          *time.Time
	NextReviewDate      *time.Time
	DifficultyScore     *int
	PriorityTier        *int
	StatusCorrectStreak int
	ManualFlag          bool
}

// HasDefinition returns true if the word carries a non-empty definition.
func (w *Word) HasDefinition() bool {
	return w.Definition != nil && *w.Definition != ""
}

// Example is one illustrative sentence belonging to a word.
// Examples are replaced wholesale on re-enrichment, never merged.
type Example struct {
	ID       int64
	WordID   int64
	Sentence string
}

// Distractor is a plausible-but-wrong definition phrase belonging to a word,
// used as a wrong answer in quiz-style review. Replaced wholesale alongside
// examples.
type Distractor struct {
	ID          int64
	WordID      int64
	Text        string
	IsPlausible bool
}

// Insult is a static lookup row shown by the study app after wrong answers.
// Seeded once by migration, read-only afterwards.
type Insult struct {
	ID       int64
	Text     string
	Severity int
}
