package domain

// WordStatus represents the lifecycle stage of a word.
// The literal values are shared with the grid UI and the study app;
// declaration order is the order the UI presents them in.
type WordStatus string

const (
	WordStatusNew        WordStatus = "New"
	WordStatusOnDeck     WordStatus = "On Deck"
	WordStatusLearning   WordStatus = "Learning"
	WordStatusProficient WordStatus = "Proficient"
	WordStatusAdept      WordStatus = "Adept"
	WordStatusMastered   WordStatus = "Mastered"
	WordStatusIgnored    WordStatus = "Ignored"
	WordStatusPaused     WordStatus = "Pau(S)ed"
)

func (s WordStatus) String() string { return string(s) }

func (s WordStatus) IsValid() bool {
	switch s {
	case WordStatusNew, WordStatusOnDeck, WordStatusLearning, WordStatusProficient,
		WordStatusAdept, WordStatusMastered, WordStatusIgnored, WordStatusPaused:
		return true
	}
	return false
}

// AllWordStatuses returns every status in presentation order.
func AllWordStatuses() []WordStatus {
	return []WordStatus{
		WordStatusNew, WordStatusOnDeck, WordStatusLearning, WordStatusProficient,
		WordStatusAdept, WordStatusMastered, WordStatusIgnored, WordStatusPaused,
	}
}

// StudyResult represents the outcome of a single study-log attempt.
type StudyResult string

const (
	StudyResultCorrect   StudyResult = "Correct"
	StudyResultIncorrect StudyResult = "Incorrect"
)

func (r StudyResult) String() string { return string(r) }

func (r StudyResult) IsValid() bool {
	switch r {
	case StudyResultCorrect, StudyResultIncorrect:
		return true
	}
	return false
}
