package enrich

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/heartmarshall/vocabmaster/internal/domain"
	"github.com/heartmarshall/vocabmaster/internal/llm"
)

type wordRepoMock struct {
	ListByStatusFunc          func(ctx context.Context, status domain.WordStatus) ([]domain.Word, error)
	IDByStemFunc              func(ctx context.Context, stem string) (int64, error)
	PromoteWithDefinitionFunc func(ctx context.Context, stem, definition string, bucketDate time.Time) (int64, error)
	SetDefinitionFunc         func(ctx context.Context, stem, definition string, status domain.WordStatus) (int64, error)
}

func (m *wordRepoMock) ListByStatus(ctx context.Context, status domain.WordStatus) ([]domain.Word, error) {
	return m.ListByStatusFunc(ctx, status)
}

func (m *wordRepoMock) IDByStem(ctx context.Context, stem string) (int64, error) {
	return m.IDByStemFunc(ctx, stem)
}

func (m *wordRepoMock) PromoteWithDefinition(ctx context.Context, stem, definition string, bucketDate time.Time) (int64, error) {
	if m.PromoteWithDefinitionFunc == nil {
		panic("wordRepoMock.PromoteWithDefinitionFunc: method is nil but was just called")
	}
	return m.PromoteWithDefinitionFunc(ctx, stem, definition, bucketDate)
}

func (m *wordRepoMock) SetDefinition(ctx context.Context, stem, definition string, status domain.WordStatus) (int64, error) {
	if m.SetDefinitionFunc == nil {
		panic("wordRepoMock.SetDefinitionFunc: method is nil but was just called")
	}
	return m.SetDefinitionFunc(ctx, stem, definition, status)
}

type childRepoMock struct {
	ReplaceForWordFunc func(ctx context.Context, wordID int64, items []string) error

	replaced map[int64][]string
}

func (m *childRepoMock) ReplaceForWord(ctx context.Context, wordID int64, items []string) error {
	if m.replaced == nil {
		m.replaced = make(map[int64][]string)
	}
	m.replaced[wordID] = items
	if m.ReplaceForWordFunc != nil {
		return m.ReplaceForWordFunc(ctx, wordID, items)
	}
	return nil
}

// txManagerMock runs the function directly, no transaction.
type txManagerMock struct {
	runs int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.runs++
	return fn(ctx)
}

type llmMock struct {
	EnrichFunc func(ctx context.Context, words []string) (map[string]llm.Payload, error)
}

func (m *llmMock) AssessDifficulty(ctx context.Context, words []string) (map[string]int, error) {
	panic("not used")
}
func (m *llmMock) Enrich(ctx context.Context, words []string) (map[string]llm.Payload, error) {
	return m.EnrichFunc(ctx, words)
}
func (m *llmMock) RankTiers(ctx context.Context, words []string) (map[string]int, error) {
	panic("not used")
}

func newTestService(words *wordRepoMock, examples, distractors *childRepoMock, txm *txManagerMock, client llm.Client) *Service {
	return &Service{
		words:       words,
		examples:    examples,
		distractors: distractors,
		txm:         txm,
		llm:         client,
		batchSize:   5,
		now:         func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
		log:         slog.Default(),
	}
}

func payloadFor(word string) llm.Payload {
	return llm.Payload{
		Definition:  "A definition for " + word + ".",
		Examples:    llm.StringList{"Sentence one with " + word + ".", "Sentence two."},
		Distractors: llm.StringList{"Relating to weather", "Relating to music"},
	}
}

func TestRun_PromotesNewWords(t *testing.T) {
	t.Parallel()

	var promoted []string
	words := &wordRepoMock{
		ListByStatusFunc: func(ctx context.Context, status domain.WordStatus) ([]domain.Word, error) {
			return []domain.Word{{ID: 1, WordStem: "ephemeral", Status: status}}, nil
		},
		PromoteWithDefinitionFunc: func(ctx context.Context, stem, definition string, bucketDate time.Time) (int64, error) {
			promoted = append(promoted, stem)
			if bucketDate.Format("2006-01-02") != "2025-06-01" {
				t.Errorf("bucket date: got %v", bucketDate)
			}
			return 1, nil
		},
		IDByStemFunc: func(ctx context.Context, stem string) (int64, error) { return 1, nil },
	}
	examples := &childRepoMock{}
	distractors := &childRepoMock{}
	txm := &txManagerMock{}
	client := &llmMock{
		EnrichFunc: func(ctx context.Context, batch []string) (map[string]llm.Payload, error) {
			return map[string]llm.Payload{"ephemeral": payloadFor("ephemeral")}, nil
		},
	}

	svc := newTestService(words, examples, distractors, txm, client)
	summary, err := svc.Run(context.Background(), domain.WordStatusNew, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Enriched != 1 || summary.WithExamples != 1 || summary.WithDistractors != 1 {
		t.Errorf("summary: got %+v", summary)
	}
	if summary.AvgExamples != 2 || summary.AvgDistractors != 2 {
		t.Errorf("averages: got %+v", summary)
	}
	if len(promoted) != 1 {
		t.Errorf("promoted: got %v", promoted)
	}
	if len(examples.replaced[1]) != 2 || len(distractors.replaced[1]) != 2 {
		t.Errorf("children: examples=%v distractors=%v", examples.replaced, distractors.replaced)
	}
	if txm.runs != 1 {
		t.Errorf("tx runs: got %d, want 1", txm.runs)
	}
}

func TestRun_NonNewStatusKeepsStatus(t *testing.T) {
	t.Parallel()

	words := &wordRepoMock{
		ListByStatusFunc: func(ctx context.Context, status domain.WordStatus) ([]domain.Word, error) {
			return []domain.Word{{ID: 3, WordStem: "limn", Status: status}}, nil
		},
		SetDefinitionFunc: func(ctx context.Context, stem, definition string, status domain.WordStatus) (int64, error) {
			if status != domain.WordStatusLearning {
				t.Errorf("status: got %s", status)
			}
			return 1, nil
		},
		IDByStemFunc: func(ctx context.Context, stem string) (int64, error) { return 3, nil },
	}
	client := &llmMock{
		EnrichFunc: func(ctx context.Context, batch []string) (map[string]llm.Payload, error) {
			return map[string]llm.Payload{"limn": payloadFor("limn")}, nil
		},
	}

	svc := newTestService(words, &childRepoMock{}, &childRepoMock{}, &txManagerMock{}, client)
	summary, err := svc.Run(context.Background(), domain.WordStatusLearning, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Enriched != 1 {
		t.Errorf("summary: got %+v", summary)
	}
}

func TestRun_EmptyDefinitionSkipsWord(t *testing.T) {
	t.Parallel()

	words := &wordRepoMock{
		ListByStatusFunc: func(ctx context.Context, status domain.WordStatus) ([]domain.Word, error) {
			return []domain.Word{{ID: 1, WordStem: "blank", Status: status}}, nil
		},
	}
	client := &llmMock{
		EnrichFunc: func(ctx context.Context, batch []string) (map[string]llm.Payload, error) {
			return map[string]llm.Payload{"blank": {Definition: "   "}}, nil
		},
	}

	txm := &txManagerMock{}
	svc := newTestService(words, &childRepoMock{}, &childRepoMock{}, txm, client)
	summary, err := svc.Run(context.Background(), domain.WordStatusNew, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Enriched != 0 || txm.runs != 0 {
		t.Errorf("summary: %+v, tx runs: %d", summary, txm.runs)
	}
}

func TestRun_MovedWordKeepsChildren(t *testing.T) {
	t.Parallel()

	words := &wordRepoMock{
		ListByStatusFunc: func(ctx context.Context, status domain.WordStatus) ([]domain.Word, error) {
			return []domain.Word{{ID: 1, WordStem: "moved", Status: status}}, nil
		},
		PromoteWithDefinitionFunc: func(ctx context.Context, stem, definition string, bucketDate time.Time) (int64, error) {
			return 0, nil
		},
	}
	client := &llmMock{
		EnrichFunc: func(ctx context.Context, batch []string) (map[string]llm.Payload, error) {
			return map[string]llm.Payload{"moved": payloadFor("moved")}, nil
		},
	}

	examples := &childRepoMock{}
	svc := newTestService(words, examples, &childRepoMock{}, &txManagerMock{}, client)
	summary, err := svc.Run(context.Background(), domain.WordStatusNew, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Enriched != 0 {
		t.Errorf("summary: got %+v", summary)
	}
	if len(examples.replaced) != 0 {
		t.Errorf("children must not be touched: %v", examples.replaced)
	}
}

func TestRun_PayloadIsCleanedBeforeStorage(t *testing.T) {
	t.Parallel()

	words := &wordRepoMock{
		ListByStatusFunc: func(ctx context.Context, status domain.WordStatus) ([]domain.Word, error) {
			return []domain.Word{{ID: 9, WordStem: "nuance", Status: status}}, nil
		},
		PromoteWithDefinitionFunc: func(ctx context.Context, stem, definition string, bucketDate time.Time) (int64, error) {
			if definition != "Trimmed." {
				t.Errorf("definition: got %q", definition)
			}
			return 1, nil
		},
		IDByStemFunc: func(ctx context.Context, stem string) (int64, error) { return 9, nil },
	}
	client := &llmMock{
		EnrichFunc: func(ctx context.Context, batch []string) (map[string]llm.Payload, error) {
			return map[string]llm.Payload{"nuance": {
				Definition:  "  Trimmed.  ",
				Examples:    llm.StringList{" one ", "", "One", "two"},
				Distractors: llm.StringList{"  "},
			}}, nil
		},
	}

	examples := &childRepoMock{}
	distractors := &childRepoMock{}
	svc := newTestService(words, examples, distractors, &txManagerMock{}, client)
	summary, err := svc.Run(context.Background(), domain.WordStatusNew, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(examples.replaced[9]) != 2 {
		t.Errorf("examples: got %v", examples.replaced[9])
	}
	if len(distractors.replaced[9]) != 0 {
		t.Errorf("distractors: got %v", distractors.replaced[9])
	}
	if summary.WithExamples != 1 || summary.WithDistractors != 0 {
		t.Errorf("summary: got %+v", summary)
	}
}

func TestRun_FailedBatchDoesNotStopRun(t *testing.T) {
	t.Parallel()

	words := &wordRepoMock{
		ListByStatusFunc: func(ctx context.Context, status domain.WordStatus) ([]domain.Word, error) {
			return []domain.Word{
				{ID: 1, WordStem: "alpha", Status: status},
				{ID: 2, WordStem: "beta", Status: status},
			}, nil
		},
		PromoteWithDefinitionFunc: func(ctx context.Context, stem, definition string, bucketDate time.Time) (int64, error) {
			return 1, nil
		},
		IDByStemFunc: func(ctx context.Context, stem string) (int64, error) { return 2, nil },
	}
	var call int
	client := &llmMock{
		EnrichFunc: func(ctx context.Context, batch []string) (map[string]llm.Payload, error) {
			call++
			if call == 1 {
				return nil, errors.New("api down")
			}
			return map[string]llm.Payload{batch[0]: payloadFor(batch[0])}, nil
		},
	}

	svc := newTestService(words, &childRepoMock{}, &childRepoMock{}, &txManagerMock{}, client)
	svc.batchSize = 1
	summary, err := svc.Run(context.Background(), domain.WordStatusNew, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if call != 2 {
		t.Fatalf("expected second batch to run, got %d calls", call)
	}
	if summary.Total != 2 || summary.Enriched != 1 {
		t.Errorf("summary: got %+v", summary)
	}
}

func TestRun_TxErrorStopsRun(t *testing.T) {
	t.Parallel()

	words := &wordRepoMock{
		ListByStatusFunc: func(ctx context.Context, status domain.WordStatus) ([]domain.Word, error) {
			return []domain.Word{{ID: 1, WordStem: "boom", Status: status}}, nil
		},
		PromoteWithDefinitionFunc: func(ctx context.Context, stem, definition string, bucketDate time.Time) (int64, error) {
			return 0, errors.New("db down")
		},
	}
	client := &llmMock{
		EnrichFunc: func(ctx context.Context, batch []string) (map[string]llm.Payload, error) {
			return map[string]llm.Payload{"boom": payloadFor("boom")}, nil
		},
	}

	svc := newTestService(words, &childRepoMock{}, &childRepoMock{}, &txManagerMock{}, client)
	_, err := svc.Run(context.Background(), domain.WordStatusNew, nil)
	if err == nil {
		t.Fatal("expected error")
	}
}
