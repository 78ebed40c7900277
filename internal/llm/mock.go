package llm

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
)

// pedestrianWords always score low in the mock, which makes the threshold
// path of the assessment pipeline reproducible in development.
var pedestrianWords = map[string]struct{}{
	"cat": {}, "dog": {}, "house": {}, "run": {},
}

// MockClient is a deterministic Client for development and tests. Scores and
// tiers are derived from a hash of the word, so repeated runs agree.
type MockClient struct{}

// NewMockClient creates a MockClient.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// AssessDifficulty implements Client.
func (m *MockClient) AssessDifficulty(_ context.Context, words []string) (map[string]int, error) {
	scores := make(map[string]int, len(words))
	for _, word := range words {
		if _, ok := pedestrianWords[strings.ToLower(word)]; ok {
			scores[word] = 2
			continue
		}
		scores[word] = 5 + int(hashWord(word)%6)
	}
	return scores, nil
}

// Enrich implements Client.
func (m *MockClient) Enrich(_ context.Context, words []string) (map[string]Payload, error) {
	payloads := make(map[string]Payload, len(words))
	for _, word := range words {
		payloads[word] = Payload{
			Definition: fmt.Sprintf("A concise mock definition for %s.", word),
			Examples: StringList{
				fmt.Sprintf("He showed great %s in the face of danger.", word),
				fmt.Sprintf("The %s in her voice hinted at quiet disappointment.", word),
				fmt.Sprintf("It was a small gesture, but it revealed his %s clearly.", word),
				fmt.Sprintf("Without that %s, the plan would have failed.", word),
				fmt.Sprintf("Their %s was obvious to anyone watching.", word),
			},
			Distractors: StringList{
				"Relating to seasonal weather patterns and forecasting",
				"Relating to theatrical performance and stagecraft traditions",
				"Relating to childhood play and social games",
				"Relating to culinary technique and slow cooking methods",
				"Relating to insect behavior and life cycles",
				"Relating to navigation safety and route planning",
				"Relating to financial markets and speculative trading",
				"Relating to marine biology and ecosystem balance",
				"Relating to architectural design and urban planning",
				"Relating to religious ceremony and liturgy",
				"Relating to bird migration and seasonal movement",
				"Relating to mechanical repair and equipment maintenance",
				"Relating to medical nutrition and recovery support",
				"Relating to software updates and release cycles",
				"Relating to group psychology and social behavior",
			},
		}
	}
	return payloads, nil
}

// RankTiers implements Client.
func (m *MockClient) RankTiers(_ context.Context, words []string) (map[string]int, error) {
	tiers := make(map[string]int, len(words))
	for _, word := range words {
		tiers[word] = 1 + int(hashWord(word)%5)
	}
	return tiers, nil
}

func hashWord(word string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(word)))
	return h.Sum32()
}
