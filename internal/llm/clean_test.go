package llm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want StringList
	}{
		{"array", `["a", "b"]`, StringList{"a", "b"}},
		{"bare string", `"single"`, StringList{"single"}},
		{"empty array", `[]`, StringList{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	var got StringList
	assert.Error(t, json.Unmarshal([]byte(`42`), &got))
}

func TestCleanPayload(t *testing.T) {
	p := CleanPayload(Payload{
		Definition: "  Lasting briefly.  ",
		Examples: StringList{
			" A sentence. ",
			"",
			"a sentence.",
			"Another one.",
		},
		Distractors: StringList{"  ", "Relating to weather"},
	})

	assert.Equal(t, "Lasting briefly.", p.Definition)
	assert.Equal(t, StringList{"A sentence.", "Another one."}, p.Examples)
	assert.Equal(t, StringList{"Relating to weather"}, p.Distractors)
}

func TestLookup_CaseInsensitive(t *testing.T) {
	scores := map[string]int{"Ephemeral": 7}

	got, ok := Lookup(scores, "ephemeral")
	require.True(t, ok)
	assert.Equal(t, 7, got)

	_, ok = Lookup(scores, "missing")
	assert.False(t, ok)
}

func TestExtractJSON(t *testing.T) {
	got, err := extractJSON("Here is the result:\n{\"cat\": 2}\nDone.")
	require.NoError(t, err)
	assert.Equal(t, `{"cat": 2}`, got)

	_, err = extractJSON("no json here")
	assert.Error(t, err)
}

func TestMockClient_Deterministic(t *testing.T) {
	m := NewMockClient()
	ctx := context.Background()

	first, err := m.AssessDifficulty(ctx, []string{"cat", "ephemeral"})
	require.NoError(t, err)
	second, err := m.AssessDifficulty(ctx, []string{"cat", "ephemeral"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, first["cat"])
	assert.GreaterOrEqual(t, first["ephemeral"], 5)

	tiers, err := m.RankTiers(ctx, []string{"nuance"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, tiers["nuance"], 1)
	assert.LessOrEqual(t, tiers["nuance"], 5)

	payloads, err := m.Enrich(ctx, []string{"nuance"})
	require.NoError(t, err)
	require.Contains(t, payloads, "nuance")
	assert.Len(t, payloads["nuance"].Examples, 5)
	assert.Len(t, payloads["nuance"].Distractors, 15)
	assert.NotEmpty(t, payloads["nuance"].Definition)
}
