package kindle

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newVocabDB builds a minimal vocab.db fixture in a temp dir.
func newVocabDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "vocab.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	stmts := []string{
		`CREATE TABLE WORDS (id TEXT PRIMARY KEY, stem TEXT)`,
		`CREATE TABLE BOOK_INFO (id TEXT PRIMARY KEY, title TEXT)`,
		`CREATE TABLE LOOKUPS (id TEXT PRIMARY KEY, word_key TEXT, book_key TEXT, usage TEXT, timestamp INTEGER)`,
		`INSERT INTO WORDS VALUES ('en:ephemeral', 'ephemeral'), ('en:limn', 'limn'), ('en:blank', ''), ('en:bare', 'bare')`,
		`INSERT INTO BOOK_INFO VALUES ('b1', 'The Sea')`,
		`INSERT INTO LOOKUPS VALUES
			('l1', 'en:ephemeral', 'b1', 'an ephemeral joy', 100),
			('l2', 'en:ephemeral', 'b1', 'later ephemeral lookup', 200),
			('l3', 'en:limn', 'missing-book', 'to limn the coastline', 150),
			('l4', 'en:blank', 'b1', 'skipped', 300),
			('l5', 'en:bare', 'b1', NULL, 400)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}

func TestReadFile(t *testing.T) {
	path := newVocabDB(t)

	lookups, err := ReadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, lookups, 3)

	// Earliest lookup per stem wins; order follows lookup time.
	assert.Equal(t, Lookup{Stem: "ephemeral", Usage: "an ephemeral joy", BookTitle: "The Sea"}, lookups[0])
	assert.Equal(t, Lookup{Stem: "limn", Usage: "to limn the coastline", BookTitle: ""}, lookups[1])
	// A NULL usage sentence must not break the read.
	assert.Equal(t, Lookup{Stem: "bare", Usage: "", BookTitle: "The Sea"}, lookups[2])
}

func TestReadFile_MissingFile(t *testing.T) {
	_, err := ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.db"))
	assert.Error(t, err)
}
