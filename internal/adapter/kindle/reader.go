// Package kindle reads lookup history out of a Kindle vocabulary database
// (vocab.db). The device records every dictionary lookup; the reader joins
// each word to the sentence it was looked up in and the book it came from.
package kindle

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGo)
)

// Lookup is one distinct word pulled from the device, with the first usage
// sentence and book it was encountered in.
type Lookup struct {
	Stem      string
	Usage     string
	BookTitle string
}

const lookupsSQL = `
SELECT w.stem, COALESCE(l.usage, ''), COALESCE(b.title, '')
FROM WORDS w
JOIN LOOKUPS l ON l.word_key = w.id
LEFT JOIN BOOK_INFO b ON b.id = l.book_key
ORDER BY l.timestamp, w.stem`

// ReadFile opens vocab.db at path read-only and returns its lookups, one per
// distinct stem. When a stem was looked up more than once, the earliest
// lookup's sentence and book win.
func ReadFile(ctx context.Context, path string) ([]Lookup, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open vocab db: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, lookupsSQL)
	if err != nil {
		return nil, fmt.Errorf("query lookups: %w", err)
	}
	defer rows.Close()

	var (
		lookups []Lookup
		seen    = make(map[string]struct{})
	)
	for rows.Next() {
		var l Lookup
		if err := rows.Scan(&l.Stem, &l.Usage, &l.BookTitle); err != nil {
			return nil, fmt.Errorf("scan lookup: %w", err)
		}
		if l.Stem == "" {
			continue
		}
		if _, ok := seen[l.Stem]; ok {
			continue
		}
		seen[l.Stem] = struct{}{}
		lookups = append(lookups, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lookups: %w", err)
	}
	return lookups, nil
}
