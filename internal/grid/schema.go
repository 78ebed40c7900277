// Package grid implements the reconciliation core behind the word-bank editor:
// canonicalizing heterogeneous cell values, diffing an edited record set
// against the last-loaded snapshot, and producing the minimal per-row updates
// the store adapter applies.
package grid

// ColumnKind is the semantic type of a grid column. Normalization is
// dispatched once through the schema's column table, never through
// per-call-site conditionals.
type ColumnKind string

const (
	KindNumeric ColumnKind = "numeric"
	KindDate    ColumnKind = "date"
	KindText    ColumnKind = "text"
)

func (k ColumnKind) IsValid() bool {
	switch k {
	case KindNumeric, KindDate, KindText:
		return true
	}
	return false
}

// Row is one record as the grid UI delivers it: column name to raw cell value.
// Values arrive as whatever the transport produced (string, float64, int64,
// bool, nil); the normalizer makes them comparable.
type Row map[string]any

// Column declares one grid column.
type Column struct {
	Name string
	Kind ColumnKind
}

// Schema is the closed column set of an editable table. Columns not declared
// here never pass through change detection, whatever the UI sends.
type Schema struct {
	// Table is the storage table the schema describes.
	Table string
	// Key is the primary-key column.
	Key string
	// NaturalKey is the fallback identity column for rows without a
	// resolvable primary key.
	NaturalKey string
	// Columns lists every declared column in storage order.
	Columns []Column

	kinds    map[string]ColumnKind
	readOnly map[string]bool
}

// NewSchema builds a Schema. The key and natural-key columns are always
// read-only; extra read-only column names may be supplied.
func NewSchema(table, key, naturalKey string, cols []Column, readOnly ...string) Schema {
	s := Schema{
		Table:      table,
		Key:        key,
		NaturalKey: naturalKey,
		Columns:    cols,
		kinds:      make(map[string]ColumnKind, len(cols)),
		readOnly:   make(map[string]bool, 2+len(readOnly)),
	}
	for _, c := range cols {
		s.kinds[c.Name] = c.Kind
	}
	s.readOnly[key] = true
	s.readOnly[naturalKey] = true
	for _, name := range readOnly {
		s.readOnly[name] = true
	}
	return s
}

// Kind returns the declared kind of a column; false if undeclared.
func (s Schema) Kind(name string) (ColumnKind, bool) {
	k, ok := s.kinds[name]
	return k, ok
}

// ReadOnly reports whether edits to the column are ignored.
func (s Schema) ReadOnly(name string) bool { return s.readOnly[name] }

// WordSchema is the editable column set of the words table.
// manual_flag is numeric: booleans travel through the grid as 0/1 cells
// and are stored the same way.
func WordSchema() Schema {
	return NewSchema("words", "id", "word_stem", []Column{
		{Name: "id", Kind: KindNumeric},
		{Name: "word_stem", Kind: KindText},
		{Name: "original_context", Kind: KindText},
		{Name: "book_title", Kind: KindText},
		{Name: "definition", Kind: KindText},
		{Name: "phonetic", Kind: KindText},
		{Name: "status", Kind: KindText},
		{Name: "bucket_date", Kind: KindDate},
		{Name: "next_review_date", Kind: KindDate},
		{Name: "difficulty_score", Kind: KindNumeric},
		{Name: "priority_tier", Kind: KindNumeric},
		{Name: "status_correct_streak", Kind: KindNumeric},
		{Name: "manual_flag", Kind: KindNumeric},
	})
}

// RowUpdate is the staged edit set for one row: the resolved identity plus
// the changed columns, already normalized for storage.
type RowUpdate struct {
	// KeyColumn is either the schema's Key or its NaturalKey.
	KeyColumn string
	// Key is the normalized identity value.
	Key any
	// Fields maps changed column names to storage-normalized values.
	Fields map[string]any
}
