package grid

// Detect diffs the grid's current record set against the last-loaded baseline
// and returns the minimal per-row updates.
//
// Rows are matched by primary key first; rows without a resolvable primary
// key fall back to the natural key. Current rows with no baseline match are
// skipped: inserts happen only through import, never through the grid.
//
// For every declared, non-read-only column present in the current row, both
// sides are normalized under RoleCompare; differing values are staged under
// RoleStorage. Output order follows current's iteration order, and duplicate
// keys are evaluated independently; the reconciler's last write wins.
func Detect(baseline, current []Row, schema Schema) []RowUpdate {
	byKey := make(map[any]Row, len(baseline))
	byNatural := make(map[any]Row, len(baseline))
	for _, row := range baseline {
		if k := rowKey(row, schema.Key, schema); k != nil {
			byKey[k] = row
		}
		if k := rowKey(row, schema.NaturalKey, schema); k != nil {
			byNatural[k] = row
		}
	}

	var updates []RowUpdate
	for _, row := range current {
		keyColumn := schema.Key
		key := rowKey(row, schema.Key, schema)
		base, ok := byKey[key]
		if key == nil || !ok {
			keyColumn = schema.NaturalKey
			key = rowKey(row, schema.NaturalKey, schema)
			if key == nil {
				continue
			}
			if base, ok = byNatural[key]; !ok {
				continue
			}
		}

		fields := make(map[string]any)
		for _, col := range schema.Columns {
			if schema.ReadOnly(col.Name) {
				continue
			}
			cur, present := row[col.Name]
			if !present {
				continue
			}
			old := base[col.Name]
			if Normalize(old, col.Kind, RoleCompare) != Normalize(cur, col.Kind, RoleCompare) {
				fields[col.Name] = Normalize(cur, col.Kind, RoleStorage)
			}
		}

		if len(fields) > 0 {
			updates = append(updates, RowUpdate{
				KeyColumn: keyColumn,
				Key:       key,
				Fields:    fields,
			})
		}
	}

	return updates
}

// rowKey resolves and normalizes a row's value for the given identity column.
// Identity values arrive as int64 from snapshots but float64 from JSON; both
// must land on the same map key.
func rowKey(row Row, column string, schema Schema) any {
	v, ok := row[column]
	if !ok || v == nil {
		return nil
	}
	kind, ok := schema.Kind(column)
	if !ok {
		return nil
	}
	norm := Normalize(v, kind, RoleCompare)
	if norm == "" {
		return nil
	}
	return norm
}
