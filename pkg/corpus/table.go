// Package corpus holds the in-memory master table of the dataset: an
// ordered sequence of rows plus an index from normalized comparison
// keys to the rows sharing them. The table is loaded once per run,
// mutated in place by the reconciliation engine, and written back once
// at the end.
package corpus

import (
	"fmt"
	"slices"
	"strings"

	"corpora/pkg/errors"
	"corpora/pkg/normalize"
)

// Table is the authoritative dataset. Row order and column order are
// preserved exactly as loaded; the normalized key of every row is kept
// in sync with its source text by routing all mutations through
// Append and UpdateSourceAndTranslation.
type Table struct {
	header []string
	rows   [][]string
	keys   []string // normalized key per row, parallel to rows

	srcCol int
	tgtCol int

	index map[string][]int
}

// NewTable creates an empty table with the given header. The header
// must contain the profile's source and target columns; names are
// compared after trimming whitespace.
func NewTable(header []string, profile *Profile) (*Table, error) {
	trimmed := make([]string, len(header))
	for i, name := range header {
		trimmed[i] = strings.TrimSpace(name)
	}

	srcCol := slices.Index(trimmed, profile.SourceColumn)
	if srcCol < 0 {
		return nil, &errors.ValidationError{Field: profile.SourceColumn, Message: "column missing from header"}
	}
	tgtCol := slices.Index(trimmed, profile.TargetColumn)
	if tgtCol < 0 {
		return nil, &errors.ValidationError{Field: profile.TargetColumn, Message: "column missing from header"}
	}

	return &Table{
		header: trimmed,
		srcCol: srcCol,
		tgtCol: tgtCol,
		index:  make(map[string][]int),
	}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Header returns the column names in their original order.
func (t *Table) Header() []string { return t.header }

// Row returns the raw fields of row i.
func (t *Table) Row(i int) []string { return t.rows[i] }

// Source returns the source text of row i.
func (t *Table) Source(i int) string { return t.rows[i][t.srcCol] }

// Target returns the translation of row i, empty if untranslated.
func (t *Table) Target(i int) string { return t.rows[i][t.tgtCol] }

// Key returns the normalized key of row i.
func (t *Table) Key(i int) string { return t.keys[i] }

// Line returns the line number of row i in the CSV file, as an
// operator would see it in a spreadsheet (1-based, after the header).
func (t *Table) Line(i int) int { return i + 2 }

// Lookup returns the indices of all rows whose normalized key equals
// key, in row order. The result is a copy; mutating it does not affect
// the index. Absent keys yield an empty slice.
func (t *Table) Lookup(key string) []int {
	return slices.Clone(t.index[key])
}

// HasKey reports whether any row carries the given normalized key.
func (t *Table) HasKey(key string) bool {
	return len(t.index[key]) > 0
}

// Append adds a new row with the given source text and translation,
// leaving all pass-through columns empty, and indexes it. It returns
// the new row's index.
func (t *Table) Append(source, target string) int {
	fields := make([]string, len(t.header))
	fields[t.srcCol] = source
	fields[t.tgtCol] = target
	return t.appendFields(fields)
}

// appendFields adds a pre-shaped row (padded to the header width) and
// updates the key index incrementally.
func (t *Table) appendFields(fields []string) int {
	if len(fields) < len(t.header) {
		padded := make([]string, len(t.header))
		copy(padded, fields)
		fields = padded
	}
	i := len(t.rows)
	key := normalize.Key(fields[t.srcCol])
	t.rows = append(t.rows, fields)
	t.keys = append(t.keys, key)
	t.index[key] = append(t.index[key], i)
	return i
}

// UpdateSourceAndTranslation replaces row i's source text and
// translation, recomputes its normalized key, and re-indexes it. The
// new key may collide with another existing key; duplicate keys are
// legal and remain enumerable via Lookup.
func (t *Table) UpdateSourceAndTranslation(i int, source, target string) error {
	if i < 0 || i >= len(t.rows) {
		return fmt.Errorf("row %d out of range [0,%d)", i, len(t.rows))
	}

	t.rows[i][t.srcCol] = source
	t.rows[i][t.tgtCol] = target

	newKey := normalize.Key(source)
	if newKey == t.keys[i] {
		return nil
	}
	t.unindex(t.keys[i], i)
	t.keys[i] = newKey
	t.index[newKey] = insertSorted(t.index[newKey], i)
	return nil
}

// unindex removes row i from the given key's bucket, dropping the
// bucket entirely once empty.
func (t *Table) unindex(key string, i int) {
	bucket := t.index[key]
	if n := slices.Index(bucket, i); n >= 0 {
		bucket = slices.Delete(bucket, n, n+1)
	}
	if len(bucket) == 0 {
		delete(t.index, key)
		return
	}
	t.index[key] = bucket
}

// insertSorted keeps index buckets in row order so Lookup enumerates
// duplicates top to bottom.
func insertSorted(bucket []int, i int) []int {
	pos, _ := slices.BinarySearch(bucket, i)
	return slices.Insert(bucket, pos, i)
}
