package corpus

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"corpora/pkg/errors"
	"corpora/pkg/logging"
)

// Load reads the master table from a CSV file and builds its key
// index. The read is tolerant: a UTF-8 BOM is stripped, header names
// are trimmed, and rows whose field count disagrees with the header
// are logged as warnings and dropped. An unreadable or headerless
// file is a fatal error for the run.
func Load(path string, profile *Profile) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &errors.ParseError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, &errors.ParseError{Path: path, Err: err}
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	table, err := NewTable(header, profile)
	if err != nil {
		return nil, err
	}

	line := 1
	dropped := 0
	for {
		line++
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logging.Warn().Str("file", path).Int("line", line).Err(err).
				Msg("Dropping unparsable row")
			dropped++
			continue
		}
		if len(record) != len(header) {
			logging.Warn().Str("file", path).Int("line", line).
				Int("fields", len(record)).Int("expected", len(header)).
				Msg("Dropping row with wrong field count")
			dropped++
			continue
		}
		table.appendFields(record)
	}

	logging.Info().Str("file", path).
		Int("rows", table.Len()).
		Int("keys", len(table.index)).
		Int("dropped", dropped).
		Msg("Loaded master table")
	return table, nil
}

// Save rewrites the master table in full: same column order, no row
// numbers. The table is written to a temporary file in the target
// directory and renamed into place so a failed write never truncates
// the previous snapshot.
func (t *Table) Save(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(t.header); err != nil {
		tmp.Close()
		return err
	}
	for _, row := range t.rows {
		if err := w.Write(row); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
