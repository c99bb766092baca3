package reconcile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"corpora/pkg/corpus"
	"corpora/pkg/errors"
)

// Kind is the intake policy selected for a submission file.
type Kind int

const (
	// KindUnknown means the file matches no intake convention.
	KindUnknown Kind = iota
	// KindInsert introduces brand-new sentence pairs.
	KindInsert
	// KindCorrection corrects and translates existing untranslated rows.
	KindCorrection
)

// String returns the kind name used in logs and reports.
func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindCorrection:
		return "correction"
	default:
		return "unknown"
	}
}

// InsertRow is one new-pair submission row.
type InsertRow struct {
	Source string
	Target string
}

// CorrectionRow is one correction submission row. Original is the text
// as it was prompted to the contributor and is the identity used for
// matching; Corrected is what the master row's source becomes.
type CorrectionRow struct {
	Original  string
	Corrected string
	Target    string
}

// Submission is one parsed contributor file. Exactly one of Inserts
// or Corrections is populated, according to Kind.
type Submission struct {
	Path        string
	Kind        Kind
	Inserts     []InsertRow
	Corrections []CorrectionRow
}

// Rows returns the number of parsed rows.
func (s *Submission) Rows() int {
	return len(s.Inserts) + len(s.Corrections)
}

// Classify selects the intake policy from the file's name. The naming
// convention is part of the contributor contract: insert files start
// with the profile's insert prefix, correction files with its
// correction prefix.
func Classify(path string, profile *corpus.Profile) Kind {
	name := filepath.Base(path)
	switch {
	case strings.HasPrefix(name, profile.InsertPrefix):
		return KindInsert
	case strings.HasPrefix(name, profile.CorrectionPrefix):
		return KindCorrection
	default:
		return KindUnknown
	}
}

// ReadSubmission parses a contributor file and validates its columns
// against the intake policy selected by its name. A file with an
// unknown prefix or missing required columns is malformed: the error
// wraps errors.ErrMalformedSubmission and the master table is left
// untouched.
//
// Cell values are whitespace-trimmed. Rows shorter than the header
// are read with the missing cells empty; the policies treat empty
// required fields as non-actionable rather than as errors.
func ReadSubmission(path string, profile *corpus.Profile) (*Submission, error) {
	kind := Classify(path, profile)
	if kind == KindUnknown {
		return nil, errors.NewSubmissionError(filepath.Base(path),
			fmt.Errorf("file name matches no intake prefix: %w", errors.ErrMalformedSubmission))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewSubmissionError(filepath.Base(path), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, errors.NewSubmissionError(filepath.Base(path),
			fmt.Errorf("no header row: %w", errors.ErrMalformedSubmission))
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
	}

	required := []string{profile.SourceColumn, profile.TargetColumn}
	if kind == KindCorrection {
		required = append(required, profile.CorrectedColumn)
	}
	cols := make(map[string]int, len(required))
	for _, name := range required {
		idx := slices.Index(header, name)
		if idx < 0 {
			return nil, errors.NewSubmissionError(filepath.Base(path),
				fmt.Errorf("missing column %q: %w", name, errors.ErrMalformedSubmission))
		}
		cols[name] = idx
	}

	sub := &Submission{Path: path, Kind: kind}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewSubmissionError(filepath.Base(path), err)
		}
		cell := func(name string) string {
			idx := cols[name]
			if idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}
		switch kind {
		case KindInsert:
			sub.Inserts = append(sub.Inserts, InsertRow{
				Source: cell(profile.SourceColumn),
				Target: cell(profile.TargetColumn),
			})
		case KindCorrection:
			sub.Corrections = append(sub.Corrections, CorrectionRow{
				Original:  cell(profile.SourceColumn),
				Corrected: cell(profile.CorrectedColumn),
				Target:    cell(profile.TargetColumn),
			})
		}
	}
	return sub, nil
}
