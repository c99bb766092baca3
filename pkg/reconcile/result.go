package reconcile

import (
	"fmt"
	"time"
)

// Stats aggregates per-row outcomes into the counters reported at the
// end of a run.
type Stats struct {
	Added                    int
	Updated                  int
	SkippedDuplicate         int
	SkippedNotFound          int
	SkippedAlreadyTranslated int
	SkippedIncomplete        int
}

// Record folds one row outcome into the counters.
func (s *Stats) Record(o RowOutcome) {
	switch o.Kind {
	case RowAdded:
		s.Added++
	case RowUpdated:
		s.Updated += o.Updated
	case RowSkippedDuplicate:
		s.SkippedDuplicate++
	case RowSkippedNotFound:
		s.SkippedNotFound++
	case RowSkippedAlreadyTranslated:
		s.SkippedAlreadyTranslated++
	case RowSkippedIncomplete:
		s.SkippedIncomplete++
	}
}

// Merge adds another set of counters into s.
func (s *Stats) Merge(other Stats) {
	s.Added += other.Added
	s.Updated += other.Updated
	s.SkippedDuplicate += other.SkippedDuplicate
	s.SkippedNotFound += other.SkippedNotFound
	s.SkippedAlreadyTranslated += other.SkippedAlreadyTranslated
	s.SkippedIncomplete += other.SkippedIncomplete
}

// FileReport records what happened to one submission file.
type FileReport struct {
	File     string
	Kind     Kind
	Rows     int
	Stats    Stats
	Err      error // file-level failure, contained by the driver
	Archived bool
}

// Result is the outcome of one reconciliation run. The caller decides
// whether and where to persist the mutated master table.
type Result struct {
	RunID string
	Files []FileReport
	Stats Stats

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Errors holds the contained file-level failures. They never abort
	// the run; fatal conditions are returned from Run itself.
	Errors []error

	// Warnings holds operator-facing notices, such as archive failures.
	Warnings []string
}

// IsClean reports whether every file processed without a file-level
// failure.
func (r *Result) IsClean() bool {
	return len(r.Errors) == 0
}

// Summary returns a one-line human-readable summary of the run.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"processed %d file(s): added %d, updated %d, skipped %d duplicate, %d not found, %d already translated",
		len(r.Files),
		r.Stats.Added,
		r.Stats.Updated,
		r.Stats.SkippedDuplicate,
		r.Stats.SkippedNotFound,
		r.Stats.SkippedAlreadyTranslated,
	)
}
