package reconcile

// OutcomeKind discriminates what applying one submission row did to
// the master table. Skips are ordinary outcomes, not errors; the
// driver aggregates them into counters so policies stay testable
// without parsing log output.
type OutcomeKind int

const (
	// RowAdded means a new sentence pair was appended.
	RowAdded OutcomeKind = iota
	// RowUpdated means one or more untranslated master rows were
	// corrected and translated.
	RowUpdated
	// RowSkippedDuplicate means the sentence already exists in the
	// master table or was added earlier in this run.
	RowSkippedDuplicate
	// RowSkippedNotFound means no master row matches the correction's
	// original text.
	RowSkippedNotFound
	// RowSkippedAlreadyTranslated means every matching master row
	// already carries a translation.
	RowSkippedAlreadyTranslated
	// RowSkippedIncomplete means a required field was missing; the row
	// is non-actionable.
	RowSkippedIncomplete
)

// String returns the outcome name used in logs.
func (k OutcomeKind) String() string {
	switch k {
	case RowAdded:
		return "added"
	case RowUpdated:
		return "updated"
	case RowSkippedDuplicate:
		return "skipped_duplicate"
	case RowSkippedNotFound:
		return "skipped_not_found"
	case RowSkippedAlreadyTranslated:
		return "skipped_already_translated"
	case RowSkippedIncomplete:
		return "skipped_incomplete"
	default:
		return "unknown"
	}
}

// RowOutcome is the per-row result returned by the intake policies.
type RowOutcome struct {
	Kind OutcomeKind

	// Updated is the number of master rows mutated (RowUpdated only;
	// a correction updates every untranslated duplicate).
	Updated int

	// Lines lists the master CSV line numbers involved: the appended
	// or updated rows, or for RowSkippedAlreadyTranslated every
	// matching row, for operator visibility.
	Lines []int
}

// KeySet tracks the normalized keys added during the current run. It
// is owned by the driver, shared across all submission files of one
// batch, and never persisted.
type KeySet struct {
	keys map[string]struct{}
}

// NewKeySet returns an empty key set.
func NewKeySet() *KeySet {
	return &KeySet{keys: make(map[string]struct{})}
}

// Has reports whether key was added during this run.
func (s *KeySet) Has(key string) bool {
	_, ok := s.keys[key]
	return ok
}

// Add registers a key added during this run.
func (s *KeySet) Add(key string) {
	s.keys[key] = struct{}{}
}

// Len returns the number of distinct keys added.
func (s *KeySet) Len() int {
	return len(s.keys)
}
