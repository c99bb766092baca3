package reconcile

import (
	"github.com/rs/zerolog"

	"corpora/pkg/corpus"
	"corpora/pkg/normalize"
)

// Inserter applies new-pair submission rows. It guarantees that one
// reconciliation run never produces two master rows with the same
// non-empty normalized key, even across multiple submission files:
// the master index covers pre-existing and freshly appended rows, and
// the shared KeySet covers everything added earlier in the batch.
type Inserter struct {
	table  *corpus.Table
	added  *KeySet
	logger *zerolog.Logger
}

// NewInserter creates an insert policy over the given table. The
// KeySet is owned by the driver and shared with every other file of
// the run.
func NewInserter(table *corpus.Table, added *KeySet, logger *zerolog.Logger) *Inserter {
	return &Inserter{table: table, added: added, logger: logger}
}

// Apply processes one new-pair row.
func (p *Inserter) Apply(row InsertRow) RowOutcome {
	if row.Source == "" || row.Target == "" {
		return RowOutcome{Kind: RowSkippedIncomplete}
	}

	key := normalize.Key(row.Source)
	if key == "" || p.table.HasKey(key) || p.added.Has(key) {
		p.logger.Warn().
			Str("source", row.Source).
			Msg("Duplicate sentence, skipping")
		return RowOutcome{Kind: RowSkippedDuplicate}
	}

	i := p.table.Append(row.Source, row.Target)
	p.added.Add(key)
	p.logger.Info().
		Int("line", p.table.Line(i)).
		Str("source", row.Source).
		Msg("Added new sentence pair")
	return RowOutcome{Kind: RowAdded, Lines: []int{p.table.Line(i)}}
}
