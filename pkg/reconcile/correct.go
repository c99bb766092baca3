package reconcile

import (
	"strings"

	"github.com/rs/zerolog"

	"corpora/pkg/corpus"
	"corpora/pkg/normalize"
)

// Corrector applies correction submission rows: it matches master rows
// by the normalized key of the row's *original* text (the identity the
// contributor was prompted with, before their correction), then fills
// in the corrected source text and the translation.
//
// A correction only ever touches rows that still lack a translation.
// When several untranslated rows share the matched key they are
// assumed to be true duplicates of the same sentence and all receive
// the same correction and translation.
type Corrector struct {
	table  *corpus.Table
	logger *zerolog.Logger
}

// NewCorrector creates a correction policy over the given table.
func NewCorrector(table *corpus.Table, logger *zerolog.Logger) *Corrector {
	return &Corrector{table: table, logger: logger}
}

// Apply processes one correction row.
func (p *Corrector) Apply(row CorrectionRow) RowOutcome {
	if row.Corrected == "" || row.Target == "" {
		return RowOutcome{Kind: RowSkippedIncomplete}
	}

	// An empty original would normalize to the empty key and could
	// match master rows with empty source text; treat it as
	// non-actionable instead.
	key := normalize.Key(row.Original)
	if key == "" {
		return RowOutcome{Kind: RowSkippedIncomplete}
	}

	matches := p.table.Lookup(key)
	if len(matches) == 0 {
		p.logger.Warn().
			Str("original", row.Original).
			Msg("No master row matches correction, skipping")
		return RowOutcome{Kind: RowSkippedNotFound}
	}

	var pending []int
	for _, i := range matches {
		if strings.TrimSpace(p.table.Target(i)) == "" {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		lines := make([]int, len(matches))
		for n, i := range matches {
			lines[n] = p.table.Line(i)
		}
		p.logger.Warn().
			Str("original", row.Original).
			Ints("lines", lines).
			Msg("Already translated, skipping")
		return RowOutcome{Kind: RowSkippedAlreadyTranslated, Lines: lines}
	}

	lines := make([]int, 0, len(pending))
	for _, i := range pending {
		if err := p.table.UpdateSourceAndTranslation(i, row.Corrected, row.Target); err != nil {
			p.logger.Error().Err(err).Int("row", i).Msg("Correction failed")
			continue
		}
		lines = append(lines, p.table.Line(i))
		p.logger.Info().
			Int("line", p.table.Line(i)).
			Str("source", row.Corrected).
			Msg("Corrected transcription and set translation")
	}
	return RowOutcome{Kind: RowUpdated, Updated: len(lines), Lines: lines}
}
