// Package reconcile merges contributor submission files into the
// master corpus table. Submissions either introduce brand-new sentence
// pairs or supply a corrected transcription plus the missing
// translation for an existing untranslated row; the driver classifies
// each file, applies the matching intake policy row by row, and
// archives the file so it can never be processed twice.
package reconcile

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"corpora/pkg/corpus"
	"corpora/pkg/errors"
	"corpora/pkg/logging"
)

// Reconciler drives one reconciliation run. It exclusively owns the
// master table for the duration of the run; processing is strictly
// sequential, one file fully applied and archived before the next.
type Reconciler struct {
	table    *corpus.Table
	profile  *corpus.Profile
	archiver Archiver
	logger   *zerolog.Logger
}

// Option configures a Reconciler.
type Option func(*Reconciler) error

// WithProfile sets the dataset profile. Defaults to the Kirundi
// dataset profile.
func WithProfile(profile *corpus.Profile) Option {
	return func(r *Reconciler) error {
		if profile == nil {
			return &errors.ValidationError{Field: "profile", Message: "cannot be nil"}
		}
		r.profile = profile
		return nil
	}
}

// WithArchiver sets where processed submissions are moved. Defaults to
// a processed_submissions directory next to the intake directory.
func WithArchiver(archiver Archiver) Option {
	return func(r *Reconciler) error {
		if archiver == nil {
			return &errors.ValidationError{Field: "archiver", Message: "cannot be nil"}
		}
		r.archiver = archiver
		return nil
	}
}

// WithLogger sets the run logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Reconciler) error {
		if logger == nil {
			return &errors.ValidationError{Field: "logger", Message: "cannot be nil"}
		}
		r.logger = logger
		return nil
	}
}

// New creates a Reconciler over an already-loaded master table.
func New(table *corpus.Table, opts ...Option) (*Reconciler, error) {
	if table == nil {
		return nil, &errors.ValidationError{Field: "table", Message: "cannot be nil"}
	}
	r := &Reconciler{
		table:   table,
		profile: corpus.DefaultProfile(),
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Run processes every *.csv file in the intake directory in name
// order. A file's internal failure never aborts the batch: it is
// logged, recorded on the result, and the file is archived like any
// other. Run only returns an error for top-level conditions (an
// unreadable intake directory or a canceled context); the caller
// should then discard the table instead of persisting it.
func (r *Reconciler) Run(ctx context.Context, submissionsDir string) (*Result, error) {
	files, err := filepath.Glob(filepath.Join(submissionsDir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("scan submissions in %s: %w", submissionsDir, err)
	}
	sort.Strings(files)

	if r.archiver == nil {
		r.archiver = DirArchiver{Dir: filepath.Join(filepath.Dir(submissionsDir), "processed_submissions")}
	}

	result := &Result{
		RunID:     uuid.NewString(),
		StartTime: time.Now(),
	}
	logger := r.logger.With().Str("run_id", result.RunID).Logger()

	if len(files) == 0 {
		logger.Info().Str("dir", submissionsDir).Msg("No new submission files found")
	}

	added := NewKeySet()
	inserter := NewInserter(r.table, added, &logger)
	corrector := NewCorrector(r.table, &logger)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		report := r.processFile(&logger, path, inserter, corrector)
		if report.Err != nil {
			result.Errors = append(result.Errors, report.Err)
		}
		if !report.Archived {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s could not be archived and may be reprocessed", filepath.Base(path)))
		}
		result.Stats.Merge(report.Stats)
		result.Files = append(result.Files, report)
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	logger.Info().
		Int("files", len(result.Files)).
		Int("added", result.Stats.Added).
		Int("updated", result.Stats.Updated).
		Dur("duration", result.Duration).
		Msg("Merge complete")
	return result, nil
}

// processFile reads, applies, and archives one submission. All
// failures, panics included, are contained here so the batch
// continues; the archive move happens unconditionally.
func (r *Reconciler) processFile(logger *zerolog.Logger, path string, inserter *Inserter, corrector *Corrector) (report FileReport) {
	name := filepath.Base(path)
	report = FileReport{File: name, Kind: Classify(path, r.profile)}

	defer func() {
		if rec := recover(); rec != nil {
			report.Err = errors.NewSubmissionError(name, fmt.Errorf("panic: %v", rec))
		}
		if err := r.archiver.Move(path); err != nil {
			logger.Error().Err(err).Str("file", name).Msg("Could not archive submission")
		} else {
			report.Archived = true
		}
		if report.Err != nil {
			logger.Warn().Err(report.Err).Str("file", name).Msg("Submission failed, continuing")
		}
	}()

	logger.Info().Str("file", name).Str("kind", report.Kind.String()).Msg("Processing submission")

	sub, err := ReadSubmission(path, r.profile)
	if err != nil {
		report.Err = err
		return report
	}
	report.Rows = sub.Rows()

	switch sub.Kind {
	case KindInsert:
		for _, row := range sub.Inserts {
			report.Stats.Record(inserter.Apply(row))
		}
	case KindCorrection:
		for _, row := range sub.Corrections {
			report.Stats.Record(corrector.Apply(row))
		}
	}
	return report
}
