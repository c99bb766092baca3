package reconcile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpora/pkg/corpus"
	"corpora/pkg/logging"
)

const masterHeader = "file_path,Kirundi_Transcription,French_Translation,speaker_id,Age,Gender\n"

type runFixture struct {
	dir       string
	master    string
	intake    string
	processed string
}

func newRunFixture(t *testing.T, masterRows string) *runFixture {
	t.Helper()
	dir := t.TempDir()
	fx := &runFixture{
		dir:       dir,
		master:    filepath.Join(dir, "metadata.csv"),
		intake:    filepath.Join(dir, "submissions"),
		processed: filepath.Join(dir, "processed_submissions"),
	}
	require.NoError(t, os.MkdirAll(fx.intake, 0o755))
	require.NoError(t, os.WriteFile(fx.master, []byte(masterHeader+masterRows), 0o644))
	return fx
}

func (fx *runFixture) submit(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(fx.intake, name), []byte(content), 0o644))
}

func (fx *runFixture) run(t *testing.T) (*corpus.Table, *Result) {
	t.Helper()
	table, err := corpus.Load(fx.master, corpus.DefaultProfile())
	require.NoError(t, err)

	r, err := New(table,
		WithArchiver(DirArchiver{Dir: fx.processed}),
		WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)

	result, err := r.Run(context.Background(), fx.intake)
	require.NoError(t, err)
	return table, result
}

func (fx *runFixture) intakeNames(t *testing.T) []string {
	t.Helper()
	return dirNames(t, fx.intake)
}

func (fx *runFixture) processedNames(t *testing.T) []string {
	t.Helper()
	return dirNames(t, fx.processed)
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// Scenario: a correction fixes the transcription and fills the
// missing translation of an existing row.
func TestRunAppliesCorrection(t *testing.T) {
	fx := newRunFixture(t, "a.wav,bonjour,,spk1,20,F\n")
	fx.submit(t, "Kirundi_To_French_1.csv",
		"Kirundi_Transcription,Corrected_Transcription,French_Translation\n"+
			"bonjour,bonjour!,hello\n")

	table, result := fx.run(t)
	assert.Equal(t, 1, result.Stats.Updated)
	assert.Equal(t, 0, result.Stats.Added)
	assert.Equal(t, "bonjour!", table.Source(0))
	assert.Equal(t, "hello", table.Target(0))
	assert.True(t, result.IsClean())
}

// Scenario: an unseen sentence pair is appended.
func TestRunAppendsNewPair(t *testing.T) {
	fx := newRunFixture(t, "a.wav,bonjour,,spk1,20,F\n")
	fx.submit(t, "French_To_Kirundi_1.csv",
		"Kirundi_Transcription,French_Translation\n"+
			"au revoir,goodbye\n")

	table, result := fx.run(t)
	assert.Equal(t, 1, result.Stats.Added)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "au revoir", table.Source(1))
	assert.Equal(t, "goodbye", table.Target(1))
}

// Scenario: a correction targeting an already translated row is
// skipped and the row is reported.
func TestRunSkipsAlreadyTranslated(t *testing.T) {
	fx := newRunFixture(t, "a.wav,merci,thanks,spk1,20,F\n")
	fx.submit(t, "Kirundi_To_French_1.csv",
		"Kirundi_Transcription,Corrected_Transcription,French_Translation\n"+
			"merci,merci,thank you\n")

	table, result := fx.run(t)
	assert.Equal(t, 0, result.Stats.Updated)
	assert.Equal(t, 1, result.Stats.SkippedAlreadyTranslated)
	assert.Equal(t, "thanks", table.Target(0))
}

// Scenario: the same sentence submitted by two files in one batch is
// only added once.
func TestRunDeduplicatesAcrossFiles(t *testing.T) {
	fx := newRunFixture(t, "")
	fx.submit(t, "French_To_Kirundi_alice.csv",
		"Kirundi_Transcription,French_Translation\nbonsoir,good evening\n")
	fx.submit(t, "French_To_Kirundi_bob.csv",
		"Kirundi_Transcription,French_Translation\nBonsoir!,evening\n")

	table, result := fx.run(t)
	assert.Equal(t, 1, result.Stats.Added)
	assert.Equal(t, 1, result.Stats.SkippedDuplicate)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "good evening", table.Target(0), "first submission wins")
}

func TestRunArchivesEveryFile(t *testing.T) {
	fx := newRunFixture(t, "a.wav,bonjour,,spk1,20,F\n")
	fx.submit(t, "French_To_Kirundi_ok.csv",
		"Kirundi_Transcription,French_Translation\nau revoir,goodbye\n")
	fx.submit(t, "Kirundi_To_French_bad.csv",
		"Wrong,Columns\nx,y\n")
	fx.submit(t, "mystery.csv",
		"Kirundi_Transcription,French_Translation\nduhere,?\n")

	table, result := fx.run(t)

	assert.Empty(t, fx.intakeNames(t), "intake directory drained")
	assert.ElementsMatch(t,
		[]string{"French_To_Kirundi_ok.csv", "Kirundi_To_French_bad.csv", "mystery.csv"},
		fx.processedNames(t))

	// The two malformed files are contained failures; the good one
	// still applied.
	assert.Len(t, result.Errors, 2)
	assert.Equal(t, 1, result.Stats.Added)
	assert.Equal(t, 2, table.Len())
}

func TestRunMalformedFileLeavesMasterUntouched(t *testing.T) {
	fx := newRunFixture(t, "a.wav,bonjour,,spk1,20,F\n")
	fx.submit(t, "Kirundi_To_French_bad.csv",
		"Wrong,Columns\nbonjour,hello\n")

	table, result := fx.run(t)
	assert.False(t, result.IsClean())
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "bonjour", table.Source(0))
	assert.Equal(t, "", table.Target(0))
}

func TestRunEmptyIntake(t *testing.T) {
	fx := newRunFixture(t, "a.wav,bonjour,,spk1,20,F\n")
	_, result := fx.run(t)
	assert.Empty(t, result.Files)
	assert.True(t, result.IsClean())
	assert.NotEmpty(t, result.RunID)
}

func TestRunCanceledContext(t *testing.T) {
	fx := newRunFixture(t, "")
	fx.submit(t, "French_To_Kirundi_1.csv",
		"Kirundi_Transcription,French_Translation\nbonsoir,good evening\n")

	table, err := corpus.Load(fx.master, corpus.DefaultProfile())
	require.NoError(t, err)
	r, err := New(table, WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Run(ctx, fx.intake)
	assert.Error(t, err)
}

func TestRunDefaultArchiver(t *testing.T) {
	fx := newRunFixture(t, "")
	fx.submit(t, "French_To_Kirundi_1.csv",
		"Kirundi_Transcription,French_Translation\nbonsoir,good evening\n")

	table, err := corpus.Load(fx.master, corpus.DefaultProfile())
	require.NoError(t, err)
	r, err := New(table, WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	_, err = r.Run(context.Background(), fx.intake)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"French_To_Kirundi_1.csv"},
		dirNames(t, filepath.Join(fx.dir, "processed_submissions")))
}

func TestResultSummary(t *testing.T) {
	result := &Result{Files: make([]FileReport, 2)}
	result.Stats = Stats{Added: 3, Updated: 1, SkippedDuplicate: 2}
	assert.Contains(t, result.Summary(), "added 3")
	assert.Contains(t, result.Summary(), "updated 1")
}

func TestDirArchiverMove(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "sub.csv")
	require.NoError(t, os.WriteFile(src, []byte("x\n"), 0o644))

	archiver := DirArchiver{Dir: filepath.Join(dir, "done")}
	require.NoError(t, archiver.Move(src))

	assert.NoFileExists(t, src)
	assert.FileExists(t, filepath.Join(dir, "done", "sub.csv"))
}
