package reconcile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpora/pkg/corpus"
	"corpora/pkg/errors"
)

func writeSubmission(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestClassify(t *testing.T) {
	profile := corpus.DefaultProfile()
	assert.Equal(t, KindInsert, Classify("French_To_Kirundi_week3.csv", profile))
	assert.Equal(t, KindCorrection, Classify("/intake/Kirundi_To_French_anne.csv", profile))
	assert.Equal(t, KindUnknown, Classify("random_upload.csv", profile))
}

func TestReadSubmissionInsert(t *testing.T) {
	path := writeSubmission(t, t.TempDir(), "French_To_Kirundi_1.csv",
		"Kirundi_Transcription,French_Translation\n"+
			" amahoro , la paix \n"+
			"urakoze,\n")

	sub, err := ReadSubmission(path, corpus.DefaultProfile())
	require.NoError(t, err)
	assert.Equal(t, KindInsert, sub.Kind)
	require.Len(t, sub.Inserts, 2)
	assert.Equal(t, InsertRow{Source: "amahoro", Target: "la paix"}, sub.Inserts[0])
	assert.Equal(t, InsertRow{Source: "urakoze", Target: ""}, sub.Inserts[1])
}

func TestReadSubmissionCorrection(t *testing.T) {
	path := writeSubmission(t, t.TempDir(), "Kirundi_To_French_1.csv",
		"Kirundi_Transcription,Corrected_Transcription,French_Translation\n"+
			"mwaramutze,mwaramutse,bonjour\n")

	sub, err := ReadSubmission(path, corpus.DefaultProfile())
	require.NoError(t, err)
	assert.Equal(t, KindCorrection, sub.Kind)
	require.Len(t, sub.Corrections, 1)
	assert.Equal(t, CorrectionRow{Original: "mwaramutze", Corrected: "mwaramutse", Target: "bonjour"}, sub.Corrections[0])
}

func TestReadSubmissionTrimsHeaderWhitespace(t *testing.T) {
	path := writeSubmission(t, t.TempDir(), "French_To_Kirundi_1.csv",
		"\ufeff Kirundi_Transcription , French_Translation \n"+
			"amahoro,paix\n")

	sub, err := ReadSubmission(path, corpus.DefaultProfile())
	require.NoError(t, err)
	require.Len(t, sub.Inserts, 1)
}

func TestReadSubmissionUnknownPrefixIsMalformed(t *testing.T) {
	path := writeSubmission(t, t.TempDir(), "notes.csv",
		"Kirundi_Transcription,French_Translation\namahoro,paix\n")

	_, err := ReadSubmission(path, corpus.DefaultProfile())
	assert.True(t, errors.IsMalformedSubmission(err))
}

func TestReadSubmissionMissingColumnsIsMalformed(t *testing.T) {
	// Correction files need the corrected column as well.
	path := writeSubmission(t, t.TempDir(), "Kirundi_To_French_1.csv",
		"Kirundi_Transcription,French_Translation\namahoro,paix\n")

	_, err := ReadSubmission(path, corpus.DefaultProfile())
	assert.True(t, errors.IsMalformedSubmission(err))

	path = writeSubmission(t, t.TempDir(), "French_To_Kirundi_1.csv",
		"Transcription,Translation\namahoro,paix\n")
	_, err = ReadSubmission(path, corpus.DefaultProfile())
	assert.True(t, errors.IsMalformedSubmission(err))
}

func TestReadSubmissionShortRows(t *testing.T) {
	path := writeSubmission(t, t.TempDir(), "French_To_Kirundi_1.csv",
		"Kirundi_Transcription,French_Translation\n"+
			"amahoro\n")

	sub, err := ReadSubmission(path, corpus.DefaultProfile())
	require.NoError(t, err)
	require.Len(t, sub.Inserts, 1)
	assert.Equal(t, "", sub.Inserts[0].Target)
}
