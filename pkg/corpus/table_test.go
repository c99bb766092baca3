package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHeader() []string {
	return []string{"file_path", "Kirundi_Transcription", "French_Translation", "speaker_id", "Age", "Gender"}
}

func newTestTable(t *testing.T, rows ...[]string) *Table {
	t.Helper()
	table, err := NewTable(testHeader(), DefaultProfile())
	require.NoError(t, err)
	for _, row := range rows {
		table.appendFields(row)
	}
	return table
}

func row(source, target string) []string {
	return []string{"", source, target, "", "", ""}
}

func TestNewTableMissingColumn(t *testing.T) {
	_, err := NewTable([]string{"file_path", "French_Translation"}, DefaultProfile())
	assert.Error(t, err)

	_, err = NewTable([]string{"Kirundi_Transcription", "speaker_id"}, DefaultProfile())
	assert.Error(t, err)
}

func TestNewTableTrimsHeaderWhitespace(t *testing.T) {
	table, err := NewTable([]string{" Kirundi_Transcription ", "French_Translation\t"}, DefaultProfile())
	require.NoError(t, err)
	assert.Equal(t, []string{"Kirundi_Transcription", "French_Translation"}, table.Header())
}

func TestLookupDuplicateKeys(t *testing.T) {
	table := newTestTable(t,
		row("Bonjour!", ""),
		row("amahoro", "paix"),
		row("bonjour", ""),
	)

	assert.Equal(t, []int{0, 2}, table.Lookup("bonjour"))
	assert.Equal(t, []int{1}, table.Lookup("amahoro"))
	assert.Empty(t, table.Lookup("absent"))
	assert.False(t, table.HasKey("absent"))
}

func TestEmptyKeysAreTolerated(t *testing.T) {
	table := newTestTable(t,
		row("", ""),
		row("?!", ""),
	)
	assert.Equal(t, []int{0, 1}, table.Lookup(""))
}

func TestAppendIndexesIncrementally(t *testing.T) {
	table := newTestTable(t)
	i := table.Append("Au revoir", "goodbye")
	assert.Equal(t, 0, i)
	assert.Equal(t, []int{0}, table.Lookup("au revoir"))
	assert.Equal(t, "Au revoir", table.Source(0))
	assert.Equal(t, "goodbye", table.Target(0))
	assert.Len(t, table.Row(0), len(testHeader()))
}

func TestUpdateSourceAndTranslationReindexes(t *testing.T) {
	table := newTestTable(t,
		row("bonjour", ""),
		row("merci", "thanks"),
	)

	require.NoError(t, table.UpdateSourceAndTranslation(0, "Bonjour!", "hello"))
	assert.Equal(t, "Bonjour!", table.Source(0))
	assert.Equal(t, "hello", table.Target(0))
	// Punctuation-only change keeps the same key.
	assert.Equal(t, []int{0}, table.Lookup("bonjour"))

	require.NoError(t, table.UpdateSourceAndTranslation(0, "mwaramutse", "hello"))
	assert.Empty(t, table.Lookup("bonjour"), "old key must be removed")
	assert.Equal(t, []int{0}, table.Lookup("mwaramutse"))
}

func TestUpdateMayCollideWithExistingKey(t *testing.T) {
	table := newTestTable(t,
		row("merci", "thanks"),
		row("murakoze", ""),
	)

	require.NoError(t, table.UpdateSourceAndTranslation(1, "Merci", "thanks"))
	assert.Equal(t, []int{0, 1}, table.Lookup("merci"), "duplicate keys stay enumerable")
}

func TestUpdateOutOfRange(t *testing.T) {
	table := newTestTable(t)
	assert.Error(t, table.UpdateSourceAndTranslation(0, "x", "y"))
	assert.Error(t, table.UpdateSourceAndTranslation(-1, "x", "y"))
}

func TestLookupReturnsCopy(t *testing.T) {
	table := newTestTable(t, row("bonjour", ""))
	got := table.Lookup("bonjour")
	got[0] = 99
	assert.Equal(t, []int{0}, table.Lookup("bonjour"))
}

func TestLine(t *testing.T) {
	table := newTestTable(t, row("bonjour", ""))
	assert.Equal(t, 2, table.Line(0), "first data row sits on CSV line 2")
}
