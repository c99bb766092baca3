package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	err := &ParseError{Path: "metadata.csv", Line: 12, Err: New("wrong field count")}
	assert.Equal(t, "parse metadata.csv line 12: wrong field count", err.Error())

	err = &ParseError{Path: "metadata.csv", Err: New("no header")}
	assert.Equal(t, "parse metadata.csv: no header", err.Error())
}

func TestSubmissionErrorIs(t *testing.T) {
	err := NewSubmissionError("batch_01.csv", fmt.Errorf("missing columns: %w", ErrMalformedSubmission))
	assert.True(t, IsMalformedSubmission(err))
	assert.Contains(t, err.Error(), "batch_01.csv")

	plain := NewSubmissionError("batch_02.csv", New("disk gone"))
	assert.False(t, IsMalformedSubmission(plain))
}

func TestValidationErrorIs(t *testing.T) {
	err := &ValidationError{Field: "source_column", Message: "cannot be empty"}
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "source_column")
}
