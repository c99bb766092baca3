package corpus

import (
	"os"

	"github.com/goccy/go-yaml"

	"corpora/pkg/errors"
)

// Profile names the dataset's columns and the filename prefixes that
// select an intake policy. Every other master column is opaque
// pass-through: the engine never inspects it and preserves its order.
type Profile struct {
	// SourceColumn holds the transcription in the low-resource language.
	SourceColumn string `yaml:"source_column"`

	// TargetColumn holds the translation; empty means "needs translation".
	TargetColumn string `yaml:"target_column"`

	// CorrectedColumn holds the corrected transcription in correction
	// submissions. It never appears in the master table.
	CorrectedColumn string `yaml:"corrected_column"`

	// InsertPrefix marks submission files that introduce new pairs.
	InsertPrefix string `yaml:"insert_prefix"`

	// CorrectionPrefix marks submission files that correct and translate
	// existing untranslated rows.
	CorrectionPrefix string `yaml:"correction_prefix"`
}

// DefaultProfile returns the profile of the Kirundi dataset.
func DefaultProfile() *Profile {
	return &Profile{
		SourceColumn:     "Kirundi_Transcription",
		TargetColumn:     "French_Translation",
		CorrectedColumn:  "Corrected_Transcription",
		InsertPrefix:     "French_To_Kirundi",
		CorrectionPrefix: "Kirundi_To_French",
	}
}

// LoadProfile reads a profile from a YAML file. Fields left empty in
// the file keep their default values.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.ConfigError{Component: "profile", Message: "cannot read " + path, Err: err}
	}

	profile := DefaultProfile()
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, &errors.ConfigError{Component: "profile", Message: "cannot parse " + path, Err: err}
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

// Validate checks that the profile can drive a merge.
func (p *Profile) Validate() error {
	switch {
	case p.SourceColumn == "":
		return &errors.ValidationError{Field: "source_column", Message: "cannot be empty"}
	case p.TargetColumn == "":
		return &errors.ValidationError{Field: "target_column", Message: "cannot be empty"}
	case p.CorrectedColumn == "":
		return &errors.ValidationError{Field: "corrected_column", Message: "cannot be empty"}
	case p.SourceColumn == p.TargetColumn:
		return &errors.ValidationError{Field: "target_column", Message: "must differ from source_column"}
	}
	return nil
}
