// Package config centralizes the viper setting keys and defaults for
// the corpora CLI. Every key can be set in the config file, through a
// CORPORA_-prefixed environment variable, or by the matching flag.
package config

import (
	"os"

	"github.com/spf13/viper"
)

// Setting keys.
const (
	// KeyMaster is the path of the master metadata CSV file.
	KeyMaster = "master"

	// KeySubmissions is the intake directory of contributor files.
	KeySubmissions = "submissions"

	// KeyProcessed is the archive directory for processed files.
	KeyProcessed = "processed"

	// KeyProfile is an optional dataset profile YAML path.
	KeyProfile = "profile"

	// KeyPromptsFile is the prompt sentence file.
	KeyPromptsFile = "prompts-file"
)

// SetDefaults registers the default value of every setting.
func SetDefaults() {
	viper.SetDefault(KeyMaster, "metadata.csv")
	viper.SetDefault(KeySubmissions, "submissions")
	viper.SetDefault(KeyProcessed, "processed_submissions")
	viper.SetDefault(KeyProfile, "")
	viper.SetDefault(KeyPromptsFile, "french_prompts.txt")
}

// GetString returns the value for key, checking the OS environment
// directly as a fallback for variables viper was never told about.
func GetString(key string) string {
	if value := viper.GetString(key); value != "" {
		return value
	}
	return os.Getenv(key)
}
