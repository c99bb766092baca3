package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"corpora/internal/config"
	"corpora/pkg/logging"
	"corpora/pkg/prompts"
)

var (
	promptsNum      int
	promptsFile     string
	promptsMinWords int
	promptsMaxWords int
)

// promptsCmd represents the prompts command.
var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Source new French prompt sentences for contributors",
	Long: `Prompts downloads short modern French sentences from the
Helsinki-NLP/opus-100 parallel corpus, filters out markup, overlong
phrases and duplicates of the existing prompt file, and appends the
new sentences to it.`,
	Example: `  corpora prompts
  corpora prompts --num 200
  corpora prompts --min-words 4 --max-words 10`,
	RunE: runPrompts,
}

func init() {
	rootCmd.AddCommand(promptsCmd)

	promptsCmd.Flags().IntVarP(&promptsNum, "num", "n", 50, "number of sentences to add")
	promptsCmd.Flags().StringVarP(&promptsFile, "file", "f", "", "prompt sentence file")
	promptsCmd.Flags().IntVar(&promptsMinWords, "min-words", 3, "minimum words per sentence")
	promptsCmd.Flags().IntVar(&promptsMaxWords, "max-words", 12, "maximum words per sentence")

	if err := viper.BindPFlag(config.KeyPromptsFile, promptsCmd.Flags().Lookup("file")); err != nil {
		panic(fmt.Sprintf("Failed to bind file flag: %v", err))
	}
}

func runPrompts(cmd *cobra.Command, _ []string) error {
	logger := logging.Default()
	path := viper.GetString(config.KeyPromptsFile)

	seen, err := prompts.LoadExisting(path)
	if err != nil {
		return fmt.Errorf("read prompt file %s: %w", path, err)
	}
	logger.Info().Str("file", path).Int("existing", len(seen)).Msg("Loaded existing prompts")

	generator := prompts.NewGenerator(
		prompts.NewClient(),
		prompts.Filter{MinWords: promptsMinWords, MaxWords: promptsMaxWords},
		logger,
	)
	sentences, err := generator.Generate(cmd.Context(), promptsNum, seen)
	if err != nil {
		return err
	}
	if len(sentences) == 0 {
		logger.Warn().Msg("No new sentences found")
		return nil
	}

	if err := prompts.Append(path, sentences); err != nil {
		return fmt.Errorf("append to %s: %w", path, err)
	}
	logger.Info().Str("file", path).Int("added", len(sentences)).Msg("Prompt file updated")
	return nil
}
