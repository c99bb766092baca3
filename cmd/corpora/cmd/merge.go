package cmd

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"corpora/internal/config"
	"corpora/pkg/corpus"
	"corpora/pkg/errors"
	"corpora/pkg/logging"
	"corpora/pkg/reconcile"
)

var (
	mergeMaster      string
	mergeSubmissions string
	mergeProcessed   string
	mergeProfile     string
	mergeDryRun      bool
)

// mergeCmd represents the merge command.
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge contributor submissions into the master dataset",
	Long: `Merge reconciles every CSV file in the submissions directory into
the master metadata table.

Files named with the insert prefix add brand-new sentence pairs;
files named with the correction prefix supply a corrected
transcription plus the missing translation for existing untranslated
rows. Every submission file is moved to the processed directory once
read, whether or not it applied, so a file is never processed twice.

The master table is rewritten in full at the end of the run. If it
cannot be loaded, or a previous run still holds the lock, nothing is
touched.`,
	Example: `  corpora merge
  corpora merge --master ../Kirundi_Dataset/metadata.csv
  corpora merge --submissions ./submissions --processed ./processed_submissions
  corpora merge --dry-run`,
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVarP(&mergeMaster, "master", "m", "", "master metadata CSV file")
	mergeCmd.Flags().StringVarP(&mergeSubmissions, "submissions", "s", "", "intake directory of contributor files")
	mergeCmd.Flags().StringVar(&mergeProcessed, "processed", "", "archive directory for processed files")
	mergeCmd.Flags().StringVar(&mergeProfile, "profile", "", "dataset profile YAML file")
	mergeCmd.Flags().BoolVar(&mergeDryRun, "dry-run", false, "apply submissions in memory but do not save the master table")

	bindings := map[string]string{
		config.KeyMaster:      "master",
		config.KeySubmissions: "submissions",
		config.KeyProcessed:   "processed",
		config.KeyProfile:     "profile",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, mergeCmd.Flags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("Failed to bind %s flag: %v", flag, err))
		}
	}
}

func runMerge(cmd *cobra.Command, _ []string) error {
	logger := logging.Default()

	masterPath := viper.GetString(config.KeyMaster)
	submissionsDir := viper.GetString(config.KeySubmissions)
	processedDir := viper.GetString(config.KeyProcessed)

	profile := corpus.DefaultProfile()
	if profilePath := viper.GetString(config.KeyProfile); profilePath != "" {
		var err error
		if profile, err = corpus.LoadProfile(profilePath); err != nil {
			return err
		}
	}

	// One writer at a time; a stale lock from a crashed run has to be
	// removed by the operator.
	lock := flock.New(masterPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock %s: %w", masterPath, err)
	}
	if !locked {
		return fmt.Errorf("%s: %w", masterPath, errors.ErrLocked)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Error().Err(err).Msg("Could not release master lock")
		}
	}()

	table, err := corpus.Load(masterPath, profile)
	if err != nil {
		return err
	}

	reconciler, err := reconcile.New(table,
		reconcile.WithProfile(profile),
		reconcile.WithArchiver(reconcile.DirArchiver{Dir: processedDir}),
		reconcile.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	result, err := reconciler.Run(cmd.Context(), submissionsDir)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, renderRunTable(result))
	fmt.Fprintln(os.Stdout, result.Summary())

	if mergeDryRun {
		logger.Info().Msg("Dry-run, master table not saved")
		return nil
	}

	if err := table.Save(masterPath); err != nil {
		return fmt.Errorf("save master table %s: %w", masterPath, err)
	}
	logger.Info().Str("file", masterPath).Int("rows", table.Len()).Msg("Master table saved")

	for _, warning := range result.Warnings {
		logger.Warn().Msg(warning)
	}
	return nil
}
