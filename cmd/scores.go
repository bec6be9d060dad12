package cmd

import (
	"osu-db-tool/feature/scores"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// importReplaysCmd imports local replays into scores.db.
var importReplaysCmd = &cobra.Command{
	Use:   "import-replays <osu-path>",
	Short: "Add every replay in Data/r to scores.db",
	Long: `Scans Data/r for .osr files and adds the ones missing from scores.db.
When anything is added, the previous scores.db is kept as scores.db.backup.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(args[0])
		if err != nil {
			return err
		}
		defer a.close()

		report, err := scores.NewImporter(a.paths, a.snapshot, a.log).Import(cmd.Context())
		if err != nil {
			return err
		}
		a.metrics.ObserveSummary("scores", report.Summary)
		if report.Saved {
			a.metrics.StoreWritten("scores")
		}

		a.log.Info("Import finished",
			zap.Int("replays", report.Candidates),
			zap.Int("added", report.Added),
			zap.Int("duplicates", report.Duplicates),
			zap.Bool("saved", report.Saved),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(importReplaysCmd)
}
