package cmd

import (
	"osu-db-tool/feature/listing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// importDatabaseCmd merges another osu!.db into the local one.
var importDatabaseCmd = &cobra.Command{
	Use:   "import-database <osu-path> <other-osu-db>",
	Short: "Add the beatmaps of another osu!.db",
	Long: `Adds every beatmap of another osu!.db that the local osu!.db does not know yet.
Beatmaps are matched by hash; known beatmaps are left untouched.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(args[0])
		if err != nil {
			return err
		}
		defer a.close()

		report, err := listing.NewMerger(a.paths, a.snapshot, a.log).Merge(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		a.metrics.ObserveSummary("listing", report.Summary)
		if report.Saved {
			a.metrics.StoreWritten("listing")
		}

		a.log.Info("Merge finished",
			zap.Int("beatmaps", report.Candidates),
			zap.Int("inserted", report.Inserted),
			zap.Int("known", report.Found),
			zap.Bool("saved", report.Saved),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(importDatabaseCmd)
}
