package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"osu-db-tool/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixFlag  bool
	jsonFlag bool
)

// integrityCmd checks an installation before it is edited.
var integrityCmd = &cobra.Command{
	Use:   "integrity <osu-path>",
	Short: "Check that an osu! installation is complete and readable",
	Long: `Checks that the store files and directories exist, that every store decodes and
that every beatmap in osu!.db has its .osu file. Use --fix to create missing directories.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(args[0])
		if err != nil {
			return err
		}
		defer a.close()
		startTime := time.Now()

		svc := integrity.NewService(a.paths, a.log)
		if fixFlag {
			missing, err := svc.CheckStructure()
			if err != nil {
				return err
			}
			if err := svc.FixStructure(missing); err != nil {
				return err
			}
		}

		songs, err := a.songsDir()
		if err != nil {
			a.log.Warn("Cannot resolve songs directory, skipping beatmap file check", zap.Error(err))
			songs = ""
		}

		report, err := svc.Run(songs)
		if err != nil {
			return err
		}

		if jsonFlag {
			filename := fmt.Sprintf("integrity_%d.json", time.Now().Unix())
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			if err := os.WriteFile(filename, data, 0o644); err != nil {
				return fmt.Errorf("failed to save JSON file: %w", err)
			}
			a.log.Info("Detailed JSON report saved", zap.String("file", filename))
		}

		for _, s := range report.Stores {
			if s.Error != "" {
				a.log.Error("Store is unreadable", zap.String("store", s.Name), zap.String("error", s.Error))
				continue
			}
			a.log.Info("Store ok", zap.String("store", s.Name), zap.Int("records", s.Records))
		}
		a.log.Info("Integrity check completed",
			zap.Strings("missing_structure", report.MissingStructure),
			zap.Int("missing_beatmaps", len(report.MissingBeatmaps)),
			zap.Bool("healthy", report.Healthy()),
			zap.Duration("execution_time", time.Since(startTime)),
		)
		return nil
	},
}

func init() {
	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing directories")
	integrityCmd.Flags().BoolVar(&jsonFlag, "json", false, "Save the full report as JSON")
	RootCmd.AddCommand(integrityCmd)
}
