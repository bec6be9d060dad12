package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"osu-db-tool/core/osudb"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// restoreCmd puts back the store files snapshotted by an earlier run.
var restoreCmd = &cobra.Command{
	Use:   "restore <osu-path> <run-id> [file...]",
	Short: "Restore store files from the snapshots of an earlier run",
	Long: `Downloads the snapshots taken by the run with the given id and writes them back
into the osu! directory. Without file arguments every snapshot of the run is restored.
The current files are snapshotted under the new run id first.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(args[0])
		if err != nil {
			return err
		}
		defer a.close()

		if a.mirror == nil {
			return errors.New("restore needs storage.endpoint to be configured")
		}

		ctx := cmd.Context()
		runID := args[1]
		files := args[2:]
		if len(files) == 0 {
			files, err = a.mirror.List(ctx, runID)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("%w: no snapshots for run %s", osudb.ErrNotFound, runID)
			}
		}

		targets := restoreTargets(a.paths)
		for _, file := range files {
			dst, ok := targets[file]
			if !ok {
				return fmt.Errorf("cannot restore %q: not a store file", file)
			}
			if err := a.mirror.Snapshot(ctx, dst); err != nil {
				return err
			}
			if err := a.mirror.Restore(ctx, runID, file, dst); err != nil {
				return err
			}
		}
		a.log.Info("Restore completed", zap.String("from_run", runID), zap.Strings("files", files))
		return nil
	},
}

// restoreTargets maps snapshot names to the files they are restored to.
func restoreTargets(paths osudb.Paths) map[string]string {
	targets := make(map[string]string)
	for _, p := range []string{paths.Listing(), paths.Scores(), paths.Collections()} {
		targets[filepath.Base(p)] = p
	}
	return targets
}

func init() {
	RootCmd.AddCommand(restoreCmd)
}
