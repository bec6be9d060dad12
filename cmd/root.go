package cmd

import (
	"fmt"
	"os"

	"osu-db-tool/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configDir    string
	logLevelFlag string
	workersFlag  int
)

// RootCmd is the osu-db-tool command; every operation is a subcommand.
var RootCmd = &cobra.Command{
	Use:   "osu-db-tool",
	Short: "Offline editor for the osu! data store",
	Long: `osu-db-tool edits the local database files of an osu! installation:
osu!.db, scores.db, collection.db and .osr replays.

Every operation takes the osu! installation directory as its first argument.
Store files are written atomically, and optionally snapshotted to S3/MinIO first.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Errors are logged on a console logger, since the
// run's own logger may not exist yet, and the process exits with status 1.
func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}
	if l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"}); logErr == nil {
		l.Error("Command failed", zap.Error(err))
		_ = l.Sync()
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "Directory containing .env and config.yaml")
	RootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override log.level (debug, info, warn, error)")
	RootCmd.PersistentFlags().IntVar(&workersFlag, "workers", 0, "Override rating.workers")
}
