package cmd

import (
	"osu-db-tool/feature/replay"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// replayToBeatmapCmd turns a replay into a beatmap.
var replayToBeatmapCmd = &cobra.Command{
	Use:   "replay-to-beatmap <osu-path> <replay>",
	Short: "Create a beatmap whose hit objects follow a replay's clicks",
	Long: `Moves every hit object of the replay's beatmap onto the nearest click of the replay
and saves the result as a new difficulty named "awesome <file>". A copy of the replay
pointing at the new difficulty is written to awesomereplay.osr, and the difficulty is
added to osu!.db.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(args[0])
		if err != nil {
			return err
		}
		defer a.close()

		if a.cfg.Replay.SongsDir == "" {
			if a.cfg.Replay.SongsDir, err = a.songsDir(); err != nil {
				return err
			}
		}

		c := replay.NewConverter(a.paths, a.cfg.Replay, a.snapshot, a.log)
		res, err := c.Convert(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		if res.Registered {
			a.metrics.StoreWritten("listing")
		}

		a.log.Info("Replay converted",
			zap.String("beatmap", res.BeatmapPath),
			zap.String("hash", res.BeatmapHash),
			zap.String("replay", res.ReplayPath),
			zap.Int("aligned", res.Align.Aligned),
			zap.Int("untouched", res.Align.Untouched),
			zap.Bool("registered", res.Registered),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(replayToBeatmapCmd)
}
