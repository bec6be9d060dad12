package cmd

import (
	"fmt"

	"osu-db-tool/core/osudb"
	"osu-db-tool/feature/rating"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// diffCalcCmd backfills cached star ratings.
var diffCalcCmd = &cobra.Command{
	Use:   "diff-calc <osu-path> [mods]",
	Short: "Calculate missing star ratings in osu!.db",
	Long: `Calculates the standard star rating of every beatmap for each wanted mod combination
that osu!.db has no cached rating for. mods is a comma separated list such as
"NM,HR,DT,HRDT" and defaults to rating.mods.

Ratings are computed by the command configured in rating.command. Beatmaps that fail
to load are skipped, and recorded in the database when one is configured.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(args[0])
		if err != nil {
			return err
		}
		defer a.close()

		mods := a.cfg.Rating.Mods
		if len(args) == 2 {
			mods = args[1]
		}
		wanted, err := osudb.ParseModSets(mods)
		if err != nil {
			return fmt.Errorf("invalid mods: %w", err)
		}

		evaluator, err := rating.NewExternalEvaluator(a.cfg.Rating.Command)
		if err != nil {
			return err
		}

		opts := []rating.ServiceOption{rating.WithUsername(a.cfg.Osu.Username)}
		db, err := a.connectDB()
		if err != nil {
			return err
		}
		if db != nil {
			ledger := rating.NewLedger(db)
			if err := ledger.Migrate(); err != nil {
				return fmt.Errorf("failed to migrate ledger: %w", err)
			}
			opts = append(opts, rating.WithLedger(ledger, a.runID))
		}

		a.log.Info("Calculating star ratings", zap.Stringer("mods", modList(wanted)), zap.Int("workers", a.cfg.Rating.Workers))
		svc := rating.NewService(a.paths, a.cfg.Rating, evaluator, a.snapshot, a.metrics, a.log, opts...)
		if _, err := svc.Backfill(cmd.Context(), wanted); err != nil {
			return err
		}
		a.metrics.StoreWritten("listing")
		a.log.Info("Done")
		return nil
	},
}

type modList []osudb.ModSet

func (l modList) String() string {
	s := ""
	for i, m := range l {
		if i > 0 {
			s += ","
		}
		s += m.String()
	}
	return s
}

func init() {
	RootCmd.AddCommand(diffCalcCmd)
}
