package cmd

import (
	"osu-db-tool/feature/collection"

	"github.com/spf13/cobra"
)

// addAllMapsCmd builds a collection of every beatmap.
var addAllMapsCmd = &cobra.Command{
	Use:   "add-all-maps-to-collection <osu-path> [name]",
	Short: "Create a collection containing every beatmap in osu!.db",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(args[0])
		if err != nil {
			return err
		}
		defer a.close()

		var name string
		if len(args) == 2 {
			name = args[1]
		}

		b := collection.NewBuilder(a.paths, a.cfg.Collection, a.snapshot, a.log)
		if _, err := b.AddAllMaps(cmd.Context(), name); err != nil {
			return err
		}
		a.metrics.StoreWritten("collection")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(addAllMapsCmd)
}
