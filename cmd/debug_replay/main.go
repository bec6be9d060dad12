package main

import (
	"fmt"
	"log"
	"os"

	"osu-db-tool/core/osudb"
	"osu-db-tool/feature/replay"
)

// Usage: debug_replay <replay.osr>
func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: debug_replay <replay.osr>")
	}

	rp, err := osudb.LoadReplay(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Player: %s\n", deref(rp.PlayerName))
	fmt.Printf("Beatmap hash: %s\n", deref(rp.BeatmapHash))
	fmt.Printf("Replay hash: %s\n", deref(rp.ReplayHash))
	fmt.Printf("Mods: %s\n", rp.Mods)
	fmt.Printf("Frames: %d\n", len(rp.Frames))
	if rp.Seed != nil {
		fmt.Printf("Seed: %d\n", *rp.Seed)
	}

	clicks := replay.ExtractClicks(rp.Frames)
	fmt.Printf("\n=== %d clicks ===\n", len(clicks))
	for i, c := range clicks {
		if i == 20 {
			fmt.Printf("... %d more\n", len(clicks)-i)
			break
		}
		fmt.Printf("%8d ms  (%.1f, %.1f)\n", c.Time, c.X, c.Y)
	}
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
