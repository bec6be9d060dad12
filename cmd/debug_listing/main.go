package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"osu-db-tool/core/osudb"
	"osu-db-tool/core/reconcile"
	"osu-db-tool/feature/listing"

	"go.uber.org/zap"
)

// Usage: debug_listing <osu-path> <hash-or-file-name-fragment>
func main() {
	if len(os.Args) != 3 {
		log.Fatal("usage: debug_listing <osu-path> <hash-or-name>")
	}
	paths := osudb.Paths{Root: os.Args[1]}
	needle := os.Args[2]

	fmt.Println("Loading osu!.db...")
	l, err := osudb.LoadListing(paths.Listing())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Version %d, %d beatmaps\n", l.Version, len(l.Beatmaps))

	// Test 1: linear scan by hash or file name
	fmt.Println("\n=== TEST 1: Linear scan ===")
	found := 0
	absent := 0
	for i, b := range l.Beatmaps {
		if b.Hash == nil {
			absent++
		}
		if (b.Hash != nil && *b.Hash == needle) || (b.FileName != nil && strings.Contains(*b.FileName, needle)) {
			found++
			fmt.Printf("FOUND at %d: hash=%s folder=%s file=%s ratings=%d\n",
				i, deref(b.Hash), deref(b.FolderName), deref(b.FileName), len(b.StdRatings))
			for _, r := range b.StdRatings {
				fmt.Printf("  %-6s %.2f\n", r.Mods, r.Stars)
			}
		}
	}
	fmt.Printf("%d matches, %d beatmaps without hash\n", found, absent)

	// Test 2: binary search after sorting, as the merge does
	fmt.Println("\n=== TEST 2: Sorted search ===")
	spec := listing.NewMerger(paths, nil, zap.NewNop()).Spec()
	spec.Sort(l.Beatmaps)
	fmt.Printf("Sorted: %v\n", spec.IsSorted(l.Beatmaps))
	key, ok := reconcile.Deref(&needle)
	if idx, hit := spec.Search(l.Beatmaps, key, ok); hit {
		fmt.Printf("FOUND by hash at sorted index %d\n", idx)
	} else {
		fmt.Printf("NOT FOUND by hash, would insert at %d\n", idx)
	}
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
