package checks

import (
	"errors"

	"osu-db-tool/core/osudb"
)

// StoreResult is the outcome of decoding one store file.
type StoreResult struct {
	Name    string `json:"name"`
	Records int    `json:"records"`
	Error   string `json:"error,omitempty"`
}

// CheckStores decodes every store file that exists. Missing files are left to
// CheckStructure.
func CheckStores(paths osudb.Paths) []StoreResult {
	results := []StoreResult{
		decode("osu!.db", func() (int, error) {
			l, err := osudb.LoadListing(paths.Listing())
			if err != nil {
				return 0, err
			}
			return len(l.Beatmaps), nil
		}),
		decode("scores.db", func() (int, error) {
			s, err := osudb.LoadScoreList(paths.Scores())
			if err != nil {
				return 0, err
			}
			n := 0
			for _, b := range s.Beatmaps {
				n += len(b.Scores)
			}
			return n, nil
		}),
		decode("collection.db", func() (int, error) {
			c, err := osudb.LoadCollectionList(paths.Collections())
			if err != nil {
				return 0, err
			}
			return len(c.Collections), nil
		}),
	}

	var out []StoreResult
	for _, r := range results {
		if r.Name != "" {
			out = append(out, r)
		}
	}
	return out
}

func decode(name string, load func() (int, error)) StoreResult {
	n, err := load()
	switch {
	case errors.Is(err, osudb.ErrNotFound):
		return StoreResult{}
	case err != nil:
		return StoreResult{Name: name, Error: err.Error()}
	}
	return StoreResult{Name: name, Records: n}
}
