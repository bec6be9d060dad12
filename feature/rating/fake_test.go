package rating

import (
	"context"
	"errors"
	"sync"

	"osu-db-tool/core/osudb"
)

var errLoad = errors.New("cannot parse beatmap")

// fakeEvaluator rates every beatmap at base + mods/1000 stars.
type fakeEvaluator struct {
	mu        sync.Mutex
	base      map[string]float64
	failStars map[string]bool
	loads     []string
}

func (e *fakeEvaluator) Load(_ context.Context, path string) (Chart, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loads = append(e.loads, path)
	base, ok := e.base[path]
	if !ok {
		return nil, errLoad
	}
	return fakeChart{base: base, fail: e.failStars[path]}, nil
}

type fakeChart struct {
	base float64
	fail bool
}

func (c fakeChart) Stars(_ context.Context, mods osudb.ModSet) (float64, error) {
	if c.fail {
		return 0, errors.New("calculator crashed")
	}
	return c.base + float64(mods)/1000, nil
}
