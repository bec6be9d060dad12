package replay

import (
	"sort"

	"osu-db-tool/core/beatmap"
)

// AlignResult reports how many hit objects were moved.
type AlignResult struct {
	Aligned   int
	Untouched int
}

// Align moves each hit object, in order, onto the nearest click that has not been
// consumed yet. Choosing a click consumes it together with every earlier click.
// Once no click at or after a hit object's time remains, that object and all later
// ones are left as they are.
func Align(objects []beatmap.HitObject, clicks []Click) AlignResult {
	pool := clicks
	var res AlignResult

	for i := range objects {
		obj := &objects[i]
		idx := sort.Search(len(pool), func(j int) bool { return pool[j].Time >= obj.Time })
		if idx == len(pool) {
			res.Untouched = len(objects) - i
			return res
		}

		if idx > 0 && obj.Time-pool[idx-1].Time < pool[idx].Time-obj.Time {
			idx--
		}

		c := pool[idx]
		obj.Time = c.Time
		obj.X = int32(c.X)
		obj.Y = int32(c.Y)
		pool = pool[idx+1:]
		res.Aligned++
	}
	return res
}
