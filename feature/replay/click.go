package replay

import "osu-db-tool/core/osudb"

// Click is a button press at an absolute replay time.
type Click struct {
	Time int64
	X    float32
	Y    float32
}

// ExtractClicks returns a click for every frame where a standard-mode button goes from
// released to pressed. The first frame only establishes the initial button state.
func ExtractClicks(frames []osudb.ReplayFrame) []Click {
	if len(frames) < 2 {
		return nil
	}

	var clicks []Click
	var time int64
	for i := 1; i < len(frames); i++ {
		time += frames[i].Delta
		prev, cur := frames[i-1].StdButtons(), frames[i].StdButtons()
		if ^prev&cur != 0 {
			clicks = append(clicks, Click{Time: time, X: frames[i].X, Y: frames[i].Y})
		}
	}
	return clicks
}
