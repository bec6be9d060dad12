package replay

import (
	"testing"

	"osu-db-tool/core/osudb"

	"github.com/stretchr/testify/assert"
)

func frames(deltas []int64, masks []uint32) []osudb.ReplayFrame {
	out := make([]osudb.ReplayFrame, len(deltas))
	for i := range deltas {
		out[i] = osudb.ReplayFrame{Delta: deltas[i], X: float32(i * 10), Y: float32(i * 20), Buttons: masks[i]}
	}
	return out
}

func TestExtractClicks(t *testing.T) {
	tests := []struct {
		name   string
		deltas []int64
		masks  []uint32
		want   []Click
	}{
		{
			name:   "rising edge on second button",
			deltas: []int64{0, 10, 5, 20},
			masks:  []uint32{0, 1, 1, 3},
			want:   []Click{{Time: 10, X: 10, Y: 20}, {Time: 35, X: 30, Y: 60}},
		},
		{
			name:   "first frame never clicks",
			deltas: []int64{5, 10},
			masks:  []uint32{1, 1},
			want:   nil,
		},
		{
			name:   "release and press again",
			deltas: []int64{0, 10, 10, 10},
			masks:  []uint32{0, 2, 0, 2},
			want:   []Click{{Time: 10, X: 10, Y: 20}, {Time: 30, X: 30, Y: 60}},
		},
		{
			name:   "smoke and keys outside the mouse bits are ignored",
			deltas: []int64{0, 10, 10},
			masks:  []uint32{0, 16, 4},
			want:   nil,
		},
		{
			name:   "single frame",
			deltas: []int64{0},
			masks:  []uint32{1},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractClicks(frames(tt.deltas, tt.masks)))
		})
	}
}

func TestExtractClicks_OnlyRisingEdgeAtIndexThree(t *testing.T) {
	// Button 1 is already held in the first frame, so only the 1 -> 3 transition clicks.
	clicks := ExtractClicks(frames([]int64{0, 10, 5, 20}, []uint32{1, 1, 1, 3}))

	assert.Equal(t, []Click{{Time: 35, X: 30, Y: 60}}, clicks)
}

func TestExtractClicks_Empty(t *testing.T) {
	assert.Empty(t, ExtractClicks(nil))
}
