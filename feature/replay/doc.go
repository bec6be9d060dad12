// Package replay turns a replay into a beatmap whose hit objects sit exactly where the
// player clicked.
//
// The conversion runs in three steps:
//   - ExtractClicks finds the rising edges of the left/right buttons in the frame trace.
//   - Align snaps every hit object onto the nearest unused click, greedily.
//   - Converter writes the modified chart next to the original, registers it in
//     osu!.db and saves a copy of the replay pointing at the new chart.
package replay
