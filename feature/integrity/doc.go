// Package integrity checks an osu! installation before it is edited.
//
// # Checks
//
//   - Structure: osu!.db, scores.db, collection.db, Data/r and Songs exist.
//     Missing directories can be created with FixStructure.
//   - Stores: every existing store file decodes cleanly.
//   - Beatmaps: every osu!.db entry points at an existing .osu file.
package integrity
