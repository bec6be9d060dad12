// Package listing merges the beatmaps of another osu!.db into the local one.
//
// Beatmaps are matched by hash. Known beatmaps are left as they are; unknown ones are
// inserted, keeping the local listing sorted by hash.
package listing
