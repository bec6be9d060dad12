// Package osudb reads and writes the osu! client's binary stores.
//
// It covers the four formats the tool edits:
//   - osu!.db: the beatmap listing, including cached star ratings per mod combination.
//   - scores.db: local score history grouped by beatmap hash.
//   - collection.db: named collections of beatmap hashes.
//   - .osr: a single replay, including its LZMA-compressed input frames.
//
// Every decoder is the exact inverse of its encoder, so a store that is read and written
// back without modification is byte-identical. Optional strings are represented as *string:
// a nil pointer is the format's "absent" marker (0x00), a non-nil pointer is a present
// string (0x0b + ULEB128 length + UTF-8 bytes), even when empty.
//
// # Errors
//
// Failures are classified with sentinel errors that callers match with errors.Is:
//   - ErrNotFound: a store file does not exist.
//   - ErrMalformed: a store could not be decoded.
//
// Any other error is an I/O failure.
//
// # Usage
//
//	listing, err := osudb.LoadListing(paths.Listing())
//	if err != nil {
//	    return err
//	}
//	listing.Beatmaps = append(listing.Beatmaps, entry)
//	err = listing.Save(paths.Listing())
package osudb
