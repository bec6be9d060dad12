// Package reconcile provides a generic sorted-key reconciliation algorithm shared by
// every store-editing operation.
//
// A target collection is kept in ascending key order. Each candidate record is located
// by binary search and then handed to one of two callbacks supplied by the caller:
//   - OnFound receives the existing record and the candidate (merge or skip).
//   - OnMissing builds the record to insert at the search position.
//
// Insertion preserves the sort order, so the same target can receive any number of
// candidates after a single Sort call.
//
// # Keys
//
// Keys are optional. Records without a key sort before every keyed record and are
// never matched: a candidate without a key always takes the OnMissing path.
//
// # Complexity
//
// Search is O(log n) per candidate. Insertion shifts the backing slice and is O(n),
// which is fine for stores of tens of thousands of records.
//
// # Usage Example
//
//	spec := &reconcile.Spec[osudb.BeatmapScores, string]{
//	    Name: "scores",
//	    Key:  func(b *osudb.BeatmapScores) (string, bool) { return reconcile.Deref(b.Hash) },
//	    OnFound: func(existing *osudb.BeatmapScores, candidate osudb.BeatmapScores) {
//	        existing.Scores = append(existing.Scores, candidate.Scores...)
//	    },
//	}
//	spec.Sort(list.Beatmaps)
//	outcome := spec.Reconcile(&list.Beatmaps, candidate)
package reconcile
