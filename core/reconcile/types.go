package reconcile

import "cmp"

// Outcome reports which path a candidate took.
type Outcome string

const (
	// OutcomeFound means a record with the candidate's key already existed.
	OutcomeFound Outcome = "found"
	// OutcomeInserted means the candidate was inserted as a new record.
	OutcomeInserted Outcome = "inserted"
)

// Spec defines how one record schema is reconciled.
// T is the record type and K the type of its (optional) key.
type Spec[T any, K cmp.Ordered] struct {
	// Name identifies the store in logs and summaries (e.g. "scores", "listing").
	Name string

	// Key extracts the record key. ok is false when the record has no key.
	Key func(item *T) (key K, ok bool)

	// OnFound is invoked with the existing record and the candidate when the key is
	// already present. A nil OnFound leaves the existing record untouched.
	OnFound func(existing *T, candidate T)

	// OnMissing builds the record to insert when the key is absent.
	// A nil OnMissing inserts the candidate itself.
	OnMissing func(candidate T) T
}

// Summary provides aggregate counts over a series of reconcile calls.
type Summary struct {
	// Candidates is the number of records offered to the target.
	Candidates int `json:"candidates"`

	// Found counts candidates whose key already existed.
	Found int `json:"found"`

	// Inserted counts candidates inserted as new records.
	Inserted int `json:"inserted"`
}

// Add records one outcome.
func (s *Summary) Add(o Outcome) {
	s.Candidates++
	switch o {
	case OutcomeFound:
		s.Found++
	case OutcomeInserted:
		s.Inserted++
	}
}
