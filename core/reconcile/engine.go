package reconcile

import (
	"cmp"
	"slices"
)

// CompareKeys orders optional keys: absent keys first, then present keys ascending.
func CompareKeys[K cmp.Ordered](a K, aok bool, b K, bok bool) int {
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}

// Sort orders items ascending by key. It must be called before the first Search or
// Reconcile on a target. Records with equal keys keep their relative order.
func (s *Spec[T, K]) Sort(items []T) {
	slices.SortStableFunc(items, func(a, b T) int {
		ak, aok := s.Key(&a)
		bk, bok := s.Key(&b)
		return CompareKeys(ak, aok, bk, bok)
	})
}

// IsSorted reports whether items satisfy the ordering Search relies on.
func (s *Spec[T, K]) IsSorted(items []T) bool {
	return slices.IsSortedFunc(items, func(a, b T) int {
		ak, aok := s.Key(&a)
		bk, bok := s.Key(&b)
		return CompareKeys(ak, aok, bk, bok)
	})
}

// Search returns the position of key in the sorted items and whether it was found.
// When not found, the position is where the key would be inserted.
// An absent key is never found.
func (s *Spec[T, K]) Search(items []T, key K, ok bool) (int, bool) {
	idx, found := slices.BinarySearchFunc(items, key, func(item T, target K) int {
		ik, iok := s.Key(&item)
		return CompareKeys(ik, iok, target, ok)
	})
	return idx, found && ok
}

// Reconcile merges candidate into the sorted target, keeping it sorted.
func (s *Spec[T, K]) Reconcile(target *[]T, candidate T) Outcome {
	key, ok := s.Key(&candidate)
	idx, found := s.Search(*target, key, ok)
	if found {
		if s.OnFound != nil {
			s.OnFound(&(*target)[idx], candidate)
		}
		return OutcomeFound
	}

	record := candidate
	if s.OnMissing != nil {
		record = s.OnMissing(candidate)
	}
	*target = slices.Insert(*target, idx, record)
	return OutcomeInserted
}

// ReconcileAll reconciles every candidate in order and summarizes the outcomes.
func (s *Spec[T, K]) ReconcileAll(target *[]T, candidates []T) Summary {
	var summary Summary
	for _, c := range candidates {
		summary.Add(s.Reconcile(target, c))
	}
	return summary
}

// Deref adapts an optional string field to a Spec key.
func Deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}
