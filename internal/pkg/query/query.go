// Package query holds the small predicate helpers used to filter and search
// loaded documents in memory.
package query

import "strings"

// Predicate reports whether an item matches.
type Predicate[T any] func(T) bool

// Where returns the items matching every predicate, preserving order.
func Where[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
next:
	for _, item := range items {
		for _, pred := range preds {
			if pred != nil && !pred(item) {
				continue next
			}
		}
		out = append(out, item)
	}
	return out
}

// ContainsFold reports whether needle occurs in any of haystack, ignoring case.
func ContainsFold(needle string, haystack ...string) bool {
	needle = strings.ToLower(needle)
	for _, s := range haystack {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// InSet reports whether value is one of set. An empty set matches everything.
func InSet(set []string, value string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

// AnyInSet reports whether at least one of values is in set. An empty set
// matches everything.
func AnyInSet(set []string, values ...string) bool {
	if len(set) == 0 {
		return true
	}
	for _, v := range values {
		if InSet(set, v) {
			return true
		}
	}
	return false
}

// CompareFold orders strings case-insensitively, falling back to a byte
// comparison so the order is total.
func CompareFold(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
