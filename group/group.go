// Package group finds structural containers for block and phrase indexes
// when document does not name them explicitly.
package group

import (
	"maps"
	"slices"
)

// Carrier is a matched word node tagged with group index.
type Carrier[N comparable] struct {
	Node  N
	Index int
}

// ParentFunc returns parent of the node, false when node has no parent.
type ParentFunc[N comparable] func(N) (N, bool)

// Resolve returns the narrowest container for every group index. Starting
// from parent of the first carrier of the index it walks up to and including
// root, comparing number of carriers under the candidate with number of
// carriers of the index. First candidate where they are equal is the
// container, once candidate holds more carriers than expected the index is
// left without container. Only carriers given are counted, so expected
// counts are scoped to the subtree the carriers come from.
func Resolve[N comparable](carriers []Carrier[N], parent ParentFunc[N], root N) map[int]N {
	var (
		expected = make(map[int]int)
		first    = make(map[int]N)
		under    = make(map[N]int)
	)
	for _, c := range carriers {
		if _, ok := first[c.Index]; !ok {
			first[c.Index] = c.Node
		}
		expected[c.Index]++
		for n, ok := parent(c.Node); ok; n, ok = parent(n) {
			under[n]++
			if n == root {
				break
			}
		}
	}

	result := make(map[int]N)
	for _, index := range slices.Sorted(maps.Keys(first)) {
		if container, ok := find(first[index], expected[index], under, parent, root); ok {
			result[index] = container
		}
	}
	return result
}

func find[N comparable](start N, expected int, under map[N]int, parent ParentFunc[N], root N) (N, bool) {
	var zero N
	for current := start; current != root; {
		next, ok := parent(current)
		if !ok {
			break
		}
		current = next
		switch count := under[current]; {
		case count == expected:
			return current, true
		case count > expected:
			return zero, false
		}
	}
	return zero, false
}
