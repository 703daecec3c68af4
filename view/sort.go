package view

import (
	"sort"

	"stayfront/entity"
)

// Toggle is a column sorter that flips between ascending and descending on
// each invocation, the way clicking a column header does. The sort is stable:
// rows with equal keys keep their relative order.
type Toggle[T any] struct {
	less func(a, b T) bool
	asc  bool
}

func NewToggle[T any](less func(a, b T) bool) *Toggle[T] {
	return &Toggle[T]{less: less}
}

// Sort returns a sorted copy of items and flips the direction for the next
// call. The first call sorts ascending.
func (t *Toggle[T]) Sort(items []T) []T {
	t.asc = !t.asc

	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if t.asc {
			return t.less(sorted[i], sorted[j])
		}
		return t.less(sorted[j], sorted[i])
	})
	return sorted
}

// Ascending reports the direction the next Sort call will use.
func (t *Toggle[T]) Ascending() bool {
	return !t.asc
}

// ByAmount sorts payments on their amount.
func ByAmount() *Toggle[entity.Payment] {
	return NewToggle(func(a, b entity.Payment) bool {
		return a.Amount < b.Amount
	})
}
