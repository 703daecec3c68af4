package view

import "sync"

// Accumulator merges server pages into one incrementally grown list for
// "load more" flows. Items arriving again on a later page are skipped; kept
// items stay in server arrival order and are never re-sorted.
type Accumulator[T any] struct {
	id func(T) int64

	mu     sync.Mutex
	items  []T
	seen   map[int64]struct{}
	page   int
	status string
}

func NewAccumulator[T any](id func(T) int64) *Accumulator[T] {
	return &Accumulator[T]{
		id:   id,
		seen: make(map[int64]struct{}),
	}
}

// SetStatus switches the active status tab. Changing tabs clears the
// accumulated items and rewinds the page counter, so result sets from
// different filter contexts never mix.
func (a *Accumulator[T]) SetStatus(status string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.status == status {
		return
	}
	a.status = status
	a.items = nil
	a.seen = make(map[int64]struct{})
	a.page = 0
}

// NextPage is the page number to request next.
func (a *Accumulator[T]) NextPage() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.page + 1
}

// Append merges one received page, dropping items whose id is already
// present, and advances the page counter.
func (a *Accumulator[T]) Append(page []T) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, item := range page {
		id := a.id(item)
		if _, ok := a.seen[id]; ok {
			continue
		}
		a.seen[id] = struct{}{}
		a.items = append(a.items, item)
	}
	a.page++
}

// Items returns a copy of the accumulated list.
func (a *Accumulator[T]) Items() []T {
	a.mu.Lock()
	defer a.mu.Unlock()

	items := make([]T, len(a.items))
	copy(items, a.items)
	return items
}

// Status returns the active status tab.
func (a *Accumulator[T]) Status() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.status
}
