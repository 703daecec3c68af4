package cache

import (
	"sync"
	"time"
)

// Entry is one cached query result together with the tags it provides.
type Entry struct {
	Key       string
	Data      any
	Tags      []Tag
	FetchedAt time.Time
}

// Store maps query cache keys to their last-fetched results and keeps an
// index from tag to the keys providing it. It is the single shared cache of
// the process; components read through it and never mutate entries in place.
// Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
	byTag   map[Tag]map[string]struct{}
}

func NewStore() *Store {
	return &Store{
		entries: make(map[string]Entry),
		byTag:   make(map[Tag]map[string]struct{}),
	}
}

// Put stores a result under key, replacing any previous entry and reindexing
// its provided tags.
func (s *Store) Put(key string, data any, tags []Tag) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.entries[key]; ok {
		s.unindex(key, old.Tags)
	}

	s.entries[key] = Entry{
		Key:       key,
		Data:      data,
		Tags:      tags,
		FetchedAt: time.Now(),
	}
	for _, t := range tags {
		keys, ok := s.byTag[t]
		if !ok {
			keys = make(map[string]struct{})
			s.byTag[t] = keys
		}
		keys[key] = struct{}{}
	}
}

func (s *Store) Get(key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	return e, ok
}

// Drop removes the entry for key, if any.
func (s *Store) Drop(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return
	}
	s.unindex(key, e.Tags)
	delete(s.entries, key)
}

// KeysAffectedBy returns the keys of every entry providing at least one of
// the given tags. Each key appears once.
func (s *Store) KeysAffectedBy(tags []Tag) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var keys []string
	for _, t := range tags {
		for key := range s.byTag[t] {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}
	return keys
}

// Len reports the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

func (s *Store) unindex(key string, tags []Tag) {
	for _, t := range tags {
		if keys, ok := s.byTag[t]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(s.byTag, t)
			}
		}
	}
}
