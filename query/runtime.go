package query

import (
	"context"
	"fmt"
	"sync"

	"github.com/lithammer/shortuuid/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"stayfront/cache"
	"stayfront/metrics"
)

// Query is a declared read operation: a parameter-derived cache key and a
// fetch function returning the result together with the tags it provides.
type Query[T any] struct {
	Key   string
	Fetch func(ctx context.Context) (T, []cache.Tag, error)
}

// Mutation is a declared write operation. Invalidates lists the tags whose
// dependent queries become stale once the mutation succeeds.
type Mutation[T any] struct {
	Name        string
	Invalidates []cache.Tag
	Exec        func(ctx context.Context) (T, error)
}

// InvalidationPublisher fans invalidated tags out to every runtime holding
// dependent queries (the local one included).
type InvalidationPublisher interface {
	PublishInvalidation(ctx context.Context, tags []cache.Tag) error
}

// Runtime executes queries against the shared store and drives the
// invalidate-then-refetch protocol. Components never touch cached entries
// directly; every write goes through Mutate.
type Runtime struct {
	store *cache.Store
	pub   InvalidationPublisher
	log   *logrus.Entry

	mu      sync.Mutex
	mounted map[string]*subscription
}

type subscription struct {
	id    string
	refs  int
	fetch func(ctx context.Context) (any, []cache.Tag, error)
	err   error

	// fetchMu serializes the initial fetch so concurrent first mounts of
	// the same key produce one remote call.
	fetchMu sync.Mutex
}

func NewRuntime(store *cache.Store, pub InvalidationPublisher) *Runtime {
	return &Runtime{
		store:   store,
		pub:     pub,
		log:     logrus.WithField("component", "query-runtime"),
		mounted: make(map[string]*subscription),
	}
}

// Store exposes the underlying cache store, for wiring only.
func (rt *Runtime) Store() *cache.Store {
	return rt.store
}

// Handle is a mounted query. While at least one handle stays open, an
// invalidation of any provided tag re-executes the query transparently.
type Handle[T any] struct {
	rt   *Runtime
	key  string
	sub  *subscription
	once sync.Once
}

// Subscribe mounts q. A cached result is served as is; a miss fetches before
// returning. The returned handle must be closed when the caller no longer
// wants refetches.
func Subscribe[T any](ctx context.Context, rt *Runtime, q Query[T]) (*Handle[T], error) {
	rt.mu.Lock()
	sub, ok := rt.mounted[q.Key]
	if ok {
		sub.refs++
	} else {
		fetch := func(ctx context.Context) (any, []cache.Tag, error) {
			return q.Fetch(ctx)
		}
		sub = &subscription{id: shortuuid.New(), refs: 1, fetch: fetch}
		rt.mounted[q.Key] = sub
	}
	rt.mu.Unlock()

	h := &Handle[T]{rt: rt, key: q.Key, sub: sub}

	if _, ok := rt.store.Get(q.Key); ok {
		metrics.CacheHits.With(prometheus.Labels{"query": q.Key}).Inc()
		return h, nil
	}

	sub.fetchMu.Lock()
	defer sub.fetchMu.Unlock()

	// A concurrent mount may have fetched while we waited for the lock.
	if _, ok := rt.store.Get(q.Key); ok {
		metrics.CacheHits.With(prometheus.Labels{"query": q.Key}).Inc()
		return h, nil
	}

	metrics.CacheMisses.With(prometheus.Labels{"query": q.Key}).Inc()
	if err := rt.fetchInto(ctx, q.Key, sub); err != nil {
		h.Close()
		return nil, err
	}
	return h, nil
}

// Result returns the latest cached result for the query, or the error kept
// from its last failed fetch.
func (h *Handle[T]) Result() (T, error) {
	var zero T

	h.rt.mu.Lock()
	err := h.sub.err
	h.rt.mu.Unlock()

	entry, ok := h.rt.store.Get(h.key)
	if !ok {
		if err != nil {
			return zero, err
		}
		return zero, fmt.Errorf("query %s: no cached result", h.key)
	}
	result, ok := entry.Data.(T)
	if !ok {
		return zero, fmt.Errorf("query %s: cached result has unexpected type %T", h.key, entry.Data)
	}
	return result, err
}

// Refetch re-executes the query immediately. This is the manual retry path;
// the runtime itself never retries.
func (h *Handle[T]) Refetch(ctx context.Context) error {
	return h.rt.fetchInto(ctx, h.key, h.sub)
}

// Close unmounts the handle. The cached entry survives for future mounts
// until an invalidation drops it.
func (h *Handle[T]) Close() {
	h.once.Do(func() {
		h.rt.mu.Lock()
		defer h.rt.mu.Unlock()

		h.sub.refs--
		if h.sub.refs <= 0 && h.rt.mounted[h.key] == h.sub {
			delete(h.rt.mounted, h.key)
		}
	})
}

// Mutate executes m and, only when it succeeds, publishes the declared tag
// invalidation. A failed mutation leaves every cached query untouched.
func Mutate[T any](ctx context.Context, rt *Runtime, m Mutation[T]) (T, error) {
	result, err := m.Exec(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if len(m.Invalidates) > 0 {
		if err := rt.pub.PublishInvalidation(ctx, m.Invalidates); err != nil {
			return result, fmt.Errorf("mutation %s applied but invalidation publish failed: %w", m.Name, err)
		}
	}
	return result, nil
}

// ApplyInvalidation re-executes every mounted query providing one of the
// tags and drops unmounted stale entries. Refetches run concurrently and a
// failure stays on the query's handle rather than failing the invalidation.
func (rt *Runtime) ApplyInvalidation(ctx context.Context, tags []cache.Tag) error {
	for _, t := range tags {
		metrics.Invalidations.With(prometheus.Labels{"entity_type": t.Type}).Inc()
	}

	keys := rt.store.KeysAffectedBy(tags)

	g, ctx := errgroup.WithContext(ctx)
	for _, key := range keys {
		key := key

		rt.mu.Lock()
		sub, isMounted := rt.mounted[key]
		rt.mu.Unlock()

		if !isMounted {
			rt.store.Drop(key)
			continue
		}

		g.Go(func() error {
			metrics.Refetches.With(prometheus.Labels{"query": key}).Inc()
			if err := rt.fetchInto(ctx, key, sub); err != nil {
				rt.log.WithError(err).
					WithFields(logrus.Fields{"query": key, "subscription": sub.id}).
					Error("Refetch after invalidation failed")
			}
			return nil
		})
	}
	return g.Wait()
}

// fetchInto runs the subscription's fetch and stores the result, unless
// every subscriber went away while the request was in flight, in which case
// the response is discarded.
func (rt *Runtime) fetchInto(ctx context.Context, key string, sub *subscription) error {
	data, tags, err := sub.fetch(ctx)

	rt.mu.Lock()
	stillMounted := rt.mounted[key] == sub && sub.refs > 0
	if stillMounted {
		sub.err = err
	}
	rt.mu.Unlock()

	if err != nil {
		return err
	}
	if !stillMounted {
		return nil
	}

	rt.store.Put(key, data, tags)
	return nil
}
