package query_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayfront/cache"
	"stayfront/entity"
	"stayfront/gateway"
	"stayfront/query"
)

// directPublisher applies invalidations synchronously to the local runtime,
// standing in for the event bus.
type directPublisher struct {
	rt *query.Runtime
}

func (p *directPublisher) PublishInvalidation(ctx context.Context, tags []cache.Tag) error {
	return p.rt.ApplyInvalidation(ctx, tags)
}

func newRuntime() *query.Runtime {
	pub := &directPublisher{}
	rt := query.NewRuntime(cache.NewStore(), pub)
	pub.rt = rt
	return rt
}

func TestMutationInvalidatesMountedQueries(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime()
	api := &gateway.BookingsMock{}
	bookings := query.NewBookings(api)

	list, err := query.Subscribe(ctx, rt, bookings.List(gateway.BookingListParams{}))
	require.NoError(t, err)
	defer list.Close()
	require.Equal(t, 1, api.ListCalls)

	created, err := query.Mutate(ctx, rt, bookings.Create(entity.NewBooking{
		RoomID:       5,
		UserID:       7,
		CheckInDate:  date("2025-08-01"),
		CheckOutDate: date("2025-08-03"),
		TotalAmount:  240,
	}))
	require.NoError(t, err)
	assert.Equal(t, entity.BookingPending, created.BookingStatus)

	// The collection tag was invalidated, so the mounted list refetched
	// and now includes the new booking.
	assert.Equal(t, 2, api.ListCalls)
	page, err := list.Result()
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, created.ID, page.Data[0].ID)
}

func TestFailedMutationDoesNotInvalidate(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime()
	api := &gateway.BookingsMock{}
	bookings := query.NewBookings(api)

	list, err := query.Subscribe(ctx, rt, bookings.List(gateway.BookingListParams{}))
	require.NoError(t, err)
	defer list.Close()

	api.FailWith = errors.New("room already booked")
	_, err = query.Mutate(ctx, rt, bookings.Create(entity.NewBooking{RoomID: 5, UserID: 7}))
	require.Error(t, err)
	api.FailWith = nil

	// No invalidation was published, so the mounted list never refetched.
	assert.Equal(t, 1, api.ListCalls)
	page, err := list.Result()
	require.NoError(t, err)
	assert.Empty(t, page.Data)
}

func TestPagesAreCachedIndependently(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime()
	api := &gateway.BookingsMock{
		Bookings: map[int64]entity.Booking{
			1: {ID: 1, BookingStatus: entity.BookingPending},
			2: {ID: 2, BookingStatus: entity.BookingPending},
			3: {ID: 3, BookingStatus: entity.BookingPending},
		},
		NextID: 3,
	}
	bookings := query.NewBookings(api)

	page1Query := bookings.List(gateway.BookingListParams{Page: 1, Limit: 2})
	page2Query := bookings.List(gateway.BookingListParams{Page: 2, Limit: 2})
	assert.NotEqual(t, page1Query.Key, page2Query.Key)

	page1, err := query.Subscribe(ctx, rt, page1Query)
	require.NoError(t, err)
	defer page1.Close()

	page2, err := query.Subscribe(ctx, rt, page2Query)
	require.NoError(t, err)
	defer page2.Close()

	first, err := page1.Result()
	require.NoError(t, err)
	second, err := page2.Result()
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, pageIDs(first))
	assert.Equal(t, []int64{3}, pageIDs(second))
}

func TestUserScopedInvalidation(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime()
	api := &gateway.BookingsMock{}
	bookings := query.NewBookings(api)

	userList, err := query.Subscribe(ctx, rt, bookings.ListByUser(7, gateway.BookingListParams{}))
	require.NoError(t, err)
	defer userList.Close()
	require.Equal(t, 1, api.ListByUserCalls)

	// A booking for another user does not touch user 7's scoped list.
	_, err = query.Mutate(ctx, rt, bookings.Create(entity.NewBooking{RoomID: 1, UserID: 8}))
	require.NoError(t, err)
	assert.Equal(t, 1, api.ListByUserCalls)

	// A booking for user 7 does, even though the scoped list does not
	// provide the collection tag.
	_, err = query.Mutate(ctx, rt, bookings.Create(entity.NewBooking{RoomID: 2, UserID: 7}))
	require.NoError(t, err)
	assert.Equal(t, 2, api.ListByUserCalls)
}

func TestCancelBookingRefreshesDetailAndFilteredList(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime()
	api := &gateway.BookingsMock{
		Bookings: map[int64]entity.Booking{
			42: {ID: 42, UserID: 7, BookingStatus: entity.BookingConfirmed},
		},
		NextID: 42,
	}
	bookings := query.NewBookings(api)

	detail, err := query.Subscribe(ctx, rt, bookings.Get(42))
	require.NoError(t, err)
	defer detail.Close()

	confirmed, err := query.Subscribe(ctx, rt, bookings.List(gateway.BookingListParams{Status: entity.BookingConfirmed}))
	require.NoError(t, err)
	defer confirmed.Close()

	before, err := confirmed.Result()
	require.NoError(t, err)
	require.Equal(t, []int64{42}, pageIDs(before))

	cancelled, err := query.Mutate(ctx, rt, bookings.Cancel(42, 7))
	require.NoError(t, err)
	assert.Equal(t, entity.BookingCancelled, cancelled.BookingStatus)

	got, err := detail.Result()
	require.NoError(t, err)
	assert.Equal(t, entity.BookingCancelled, got.BookingStatus)

	after, err := confirmed.Result()
	require.NoError(t, err)
	assert.Empty(t, after.Data)
}

func TestInvalidationDropsUnmountedEntries(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime()
	api := &gateway.BookingsMock{
		Bookings: map[int64]entity.Booking{9: {ID: 9, UserID: 3}},
		NextID:   9,
	}
	bookings := query.NewBookings(api)

	detail, err := query.Subscribe(ctx, rt, bookings.Get(9))
	require.NoError(t, err)
	key := bookings.Get(9).Key
	detail.Close()

	// The entry survives unmounting...
	_, ok := rt.Store().Get(key)
	require.True(t, ok)

	// ...until an invalidation makes it stale with no subscriber left.
	_, err = query.Mutate(ctx, rt, bookings.Delete(9, 3))
	require.NoError(t, err)

	_, ok = rt.Store().Get(key)
	assert.False(t, ok)
	assert.Equal(t, 1, api.GetCalls)
}

func TestInFlightResponseDiscardedAfterUnmount(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime()

	release := make(chan struct{})
	fetches := 0
	q := query.Query[int]{
		Key: "slow.query",
		Fetch: func(ctx context.Context) (int, []cache.Tag, error) {
			fetches++
			if fetches > 1 {
				<-release
			}
			return fetches, []cache.Tag{cache.ItemTag(cache.TypeBooking, 1)}, nil
		},
	}

	h, err := query.Subscribe(ctx, rt, q)
	require.NoError(t, err)

	refetched := make(chan error, 1)
	go func() {
		refetched <- h.Refetch(ctx)
	}()
	// Give the refetch a moment to reach the blocking fetch, then unmount.
	time.Sleep(20 * time.Millisecond)
	h.Close()
	close(release)
	require.NoError(t, <-refetched)

	// The late response was discarded, not stored.
	entry, ok := rt.Store().Get("slow.query")
	require.True(t, ok)
	assert.Equal(t, 1, entry.Data)
}

func TestConcurrentFirstSubscribesFetchOnce(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime()

	var fetches int64
	q := query.Query[int]{
		Key: "contended.query",
		Fetch: func(ctx context.Context) (int, []cache.Tag, error) {
			atomic.AddInt64(&fetches, 1)
			time.Sleep(10 * time.Millisecond)
			return 42, []cache.Tag{cache.ItemTag(cache.TypeBooking, 42)}, nil
		},
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := query.Subscribe(ctx, rt, q)
			assert.NoError(t, err)
			if h != nil {
				result, err := h.Result()
				assert.NoError(t, err)
				assert.Equal(t, 42, result)
				h.Close()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&fetches))
}

func TestSubscribeServesCacheHitWithoutFetching(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime()
	api := &gateway.HotelsMock{
		Hotels: map[int64]entity.Hotel{1: {ID: 1, Name: "Seaside"}},
	}
	hotels := query.NewHotels(api)

	first, err := query.Subscribe(ctx, rt, hotels.List())
	require.NoError(t, err)
	defer first.Close()

	second, err := query.Subscribe(ctx, rt, hotels.List())
	require.NoError(t, err)
	defer second.Close()

	assert.Equal(t, 1, api.ListCalls)
}

func pageIDs(page entity.Paginated[entity.Booking]) []int64 {
	ids := make([]int64, 0, len(page.Data))
	for _, b := range page.Data {
		ids = append(ids, b.ID)
	}
	return ids
}

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}
