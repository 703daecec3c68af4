package query

import (
	"context"

	"stayfront/cache"
	"stayfront/entity"
	"stayfront/gateway"
)

// BookingsAPI is the slice of the remote API the booking registry needs.
type BookingsAPI interface {
	List(ctx context.Context, params gateway.BookingListParams) (entity.Paginated[entity.Booking], error)
	ListByUser(ctx context.Context, userID int64, params gateway.BookingListParams) (entity.Paginated[entity.Booking], error)
	Get(ctx context.Context, id int64) (entity.Booking, error)
	Create(ctx context.Context, booking entity.NewBooking) (entity.Booking, error)
	Update(ctx context.Context, id int64, update entity.BookingUpdate) (entity.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// Bookings declares the booking queries and mutations with their cache tags.
type Bookings struct {
	api BookingsAPI
}

func NewBookings(api BookingsAPI) Bookings {
	return Bookings{api: api}
}

// List provides the collection tag plus one tag per returned booking.
func (b Bookings) List(params gateway.BookingListParams) Query[entity.Paginated[entity.Booking]] {
	return Query[entity.Paginated[entity.Booking]]{
		Key: Key("bookings.list", params),
		Fetch: func(ctx context.Context) (entity.Paginated[entity.Booking], []cache.Tag, error) {
			page, err := b.api.List(ctx, params)
			if err != nil {
				return entity.Paginated[entity.Booking]{}, nil, err
			}
			tags := []cache.Tag{cache.ListTag(cache.TypeBooking)}
			for _, booking := range page.Data {
				tags = append(tags, cache.ItemTag(cache.TypeBooking, booking.ID))
			}
			return page, tags, nil
		},
	}
}

// ListByUser provides the user-scoped tag instead of the collection tag, so
// creates and deletes for this user reach it even though the collection tag
// belongs to a different query.
func (b Bookings) ListByUser(userID int64, params gateway.BookingListParams) Query[entity.Paginated[entity.Booking]] {
	type keyParams struct {
		UserID int64
		gateway.BookingListParams
	}
	return Query[entity.Paginated[entity.Booking]]{
		Key: Key("bookings.listByUser", keyParams{UserID: userID, BookingListParams: params}),
		Fetch: func(ctx context.Context) (entity.Paginated[entity.Booking], []cache.Tag, error) {
			page, err := b.api.ListByUser(ctx, userID, params)
			if err != nil {
				return entity.Paginated[entity.Booking]{}, nil, err
			}
			tags := []cache.Tag{cache.UserTag(cache.TypeBooking, userID)}
			for _, booking := range page.Data {
				tags = append(tags, cache.ItemTag(cache.TypeBooking, booking.ID))
			}
			return page, tags, nil
		},
	}
}

func (b Bookings) Get(id int64) Query[entity.Booking] {
	type keyParams struct {
		ID int64
	}
	return Query[entity.Booking]{
		Key: Key("bookings.get", keyParams{ID: id}),
		Fetch: func(ctx context.Context) (entity.Booking, []cache.Tag, error) {
			booking, err := b.api.Get(ctx, id)
			if err != nil {
				return entity.Booking{}, nil, err
			}
			return booking, []cache.Tag{cache.ItemTag(cache.TypeBooking, id)}, nil
		},
	}
}

// Create invalidates the collection and the owning user's scoped list.
func (b Bookings) Create(booking entity.NewBooking) Mutation[entity.Booking] {
	return Mutation[entity.Booking]{
		Name: "bookings.create",
		Invalidates: []cache.Tag{
			cache.ListTag(cache.TypeBooking),
			cache.UserTag(cache.TypeBooking, booking.UserID),
		},
		Exec: func(ctx context.Context) (entity.Booking, error) {
			return b.api.Create(ctx, booking)
		},
	}
}

func (b Bookings) Update(id, userID int64, update entity.BookingUpdate) Mutation[entity.Booking] {
	return Mutation[entity.Booking]{
		Name:        "bookings.update",
		Invalidates: bookingItemTags(id, userID),
		Exec: func(ctx context.Context) (entity.Booking, error) {
			return b.api.Update(ctx, id, update)
		},
	}
}

// Cancel is a status-only update; the record is kept, deletion is separate.
func (b Bookings) Cancel(id, userID int64) Mutation[entity.Booking] {
	cancelled := entity.BookingCancelled
	mutation := b.Update(id, userID, entity.BookingUpdate{BookingStatus: &cancelled})
	mutation.Name = "bookings.cancel"
	return mutation
}

func (b Bookings) Delete(id, userID int64) Mutation[struct{}] {
	return Mutation[struct{}]{
		Name:        "bookings.delete",
		Invalidates: bookingItemTags(id, userID),
		Exec: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, b.api.Delete(ctx, id)
		},
	}
}

func bookingItemTags(id, userID int64) []cache.Tag {
	tags := []cache.Tag{
		cache.ItemTag(cache.TypeBooking, id),
		cache.ListTag(cache.TypeBooking),
	}
	if userID > 0 {
		tags = append(tags, cache.UserTag(cache.TypeBooking, userID))
	}
	return tags
}
