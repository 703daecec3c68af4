package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"stayfront/entity"
)

// BookingListParams narrows a paginated booking list. Zero values mean "no
// constraint" for that dimension.
type BookingListParams struct {
	Page   int
	Limit  int
	Status entity.BookingStatus
}

func (p BookingListParams) values() url.Values {
	values := url.Values{}
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Status != "" {
		values.Set("status", string(p.Status))
	}
	return values
}

// BookingsClient talks to the booking endpoints. List endpoints here return
// the paginated envelope, unlike the bare-array entity families.
type BookingsClient struct {
	client *Client
}

func NewBookingsClient(client *Client) BookingsClient {
	return BookingsClient{client: client}
}

func (c BookingsClient) List(ctx context.Context, params BookingListParams) (entity.Paginated[entity.Booking], error) {
	var page entity.Paginated[entity.Booking]
	err := c.client.do(ctx, http.MethodGet, "/bookings", "/bookings", params.values(), nil, &page)
	if err != nil {
		return entity.Paginated[entity.Booking]{}, fmt.Errorf("could not list bookings: %w", err)
	}
	return page, nil
}

func (c BookingsClient) ListByUser(ctx context.Context, userID int64, params BookingListParams) (entity.Paginated[entity.Booking], error) {
	var page entity.Paginated[entity.Booking]
	path := fmt.Sprintf("/bookings/user/%d", userID)
	err := c.client.do(ctx, http.MethodGet, "/bookings/user/{userId}", path, params.values(), nil, &page)
	if err != nil {
		return entity.Paginated[entity.Booking]{}, fmt.Errorf("could not list bookings for user %d: %w", userID, err)
	}
	return page, nil
}

func (c BookingsClient) Get(ctx context.Context, id int64) (entity.Booking, error) {
	var booking entity.Booking
	path := fmt.Sprintf("/booking/%d", id)
	err := c.client.do(ctx, http.MethodGet, "/booking/{id}", path, nil, nil, &booking)
	if err != nil {
		return entity.Booking{}, fmt.Errorf("could not get booking %d: %w", id, err)
	}
	return booking, nil
}

func (c BookingsClient) Create(ctx context.Context, booking entity.NewBooking) (entity.Booking, error) {
	var created entity.Booking
	err := c.client.do(ctx, http.MethodPost, "/booking", "/booking", nil, booking, &created)
	if err != nil {
		return entity.Booking{}, fmt.Errorf("could not create booking: %w", err)
	}
	return created, nil
}

func (c BookingsClient) Update(ctx context.Context, id int64, update entity.BookingUpdate) (entity.Booking, error) {
	var updated entity.Booking
	path := fmt.Sprintf("/booking/%d", id)
	err := c.client.do(ctx, http.MethodPut, "/booking/{id}", path, nil, update, &updated)
	if err != nil {
		return entity.Booking{}, fmt.Errorf("could not update booking %d: %w", id, err)
	}
	return updated, nil
}

func (c BookingsClient) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/booking/%d", id)
	err := c.client.do(ctx, http.MethodDelete, "/booking/{id}", path, nil, nil, nil)
	if err != nil {
		return fmt.Errorf("could not delete booking %d: %w", id, err)
	}
	return nil
}
