package gateway

import (
	"context"
	"fmt"
	"net/http"

	"stayfront/entity"
)

type HotelsClient struct {
	client *Client
}

func NewHotelsClient(client *Client) HotelsClient {
	return HotelsClient{client: client}
}

// List returns all hotels. The endpoint responds with a bare array, not the
// paginated envelope.
func (c HotelsClient) List(ctx context.Context) ([]entity.Hotel, error) {
	var hotels []entity.Hotel
	err := c.client.do(ctx, http.MethodGet, "/hotels", "/hotels", nil, nil, &hotels)
	if err != nil {
		return nil, fmt.Errorf("could not list hotels: %w", err)
	}
	return hotels, nil
}

func (c HotelsClient) Get(ctx context.Context, id int64) (entity.Hotel, error) {
	var hotel entity.Hotel
	path := fmt.Sprintf("/hotel/%d", id)
	err := c.client.do(ctx, http.MethodGet, "/hotel/{id}", path, nil, nil, &hotel)
	if err != nil {
		return entity.Hotel{}, fmt.Errorf("could not get hotel %d: %w", id, err)
	}
	return hotel, nil
}

func (c HotelsClient) Create(ctx context.Context, hotel entity.Hotel) (entity.Hotel, error) {
	var created entity.Hotel
	err := c.client.do(ctx, http.MethodPost, "/hotel", "/hotel", nil, hotel, &created)
	if err != nil {
		return entity.Hotel{}, fmt.Errorf("could not create hotel: %w", err)
	}
	return created, nil
}

func (c HotelsClient) Update(ctx context.Context, id int64, hotel entity.Hotel) (entity.Hotel, error) {
	var updated entity.Hotel
	path := fmt.Sprintf("/hotel/%d", id)
	err := c.client.do(ctx, http.MethodPut, "/hotel/{id}", path, nil, hotel, &updated)
	if err != nil {
		return entity.Hotel{}, fmt.Errorf("could not update hotel %d: %w", id, err)
	}
	return updated, nil
}

func (c HotelsClient) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/hotel/%d", id)
	err := c.client.do(ctx, http.MethodDelete, "/hotel/{id}", path, nil, nil, nil)
	if err != nil {
		return fmt.Errorf("could not delete hotel %d: %w", id, err)
	}
	return nil
}

func (c HotelsClient) UpdateAddress(ctx context.Context, id int64, address entity.Address) (entity.Hotel, error) {
	var updated entity.Hotel
	path := fmt.Sprintf("/hotel/%d/address", id)
	err := c.client.do(ctx, http.MethodPut, "/hotel/{id}/address", path, nil, address, &updated)
	if err != nil {
		return entity.Hotel{}, fmt.Errorf("could not update address of hotel %d: %w", id, err)
	}
	return updated, nil
}

func (c HotelsClient) UpdateAmenities(ctx context.Context, id int64, amenities []string) (entity.Hotel, error) {
	var updated entity.Hotel
	path := fmt.Sprintf("/hotel/%d/amenities", id)
	err := c.client.do(ctx, http.MethodPut, "/hotel/{id}/amenities", path, nil, amenities, &updated)
	if err != nil {
		return entity.Hotel{}, fmt.Errorf("could not update amenities of hotel %d: %w", id, err)
	}
	return updated, nil
}

func (c HotelsClient) UpdateDetails(ctx context.Context, id int64, details entity.HotelDetails) (entity.Hotel, error) {
	var updated entity.Hotel
	path := fmt.Sprintf("/hotel/%d/details", id)
	err := c.client.do(ctx, http.MethodPut, "/hotel/{id}/details", path, nil, details, &updated)
	if err != nil {
		return entity.Hotel{}, fmt.Errorf("could not update details of hotel %d: %w", id, err)
	}
	return updated, nil
}
