package query

import (
	"context"

	"stayfront/cache"
	"stayfront/entity"
)

type HotelsAPI interface {
	List(ctx context.Context) ([]entity.Hotel, error)
	Get(ctx context.Context, id int64) (entity.Hotel, error)
	Create(ctx context.Context, hotel entity.Hotel) (entity.Hotel, error)
	Update(ctx context.Context, id int64, hotel entity.Hotel) (entity.Hotel, error)
	Delete(ctx context.Context, id int64) error
	UpdateAddress(ctx context.Context, id int64, address entity.Address) (entity.Hotel, error)
	UpdateAmenities(ctx context.Context, id int64, amenities []string) (entity.Hotel, error)
	UpdateDetails(ctx context.Context, id int64, details entity.HotelDetails) (entity.Hotel, error)
}

type Hotels struct {
	api HotelsAPI
}

func NewHotels(api HotelsAPI) Hotels {
	return Hotels{api: api}
}

func (h Hotels) List() Query[[]entity.Hotel] {
	return Query[[]entity.Hotel]{
		Key: Key("hotels.list", nil),
		Fetch: func(ctx context.Context) ([]entity.Hotel, []cache.Tag, error) {
			hotels, err := h.api.List(ctx)
			if err != nil {
				return nil, nil, err
			}
			tags := []cache.Tag{cache.ListTag(cache.TypeHotel)}
			for _, hotel := range hotels {
				tags = append(tags, cache.ItemTag(cache.TypeHotel, hotel.ID))
			}
			return hotels, tags, nil
		},
	}
}

func (h Hotels) Get(id int64) Query[entity.Hotel] {
	type keyParams struct {
		ID int64
	}
	return Query[entity.Hotel]{
		Key: Key("hotels.get", keyParams{ID: id}),
		Fetch: func(ctx context.Context) (entity.Hotel, []cache.Tag, error) {
			hotel, err := h.api.Get(ctx, id)
			if err != nil {
				return entity.Hotel{}, nil, err
			}
			return hotel, []cache.Tag{cache.ItemTag(cache.TypeHotel, id)}, nil
		},
	}
}

func (h Hotels) Create(hotel entity.Hotel) Mutation[entity.Hotel] {
	return Mutation[entity.Hotel]{
		Name:        "hotels.create",
		Invalidates: []cache.Tag{cache.ListTag(cache.TypeHotel)},
		Exec: func(ctx context.Context) (entity.Hotel, error) {
			return h.api.Create(ctx, hotel)
		},
	}
}

func (h Hotels) Update(id int64, hotel entity.Hotel) Mutation[entity.Hotel] {
	return Mutation[entity.Hotel]{
		Name:        "hotels.update",
		Invalidates: hotelItemTags(id),
		Exec: func(ctx context.Context) (entity.Hotel, error) {
			return h.api.Update(ctx, id, hotel)
		},
	}
}

func (h Hotels) Delete(id int64) Mutation[struct{}] {
	return Mutation[struct{}]{
		Name:        "hotels.delete",
		Invalidates: hotelItemTags(id),
		Exec: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, h.api.Delete(ctx, id)
		},
	}
}

func (h Hotels) UpdateAddress(id int64, address entity.Address) Mutation[entity.Hotel] {
	return Mutation[entity.Hotel]{
		Name:        "hotels.updateAddress",
		Invalidates: hotelItemTags(id),
		Exec: func(ctx context.Context) (entity.Hotel, error) {
			return h.api.UpdateAddress(ctx, id, address)
		},
	}
}

func (h Hotels) UpdateAmenities(id int64, amenities []string) Mutation[entity.Hotel] {
	return Mutation[entity.Hotel]{
		Name:        "hotels.updateAmenities",
		Invalidates: hotelItemTags(id),
		Exec: func(ctx context.Context) (entity.Hotel, error) {
			return h.api.UpdateAmenities(ctx, id, amenities)
		},
	}
}

func (h Hotels) UpdateDetails(id int64, details entity.HotelDetails) Mutation[entity.Hotel] {
	return Mutation[entity.Hotel]{
		Name:        "hotels.updateDetails",
		Invalidates: hotelItemTags(id),
		Exec: func(ctx context.Context) (entity.Hotel, error) {
			return h.api.UpdateDetails(ctx, id, details)
		},
	}
}

func hotelItemTags(id int64) []cache.Tag {
	return []cache.Tag{
		cache.ItemTag(cache.TypeHotel, id),
		cache.ListTag(cache.TypeHotel),
	}
}
