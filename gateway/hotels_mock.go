package gateway

import (
	"context"
	"sort"
	"sync"

	"stayfront/entity"
)

type HotelsMock struct {
	mock sync.Mutex

	Hotels   map[int64]entity.Hotel
	NextID   int64
	FailWith error

	ListCalls int
}

func (m *HotelsMock) List(ctx context.Context) ([]entity.Hotel, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.ListCalls++

	hotels := make([]entity.Hotel, 0, len(m.Hotels))
	for _, hotel := range m.Hotels {
		hotels = append(hotels, hotel)
	}
	sort.Slice(hotels, func(i, j int) bool { return hotels[i].ID < hotels[j].ID })
	return hotels, nil
}

func (m *HotelsMock) Get(ctx context.Context, id int64) (entity.Hotel, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return entity.Hotel{}, m.FailWith
	}

	hotel, ok := m.Hotels[id]
	if !ok {
		return entity.Hotel{}, entity.ErrNotFound
	}
	return hotel, nil
}

func (m *HotelsMock) Create(ctx context.Context, hotel entity.Hotel) (entity.Hotel, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return entity.Hotel{}, m.FailWith
	}
	if m.Hotels == nil {
		m.Hotels = make(map[int64]entity.Hotel)
	}

	m.NextID++
	hotel.ID = m.NextID
	m.Hotels[hotel.ID] = hotel
	return hotel, nil
}

func (m *HotelsMock) Update(ctx context.Context, id int64, hotel entity.Hotel) (entity.Hotel, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return entity.Hotel{}, m.FailWith
	}
	if _, ok := m.Hotels[id]; !ok {
		return entity.Hotel{}, entity.ErrNotFound
	}

	hotel.ID = id
	m.Hotels[id] = hotel
	return hotel, nil
}

func (m *HotelsMock) Delete(ctx context.Context, id int64) error {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	if _, ok := m.Hotels[id]; !ok {
		return entity.ErrNotFound
	}
	delete(m.Hotels, id)
	return nil
}

func (m *HotelsMock) UpdateAddress(ctx context.Context, id int64, address entity.Address) (entity.Hotel, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	hotel, ok := m.Hotels[id]
	if !ok {
		return entity.Hotel{}, entity.ErrNotFound
	}
	hotel.Address = address
	m.Hotels[id] = hotel
	return hotel, nil
}

func (m *HotelsMock) UpdateAmenities(ctx context.Context, id int64, amenities []string) (entity.Hotel, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	hotel, ok := m.Hotels[id]
	if !ok {
		return entity.Hotel{}, entity.ErrNotFound
	}
	hotel.Amenities = amenities
	m.Hotels[id] = hotel
	return hotel, nil
}

func (m *HotelsMock) UpdateDetails(ctx context.Context, id int64, details entity.HotelDetails) (entity.Hotel, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	hotel, ok := m.Hotels[id]
	if !ok {
		return entity.Hotel{}, entity.ErrNotFound
	}
	hotel.Details = details
	m.Hotels[id] = hotel
	return hotel, nil
}
