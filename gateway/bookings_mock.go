package gateway

import (
	"context"
	"sort"
	"sync"

	"stayfront/entity"
)

// BookingsMock is an in-memory stand-in for the booking endpoints. FailWith,
// when set, makes every call fail without touching state.
type BookingsMock struct {
	mock sync.Mutex

	Bookings map[int64]entity.Booking
	NextID   int64
	FailWith error

	ListCalls       int
	ListByUserCalls int
	GetCalls        int
}

func (m *BookingsMock) List(ctx context.Context, params BookingListParams) (entity.Paginated[entity.Booking], error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return entity.Paginated[entity.Booking]{}, m.FailWith
	}
	m.ListCalls++

	var data []entity.Booking
	for _, booking := range m.sorted() {
		if params.Status != "" && booking.BookingStatus != params.Status {
			continue
		}
		data = append(data, booking)
	}
	return paginate(data, params.Page, params.Limit), nil
}

func (m *BookingsMock) ListByUser(ctx context.Context, userID int64, params BookingListParams) (entity.Paginated[entity.Booking], error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return entity.Paginated[entity.Booking]{}, m.FailWith
	}
	m.ListByUserCalls++

	var data []entity.Booking
	for _, booking := range m.sorted() {
		if booking.UserID != userID {
			continue
		}
		if params.Status != "" && booking.BookingStatus != params.Status {
			continue
		}
		data = append(data, booking)
	}
	return paginate(data, params.Page, params.Limit), nil
}

func (m *BookingsMock) Get(ctx context.Context, id int64) (entity.Booking, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return entity.Booking{}, m.FailWith
	}
	m.GetCalls++

	booking, ok := m.Bookings[id]
	if !ok {
		return entity.Booking{}, entity.ErrNotFound
	}
	return booking, nil
}

func (m *BookingsMock) Create(ctx context.Context, booking entity.NewBooking) (entity.Booking, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return entity.Booking{}, m.FailWith
	}
	if m.Bookings == nil {
		m.Bookings = make(map[int64]entity.Booking)
	}

	m.NextID++
	created := entity.Booking{
		ID:            m.NextID,
		RoomID:        booking.RoomID,
		UserID:        booking.UserID,
		CheckInDate:   booking.CheckInDate,
		CheckOutDate:  booking.CheckOutDate,
		BookingStatus: entity.BookingPending,
		TotalAmount:   booking.TotalAmount,
	}
	m.Bookings[created.ID] = created
	return created, nil
}

func (m *BookingsMock) Update(ctx context.Context, id int64, update entity.BookingUpdate) (entity.Booking, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return entity.Booking{}, m.FailWith
	}

	booking, ok := m.Bookings[id]
	if !ok {
		return entity.Booking{}, entity.ErrNotFound
	}
	if update.BookingStatus != nil {
		booking.BookingStatus = *update.BookingStatus
	}
	if update.CheckInDate != nil {
		booking.CheckInDate = *update.CheckInDate
	}
	if update.CheckOutDate != nil {
		booking.CheckOutDate = *update.CheckOutDate
	}
	if update.Notes != nil {
		booking.Notes = *update.Notes
	}
	m.Bookings[id] = booking
	return booking, nil
}

func (m *BookingsMock) Delete(ctx context.Context, id int64) error {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	if _, ok := m.Bookings[id]; !ok {
		return entity.ErrNotFound
	}
	delete(m.Bookings, id)
	return nil
}

func (m *BookingsMock) sorted() []entity.Booking {
	bookings := make([]entity.Booking, 0, len(m.Bookings))
	for _, booking := range m.Bookings {
		bookings = append(bookings, booking)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID < bookings[j].ID })
	return bookings
}

func paginate(data []entity.Booking, page, limit int) entity.Paginated[entity.Booking] {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = len(data)
		if limit == 0 {
			limit = 1
		}
	}

	total := len(data)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return entity.Paginated[entity.Booking]{
		Success: true,
		Data:    data[start:end],
		Pagination: entity.Pagination{
			Total:           total,
			Page:            page,
			Limit:           limit,
			TotalPages:      totalPages,
			HasNextPage:     page < totalPages,
			HasPreviousPage: page > 1,
		},
	}
}
