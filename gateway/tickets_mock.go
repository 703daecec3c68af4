package gateway

import (
	"context"
	"sort"
	"sync"

	"stayfront/entity"
)

type TicketsMock struct {
	mock sync.Mutex

	Tickets  map[int64]entity.Ticket
	NextID   int64
	FailWith error

	ListCalls int
}

func (m *TicketsMock) List(ctx context.Context) ([]entity.Ticket, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.ListCalls++
	return m.sorted(), nil
}

func (m *TicketsMock) ListByUser(ctx context.Context, userID int64) ([]entity.Ticket, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}

	var tickets []entity.Ticket
	for _, ticket := range m.sorted() {
		if ticket.UserID == userID {
			tickets = append(tickets, ticket)
		}
	}
	return tickets, nil
}

func (m *TicketsMock) Get(ctx context.Context, id int64) (entity.Ticket, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return entity.Ticket{}, m.FailWith
	}

	ticket, ok := m.Tickets[id]
	if !ok {
		return entity.Ticket{}, entity.ErrNotFound
	}
	return ticket, nil
}

func (m *TicketsMock) Create(ctx context.Context, ticket entity.NewTicket) (entity.Ticket, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return entity.Ticket{}, m.FailWith
	}
	if m.Tickets == nil {
		m.Tickets = make(map[int64]entity.Ticket)
	}

	m.NextID++
	created := entity.Ticket{
		ID:          m.NextID,
		UserID:      ticket.UserID,
		Subject:     ticket.Subject,
		Description: ticket.Description,
		Status:      entity.TicketOpen,
	}
	m.Tickets[created.ID] = created
	return created, nil
}

func (m *TicketsMock) Update(ctx context.Context, id int64, update entity.TicketUpdate) (entity.Ticket, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return entity.Ticket{}, m.FailWith
	}

	ticket, ok := m.Tickets[id]
	if !ok {
		return entity.Ticket{}, entity.ErrNotFound
	}
	if update.Reply != nil {
		ticket.Reply = *update.Reply
	}
	if update.Status != nil {
		ticket.Status = *update.Status
	}
	m.Tickets[id] = ticket
	return ticket, nil
}

func (m *TicketsMock) Delete(ctx context.Context, id int64) error {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	if _, ok := m.Tickets[id]; !ok {
		return entity.ErrNotFound
	}
	delete(m.Tickets, id)
	return nil
}

func (m *TicketsMock) sorted() []entity.Ticket {
	tickets := make([]entity.Ticket, 0, len(m.Tickets))
	for _, ticket := range m.Tickets {
		tickets = append(tickets, ticket)
	}
	sort.Slice(tickets, func(i, j int) bool { return tickets[i].ID < tickets[j].ID })
	return tickets
}
