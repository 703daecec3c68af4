package query

import (
	"context"

	"stayfront/cache"
	"stayfront/entity"
)

type TicketsAPI interface {
	List(ctx context.Context) ([]entity.Ticket, error)
	ListByUser(ctx context.Context, userID int64) ([]entity.Ticket, error)
	Get(ctx context.Context, id int64) (entity.Ticket, error)
	Create(ctx context.Context, ticket entity.NewTicket) (entity.Ticket, error)
	Update(ctx context.Context, id int64, update entity.TicketUpdate) (entity.Ticket, error)
	Delete(ctx context.Context, id int64) error
}

type Tickets struct {
	api TicketsAPI
}

func NewTickets(api TicketsAPI) Tickets {
	return Tickets{api: api}
}

func (t Tickets) List() Query[[]entity.Ticket] {
	return Query[[]entity.Ticket]{
		Key: Key("tickets.list", nil),
		Fetch: func(ctx context.Context) ([]entity.Ticket, []cache.Tag, error) {
			tickets, err := t.api.List(ctx)
			if err != nil {
				return nil, nil, err
			}
			tags := []cache.Tag{cache.ListTag(cache.TypeTicket)}
			for _, ticket := range tickets {
				tags = append(tags, cache.ItemTag(cache.TypeTicket, ticket.ID))
			}
			return tickets, tags, nil
		},
	}
}

func (t Tickets) ListByUser(userID int64) Query[[]entity.Ticket] {
	type keyParams struct {
		UserID int64
	}
	return Query[[]entity.Ticket]{
		Key: Key("tickets.listByUser", keyParams{UserID: userID}),
		Fetch: func(ctx context.Context) ([]entity.Ticket, []cache.Tag, error) {
			tickets, err := t.api.ListByUser(ctx, userID)
			if err != nil {
				return nil, nil, err
			}
			tags := []cache.Tag{cache.UserTag(cache.TypeTicket, userID)}
			for _, ticket := range tickets {
				tags = append(tags, cache.ItemTag(cache.TypeTicket, ticket.ID))
			}
			return tickets, tags, nil
		},
	}
}

func (t Tickets) Get(id int64) Query[entity.Ticket] {
	type keyParams struct {
		ID int64
	}
	return Query[entity.Ticket]{
		Key: Key("tickets.get", keyParams{ID: id}),
		Fetch: func(ctx context.Context) (entity.Ticket, []cache.Tag, error) {
			ticket, err := t.api.Get(ctx, id)
			if err != nil {
				return entity.Ticket{}, nil, err
			}
			return ticket, []cache.Tag{cache.ItemTag(cache.TypeTicket, id)}, nil
		},
	}
}

func (t Tickets) Create(ticket entity.NewTicket) Mutation[entity.Ticket] {
	return Mutation[entity.Ticket]{
		Name: "tickets.create",
		Invalidates: []cache.Tag{
			cache.ListTag(cache.TypeTicket),
			cache.UserTag(cache.TypeTicket, ticket.UserID),
		},
		Exec: func(ctx context.Context) (entity.Ticket, error) {
			return t.api.Create(ctx, ticket)
		},
	}
}

func (t Tickets) Update(id, userID int64, update entity.TicketUpdate) Mutation[entity.Ticket] {
	return Mutation[entity.Ticket]{
		Name:        "tickets.update",
		Invalidates: ticketItemTags(id, userID),
		Exec: func(ctx context.Context) (entity.Ticket, error) {
			return t.api.Update(ctx, id, update)
		},
	}
}

// Resolve replies to a ticket and marks it Resolved in one update.
func (t Tickets) Resolve(id, userID int64, reply string) Mutation[entity.Ticket] {
	resolved := entity.TicketResolved
	mutation := t.Update(id, userID, entity.TicketUpdate{Reply: &reply, Status: &resolved})
	mutation.Name = "tickets.resolve"
	return mutation
}

func (t Tickets) Delete(id, userID int64) Mutation[struct{}] {
	return Mutation[struct{}]{
		Name:        "tickets.delete",
		Invalidates: ticketItemTags(id, userID),
		Exec: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, t.api.Delete(ctx, id)
		},
	}
}

func ticketItemTags(id, userID int64) []cache.Tag {
	tags := []cache.Tag{
		cache.ItemTag(cache.TypeTicket, id),
		cache.ListTag(cache.TypeTicket),
	}
	if userID > 0 {
		tags = append(tags, cache.UserTag(cache.TypeTicket, userID))
	}
	return tags
}
