package gateway

import (
	"context"
	"fmt"
	"net/http"

	"stayfront/entity"
)

type TicketsClient struct {
	client *Client
}

func NewTicketsClient(client *Client) TicketsClient {
	return TicketsClient{client: client}
}

// List returns all support tickets as a bare array.
func (c TicketsClient) List(ctx context.Context) ([]entity.Ticket, error) {
	var tickets []entity.Ticket
	err := c.client.do(ctx, http.MethodGet, "/tickets", "/tickets", nil, nil, &tickets)
	if err != nil {
		return nil, fmt.Errorf("could not list tickets: %w", err)
	}
	return tickets, nil
}

// ListByUser uses the user-first path shape of the remote API.
func (c TicketsClient) ListByUser(ctx context.Context, userID int64) ([]entity.Ticket, error) {
	var tickets []entity.Ticket
	path := fmt.Sprintf("/%d/tickets", userID)
	err := c.client.do(ctx, http.MethodGet, "/{userId}/tickets", path, nil, nil, &tickets)
	if err != nil {
		return nil, fmt.Errorf("could not list tickets for user %d: %w", userID, err)
	}
	return tickets, nil
}

func (c TicketsClient) Get(ctx context.Context, id int64) (entity.Ticket, error) {
	var ticket entity.Ticket
	path := fmt.Sprintf("/ticket/%d", id)
	err := c.client.do(ctx, http.MethodGet, "/ticket/{id}", path, nil, nil, &ticket)
	if err != nil {
		return entity.Ticket{}, fmt.Errorf("could not get ticket %d: %w", id, err)
	}
	return ticket, nil
}

func (c TicketsClient) Create(ctx context.Context, ticket entity.NewTicket) (entity.Ticket, error) {
	var created entity.Ticket
	err := c.client.do(ctx, http.MethodPost, "/ticket", "/ticket", nil, ticket, &created)
	if err != nil {
		return entity.Ticket{}, fmt.Errorf("could not create ticket: %w", err)
	}
	return created, nil
}

func (c TicketsClient) Update(ctx context.Context, id int64, update entity.TicketUpdate) (entity.Ticket, error) {
	var updated entity.Ticket
	path := fmt.Sprintf("/ticket/%d", id)
	err := c.client.do(ctx, http.MethodPut, "/ticket/{id}", path, nil, update, &updated)
	if err != nil {
		return entity.Ticket{}, fmt.Errorf("could not update ticket %d: %w", id, err)
	}
	return updated, nil
}

func (c TicketsClient) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/ticket/%d", id)
	err := c.client.do(ctx, http.MethodDelete, "/ticket/{id}", path, nil, nil, nil)
	if err != nil {
		return fmt.Errorf("could not delete ticket %d: %w", id, err)
	}
	return nil
}
