package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"stayfront/entity"
	"stayfront/query"
	"stayfront/view"
)

// GetTickets serves the support inbox, narrowed by customer name and status.
func (s *Server) GetTickets(c echo.Context) error {
	q := s.tickets.List()
	tickets, err := mounted(c.Request().Context(), s, q)
	if err != nil {
		return queryError(c, q.Key, err)
	}

	tickets = view.FilterTickets(tickets, view.TicketFilter{
		User:   c.QueryParam("user"),
		Status: c.QueryParam("status"),
	})
	return c.JSON(http.StatusOK, tickets)
}

func (s *Server) GetTicket(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	q := s.tickets.Get(id)
	ticket, err := mounted(c.Request().Context(), s, q)
	if err != nil {
		return queryError(c, q.Key, err)
	}
	return c.JSON(http.StatusOK, ticket)
}

func (s *Server) PostTicket(c echo.Context) error {
	var request entity.NewTicket
	if err := c.Bind(&request); err != nil {
		return err
	}

	ticket, err := query.Mutate(c.Request().Context(), s.runtime, s.tickets.Create(request))
	if err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusCreated, ticket)
}

func (s *Server) PutTicket(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var request entity.TicketUpdate
	if err := c.Bind(&request); err != nil {
		return err
	}

	current, err := s.peekTicket(c.Request().Context(), id)
	if err != nil {
		return mutationError(c, err)
	}

	ticket, err := query.Mutate(c.Request().Context(), s.runtime, s.tickets.Update(id, current.UserID, request))
	if err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusOK, ticket)
}

// ResolveTicket stores the staff reply and closes the ticket in one step.
func (s *Server) ResolveTicket(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var request resolveTicketRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	current, err := s.peekTicket(c.Request().Context(), id)
	if err != nil {
		return mutationError(c, err)
	}

	ticket, err := query.Mutate(c.Request().Context(), s.runtime, s.tickets.Resolve(id, current.UserID, request.Reply))
	if err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusOK, ticket)
}

func (s *Server) DeleteTicket(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	current, err := s.peekTicket(c.Request().Context(), id)
	if err != nil {
		return mutationError(c, err)
	}

	if _, err := query.Mutate(c.Request().Context(), s.runtime, s.tickets.Delete(id, current.UserID)); err != nil {
		return mutationError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) GetUserTickets(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}

	q := s.tickets.ListByUser(userID)
	tickets, err := mounted(c.Request().Context(), s, q)
	if err != nil {
		return queryError(c, q.Key, err)
	}
	return c.JSON(http.StatusOK, tickets)
}

func (s *Server) peekTicket(ctx context.Context, id int64) (entity.Ticket, error) {
	h, err := query.Subscribe(ctx, s.runtime, s.tickets.Get(id))
	if err != nil {
		return entity.Ticket{}, err
	}
	defer h.Close()
	return h.Result()
}

type resolveTicketRequest struct {
	Reply string `json:"reply"`
}
