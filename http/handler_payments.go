package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"stayfront/entity"
	"stayfront/query"
	"stayfront/view"
)

// GetPayments serves the payment dashboard: status, method and free-text
// filters on the cached collection, plus the shared amount sort toggle.
// Every request with sort=amount flips the direction, like clicking the
// column header.
func (s *Server) GetPayments(c echo.Context) error {
	q := s.payments.List()
	payments, err := mounted(c.Request().Context(), s, q)
	if err != nil {
		return queryError(c, q.Key, err)
	}

	payments = view.FilterPayments(payments, view.PaymentFilter{
		Status: c.QueryParam("status"),
		Method: c.QueryParam("method"),
		Search: c.QueryParam("search"),
	})
	if c.QueryParam("sort") == "amount" {
		payments = s.amountToggle.Sort(payments)
	}
	return c.JSON(http.StatusOK, payments)
}

func (s *Server) GetPayment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	q := s.payments.Get(id)
	payment, err := mounted(c.Request().Context(), s, q)
	if err != nil {
		return queryError(c, q.Key, err)
	}
	return c.JSON(http.StatusOK, payment)
}

func (s *Server) PostPayment(c echo.Context) error {
	var request entity.NewPayment
	if err := c.Bind(&request); err != nil {
		return err
	}

	payment, err := query.Mutate(c.Request().Context(), s.runtime, s.payments.Create(request))
	if err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusCreated, payment)
}

func (s *Server) PutPayment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var request entity.PaymentUpdate
	if err := c.Bind(&request); err != nil {
		return err
	}

	current, err := s.peekPayment(c.Request().Context(), id)
	if err != nil {
		return mutationError(c, err)
	}

	payment, err := query.Mutate(c.Request().Context(), s.runtime, s.payments.Update(id, current.UserID, request))
	if err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusOK, payment)
}

func (s *Server) DeletePayment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	current, err := s.peekPayment(c.Request().Context(), id)
	if err != nil {
		return mutationError(c, err)
	}

	if _, err := query.Mutate(c.Request().Context(), s.runtime, s.payments.Delete(id, current.UserID)); err != nil {
		return mutationError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) GetUserPayments(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}

	q := s.payments.ListByUser(userID)
	payments, err := mounted(c.Request().Context(), s, q)
	if err != nil {
		return queryError(c, q.Key, err)
	}
	return c.JSON(http.StatusOK, payments)
}

func (s *Server) peekPayment(ctx context.Context, id int64) (entity.Payment, error) {
	h, err := query.Subscribe(ctx, s.runtime, s.payments.Get(id))
	if err != nil {
		return entity.Payment{}, err
	}
	defer h.Close()
	return h.Result()
}
