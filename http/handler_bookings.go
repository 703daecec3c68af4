package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"stayfront/entity"
	"stayfront/gateway"
	"stayfront/query"
	"stayfront/view"
)

// GetBookings serves the paginated booking dashboard. Status narrows the
// remote query; room type and free-text search are applied on the cached
// page, the way the dashboard filter row works.
func (s *Server) GetBookings(c echo.Context) error {
	params := gateway.BookingListParams{
		Page:   intQueryParam(c, "page"),
		Limit:  intQueryParam(c, "limit"),
		Status: entity.BookingStatus(c.QueryParam("status")),
	}

	q := s.bookings.List(params)
	page, err := mounted(c.Request().Context(), s, q)
	if err != nil {
		return queryError(c, q.Key, err)
	}

	page.Data = view.FilterBookings(page.Data, view.BookingFilter{
		RoomType: c.QueryParam("room_type"),
		Search:   c.QueryParam("search"),
	})
	return c.JSON(http.StatusOK, page)
}

func (s *Server) GetBooking(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	q := s.bookings.Get(id)
	booking, err := mounted(c.Request().Context(), s, q)
	if err != nil {
		return queryError(c, q.Key, err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (s *Server) PostBooking(c echo.Context) error {
	var request entity.NewBooking
	if err := c.Bind(&request); err != nil {
		return err
	}

	booking, err := query.Mutate(c.Request().Context(), s.runtime, s.bookings.Create(request))
	if err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusCreated, booking)
}

// PutBooking edits dates and notes, and may move the status forward. An edit
// that would break the status lifecycle is rejected before anything reaches
// the remote API.
func (s *Server) PutBooking(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var request entity.BookingUpdate
	if err := c.Bind(&request); err != nil {
		return err
	}

	current, err := s.peekBooking(c.Request().Context(), id)
	if err != nil {
		return mutationError(c, err)
	}
	if request.BookingStatus != nil && !current.BookingStatus.CanTransitionTo(*request.BookingStatus) {
		return mutationError(c, entity.ErrInvalidTransition)
	}

	booking, err := query.Mutate(c.Request().Context(), s.runtime, s.bookings.Update(id, current.UserID, request))
	if err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (s *Server) CancelBooking(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	current, err := s.peekBooking(c.Request().Context(), id)
	if err != nil {
		return mutationError(c, err)
	}
	if !current.BookingStatus.CanTransitionTo(entity.BookingCancelled) {
		return mutationError(c, entity.ErrInvalidTransition)
	}

	booking, err := query.Mutate(c.Request().Context(), s.runtime, s.bookings.Cancel(id, current.UserID))
	if err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (s *Server) DeleteBooking(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	current, err := s.peekBooking(c.Request().Context(), id)
	if err != nil {
		return mutationError(c, err)
	}

	if _, err := query.Mutate(c.Request().Context(), s.runtime, s.bookings.Delete(id, current.UserID)); err != nil {
		return mutationError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetUserBookingFeed serves the "load more" booking history of one user.
// Every request appends the next server page to the feed's accumulator.
// Feeds are keyed by user and status tab, so requests for different tabs
// accumulate independently; switching tabs lands on a fresh feed. A feed
// assumes one reader; two clients paging the same user's tab share its
// page counter.
func (s *Server) GetUserBookingFeed(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	status := c.QueryParam("status")

	feedKey := c.Param("user_id") + ":" + status
	s.mu.Lock()
	feed, ok := s.feeds[feedKey]
	if !ok {
		feed = view.NewAccumulator(func(b entity.Booking) int64 { return b.ID })
		feed.SetStatus(status)
		s.feeds[feedKey] = feed
	}
	s.mu.Unlock()

	params := gateway.BookingListParams{
		Page:   feed.NextPage(),
		Limit:  intQueryParam(c, "limit"),
		Status: entity.BookingStatus(status),
	}
	q := s.bookings.ListByUser(userID, params)
	page, err := mounted(c.Request().Context(), s, q)
	if err != nil {
		return queryError(c, q.Key, err)
	}

	feed.Append(page.Data)
	return c.JSON(http.StatusOK, bookingFeedResponse{
		Data:        feed.Items(),
		HasNextPage: page.Pagination.HasNextPage,
	})
}

// peekBooking reads a booking without leaving a mounted query behind.
func (s *Server) peekBooking(ctx context.Context, id int64) (entity.Booking, error) {
	h, err := query.Subscribe(ctx, s.runtime, s.bookings.Get(id))
	if err != nil {
		return entity.Booking{}, err
	}
	defer h.Close()
	return h.Result()
}

type bookingFeedResponse struct {
	Data        []entity.Booking `json:"data"`
	HasNextPage bool             `json:"hasNextPage"`
}
