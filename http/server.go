package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"stayfront/entity"
	"stayfront/query"
	"stayfront/view"
)

type closer interface {
	Close()
}

// Server exposes the dashboard over HTTP. Read endpoints go through mounted
// queries that stay open across requests, so a tag invalidation refreshes
// what the next request sees without the handler doing anything.
type Server struct {
	addr string
	e    *echo.Echo
	log  *logrus.Entry

	runtime  *query.Runtime
	bookings query.Bookings
	hotels   query.Hotels
	payments query.Payments
	tickets  query.Tickets

	mu           sync.Mutex
	open         map[string]closer
	feeds        map[string]*view.Accumulator[entity.Booking]
	amountToggle *view.Toggle[entity.Payment]
}

func NewServer(
	addr string,
	runtime *query.Runtime,
	bookings query.Bookings,
	hotels query.Hotels,
	payments query.Payments,
	tickets query.Tickets,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(otelecho.Middleware("stayfront"))

	server := &Server{
		addr:         addr,
		e:            e,
		log:          logrus.WithField("component", "http"),
		runtime:      runtime,
		bookings:     bookings,
		hotels:       hotels,
		payments:     payments,
		tickets:      tickets,
		open:         make(map[string]closer),
		feeds:        make(map[string]*view.Accumulator[entity.Booking]),
		amountToggle: view.ByAmount(),
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/bookings", server.GetBookings)
	e.GET("/bookings/:id", server.GetBooking)
	e.POST("/bookings", server.PostBooking)
	e.PUT("/bookings/:id", server.PutBooking)
	e.POST("/bookings/:id/cancel", server.CancelBooking)
	e.DELETE("/bookings/:id", server.DeleteBooking)
	e.GET("/users/:user_id/bookings", server.GetUserBookingFeed)

	e.GET("/hotels", server.GetHotels)
	e.GET("/hotels/:id", server.GetHotel)
	e.POST("/hotels", server.PostHotel)
	e.PUT("/hotels/:id", server.PutHotel)
	e.DELETE("/hotels/:id", server.DeleteHotel)
	e.PUT("/hotels/:id/address", server.PutHotelAddress)
	e.PUT("/hotels/:id/amenities", server.PutHotelAmenities)
	e.PUT("/hotels/:id/details", server.PutHotelDetails)

	e.GET("/payments", server.GetPayments)
	e.GET("/payments/:id", server.GetPayment)
	e.POST("/payments", server.PostPayment)
	e.PUT("/payments/:id", server.PutPayment)
	e.DELETE("/payments/:id", server.DeletePayment)
	e.GET("/users/:user_id/payments", server.GetUserPayments)

	e.GET("/tickets", server.GetTickets)
	e.GET("/tickets/:id", server.GetTicket)
	e.POST("/tickets", server.PostTicket)
	e.PUT("/tickets/:id", server.PutTicket)
	e.POST("/tickets/:id/resolve", server.ResolveTicket)
	e.DELETE("/tickets/:id", server.DeleteTicket)
	e.GET("/users/:user_id/tickets", server.GetUserTickets)

	return server
}

// Handler exposes the routed server as an http.Handler, for tests that
// serve it from their own listener.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.closeMounted()
		if err := s.e.Shutdown(context.Background()); err != nil {
			s.log.WithError(err).Error("failed to shutdown HTTP server")
		}
	}()
	s.log.WithField("addr", s.addr).Info("[HTTP] server listening")
	if err := s.e.Start(s.addr); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) closeMounted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, h := range s.open {
		h.Close()
		delete(s.open, key)
	}
}

// mounted reads q through a handle the server keeps open, so the result
// stays live under invalidations. The first request for a key mounts it;
// later requests for the same key are cache reads.
func mounted[T any](ctx context.Context, s *Server, q query.Query[T]) (T, error) {
	s.mu.Lock()
	existing, ok := s.open[q.Key]
	s.mu.Unlock()
	if ok {
		return existing.(*query.Handle[T]).Result()
	}

	h, err := query.Subscribe(ctx, s.runtime, q)
	if err != nil {
		var zero T
		return zero, err
	}

	s.mu.Lock()
	if raced, ok := s.open[q.Key]; ok {
		s.mu.Unlock()
		h.Close()
		return raced.(*query.Handle[T]).Result()
	}
	s.open[q.Key] = h
	s.mu.Unlock()

	return h.Result()
}

type errorResponse struct {
	Query   string `json:"query,omitempty"`
	Message string `json:"message"`
}

// queryError renders a failed read with the query key, so the client can
// retry by simply re-requesting.
func queryError(c echo.Context, key string, err error) error {
	status := http.StatusBadGateway
	if errors.Is(err, entity.ErrNotFound) {
		status = http.StatusNotFound
	}
	return c.JSON(status, errorResponse{Query: key, Message: err.Error()})
}

func mutationError(c echo.Context, err error) error {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, entity.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entity.ErrConflict), errors.Is(err, entity.ErrInvalidTransition):
		status = http.StatusConflict
	}
	return c.JSON(status, errorResponse{Message: err.Error()})
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

func intQueryParam(c echo.Context, name string) int {
	value, _ := strconv.Atoi(c.QueryParam(name))
	return value
}
