package stubapi

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"stayfront/entity"
)

// Server is an in-memory rendition of the remote hotel API, covering the
// endpoints the gateway calls. The component tests run against it, and it
// doubles as a local development backend.
type Server struct {
	e   *echo.Echo
	log *logrus.Entry

	mu       sync.Mutex
	bookings map[int64]entity.Booking
	hotels   map[int64]entity.Hotel
	payments map[int64]entity.Payment
	tickets  map[int64]entity.Ticket
	users    map[int64]entity.User
	nextID   int64
}

func NewServer() *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		e:        e,
		log:      logrus.WithField("component", "stubapi"),
		bookings: make(map[int64]entity.Booking),
		hotels:   make(map[int64]entity.Hotel),
		payments: make(map[int64]entity.Payment),
		tickets:  make(map[int64]entity.Ticket),
		users:    make(map[int64]entity.User),
	}

	e.GET("/bookings", s.listBookings)
	e.GET("/bookings/user/:user_id", s.listUserBookings)
	e.GET("/booking/:id", s.getBooking)
	e.POST("/booking", s.createBooking)
	e.PUT("/booking/:id", s.updateBooking)
	e.DELETE("/booking/:id", s.deleteBooking)

	e.GET("/hotels", s.listHotels)
	e.GET("/hotel/:id", s.getHotel)
	e.POST("/hotel", s.createHotel)
	e.PUT("/hotel/:id", s.updateHotel)
	e.DELETE("/hotel/:id", s.deleteHotel)
	e.PUT("/hotel/:id/address", s.updateHotelAddress)
	e.PUT("/hotel/:id/amenities", s.updateHotelAmenities)
	e.PUT("/hotel/:id/details", s.updateHotelDetails)

	e.GET("/payments", s.listPayments)
	e.GET("/payment/user/:user_id", s.listUserPayments)
	e.GET("/payment/:id", s.getPayment)
	e.POST("/payment", s.createPayment)
	e.PUT("/payment/:id", s.updatePayment)
	e.DELETE("/payment/:id", s.deletePayment)

	e.GET("/tickets", s.listTickets)
	e.GET("/:user_id/tickets", s.listUserTickets)
	e.GET("/ticket/:id", s.getTicket)
	e.POST("/ticket", s.createTicket)
	e.PUT("/ticket/:id", s.updateTicket)
	e.DELETE("/ticket/:id", s.deleteTicket)

	return s
}

// Handler exposes the stub as an http.Handler, for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) Run(ctx context.Context, addr string) error {
	go func() {
		<-ctx.Done()
		if err := s.e.Shutdown(context.Background()); err != nil {
			s.log.WithError(err).Error("failed to shutdown stub API")
		}
	}()
	s.log.WithField("addr", addr).Info("[stub API] listening")
	if err := s.e.Start(addr); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) allocateID() int64 {
	s.nextID++
	return s.nextID
}

type apiError struct {
	Message string `json:"message"`
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, apiError{Message: message})
}

func parseID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	return id, err == nil
}

// bookings

func (s *Server) listBookings(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := entity.BookingStatus(c.QueryParam("status"))
	var matched []entity.Booking
	for _, b := range sortedByID(s.bookings, func(b entity.Booking) int64 { return b.ID }) {
		if status != "" && b.BookingStatus != status {
			continue
		}
		matched = append(matched, b)
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return c.JSON(http.StatusOK, paginate(matched, page, limit))
}

func (s *Server) listUserBookings(c echo.Context) error {
	userID, ok := parseID(c, "user_id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "invalid user id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	status := entity.BookingStatus(c.QueryParam("status"))
	var matched []entity.Booking
	for _, b := range sortedByID(s.bookings, func(b entity.Booking) int64 { return b.ID }) {
		if b.UserID != userID {
			continue
		}
		if status != "" && b.BookingStatus != status {
			continue
		}
		matched = append(matched, b)
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return c.JSON(http.StatusOK, paginate(matched, page, limit))
}

func (s *Server) getBooking(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "invalid booking id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return errorJSON(c, http.StatusNotFound, "booking not found")
	}
	return c.JSON(http.StatusOK, booking)
}

func (s *Server) createBooking(c echo.Context) error {
	var request entity.NewBooking
	if err := c.Bind(&request); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid booking payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings {
		if b.RoomID != request.RoomID || b.BookingStatus == entity.BookingCancelled {
			continue
		}
		if request.CheckInDate.Before(b.CheckOutDate) && b.CheckInDate.Before(request.CheckOutDate) {
			return errorJSON(c, http.StatusConflict, entity.ErrRoomUnavailable.Error())
		}
	}

	booking := entity.Booking{
		ID:            s.allocateID(),
		RoomID:        request.RoomID,
		UserID:        request.UserID,
		CheckInDate:   request.CheckInDate,
		CheckOutDate:  request.CheckOutDate,
		BookingStatus: entity.BookingPending,
		TotalAmount:   request.TotalAmount,
		CreatedAt:     time.Now(),
	}
	s.bookings[booking.ID] = booking
	return c.JSON(http.StatusCreated, booking)
}

func (s *Server) updateBooking(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "invalid booking id")
	}

	var request entity.BookingUpdate
	if err := c.Bind(&request); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid booking payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return errorJSON(c, http.StatusNotFound, "booking not found")
	}
	if request.BookingStatus != nil && *request.BookingStatus != booking.BookingStatus {
		if !booking.BookingStatus.CanTransitionTo(*request.BookingStatus) {
			return errorJSON(c, http.StatusConflict, entity.ErrInvalidTransition.Error())
		}
		booking.BookingStatus = *request.BookingStatus
	}
	if request.CheckInDate != nil {
		booking.CheckInDate = *request.CheckInDate
	}
	if request.CheckOutDate != nil {
		booking.CheckOutDate = *request.CheckOutDate
	}
	if request.Notes != nil {
		booking.Notes = *request.Notes
	}
	s.bookings[id] = booking
	return c.JSON(http.StatusOK, booking)
}

func (s *Server) deleteBooking(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "invalid booking id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return errorJSON(c, http.StatusNotFound, "booking not found")
	}
	delete(s.bookings, id)
	return c.NoContent(http.StatusNoContent)
}

// hotels

func (s *Server) listHotels(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, sortedByID(s.hotels, func(h entity.Hotel) int64 { return h.ID }))
}

func (s *Server) getHotel(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "invalid hotel id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hotel, ok := s.hotels[id]
	if !ok {
		return errorJSON(c, http.StatusNotFound, "hotel not found")
	}
	return c.JSON(http.StatusOK, hotel)
}

func (s *Server) createHotel(c echo.Context) error {
	var request entity.Hotel
	if err := c.Bind(&request); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid hotel payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	request.ID = s.allocateID()
	s.hotels[request.ID] = request
	return c.JSON(http.StatusCreated, request)
}

func (s *Server) updateHotel(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "invalid hotel id")
	}

	var request entity.Hotel
	if err := c.Bind(&request); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid hotel payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.hotels[id]; !ok {
		return errorJSON(c, http.StatusNotFound, "hotel not found")
	}
	request.ID = id
	s.hotels[id] = request
	return c.JSON(http.StatusOK, request)
}

func (s *Server) deleteHotel(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "invalid hotel id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.hotels[id]; !ok {
		return errorJSON(c, http.StatusNotFound, "hotel not found")
	}
	delete(s.hotels, id)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) updateHotelAddress(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "invalid hotel id")
	}

	var request entity.Address
	if err := c.Bind(&request); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid address payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hotel, ok := s.hotels[id]
	if !ok {
		return errorJSON(c, http.StatusNotFound, "hotel not found")
	}
	hotel.Address = request
	s.hotels[id] = hotel
	return c.JSON(http.StatusOK, hotel)
}

func (s *Server) updateHotelAmenities(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "invalid hotel id")
	}

	var request []string
	if err := c.Bind(&request); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid amenities payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hotel, ok := s.hotels[id]
	if !ok {
		return errorJSON(c, http.StatusNotFound, "hotel not found")
	}
	hotel.Amenities = request
	s.hotels[id] = hotel
	return c.JSON(http.StatusOK, hotel)
}

func (s *Server) updateHotelDetails(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "invalid hotel id")
	}

	var request entity.HotelDetails
	if err := c.Bind(&request); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid details payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hotel, ok := s.hotels[id]
	if !ok {
		return errorJSON(c, http.StatusNotFound, "hotel not found")
	}
	hotel.Details = request
	s.hotels[id] = hotel
	return c.JSON(http.StatusOK, hotel)
}

// payments

func (s *Server) listPayments(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, sortedByID(s.payments, func(p entity.Payment) int64 { return p.ID }))
}

func (s *Server) listUserPayments(c echo.Context) error {
	userID, ok := parseID(c, "user_id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "invalid user id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []entity.Payment
	for _, p := range sortedByID(s.payments, func(p entity.Payment) int64 { return p.ID }) {
		if p.UserID == userID {
			matched = append(matched, p)
		}
	}
	return c.JSON(http.StatusOK, matched)
}

func (s *Server) getPayment(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "invalid payment id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	payment, ok := s.payments[id]
	if !ok {
		return errorJSON(c, http.StatusNotFound, "payment not found")
	}
	return c.JSON(http.StatusOK, payment)
}

func (s *Server) createPayment(c echo.Context) error {
	var request entity.NewPayment
	if err := c.Bind(&request); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid payment payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[request.BookingID]; !ok {
		return errorJSON(c, http.StatusNotFound, "booking not found")
	}

	payment := entity.Payment{
		ID:        s.allocateID(),
		BookingID: request.BookingID,
		UserID:    request.UserID,
		Amount:    request.Amount,
		Status:    entity.PaymentPending,
		Method:    request.Method,
	}
	s.payments[payment.ID] = payment
	return c.JSON(http.StatusCreated, payment)
}

func (s *Server) updatePayment(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "invalid payment id")
	}

	var request entity.PaymentUpdate
	if err := c.Bind(&request); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid payment payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	payment, ok := s.payments[id]
	if !ok {
		return errorJSON(c, http.StatusNotFound, "payment not found")
	}
	if request.Status != nil {
		payment.Status = *request.Status
		if *request.Status == entity.PaymentCompleted && payment.PaidAt.IsZero() {
			payment.PaidAt = time.Now()
		}
	}
	if request.Method != nil {
		payment.Method = *request.Method
	}
	if request.TransactionID != nil {
		payment.TransactionID = *request.TransactionID
	}
	s.payments[id] = payment
	return c.JSON(http.StatusOK, payment)
}

func (s *Server) deletePayment(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "invalid payment id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.payments[id]; !ok {
		return errorJSON(c, http.StatusNotFound, "payment not found")
	}
	delete(s.payments, id)
	return c.NoContent(http.StatusNoContent)
}

// tickets

func (s *Server) listTickets(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, sortedByID(s.tickets, func(t entity.Ticket) int64 { return t.ID }))
}

func (s *Server) listUserTickets(c echo.Context) error {
	userID, ok := parseID(c, "user_id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "invalid user id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []entity.Ticket
	for _, t := range sortedByID(s.tickets, func(t entity.Ticket) int64 { return t.ID }) {
		if t.UserID == userID {
			matched = append(matched, t)
		}
	}
	return c.JSON(http.StatusOK, matched)
}

func (s *Server) getTicket(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "invalid ticket id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return errorJSON(c, http.StatusNotFound, "ticket not found")
	}
	return c.JSON(http.StatusOK, ticket)
}

func (s *Server) createTicket(c echo.Context) error {
	var request entity.NewTicket
	if err := c.Bind(&request); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid ticket payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ticket := entity.Ticket{
		ID:          s.allocateID(),
		UserID:      request.UserID,
		Subject:     request.Subject,
		Description: request.Description,
		Status:      entity.TicketOpen,
		CreatedAt:   time.Now(),
	}
	if user, ok := s.users[request.UserID]; ok {
		ticket.User = &user
	}
	s.tickets[ticket.ID] = ticket
	return c.JSON(http.StatusCreated, ticket)
}

func (s *Server) updateTicket(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "invalid ticket id")
	}

	var request entity.TicketUpdate
	if err := c.Bind(&request); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid ticket payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return errorJSON(c, http.StatusNotFound, "ticket not found")
	}
	if request.Reply != nil {
		ticket.Reply = *request.Reply
	}
	if request.Status != nil {
		ticket.Status = *request.Status
	}
	s.tickets[id] = ticket
	return c.JSON(http.StatusOK, ticket)
}

func (s *Server) deleteTicket(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "invalid ticket id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tickets[id]; !ok {
		return errorJSON(c, http.StatusNotFound, "ticket not found")
	}
	delete(s.tickets, id)
	return c.NoContent(http.StatusNoContent)
}

func sortedByID[T any](items map[int64]T, id func(T) int64) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return id(out[i]) < id(out[j]) })
	return out
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
