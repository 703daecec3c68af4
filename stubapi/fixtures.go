package stubapi

import (
	"time"

	"stayfront/entity"
)

// AddUser registers a user so tickets created for them carry the profile.
func (s *Server) AddUser(user entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
}

func (s *Server) AddHotel(hotel entity.Hotel) entity.Hotel {
	s.mu.Lock()
	defer s.mu.Unlock()
	if hotel.ID == 0 {
		hotel.ID = s.allocateID()
	}
	s.hotels[hotel.ID] = hotel
	return hotel
}

func (s *Server) AddBooking(booking entity.Booking) entity.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	if booking.ID == 0 {
		booking.ID = s.allocateID()
	}
	s.bookings[booking.ID] = booking
	return booking
}

func (s *Server) AddPayment(payment entity.Payment) entity.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if payment.ID == 0 {
		payment.ID = s.allocateID()
	}
	s.payments[payment.ID] = payment
	return payment
}

func (s *Server) AddTicket(ticket entity.Ticket) entity.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket.ID == 0 {
		ticket.ID = s.allocateID()
	}
	if ticket.User == nil {
		if user, ok := s.users[ticket.UserID]; ok {
			ticket.User = &user
		}
	}
	s.tickets[ticket.ID] = ticket
	return ticket
}

// Seed loads a small dataset for local development runs.
func (s *Server) Seed() {
	s.AddUser(entity.User{ID: 1, FirstName: "John", LastName: "Doe", Email: "john.doe@example.com"})
	s.AddUser(entity.User{ID: 2, FirstName: "Jane", LastName: "Smith", Email: "jane.smith@example.com"})

	hotel := s.AddHotel(entity.Hotel{
		Name: "Seaside Grand",
		Address: entity.Address{
			Street:  "1 Promenade",
			City:    "Brighton",
			Country: "UK",
		},
		Amenities: []string{"pool", "spa", "wifi"},
		Rooms: []entity.Room{
			{ID: 1, RoomType: "Deluxe", PricePerNight: 180, Capacity: 2, Available: true},
			{ID: 2, RoomType: "Suite", PricePerNight: 320, Capacity: 4, Available: true},
		},
	})

	booking := s.AddBooking(entity.Booking{
		RoomID:        hotel.Rooms[0].ID,
		UserID:        1,
		CheckInDate:   time.Now().AddDate(0, 0, 7),
		CheckOutDate:  time.Now().AddDate(0, 0, 10),
		BookingStatus: entity.BookingConfirmed,
		TotalAmount:   540,
		RoomType:      "Deluxe",
	})

	s.AddPayment(entity.Payment{
		BookingID:     booking.ID,
		UserID:        1,
		Amount:        540,
		Status:        entity.PaymentCompleted,
		Method:        "card",
		TransactionID: "txn-1001",
		PaidAt:        time.Now(),
	})

	s.AddTicket(entity.Ticket{
		UserID:      1,
		Subject:     "Late check-in",
		Description: "Arriving after midnight, is that ok?",
		Status:      entity.TicketOpen,
		CreatedAt:   time.Now(),
	})
}
