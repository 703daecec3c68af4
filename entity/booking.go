package entity

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCancelled BookingStatus = "Cancelled"
)

// CanTransitionTo reports whether a booking may move from s to next.
// Cancelled is terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCancelled
	default:
		return false
	}
}

type Booking struct {
	ID            int64         `json:"bookingId"`
	RoomID        int64         `json:"roomId"`
	UserID        int64         `json:"userId"`
	CheckInDate   time.Time     `json:"checkInDate"`
	CheckOutDate  time.Time     `json:"checkOutDate"`
	BookingStatus BookingStatus `json:"bookingStatus"`
	TotalAmount   float64       `json:"totalAmount"`
	RoomType      string        `json:"roomType,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"createdAt,omitempty"`
}

// NewBooking is the creation payload; the server assigns identity and the
// initial Pending status.
type NewBooking struct {
	RoomID       int64     `json:"roomId"`
	UserID       int64     `json:"userId"`
	CheckInDate  time.Time `json:"checkInDate"`
	CheckOutDate time.Time `json:"checkOutDate"`
	TotalAmount  float64   `json:"totalAmount"`
}

// BookingUpdate is a partial update; nil fields are left unchanged.
type BookingUpdate struct {
	BookingStatus *BookingStatus `json:"bookingStatus,omitempty"`
	CheckInDate   *time.Time     `json:"checkInDate,omitempty"`
	CheckOutDate  *time.Time     `json:"checkOutDate,omitempty"`
	Notes         *string        `json:"notes,omitempty"`
}
