package view_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stayfront/entity"
	"stayfront/view"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestFilterBookings_StatusOnly(t *testing.T) {
	bookings := []entity.Booking{
		{ID: 1, BookingStatus: entity.BookingConfirmed, RoomType: "Deluxe"},
		{ID: 2, BookingStatus: entity.BookingPending, RoomType: "Deluxe"},
		{ID: 3, BookingStatus: entity.BookingConfirmed, RoomType: "Suite"},
		{ID: 4, BookingStatus: entity.BookingCancelled, RoomType: "Standard"},
	}

	// "All" and "" are wildcards; only the status dimension constrains.
	got := view.FilterBookings(bookings, view.BookingFilter{
		Status:   "Confirmed",
		RoomType: "All",
		Search:   "",
	})

	ids := make([]int64, 0, len(got))
	for _, b := range got {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []int64{1, 3}, ids)
}

func TestFilterBookings_PredicatesCombineWithAnd(t *testing.T) {
	bookings := []entity.Booking{
		{ID: 1, BookingStatus: entity.BookingConfirmed, RoomType: "Deluxe"},
		{ID: 2, BookingStatus: entity.BookingConfirmed, RoomType: "Suite"},
		{ID: 3, BookingStatus: entity.BookingPending, RoomType: "Deluxe"},
	}

	got := view.FilterBookings(bookings, view.BookingFilter{
		Status:   "Confirmed",
		RoomType: "Deluxe",
	})

	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestFilterBookings_SearchIsCaseInsensitive(t *testing.T) {
	bookings := []entity.Booking{
		{ID: 1, BookingStatus: entity.BookingConfirmed, RoomType: "Deluxe Suite"},
		{ID: 2, BookingStatus: entity.BookingConfirmed, RoomType: "Standard"},
	}

	got := view.FilterBookings(bookings, view.BookingFilter{Search: "deluxe"})

	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestFilterBookings_SearchMatchesFormattedDates(t *testing.T) {
	bookings := []entity.Booking{
		{ID: 1, CheckInDate: date("2025-08-01"), CheckOutDate: date("2025-08-03")},
		{ID: 2, CheckInDate: date("2025-09-10"), CheckOutDate: date("2025-09-12")},
	}

	got := view.FilterBookings(bookings, view.BookingFilter{Search: "2025-08"})

	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestFilterPayments_SearchCoversTransactionID(t *testing.T) {
	payments := []entity.Payment{
		{ID: 1, Status: entity.PaymentCompleted, Method: "card", TransactionID: "TXN-001"},
		{ID: 2, Status: entity.PaymentCompleted, Method: "paypal", TransactionID: "TXN-002"},
	}

	got := view.FilterPayments(payments, view.PaymentFilter{Search: "txn-002"})

	assert.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestFilterTickets_UserNameAndStatus(t *testing.T) {
	tickets := []entity.Ticket{
		{ID: 1, Status: entity.TicketOpen, User: &entity.User{FirstName: "John", LastName: "Doe"}},
		{ID: 2, Status: entity.TicketResolved, User: &entity.User{FirstName: "John", LastName: "Doe"}},
		{ID: 3, Status: entity.TicketOpen, User: &entity.User{FirstName: "Jane", LastName: "Smith"}},
		{ID: 4, Status: entity.TicketOpen},
	}

	got := view.FilterTickets(tickets, view.TicketFilter{
		User:   "john doe",
		Status: "Open",
	})

	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}
