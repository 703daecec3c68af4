package view

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"stayfront/entity"
)

// Wildcard filter values: an empty string and the "All" placeholder both
// match everything for their dimension. Predicates combine with AND.
func isWildcard(value string) bool {
	return value == "" || value == "All"
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// BookingFilter narrows an already-fetched booking list for the dashboard.
type BookingFilter struct {
	Status   string
	RoomType string
	Search   string
}

func (f BookingFilter) Match(booking entity.Booking) bool {
	if !isWildcard(f.Status) && string(booking.BookingStatus) != f.Status {
		return false
	}
	if !isWildcard(f.RoomType) && booking.RoomType != f.RoomType {
		return false
	}
	if f.Search != "" {
		haystack := strings.Join([]string{
			booking.RoomType,
			string(booking.BookingStatus),
			formatDate(booking.CheckInDate),
			formatDate(booking.CheckOutDate),
		}, " ")
		if !containsFold(haystack, f.Search) {
			return false
		}
	}
	return true
}

func FilterBookings(bookings []entity.Booking, f BookingFilter) []entity.Booking {
	return lo.Filter(bookings, func(booking entity.Booking, _ int) bool {
		return f.Match(booking)
	})
}

// PaymentFilter narrows the payments dashboard. Search covers status, method,
// transaction id and the payment date.
type PaymentFilter struct {
	Status string
	Method string
	Search string
}

func (f PaymentFilter) Match(payment entity.Payment) bool {
	if !isWildcard(f.Status) && string(payment.Status) != f.Status {
		return false
	}
	if !isWildcard(f.Method) && payment.Method != f.Method {
		return false
	}
	if f.Search != "" {
		haystack := strings.Join([]string{
			string(payment.Status),
			payment.Method,
			payment.TransactionID,
			formatDate(payment.PaidAt),
		}, " ")
		if !containsFold(haystack, f.Search) {
			return false
		}
	}
	return true
}

func FilterPayments(payments []entity.Payment, f PaymentFilter) []entity.Payment {
	return lo.Filter(payments, func(payment entity.Payment, _ int) bool {
		return f.Match(payment)
	})
}

// TicketFilter narrows the support-ticket dashboard. User matches the
// concatenated "first last" name, case-insensitively, as a substring.
type TicketFilter struct {
	User   string
	Status string
}

func (f TicketFilter) Match(ticket entity.Ticket) bool {
	if !isWildcard(f.Status) && string(ticket.Status) != f.Status {
		return false
	}
	if !isWildcard(f.User) {
		var name string
		if ticket.User != nil {
			name = ticket.User.FullName()
		}
		if !containsFold(name, f.User) {
			return false
		}
	}
	return true
}

func FilterTickets(tickets []entity.Ticket, f TicketFilter) []entity.Ticket {
	return lo.Filter(tickets, func(ticket entity.Ticket, _ int) bool {
		return f.Match(ticket)
	})
}
