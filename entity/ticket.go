package entity

import "time"

type TicketStatus string

const (
	TicketOpen     TicketStatus = "Open"
	TicketResolved TicketStatus = "Resolved"
)

// Ticket is a customer support request, optionally answered by staff.
type Ticket struct {
	ID          int64        `json:"ticketId"`
	UserID      int64        `json:"userId"`
	User        *User        `json:"user,omitempty"`
	Subject     string       `json:"subject"`
	Description string       `json:"description"`
	Reply       string       `json:"reply,omitempty"`
	Status      TicketStatus `json:"status"`
	CreatedAt   time.Time    `json:"createdAt,omitempty"`
}

type NewTicket struct {
	UserID      int64  `json:"userId"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

type TicketUpdate struct {
	Reply  *string       `json:"reply,omitempty"`
	Status *TicketStatus `json:"status,omitempty"`
}
