package entity

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
)

type Payment struct {
	ID            int64         `json:"paymentId"`
	BookingID     int64         `json:"bookingId"`
	UserID        int64         `json:"userId"`
	Amount        float64       `json:"amount"`
	Status        PaymentStatus `json:"status"`
	Method        string        `json:"method"`
	TransactionID string        `json:"transactionId"`
	PaidAt        time.Time     `json:"paidAt,omitempty"`
}

type NewPayment struct {
	BookingID int64   `json:"bookingId"`
	UserID    int64   `json:"userId"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
}

type PaymentUpdate struct {
	Status        *PaymentStatus `json:"status,omitempty"`
	Method        *string        `json:"method,omitempty"`
	TransactionID *string        `json:"transactionId,omitempty"`
}
