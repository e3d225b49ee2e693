package domain

import "time"

type PaymentStatus string

const (
	PaymentCreated PaymentStatus = "created"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

type Payment struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user"`
	Amount    int64         `json:"amount"` // paise
	Currency  string        `json:"currency"`
	OrderID   string        `json:"orderId"`
	PaymentID string        `json:"paymentId,omitempty"`
	Signature string        `json:"-"`
	Status    PaymentStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
