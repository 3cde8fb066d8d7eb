package entities

import "time"

// Payment tracks a gateway order and its outcome.
type Payment struct {
	ID               string
	UserID           string
	EventID          string
	Amount           int64 // paise
	Currency         string
	Receipt          string
	GatewayOrderID   string
	GatewayPaymentID string
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
