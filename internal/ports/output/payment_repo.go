package output

import (
	"context"

	"revamp/internal/domain/entities"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	// FindByOrderIDForUpdate locks the payment row for the current transaction.
	FindByOrderIDForUpdate(ctx context.Context, orderID string) (*entities.Payment, error)
	UpdateStatus(ctx context.Context, id, status, gatewayPaymentID string) error
}
