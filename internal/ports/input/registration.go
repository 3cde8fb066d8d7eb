package input

import (
	"context"

	"revamp/internal/domain/entities"
	"revamp/internal/ports/output"
)

type CreateOrderInput struct {
	EventID string `json:"eventId"`
	Amount  int64  `json:"amount"`
}

type VerifyPaymentInput struct {
	OrderID   string           `json:"razorpay_order_id"`
	PaymentID string           `json:"razorpay_payment_id"`
	Signature string           `json:"razorpay_signature"`
	Contact   entities.Contact `json:"contact"`
}

// CheckoutOrder is what the client needs to open the checkout widget.
type CheckoutOrder struct {
	output.Order
	KeyID string `json:"keyId"`
}

type RegistrationUseCase interface {
	RegisterFree(ctx context.Context, uid, eventID string, contact entities.Contact) (*entities.Registration, error)
}

type PaymentUseCase interface {
	CreateOrder(ctx context.Context, uid string, in CreateOrderInput) (*CheckoutOrder, error)
	VerifyPayment(ctx context.Context, uid string, in VerifyPaymentInput) (*entities.Registration, error)
}
