package output

import "context"

// Order is a payment order created on the gateway.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// PaymentGateway is the third-party checkout provider.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (Order, error)
	// VerifySignature checks the signature returned by the checkout widget.
	VerifySignature(orderID, paymentID, signature string) bool
	// KeyID is the public key the checkout widget is opened with.
	KeyID() string
}
