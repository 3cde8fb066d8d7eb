package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"revamp/internal/ports/output"
)

var _ output.PaymentGateway = (*Razorpay)(nil)

// orderCreator is the part of the Razorpay SDK used to open orders.
type orderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type Razorpay struct {
	orders orderCreator
	keyID  string
	secret string
}

func NewRazorpay(keyID, secret string) *Razorpay {
	client := razorpay.NewClient(keyID, secret)
	return &Razorpay{orders: client.Order, keyID: keyID, secret: secret}
}

// CreateOrder opens an order for amount in the smallest currency unit.
// The SDK call takes no context; ctx is only checked before the call.
func (r *Razorpay) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (output.Order, error) {
	if err := ctx.Err(); err != nil {
		return output.Order{}, err
	}
	body, err := r.orders.Create(map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}, nil)
	if err != nil {
		return output.Order{}, fmt.Errorf("razorpay create order: %w", err)
	}
	id, _ := body["id"].(string)
	if id == "" {
		return output.Order{}, fmt.Errorf("razorpay create order: missing id in response")
	}
	order := output.Order{
		ID:       id,
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	}
	order.Status, _ = body["status"].(string)
	return order, nil
}

func (r *Razorpay) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(r.secret, orderID, paymentID, signature)
}

func (r *Razorpay) KeyID() string { return r.keyID }
