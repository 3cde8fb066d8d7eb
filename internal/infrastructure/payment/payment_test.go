package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignature(t *testing.T) {
	t.Parallel()

	sig := Sign("secret", "order_1", "pay_1")
	assert.Len(t, sig, 64)
	assert.True(t, VerifySignature("secret", "order_1", "pay_1", sig))
	assert.False(t, VerifySignature("secret", "order_1", "pay_2", sig))
	assert.False(t, VerifySignature("other", "order_1", "pay_1", sig))
	assert.False(t, VerifySignature("secret", "order_1", "pay_1", ""))
}

type stubOrders struct {
	got  map[string]interface{}
	resp map[string]interface{}
	err  error
}

func (s *stubOrders) Create(data map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
	s.got = data
	return s.resp, s.err
}

func TestRazorpay_CreateOrder(t *testing.T) {
	t.Parallel()
	stub := &stubOrders{resp: map[string]interface{}{"id": "order_abc", "status": "created"}}
	r := &Razorpay{orders: stub, keyID: "rzp_test", secret: "s"}

	order, err := r.CreateOrder(context.Background(), 49900, "INR", "receipt_event_e1_1")
	require.NoError(t, err)
	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, "created", order.Status)
	assert.Equal(t, int64(49900), stub.got["amount"])
	assert.Equal(t, "receipt_event_e1_1", stub.got["receipt"])
	assert.Equal(t, "rzp_test", r.KeyID())

	stub.err = errors.New("bad request")
	_, err = r.CreateOrder(context.Background(), 49900, "INR", "r")
	assert.Error(t, err)

	stub.err, stub.resp = nil, map[string]interface{}{}
	_, err = r.CreateOrder(context.Background(), 49900, "INR", "r")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.CreateOrder(ctx, 49900, "INR", "r")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRazorpay_VerifySignature(t *testing.T) {
	t.Parallel()
	r := NewRazorpay("rzp_test", "secret")
	assert.True(t, r.VerifySignature("order_1", "pay_1", Sign("secret", "order_1", "pay_1")))
	assert.False(t, r.VerifySignature("order_1", "pay_1", "deadbeef"))
}
