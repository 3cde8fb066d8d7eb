package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"revamp/internal/domain/entities"
	"revamp/internal/ports/input"
	"revamp/internal/ports/output"
)

type createOrderRequest struct {
	EventID string `json:"eventId" validate:"required"`
	Amount  int64  `json:"amount" validate:"required,gt=0"`
}

type verifyPaymentRequest struct {
	OrderID   string          `json:"razorpay_order_id" validate:"required"`
	PaymentID string          `json:"razorpay_payment_id" validate:"required"`
	Signature string          `json:"razorpay_signature" validate:"required"`
	Contact   *contactRequest `json:"contact" validate:"omitempty"`
}

// contact falls back to the signed-in account when the checkout form sent
// no contact details.
func (r verifyPaymentRequest) contact(id output.Identity) entities.Contact {
	if r.Contact != nil {
		return r.Contact.contact()
	}
	return entities.Contact{Name: id.Name, Email: id.Email}
}

func (h *handlers) registerPaymentAPI(v1 *echo.Group) {
	v1.POST("/payments/orders", h.createOrder)
	v1.POST("/payments/verify", h.verifyPayment)
}

func (h *handlers) createOrder(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}
	var req createOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	order, err := h.opts.Payments.CreateOrder(c.Request().Context(), id.UID, input.CreateOrderInput{
		EventID: req.EventID,
		Amount:  req.Amount,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *handlers) verifyPayment(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}
	var req verifyPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	reg, err := h.opts.Payments.VerifyPayment(c.Request().Context(), id.UID, input.VerifyPaymentInput{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
		Contact:   req.contact(id),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newRegistrationResponse(reg))
}
