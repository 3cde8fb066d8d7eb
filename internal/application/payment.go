package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"revamp/internal/clock"
	"revamp/internal/domain"
	"revamp/internal/domain/entities"
	"revamp/internal/ports/input"
	"revamp/internal/ports/output"
	"revamp/pkg/money"
)

var _ input.PaymentUseCase = (*PaymentService)(nil)

type PaymentService struct {
	eventRepo        output.EventRepository
	registrationRepo output.RegistrationRepository
	paymentRepo      output.PaymentRepository
	gateway          output.PaymentGateway
	notifier         *NotificationService
	mails            *MailComposer
	tx               output.Transactor
	clock            clock.Clock
}

func NewPaymentService(
	eventRepo output.EventRepository,
	registrationRepo output.RegistrationRepository,
	paymentRepo output.PaymentRepository,
	gateway output.PaymentGateway,
	notifier *NotificationService,
	mails *MailComposer,
	tx output.Transactor,
	clk clock.Clock,
) *PaymentService {
	return &PaymentService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		paymentRepo:      paymentRepo,
		gateway:          gateway,
		notifier:         notifier,
		mails:            mails,
		tx:               tx,
		clock:            clk,
	}
}

// CreateOrder opens a gateway order for a paid event. The amount sent by
// the client must equal the stored event price.
func (s *PaymentService) CreateOrder(ctx context.Context, uid string, in input.CreateOrderInput) (*input.CheckoutOrder, error) {
	if in.EventID == "" || in.Amount <= 0 {
		return nil, domain.ErrAmountRequired
	}
	event, err := s.eventRepo.FindByID(ctx, in.EventID)
	if err != nil {
		return nil, err
	}
	if event.IsFree {
		return nil, domain.ErrPaymentNotRequired
	}
	if event.Price != in.Amount {
		return nil, domain.ErrPriceMismatch
	}
	existing, err := findRegistration(ctx, s.registrationRepo, event.ID, uid)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyRegistered
	}
	now := s.clock.Now()
	if err := checkOpen(ctx, s.registrationRepo, event, now); err != nil {
		return nil, err
	}

	receipt := fmt.Sprintf("receipt_event_%s_%d", event.ID, now.UnixMilli())
	order, err := s.gateway.CreateOrder(ctx, event.Price, domain.Currency, receipt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	payment := &entities.Payment{
		ID:             uuid.NewString(),
		UserID:         uid,
		EventID:        event.ID,
		Amount:         event.Price,
		Currency:       domain.Currency,
		Receipt:        receipt,
		GatewayOrderID: order.ID,
		Status:         domain.PaymentPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return &input.CheckoutOrder{Order: order, KeyID: s.gateway.KeyID()}, nil
}

// VerifyPayment checks the checkout signature and, when valid, confirms the
// payment and registers the payer. An order that was already confirmed
// returns its registration. An invalid signature marks a pending payment
// failed. A payment captured after the last seat was taken is flagged
// refund_pending and ErrEventFull is returned.
func (s *PaymentService) VerifyPayment(ctx context.Context, uid string, in input.VerifyPaymentInput) (*entities.Registration, error) {
	if in.OrderID == "" || in.PaymentID == "" || in.Signature == "" {
		return nil, domain.ErrMissingPaymentDetails
	}
	valid := s.gateway.VerifySignature(in.OrderID, in.PaymentID, in.Signature)

	var (
		event     *entities.Event
		reg       *entities.Registration
		confirmed bool
		full      bool
	)
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		payment, err := s.paymentRepo.FindByOrderIDForUpdate(ctx, in.OrderID)
		if err != nil {
			return err
		}
		if payment.UserID != uid {
			return domain.ErrPaymentNotFound
		}
		if !valid {
			if payment.Status == domain.PaymentSuccess || payment.Status == domain.PaymentRefundPending {
				return nil
			}
			return s.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentFailed, in.PaymentID)
		}
		if payment.Status == domain.PaymentSuccess {
			reg, err = s.registrationRepo.FindByEventIDAndUserID(ctx, payment.EventID, uid)
			return err
		}
		if payment.Status == domain.PaymentRefundPending {
			full = true
			return nil
		}
		if event, err = s.eventRepo.FindByIDForUpdate(ctx, payment.EventID); err != nil {
			return err
		}
		if reg, err = findRegistration(ctx, s.registrationRepo, payment.EventID, uid); err != nil {
			return err
		}
		if reg == nil {
			count, err := s.registrationRepo.CountConfirmed(ctx, event.ID)
			if err != nil {
				return fmt.Errorf("count registrations: %w", err)
			}
			if count >= event.Capacity {
				full = true
				if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentRefundPending, in.PaymentID); err != nil {
					return fmt.Errorf("flag payment for refund: %w", err)
				}
				return s.notifier.Notify(ctx, uid, domain.NotificationPayment, "notification.payment_refund", map[string]any{
					"Title":  event.Title,
					"Amount": money.FormatINR(payment.Amount),
				})
			}
		}
		if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentSuccess, in.PaymentID); err != nil {
			return fmt.Errorf("confirm payment: %w", err)
		}
		if reg == nil {
			reg = newRegistration(payment.EventID, uid, payment.ID, in.Contact, s.clock)
			if err := s.registrationRepo.Create(ctx, reg); err != nil {
				return fmt.Errorf("create registration: %w", err)
			}
		}
		confirmed = true
		return s.notifier.Notify(ctx, uid, domain.NotificationPayment, "notification.payment_success", map[string]any{
			"Title":  event.Title,
			"Amount": money.FormatINR(payment.Amount),
		})
	})
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, domain.ErrInvalidSignature
	}
	if full {
		return nil, domain.ErrEventFull
	}
	if confirmed {
		s.mails.RegistrationConfirmed(ctx, event, in.Contact)
	}
	return reg, nil
}
