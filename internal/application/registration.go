package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"revamp/internal/clock"
	"revamp/internal/domain"
	"revamp/internal/domain/entities"
	"revamp/internal/ports/input"
	"revamp/internal/ports/output"
)

var _ input.RegistrationUseCase = (*RegistrationService)(nil)

type RegistrationService struct {
	eventRepo        output.EventRepository
	registrationRepo output.RegistrationRepository
	notifier         *NotificationService
	mails            *MailComposer
	tx               output.Transactor
	clock            clock.Clock
}

func NewRegistrationService(
	eventRepo output.EventRepository,
	registrationRepo output.RegistrationRepository,
	notifier *NotificationService,
	mails *MailComposer,
	tx output.Transactor,
	clk clock.Clock,
) *RegistrationService {
	return &RegistrationService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		notifier:         notifier,
		mails:            mails,
		tx:               tx,
		clock:            clk,
	}
}

// RegisterFree registers uid for a free event. A repeated call returns the
// existing registration together with ErrAlreadyRegistered.
func (s *RegistrationService) RegisterFree(ctx context.Context, uid, eventID string, contact entities.Contact) (*entities.Registration, error) {
	var (
		event *entities.Event
		reg   *entities.Registration
	)
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		event, err = s.eventRepo.FindByIDForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if !event.IsFree {
			return domain.ErrPaymentRequired
		}
		existing, err := findRegistration(ctx, s.registrationRepo, eventID, uid)
		if err != nil {
			return err
		}
		if existing != nil {
			reg = existing
			return domain.ErrAlreadyRegistered
		}
		if err := checkOpen(ctx, s.registrationRepo, event, s.clock.Now()); err != nil {
			return err
		}
		reg = newRegistration(eventID, uid, "", contact, s.clock)
		if err := s.registrationRepo.Create(ctx, reg); err != nil {
			return err
		}
		return s.notifier.Notify(ctx, uid, domain.NotificationEvent, "notification.registered", map[string]any{
			"Title": event.Title,
		})
	})
	if errors.Is(err, domain.ErrAlreadyRegistered) {
		return reg, err
	}
	if err != nil {
		return nil, err
	}
	s.mails.RegistrationConfirmed(ctx, event, contact)
	return reg, nil
}

// checkOpen fails when the event has started or has no seat left.
func checkOpen(ctx context.Context, regs output.RegistrationRepository, event *entities.Event, now time.Time) error {
	if event.HasStarted(now) {
		return domain.ErrEventInPast
	}
	count, err := regs.CountConfirmed(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("count registrations: %w", err)
	}
	if count >= event.Capacity {
		return domain.ErrEventFull
	}
	return nil
}

// findRegistration returns nil, nil when uid is not registered.
func findRegistration(ctx context.Context, regs output.RegistrationRepository, eventID, uid string) (*entities.Registration, error) {
	reg, err := regs.FindByEventIDAndUserID(ctx, eventID, uid)
	if errors.Is(err, domain.ErrRegistrationNotFound) {
		return nil, nil
	}
	return reg, err
}

func newRegistration(eventID, uid, paymentID string, contact entities.Contact, clk clock.Clock) *entities.Registration {
	now := clk.Now()
	return &entities.Registration{
		ID:            uuid.NewString(),
		EventID:       eventID,
		UserID:        uid,
		PaymentID:     paymentID,
		PaymentStatus: domain.PaymentSuccess,
		Status:        domain.StatusRegistered,
		Contact:       contact,
		RegisteredAt:  now,
		UpdatedAt:     now,
	}
}
