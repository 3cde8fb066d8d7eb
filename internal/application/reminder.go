package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"revamp/internal/clock"
	"revamp/internal/domain"
	"revamp/internal/ports/output"
)

// ReminderWindow is how long before an event its registrants are reminded.
const ReminderWindow = 24 * time.Hour

type ReminderService struct {
	eventRepo        output.EventRepository
	registrationRepo output.RegistrationRepository
	notifier         *NotificationService
	mails            *MailComposer
	clock            clock.Clock
	logger           *zap.Logger
}

func NewReminderService(
	eventRepo output.EventRepository,
	registrationRepo output.RegistrationRepository,
	notifier *NotificationService,
	mails *MailComposer,
	clk clock.Clock,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		notifier:         notifier,
		mails:            mails,
		clock:            clk,
		logger:           logger,
	}
}

// SendDueReminders reminds registrants of events starting within
// ReminderWindow and returns how many events were processed. Each event is
// reminded once.
func (s *ReminderService) SendDueReminders(ctx context.Context) (int, error) {
	now := s.clock.Now()
	events, err := s.eventRepo.FindNeedingReminder(ctx, now, now.Add(ReminderWindow))
	if err != nil {
		return 0, fmt.Errorf("find events: %w", err)
	}
	sent := 0
	for i := range events {
		event := &events[i]
		attendees, err := s.registrationRepo.ListAttendees(ctx, event.ID, output.AttendeeFilter{})
		if err != nil {
			return sent, fmt.Errorf("list attendees %s: %w", event.ID, err)
		}
		for _, a := range attendees {
			if !a.IsConfirmed() {
				continue
			}
			name, email := a.UserName, a.UserEmail
			if email == "" {
				name, email = a.Contact.Name, a.Contact.Email
			}
			s.mails.EventReminder(ctx, event, name, email)
			err := s.notifier.Notify(ctx, a.UserID, domain.NotificationEvent, "notification.reminder", map[string]any{
				"Title": event.Title,
			})
			if err != nil {
				s.logger.Warn("reminder notification failed",
					zap.String("event_id", event.ID), zap.String("user_id", a.UserID), zap.Error(err))
			}
		}
		if err := s.eventRepo.MarkReminderSent(ctx, event.ID, now); err != nil {
			return sent, fmt.Errorf("mark reminded %s: %w", event.ID, err)
		}
		s.logger.Info("event reminder sent", zap.String("event_id", event.ID), zap.Int("attendees", len(attendees)))
		sent++
	}
	return sent, nil
}
