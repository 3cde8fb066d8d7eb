package application

import (
	"context"
	"net/mail"
	"time"

	"go.uber.org/zap"

	"revamp/internal/domain/entities"
	"revamp/internal/ports/output"
	"revamp/pkg/datetime"
	"revamp/pkg/money"
)

// MailComposer renders transactional emails from translations and sends
// them. Delivery failures are logged, never returned.
type MailComposer struct {
	mailer     output.Mailer
	translator output.T
	locale     string
	loc        *time.Location
	logger     *zap.Logger
}

func NewMailComposer(mailer output.Mailer, translator output.T, locale string, loc *time.Location, logger *zap.Logger) *MailComposer {
	return &MailComposer{
		mailer:     mailer,
		translator: translator,
		locale:     locale,
		loc:        loc,
		logger:     logger,
	}
}

func (m *MailComposer) RegistrationConfirmed(ctx context.Context, event *entities.Event, contact entities.Contact) {
	data := m.eventData(event, contact.Name)
	m.send(ctx, "email.registration_confirmed", contact.Name, contact.Email, data)
}

func (m *MailComposer) EventReminder(ctx context.Context, event *entities.Event, name, email string) {
	data := m.eventData(event, name)
	m.send(ctx, "email.event_reminder", name, email, data)
}

func (m *MailComposer) eventData(event *entities.Event, name string) map[string]any {
	data := map[string]any{
		"Name":     name,
		"Title":    event.Title,
		"When":     datetime.Format(event.StartsAt, m.loc),
		"Location": event.Location,
		"MeetLink": event.MeetLink,
		"Price":    "",
	}
	if !event.IsFree {
		data["Price"] = money.FormatINR(event.Price)
	}
	return data
}

func (m *MailComposer) send(ctx context.Context, key, name, address string, data map[string]any) {
	if address == "" {
		return
	}
	msg := output.Email{
		To:      []mail.Address{{Name: name, Address: address}},
		Subject: m.translator.T(m.locale, key+".subject", data),
		Text:    m.translator.T(m.locale, key+".body", data),
	}
	if err := m.mailer.Send(ctx, msg); err != nil {
		m.logger.Warn("send email failed", zap.String("template", key), zap.String("to", address), zap.Error(err))
	}
}
