package application

import (
	"context"

	"github.com/google/uuid"

	"revamp/internal/clock"
	"revamp/internal/domain/entities"
	"revamp/internal/ports/input"
	"revamp/internal/ports/output"
)

var _ input.NotificationUseCase = (*NotificationService)(nil)

type NotificationService struct {
	notificationRepo output.NotificationRepository
	translator       output.T
	locale           string
	clock            clock.Clock
}

func NewNotificationService(
	notificationRepo output.NotificationRepository,
	translator output.T,
	locale string,
	clk clock.Clock,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		translator:       translator,
		locale:           locale,
		clock:            clk,
	}
}

// Notify stores a notification whose title and message are the
// translations of key+".title" and key+".message".
func (s *NotificationService) Notify(ctx context.Context, userID, typ, key string, data map[string]any) error {
	n := &entities.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     s.translator.T(s.locale, key+".title", data),
		Message:   s.translator.T(s.locale, key+".message", data),
		Type:      typ,
		CreatedAt: s.clock.Now(),
	}
	return s.notificationRepo.Create(ctx, n)
}

func (s *NotificationService) List(ctx context.Context, uid string) ([]entities.Notification, error) {
	return s.notificationRepo.ListByUserID(ctx, uid)
}

func (s *NotificationService) MarkRead(ctx context.Context, uid, id string) error {
	return s.notificationRepo.MarkRead(ctx, uid, id)
}
