package input

import (
	"context"

	"revamp/internal/domain/entities"
)

type NotificationUseCase interface {
	List(ctx context.Context, uid string) ([]entities.Notification, error)
	MarkRead(ctx context.Context, uid, id string) error
}

type AmbassadorUseCase interface {
	Apply(ctx context.Context, uid string, answers entities.ApplicationAnswers, video *Upload) (*entities.AmbassadorApplication, error)
	Review(ctx context.Context, id string, approve bool) (*entities.AmbassadorApplication, error)
}
