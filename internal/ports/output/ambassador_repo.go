package output

import (
	"context"
	"time"

	"revamp/internal/domain/entities"
)

type AmbassadorRepository interface {
	Create(ctx context.Context, app *entities.AmbassadorApplication) error
	FindByID(ctx context.Context, id string) (*entities.AmbassadorApplication, error)
	// FindLatestByUserID returns the user's most recent application.
	FindLatestByUserID(ctx context.Context, userID string) (*entities.AmbassadorApplication, error)
	UpdateStatus(ctx context.Context, id, status string, reviewedAt time.Time) error
}
