package output

import (
	"context"

	"revamp/internal/domain"
	"revamp/internal/domain/entities"
)

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByUID(ctx context.Context, uid string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	List(ctx context.Context, search string) ([]entities.User, error)
	// AddPoints atomically adds delta and returns the new total.
	AddPoints(ctx context.Context, uid string, delta int) (int, error)
	SetPoints(ctx context.Context, uid string, points int) error
	SetTier(ctx context.Context, uid string, tier domain.Tier) error
	// AddBadge appends badge once and reports whether it was added.
	AddBadge(ctx context.Context, uid, badge string) (bool, error)
}
