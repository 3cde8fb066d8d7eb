package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"revamp/internal/domain"
	"revamp/internal/domain/entities"
	"revamp/internal/ports/output"
)

var _ output.AmbassadorRepository = (*AmbassadorRepository)(nil)

const applicationColumns = `id, user_id, answers, video_url, status, applied_at, reviewed_at`

type AmbassadorRepository struct {
	querier
}

func NewAmbassadorRepository(pool *pgxpool.Pool) *AmbassadorRepository {
	return &AmbassadorRepository{querier{pool: pool}}
}

func (r *AmbassadorRepository) Create(ctx context.Context, a *entities.AmbassadorApplication) error {
	_, err := r.exec(ctx, `
INSERT INTO ambassador_applications (`+applicationColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.UserID, a.Answers, a.VideoURL, a.Status, a.AppliedAt, nullTime(a.ReviewedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrApplicationExists
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (r *AmbassadorRepository) FindByID(ctx context.Context, id string) (*entities.AmbassadorApplication, error) {
	return r.findOne(ctx, `SELECT `+applicationColumns+` FROM ambassador_applications WHERE id = $1`, id)
}

func (r *AmbassadorRepository) FindLatestByUserID(ctx context.Context, userID string) (*entities.AmbassadorApplication, error) {
	return r.findOne(ctx, `SELECT `+applicationColumns+` FROM ambassador_applications
WHERE user_id = $1 ORDER BY applied_at DESC LIMIT 1`, userID)
}

func (r *AmbassadorRepository) UpdateStatus(ctx context.Context, id, status string, reviewedAt time.Time) error {
	tag, err := r.exec(ctx,
		`UPDATE ambassador_applications SET status = $2, reviewed_at = $3 WHERE id = $1`,
		id, status, nullTime(reviewedAt))
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}

func (r *AmbassadorRepository) findOne(ctx context.Context, query, arg string) (*entities.AmbassadorApplication, error) {
	var (
		a          entities.AmbassadorApplication
		reviewedAt pgtype.Timestamptz
	)
	err := r.queryRow(ctx, query, arg).Scan(
		&a.ID, &a.UserID, &a.Answers, &a.VideoURL, &a.Status, &a.AppliedAt, &reviewedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find application: %w", err)
	}
	a.ReviewedAt = timeOf(reviewedAt)
	return &a, nil
}
