package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"revamp/internal/domain"
	"revamp/internal/domain/entities"
	"revamp/internal/ports/output"
)

var _ output.NotificationRepository = (*NotificationRepository)(nil)

// notificationLimit caps how many notifications a listing returns.
const notificationLimit = 100

type NotificationRepository struct {
	querier
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{querier{pool: pool}}
}

func (r *NotificationRepository) Create(ctx context.Context, n *entities.Notification) error {
	_, err := r.exec(ctx, `
INSERT INTO notifications (id, user_id, title, message, type, read, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.UserID, n.Title, n.Message, n.Type, n.Read, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Notification, error) {
	rows, err := r.query(ctx, `
SELECT id, user_id, title, message, type, read, created_at
FROM notifications
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`, userID, notificationLimit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	out := []entities.Notification{}
	for rows.Next() {
		var n entities.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	tag, err := r.exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}
