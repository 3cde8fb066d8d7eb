package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"revamp/internal/domain"
	"revamp/internal/domain/entities"
	"revamp/internal/ports/output"
)

var _ output.UserRepository = (*UserRepository)(nil)

const userColumns = `uid, email, name, college, year, primary_domain, domains, points, tier, badges,
	streak, last_active_at, role, verification_status, college_id_url, student_id_number, photo_url,
	created_at, updated_at`

type UserRepository struct {
	querier
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{querier{pool: pool}}
}

func (r *UserRepository) Create(ctx context.Context, u *entities.User) error {
	const stmt = `
INSERT INTO users (` + userColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err := r.exec(ctx, stmt,
		u.UID, u.Email, u.Name, u.College, u.Year, u.PrimaryDomain, emptyIfNil(u.Domains), u.Points,
		string(u.Tier), emptyIfNil(u.Badges), u.Streak, nullTime(u.LastActiveAt), u.Role,
		u.VerificationStatus, u.CollegeIDURL, u.StudentIDNumber, u.PhotoURL, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProfileExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByUID(ctx context.Context, uid string) (*entities.User, error) {
	u, err := scanUser(r.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE uid = $1`, uid))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

// Update writes profile, role and verification fields. Points, tier and
// badges have their own atomic setters.
func (r *UserRepository) Update(ctx context.Context, u *entities.User) error {
	const stmt = `
UPDATE users SET
    name = $2, college = $3, year = $4, primary_domain = $5, domains = $6, streak = $7,
    last_active_at = $8, role = $9, verification_status = $10, college_id_url = $11,
    student_id_number = $12, photo_url = $13, updated_at = $14
WHERE uid = $1`

	tag, err := r.exec(ctx, stmt,
		u.UID, u.Name, u.College, u.Year, u.PrimaryDomain, emptyIfNil(u.Domains), u.Streak,
		nullTime(u.LastActiveAt), u.Role, u.VerificationStatus, u.CollegeIDURL,
		u.StudentIDNumber, u.PhotoURL, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List returns users matching search on name, email or college, newest first.
func (r *UserRepository) List(ctx context.Context, search string) ([]entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	var args []any
	if search != "" {
		args = append(args, likePattern(search))
		query += ` WHERE name ILIKE $1 OR email ILIKE $1 OR college ILIKE $1`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []entities.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) AddPoints(ctx context.Context, uid string, delta int) (int, error) {
	var total int
	err := r.queryRow(ctx,
		`UPDATE users SET points = points + $2, updated_at = NOW() WHERE uid = $1 RETURNING points`,
		uid, delta,
	).Scan(&total)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("add points: %w", err)
	}
	return total, nil
}

func (r *UserRepository) SetPoints(ctx context.Context, uid string, points int) error {
	return r.update(ctx, `UPDATE users SET points = $2, updated_at = NOW() WHERE uid = $1`, uid, points)
}

func (r *UserRepository) SetTier(ctx context.Context, uid string, tier domain.Tier) error {
	return r.update(ctx, `UPDATE users SET tier = $2, updated_at = NOW() WHERE uid = $1`, uid, string(tier))
}

func (r *UserRepository) AddBadge(ctx context.Context, uid, badge string) (bool, error) {
	tag, err := r.exec(ctx, `
UPDATE users SET badges = array_append(badges, $2), updated_at = NOW()
WHERE uid = $1 AND NOT ($2 = ANY(badges))`, uid, badge)
	if err != nil {
		return false, fmt.Errorf("add badge: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	if _, err := r.FindByUID(ctx, uid); err != nil {
		return false, err
	}
	return false, nil
}

func (r *UserRepository) update(ctx context.Context, stmt string, args ...any) error {
	tag, err := r.exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var (
		u          entities.User
		tier       string
		lastActive pgtype.Timestamptz
	)
	err := row.Scan(
		&u.UID, &u.Email, &u.Name, &u.College, &u.Year, &u.PrimaryDomain, &u.Domains, &u.Points, &tier, &u.Badges,
		&u.Streak, &lastActive, &u.Role, &u.VerificationStatus, &u.CollegeIDURL, &u.StudentIDNumber, &u.PhotoURL,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Tier = domain.Tier(tier)
	u.LastActiveAt = timeOf(lastActive)
	return &u, nil
}
