package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"revamp/internal/domain"
	"revamp/internal/domain/entities"
	"revamp/internal/ports/output"
)

var _ output.RegistrationRepository = (*RegistrationRepository)(nil)

const registrationColumns = `r.id, r.event_id, r.user_id, r.payment_id, r.payment_status, r.status,
	r.contact, r.points_awarded, r.registered_at, r.updated_at`

type RegistrationRepository struct {
	querier
}

func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{querier{pool: pool}}
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *entities.Registration) error {
	const stmt = `
INSERT INTO registrations (id, event_id, user_id, payment_id, payment_status, status,
                           contact, points_awarded, registered_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.exec(ctx, stmt,
		reg.ID, reg.EventID, reg.UserID, reg.PaymentID, reg.PaymentStatus, reg.Status,
		reg.Contact, reg.PointsAwarded, reg.RegisteredAt, reg.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id string) (*entities.Registration, error) {
	return r.findOne(ctx, `SELECT `+registrationColumns+` FROM registrations r WHERE r.id = $1`, id)
}

func (r *RegistrationRepository) FindByEventIDAndUserID(ctx context.Context, eventID, userID string) (*entities.Registration, error) {
	return r.findOne(ctx,
		`SELECT `+registrationColumns+` FROM registrations r WHERE r.event_id = $1 AND r.user_id = $2`,
		eventID, userID)
}

func (r *RegistrationRepository) findOne(ctx context.Context, query string, args ...any) (*entities.Registration, error) {
	var reg entities.Registration
	err := r.queryRow(ctx, query, args...).Scan(registrationDest(&reg)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return &reg, nil
}

func (r *RegistrationRepository) CountConfirmed(ctx context.Context, eventID string) (int, error) {
	var n int
	err := r.queryRow(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND payment_status = $2`,
		eventID, domain.PaymentSuccess,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

// ListAttendees joins registrations with user profiles, newest first.
// Registrants without a profile keep empty user fields.
func (r *RegistrationRepository) ListAttendees(ctx context.Context, eventID string, f output.AttendeeFilter) ([]entities.Attendee, error) {
	query := `
SELECT ` + registrationColumns + `, COALESCE(u.name, ''), COALESCE(u.email, ''), COALESCE(u.photo_url, '')
FROM registrations r
LEFT JOIN users u ON u.uid = r.user_id
WHERE r.event_id = $1`
	args := []any{eventID}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, likePattern(f.Search))
		query += fmt.Sprintf(` AND (u.name ILIKE $%[1]d OR u.email ILIKE $%[1]d
	OR r.contact->>'name' ILIKE $%[1]d OR r.contact->>'email' ILIKE $%[1]d)`, len(args))
	}
	query += " ORDER BY r.registered_at DESC"

	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	defer rows.Close()

	attendees := []entities.Attendee{}
	for rows.Next() {
		var a entities.Attendee
		dest := append(registrationDest(&a.Registration), &a.UserName, &a.UserEmail, &a.UserPhotoURL)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan attendee: %w", err)
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}

func (r *RegistrationRepository) ListByUserID(ctx context.Context, userID string) ([]entities.RegistrationWithEvent, error) {
	query := `
SELECT ` + registrationColumns + `, ` + prefixed("e", eventColumns) + `
FROM registrations r
JOIN events e ON e.id = r.event_id
WHERE r.user_id = $1
ORDER BY e.starts_at DESC`

	rows, err := r.query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list user registrations: %w", err)
	}
	defer rows.Close()

	out := []entities.RegistrationWithEvent{}
	for rows.Next() {
		var (
			item       entities.RegistrationWithEvent
			remindedAt pgtype.Timestamptz
		)
		e := &item.Event
		dest := append(registrationDest(&item.Registration),
			&e.ID, &e.Kind, &e.Title, &e.Description, &e.BannerURL, &e.StartsAt, &e.DurationHours,
			&e.Location, &e.MeetLink, &e.Capacity, &e.IsFree, &e.Price, &e.Domains, &e.TargetYears, &e.Colleges,
			&e.SendReminders, &remindedAt, &e.Prerequisites, &e.LearningOutcomes, &e.Materials,
			&e.RecordingEnabled, &e.CertificatesEnabled, &e.FeedbackEnabled, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan user registration: %w", err)
		}
		e.ReminderSentAt = timeOf(remindedAt)
		e.StartsAt = e.StartsAt.UTC()
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *RegistrationRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.exec(ctx, `UPDATE registrations SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update registration status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRegistrationNotFound
	}
	return nil
}

func (r *RegistrationRepository) MarkPointsAwarded(ctx context.Context, id string) (bool, error) {
	tag, err := r.exec(ctx,
		`UPDATE registrations SET points_awarded = TRUE WHERE id = $1 AND NOT points_awarded`, id)
	if err != nil {
		return false, fmt.Errorf("mark points awarded: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func registrationDest(reg *entities.Registration) []any {
	return []any{
		&reg.ID, &reg.EventID, &reg.UserID, &reg.PaymentID, &reg.PaymentStatus, &reg.Status,
		&reg.Contact, &reg.PointsAwarded, &reg.RegisteredAt, &reg.UpdatedAt,
	}
}

// prefixed qualifies every column of a column list with alias.
func prefixed(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
