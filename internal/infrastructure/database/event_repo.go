package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"revamp/internal/domain"
	"revamp/internal/domain/entities"
	"revamp/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

const eventColumns = `id, kind, title, description, banner_url, starts_at, duration_hours,
	location, meet_link, capacity, is_free, price, domains, target_years, colleges,
	send_reminders, reminder_sent_at, prerequisites, learning_outcomes, materials,
	recording_enabled, certificates_enabled, feedback_enabled, created_by, created_at, updated_at`

type EventRepository struct {
	querier
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{querier{pool: pool}}
}

func (r *EventRepository) Create(ctx context.Context, e *entities.Event) error {
	const stmt = `
INSERT INTO events (` + eventColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)`

	_, err := r.exec(ctx, stmt,
		e.ID, e.Kind, e.Title, e.Description, e.BannerURL, e.StartsAt, e.DurationHours,
		e.Location, e.MeetLink, e.Capacity, e.IsFree, e.Price,
		emptyIfNil(e.Domains), emptyIfNil(e.TargetYears), emptyIfNil(e.Colleges),
		e.SendReminders, nullTime(e.ReminderSentAt), e.Prerequisites, e.LearningOutcomes, emptyIfNil(e.Materials),
		e.RecordingEnabled, e.CertificatesEnabled, e.FeedbackEnabled, e.CreatedBy, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*entities.Event, error) {
	return r.findOne(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
}

func (r *EventRepository) FindByIDForUpdate(ctx context.Context, id string) (*entities.Event, error) {
	return r.findOne(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, id)
}

func (r *EventRepository) findOne(ctx context.Context, query, id string) (*entities.Event, error) {
	e, err := scanEvent(r.queryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find event: %w", err)
	}
	return e, nil
}

func (r *EventRepository) List(ctx context.Context, f output.EventFilter) ([]entities.Event, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Kind != "" {
		add("kind = $%d", f.Kind)
	}
	if f.Search != "" {
		add("(title ILIKE $%[1]d OR description ILIKE $%[1]d)", likePattern(f.Search))
	}
	if f.Domain != "" {
		add("$%d = ANY(domains)", f.Domain)
	}
	if !f.StartsFrom.IsZero() {
		add("starts_at >= $%d", f.StartsFrom)
	}
	if !f.StartsBefore.IsZero() {
		add("starts_at < $%d", f.StartsBefore)
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY starts_at DESC"
	return r.list(ctx, query, args...)
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// FindNeedingReminder returns opted-in events not yet reminded that start
// in (from, to].
func (r *EventRepository) FindNeedingReminder(ctx context.Context, from, to time.Time) ([]entities.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events
WHERE send_reminders AND reminder_sent_at IS NULL AND starts_at > $1 AND starts_at <= $2
ORDER BY starts_at`
	return r.list(ctx, query, from, to)
}

func (r *EventRepository) MarkReminderSent(ctx context.Context, id string, at time.Time) error {
	tag, err := r.exec(ctx, `UPDATE events SET reminder_sent_at = $2, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) list(ctx context.Context, query string, args ...any) ([]entities.Event, error) {
	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []entities.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func scanEvent(row pgx.Row) (*entities.Event, error) {
	var (
		e          entities.Event
		remindedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&e.ID, &e.Kind, &e.Title, &e.Description, &e.BannerURL, &e.StartsAt, &e.DurationHours,
		&e.Location, &e.MeetLink, &e.Capacity, &e.IsFree, &e.Price, &e.Domains, &e.TargetYears, &e.Colleges,
		&e.SendReminders, &remindedAt, &e.Prerequisites, &e.LearningOutcomes, &e.Materials,
		&e.RecordingEnabled, &e.CertificatesEnabled, &e.FeedbackEnabled, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.ReminderSentAt = timeOf(remindedAt)
	e.StartsAt = e.StartsAt.UTC()
	return &e, nil
}
