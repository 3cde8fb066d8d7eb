package output

import (
	"context"
	"time"

	"revamp/internal/domain/entities"
)

// EventFilter narrows event listings. Zero values mean "no constraint".
type EventFilter struct {
	Kind         string
	Search       string // title or description, case-insensitive
	Domain       string
	StartsFrom   time.Time
	StartsBefore time.Time
}

type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, id string) (*entities.Event, error)
	// FindByIDForUpdate locks the event row for the current transaction.
	FindByIDForUpdate(ctx context.Context, id string) (*entities.Event, error)
	List(ctx context.Context, filter EventFilter) ([]entities.Event, error)
	Delete(ctx context.Context, id string) error
	FindNeedingReminder(ctx context.Context, from, to time.Time) ([]entities.Event, error)
	MarkReminderSent(ctx context.Context, id string, at time.Time) error
}
