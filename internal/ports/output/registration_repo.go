package output

import (
	"context"

	"revamp/internal/domain/entities"
)

type AttendeeFilter struct {
	Search string // user name or email, case-insensitive
	Status string
}

type RegistrationRepository interface {
	Create(ctx context.Context, registration *entities.Registration) error
	FindByID(ctx context.Context, id string) (*entities.Registration, error)
	FindByEventIDAndUserID(ctx context.Context, eventID, userID string) (*entities.Registration, error)
	CountConfirmed(ctx context.Context, eventID string) (int, error)
	ListAttendees(ctx context.Context, eventID string, filter AttendeeFilter) ([]entities.Attendee, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.RegistrationWithEvent, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// MarkPointsAwarded flags the registration and reports whether this
	// call was the one that set the flag.
	MarkPointsAwarded(ctx context.Context, id string) (bool, error)
}
