package entities

import (
	"time"

	"revamp/internal/domain"
)

// Contact is what a student fills in the registration form.
type Contact struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Organization string `json:"organization,omitempty"`
	Year         string `json:"year,omitempty"`
}

// Registration links a user to an event or workshop.
type Registration struct {
	ID            string
	EventID       string
	UserID        string
	PaymentID     string
	PaymentStatus string
	Status        string
	Contact       Contact
	// PointsAwarded is set once attendance points were credited.
	PointsAwarded bool
	RegisteredAt  time.Time
	UpdatedAt     time.Time
}

func (r *Registration) IsConfirmed() bool {
	return r.PaymentStatus == domain.PaymentSuccess
}

// DisplayStatus is the status shown on a student's dashboard.
func (r *Registration) DisplayStatus(event *Event, now time.Time) string {
	if r.Status == domain.StatusAttended {
		return domain.StatusAttended
	}
	if event != nil && event.HasStarted(now) {
		return domain.StatusNotAttended
	}
	return domain.StatusRegistered
}

// Attendee is a registration joined with the registrant's profile.
type Attendee struct {
	Registration
	UserName     string
	UserEmail    string
	UserPhotoURL string
}

// RegistrationWithEvent is a registration joined with its event.
type RegistrationWithEvent struct {
	Registration
	Event Event
}
