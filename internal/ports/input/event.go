package input

import (
	"context"

	"revamp/internal/domain/entities"
)

// CreateEventInput is the admin event/workshop form. Date and Time are
// interpreted in the platform time zone.
type CreateEventInput struct {
	Kind          string   `json:"kind" validate:"required,oneof=event workshop"`
	Title         string   `json:"title" validate:"required,min=5"`
	Description   string   `json:"description" validate:"required,min=20"`
	Date          string   `json:"date" validate:"required"`
	Time          string   `json:"time" validate:"required"`
	DurationHours float64  `json:"duration" validate:"omitempty,gt=0"`
	Location      string   `json:"location" validate:"required"`
	MeetLink      string   `json:"meetLink" validate:"omitempty,url"`
	Capacity      int      `json:"capacity" validate:"required,min=1"`
	IsFree        bool     `json:"isFree"`
	Price         int64    `json:"price" validate:"min=0"`
	Domains       []string `json:"domains"`
	TargetYears   []int    `json:"targetYears" validate:"dive,min=1,max=5"`
	Colleges      []string `json:"colleges"`
	SendReminders bool     `json:"sendReminders"`

	Prerequisites       string              `json:"prerequisites"`
	LearningOutcomes    string              `json:"learningOutcomes"`
	Materials           []entities.Material `json:"materials" validate:"dive"`
	RecordingEnabled    bool                `json:"recordingEnabled"`
	CertificatesEnabled bool                `json:"certificatesEnabled"`
	FeedbackEnabled     bool                `json:"feedbackEnabled"`
}

// EventQuery filters event listings. Date is YYYY-MM-DD; Status is
// upcoming, past or all.
type EventQuery struct {
	Kind   string
	Search string
	Date   string
	Status string
	Domain string
}

type AttendeeQuery struct {
	Search string
	Status string
}

// MyRegistration is a registration as shown on the student dashboard.
type MyRegistration struct {
	entities.RegistrationWithEvent
	DisplayStatus string
}

type EventUseCase interface {
	CreateEvent(ctx context.Context, adminUID string, in CreateEventInput, banner *Upload) (*entities.Event, error)
	GetEvent(ctx context.Context, id string) (*entities.Event, error)
	ListEvents(ctx context.Context, q EventQuery) ([]entities.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	ListAttendees(ctx context.Context, eventID string, q AttendeeQuery) ([]entities.Attendee, error)
	ExportAttendeesCSV(ctx context.Context, eventID string, q AttendeeQuery) ([]byte, error)
	MarkAttendance(ctx context.Context, eventID string, registrationIDs []string, status string) (int, error)
	MyRegistrations(ctx context.Context, uid string) ([]MyRegistration, error)
}
