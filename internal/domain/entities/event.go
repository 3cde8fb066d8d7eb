package entities

import (
	"time"

	"revamp/internal/domain"
)

// Material is a resource attached to a workshop.
type Material struct {
	Title string `json:"title" validate:"required"`
	URL   string `json:"url" validate:"required,url"`
	Type  string `json:"type" validate:"required,oneof=slides code document video other"`
}

// Event is a scheduled activity students can register for. Workshops are
// events of kind "workshop" and use the workshop-only fields.
type Event struct {
	ID             string
	Kind           string
	Title          string
	Description    string
	BannerURL      string
	StartsAt       time.Time
	DurationHours  float64
	Location       string
	MeetLink       string
	Capacity       int
	IsFree         bool
	Price          int64 // paise
	Domains        []string
	TargetYears    []int
	Colleges       []string
	SendReminders  bool
	ReminderSentAt time.Time

	// workshop only
	Prerequisites       string
	LearningOutcomes    string
	Materials           []Material
	RecordingEnabled    bool
	CertificatesEnabled bool
	FeedbackEnabled     bool

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *Event) IsWorkshop() bool {
	return e.Kind == domain.KindWorkshop
}

// HasStarted reports whether the event start is at or before now.
func (e *Event) HasStarted(now time.Time) bool {
	return !e.StartsAt.After(now)
}

func (e *Event) IsReminded() bool {
	return !e.ReminderSentAt.IsZero()
}
