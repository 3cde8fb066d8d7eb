package http

import (
	"time"

	"revamp/internal/domain/entities"
	"revamp/internal/ports/input"
)

type userResponse struct {
	UID                string    `json:"uid"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	College            string    `json:"college"`
	Year               int       `json:"year"`
	PrimaryDomain      string    `json:"primaryDomain"`
	Domains            []string  `json:"domains"`
	Points             int       `json:"points"`
	Tier               string    `json:"tier"`
	Badges             []string  `json:"badges"`
	Streak             int       `json:"streak"`
	LastActive         time.Time `json:"lastActive"`
	Role               string    `json:"role"`
	VerificationStatus string    `json:"verificationStatus"`
	CollegeIDURL       string    `json:"collegeIdUrl,omitempty"`
	StudentIDNumber    string    `json:"studentIdNumber,omitempty"`
	PhotoURL           string    `json:"photoURL,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

func newUserResponse(u *entities.User) userResponse {
	return userResponse{
		UID:                u.UID,
		Email:              u.Email,
		Name:               u.Name,
		College:            u.College,
		Year:               u.Year,
		PrimaryDomain:      u.PrimaryDomain,
		Domains:            orEmpty(u.Domains),
		Points:             u.Points,
		Tier:               string(u.Tier),
		Badges:             orEmpty(u.Badges),
		Streak:             u.Streak,
		LastActive:         u.LastActiveAt,
		Role:               u.Role,
		VerificationStatus: u.VerificationStatus,
		CollegeIDURL:       u.CollegeIDURL,
		StudentIDNumber:    u.StudentIDNumber,
		PhotoURL:           u.PhotoURL,
		CreatedAt:          u.CreatedAt,
	}
}

type eventResponse struct {
	ID             string              `json:"id"`
	Kind           string              `json:"kind"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	BannerURL      string              `json:"bannerUrl,omitempty"`
	StartsAt       time.Time           `json:"startsAt"`
	Date           string              `json:"date"`
	Time           string              `json:"time"`
	DurationHours  float64             `json:"duration,omitempty"`
	Location       string              `json:"location"`
	MeetLink       string              `json:"meetLink,omitempty"`
	Capacity       int                 `json:"capacity"`
	IsFree         bool                `json:"isFree"`
	Price          int64               `json:"price"`
	Domains        []string            `json:"domains"`
	TargetYears    []int               `json:"targetYears"`
	Colleges       []string            `json:"colleges"`
	SendReminders  bool                `json:"sendReminders"`
	Prerequisites  string              `json:"prerequisites,omitempty"`
	Outcomes       string              `json:"learningOutcomes,omitempty"`
	Materials      []entities.Material `json:"materials,omitempty"`
	Recording      bool                `json:"recordingEnabled,omitempty"`
	Certificates   bool                `json:"certificatesEnabled,omitempty"`
	Feedback       bool                `json:"feedbackEnabled,omitempty"`
	CreatedBy      string              `json:"createdBy"`
	CreatedAt      time.Time           `json:"createdAt"`
	ReminderSentAt *time.Time          `json:"reminderSentAt,omitempty"`
}

func newEventResponse(e *entities.Event, loc *time.Location) eventResponse {
	local := e.StartsAt.In(loc)
	resp := eventResponse{
		ID:            e.ID,
		Kind:          e.Kind,
		Title:         e.Title,
		Description:   e.Description,
		BannerURL:     e.BannerURL,
		StartsAt:      e.StartsAt,
		Date:          local.Format("2006-01-02"),
		Time:          local.Format("15:04"),
		DurationHours: e.DurationHours,
		Location:      e.Location,
		MeetLink:      e.MeetLink,
		Capacity:      e.Capacity,
		IsFree:        e.IsFree,
		Price:         e.Price,
		Domains:       orEmpty(e.Domains),
		TargetYears:   orEmpty(e.TargetYears),
		Colleges:      orEmpty(e.Colleges),
		SendReminders: e.SendReminders,
		CreatedBy:     e.CreatedBy,
		CreatedAt:     e.CreatedAt,
	}
	if e.IsWorkshop() {
		resp.Prerequisites = e.Prerequisites
		resp.Outcomes = e.LearningOutcomes
		resp.Materials = orEmpty(e.Materials)
		resp.Recording = e.RecordingEnabled
		resp.Certificates = e.CertificatesEnabled
		resp.Feedback = e.FeedbackEnabled
	}
	if e.IsReminded() {
		at := e.ReminderSentAt
		resp.ReminderSentAt = &at
	}
	return resp
}

func newEventsResponse(events []entities.Event, loc *time.Location) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for i := range events {
		out = append(out, newEventResponse(&events[i], loc))
	}
	return out
}

type registrationResponse struct {
	ID            string           `json:"id"`
	EventID       string           `json:"eventId"`
	UserID        string           `json:"userId"`
	PaymentID     string           `json:"paymentId,omitempty"`
	PaymentStatus string           `json:"paymentStatus"`
	Status        string           `json:"status"`
	Contact       entities.Contact `json:"contact"`
	RegisteredAt  time.Time        `json:"registeredAt"`
}

func newRegistrationResponse(r *entities.Registration) registrationResponse {
	return registrationResponse{
		ID:            r.ID,
		EventID:       r.EventID,
		UserID:        r.UserID,
		PaymentID:     r.PaymentID,
		PaymentStatus: r.PaymentStatus,
		Status:        r.Status,
		Contact:       r.Contact,
		RegisteredAt:  r.RegisteredAt,
	}
}

type registrationWithEventResponse struct {
	registrationResponse
	Event         eventResponse `json:"event"`
	DisplayStatus string        `json:"displayStatus,omitempty"`
}

func newRegistrationsWithEvent(regs []entities.RegistrationWithEvent, loc *time.Location) []registrationWithEventResponse {
	out := make([]registrationWithEventResponse, 0, len(regs))
	for i := range regs {
		out = append(out, registrationWithEventResponse{
			registrationResponse: newRegistrationResponse(&regs[i].Registration),
			Event:                newEventResponse(&regs[i].Event, loc),
		})
	}
	return out
}

func newMyRegistrations(regs []input.MyRegistration, loc *time.Location) []registrationWithEventResponse {
	out := make([]registrationWithEventResponse, 0, len(regs))
	for i := range regs {
		out = append(out, registrationWithEventResponse{
			registrationResponse: newRegistrationResponse(&regs[i].Registration),
			Event:                newEventResponse(&regs[i].Event, loc),
			DisplayStatus:        regs[i].DisplayStatus,
		})
	}
	return out
}

type attendeeResponse struct {
	registrationResponse
	UserName     string `json:"userName"`
	UserEmail    string `json:"userEmail"`
	UserPhotoURL string `json:"userPhotoURL,omitempty"`
}

func newAttendeesResponse(attendees []entities.Attendee) []attendeeResponse {
	out := make([]attendeeResponse, 0, len(attendees))
	for i := range attendees {
		out = append(out, attendeeResponse{
			registrationResponse: newRegistrationResponse(&attendees[i].Registration),
			UserName:             attendees[i].UserName,
			UserEmail:            attendees[i].UserEmail,
			UserPhotoURL:         attendees[i].UserPhotoURL,
		})
	}
	return out
}

type notificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func newNotificationsResponse(ns []entities.Notification) []notificationResponse {
	out := make([]notificationResponse, 0, len(ns))
	for _, n := range ns {
		out = append(out, notificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      n.Type,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}

type applicationResponse struct {
	ID         string                      `json:"id"`
	UserID     string                      `json:"userId"`
	Answers    entities.ApplicationAnswers `json:"answers"`
	VideoURL   string                      `json:"videoUrl,omitempty"`
	Status     string                      `json:"status"`
	AppliedAt  time.Time                   `json:"appliedAt"`
	ReviewedAt *time.Time                  `json:"reviewedAt,omitempty"`
}

func newApplicationResponse(a *entities.AmbassadorApplication) *applicationResponse {
	if a == nil {
		return nil
	}
	resp := &applicationResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Answers:   a.Answers,
		VideoURL:  a.VideoURL,
		Status:    a.Status,
		AppliedAt: a.AppliedAt,
	}
	if !a.ReviewedAt.IsZero() {
		at := a.ReviewedAt
		resp.ReviewedAt = &at
	}
	return resp
}

type userDetailResponse struct {
	User        userResponse                    `json:"user"`
	Events      []registrationWithEventResponse `json:"events"`
	Workshops   []registrationWithEventResponse `json:"workshops"`
	Application *applicationResponse            `json:"ambassadorApplication"`
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
