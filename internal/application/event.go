package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"revamp/internal/clock"
	"revamp/internal/domain"
	"revamp/internal/domain/entities"
	"revamp/internal/ports/input"
	"revamp/internal/ports/output"
	"revamp/pkg/datetime"
)

var _ input.EventUseCase = (*EventService)(nil)

type EventService struct {
	eventRepo        output.EventRepository
	registrationRepo output.RegistrationRepository
	storage          output.FileStorage
	announcer        output.Announcer
	gamification     *GamificationService
	tx               output.Transactor
	clock            clock.Clock
	loc              *time.Location
	logger           *zap.Logger
}

// NewEventService builds the service. announcer may be nil.
func NewEventService(
	eventRepo output.EventRepository,
	registrationRepo output.RegistrationRepository,
	storage output.FileStorage,
	announcer output.Announcer,
	gamification *GamificationService,
	tx output.Transactor,
	clk clock.Clock,
	loc *time.Location,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		storage:          storage,
		announcer:        announcer,
		gamification:     gamification,
		tx:               tx,
		clock:            clk,
		loc:              loc,
		logger:           logger,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, adminUID string, in input.CreateEventInput, banner *input.Upload) (*entities.Event, error) {
	if !domain.IsValidKind(in.Kind) {
		return nil, domain.ErrInvalidEventKind
	}
	if (in.IsFree && in.Price != 0) || (!in.IsFree && in.Price <= 0) {
		return nil, domain.ErrInvalidPrice
	}
	if in.Kind == domain.KindWorkshop {
		for _, m := range in.Materials {
			if strings.TrimSpace(m.Title) == "" || strings.TrimSpace(m.URL) == "" || !domain.IsValidMaterialType(m.Type) {
				return nil, domain.ErrInvalidMaterial
			}
		}
	}
	startsAt, err := datetime.Parse(in.Date, in.Time, s.loc)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	if !startsAt.After(now) {
		return nil, domain.ErrDateTimeInPast
	}
	if banner != nil {
		if err := validateUpload(*banner, bannerTypes, maxImageSize); err != nil {
			return nil, err
		}
	}

	event := &entities.Event{
		ID:            uuid.NewString(),
		Kind:          in.Kind,
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		StartsAt:      startsAt.UTC(),
		DurationHours: in.DurationHours,
		Location:      strings.TrimSpace(in.Location),
		MeetLink:      in.MeetLink,
		Capacity:      in.Capacity,
		IsFree:        in.IsFree,
		Price:         in.Price,
		Domains:       nonNil(in.Domains),
		TargetYears:   nonNil(in.TargetYears),
		Colleges:      nonNil(in.Colleges),
		SendReminders: in.SendReminders,
		Materials:     []entities.Material{},
		CreatedBy:     adminUID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if event.IsWorkshop() {
		event.Prerequisites = in.Prerequisites
		event.LearningOutcomes = in.LearningOutcomes
		event.Materials = nonNil(in.Materials)
		event.RecordingEnabled = in.RecordingEnabled
		event.CertificatesEnabled = in.CertificatesEnabled
		event.FeedbackEnabled = in.FeedbackEnabled
	}
	var stored *storedObject
	if banner != nil {
		prefix := "event-banners"
		if event.IsWorkshop() {
			prefix = "workshop-banners"
		}
		if stored, err = store(ctx, s.storage, prefix, event.ID, *banner); err != nil {
			return nil, err
		}
		event.BannerURL = stored.URL
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, stored.discard(ctx, fmt.Errorf("create event: %w", err))
	}
	if s.announcer != nil {
		if err := s.announcer.AnnounceEvent(ctx, event); err != nil {
			s.logger.Warn("announce event failed", zap.String("event_id", event.ID), zap.Error(err))
		}
	}
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*entities.Event, error) {
	return s.eventRepo.FindByID(ctx, id)
}

func (s *EventService) ListEvents(ctx context.Context, q input.EventQuery) ([]entities.Event, error) {
	filter := output.EventFilter{
		Kind:   q.Kind,
		Search: strings.TrimSpace(q.Search),
		Domain: q.Domain,
	}
	if filter.Kind != "" && !domain.IsValidKind(filter.Kind) {
		return nil, domain.ErrInvalidEventKind
	}
	if q.Date != "" {
		day, err := datetime.ParseDate(q.Date, s.loc)
		if err != nil {
			return nil, err
		}
		filter.StartsFrom, filter.StartsBefore = datetime.DayBounds(day, s.loc)
	}
	now := s.clock.Now()
	switch q.Status {
	case "", domain.ListingAll:
	case domain.ListingUpcoming:
		if filter.StartsFrom.Before(now) {
			filter.StartsFrom = now
		}
	case domain.ListingPast:
		if filter.StartsBefore.IsZero() || now.Before(filter.StartsBefore) {
			filter.StartsBefore = now
		}
	default:
		return nil, domain.ErrInvalidListingStatus
	}
	return s.eventRepo.List(ctx, filter)
}

func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if _, err := s.eventRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.eventRepo.Delete(ctx, id)
}

func (s *EventService) ListAttendees(ctx context.Context, eventID string, q input.AttendeeQuery) ([]entities.Attendee, error) {
	if q.Status != "" && !domain.IsValidAttendance(q.Status) {
		return nil, domain.ErrInvalidAttendance
	}
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.registrationRepo.ListAttendees(ctx, eventID, output.AttendeeFilter{
		Search: strings.TrimSpace(q.Search),
		Status: q.Status,
	})
}

// ExportAttendeesCSV renders the filtered attendee list as CSV.
func (s *EventService) ExportAttendeesCSV(ctx context.Context, eventID string, q input.AttendeeQuery) ([]byte, error) {
	attendees, err := s.ListAttendees(ctx, eventID, q)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Name", "Email", "Status", "Registration Date"})
	for _, a := range attendees {
		name, email := a.UserName, a.UserEmail
		if name == "" {
			name = a.Contact.Name
		}
		if email == "" {
			email = a.Contact.Email
		}
		_ = w.Write([]string{name, email, a.Status, a.RegisteredAt.In(s.loc).Format("2006-01-02 15:04")})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// MarkAttendance sets the status of the given registrations of an event.
// Attendance points are credited at most once per registration.
func (s *EventService) MarkAttendance(ctx context.Context, eventID string, registrationIDs []string, status string) (int, error) {
	if !domain.IsValidAttendance(status) {
		return 0, domain.ErrInvalidAttendance
	}
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return 0, err
	}
	updated := 0
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		for _, id := range registrationIDs {
			reg, err := s.registrationRepo.FindByID(ctx, id)
			if err != nil {
				return err
			}
			if reg.EventID != eventID {
				return domain.ErrRegistrationNotFound
			}
			if reg.Status == status {
				continue
			}
			if err := s.registrationRepo.UpdateStatus(ctx, id, status); err != nil {
				return fmt.Errorf("update registration %s: %w", id, err)
			}
			updated++
			if status != domain.StatusAttended {
				continue
			}
			if err := s.creditAttendance(ctx, event, reg); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

func (s *EventService) creditAttendance(ctx context.Context, event *entities.Event, reg *entities.Registration) error {
	first, err := s.registrationRepo.MarkPointsAwarded(ctx, reg.ID)
	if err != nil {
		return fmt.Errorf("mark points awarded: %w", err)
	}
	if !first {
		return nil
	}
	if _, err := s.gamification.AwardPoints(ctx, reg.UserID, domain.AttendancePoints(event.Kind)); err != nil {
		return err
	}
	_, err = s.gamification.AwardBadge(ctx, reg.UserID, domain.BadgeFirstEvent)
	return err
}

func (s *EventService) MyRegistrations(ctx context.Context, uid string) ([]input.MyRegistration, error) {
	regs, err := s.registrationRepo.ListByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	out := make([]input.MyRegistration, 0, len(regs))
	for _, r := range regs {
		out = append(out, input.MyRegistration{
			RegistrationWithEvent: r,
			DisplayStatus:         r.DisplayStatus(&r.Event, now),
		})
	}
	return out, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
