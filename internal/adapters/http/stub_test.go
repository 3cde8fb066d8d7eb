package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"revamp/internal/domain"
	"revamp/internal/domain/entities"
	"revamp/internal/ports/input"
)

// stubApp implements every use case port with canned results.
type stubApp struct {
	user      *entities.User
	users     []entities.User
	detail    *input.UserDetail
	event     *entities.Event
	events    []entities.Event
	attendees []entities.Attendee
	csv       []byte
	myRegs    []input.MyRegistration
	reg       *entities.Registration
	order     *input.CheckoutOrder
	notes     []entities.Notification
	app       *entities.AmbassadorApplication
	perks     []domain.Perk
	err       error

	gotUID        string
	gotProfile    input.CreateProfileInput
	gotEventInput input.CreateEventInput
	gotEventQuery input.EventQuery
	gotUpload     *input.Upload
	gotUploadBody []byte
	gotContact    entities.Contact
	gotVerify     input.VerifyPaymentInput
	gotIDs        []string
	gotStatus     string
	gotApprove    bool
	gotAnswers    entities.ApplicationAnswers
}

var (
	_ input.UserUseCase         = (*stubApp)(nil)
	_ input.EventUseCase        = (*stubApp)(nil)
	_ input.RegistrationUseCase = (*stubApp)(nil)
	_ input.PaymentUseCase      = (*stubApp)(nil)
	_ input.NotificationUseCase = (*stubApp)(nil)
	_ input.AmbassadorUseCase   = (*stubApp)(nil)
)

func (s *stubApp) keep(u *input.Upload) {
	if u == nil {
		return
	}
	s.gotUpload = u
	s.gotUploadBody, _ = io.ReadAll(u.Body)
}

func (s *stubApp) CreateProfile(_ context.Context, uid, _ string, in input.CreateProfileInput) (*entities.User, error) {
	s.gotUID, s.gotProfile = uid, in
	return s.user, s.err
}

func (s *stubApp) GetProfile(_ context.Context, uid string) (*entities.User, error) {
	s.gotUID = uid
	if s.user == nil {
		return nil, domain.ErrUserNotFound
	}
	return s.user, s.err
}

func (s *stubApp) UpdateProfile(_ context.Context, uid string, _ input.UpdateProfileInput) (*entities.User, error) {
	s.gotUID = uid
	return s.user, s.err
}

func (s *stubApp) UploadCollegeID(_ context.Context, uid string, file input.Upload) (*entities.User, error) {
	s.gotUID = uid
	s.keep(&file)
	return s.user, s.err
}

func (s *stubApp) Perks(context.Context, string) ([]domain.Perk, error) { return s.perks, s.err }

func (s *stubApp) ListUsers(context.Context, string) ([]entities.User, error) { return s.users, s.err }

func (s *stubApp) GetUserDetail(context.Context, string) (*input.UserDetail, error) {
	return s.detail, s.err
}

func (s *stubApp) UpdateUser(context.Context, string, input.AdminUserUpdate) (*entities.User, error) {
	return s.user, s.err
}

func (s *stubApp) CreateEvent(_ context.Context, adminUID string, in input.CreateEventInput, banner *input.Upload) (*entities.Event, error) {
	s.gotUID, s.gotEventInput = adminUID, in
	s.keep(banner)
	return s.event, s.err
}

func (s *stubApp) GetEvent(context.Context, string) (*entities.Event, error) { return s.event, s.err }

func (s *stubApp) ListEvents(_ context.Context, q input.EventQuery) ([]entities.Event, error) {
	s.gotEventQuery = q
	return s.events, s.err
}

func (s *stubApp) DeleteEvent(context.Context, string) error { return s.err }

func (s *stubApp) ListAttendees(context.Context, string, input.AttendeeQuery) ([]entities.Attendee, error) {
	return s.attendees, s.err
}

func (s *stubApp) ExportAttendeesCSV(context.Context, string, input.AttendeeQuery) ([]byte, error) {
	return s.csv, s.err
}

func (s *stubApp) MarkAttendance(_ context.Context, _ string, ids []string, status string) (int, error) {
	s.gotIDs, s.gotStatus = ids, status
	return len(ids), s.err
}

func (s *stubApp) MyRegistrations(context.Context, string) ([]input.MyRegistration, error) {
	return s.myRegs, s.err
}

func (s *stubApp) RegisterFree(_ context.Context, uid, _ string, contact entities.Contact) (*entities.Registration, error) {
	s.gotUID, s.gotContact = uid, contact
	return s.reg, s.err
}

func (s *stubApp) CreateOrder(context.Context, string, input.CreateOrderInput) (*input.CheckoutOrder, error) {
	return s.order, s.err
}

func (s *stubApp) VerifyPayment(_ context.Context, _ string, in input.VerifyPaymentInput) (*entities.Registration, error) {
	s.gotVerify = in
	return s.reg, s.err
}

func (s *stubApp) List(context.Context, string) ([]entities.Notification, error) { return s.notes, s.err }

func (s *stubApp) MarkRead(context.Context, string, string) error { return s.err }

func (s *stubApp) Apply(_ context.Context, _ string, answers entities.ApplicationAnswers, video *input.Upload) (*entities.AmbassadorApplication, error) {
	s.gotAnswers = answers
	s.keep(video)
	return s.app, s.err
}

func (s *stubApp) Review(_ context.Context, _ string, approve bool) (*entities.AmbassadorApplication, error) {
	s.gotApprove = approve
	return s.app, s.err
}

type recordingReporter struct {
	errs []error
}

func (r *recordingReporter) Report(_ *http.Request, err error, _ map[string]any) {
	r.errs = append(r.errs, err)
}

var (
	testTime  = time.Date(2026, 5, 1, 12, 30, 0, 0, time.UTC)
	testEvent = &entities.Event{
		ID:          "e1",
		Kind:        domain.KindEvent,
		Title:       "Intro to Go",
		Description: "A hands-on introduction to Go.",
		StartsAt:    testTime,
		Location:    "Online",
		Capacity:    50,
		IsFree:      true,
	}
	testUser = &entities.User{
		UID:    "u1",
		Email:  "asha@college.in",
		Name:   "Asha",
		Points: 75,
		Tier:   domain.TierBronze,
		Role:   domain.RoleStudent,
	}
)
