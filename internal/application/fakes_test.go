package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"revamp/internal/clock"
	"revamp/internal/domain"
	"revamp/internal/domain/entities"
	"revamp/internal/ports/input"
	"revamp/internal/ports/output"
	"revamp/pkg/tz"
)

var testNow = time.Date(2025, 3, 10, 6, 30, 0, 0, time.UTC)

// memStore backs all fake repositories so joins see the same data.
type memStore struct {
	mu            sync.Mutex
	users         map[string]*entities.User
	events        map[string]*entities.Event
	registrations map[string]*entities.Registration
	payments      map[string]*entities.Payment
	notifications []entities.Notification
	applications  map[string]*entities.AmbassadorApplication
	// createErr fails event and application inserts.
	createErr error
}

func newMemStore() *memStore {
	return &memStore{
		users:         map[string]*entities.User{},
		events:        map[string]*entities.Event{},
		registrations: map[string]*entities.Registration{},
		payments:      map[string]*entities.Payment{},
		applications:  map[string]*entities.AmbassadorApplication{},
	}
}

type fakeTx struct {
	calls int
	err   error
}

func (f *fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type fakeUserRepo struct{ s *memStore }

func (r fakeUserRepo) Create(_ context.Context, u *entities.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.UID]; ok {
		return domain.ErrProfileExists
	}
	cp := *u
	r.s.users[u.UID] = &cp
	return nil
}

func (r fakeUserRepo) FindByUID(_ context.Context, uid string) (*entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[uid]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	cp.Badges = slices.Clone(u.Badges)
	return &cp, nil
}

func (r fakeUserRepo) Update(_ context.Context, u *entities.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[u.UID]
	if !ok {
		return domain.ErrUserNotFound
	}
	points, tier, badges := cur.Points, cur.Tier, cur.Badges
	cp := *u
	cp.Points, cp.Tier, cp.Badges = points, tier, badges
	r.s.users[u.UID] = &cp
	return nil
}

func (r fakeUserRepo) List(_ context.Context, search string) ([]entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entities.User
	for _, u := range r.s.users {
		if search == "" || strings.Contains(strings.ToLower(u.Name+u.Email+u.College), strings.ToLower(search)) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out, nil
}

func (r fakeUserRepo) AddPoints(_ context.Context, uid string, delta int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[uid]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	u.Points += delta
	return u.Points, nil
}

func (r fakeUserRepo) SetPoints(_ context.Context, uid string, points int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[uid]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Points = points
	return nil
}

func (r fakeUserRepo) SetTier(_ context.Context, uid string, tier domain.Tier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[uid]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Tier = tier
	return nil
}

func (r fakeUserRepo) AddBadge(_ context.Context, uid, badge string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[uid]
	if !ok {
		return false, domain.ErrUserNotFound
	}
	if slices.Contains(u.Badges, badge) {
		return false, nil
	}
	u.Badges = append(u.Badges, badge)
	return true, nil
}

type fakeEventRepo struct{ s *memStore }

func (r fakeEventRepo) Create(_ context.Context, e *entities.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.createErr != nil {
		return r.s.createErr
	}
	cp := *e
	r.s.events[e.ID] = &cp
	return nil
}

func (r fakeEventRepo) FindByID(_ context.Context, id string) (*entities.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (r fakeEventRepo) FindByIDForUpdate(ctx context.Context, id string) (*entities.Event, error) {
	return r.FindByID(ctx, id)
}

func (r fakeEventRepo) List(_ context.Context, f output.EventFilter) ([]entities.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entities.Event
	for _, e := range r.s.events {
		if f.Kind != "" && e.Kind != f.Kind {
			continue
		}
		if !f.StartsFrom.IsZero() && e.StartsAt.Before(f.StartsFrom) {
			continue
		}
		if !f.StartsBefore.IsZero() && !e.StartsAt.Before(f.StartsBefore) {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(e.Title+" "+e.Description), strings.ToLower(f.Search)) {
			continue
		}
		if f.Domain != "" && !slices.Contains(e.Domains, f.Domain) {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.After(out[j].StartsAt) })
	return out, nil
}

func (r fakeEventRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.events, id)
	for rid, reg := range r.s.registrations {
		if reg.EventID == id {
			delete(r.s.registrations, rid)
		}
	}
	return nil
}

func (r fakeEventRepo) FindNeedingReminder(_ context.Context, from, to time.Time) ([]entities.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entities.Event
	for _, e := range r.s.events {
		if e.SendReminders && e.ReminderSentAt.IsZero() && e.StartsAt.After(from) && !e.StartsAt.After(to) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r fakeEventRepo) MarkReminderSent(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.events[id].ReminderSentAt = at
	return nil
}

type fakeRegistrationRepo struct{ s *memStore }

func (r fakeRegistrationRepo) Create(_ context.Context, reg *entities.Registration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, cur := range r.s.registrations {
		if cur.EventID == reg.EventID && cur.UserID == reg.UserID {
			return domain.ErrAlreadyRegistered
		}
	}
	cp := *reg
	r.s.registrations[reg.ID] = &cp
	return nil
}

func (r fakeRegistrationRepo) FindByID(_ context.Context, id string) (*entities.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reg, ok := r.s.registrations[id]
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}
	cp := *reg
	return &cp, nil
}

func (r fakeRegistrationRepo) FindByEventIDAndUserID(_ context.Context, eventID, userID string) (*entities.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, reg := range r.s.registrations {
		if reg.EventID == eventID && reg.UserID == userID {
			cp := *reg
			return &cp, nil
		}
	}
	return nil, domain.ErrRegistrationNotFound
}

func (r fakeRegistrationRepo) CountConfirmed(_ context.Context, eventID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, reg := range r.s.registrations {
		if reg.EventID == eventID && reg.IsConfirmed() {
			n++
		}
	}
	return n, nil
}

func (r fakeRegistrationRepo) ListAttendees(_ context.Context, eventID string, f output.AttendeeFilter) ([]entities.Attendee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entities.Attendee
	for _, reg := range r.s.registrations {
		if reg.EventID != eventID || (f.Status != "" && reg.Status != f.Status) {
			continue
		}
		a := entities.Attendee{Registration: *reg}
		if u, ok := r.s.users[reg.UserID]; ok {
			a.UserName, a.UserEmail, a.UserPhotoURL = u.Name, u.Email, u.PhotoURL
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(a.UserName+" "+a.UserEmail), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegisteredAt.After(out[j].RegisteredAt) })
	return out, nil
}

func (r fakeRegistrationRepo) ListByUserID(_ context.Context, userID string) ([]entities.RegistrationWithEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entities.RegistrationWithEvent
	for _, reg := range r.s.registrations {
		if reg.UserID != userID {
			continue
		}
		out = append(out, entities.RegistrationWithEvent{Registration: *reg, Event: *r.s.events[reg.EventID]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegisteredAt.After(out[j].RegisteredAt) })
	return out, nil
}

func (r fakeRegistrationRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reg, ok := r.s.registrations[id]
	if !ok {
		return domain.ErrRegistrationNotFound
	}
	reg.Status = status
	return nil
}

func (r fakeRegistrationRepo) MarkPointsAwarded(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reg, ok := r.s.registrations[id]
	if !ok {
		return false, domain.ErrRegistrationNotFound
	}
	if reg.PointsAwarded {
		return false, nil
	}
	reg.PointsAwarded = true
	return true, nil
}

type fakePaymentRepo struct{ s *memStore }

func (r fakePaymentRepo) Create(_ context.Context, p *entities.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.payments[p.GatewayOrderID] = &cp
	return nil
}

func (r fakePaymentRepo) FindByOrderIDForUpdate(_ context.Context, orderID string) (*entities.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[orderID]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (r fakePaymentRepo) UpdateStatus(_ context.Context, id, status, gatewayPaymentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.ID == id {
			p.Status, p.GatewayPaymentID = status, gatewayPaymentID
			return nil
		}
	}
	return domain.ErrPaymentNotFound
}

type fakeNotificationRepo struct{ s *memStore }

func (r fakeNotificationRepo) Create(_ context.Context, n *entities.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.notifications = append(r.s.notifications, *n)
	return nil
}

func (r fakeNotificationRepo) ListByUserID(_ context.Context, userID string) ([]entities.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entities.Notification
	for i := len(r.s.notifications) - 1; i >= 0; i-- {
		if r.s.notifications[i].UserID == userID {
			out = append(out, r.s.notifications[i])
		}
	}
	return out, nil
}

func (r fakeNotificationRepo) MarkRead(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.notifications {
		if r.s.notifications[i].ID == id && r.s.notifications[i].UserID == userID {
			r.s.notifications[i].Read = true
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

type fakeAmbassadorRepo struct{ s *memStore }

func (r fakeAmbassadorRepo) Create(_ context.Context, a *entities.AmbassadorApplication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.createErr != nil {
		return r.s.createErr
	}
	cp := *a
	r.s.applications[a.ID] = &cp
	return nil
}

func (r fakeAmbassadorRepo) FindByID(_ context.Context, id string) (*entities.AmbassadorApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.applications[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	cp := *a
	return &cp, nil
}

func (r fakeAmbassadorRepo) FindLatestByUserID(_ context.Context, userID string) (*entities.AmbassadorApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var latest *entities.AmbassadorApplication
	for _, a := range r.s.applications {
		if a.UserID == userID && (latest == nil || !a.AppliedAt.Before(latest.AppliedAt)) {
			latest = a
		}
	}
	if latest == nil {
		return nil, domain.ErrApplicationNotFound
	}
	cp := *latest
	return &cp, nil
}

func (r fakeAmbassadorRepo) UpdateStatus(_ context.Context, id, status string, reviewedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.applications[id]
	if !ok {
		return domain.ErrApplicationNotFound
	}
	a.Status, a.ReviewedAt = status, reviewedAt
	return nil
}

type fakeStorage struct {
	paths   []string
	deleted []string
	err     error
}

func (f *fakeStorage) Delete(_ context.Context, path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeStorage) Upload(_ context.Context, path string, r io.Reader, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	f.paths = append(f.paths, path)
	return "https://files.test/" + path, nil
}

type fakeGateway struct {
	orders   []output.Order
	validSig string
	err      error
}

func (f *fakeGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (output.Order, error) {
	if f.err != nil {
		return output.Order{}, f.err
	}
	o := output.Order{
		ID:       fmt.Sprintf("order_%d", len(f.orders)+1),
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}
	f.orders = append(f.orders, o)
	return o, nil
}

func (f *fakeGateway) VerifySignature(_, _, signature string) bool {
	return signature == f.validSig
}

func (f *fakeGateway) KeyID() string { return "rzp_test_key" }

type fakeMailer struct {
	mu   sync.Mutex
	sent []output.Email
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg output.Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeAnnouncer struct {
	announced []string
	err       error
}

func (f *fakeAnnouncer) AnnounceEvent(_ context.Context, e *entities.Event) error {
	f.announced = append(f.announced, e.ID)
	return f.err
}

// keyTranslator renders a key followed by its sorted template data.
type keyTranslator struct{}

func (keyTranslator) T(_, key string, data map[string]any) string {
	if len(data) == 0 {
		return key
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b bytes.Buffer
	b.WriteString(key)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, data[k])
	}
	return b.String()
}

// testEnv wires every service over one memStore.
type testEnv struct {
	store     *memStore
	tx        *fakeTx
	storage   *fakeStorage
	gateway   *fakeGateway
	mailer    *fakeMailer
	announcer *fakeAnnouncer

	notifications *NotificationService
	gamification  *GamificationService
	users         *UserService
	events        *EventService
	registrations *RegistrationService
	payments      *PaymentService
	ambassadors   *AmbassadorService
	reminders     *ReminderService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		store:     newMemStore(),
		tx:        &fakeTx{},
		storage:   &fakeStorage{},
		gateway:   &fakeGateway{validSig: "good-signature"},
		mailer:    &fakeMailer{},
		announcer: &fakeAnnouncer{},
	}
	clk := clock.NewFixed(testNow)
	logger := zap.NewNop()
	userRepo := fakeUserRepo{env.store}
	eventRepo := fakeEventRepo{env.store}
	regRepo := fakeRegistrationRepo{env.store}
	appRepo := fakeAmbassadorRepo{env.store}

	env.notifications = NewNotificationService(fakeNotificationRepo{env.store}, keyTranslator{}, "en", clk)
	env.gamification = NewGamificationService(userRepo, env.notifications)
	mails := NewMailComposer(env.mailer, keyTranslator{}, "en", tz.Kolkata, logger)
	env.users = NewUserService(userRepo, regRepo, appRepo, env.storage, env.gamification, env.notifications, env.tx, clk)
	env.events = NewEventService(eventRepo, regRepo, env.storage, env.announcer, env.gamification, env.tx, clk, tz.Kolkata, logger)
	env.registrations = NewRegistrationService(eventRepo, regRepo, env.notifications, mails, env.tx, clk)
	env.payments = NewPaymentService(eventRepo, regRepo, fakePaymentRepo{env.store}, env.gateway, env.notifications, mails, env.tx, clk)
	env.ambassadors = NewAmbassadorService(appRepo, userRepo, env.storage, env.notifications, env.tx, clk)
	env.reminders = NewReminderService(eventRepo, regRepo, env.notifications, mails, clk, logger)
	return env
}

func (e *testEnv) addUser(uid string, points int) *entities.User {
	u := &entities.User{
		UID:    uid,
		Email:  uid + "@college.test",
		Name:   "Student " + uid,
		Points: points,
		Tier:   domain.TierForPoints(points),
		Badges: []string{},
		Role:   domain.RoleStudent,
	}
	e.store.users[uid] = u
	return u
}

func (e *testEnv) addEvent(id string, mutate func(*entities.Event)) *entities.Event {
	ev := &entities.Event{
		ID:       id,
		Kind:     domain.KindEvent,
		Title:    "Event " + id,
		StartsAt: testNow.Add(72 * time.Hour),
		Location: "Online",
		Capacity: 10,
		IsFree:   true,
		Domains:  []string{},
	}
	if mutate != nil {
		mutate(ev)
	}
	e.store.events[id] = ev
	return ev
}

func (e *testEnv) notificationsFor(uid string) []entities.Notification {
	var out []entities.Notification
	for _, n := range e.store.notifications {
		if n.UserID == uid {
			out = append(out, n)
		}
	}
	return out
}

func testUpload(name, contentType string, size int) input.Upload {
	return input.Upload{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(size),
		Body:        bytes.NewReader(bytes.Repeat([]byte("x"), size)),
	}
}

var errBoom = errors.New("boom")
