package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revamp/internal/domain"
	"revamp/internal/domain/entities"
	"revamp/internal/ports/input"
)

func workshopInput() input.CreateEventInput {
	return input.CreateEventInput{
		Kind:             domain.KindWorkshop,
		Title:            "Intro to Go",
		Description:      "A hands-on session on writing services in Go.",
		Date:             "2025-03-15",
		Time:             "10:00",
		DurationHours:    2,
		Location:         "Online",
		Capacity:         50,
		IsFree:           false,
		Price:            49900,
		Domains:          []string{"backend"},
		Prerequisites:    "Basic programming",
		Materials:        []entities.Material{{Title: "Slides", URL: "https://x.test/s", Type: "slides"}},
		RecordingEnabled: true,
	}
}

func TestEventService_CreateEvent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv()

	banner := testUpload("banner.png", "image/png", 2048)
	event, err := env.events.CreateEvent(ctx, "admin1", workshopInput(), &banner)
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, time.Date(2025, 3, 15, 4, 30, 0, 0, time.UTC), event.StartsAt)
	assert.Equal(t, "https://files.test/workshop-banners/"+event.ID+"/banner.png", event.BannerURL)
	assert.Equal(t, "admin1", event.CreatedBy)
	assert.Len(t, event.Materials, 1)
	assert.True(t, event.RecordingEnabled)
	assert.Equal(t, []string{event.ID}, env.announcer.announced)
	assert.Contains(t, env.store.events, event.ID)
}

func TestEventService_CreateEvent_DropsWorkshopFieldsForEvents(t *testing.T) {
	t.Parallel()
	env := newTestEnv()

	in := workshopInput()
	in.Kind = domain.KindEvent
	event, err := env.events.CreateEvent(context.Background(), "admin1", in, nil)
	require.NoError(t, err)
	assert.Empty(t, event.Materials)
	assert.Empty(t, event.Prerequisites)
	assert.False(t, event.RecordingEnabled)
	assert.Empty(t, event.BannerURL)
}

func TestEventService_CreateEvent_AnnounceFailureIgnored(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	env.announcer.err = errBoom

	_, err := env.events.CreateEvent(context.Background(), "admin1", workshopInput(), nil)
	assert.NoError(t, err)
}

func TestEventService_CreateEvent_Invalid(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv()

	tests := []struct {
		name   string
		mutate func(*input.CreateEventInput)
		want   error
	}{
		{"bad kind", func(in *input.CreateEventInput) { in.Kind = "meetup" }, domain.ErrInvalidEventKind},
		{"free with price", func(in *input.CreateEventInput) { in.IsFree = true }, domain.ErrInvalidPrice},
		{"paid without price", func(in *input.CreateEventInput) { in.Price = 0 }, domain.ErrInvalidPrice},
		{"bad date", func(in *input.CreateEventInput) { in.Date = "15/03/2025" }, domain.ErrInvalidDateTime},
		{"past", func(in *input.CreateEventInput) { in.Date, in.Time = "2025-03-10", "11:59" }, domain.ErrDateTimeInPast},
		{"material type", func(in *input.CreateEventInput) { in.Materials[0].Type = "podcast" }, domain.ErrInvalidMaterial},
		{"material url", func(in *input.CreateEventInput) { in.Materials[0].URL = " " }, domain.ErrInvalidMaterial},
		{"material title", func(in *input.CreateEventInput) { in.Materials[0].Title = "" }, domain.ErrInvalidMaterial},
	}
	for _, tt := range tests {
		in := workshopInput()
		tt.mutate(&in)
		_, err := env.events.CreateEvent(ctx, "admin1", in, nil)
		assert.ErrorIs(t, err, tt.want, tt.name)
	}

	banner := testUpload("banner.pdf", "application/pdf", 10)
	_, err := env.events.CreateEvent(ctx, "admin1", workshopInput(), &banner)
	assert.ErrorIs(t, err, domain.ErrInvalidUpload)
	assert.Empty(t, env.store.events)
}

func TestEventService_ListEvents(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv()
	env.addEvent("past", func(e *entities.Event) {
		e.StartsAt = testNow.Add(-48 * time.Hour)
		e.Title = "Hackathon recap"
	})
	env.addEvent("today", func(e *entities.Event) {
		e.StartsAt = testNow.Add(2 * time.Hour)
		e.Domains = []string{"ai"}
	})
	env.addEvent("workshop", func(e *entities.Event) {
		e.Kind = domain.KindWorkshop
		e.StartsAt = testNow.Add(5 * 24 * time.Hour)
		e.Description = "Learn HACKATHON strategy"
	})

	ids := func(events []entities.Event) []string {
		var out []string
		for _, e := range events {
			out = append(out, e.ID)
		}
		return out
	}

	got, err := env.events.ListEvents(ctx, input.EventQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"workshop", "today", "past"}, ids(got))

	got, err = env.events.ListEvents(ctx, input.EventQuery{Status: "upcoming"})
	require.NoError(t, err)
	assert.Equal(t, []string{"workshop", "today"}, ids(got))

	got, err = env.events.ListEvents(ctx, input.EventQuery{Status: "past"})
	require.NoError(t, err)
	assert.Equal(t, []string{"past"}, ids(got))

	got, err = env.events.ListEvents(ctx, input.EventQuery{Search: "hackathon"})
	require.NoError(t, err)
	assert.Equal(t, []string{"workshop", "past"}, ids(got))

	got, err = env.events.ListEvents(ctx, input.EventQuery{Date: "2025-03-10"})
	require.NoError(t, err)
	assert.Equal(t, []string{"today"}, ids(got))

	got, err = env.events.ListEvents(ctx, input.EventQuery{Kind: domain.KindWorkshop})
	require.NoError(t, err)
	assert.Equal(t, []string{"workshop"}, ids(got))

	got, err = env.events.ListEvents(ctx, input.EventQuery{Domain: "ai", Status: "upcoming"})
	require.NoError(t, err)
	assert.Equal(t, []string{"today"}, ids(got))

	got, err = env.events.ListEvents(ctx, input.EventQuery{Status: "all"})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = env.events.ListEvents(ctx, input.EventQuery{Date: "tomorrow"})
	assert.ErrorIs(t, err, domain.ErrInvalidDateTime)

	_, err = env.events.ListEvents(ctx, input.EventQuery{Status: "soon"})
	assert.ErrorIs(t, err, domain.ErrInvalidListingStatus)
}

func TestEventService_MarkAttendance(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv()
	env.addUser("u1", 240)
	env.addEvent("w1", func(e *entities.Event) { e.Kind = domain.KindWorkshop })
	env.addEvent("e2", nil)
	env.store.registrations["r1"] = &entities.Registration{ID: "r1", EventID: "w1", UserID: "u1", Status: domain.StatusRegistered}
	env.store.registrations["r2"] = &entities.Registration{ID: "r2", EventID: "e2", UserID: "u1", Status: domain.StatusRegistered}

	n, err := env.events.MarkAttendance(ctx, "w1", []string{"r1"}, domain.StatusAttended)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	user := env.store.users["u1"]
	assert.Equal(t, 240+domain.PointsWorkshopAttendance, user.Points)
	assert.Equal(t, domain.TierSilver, user.Tier)
	assert.Equal(t, []string{domain.BadgeFirstEvent}, user.Badges)

	// toggling back and forth does not credit twice
	_, err = env.events.MarkAttendance(ctx, "w1", []string{"r1"}, domain.StatusNoShow)
	require.NoError(t, err)
	_, err = env.events.MarkAttendance(ctx, "w1", []string{"r1"}, domain.StatusAttended)
	require.NoError(t, err)
	assert.Equal(t, 240+domain.PointsWorkshopAttendance, env.store.users["u1"].Points)

	n, err = env.events.MarkAttendance(ctx, "w1", []string{"r1"}, domain.StatusAttended)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = env.events.MarkAttendance(ctx, "w1", []string{"r2"}, domain.StatusAttended)
	assert.ErrorIs(t, err, domain.ErrRegistrationNotFound)

	_, err = env.events.MarkAttendance(ctx, "w1", []string{"r1"}, "maybe")
	assert.ErrorIs(t, err, domain.ErrInvalidAttendance)
}

func TestEventService_ExportAttendeesCSV(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv()
	env.addUser("u1", 0)
	env.addEvent("e1", nil)
	env.store.registrations["r1"] = &entities.Registration{
		ID: "r1", EventID: "e1", UserID: "u1", Status: domain.StatusAttended,
		RegisteredAt: time.Date(2025, 3, 1, 4, 30, 0, 0, time.UTC),
	}
	env.store.registrations["r2"] = &entities.Registration{
		ID: "r2", EventID: "e1", UserID: "ghost", Status: domain.StatusRegistered,
		Contact:      entities.Contact{Name: "Guest, One", Email: "guest@x.test"},
		RegisteredAt: time.Date(2025, 2, 1, 4, 30, 0, 0, time.UTC),
	}

	data, err := env.events.ExportAttendeesCSV(ctx, "e1", input.AttendeeQuery{})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Email,Status,Registration Date", lines[0])
	assert.Equal(t, "Student u1,u1@college.test,attended,2025-03-01 10:00", lines[1])
	assert.Equal(t, `"Guest, One",guest@x.test,registered,2025-02-01 10:00`, lines[2])

	data, err = env.events.ExportAttendeesCSV(ctx, "e1", input.AttendeeQuery{Status: domain.StatusAttended})
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))

	_, err = env.events.ExportAttendeesCSV(ctx, "missing", input.AttendeeQuery{})
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestEventService_MyRegistrations(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	env.addEvent("past", func(e *entities.Event) { e.StartsAt = testNow.Add(-time.Hour) })
	env.addEvent("next", nil)
	env.addEvent("done", func(e *entities.Event) { e.StartsAt = testNow.Add(-time.Hour) })
	env.store.registrations["r1"] = &entities.Registration{ID: "r1", EventID: "past", UserID: "u1", Status: domain.StatusRegistered}
	env.store.registrations["r2"] = &entities.Registration{ID: "r2", EventID: "next", UserID: "u1", Status: domain.StatusRegistered}
	env.store.registrations["r3"] = &entities.Registration{ID: "r3", EventID: "done", UserID: "u1", Status: domain.StatusAttended}

	regs, err := env.events.MyRegistrations(context.Background(), "u1")
	require.NoError(t, err)
	got := map[string]string{}
	for _, r := range regs {
		got[r.Event.ID] = r.DisplayStatus
	}
	assert.Equal(t, map[string]string{
		"past": domain.StatusNotAttended,
		"next": domain.StatusRegistered,
		"done": domain.StatusAttended,
	}, got)
}

func TestEventService_DeleteEvent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv()
	env.addEvent("e1", nil)
	env.store.registrations["r1"] = &entities.Registration{ID: "r1", EventID: "e1", UserID: "u1"}

	require.NoError(t, env.events.DeleteEvent(ctx, "e1"))
	assert.Empty(t, env.store.events)
	assert.Empty(t, env.store.registrations)
	assert.ErrorIs(t, env.events.DeleteEvent(ctx, "e1"), domain.ErrEventNotFound)
}

func TestEventService_CreateEvent_RemovesBannerWhenInsertFails(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	env.store.createErr = errBoom

	banner := testUpload("banner.png", "image/png", 2048)
	_, err := env.events.CreateEvent(context.Background(), "admin1", workshopInput(), &banner)
	assert.ErrorIs(t, err, errBoom)
	require.Len(t, env.storage.paths, 1)
	assert.Equal(t, env.storage.paths, env.storage.deleted)
	assert.Empty(t, env.announcer.announced)
}
