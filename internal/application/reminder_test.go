package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revamp/internal/domain"
	"revamp/internal/domain/entities"
)

func TestReminderService_SendDueReminders(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv()
	env.addUser("u1", 0)
	env.addEvent("soon", func(e *entities.Event) {
		e.StartsAt = testNow.Add(3 * time.Hour)
		e.SendReminders = true
	})
	env.addEvent("later", func(e *entities.Event) {
		e.StartsAt = testNow.Add(48 * time.Hour)
		e.SendReminders = true
	})
	env.addEvent("opted-out", func(e *entities.Event) {
		e.StartsAt = testNow.Add(3 * time.Hour)
	})
	env.store.registrations["r1"] = &entities.Registration{
		ID: "r1", EventID: "soon", UserID: "u1", PaymentStatus: domain.PaymentSuccess,
	}
	env.store.registrations["r2"] = &entities.Registration{
		ID: "r2", EventID: "soon", UserID: "guest", PaymentStatus: domain.PaymentSuccess,
		Contact: entities.Contact{Name: "Guest", Email: "guest@x.test"},
	}
	env.store.registrations["r3"] = &entities.Registration{
		ID: "r3", EventID: "opted-out", UserID: "u1", PaymentStatus: domain.PaymentSuccess,
	}

	n, err := env.reminders.SendDueReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var to []string
	for _, m := range env.mailer.sent {
		to = append(to, m.To[0].Address)
	}
	assert.ElementsMatch(t, []string{"u1@college.test", "guest@x.test"}, to)
	assert.Equal(t, testNow, env.store.events["soon"].ReminderSentAt)
	assert.True(t, env.store.events["later"].ReminderSentAt.IsZero())
	assert.Len(t, env.notificationsFor("u1"), 1)

	n, err = env.reminders.SendDueReminders(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, env.mailer.sent, 2)
}
