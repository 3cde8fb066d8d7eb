package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultInterval is how often due reminders are looked for.
const DefaultInterval = 10 * time.Minute

// ReminderSender sends the reminders that are due and reports how many
// events were reminded.
type ReminderSender interface {
	SendDueReminders(ctx context.Context) (int, error)
}

// Scheduler runs periodic tasks.
type Scheduler struct {
	reminders ReminderSender
	interval  time.Duration
	logger    *zap.Logger
}

func New(reminders ReminderSender, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{reminders: reminders, interval: interval, logger: logger}
}

// Run ticks every interval until ctx is done. A first pass runs immediately.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		s.tick(ctx)
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	n, err := s.reminders.SendDueReminders(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error("send reminders", zap.Error(err))
		}
		return
	}
	if n > 0 {
		s.logger.Info("reminders sent", zap.Int("events", n))
	}
}
