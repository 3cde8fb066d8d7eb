package email

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"revamp/internal/ports/output"
)

var _ output.Mailer = (*Console)(nil)

// Console logs emails instead of sending them. Used when no provider key
// is configured.
type Console struct {
	logger *zap.Logger

	mu   sync.Mutex
	sent []output.Email
}

func NewConsole(logger *zap.Logger) *Console {
	return &Console{logger: logger}
}

func (c *Console) Send(_ context.Context, msg output.Email) error {
	to := make([]string, 0, len(msg.To))
	for _, addr := range msg.To {
		to = append(to, addr.String())
	}
	c.logger.Info("email",
		zap.String("to", strings.Join(to, ", ")),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Text),
	)
	c.mu.Lock()
	c.sent = append(c.sent, msg)
	c.mu.Unlock()
	return nil
}

// Sent returns a copy of every message passed to Send.
func (c *Console) Sent() []output.Email {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]output.Email, len(c.sent))
	copy(out, c.sent)
	return out
}
