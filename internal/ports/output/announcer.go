package output

import (
	"context"

	"revamp/internal/domain/entities"
)

// Announcer publishes newly created events to a community channel.
type Announcer interface {
	AnnounceEvent(ctx context.Context, event *entities.Event) error
}
