package events

import (
	"context"

	"github.com/dtroode/gophboard-server/internal/logger"
	"github.com/dtroode/gophboard-server/internal/model"
)

var _ model.EventPublisher = (*Noop)(nil)

// Noop drops events. It is used when no broker is configured.
type Noop struct {
	logger *logger.Logger
}

func NewNoop(logger *logger.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) PublishPostCreated(_ context.Context, event model.PostCreatedEvent) error {
	n.logger.Debug("Events: broker disabled, dropping post created event",
		"post_id", event.PostID)
	return nil
}
