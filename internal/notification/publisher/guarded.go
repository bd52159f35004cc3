package publisher

import (
	"context"
	"errors"
	"log/slog"

	"govdesk/internal/notification/models"
	"govdesk/pkg/platform/circuit"
)

// ErrCircuitOpen is returned while the wrapped publisher is being skipped.
var ErrCircuitOpen = errors.New("publisher circuit open")

// Publisher is the single method Guarded wraps.
type Publisher interface {
	Publish(ctx context.Context, n *models.Notification) error
}

// Guarded skips a failing publisher for a cooldown instead of paying its
// timeout on every notification.
type Guarded struct {
	next    Publisher
	breaker *circuit.Breaker
	logger  *slog.Logger
}

// NewGuarded wraps next with breaker.
func NewGuarded(next Publisher, breaker *circuit.Breaker, logger *slog.Logger) *Guarded {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guarded{next: next, breaker: breaker, logger: logger}
}

func (g *Guarded) Publish(ctx context.Context, n *models.Notification) error {
	if !g.breaker.Allow() {
		return ErrCircuitOpen
	}
	if err := g.next.Publish(ctx, n); err != nil {
		if _, change := g.breaker.RecordFailure(); change.Opened {
			g.logger.WarnContext(ctx, "publisher circuit opened", "breaker", g.breaker.Name(), "error", err)
		}
		return err
	}
	if _, change := g.breaker.RecordSuccess(); change.Closed {
		g.logger.InfoContext(ctx, "publisher circuit closed", "breaker", g.breaker.Name())
	}
	return nil
}
