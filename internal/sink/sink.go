// Package sink delivers completed audit results to downstream systems.
// Every sink is fire-and-forget: delivery failures are logged by the
// dispatcher and never affect the primary response.
package sink

import (
	"context"

	"github.com/sells-group/gbp-pulse/internal/model"
)

// Kind tells sinks which check produced the event.
type Kind string

const (
	KindAudit Kind = "audit"
	KindRot   Kind = "rot"
)

// Event is the unit of fan-out delivered to every configured sink.
type Event struct {
	Kind Kind
	Lead *model.Lead
	// Draft is an optional outreach email body attached to the
	// automation payload.
	Draft string
}

// Sink delivers one event to one destination.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, ev *Event) error
}
