package sink

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/gbp-pulse/internal/store"
)

// StoreSink persists captured leads through the lead store.
type StoreSink struct {
	store store.Store
}

// NewStoreSink creates a sink backed by the given lead store.
func NewStoreSink(s store.Store) *StoreSink {
	return &StoreSink{store: s}
}

func (s *StoreSink) Name() string { return "store" }

func (s *StoreSink) Deliver(ctx context.Context, ev *Event) error {
	if err := s.store.SaveLead(ctx, ev.Lead); err != nil {
		return eris.Wrap(err, "sink: save lead")
	}
	return nil
}
