// Package store persists captured leads. Two drivers are provided: SQLite
// for single-binary CLI use and Postgres for server deployments.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/gbp-pulse/internal/config"
	"github.com/sells-group/gbp-pulse/internal/model"
)

// LeadFilter specifies criteria for listing leads.
type LeadFilter struct {
	HotOnly  bool `json:"hot_only,omitempty"`
	MinScore int  `json:"min_score,omitempty"`
	Limit    int  `json:"limit,omitempty"`
	Offset   int  `json:"offset,omitempty"`
}

// Store defines the lead persistence interface.
type Store interface {
	// SaveLead persists a lead, assigning ID and CreatedAt when unset.
	SaveLead(ctx context.Context, lead *model.Lead) error
	GetLead(ctx context.Context, id string) (*model.Lead, error)
	ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// New opens the store selected by cfg.Driver and runs migrations.
func New(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Driver {
	case "postgres":
		s, err = NewPostgres(ctx, cfg.DatabaseURL)
	case "", "sqlite":
		s, err = NewSQLite(cfg.SQLitePath)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close() //nolint:errcheck
		return nil, err
	}
	return s, nil
}
