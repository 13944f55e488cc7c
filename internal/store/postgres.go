package store

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/gbp-pulse/internal/model"
	"github.com/sells-group/gbp-pulse/internal/score"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies it
// for tests.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres opens a connection pool against the given database URL.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS leads (
	id            UUID PRIMARY KEY,
	email         TEXT NOT NULL,
	business_name TEXT NOT NULL,
	place_id      TEXT,
	overall_score INT NOT NULL DEFAULT 0,
	rot_score     INT NOT NULL DEFAULT 0,
	status        TEXT NOT NULL DEFAULT '',
	hot           BOOLEAN NOT NULL DEFAULT false,
	report        JSONB,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_leads_email ON leads(email);
CREATE INDEX IF NOT EXISTS idx_leads_hot ON leads(hot);
CREATE INDEX IF NOT EXISTS idx_leads_overall_score ON leads(overall_score);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveLead(ctx context.Context, lead *model.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now().UTC()
	}

	var reportJSON []byte
	if lead.Report != nil {
		b, err := json.Marshal(lead.Report)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal report")
		}
		reportJSON = b
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO leads (id, email, business_name, place_id, overall_score, rot_score, status, hot, report, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		lead.ID, lead.Email, lead.BusinessName, lead.PlaceID,
		lead.OverallScore, lead.RotScore, lead.StatusLabel, lead.Hot,
		reportJSON, lead.CreatedAt,
	)
	return eris.Wrap(err, "postgres: insert lead")
}

func (s *PostgresStore) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, email, business_name, place_id, overall_score, rot_score, status, hot, report, created_at
		 FROM leads WHERE id = $1`,
		id,
	)

	l, err := scanPgLead(row)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, eris.Errorf("postgres: lead %s not found", id)
		}
		return nil, eris.Wrap(err, "postgres: get lead")
	}
	return l, nil
}

func (s *PostgresStore) ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, error) {
	query := `SELECT id, email, business_name, place_id, overall_score, rot_score, status, hot, report, created_at
	          FROM leads WHERE 1=1`
	var args []any

	if filter.HotOnly {
		query += ` AND hot = true`
	}
	if filter.MinScore > 0 {
		query += ` AND overall_score >= $1`
		args = append(args, filter.MinScore)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ` + strconv.Itoa(limit)
	if filter.Offset > 0 {
		query += ` OFFSET ` + strconv.Itoa(filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		l, err := scanPgLead(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan lead")
		}
		leads = append(leads, *l)
	}
	return leads, eris.Wrap(rows.Err(), "postgres: list leads iterate")
}

func scanPgLead(row pgx.Row) (*model.Lead, error) {
	var l model.Lead
	var placeID *string
	var reportJSON []byte

	err := row.Scan(&l.ID, &l.Email, &l.BusinessName, &placeID,
		&l.OverallScore, &l.RotScore, &l.StatusLabel, &l.Hot,
		&reportJSON, &l.CreatedAt)
	if err != nil {
		return nil, err
	}

	if placeID != nil {
		l.PlaceID = *placeID
	}
	if len(reportJSON) > 0 {
		l.Report = &score.Report{}
		if err := json.Unmarshal(reportJSON, l.Report); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal report")
		}
	}
	return &l, nil
}
