package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/gbp-pulse/internal/model"
	"github.com/sells-group/gbp-pulse/internal/score"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS leads (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL,
	business_name TEXT NOT NULL,
	place_id      TEXT,
	overall_score INTEGER NOT NULL DEFAULT 0,
	rot_score     INTEGER NOT NULL DEFAULT 0,
	status        TEXT NOT NULL DEFAULT '',
	hot           INTEGER NOT NULL DEFAULT 0,
	report        TEXT,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_leads_email ON leads(email);
CREATE INDEX IF NOT EXISTS idx_leads_hot ON leads(hot);
CREATE INDEX IF NOT EXISTS idx_leads_overall_score ON leads(overall_score);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveLead(ctx context.Context, lead *model.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now().UTC()
	}

	var reportJSON sql.NullString
	if lead.Report != nil {
		b, err := json.Marshal(lead.Report)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal report")
		}
		reportJSON = sql.NullString{String: string(b), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leads (id, email, business_name, place_id, overall_score, rot_score, status, hot, report, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lead.ID, lead.Email, lead.BusinessName, lead.PlaceID,
		lead.OverallScore, lead.RotScore, lead.StatusLabel, lead.Hot,
		reportJSON, lead.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: insert lead")
}

func (s *SQLiteStore) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, business_name, place_id, overall_score, rot_score, status, hot, report, created_at
		 FROM leads WHERE id = ?`,
		id,
	)
	return scanLead(row)
}

func (s *SQLiteStore) ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, error) {
	query := `SELECT id, email, business_name, place_id, overall_score, rot_score, status, hot, report, created_at
	          FROM leads WHERE 1=1`
	var args []any

	if filter.HotOnly {
		query += ` AND hot = 1`
	}
	if filter.MinScore > 0 {
		query += ` AND overall_score >= ?`
		args = append(args, filter.MinScore)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *l)
	}
	return leads, eris.Wrap(rows.Err(), "sqlite: list leads iterate")
}

// helpers

type scannable interface {
	Scan(dest ...any) error
}

func scanLead(row scannable) (*model.Lead, error) {
	var l model.Lead
	var placeID sql.NullString
	var reportJSON sql.NullString

	err := row.Scan(&l.ID, &l.Email, &l.BusinessName, &placeID,
		&l.OverallScore, &l.RotScore, &l.StatusLabel, &l.Hot,
		&reportJSON, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("lead not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan lead")
	}

	l.PlaceID = placeID.String
	if reportJSON.Valid {
		l.Report = &score.Report{}
		if err := json.Unmarshal([]byte(reportJSON.String), l.Report); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal report")
		}
	}
	return &l, nil
}
