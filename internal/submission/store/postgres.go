package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"govdesk/internal/submission/models"
	"govdesk/pkg/platform/sentinel"
)

const (
	defaultSnapshotTable = "submission_snapshots"
	defaultSnapshotName  = "submissions"
)

// PostgresAdapter keeps the collection as a single JSONB snapshot row. Each
// save replaces the row and bumps its revision.
type PostgresAdapter struct {
	db    *sql.DB
	table string
	name  string
}

// PostgresAdapterOption configures a PostgresAdapter instance.
type PostgresAdapterOption func(*PostgresAdapter)

// WithSnapshotTable overrides the table name.
func WithSnapshotTable(table string) PostgresAdapterOption {
	return func(a *PostgresAdapter) {
		if table != "" {
			a.table = table
		}
	}
}

// WithSnapshotName overrides the row key, so several collections can share a table.
func WithSnapshotName(name string) PostgresAdapterOption {
	return func(a *PostgresAdapter) {
		if name != "" {
			a.name = name
		}
	}
}

// NewPostgresAdapter constructs a PostgreSQL-backed adapter.
func NewPostgresAdapter(db *sql.DB, opts ...PostgresAdapterOption) *PostgresAdapter {
	a := &PostgresAdapter{db: db, table: defaultSnapshotTable, name: defaultSnapshotName}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// EnsureSchema creates the snapshot table when it does not exist.
func (a *PostgresAdapter) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			name       TEXT PRIMARY KEY,
			body       JSONB NOT NULL,
			revision   BIGINT NOT NULL DEFAULT 1,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, pq.QuoteIdentifier(a.table))
	if _, err := a.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create snapshot table: %w", err)
	}
	return nil
}

func (a *PostgresAdapter) Load(ctx context.Context) ([]*models.Submission, error) {
	query := fmt.Sprintf(`SELECT body FROM %s WHERE name = $1`, pq.QuoteIdentifier(a.table))
	var body []byte
	err := a.db.QueryRowContext(ctx, query, a.name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return []*models.Submission{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: select snapshot: %v", sentinel.ErrIO, err)
	}
	subs, err := decodeCollection(body)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", a.name, err)
	}
	return subs, nil
}

func (a *PostgresAdapter) Save(ctx context.Context, subs []*models.Submission) error {
	data, err := encodeCollection(subs)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (name, body, revision, updated_at)
		VALUES ($1, $2, 1, now())
		ON CONFLICT (name) DO UPDATE SET
			body = EXCLUDED.body,
			revision = %s.revision + 1,
			updated_at = now()
	`, pq.QuoteIdentifier(a.table), pq.QuoteIdentifier(a.table))
	if _, err := a.db.ExecContext(ctx, query, a.name, string(data)); err != nil {
		return fmt.Errorf("%w: upsert snapshot: %v", sentinel.ErrIO, err)
	}
	return nil
}

// Revision returns how many times the snapshot has been saved, 0 if never.
func (a *PostgresAdapter) Revision(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(`SELECT revision FROM %s WHERE name = $1`, pq.QuoteIdentifier(a.table))
	var rev int64
	err := a.db.QueryRowContext(ctx, query, a.name).Scan(&rev)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: select revision: %v", sentinel.ErrIO, err)
	}
	return rev, nil
}
