package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"lineupplanner/internal/domain"
)

// undefinedTable is the SQLSTATE postgres returns when lineup_state has not been created yet.
const undefinedTable = "42P01"

const schema = `
	CREATE TABLE IF NOT EXISTS lineup_state (
		state_key  TEXT PRIMARY KEY,
		payload    JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// EnsureSchema creates the lineup_state table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

type stateRepository struct {
	DB  *sql.DB
	Key string
}

// NewStateRepository returns a StateStore keeping the session blob in one lineup_state row.
func NewStateRepository(db *sql.DB, key string) domain.StateStore {
	return &stateRepository{
		DB:  db,
		Key: key,
	}
}

func (r *stateRepository) Load(ctx context.Context) ([]byte, error) {
	query := `
		SELECT payload
		FROM lineup_state
		WHERE state_key = $1
	`
	var payload []byte
	err := r.DB.QueryRowContext(ctx, query, r.Key).Scan(&payload)
	if err != nil {
		var pqErr *pq.Error
		if errors.Is(err, sql.ErrNoRows) || (errors.As(err, &pqErr) && pqErr.Code == undefinedTable) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return payload, nil
}

func (r *stateRepository) Save(ctx context.Context, payload []byte) error {
	query := `
		INSERT INTO lineup_state (state_key, payload, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (state_key) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`
	_, err := r.DB.ExecContext(ctx, query, r.Key, string(payload))
	return err
}
