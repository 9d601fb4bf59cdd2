package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates that no snapshot exists for the requested account.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is a stored account-state snapshot.
type Snapshot struct {
	ID        int             `json:"id"`
	AccountID string          `json:"accountId"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Repository defines persistent storage for account snapshots.
type Repository interface {
	Save(ctx context.Context, accountID string, data json.RawMessage) error
	GetLatest(ctx context.Context, accountID string) (*Snapshot, error)
	List(ctx context.Context, accountID string, limit int) ([]Snapshot, error)
	Prune(ctx context.Context, accountID string, keep int) error
}

// PgRepository implements Repository with PostgreSQL.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL snapshot repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Save(ctx context.Context, accountID string, data json.RawMessage) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO account_snapshots (account_id, data)
		 VALUES ($1, $2::jsonb)`,
		accountID, data)
	if err != nil {
		return fmt.Errorf("saving snapshot for %s: %w", accountID, err)
	}
	return nil
}

func (r *PgRepository) GetLatest(ctx context.Context, accountID string) (*Snapshot, error) {
	var s Snapshot
	err := r.pool.QueryRow(ctx,
		`SELECT id, account_id, data, created_at
		 FROM account_snapshots
		 WHERE account_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`, accountID).Scan(&s.ID, &s.AccountID, &s.Data, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting latest snapshot: %w", err)
	}
	return &s, nil
}

func (r *PgRepository) List(ctx context.Context, accountID string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 30
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, account_id, data, created_at
		 FROM account_snapshots
		 WHERE account_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.AccountID, &s.Data, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return snapshots, nil
}

// Prune removes all but the newest keep snapshots of the account.
func (r *PgRepository) Prune(ctx context.Context, accountID string, keep int) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM account_snapshots
		 WHERE account_id = $1
		 AND id NOT IN (
			SELECT id FROM account_snapshots
			WHERE account_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		 )`, accountID, keep)
	if err != nil {
		return fmt.Errorf("pruning snapshots for %s: %w", accountID, err)
	}
	return nil
}
