package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.KeyValueStore = (*ClientStateRepository)(nil)

// ClientStateRepository keeps opaque client state in the client_state
// table, one row per key.
type ClientStateRepository struct {
	sqldb sqldb
}

func NewClientStateRepository(sqldb sqldb) ClientStateRepository {
	return ClientStateRepository{sqldb}
}

func (r ClientStateRepository) Get(
	ctx context.Context, key string,
) ([]byte, error) {
	const op = "ClientStateRepository.Get"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT value FROM client_state WHERE key = $1;`

	var value []byte
	err := r.sqldb.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return value, nil
}

func (r ClientStateRepository) Set(
	ctx context.Context, key string, value []byte,
) error {
	const op = "ClientStateRepository.Set"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := upsertState(ctx, r.sqldb, key, value); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Remove deletes the key. Removing an absent key is not an error.
func (r ClientStateRepository) Remove(ctx context.Context, key string) error {
	const op = "ClientStateRepository.Remove"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := deleteState(ctx, r.sqldb, key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Update runs fn inside a transaction. A transaction scoped advisory lock
// on the key serializes concurrent updates, including those of a key that
// has no row yet.
func (r ClientStateRepository) Update(
	ctx context.Context, key string, fn func(current []byte) ([]byte, error),
) (err error) {
	const op = "ClientStateRepository.Update"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin: %w", op, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	lockQuery := `SELECT pg_advisory_xact_lock(hashtextextended($1, 0));`
	if _, err := tx.ExecContext(ctx, lockQuery, key); err != nil {
		return fmt.Errorf("%s: failed to lock: %w", op, err)
	}

	query := `SELECT value FROM client_state WHERE key = $1 FOR UPDATE;`

	var current []byte
	err = tx.QueryRowContext(ctx, query, key).Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, err)
	}

	next, err := fn(current)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if len(next) == 0 {
		err = deleteState(ctx, tx, key)
	} else {
		err = upsertState(ctx, tx, key, next)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit: %w", op, err)
	}
	return nil
}

func upsertState(ctx context.Context, db execQuerier, key string, value []byte) error {
	query := `
		INSERT INTO client_state (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at;
	`

	if _, err := db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}
	return nil
}

func deleteState(ctx context.Context, db execQuerier, key string) error {
	query := `DELETE FROM client_state WHERE key = $1;`

	if _, err := db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}
	return nil
}
