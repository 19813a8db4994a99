package testutil

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// usersSchema mirrors the externally-owned users table.
// The service itself never creates or migrates this table.
const usersSchema = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// ResetUsersTable creates the users table if needed and empties it,
// restarting the id sequence so tests see deterministic IDs.
func ResetUsersTable(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, usersSchema); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE users RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate users table: %w", err)
	}
	return nil
}

const advisoryLockID int64 = 740031

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}
