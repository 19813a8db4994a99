// Package testutil provides helpers for tests that need a real PostgreSQL.
package testutil

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"go.uber.org/multierr"
)

// Cleanup releases resources acquired for a test database.
type Cleanup func() error

const (
	postgresImage  = "postgres"
	postgresTag    = "16-alpine"
	expireSeconds  = 120
	startupTimeout = 60 * time.Second
)

// StartPostgres provides a PostgreSQL instance for integration tests.
// If TEST_DATABASE_URL is set, that database is used directly.
// Otherwise a disposable container is started with dockertest.
func StartPostgres() (_ string, _ Cleanup, err error) {
	if url := os.Getenv("TEST_DATABASE_URL"); url != "" {
		return url, func() error { return nil }, nil
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		return "", nil, fmt.Errorf("could not construct pool: %w", err)
	}
	if err := pool.Client.Ping(); err != nil {
		return "", nil, fmt.Errorf("could not connect to Docker: %w", err)
	}

	resource, err := pool.RunWithOptions(
		&dockertest.RunOptions{
			Repository: postgresImage,
			Tag:        postgresTag,
			Env: []string{
				"POSTGRES_DB=userdb",
				"POSTGRES_USER=appuser",
				"POSTGRES_PASSWORD=changeme",
			},
		},
		func(config *docker.HostConfig) {
			config.AutoRemove = true
			config.RestartPolicy = docker.RestartPolicy{Name: "no"}
		},
	)
	if err != nil {
		return "", nil, fmt.Errorf("could not run postgres container: %w", err)
	}

	// Containers are removed even if the test process is killed.
	if err := resource.Expire(expireSeconds); err != nil {
		return "", nil, fmt.Errorf("could not set container expiry: %w", err)
	}

	cleanup := func() error {
		if purgeErr := pool.Purge(resource); purgeErr != nil {
			return fmt.Errorf("failed to purge postgres container: %w", purgeErr)
		}
		return nil
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, cleanup())
		}
	}()

	hostPort := resource.GetPort("5432/tcp")
	url := fmt.Sprintf(
		"postgres://appuser:changeme@%s/userdb?sslmode=disable",
		net.JoinHostPort("localhost", hostPort),
	)

	pool.MaxWait = startupTimeout
	if err = pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		p, pingErr := pgxpool.New(ctx, url)
		if pingErr != nil {
			return pingErr
		}
		defer p.Close()
		return p.Ping(ctx)
	}); err != nil {
		return "", nil, fmt.Errorf("postgres did not become ready: %w", err)
	}

	return url, cleanup, nil
}
