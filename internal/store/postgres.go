package store

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/ayush/employee-admin/internal/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

// PostgresStore keeps login accounts in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate applies the embedded goose migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(s.pool)
	defer db.Close()

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (*models.Credential, error) {
	var c models.Credential
	err := s.pool.QueryRow(ctx,
		`SELECT id::text, username, password, created_at FROM logins WHERE username = $1`, username,
	).Scan(&c.ID, &c.Username, &c.PasswordHash, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errCredentialNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find login: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, username, passwordHash string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO logins (username, password)
		 VALUES ($1, $2)
		 ON CONFLICT (username) DO UPDATE SET password = EXCLUDED.password`,
		username, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("upsert login: %w", err)
	}
	return nil
}
