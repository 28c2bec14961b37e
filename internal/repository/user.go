package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresUserRepository implements identity persistence against the users table.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a repository using the provided *sql.DB.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// UserExists checks whether a user with the given dni already exists.
func (r *PostgresUserRepository) UserExists(ctx context.Context, dni string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE dni = $1)`,
		dni,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("UserExists: %w", err)
	}
	return exists, nil
}

// CreateUser inserts a user record for dni. A concurrent insert of the same
// identifier is absorbed by ON CONFLICT DO NOTHING, keeping the operation
// idempotent.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, dni string) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO users (dni, created_at) VALUES ($1, NOW()) ON CONFLICT DO NOTHING`,
		dni,
	)
	if err != nil {
		return fmt.Errorf("CreateUser: %w", err)
	}
	return nil
}
