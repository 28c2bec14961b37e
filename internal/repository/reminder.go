// Package repository provides persistence implementations for the reminder
// and user services using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartbible/connect/internal/models"
)

// PostgresReminderRepository implements reminder CRUD against the
// my_histories table.
type PostgresReminderRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresReminderRepository creates a repository using the provided *sql.DB.
// db must be a valid connection to a PostgreSQL instance.
func NewPostgresReminderRepository(db *sql.DB) *PostgresReminderRepository {
	return &PostgresReminderRepository{DB: db}
}

// ListByOwner fetches all reminders whose dni equals owner. No ordering is
// imposed beyond creation time, which keeps the table stable between loads.
//
//	ctx:   context for cancellation and deadlines
//	owner: the resolved identity string scoping the records
//
// Returns a slice of models.Reminder or an error if the query or scanning fails.
func (r *PostgresReminderRepository) ListByOwner(ctx context.Context, owner string) ([]models.Reminder, error) {
	query, args, err := squirrel.
		Select("id", "slug", "title", "text", "verse_count", "time_option", "module", "is_personal", "dni", "created_at").
		From("my_histories").
		Where(squirrel.Eq{"dni": owner}).
		OrderBy("created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListByOwner: %w", err)
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		var rem models.Reminder
		if err := rows.Scan(
			&rem.ID, &rem.Slug, &rem.Title, &rem.Text, &rem.VerseCount,
			&rem.TimeOption, &rem.Module, &rem.IsPersonal, &rem.DNI, &rem.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

// Create inserts a new reminder owned by owner. The id is assigned here and
// created_at comes from the database clock. Returns the stored record with
// both fields filled in.
func (r *PostgresReminderRepository) Create(ctx context.Context, owner string, rem models.Reminder) (models.Reminder, error) {
	rem.ID = uuid.NewString()
	rem.DNI = owner

	var createdAt time.Time
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO my_histories (id, dni, slug, title, text, verse_count, time_option, module, is_personal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING created_at
	`, rem.ID, rem.DNI, rem.Slug, rem.Title, rem.Text, rem.VerseCount, rem.TimeOption, rem.Module, rem.IsPersonal).
		Scan(&createdAt)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("Create: %w", err)
	}

	rem.CreatedAt = createdAt
	return rem, nil
}

// Update overwrites the mutable fields of an existing reminder. The owner
// key and creation time are deliberately left untouched.
func (r *PostgresReminderRepository) Update(ctx context.Context, id string, rem models.Reminder) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE my_histories
		   SET slug = $1, title = $2, text = $3, verse_count = $4,
		       time_option = $5, module = $6, is_personal = $7
		 WHERE id = $8
	`, rem.Slug, rem.Title, rem.Text, rem.VerseCount, rem.TimeOption, rem.Module, rem.IsPersonal, id)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update rows affected: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes a reminder permanently. There is no soft delete and no undo.
func (r *PostgresReminderRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM my_histories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete rows affected: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// GetByID fetches a single reminder by id scoped to its owner.
func (r *PostgresReminderRepository) GetByID(ctx context.Context, owner, id string) (*models.Reminder, error) {
	var rem models.Reminder
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, slug, title, text, verse_count, time_option, module, is_personal, dni, created_at
		  FROM my_histories
		 WHERE id = $1 AND dni = $2
	`, id, owner).Scan(
		&rem.ID, &rem.Slug, &rem.Title, &rem.Text, &rem.VerseCount,
		&rem.TimeOption, &rem.Module, &rem.IsPersonal, &rem.DNI, &rem.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return &rem, nil
}

// SlugExists reports whether another reminder of the same owner already
// uses slug. excludeID skips the record being edited so an unchanged slug
// still validates.
func (r *PostgresReminderRepository) SlugExists(ctx context.Context, owner, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM my_histories WHERE dni = $1 AND slug = $2 AND id <> $3)
	`, owner, slug, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("SlugExists: %w", err)
	}
	return exists, nil
}
