package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wordledger/wordledger/internal/model"
)

// Common errors for word repository operations.
var (
	ErrWordExists   = errors.New("word already exists")
	ErrWordTooLong  = errors.New("word exceeds column length")
	ErrWordNotFound = errors.New("word not found")
)

// Postgres SQLSTATE codes mapped to repository errors.
const (
	codeUniqueViolation  = "23505"
	codeStringTruncation = "22001"
)

// CreateWord inserts text and returns the stored row.
func (r *Repository) CreateWord(ctx context.Context, text string) (*model.Word, error) {
	query := `
		INSERT INTO words (text)
		VALUES ($1)
		RETURNING id, text, timestamp
	`

	var w model.Word
	err := r.pool.QueryRow(ctx, query, text).Scan(&w.ID, &w.Text, &w.Timestamp)
	if err != nil {
		return nil, classifyWriteError(err)
	}

	w.Timestamp = w.Timestamp.UTC()
	return &w, nil
}

// ListWords returns every word, newest first. Ties on timestamp are broken
// by id so the order is stable.
func (r *Repository) ListWords(ctx context.Context) ([]model.Word, error) {
	query := `
		SELECT id, text, timestamp
		FROM words
		ORDER BY timestamp DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}

	words, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Word, error) {
		var w model.Word
		err := row.Scan(&w.ID, &w.Text, &w.Timestamp)
		w.Timestamp = w.Timestamp.UTC()
		return w, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan words: %w", err)
	}

	return words, nil
}

// DeleteWord removes the word with id.
func (r *Repository) DeleteWord(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM words WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWordNotFound
	}
	return nil
}

// classifyWriteError maps constraint failures to repository errors.
func classifyWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return ErrWordExists
		case codeStringTruncation:
			return ErrWordTooLong
		}
	}
	return fmt.Errorf("failed to create word: %w", err)
}
