package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/clauseworks/pactdiff/internal/core/domain"
	"github.com/clauseworks/pactdiff/internal/core/ports/driven"
)

// comparisonStore implements driven.ComparisonStore.
type comparisonStore struct {
	store *Store
}

var _ driven.ComparisonStore = (*comparisonStore)(nil)

// Save stores or updates a comparison.
func (s *comparisonStore) Save(ctx context.Context, cmp *domain.Comparison) error {
	resultJSON, err := json.Marshal(cmp.Result)
	if err != nil {
		return fmt.Errorf("marshalling result: %w", err)
	}

	now := time.Now().UTC()
	if cmp.CreatedAt.IsZero() {
		cmp.CreatedAt = now
	}
	if cmp.UpdatedAt.IsZero() {
		cmp.UpdatedAt = now
	}

	var completedAt any
	if cmp.CompletedAt != nil {
		completedAt = *cmp.CompletedAt
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO comparisons
			(id, original_document_id, modified_document_id, level, state, progress, message, result, created_at, updated_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			original_document_id = excluded.original_document_id,
			modified_document_id = excluded.modified_document_id,
			level = excluded.level,
			state = excluded.state,
			progress = excluded.progress,
			message = excluded.message,
			result = excluded.result,
			updated_at = excluded.updated_at,
			completed_at = excluded.completed_at
	`, cmp.ID, cmp.OriginalDocumentID, cmp.ModifiedDocumentID, string(cmp.Level),
		string(cmp.State), cmp.Progress, cmp.Message, string(resultJSON),
		cmp.CreatedAt, cmp.UpdatedAt, completedAt)

	if err != nil {
		return fmt.Errorf("saving comparison: %w", err)
	}
	return nil
}

// Get retrieves a comparison by ID.
func (s *comparisonStore) Get(ctx context.Context, id string) (*domain.Comparison, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, original_document_id, modified_document_id, level, state, progress, message, result, created_at, updated_at, completed_at
		FROM comparisons WHERE id = ?
	`, id)

	cmp, err := scanComparison(row.Scan)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return cmp, err
}

// List returns all comparisons, newest first.
func (s *comparisonStore) List(ctx context.Context) ([]domain.Comparison, error) {
	return s.query(ctx, `
		SELECT id, original_document_id, modified_document_id, level, state, progress, message, result, created_at, updated_at, completed_at
		FROM comparisons
		ORDER BY created_at DESC
	`)
}

// ListByState returns comparisons in the given state, oldest first.
func (s *comparisonStore) ListByState(ctx context.Context, state domain.ComparisonState) ([]domain.Comparison, error) {
	return s.query(ctx, `
		SELECT id, original_document_id, modified_document_id, level, state, progress, message, result, created_at, updated_at, completed_at
		FROM comparisons WHERE state = ?
		ORDER BY created_at ASC
	`, string(state))
}

// Delete removes a comparison.
func (s *comparisonStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM comparisons WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting comparison: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *comparisonStore) query(ctx context.Context, sqlText string, args ...any) ([]domain.Comparison, error) {
	rows, err := s.store.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("querying comparisons: %w", err)
	}
	defer rows.Close()

	var cmps []domain.Comparison //nolint:prealloc // size unknown from query
	for rows.Next() {
		cmp, err := scanComparison(rows.Scan)
		if err != nil {
			return nil, err
		}
		cmps = append(cmps, *cmp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comparisons: %w", err)
	}

	return cmps, nil
}

// scanComparison scans one comparison row through the given scan function.
func scanComparison(scan func(dest ...any) error) (*domain.Comparison, error) {
	var cmp domain.Comparison
	var level, state string
	var resultJSON sql.NullString
	var completedAt sql.NullTime

	if err := scan(&cmp.ID, &cmp.OriginalDocumentID, &cmp.ModifiedDocumentID,
		&level, &state, &cmp.Progress, &cmp.Message, &resultJSON,
		&cmp.CreatedAt, &cmp.UpdatedAt, &completedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning comparison: %w", err)
	}

	cmp.Level = domain.ComparisonLevel(level)
	cmp.State = domain.ComparisonState(state)

	if resultJSON.Valid && resultJSON.String != "" && resultJSON.String != "null" {
		var result domain.Result
		if err := json.Unmarshal([]byte(resultJSON.String), &result); err != nil {
			return nil, fmt.Errorf("unmarshaling result: %w", err)
		}
		cmp.Result = &result
	}

	if completedAt.Valid {
		t := completedAt.Time
		cmp.CompletedAt = &t
	}

	return &cmp, nil
}
