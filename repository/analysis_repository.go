package repository

import (
	"context"
	"fmt"

	"newscheck-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalysisRepository handles database operations for analyses
type AnalysisRepository struct {
	db *pgxpool.Pool
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Create stores a new analysis
func (r *AnalysisRepository) Create(ctx context.Context, analysis *models.Analysis) error {
	query := `
		INSERT INTO analyses (
			id, article, label, explanation_text, explanation_source, failure_reason
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.QueryRow(
		ctx, query,
		analysis.ID,
		analysis.Article,
		analysis.Label,
		analysis.ExplanationText,
		analysis.ExplanationSource,
		analysis.FailureReason,
	).Scan(&analysis.CreatedAt)

	return err
}

// GetByID retrieves an analysis by ID
func (r *AnalysisRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Analysis, error) {
	analysis := &models.Analysis{}
	query := `
		SELECT id, article, label, explanation_text, explanation_source,
			failure_reason, created_at
		FROM analyses
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&analysis.ID,
		&analysis.Article,
		&analysis.Label,
		&analysis.ExplanationText,
		&analysis.ExplanationSource,
		&analysis.FailureReason,
		&analysis.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return analysis, nil
}

// List retrieves recent analyses, newest first
func (r *AnalysisRepository) List(ctx context.Context, limit, offset int) ([]*models.Analysis, error) {
	query := `
		SELECT id, article, label, explanation_text, explanation_source,
			failure_reason, created_at
		FROM analyses
		ORDER BY created_at DESC`

	args := []interface{}{}
	argIndex := 1

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, limit)
		argIndex++
		if offset > 0 {
			query += fmt.Sprintf(" OFFSET $%d", argIndex)
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []*models.Analysis
	for rows.Next() {
		analysis := &models.Analysis{}
		err := rows.Scan(
			&analysis.ID,
			&analysis.Article,
			&analysis.Label,
			&analysis.ExplanationText,
			&analysis.ExplanationSource,
			&analysis.FailureReason,
			&analysis.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, analysis)
	}

	return analyses, rows.Err()
}

// Delete removes an analysis
func (r *AnalysisRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM analyses WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
