package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"career-compass/internal/domain"
)

type QuizResultRepository interface {
	Create(ctx context.Context, attempt domain.QuizAttempt) error
	ListByStudent(ctx context.Context, studentID string) ([]domain.QuizAttempt, error)
}

type PgQuizResultRepository struct {
	pool *pgxpool.Pool
}

func NewPgQuizResultRepository(pool *pgxpool.Pool) *PgQuizResultRepository {
	return &PgQuizResultRepository{pool: pool}
}

func (r *PgQuizResultRepository) Create(ctx context.Context, attempt domain.QuizAttempt) error {
	const query = `
		INSERT INTO quiz_results (id, student_id, quiz_key, composite_score, band_key, trait_totals, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	totals, err := marshalVector(attempt.Result.TraitTotals)
	if err != nil {
		return fmt.Errorf("marshal trait totals: %w", err)
	}
	_, err = r.pool.Exec(ctx, query,
		attempt.ID,
		attempt.StudentID,
		attempt.QuizKey,
		attempt.Result.CompositeScore,
		attempt.Result.BandKey,
		totals,
		attempt.CreatedAt,
	)
	return err
}

func (r *PgQuizResultRepository) ListByStudent(ctx context.Context, studentID string) ([]domain.QuizAttempt, error) {
	const query = `
		SELECT id, student_id, quiz_key, composite_score, band_key, trait_totals, created_at
		FROM quiz_results
		WHERE student_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []domain.QuizAttempt
	for rows.Next() {
		var (
			a   domain.QuizAttempt
			raw []byte
		)
		if err := rows.Scan(
			&a.ID,
			&a.StudentID,
			&a.QuizKey,
			&a.Result.CompositeScore,
			&a.Result.BandKey,
			&raw,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &a.Result.TraitTotals); err != nil {
				return nil, fmt.Errorf("quiz result %s totals: %w", a.ID, err)
			}
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return attempts, nil
}
