package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"career-compass/internal/domain"
)

// AssessmentRepository guarda la evaluacion y sus filas de rasgos en una sola transaccion.
type AssessmentRepository interface {
	Create(ctx context.Context, assessment domain.Assessment, traits []domain.StudentTrait) error
	GetByID(ctx context.Context, id string) (domain.Assessment, error)
}

type PgAssessmentRepository struct {
	pool *pgxpool.Pool
}

func NewPgAssessmentRepository(pool *pgxpool.Pool) *PgAssessmentRepository {
	return &PgAssessmentRepository{pool: pool}
}

func (r *PgAssessmentRepository) Create(ctx context.Context, assessment domain.Assessment, traits []domain.StudentTrait) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return writeAssessment(ctx, tx, assessment, traits)
	})
}

// writeAssessment corre dentro de la transaccion; cualquier error provoca rollback.
func writeAssessment(ctx context.Context, ex execer, assessment domain.Assessment, traits []domain.StudentTrait) error {
	const query = `
		INSERT INTO assessments (id, student_id, bank_key, answers, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	answers, err := json.Marshal(assessment.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	if _, err := ex.Exec(ctx, query,
		assessment.ID,
		assessment.StudentID,
		assessment.BankKey,
		answers,
		assessment.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}
	for _, trait := range traits {
		if err := upsertTrait(ctx, ex, trait); err != nil {
			return fmt.Errorf("trait upsert %s: %w", trait.Trait, err)
		}
	}
	return nil
}

func (r *PgAssessmentRepository) GetByID(ctx context.Context, id string) (domain.Assessment, error) {
	const query = `
		SELECT id, student_id, bank_key, answers, created_at
		FROM assessments
		WHERE id = $1
	`
	var (
		a   domain.Assessment
		raw []byte
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.StudentID,
		&a.BankKey,
		&raw,
		&a.CreatedAt,
	)
	if err != nil {
		return domain.Assessment{}, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &a.Answers); err != nil {
			return domain.Assessment{}, fmt.Errorf("assessment %s answers: %w", a.ID, err)
		}
	}
	return a, nil
}
