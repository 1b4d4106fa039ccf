package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"career-compass/internal/domain"
)

// TraitRepository lee el perfil acumulado de cada evaluacion, una fila por rasgo.
// Las filas se escriben junto con la evaluacion en AssessmentRepository.Create.
type TraitRepository interface {
	FindByAssessmentID(ctx context.Context, assessmentID string) ([]domain.StudentTrait, error)
}

type PgTraitRepository struct {
	pool *pgxpool.Pool
}

func NewPgTraitRepository(pool *pgxpool.Pool) *PgTraitRepository {
	return &PgTraitRepository{pool: pool}
}

func upsertTrait(ctx context.Context, ex execer, trait domain.StudentTrait) error {
	const query = `
		INSERT INTO student_traits (id, assessment_id, trait, value, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (assessment_id, trait)
		DO UPDATE SET value = EXCLUDED.value
	`

	_, err := ex.Exec(ctx, query,
		trait.ID,
		trait.AssessmentID,
		trait.Trait,
		trait.Value,
		trait.CreatedAt,
	)
	return err
}

func (r *PgTraitRepository) FindByAssessmentID(ctx context.Context, assessmentID string) ([]domain.StudentTrait, error) {
	const query = `
		SELECT id, assessment_id, trait, value, created_at
		FROM student_traits
		WHERE assessment_id = $1
		ORDER BY trait
	`

	rows, err := r.pool.Query(ctx, query, assessmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var traits []domain.StudentTrait
	for rows.Next() {
		var t domain.StudentTrait
		if err := rows.Scan(
			&t.ID,
			&t.AssessmentID,
			&t.Trait,
			&t.Value,
			&t.CreatedAt,
		); err != nil {
			return nil, err
		}
		traits = append(traits, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return traits, nil
}
