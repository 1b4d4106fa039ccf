package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"career-compass/internal/domain"
)

type CareerRepository interface {
	List(ctx context.Context) ([]domain.CareerProfile, error)
	GetByID(ctx context.Context, id string) (domain.CareerProfile, error)
	Upsert(ctx context.Context, career domain.CareerProfile) error
	CatalogVersion(ctx context.Context) (string, error)
	Similar(ctx context.Context, id string, k int) ([]domain.CareerProfile, error)
}

type PgCareerRepository struct {
	pool *pgxpool.Pool
}

func NewPgCareerRepository(pool *pgxpool.Pool) *PgCareerRepository {
	return &PgCareerRepository{pool: pool}
}

const careerColumns = `id, title, summary, interest_profile, value_profile, personality_profile, updated_at`

func (r *PgCareerRepository) Upsert(ctx context.Context, career domain.CareerProfile) error {
	const query = `
		INSERT INTO careers (id, title, summary, interest_profile, value_profile, personality_profile, embedding, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id)
		DO UPDATE SET
			title = EXCLUDED.title,
			summary = EXCLUDED.summary,
			interest_profile = EXCLUDED.interest_profile,
			value_profile = EXCLUDED.value_profile,
			personality_profile = EXCLUDED.personality_profile,
			embedding = EXCLUDED.embedding,
			updated_at = EXCLUDED.updated_at
	`

	interest, err := marshalVector(career.InterestProfile)
	if err != nil {
		return fmt.Errorf("marshal interest profile: %w", err)
	}
	values, err := marshalVector(career.ValueProfile)
	if err != nil {
		return fmt.Errorf("marshal value profile: %w", err)
	}
	personality, err := marshalVector(career.PersonalityProfile)
	if err != nil {
		return fmt.Errorf("marshal personality profile: %w", err)
	}

	updatedAt := career.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	_, err = r.pool.Exec(ctx, query,
		career.ID,
		career.Title,
		career.Summary,
		interest,
		values,
		personality,
		pgvector.NewVector(career.Embedding()),
		updatedAt,
	)
	return err
}

func (r *PgCareerRepository) List(ctx context.Context) ([]domain.CareerProfile, error) {
	query := `SELECT ` + careerColumns + ` FROM careers ORDER BY title, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCareers(rows)
}

func (r *PgCareerRepository) GetByID(ctx context.Context, id string) (domain.CareerProfile, error) {
	query := `SELECT ` + careerColumns + ` FROM careers WHERE id = $1`
	career, err := scanCareer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return domain.CareerProfile{}, err
	}
	return career, nil
}

// CatalogVersion cambia cada vez que se inserta, borra o actualiza una carrera.
func (r *PgCareerRepository) CatalogVersion(ctx context.Context) (string, error) {
	const query = `
		SELECT COUNT(*), COALESCE(MAX(updated_at), 'epoch'::timestamptz)
		FROM careers
	`
	var (
		count  int64
		latest time.Time
	)
	if err := r.pool.QueryRow(ctx, query).Scan(&count, &latest); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d-%d", count, latest.UTC().UnixNano()), nil
}

// Similar devuelve las k carreras mas cercanas por distancia L2 del embedding.
func (r *PgCareerRepository) Similar(ctx context.Context, id string, k int) ([]domain.CareerProfile, error) {
	if k <= 0 {
		k = 5
	}
	query := `
		SELECT ` + careerColumns + `
		FROM careers
		WHERE id <> $1
		ORDER BY embedding <-> (SELECT embedding FROM careers WHERE id = $1)
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, id, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCareers(rows)
}

func scanCareers(rows pgxRows) ([]domain.CareerProfile, error) {
	var careers []domain.CareerProfile
	for rows.Next() {
		career, err := scanCareer(rows)
		if err != nil {
			return nil, err
		}
		careers = append(careers, career)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return careers, nil
}

func scanCareer(row rowScanner) (domain.CareerProfile, error) {
	var (
		c                             domain.CareerProfile
		interest, values, personality []byte
	)
	if err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Summary,
		&interest,
		&values,
		&personality,
		&c.UpdatedAt,
	); err != nil {
		return domain.CareerProfile{}, err
	}
	var err error
	if c.InterestProfile, err = unmarshalVector(interest); err != nil {
		return domain.CareerProfile{}, fmt.Errorf("career %s interest profile: %w", c.ID, err)
	}
	if c.ValueProfile, err = unmarshalVector(values); err != nil {
		return domain.CareerProfile{}, fmt.Errorf("career %s value profile: %w", c.ID, err)
	}
	if c.PersonalityProfile, err = unmarshalVector(personality); err != nil {
		return domain.CareerProfile{}, fmt.Errorf("career %s personality profile: %w", c.ID, err)
	}
	return c, nil
}

func marshalVector(v domain.TraitVector) ([]byte, error) {
	if v == nil {
		v = domain.TraitVector{}
	}
	return json.Marshal(v)
}

func unmarshalVector(raw []byte) (domain.TraitVector, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var v domain.TraitVector
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, nil
	}
	return v, nil
}
