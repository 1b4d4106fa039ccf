package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"career-compass/internal/domain"
	"career-compass/internal/repository"
)

// CareerService expone el catalogo de carreras.
type CareerService struct {
	careers repository.CareerRepository
}

func NewCareerService(careers repository.CareerRepository) *CareerService {
	return &CareerService{careers: careers}
}

func (s *CareerService) List(ctx context.Context) ([]domain.CareerProfile, error) {
	careers, err := s.careers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list careers: %w", err)
	}
	return careers, nil
}

func (s *CareerService) Get(ctx context.Context, id string) (domain.CareerProfile, error) {
	career, err := s.careers.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CareerProfile{}, ErrCareerNotFound
		}
		return domain.CareerProfile{}, fmt.Errorf("get career %s: %w", id, err)
	}
	return career, nil
}

// Similar devuelve hasta k carreras cercanas; falla con ErrCareerNotFound si el id no existe.
func (s *CareerService) Similar(ctx context.Context, id string, k int) ([]domain.CareerProfile, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if k <= 0 || k > 20 {
		k = 5
	}
	similar, err := s.careers.Similar(ctx, strings.TrimSpace(id), k)
	if err != nil {
		return nil, fmt.Errorf("similar careers for %s: %w", id, err)
	}
	return similar, nil
}
