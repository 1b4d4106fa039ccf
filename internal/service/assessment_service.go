package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"career-compass/internal/domain"
	"career-compass/internal/metrics"
	"career-compass/internal/repository"
)

// AssessmentService acumula respuestas de la evaluacion y calcula coincidencias de carrera.
type AssessmentService struct {
	bank        domain.AssessmentBank
	options     map[string]map[string]domain.TraitVector
	careers     repository.CareerRepository
	assessments repository.AssessmentRepository
	traits      repository.TraitRepository
	cache       MatchCache
	cacheTTL    time.Duration
	engine      MatchEngine
	logger      *zap.Logger
}

func NewAssessmentService(
	bank domain.AssessmentBank,
	careers repository.CareerRepository,
	assessments repository.AssessmentRepository,
	traits repository.TraitRepository,
	cache MatchCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *AssessmentService {
	options := make(map[string]map[string]domain.TraitVector, len(bank.Questions))
	for _, q := range bank.Questions {
		byID := make(map[string]domain.TraitVector, len(q.Options))
		for _, o := range q.Options {
			byID[o.ID] = o.Deltas
		}
		options[q.ID] = byID
	}
	return &AssessmentService{
		bank:        bank,
		options:     options,
		careers:     careers,
		assessments: assessments,
		traits:      traits,
		cache:       cache,
		cacheTTL:    cacheTTL,
		engine:      DefaultMatchEngine,
		logger:      logger,
	}
}

// Bank devuelve el banco de preguntas cargado al iniciar.
func (s *AssessmentService) Bank() domain.AssessmentBank {
	return s.bank
}

// ResolveAnswers traduce selecciones a deltas; rechaza ids desconocidos y preguntas repetidas.
func (s *AssessmentService) ResolveAnswers(selections []domain.AnswerSelection) ([]domain.AssessmentAnswer, error) {
	answers := make([]domain.AssessmentAnswer, 0, len(selections))
	seen := make(map[string]struct{}, len(selections))
	for _, sel := range selections {
		qID := strings.TrimSpace(sel.QuestionID)
		oID := strings.TrimSpace(sel.OptionID)
		opts, ok := s.options[qID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown question %q", ErrInvalidAnswer, sel.QuestionID)
		}
		if _, dup := seen[qID]; dup {
			return nil, fmt.Errorf("%w: question %q answered more than once", ErrInvalidAnswer, qID)
		}
		seen[qID] = struct{}{}
		delta, ok := opts[oID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown option %q for question %q", ErrInvalidAnswer, sel.OptionID, qID)
		}
		answers = append(answers, domain.AssessmentAnswer{QuestionID: qID, OptionID: oID, Delta: delta})
	}
	return answers, nil
}

// Submit guarda una evaluacion inmutable y devuelve el perfil con las coincidencias actuales.
func (s *AssessmentService) Submit(ctx context.Context, studentID string, selections []domain.AnswerSelection) (domain.AssessmentResult, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return domain.AssessmentResult{}, fmt.Errorf("%w: missing student id", ErrInvalidAnswer)
	}
	if len(selections) == 0 {
		return domain.AssessmentResult{}, fmt.Errorf("%w: no answers", ErrInvalidAnswer)
	}

	answers, err := s.ResolveAnswers(selections)
	if err != nil {
		return domain.AssessmentResult{}, err
	}
	deltas := make([]domain.TraitVector, 0, len(answers))
	for _, a := range answers {
		deltas = append(deltas, a.Delta)
	}

	now := time.Now().UTC()
	assessment := domain.Assessment{
		ID:        uuid.NewString(),
		StudentID: studentID,
		BankKey:   s.bank.Key,
		Answers:   selections,
		CreatedAt: now,
	}
	profile := domain.StudentTraitProfile{
		AssessmentID: assessment.ID,
		StudentID:    studentID,
		Traits:       AccumulateTraits(deltas...),
		SubmittedAt:  now,
	}

	if s.assessments != nil {
		dims := profile.Traits.Dimensions()
		rows := make([]domain.StudentTrait, 0, len(dims))
		for _, dim := range dims {
			rows = append(rows, domain.StudentTrait{
				ID:           uuid.NewString(),
				AssessmentID: assessment.ID,
				Trait:        dim,
				Value:        profile.Traits[dim],
				CreatedAt:    now,
			})
		}
		if err := s.assessments.Create(ctx, assessment, rows); err != nil {
			if s.logger != nil {
				s.logger.Warn("assessment persist failed", zap.Error(err), zap.String("assessment_id", assessment.ID))
			}
			return domain.AssessmentResult{}, fmt.Errorf("create assessment: %w", err)
		}
	}

	matches, err := s.Matches(ctx, profile.Traits)
	if err != nil {
		return domain.AssessmentResult{}, err
	}

	metrics.AssessmentSubmissions.Inc()
	if s.logger != nil {
		s.logger.Info("assessment submitted",
			zap.String("assessment_id", assessment.ID),
			zap.String("student_id", studentID),
			zap.Int("answers", len(answers)),
		)
	}
	return domain.AssessmentResult{Profile: profile, Matches: matches}, nil
}

// Get recarga una evaluacion y recalcula las coincidencias contra el catalogo vigente.
func (s *AssessmentService) Get(ctx context.Context, id string) (domain.AssessmentResult, error) {
	if s.assessments == nil || s.traits == nil {
		return domain.AssessmentResult{}, errors.New("assessment service not configured")
	}
	assessment, err := s.assessments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AssessmentResult{}, ErrAssessmentNotFound
		}
		return domain.AssessmentResult{}, fmt.Errorf("get assessment %s: %w", id, err)
	}
	rows, err := s.traits.FindByAssessmentID(ctx, assessment.ID)
	if err != nil {
		return domain.AssessmentResult{}, fmt.Errorf("get traits for assessment %s: %w", id, err)
	}
	traits := make(domain.TraitVector, len(rows))
	for _, t := range rows {
		traits[t.Trait] = t.Value
	}

	matches, err := s.Matches(ctx, traits)
	if err != nil {
		return domain.AssessmentResult{}, err
	}
	return domain.AssessmentResult{
		Profile: domain.StudentTraitProfile{
			AssessmentID: assessment.ID,
			StudentID:    assessment.StudentID,
			Traits:       traits,
			SubmittedAt:  assessment.CreatedAt,
		},
		Matches: matches,
	}, nil
}

// Matches corre el motor contra el catalogo actual, usando el cache por version de catalogo.
func (s *AssessmentService) Matches(ctx context.Context, profile domain.TraitVector) ([]domain.MatchResult, error) {
	for _, dim := range profile.Dimensions() {
		if !isFinite(profile[dim]) {
			return nil, fmt.Errorf("%w: %q is not a finite number", ErrInvalidTraitValue, dim)
		}
	}
	if s.careers == nil {
		return nil, errors.New("assessment service not configured")
	}

	version, err := s.careers.CatalogVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog version: %w", err)
	}
	key := MatchCacheKey(profile, version)

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil && s.logger != nil {
			s.logger.Warn("match cache get failed", zap.Error(err))
		}
		if ok {
			metrics.MatchComputations.WithLabelValues("hit").Inc()
			return cached, nil
		}
	}

	careers, err := s.careers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list careers: %w", err)
	}
	start := time.Now()
	matches := s.engine.ComputeMatches(profile, careers)
	metrics.MatchDuration.Observe(time.Since(start).Seconds())
	metrics.MatchComputations.WithLabelValues("miss").Inc()

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, matches, s.cacheTTL); err != nil && s.logger != nil {
			s.logger.Warn("match cache set failed", zap.Error(err))
		}
	}
	return matches, nil
}
