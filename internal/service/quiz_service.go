package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"career-compass/internal/domain"
	"career-compass/internal/metrics"
	"career-compass/internal/repository"
)

// QuizService puntua reality quizzes ya validados y guarda los intentos.
type QuizService struct {
	quizzes map[string]LoadedQuiz
	results repository.QuizResultRepository
	scorer  QuizScorer
	logger  *zap.Logger
}

func NewQuizService(quizzes []LoadedQuiz, results repository.QuizResultRepository, logger *zap.Logger) *QuizService {
	byKey := make(map[string]LoadedQuiz, len(quizzes))
	for _, q := range quizzes {
		byKey[q.Quiz.Key] = q
	}
	return &QuizService{
		quizzes: byKey,
		results: results,
		scorer:  DefaultQuizScorer,
		logger:  logger,
	}
}

// QuizSummary es la vista de listado de un quiz.
type QuizSummary struct {
	Key       string `json:"key"`
	CareerID  string `json:"careerId,omitempty"`
	Title     string `json:"title"`
	Questions int    `json:"questions"`
}

func (s *QuizService) List() []QuizSummary {
	out := make([]QuizSummary, 0, len(s.quizzes))
	for _, q := range s.quizzes {
		out = append(out, QuizSummary{
			Key:       q.Quiz.Key,
			CareerID:  q.Quiz.CareerID,
			Title:     q.Quiz.Title,
			Questions: len(q.Quiz.Questions),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func (s *QuizService) Get(key string) (domain.RealityQuiz, error) {
	q, ok := s.quizzes[strings.TrimSpace(key)]
	if !ok {
		return domain.RealityQuiz{}, ErrQuizNotFound
	}
	return q.Quiz, nil
}

// Submit resuelve las opciones elegidas, puntua y persiste el intento.
// Se aceptan quizzes incompletos: las preguntas sin responder aportan 0.
func (s *QuizService) Submit(ctx context.Context, studentID, key string, selections []domain.QuizSelection) (domain.QuizResult, error) {
	loaded, ok := s.quizzes[strings.TrimSpace(key)]
	if !ok {
		return domain.QuizResult{}, ErrQuizNotFound
	}

	selected, err := resolveQuizSelections(loaded.Quiz, selections)
	if err != nil {
		return domain.QuizResult{}, err
	}
	result := s.scorer.Score(selected, loaded.Guide)

	if s.results != nil && strings.TrimSpace(studentID) != "" {
		attempt := domain.QuizAttempt{
			ID:        uuid.NewString(),
			StudentID: strings.TrimSpace(studentID),
			QuizKey:   loaded.Quiz.Key,
			Result:    result,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.results.Create(ctx, attempt); err != nil {
			return domain.QuizResult{}, fmt.Errorf("create quiz result: %w", err)
		}
	}

	metrics.QuizSubmissions.WithLabelValues(loaded.Quiz.Key, result.BandKey).Inc()
	if s.logger != nil {
		s.logger.Info("quiz scored",
			zap.String("quiz", loaded.Quiz.Key),
			zap.String("student_id", studentID),
			zap.Int("composite", result.CompositeScore),
			zap.String("band", result.BandKey),
		)
	}
	return result, nil
}

// History lista los intentos de un estudiante, el mas reciente primero.
func (s *QuizService) History(ctx context.Context, studentID string) ([]domain.QuizAttempt, error) {
	if s.results == nil {
		return nil, nil
	}
	attempts, err := s.results.ListByStudent(ctx, strings.TrimSpace(studentID))
	if err != nil {
		return nil, fmt.Errorf("list quiz results: %w", err)
	}
	for i := range attempts {
		if q, ok := s.quizzes[attempts[i].QuizKey]; ok {
			for _, b := range q.Guide.Bands() {
				if b.Key == attempts[i].Result.BandKey {
					attempts[i].Result.BandTitle = b.Title
					attempts[i].Result.BandMessage = b.Message
					break
				}
			}
		}
	}
	return attempts, nil
}

func resolveQuizSelections(quiz domain.RealityQuiz, selections []domain.QuizSelection) ([]domain.TraitVector, error) {
	questions := make(map[string]domain.QuizQuestion, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions[q.ID] = q
	}
	seen := make(map[string]struct{}, len(selections))
	selected := make([]domain.TraitVector, 0, len(selections))
	for _, sel := range selections {
		q, ok := questions[strings.TrimSpace(sel.QuestionID)]
		if !ok {
			return nil, fmt.Errorf("%w: unknown question %q", ErrInvalidAnswer, sel.QuestionID)
		}
		if _, dup := seen[q.ID]; dup {
			return nil, fmt.Errorf("%w: question %q answered more than once", ErrInvalidAnswer, q.ID)
		}
		seen[q.ID] = struct{}{}
		found := false
		for _, o := range q.Options {
			if o.ID == strings.TrimSpace(sel.OptionID) {
				selected = append(selected, o.Scores)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: unknown option %q for question %q", ErrInvalidAnswer, sel.OptionID, q.ID)
		}
	}
	return selected, nil
}
