package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-compass/internal/domain"
	"career-compass/internal/service"
)

// QuizHandler mantiene dependencias para los reality quizzes.
type QuizHandler struct {
	logger  *zap.Logger
	quizzes *service.QuizService
}

// NewQuizHandler crea una instancia de QuizHandler con dependencias necesarias.
func NewQuizHandler(logger *zap.Logger, quizzes *service.QuizService) *QuizHandler {
	return &QuizHandler{
		logger:  logger,
		quizzes: quizzes,
	}
}

// ListQuizzes maneja GET /quizzes.
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"quizzes": h.quizzes.List()})
}

// quizView oculta la guia de puntaje y los puntajes de cada opcion.
type quizView struct {
	Key       string             `json:"key"`
	CareerID  string             `json:"careerId,omitempty"`
	Title     string             `json:"title"`
	Questions []quizQuestionView `json:"questions"`
}

type quizQuestionView struct {
	ID       string           `json:"id"`
	Scenario string           `json:"scenario"`
	Options  []quizOptionView `json:"options"`
}

type quizOptionView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func newQuizView(q domain.RealityQuiz) quizView {
	view := quizView{Key: q.Key, CareerID: q.CareerID, Title: q.Title}
	for _, question := range q.Questions {
		qv := quizQuestionView{ID: question.ID, Scenario: question.Scenario}
		for _, o := range question.Options {
			qv.Options = append(qv.Options, quizOptionView{ID: o.ID, Text: o.Text})
		}
		view.Questions = append(view.Questions, qv)
	}
	return view
}

// GetQuiz maneja GET /quizzes/:key.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quiz, err := h.quizzes.Get(c.Param("key"))
	if err != nil {
		if errors.Is(err, service.ErrQuizNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "quiz not found"})
			return
		}
		h.logger.Error("get quiz failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch quiz"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quiz": newQuizView(quiz)})
}

// SubmitQuiz maneja POST /quizzes/:key/submit.
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}
	var req struct {
		Answers []domain.QuizSelection `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid submit quiz request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "detail": err.Error()})
		return
	}

	result, err := h.quizzes.Submit(c.Request.Context(), claims.UserID, c.Param("key"), req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuizNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "quiz not found"})
		case errors.Is(err, service.ErrInvalidAnswer):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("submit quiz failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not score quiz"})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListResults maneja GET /students/:id/quiz-results.
func (h *QuizHandler) ListResults(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}
	studentID := c.Param("id")
	if !canViewStudent(claims, studentID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	attempts, err := h.quizzes.History(c.Request.Context(), studentID)
	if err != nil {
		h.logger.Error("list quiz results failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list quiz results"})
		return
	}
	if attempts == nil {
		attempts = []domain.QuizAttempt{}
	}
	c.JSON(http.StatusOK, gin.H{"results": attempts})
}
