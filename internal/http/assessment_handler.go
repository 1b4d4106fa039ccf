package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-compass/internal/domain"
	"career-compass/internal/service"
)

// AssessmentHandler mantiene dependencias para evaluaciones y coincidencias.
type AssessmentHandler struct {
	logger      *zap.Logger
	assessments *service.AssessmentService
}

// NewAssessmentHandler crea una instancia de AssessmentHandler con dependencias necesarias.
func NewAssessmentHandler(logger *zap.Logger, assessments *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{
		logger:      logger,
		assessments: assessments,
	}
}

// GetQuestions maneja GET /assessment.
func (h *AssessmentHandler) GetQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"assessment": h.assessments.Bank()})
}

// SubmitAssessment maneja POST /assessments.
func (h *AssessmentHandler) SubmitAssessment(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}
	var req struct {
		Answers []domain.AnswerSelection `json:"answers" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid submit assessment request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "detail": err.Error()})
		return
	}

	result, err := h.assessments.Submit(c.Request.Context(), claims.UserID, req.Answers)
	if err != nil {
		h.writeError(c, "submit assessment failed", err)
		return
	}
	result.Matches = limitMatches(result.Matches, c.Query("limit"))
	c.JSON(http.StatusCreated, result)
}

// GetAssessment maneja GET /assessments/:id; las coincidencias se recalculan en cada lectura.
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}
	result, err := h.assessments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "get assessment failed", err)
		return
	}
	if !canViewStudent(claims, result.Profile.StudentID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	result.Matches = limitMatches(result.Matches, c.Query("limit"))
	c.JSON(http.StatusOK, result)
}

// ComputeMatches maneja POST /matches con un perfil de rasgos ya acumulado.
func (h *AssessmentHandler) ComputeMatches(c *gin.Context) {
	var req struct {
		Profile domain.TraitVector `json:"profile" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid compute matches request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "detail": err.Error()})
		return
	}

	matches, err := h.assessments.Matches(c.Request.Context(), req.Profile)
	if err != nil {
		h.writeError(c, "compute matches failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": limitMatches(matches, c.Query("limit"))})
}

func (h *AssessmentHandler) writeError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrAssessmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
	case errors.Is(err, service.ErrInvalidAnswer), errors.Is(err, service.ErrInvalidTraitValue):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute matches"})
	}
}

// limitMatches recorta al top N cuando limit es un entero positivo.
func limitMatches(matches []domain.MatchResult, limit string) []domain.MatchResult {
	if matches == nil {
		return []domain.MatchResult{}
	}
	n, err := strconv.Atoi(limit)
	if err != nil || n <= 0 || n >= len(matches) {
		return matches
	}
	return matches[:n]
}
