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

// CareerHandler expone el catalogo de carreras.
type CareerHandler struct {
	logger  *zap.Logger
	careers *service.CareerService
}

// NewCareerHandler crea una instancia de CareerHandler con dependencias necesarias.
func NewCareerHandler(logger *zap.Logger, careers *service.CareerService) *CareerHandler {
	return &CareerHandler{
		logger:  logger,
		careers: careers,
	}
}

// ListCareers maneja GET /careers.
func (h *CareerHandler) ListCareers(c *gin.Context) {
	careers, err := h.careers.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list careers failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list careers"})
		return
	}
	if careers == nil {
		careers = []domain.CareerProfile{}
	}
	c.JSON(http.StatusOK, gin.H{"careers": careers})
}

// GetCareer maneja GET /careers/:id.
func (h *CareerHandler) GetCareer(c *gin.Context) {
	career, err := h.careers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCareerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "career not found"})
			return
		}
		h.logger.Error("get career failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch career"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"career": career})
}

// SimilarCareers maneja GET /careers/:id/similar.
func (h *CareerHandler) SimilarCareers(c *gin.Context) {
	k, _ := strconv.Atoi(c.DefaultQuery("k", "5"))
	similar, err := h.careers.Similar(c.Request.Context(), c.Param("id"), k)
	if err != nil {
		if errors.Is(err, service.ErrCareerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "career not found"})
			return
		}
		h.logger.Error("similar careers failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch similar careers"})
		return
	}
	if similar == nil {
		similar = []domain.CareerProfile{}
	}
	c.JSON(http.StatusOK, gin.H{"careers": similar})
}
