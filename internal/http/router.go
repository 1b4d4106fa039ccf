package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"career-compass/internal/metrics"
	"career-compass/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas base.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	limiter service.SubmissionLimiter,
	careerH *CareerHandler,
	assessmentH *AssessmentHandler,
	quizH *QuizHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	careers := r.Group("/careers")
	careers.GET("", careerH.ListCareers)
	careers.GET("/:id", careerH.GetCareer)
	careers.GET("/:id/similar", careerH.SimilarCareers)

	r.GET("/assessment", assessmentH.GetQuestions)
	r.GET("/quizzes", quizH.ListQuizzes)
	r.GET("/quizzes/:key", quizH.GetQuiz)

	authed := r.Group("", JWTAuthMiddleware(jwtSvc))
	authed.POST("/assessments", SubmissionRateLimitMiddleware(limiter), assessmentH.SubmitAssessment)
	authed.GET("/assessments/:id", assessmentH.GetAssessment)
	authed.POST("/matches", assessmentH.ComputeMatches)
	authed.POST("/quizzes/:key/submit", SubmissionRateLimitMiddleware(limiter), quizH.SubmitQuiz)
	authed.GET("/students/:id/quiz-results", quizH.ListResults)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(latency.Seconds())
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
