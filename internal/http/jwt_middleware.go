package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"career-compass/internal/metrics"
	"career-compass/internal/service"
)

const authClaimsKey = "auth_claims"

// JWTAuthMiddleware valida JWT access tokens y guarda claims en el contexto.
func JWTAuthMiddleware(jwtSvc *service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtSvc == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "jwt not configured"})
			c.Abort()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		claims, err := jwtSvc.ParseAccessToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

// GetAuthClaims obtiene claims de JWT desde el contexto.
func GetAuthClaims(c *gin.Context) (service.Claims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.Claims{}, false
	}
	claims, ok := val.(service.Claims)
	return claims, ok
}

// canViewStudent permite al propio estudiante y a educadores/admins.
func canViewStudent(claims service.Claims, studentID string) bool {
	if claims.UserID == studentID {
		return true
	}
	return claims.Role == service.RoleEducator || claims.Role == service.RoleAdmin
}

// SubmissionRateLimitMiddleware corta con 429 a quien supera el limite de envios.
// Debe ir despues de JWTAuthMiddleware.
func SubmissionRateLimitMiddleware(limiter service.SubmissionLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		claims, ok := GetAuthClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}
		if !limiter.Allow(c.Request.Context(), claims.UserID) {
			metrics.SubmissionsRejected.WithLabelValues(c.FullPath()).Inc()
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many submissions, try again later"})
			c.Abort()
			return
		}
		c.Next()
	}
}
