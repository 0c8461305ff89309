package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/requestdata"
	"github.com/klasea/astillero-backend/internal/services"
	"github.com/klasea/astillero-backend/internal/types"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		log:         log.With("middleware", "AuthMiddleware"),
		authService: authService,
	}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}
		ctx, err := am.authService.SetContextFromToken(c.Request.Context(), tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}
		rd := requestdata.GetRequestData(ctx)
		if rd == nil || rd.UserID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRoles gates a route group on an allow-list. Admin profiles pass
// every gate; a denied response carries the caller's landing route so the
// client knows where to send them.
func (am *AuthMiddleware) RequireRoles(allowed ...types.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}
		if !types.RoleAllowed(rd.Role, rd.IsAdmin, allowed) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "rol sin acceso a este recurso",
				"redirect": rd.Role.LandingRoute(),
			})
			return
		}
		c.Next()
	}
}

// RequireAdmin is the gate for the user administration and system config
// surfaces.
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}
		if !rd.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "se requiere perfil administrador",
				"redirect": rd.Role.LandingRoute(),
			})
			return
		}
		c.Next()
	}
}

// extractToken checks the query string first so EventSource connections,
// which cannot set headers, can authenticate too.
func extractToken(c *gin.Context) string {
	if qToken := c.Query("token"); qToken != "" {
		return qToken
	}
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
