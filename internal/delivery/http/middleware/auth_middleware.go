package middleware

import (
	"errors"
	"net/http"
	"strings"

	"matchmakr-backend/internal/delivery/http/response"
	"matchmakr-backend/internal/domain"
	"matchmakr-backend/pkg/apperror"
	"matchmakr-backend/pkg/audit"
	"matchmakr-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// TokenVerifier resolves a bearer token to the account id it was issued for
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// AuthMiddleware verifies the bearer token and stores the resolved Caller on the context
func AuthMiddleware(tokens TokenVerifier, authUC domain.AuthUsecase, auditLogger *audit.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if authHeader == "" || tokenString == "" || tokenString == authHeader {
			response.Error(c, http.StatusUnauthorized, "Authentication credentials were not provided", nil)
			c.Abort()
			return
		}

		userID, err := tokens.Verify(tokenString)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				msg = "Token has expired"
			}
			auditLogger.Log(c.Request.Context(), audit.Event{
				Event:     audit.EventUnauthorizedAccess,
				IP:        c.ClientIP(),
				RequestID: c.GetString("RequestID"),
				Details:   map[string]interface{}{"reason": msg, "path": c.FullPath()},
			})
			response.Error(c, http.StatusUnauthorized, msg, nil)
			c.Abort()
			return
		}

		// Fetch fresh account data so staff and employer flags are never stale
		caller, err := authUC.ResolveCaller(c.Request.Context(), userID)
		if err != nil {
			code := apperror.CodeOf(err)
			if code != http.StatusUnauthorized {
				c.Error(err)
				c.Abort()
				return
			}
			response.Error(c, http.StatusUnauthorized, "User not found", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), caller.UserID)
		c.Set(string(domain.KeyCaller), caller)

		c.Next()
	}
}

// CallerFrom returns the Caller stored by AuthMiddleware, or the zero Caller
func CallerFrom(c *gin.Context) domain.Caller {
	v, ok := c.Get(string(domain.KeyCaller))
	if !ok {
		return domain.Caller{}
	}
	caller, _ := v.(domain.Caller)
	return caller
}
