package middleware

import (
	"net/http"
	"strings"

	domainerr "github.com/EmilynnJ/VIBESEER26/internal/domain/error"
	coreport "github.com/EmilynnJ/VIBESEER26/internal/domain/port/core"
	"github.com/EmilynnJ/VIBESEER26/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// callerIDKey is the gin context key holding the authenticated user's ID
const callerIDKey = "callerID"

// Auth validates the bearer token issued by the external identity provider
// and stores the caller's user ID in the request context. The token subject
// is the user ID; identity itself is owned by the auth provider.
func Auth(jwtSecret string, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrUnauthorized),
				Message: "Missing or malformed Authorization header",
			})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			logger.Warn("Rejected invalid bearer token", map[string]any{
				"path":  c.Request.URL.Path,
				"error": errString(err),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrUnauthorized),
				Message: "Invalid or expired token",
			})
			return
		}

		subject, err := token.Claims.GetSubject()
		if err != nil || subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrUnauthorized),
				Message: "Token has no subject",
			})
			return
		}

		c.Set(callerIDKey, subject)
		c.Next()
	}
}

// CallerID returns the authenticated user's ID set by the Auth middleware
func CallerID(c *gin.Context) string {
	return c.GetString(callerIDKey)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
