package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	errMissingAuthHeader = errors.New("authorization header required")
	errBadAuthHeader     = errors.New("authorization header must be of the form Bearer {token}")
)

// AuthMiddleware validates the bearer JWT on incoming requests and stores the
// authenticated user ID in the request context. Requests the API-token
// middleware already authenticated pass through untouched.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		if method, done := c.Get("authMethod"); done {
			logger.Debug("Request already authenticated", slog.Any("auth_method", method))
			c.Next()
			return
		}

		tokenString, err := bearerToken(c)
		if err != nil {
			logger.Warn("Rejected request without a usable bearer token", slog.String("reason", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		userID, err := verifyAndExtractSubject(tokenString, jwtSecret)
		if err != nil {
			logger.Warn("Bearer token rejected", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": tokenRejectionMessage(err)})
			return
		}

		// Make the user ID visible to everything downstream, and enrich the
		// request logger so later log lines carry it.
		ctxWithUser := context.WithValue(c.Request.Context(), userIDKey, userID)
		enrichedLogger := logger.With(slog.String("user_id", userID))
		c.Request = c.Request.WithContext(context.WithValue(ctxWithUser, loggerCtxKey, enrichedLogger))

		c.Next()
	}
}

// bearerToken pulls the raw JWT out of the Authorization header.
func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", errMissingAuthHeader
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errBadAuthHeader
	}
	return parts[1], nil
}

// verifyAndExtractSubject validates the token signature and claims and returns
// the subject (the user ID).
func verifyAndExtractSubject(tokenString, jwtSecret string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

// tokenRejectionMessage maps JWT validation failures to the client-facing
// error without leaking parser internals.
func tokenRejectionMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "Token has expired"
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return "Token not valid yet"
	default:
		return "Invalid token"
	}
}
