package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the context key under which the authenticated user's ID is
// stored by the auth middlewares.
const userIDKey = contextKey("userID")

// GetUserIDFromContext returns the authenticated user ID for the request.
// The JWT middleware stores it in the request context; the API-token
// middleware additionally mirrors it into the Gin context map, so both
// locations are checked.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(userIDKey); v != nil {
		if userID, ok := v.(string); ok {
			return userID, true
		}
	}

	if v, exists := c.Get(string(userIDKey)); exists {
		if userID, ok := v.(string); ok {
			return userID, true
		}
	}

	return "", false
}
