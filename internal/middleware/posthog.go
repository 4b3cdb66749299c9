package middleware

import (
	"net/http"
	"strings"

	"github.com/finbook-app/finbook_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// untrackedPaths lists routes that generate no analytics events.
var untrackedPaths = map[string]bool{
	"/":       true,
	"/health": true,
}

// PosthogMiddleware emits one analytics event per successfully handled,
// authenticated request. Failed requests and anonymous requests are skipped.
func PosthogMiddleware(client *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !client.IsInitialized() || untrackedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, authenticated := GetUserIDFromContext(c)
		if !authenticated {
			return
		}

		// Event name comes from the route template so IDs don't explode the
		// event space: "/api/v1/companies/:company_id/journals" ->
		// "api_v1_companies_:company_id_journals".
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			// Unmatched route (404)
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, p := range c.Params {
				params[p.Key] = p.Value
			}
			props["params"] = params
		}

		client.Enqueue(userID, eventName, props)
	}
}
