package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHome godoc
// @Summary Service banner
// @Description Returns a short identification string for the service.
// @Tags home
// @Produce plain
// @Success 200 {string} string "finbook backend"
// @Router / [get]
func getHome(c *gin.Context) {
	c.String(http.StatusOK, "finbook backend")
}
