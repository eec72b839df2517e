package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterHealthRoutes exposes the liveness endpoint.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/api/health", handleHealth)
}

// handleHealth reports process liveness only; the account store and the
// model provider are verified at startup, not per probe.
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "echochamber"})
}
