package httpserver

import (
	"cscx-api/pkg/errors"
	"cscx-api/pkg/response"

	"github.com/gin-gonic/gin"
)

// healthCheck reports overall service health.
// @Summary Health Check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is healthy"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	storage := "in-memory"
	if srv.db != nil {
		if err := srv.db.PingContext(c.Request.Context()); err != nil {
			response.HttpError(c, errors.NewHTTPError(503, "Database connection failed", 503))
			return
		}
		storage = "postgres"
	}

	response.OK(c, gin.H{
		"status":      "healthy",
		"service":     "cscx-api",
		"version":     "1.0.0",
		"environment": srv.environment,
		"storage":     storage,
		"demo_mode":   srv.demoMode,
	})
}

// readyCheck reports whether the service can serve traffic.
// @Summary Readiness Check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is ready"
// @Failure 503 {object} map[string]interface{} "Service is not ready"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	if srv.db != nil {
		if err := srv.db.PingContext(c.Request.Context()); err != nil {
			response.HttpError(c, errors.NewHTTPError(503, "Database not ready", 503))
			return
		}
	}
	response.OK(c, gin.H{"status": "ready"})
}

// liveCheck reports process liveness only.
// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{"status": "alive"})
}
