package http

import (
	"cscx-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the alert pipeline API under the given group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	alerts := r.Group("/alerts", mw.Auth())
	{
		alerts.POST("/process", h.ProcessAlert)
		alerts.POST("/process-batch", h.ProcessAlerts)

		alerts.GET("", h.GetAlerts)
		alerts.DELETE("", h.Forget)

		alerts.POST("/:id/read", h.MarkRead)
		alerts.POST("/:id/actioned", h.MarkActioned)
		alerts.POST("/:id/dismiss", h.Dismiss)
		alerts.POST("/:id/snooze", h.Snooze)
		alerts.POST("/:id/feedback", h.SubmitFeedback)

		alerts.POST("/bundles/:id/read", h.MarkBundleRead)

		alerts.GET("/feedback/stats", h.FeedbackStats)

		alerts.POST("/suppressions", h.CreateSuppression)
		alerts.GET("/suppressions", h.ListSuppressions)
		alerts.DELETE("/suppressions/:id", h.DeleteSuppression)

		alerts.GET("/preferences", h.GetPreferences)
		alerts.PATCH("/preferences", h.UpdatePreferences)
	}
}
