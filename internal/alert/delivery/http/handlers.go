package http

import (
	"cscx-api/internal/alert"
	"cscx-api/internal/model"
	"cscx-api/pkg/response"
	"cscx-api/pkg/scope"

	"github.com/gin-gonic/gin"
)

// ProcessAlert scores and stores a single raw alert.
// @Summary Process one raw alert
// @Description Score an incoming detector signal against the caller's preferences and context, then persist it.
// @Tags Alert
// @Accept json
// @Produce json
// @Param body body rawAlertReq true "Raw alert"
// @Success 200 {object} response.Resp
// @Router /api/v1/alerts/process [POST]
func (h *Handler) ProcessAlert(c *gin.Context) {
	ctx := c.Request.Context()
	sc, ok := scope.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req rawAlertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.alert.delivery.http.ProcessAlert.ShouldBindJSON: %v", err)
		response.ErrorWithMap(c, alert.ErrFieldRequired, errMapping)
		return
	}

	op, err := h.uc.ProcessAlert(ctx, sc, alert.ProcessAlertInput{Alert: req.toModel()})
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}
	response.OK(c, op.Alert)
}

// ProcessAlerts scores and stores a batch of raw alerts.
// @Summary Process a batch of raw alerts
// @Tags Alert
// @Accept json
// @Produce json
// @Param body body processBatchReq true "Raw alerts"
// @Success 200 {object} response.Resp
// @Router /api/v1/alerts/process-batch [POST]
func (h *Handler) ProcessAlerts(c *gin.Context) {
	ctx := c.Request.Context()
	sc, ok := scope.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req processBatchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.alert.delivery.http.ProcessAlerts.ShouldBindJSON: %v", err)
		response.ErrorWithMap(c, alert.ErrFieldRequired, errMapping)
		return
	}

	ip := alert.ProcessAlertsInput{}
	for _, r := range req.Alerts {
		ip.Alerts = append(ip.Alerts, r.toModel())
	}

	op, err := h.uc.ProcessAlerts(ctx, sc, ip)
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}
	response.OK(c, op.Alerts)
}

// GetAlerts lists the caller's alerts, bundled per customer by default.
// @Summary List alerts
// @Description Returns alerts in bundled (per-customer) or individual format with delivery counts.
// @Tags Alert
// @Produce json
// @Param format query string false "bundled or individual" default(bundled)
// @Param customer_id query string false "Customer filter"
// @Param type query []string false "Alert type filter"
// @Param status query []string false "Status filter"
// @Param min_score query number false "Minimum final score"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Resp{data=getAlertsResp}
// @Router /api/v1/alerts [GET]
func (h *Handler) GetAlerts(c *gin.Context) {
	ctx := c.Request.Context()
	sc, ok := scope.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req getAlertsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Warnf(ctx, "internal.alert.delivery.http.GetAlerts.ShouldBindQuery: %v", err)
		response.ErrorWithMap(c, alert.ErrFieldRequired, errMapping)
		return
	}

	op, err := h.uc.Get(ctx, sc, req.toInput())
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}
	response.OK(c, newGetAlertsResp(op))
}

// MarkRead transitions an unread alert to read.
// @Summary Mark an alert read
// @Tags Alert
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} response.Resp
// @Router /api/v1/alerts/{id}/read [POST]
func (h *Handler) MarkRead(c *gin.Context) {
	ctx := c.Request.Context()
	sc, ok := scope.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	a, err := h.uc.MarkRead(ctx, sc, c.Param("id"))
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}
	response.OK(c, a)
}

// MarkActioned transitions an alert to actioned.
// @Summary Mark an alert actioned
// @Tags Alert
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} response.Resp
// @Router /api/v1/alerts/{id}/actioned [POST]
func (h *Handler) MarkActioned(c *gin.Context) {
	ctx := c.Request.Context()
	sc, ok := scope.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	a, err := h.uc.MarkActioned(ctx, sc, c.Param("id"))
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}
	response.OK(c, a)
}

// Dismiss transitions an alert to dismissed.
// @Summary Dismiss an alert
// @Tags Alert
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} response.Resp
// @Router /api/v1/alerts/{id}/dismiss [POST]
func (h *Handler) Dismiss(c *gin.Context) {
	ctx := c.Request.Context()
	sc, ok := scope.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	a, err := h.uc.Dismiss(ctx, sc, c.Param("id"))
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}
	response.OK(c, a)
}

// Snooze hides an alert until the given time.
// @Summary Snooze an alert
// @Tags Alert
// @Accept json
// @Produce json
// @Param id path string true "Alert ID"
// @Param body body snoozeReq true "Snooze until"
// @Success 200 {object} response.Resp
// @Router /api/v1/alerts/{id}/snooze [POST]
func (h *Handler) Snooze(c *gin.Context) {
	ctx := c.Request.Context()
	sc, ok := scope.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req snoozeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.alert.delivery.http.Snooze.ShouldBindJSON: %v", err)
		response.ErrorWithMap(c, alert.ErrInvalidSnoozeUntil, errMapping)
		return
	}

	a, err := h.uc.Snooze(ctx, sc, alert.SnoozeInput{ID: c.Param("id"), Until: req.Until})
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}
	response.OK(c, a)
}

// MarkBundleRead marks every unread member of a bundle as read. Bundles
// are computed on demand, so the member alert ids come in the body.
// @Summary Mark a bundle read
// @Tags Alert
// @Accept json
// @Produce json
// @Param id path string true "Bundle ID"
// @Param body body bundleReadReq true "Member alert ids"
// @Success 200 {object} response.Resp{data=bundleReadResp}
// @Router /api/v1/alerts/bundles/{id}/read [POST]
func (h *Handler) MarkBundleRead(c *gin.Context) {
	ctx := c.Request.Context()
	sc, ok := scope.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req bundleReadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.alert.delivery.http.MarkBundleRead.ShouldBindJSON: %v", err)
		response.ErrorWithMap(c, alert.ErrFieldRequired, errMapping)
		return
	}

	op, err := h.uc.MarkBundleRead(ctx, sc, alert.MarkBundleReadInput{AlertIDs: req.AlertIDs})
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}
	response.OK(c, bundleReadResp{Updated: op.Updated})
}

// Forget deletes alerts outright.
// @Summary Delete alerts
// @Description Deletes the given alerts; an empty id list wipes the caller's whole alert history.
// @Tags Alert
// @Accept json
// @Produce json
// @Param body body forgetReq false "Alert ids"
// @Success 200 {object} response.Resp{data=forgetResp}
// @Router /api/v1/alerts [DELETE]
func (h *Handler) Forget(c *gin.Context) {
	ctx := c.Request.Context()
	sc, ok := scope.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req forgetReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.l.Warnf(ctx, "internal.alert.delivery.http.Forget.ShouldBindJSON: %v", err)
			response.ErrorWithMap(c, alert.ErrFieldRequired, errMapping)
			return
		}
	}

	deleted, err := h.uc.Forget(ctx, sc, alert.ForgetInput{AlertIDs: req.AlertIDs})
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}
	response.OK(c, forgetResp{Deleted: deleted})
}

// SubmitFeedback records a rating on a delivered alert.
// @Summary Submit alert feedback
// @Tags Feedback
// @Accept json
// @Produce json
// @Param id path string true "Alert ID"
// @Param body body feedbackReq true "Feedback"
// @Success 200 {object} response.Resp
// @Router /api/v1/alerts/{id}/feedback [POST]
func (h *Handler) SubmitFeedback(c *gin.Context) {
	ctx := c.Request.Context()
	sc, ok := scope.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req feedbackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.alert.delivery.http.SubmitFeedback.ShouldBindJSON: %v", err)
		response.ErrorWithMap(c, alert.ErrInvalidRating, errMapping)
		return
	}

	fb, err := h.uc.SubmitFeedback(ctx, sc, alert.SubmitFeedbackInput{
		AlertID: c.Param("id"),
		Rating:  model.FeedbackRating(req.Rating),
		Notes:   req.Notes,
	})
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}
	response.OK(c, fb)
}

// FeedbackStats aggregates the caller's feedback history.
// @Summary Feedback stats
// @Tags Feedback
// @Produce json
// @Success 200 {object} response.Resp
// @Router /api/v1/alerts/feedback/stats [GET]
func (h *Handler) FeedbackStats(c *gin.Context) {
	ctx := c.Request.Context()
	sc, ok := scope.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	stats, err := h.uc.FeedbackStats(ctx, sc)
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}
	response.OK(c, stats)
}

// CreateSuppression creates a standing suppression rule.
// @Summary Create a suppression rule
// @Tags Suppression
// @Accept json
// @Produce json
// @Param body body createSuppressionReq true "Rule"
// @Success 200 {object} response.Resp
// @Router /api/v1/alerts/suppressions [POST]
func (h *Handler) CreateSuppression(c *gin.Context) {
	ctx := c.Request.Context()
	sc, ok := scope.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req createSuppressionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.alert.delivery.http.CreateSuppression.ShouldBindJSON: %v", err)
		response.ErrorWithMap(c, alert.ErrInvalidSuppression, errMapping)
		return
	}

	rule, err := h.uc.CreateSuppression(ctx, sc, req.toInput())
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}
	response.OK(c, rule)
}

// ListSuppressions lists the caller's suppression rules.
// @Summary List suppression rules
// @Tags Suppression
// @Produce json
// @Success 200 {object} response.Resp
// @Router /api/v1/alerts/suppressions [GET]
func (h *Handler) ListSuppressions(c *gin.Context) {
	ctx := c.Request.Context()
	sc, ok := scope.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	rules, err := h.uc.ListSuppressions(ctx, sc)
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}
	response.OK(c, rules)
}

// DeleteSuppression removes a suppression rule.
// @Summary Delete a suppression rule
// @Tags Suppression
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {object} response.Resp
// @Router /api/v1/alerts/suppressions/{id} [DELETE]
func (h *Handler) DeleteSuppression(c *gin.Context) {
	ctx := c.Request.Context()
	sc, ok := scope.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	if err := h.uc.DeleteSuppression(ctx, sc, c.Param("id")); err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}
	response.OK(c, nil)
}

// GetPreferences returns the caller's alert preferences.
// @Summary Get alert preferences
// @Tags Preferences
// @Produce json
// @Success 200 {object} response.Resp
// @Router /api/v1/alerts/preferences [GET]
func (h *Handler) GetPreferences(c *gin.Context) {
	ctx := c.Request.Context()
	sc, ok := scope.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	prefs, err := h.uc.GetPreferences(ctx, sc)
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}
	response.OK(c, prefs)
}

// UpdatePreferences applies a partial preferences update.
// @Summary Update alert preferences
// @Tags Preferences
// @Accept json
// @Produce json
// @Param body body updatePreferencesReq true "Changed fields"
// @Success 200 {object} response.Resp
// @Router /api/v1/alerts/preferences [PATCH]
func (h *Handler) UpdatePreferences(c *gin.Context) {
	ctx := c.Request.Context()
	sc, ok := scope.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req updatePreferencesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.alert.delivery.http.UpdatePreferences.ShouldBindJSON: %v", err)
		response.ErrorWithMap(c, alert.ErrFieldRequired, errMapping)
		return
	}

	prefs, err := h.uc.UpdatePreferences(ctx, sc, req.toInput())
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}
	response.OK(c, prefs)
}
