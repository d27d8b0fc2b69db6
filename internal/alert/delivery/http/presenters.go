package http

import (
	"strings"
	"time"

	"cscx-api/internal/alert"
	"cscx-api/internal/model"
	"cscx-api/pkg/paginator"
)

// --- Request DTOs ---

type metricChangeReq struct {
	Metric        string  `json:"metric" binding:"required"`
	Before        float64 `json:"before"`
	After         float64 `json:"after"`
	ChangePercent float64 `json:"change_percent"`
}

type rawAlertReq struct {
	ID           string            `json:"id"`
	Type         string            `json:"type" binding:"required"`
	CustomerID   string            `json:"customer_id" binding:"required"`
	CustomerName *string           `json:"customer_name"`
	Title        string            `json:"title" binding:"required"`
	Description  string            `json:"description"`
	MetricChange *metricChangeReq  `json:"metric_change"`
	Metadata     map[string]string `json:"metadata"`
	Source       *string           `json:"source"`
	CreatedAt    *time.Time        `json:"created_at"`
}

func (r rawAlertReq) toModel() model.RawAlert {
	raw := model.RawAlert{
		ID:           r.ID,
		Type:         model.AlertType(r.Type),
		CustomerID:   r.CustomerID,
		CustomerName: r.CustomerName,
		Title:        r.Title,
		Description:  r.Description,
		Metadata:     r.Metadata,
		Source:       r.Source,
	}
	if r.MetricChange != nil {
		raw.MetricChange = &model.MetricChange{
			Metric:        r.MetricChange.Metric,
			Before:        r.MetricChange.Before,
			After:         r.MetricChange.After,
			ChangePercent: r.MetricChange.ChangePercent,
		}
	}
	if r.CreatedAt != nil {
		raw.CreatedAt = *r.CreatedAt
	}
	return raw
}

type processBatchReq struct {
	Alerts []rawAlertReq `json:"alerts" binding:"required"`
}

type getAlertsReq struct {
	Format     string   `form:"format"`
	CustomerID string   `form:"customer_id"`
	Types      []string `form:"type"`
	Statuses   []string `form:"status"`
	MinScore   *float64 `form:"min_score"`
	paginator.PaginateQuery
}

func (r getAlertsReq) toInput() alert.GetInput {
	ip := alert.GetInput{
		Format:        alert.Format(r.Format),
		PaginateQuery: r.PaginateQuery,
	}
	ip.Filter.CustomerID = r.CustomerID
	ip.Filter.MinScore = r.MinScore
	for _, t := range splitCSV(r.Types) {
		ip.Filter.Types = append(ip.Filter.Types, model.AlertType(t))
	}
	for _, s := range splitCSV(r.Statuses) {
		ip.Filter.Statuses = append(ip.Filter.Statuses, model.AlertStatus(s))
	}
	return ip
}

// splitCSV flattens repeated params and comma-separated values alike.
func splitCSV(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

type snoozeReq struct {
	Until time.Time `json:"until" binding:"required"`
}

type bundleReadReq struct {
	AlertIDs []string `json:"alert_ids" binding:"required"`
}

type forgetReq struct {
	AlertIDs []string `json:"alert_ids"`
}

type feedbackReq struct {
	Rating string  `json:"rating" binding:"required"`
	Notes  *string `json:"notes"`
}

type createSuppressionReq struct {
	Type       string     `json:"suppression_type" binding:"required"`
	CustomerID *string    `json:"customer_id"`
	AlertType  *string    `json:"alert_type"`
	Threshold  *float64   `json:"threshold"`
	Pattern    *string    `json:"pattern"`
	Reason     string     `json:"reason"`
	ExpiresAt  *time.Time `json:"expires_at"`
}

func (r createSuppressionReq) toInput() alert.CreateSuppressionInput {
	ip := alert.CreateSuppressionInput{
		Type:       model.SuppressionType(r.Type),
		CustomerID: r.CustomerID,
		Threshold:  r.Threshold,
		Pattern:    r.Pattern,
		Reason:     r.Reason,
		ExpiresAt:  r.ExpiresAt,
	}
	if r.AlertType != nil {
		t := model.AlertType(*r.AlertType)
		ip.AlertType = &t
	}
	return ip
}

type updatePreferencesReq struct {
	ImmediateThreshold       *float64          `json:"immediate_threshold"`
	DigestThreshold          *float64          `json:"digest_threshold"`
	SuppressThreshold        *float64          `json:"suppress_threshold"`
	CriticalThreshold        *float64          `json:"critical_threshold"`
	QuietHours               *model.QuietHours `json:"quiet_hours"`
	FilterMinorHealthChanges *bool             `json:"filter_minor_health_changes"`
	MinorHealthChangePoints  *float64          `json:"minor_health_change_points"`
	SeasonalSuppression      *bool             `json:"seasonal_suppression"`
	SavePlaySuppressionHints *bool             `json:"save_play_suppression_hints"`
}

func (r updatePreferencesReq) toInput() alert.UpdatePreferencesInput {
	return alert.UpdatePreferencesInput{
		ImmediateThreshold:       r.ImmediateThreshold,
		DigestThreshold:          r.DigestThreshold,
		SuppressThreshold:        r.SuppressThreshold,
		CriticalThreshold:        r.CriticalThreshold,
		QuietHours:               r.QuietHours,
		FilterMinorHealthChanges: r.FilterMinorHealthChanges,
		MinorHealthChangePoints:  r.MinorHealthChangePoints,
		SeasonalSuppression:      r.SeasonalSuppression,
		SavePlaySuppressionHints: r.SavePlaySuppressionHints,
	}
}

// --- Response DTOs ---

type getAlertsResp struct {
	Format    string                      `json:"format"`
	Alerts    []model.ScoredAlert         `json:"alerts,omitempty"`
	Bundles   []model.AlertBundle         `json:"bundles,omitempty"`
	Counts    alert.Counts                `json:"counts"`
	Paginator paginator.PaginatorResponse `json:"paginator"`
}

func newGetAlertsResp(op alert.GetOutput) getAlertsResp {
	return getAlertsResp{
		Format:    string(op.Format),
		Alerts:    op.Alerts,
		Bundles:   op.Bundles,
		Counts:    op.Counts,
		Paginator: op.Paginator.ToResponse(),
	}
}

type forgetResp struct {
	Deleted int64 `json:"deleted"`
}

type bundleReadResp struct {
	Updated int `json:"updated"`
}
