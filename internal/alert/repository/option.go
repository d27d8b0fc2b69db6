package repository

import (
	"time"

	"cscx-api/internal/model"
	"cscx-api/pkg/paginator"
)

// AlertFilter contains filtering options for scored-alert queries.
// Zero values mean "no constraint".
type AlertFilter struct {
	CustomerID string
	Types      []model.AlertType
	Statuses   []model.AlertStatus
	MinScore   *float64
	Since      *time.Time // created_at >= Since
}

// CreateAlertOptions contains options for persisting a scored alert.
type CreateAlertOptions struct {
	Alert model.ScoredAlert
}

// UpdateAlertOptions contains options for updating a scored alert by id.
type UpdateAlertOptions struct {
	Alert model.ScoredAlert
}

// ListAlertsOptions contains options for unpaginated alert listing.
type ListAlertsOptions struct {
	Filter AlertFilter
	Limit  int // 0 = no limit
}

// GetAlertsOptions contains options for paginated alert listing.
type GetAlertsOptions struct {
	Filter        AlertFilter
	PaginateQuery paginator.PaginateQuery
}

// ListFeedbackOptions contains options for feedback queries.
type ListFeedbackOptions struct {
	AlertType *model.AlertType
	Since     *time.Time
}
