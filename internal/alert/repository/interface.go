package repository

import (
	"context"

	"cscx-api/internal/model"
	"cscx-api/pkg/paginator"
)

// Repository is the storage port for the alert pipeline. Two adapters
// satisfy it: the Postgres adapter used when a database is configured,
// and the in-memory adapter used otherwise. Both honor the same
// read-after-write and filter/sort semantics: list reads come back
// ordered by created_at descending.
type Repository interface {
	// Scored alerts
	CreateAlert(ctx context.Context, sc model.Scope, opts CreateAlertOptions) (model.ScoredAlert, error)
	UpdateAlert(ctx context.Context, sc model.Scope, opts UpdateAlertOptions) (model.ScoredAlert, error)
	DetailAlert(ctx context.Context, sc model.Scope, id string) (model.ScoredAlert, error)
	ListAlerts(ctx context.Context, sc model.Scope, opts ListAlertsOptions) ([]model.ScoredAlert, error)
	GetAlerts(ctx context.Context, sc model.Scope, opts GetAlertsOptions) ([]model.ScoredAlert, paginator.Paginator, error)
	// DeleteAlerts removes the given alerts; an empty id list removes
	// every alert owned by the scope's user. Returns the removed count.
	DeleteAlerts(ctx context.Context, sc model.Scope, ids []string) (int64, error)

	// Preferences (one record per user; ErrNotFound before first write)
	GetPreferences(ctx context.Context, sc model.Scope) (model.AlertPreferences, error)
	UpsertPreferences(ctx context.Context, sc model.Scope, prefs model.AlertPreferences) (model.AlertPreferences, error)

	// Suppression rules
	CreateSuppression(ctx context.Context, sc model.Scope, rule model.AlertSuppression) (model.AlertSuppression, error)
	ListSuppressions(ctx context.Context, sc model.Scope) ([]model.AlertSuppression, error)
	DeleteSuppression(ctx context.Context, sc model.Scope, id string) error

	// Feedback (append-only)
	CreateFeedback(ctx context.Context, sc model.Scope, fb model.AlertFeedback) (model.AlertFeedback, error)
	ListFeedback(ctx context.Context, sc model.Scope, opts ListFeedbackOptions) ([]model.AlertFeedback, error)
}
