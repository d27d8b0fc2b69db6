package alert

import (
	"context"

	"cscx-api/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Scoring pipeline
	ProcessAlert(ctx context.Context, sc model.Scope, ip ProcessAlertInput) (ProcessAlertOutput, error)
	ProcessAlerts(ctx context.Context, sc model.Scope, ip ProcessAlertsInput) (ProcessAlertsOutput, error)

	// Retrieval (bundled or individual)
	Get(ctx context.Context, sc model.Scope, ip GetInput) (GetOutput, error)

	// Status transitions
	MarkRead(ctx context.Context, sc model.Scope, id string) (model.ScoredAlert, error)
	MarkActioned(ctx context.Context, sc model.Scope, id string) (model.ScoredAlert, error)
	Dismiss(ctx context.Context, sc model.Scope, id string) (model.ScoredAlert, error)
	Snooze(ctx context.Context, sc model.Scope, ip SnoozeInput) (model.ScoredAlert, error)
	MarkBundleRead(ctx context.Context, sc model.Scope, ip MarkBundleReadInput) (MarkBundleReadOutput, error)
	Forget(ctx context.Context, sc model.Scope, ip ForgetInput) (int64, error)

	// Feedback
	SubmitFeedback(ctx context.Context, sc model.Scope, ip SubmitFeedbackInput) (model.AlertFeedback, error)
	FeedbackStats(ctx context.Context, sc model.Scope) (FeedbackStatsOutput, error)

	// Suppression rules
	CreateSuppression(ctx context.Context, sc model.Scope, ip CreateSuppressionInput) (model.AlertSuppression, error)
	ListSuppressions(ctx context.Context, sc model.Scope) ([]model.AlertSuppression, error)
	DeleteSuppression(ctx context.Context, sc model.Scope, id string) error

	// Preferences
	GetPreferences(ctx context.Context, sc model.Scope) (model.AlertPreferences, error)
	UpdatePreferences(ctx context.Context, sc model.Scope, ip UpdatePreferencesInput) (model.AlertPreferences, error)
}
