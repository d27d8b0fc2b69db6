package alert

import (
	"time"

	"cscx-api/internal/model"
	"cscx-api/pkg/paginator"
)

// Format selects the retrieval shape.
type Format string

const (
	FormatBundled    Format = "bundled"
	FormatIndividual Format = "individual"
)

type ProcessAlertInput struct {
	Alert model.RawAlert
}

type ProcessAlertOutput struct {
	Alert model.ScoredAlert
}

type ProcessAlertsInput struct {
	Alerts []model.RawAlert
}

type ProcessAlertsOutput struct {
	Alerts []model.ScoredAlert
}

type Filter struct {
	CustomerID string
	Types      []model.AlertType
	Statuses   []model.AlertStatus
	MinScore   *float64
}

type GetInput struct {
	Format        Format
	Filter        Filter
	PaginateQuery paginator.PaginateQuery
}

// Counts summarizes delivery routing across the matched alerts,
// before pagination.
type Counts struct {
	Total      int `json:"total"`
	Immediate  int `json:"immediate"`
	Digest     int `json:"digest"`
	Suppressed int `json:"suppressed"`
}

type GetOutput struct {
	Format    Format
	Alerts    []model.ScoredAlert
	Bundles   []model.AlertBundle
	Counts    Counts
	Paginator paginator.Paginator
}

type SnoozeInput struct {
	ID    string
	Until time.Time
}

type MarkBundleReadInput struct {
	AlertIDs []string
}

type MarkBundleReadOutput struct {
	Updated int
}

type ForgetInput struct {
	// AlertIDs to delete; empty deletes everything the user owns.
	AlertIDs []string
}

type SubmitFeedbackInput struct {
	AlertID string
	Rating  model.FeedbackRating
	Notes   *string
}

// TypeFeedbackStats aggregates feedback for one alert type.
type TypeFeedbackStats struct {
	Total        int     `json:"total"`
	Helpful      int     `json:"helpful"`
	HelpfulRatio float64 `json:"helpful_ratio"`
}

type FeedbackStatsOutput struct {
	Total    int                                   `json:"total"`
	ByRating map[model.FeedbackRating]int          `json:"by_rating"`
	ByType   map[model.AlertType]TypeFeedbackStats `json:"by_type"`
}

type CreateSuppressionInput struct {
	Type       model.SuppressionType
	CustomerID *string
	AlertType  *model.AlertType
	Threshold  *float64
	Pattern    *string
	Reason     string
	ExpiresAt  *time.Time
}

// UpdatePreferencesInput is a partial merge: nil fields keep their
// current value.
type UpdatePreferencesInput struct {
	ImmediateThreshold       *float64
	DigestThreshold          *float64
	SuppressThreshold        *float64
	CriticalThreshold        *float64
	QuietHours               *model.QuietHours
	FilterMinorHealthChanges *bool
	MinorHealthChangePoints  *float64
	SeasonalSuppression      *bool
	SavePlaySuppressionHints *bool
}
