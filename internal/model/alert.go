package model

import "time"

// AlertType is the closed set of signals the detectors emit.
// Scoring policy switches over this type exhaustively; adding a value
// here must be accompanied by a severity/urgency entry in the scorer.
type AlertType string

const (
	AlertTypeHealthScoreDrop     AlertType = "health_score_drop"
	AlertTypeHealthScoreCritical AlertType = "health_score_critical"
	AlertTypeUsageDrop           AlertType = "usage_drop"
	AlertTypeUsageSpike          AlertType = "usage_spike"
	AlertTypeEngagementDrop      AlertType = "engagement_drop"
	AlertTypeRenewalApproaching  AlertType = "renewal_approaching"
	AlertTypeSupportEscalation   AlertType = "support_escalation"
	AlertTypeNPSDetractor        AlertType = "nps_detractor"
	AlertTypeChampionDeparture   AlertType = "champion_departure"
	AlertTypePaymentOverdue      AlertType = "payment_overdue"
)

// AlertTypes lists every known alert type.
func AlertTypes() []AlertType {
	return []AlertType{
		AlertTypeHealthScoreDrop,
		AlertTypeHealthScoreCritical,
		AlertTypeUsageDrop,
		AlertTypeUsageSpike,
		AlertTypeEngagementDrop,
		AlertTypeRenewalApproaching,
		AlertTypeSupportEscalation,
		AlertTypeNPSDetractor,
		AlertTypeChampionDeparture,
		AlertTypePaymentOverdue,
	}
}

// IsValid reports whether t is one of the known alert types.
func (t AlertType) IsValid() bool {
	for _, known := range AlertTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// MetricChange describes the metric movement that triggered an alert.
type MetricChange struct {
	Metric        string  `json:"metric"`
	Before        float64 `json:"before"`
	After         float64 `json:"after"`
	ChangePercent float64 `json:"change_percent"`
}

// RawAlert is an incoming signal from a detector. Immutable once created.
type RawAlert struct {
	ID           string            `json:"id"`
	Type         AlertType         `json:"type"`
	CustomerID   string            `json:"customer_id"`
	CustomerName *string           `json:"customer_name,omitempty"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	MetricChange *MetricChange     `json:"metric_change,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	Source       *string           `json:"source,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// AlertStatus is the lifecycle state of a scored alert.
// Transitions: unread -> read, unread|read -> actioned|dismissed,
// unread|read -> snoozed -> unread (resurfaced by the reader once
// SnoozeUntil passes). dismissed and actioned are terminal.
type AlertStatus string

const (
	AlertStatusUnread    AlertStatus = "unread"
	AlertStatusRead      AlertStatus = "read"
	AlertStatusActioned  AlertStatus = "actioned"
	AlertStatusDismissed AlertStatus = "dismissed"
	AlertStatusSnoozed   AlertStatus = "snoozed"
)

// IsValid reports whether s is one of the known statuses.
func (s AlertStatus) IsValid() bool {
	switch s {
	case AlertStatusUnread, AlertStatusRead, AlertStatusActioned,
		AlertStatusDismissed, AlertStatusSnoozed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s AlertStatus) IsTerminal() bool {
	return s == AlertStatusDismissed || s == AlertStatusActioned
}

// ScoredAlert is a RawAlert after one scoring pass for a user.
// Status mutates only through the usecase transition operations.
type ScoredAlert struct {
	RawAlert
	UserID      string      `json:"user_id"`
	Score       AlertScore  `json:"score"`
	Status      AlertStatus `json:"status"`
	ReadAt      *time.Time  `json:"read_at,omitempty"`
	ActionedAt  *time.Time  `json:"actioned_at,omitempty"`
	SnoozeUntil *time.Time  `json:"snooze_until,omitempty"`
}

// SnoozeExpired reports whether a snoozed alert is due to resurface at now.
func (a ScoredAlert) SnoozeExpired(now time.Time) bool {
	return a.Status == AlertStatusSnoozed && a.SnoozeUntil != nil && !now.Before(*a.SnoozeUntil)
}
