package model

import (
	"strings"
	"time"
)

// SuppressionType is the scope a suppression rule applies to.
type SuppressionType string

const (
	SuppressionCustomer  SuppressionType = "customer"
	SuppressionAlertType SuppressionType = "alert_type"
	SuppressionThreshold SuppressionType = "threshold"
	SuppressionPattern   SuppressionType = "pattern"
)

// IsValid reports whether s is one of the known suppression scopes.
func (s SuppressionType) IsValid() bool {
	switch s {
	case SuppressionCustomer, SuppressionAlertType, SuppressionThreshold, SuppressionPattern:
		return true
	}
	return false
}

// AlertSuppression is a standing rule that forces matching alerts to
// filtered=true. Expired rules are ignored at read time; they are only
// removed by an explicit delete.
type AlertSuppression struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Type       SuppressionType `json:"suppression_type"`
	CustomerID *string         `json:"customer_id,omitempty"`
	AlertType  *AlertType      `json:"alert_type,omitempty"`
	Threshold  *float64        `json:"threshold,omitempty"`
	Pattern    *string         `json:"pattern,omitempty"`
	Reason     string          `json:"reason"`
	ExpiresAt  *time.Time      `json:"expires_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Expired reports whether the rule is past its expiry at now.
func (s AlertSuppression) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}

// Matches reports whether the rule applies to the given alert with the
// given computed final score. Expiry is checked by the caller.
func (s AlertSuppression) Matches(alert RawAlert, finalScore float64) bool {
	switch s.Type {
	case SuppressionCustomer:
		return s.CustomerID != nil && *s.CustomerID == alert.CustomerID
	case SuppressionAlertType:
		return s.AlertType != nil && *s.AlertType == alert.Type
	case SuppressionThreshold:
		return s.Threshold != nil && finalScore < *s.Threshold
	case SuppressionPattern:
		if s.Pattern == nil || *s.Pattern == "" {
			return false
		}
		needle := strings.ToLower(*s.Pattern)
		return strings.Contains(strings.ToLower(alert.Title), needle) ||
			strings.Contains(strings.ToLower(alert.Description), needle)
	}
	return false
}
