package model

import "time"

// AlertBundle is a computed grouping of one customer's currently
// relevant alerts. Bundles are regenerated on every read; the member
// alerts remain the source of truth.
type AlertBundle struct {
	BundleID          string        `json:"bundle_id"`
	CustomerID        string        `json:"customer_id"`
	CustomerName      string        `json:"customer_name"`
	Alerts            []ScoredAlert `json:"alerts"`
	BundleScore       float64       `json:"bundle_score"`
	Title             string        `json:"title"`
	Summary           string        `json:"summary"`
	RecommendedAction string        `json:"recommended_action"`
	AlertCount        int           `json:"alert_count"`
	CreatedAt         time.Time     `json:"created_at"`
	Status            AlertStatus   `json:"status"`
}
