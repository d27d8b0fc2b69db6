package model

// LifecycleStatus is where a customer sits in their subscription lifecycle.
type LifecycleStatus string

const (
	LifecycleOnboarding LifecycleStatus = "onboarding"
	LifecycleActive     LifecycleStatus = "active"
	LifecycleAtRisk     LifecycleStatus = "at_risk"
	LifecycleRenewal    LifecycleStatus = "renewal"
	LifecycleChurned    LifecycleStatus = "churned"
)

// CustomerSnapshot is the read-only customer view the scorer consumes.
type CustomerSnapshot struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	ARR           float64         `json:"arr"`
	HealthScore   float64         `json:"health_score"`
	Lifecycle     LifecycleStatus `json:"lifecycle"`
	DaysToRenewal *int            `json:"days_to_renewal,omitempty"`
	Tier          string          `json:"tier"`
}

// SeasonalPattern is a known recurring variance for a customer metric.
// A scored alert matching an active pattern loses confidence.
type SeasonalPattern struct {
	Metric      string `json:"metric"`
	Description string `json:"description"`
	MonthStart  int    `json:"month_start"` // 1-12, inclusive
	MonthEnd    int    `json:"month_end"`   // 1-12, inclusive
}

// AlertContext is the snapshot assembled per scoring call. Not
// persisted; recomputed on demand by the usecase.
type AlertContext struct {
	Customer         CustomerSnapshot  `json:"customer"`
	RecentAlerts     []ScoredAlert     `json:"recent_alerts"`
	ActivePlaybooks  []string          `json:"active_playbooks"`
	SavePlayActive   bool              `json:"save_play_active"`
	SeasonalPatterns []SeasonalPattern `json:"seasonal_patterns,omitempty"`
}
