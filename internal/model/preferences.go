package model

import "time"

// Default preference values applied when a user record is created lazily.
const (
	DefaultImmediateThreshold       = 75.0
	DefaultDigestThreshold          = 40.0
	DefaultSuppressThreshold        = 0.0
	DefaultCriticalThreshold        = 90.0
	DefaultMinorHealthChangePoints  = 5.0
	DefaultQuietHoursEnabled        = false
	DefaultFilterMinorHealthChanges = true
	DefaultSeasonalSuppression      = true
	DefaultSavePlaySuppressionHints = true
)

// QuietHours is a daily local-time window during which would-be
// immediate alerts are demoted to digest unless they clear the
// critical override.
type QuietHours struct {
	Enabled   bool   `json:"enabled"`
	StartHour int    `json:"start_hour"` // 0-23
	EndHour   int    `json:"end_hour"`   // 0-23; window may wrap midnight
	Timezone  string `json:"timezone"`
}

// Contains reports whether t (converted to the configured timezone when
// it loads, otherwise its own location) falls inside the window.
func (q QuietHours) Contains(t time.Time) bool {
	if !q.Enabled {
		return false
	}
	if q.Timezone != "" {
		if loc, err := time.LoadLocation(q.Timezone); err == nil {
			t = t.In(loc)
		}
	}
	h := t.Hour()
	if q.StartHour <= q.EndHour {
		return h >= q.StartHour && h < q.EndHour
	}
	// Window wraps midnight, e.g. 22 -> 7.
	return h >= q.StartHour || h < q.EndHour
}

// AlertPreferences holds one user's delivery thresholds and filters.
// Updates are rejected unless ImmediateThreshold >= DigestThreshold >=
// SuppressThreshold.
type AlertPreferences struct {
	UserID                   string     `json:"user_id"`
	ImmediateThreshold       float64    `json:"immediate_threshold"`
	DigestThreshold          float64    `json:"digest_threshold"`
	SuppressThreshold        float64    `json:"suppress_threshold"`
	CriticalThreshold        float64    `json:"critical_threshold"`
	QuietHours               QuietHours `json:"quiet_hours"`
	FilterMinorHealthChanges bool       `json:"filter_minor_health_changes"`
	MinorHealthChangePoints  float64    `json:"minor_health_change_points"`
	SeasonalSuppression      bool       `json:"seasonal_suppression"`
	SavePlaySuppressionHints bool       `json:"save_play_suppression_hints"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

// DefaultAlertPreferences returns the lazily created record for userID.
func DefaultAlertPreferences(userID string) AlertPreferences {
	return AlertPreferences{
		UserID:                   userID,
		ImmediateThreshold:       DefaultImmediateThreshold,
		DigestThreshold:          DefaultDigestThreshold,
		SuppressThreshold:        DefaultSuppressThreshold,
		CriticalThreshold:        DefaultCriticalThreshold,
		QuietHours:               QuietHours{Enabled: DefaultQuietHoursEnabled},
		FilterMinorHealthChanges: DefaultFilterMinorHealthChanges,
		MinorHealthChangePoints:  DefaultMinorHealthChangePoints,
		SeasonalSuppression:      DefaultSeasonalSuppression,
		SavePlaySuppressionHints: DefaultSavePlaySuppressionHints,
	}
}

// ThresholdsValid reports whether the delivery thresholds are monotonic.
func (p AlertPreferences) ThresholdsValid() bool {
	return p.ImmediateThreshold >= p.DigestThreshold &&
		p.DigestThreshold >= p.SuppressThreshold
}
