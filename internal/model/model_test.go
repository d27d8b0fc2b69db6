package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuietHoursContains(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2026, 3, 10, hour, 30, 0, 0, time.UTC)
	}

	disabled := QuietHours{StartHour: 0, EndHour: 23}
	assert.False(t, disabled.Contains(at(12)))

	daytime := QuietHours{Enabled: true, StartHour: 9, EndHour: 17}
	assert.False(t, daytime.Contains(at(8)))
	assert.True(t, daytime.Contains(at(9)))
	assert.True(t, daytime.Contains(at(16)))
	assert.False(t, daytime.Contains(at(17)))

	// Window wraps midnight.
	overnight := QuietHours{Enabled: true, StartHour: 22, EndHour: 7}
	assert.True(t, overnight.Contains(at(23)))
	assert.True(t, overnight.Contains(at(3)))
	assert.False(t, overnight.Contains(at(7)))
	assert.False(t, overnight.Contains(at(12)))
}

func TestQuietHoursContainsTimezone(t *testing.T) {
	// 14:00 UTC is 09:00 in New York (March, EDT applies from the 8th).
	q := QuietHours{Enabled: true, StartHour: 8, EndHour: 10, Timezone: "America/New_York"}
	utcAfternoon := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	assert.True(t, q.Contains(utcAfternoon))
	assert.False(t, q.Contains(utcAfternoon.Add(2*time.Hour)))
}

func TestSuppressionMatches(t *testing.T) {
	alert := RawAlert{
		Type:        AlertTypeUsageDrop,
		CustomerID:  "cust-a",
		Title:       "Usage dropped during migration",
		Description: "weekly logins down",
	}

	custA := "cust-a"
	custB := "cust-b"
	usageDrop := AlertTypeUsageDrop
	npsDetractor := AlertTypeNPSDetractor
	threshold := 60.0
	pattern := "MIGRATION"
	miss := "outage"

	cases := []struct {
		name  string
		rule  AlertSuppression
		score float64
		want  bool
	}{
		{name: "customer match", rule: AlertSuppression{Type: SuppressionCustomer, CustomerID: &custA}, want: true},
		{name: "customer miss", rule: AlertSuppression{Type: SuppressionCustomer, CustomerID: &custB}, want: false},
		{name: "type match", rule: AlertSuppression{Type: SuppressionAlertType, AlertType: &usageDrop}, want: true},
		{name: "type miss", rule: AlertSuppression{Type: SuppressionAlertType, AlertType: &npsDetractor}, want: false},
		{name: "below threshold", rule: AlertSuppression{Type: SuppressionThreshold, Threshold: &threshold}, score: 55, want: true},
		{name: "at threshold", rule: AlertSuppression{Type: SuppressionThreshold, Threshold: &threshold}, score: 60, want: false},
		{name: "pattern match is case-insensitive", rule: AlertSuppression{Type: SuppressionPattern, Pattern: &pattern}, want: true},
		{name: "pattern miss", rule: AlertSuppression{Type: SuppressionPattern, Pattern: &miss}, want: false},
		{name: "nil target never matches", rule: AlertSuppression{Type: SuppressionCustomer}, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.rule.Matches(alert, tc.score))
		})
	}
}

func TestSuppressionExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.False(t, AlertSuppression{}.Expired(now))
	assert.False(t, AlertSuppression{ExpiresAt: &future}.Expired(now))
	assert.True(t, AlertSuppression{ExpiresAt: &past}.Expired(now))
}

func TestSnoozeExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	assert.False(t, ScoredAlert{Status: AlertStatusSnoozed}.SnoozeExpired(now))
	assert.False(t, ScoredAlert{Status: AlertStatusSnoozed, SnoozeUntil: &future}.SnoozeExpired(now))
	assert.True(t, ScoredAlert{Status: AlertStatusSnoozed, SnoozeUntil: &past}.SnoozeExpired(now))
	assert.True(t, ScoredAlert{Status: AlertStatusSnoozed, SnoozeUntil: &now}.SnoozeExpired(now))
	assert.False(t, ScoredAlert{Status: AlertStatusRead, SnoozeUntil: &past}.SnoozeExpired(now))
}

func TestThresholdsValid(t *testing.T) {
	prefs := DefaultAlertPreferences("user-1")
	assert.True(t, prefs.ThresholdsValid())

	prefs.DigestThreshold = prefs.ImmediateThreshold + 1
	assert.False(t, prefs.ThresholdsValid())

	prefs = DefaultAlertPreferences("user-1")
	prefs.SuppressThreshold = prefs.DigestThreshold + 1
	assert.False(t, prefs.ThresholdsValid())
}
