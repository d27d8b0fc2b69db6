package scorer

import (
	"testing"
	"time"

	"cscx-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

func newTestScorer() *Scorer {
	return New(WithClock(func() time.Time { return testNow }))
}

func criticalAlert() model.RawAlert {
	return model.RawAlert{
		ID:          "alert-1",
		Type:        model.AlertTypeHealthScoreCritical,
		CustomerID:  "cust-1",
		Title:       "Health score dropped to critical",
		Description: "Health score fell from 72 to 43",
		MetricChange: &model.MetricChange{
			Metric:        "health_score",
			Before:        72,
			After:         43,
			ChangePercent: -40,
		},
		CreatedAt: testNow,
	}
}

func contextWithARR(arr float64) model.AlertContext {
	return model.AlertContext{
		Customer: model.CustomerSnapshot{
			ID:   "cust-1",
			Name: "Acme Corp",
			ARR:  arr,
		},
	}
}

func TestScoreAlertCriticalHighValueCustomer(t *testing.T) {
	s := newTestScorer()
	prefs := model.DefaultAlertPreferences("user-1")

	score := s.ScoreAlert(criticalAlert(), contextWithARR(200_000), prefs, nil)

	assert.InDelta(t, 89, score.ImpactScore, 0.001)
	assert.InDelta(t, 70.5, score.UrgencyScore, 0.001)
	assert.InDelta(t, 81.75, score.ConfidenceScore, 0.001)
	assert.InDelta(t, 80.71, score.FinalScore, 0.001)
	assert.Equal(t, model.DeliveryImmediate, score.Delivery)
	assert.False(t, score.Filtered)
}

func TestScoreAlertDeterministic(t *testing.T) {
	s := newTestScorer()
	prefs := model.DefaultAlertPreferences("user-1")
	actx := contextWithARR(200_000)

	first := s.ScoreAlert(criticalAlert(), actx, prefs, nil)
	second := s.ScoreAlert(criticalAlert(), actx, prefs, nil)

	require.Equal(t, first, second)
}

func TestScoreAlertExplainability(t *testing.T) {
	s := newTestScorer()
	prefs := model.DefaultAlertPreferences("user-1")

	score := s.ScoreAlert(criticalAlert(), contextWithARR(200_000), prefs, nil)

	require.Len(t, score.Factors, 9)
	names := make(map[string]bool)
	for _, f := range score.Factors {
		names[f.Factor] = true
		assert.NotEmpty(t, f.Explanation, "factor %s has no explanation", f.Factor)
		assert.InDelta(t, f.Weight*f.Value, f.Contribution, 0.005)
	}
	for _, want := range []string{
		"type_severity", "arr_tier", "metric_magnitude",
		"type_urgency", "renewal_proximity", "save_play_damping",
		"metric_evidence", "recent_signals", "seasonal_adjustment",
	} {
		assert.True(t, names[want], "missing factor %s", want)
	}
}

func TestScoreAlertMinimalContextStillRoutesToDigest(t *testing.T) {
	s := newTestScorer()
	prefs := model.DefaultAlertPreferences("user-1")

	for _, typ := range []model.AlertType{model.AlertTypeUsageDrop, model.AlertTypeEngagementDrop} {
		alert := model.RawAlert{
			ID:         "alert-min",
			Type:       typ,
			CustomerID: "cust-unknown",
			Title:      "Signal with no context",
			CreatedAt:  testNow,
		}
		score := s.ScoreAlert(alert, model.AlertContext{Customer: model.CustomerSnapshot{ID: "cust-unknown"}}, prefs, nil)

		assert.GreaterOrEqual(t, score.FinalScore, prefs.DigestThreshold,
			"%s should at least reach digest with zero context", typ)
		assert.Equal(t, model.DeliveryDigest, score.Delivery, "type %s", typ)
	}
}

func TestScoreAlertZeroARRUsesFloor(t *testing.T) {
	s := newTestScorer()
	prefs := model.DefaultAlertPreferences("user-1")

	score := s.ScoreAlert(criticalAlert(), contextWithARR(0), prefs, nil)

	var tierValue float64
	for _, f := range score.Factors {
		if f.Factor == "arr_tier" {
			tierValue = f.Value
		}
	}
	assert.Equal(t, 20.0, tierValue)
	assert.Greater(t, score.FinalScore, 0.0)
}

func TestScoreAlertSavePlayDampensUrgency(t *testing.T) {
	s := newTestScorer()
	prefs := model.DefaultAlertPreferences("user-1")

	actx := contextWithARR(200_000)
	base := s.ScoreAlert(criticalAlert(), actx, prefs, nil)

	actx.SavePlayActive = true
	damped := s.ScoreAlert(criticalAlert(), actx, prefs, nil)

	assert.Less(t, damped.UrgencyScore, base.UrgencyScore)
	assert.Less(t, damped.FinalScore, base.FinalScore)

	// Disabling the hint restores full urgency.
	prefs.SavePlaySuppressionHints = false
	undamped := s.ScoreAlert(criticalAlert(), actx, prefs, nil)
	assert.Equal(t, base.UrgencyScore, undamped.UrgencyScore)
}

func TestScoreAlertRenewalProximityRaisesUrgency(t *testing.T) {
	s := newTestScorer()
	prefs := model.DefaultAlertPreferences("user-1")

	near := 20
	far := 200

	actxNear := contextWithARR(100_000)
	actxNear.Customer.DaysToRenewal = &near
	actxFar := contextWithARR(100_000)
	actxFar.Customer.DaysToRenewal = &far

	scoreNear := s.ScoreAlert(criticalAlert(), actxNear, prefs, nil)
	scoreFar := s.ScoreAlert(criticalAlert(), actxFar, prefs, nil)

	assert.Greater(t, scoreNear.UrgencyScore, scoreFar.UrgencyScore)
}

func TestScoreAlertRecentSignals(t *testing.T) {
	s := newTestScorer()
	prefs := model.DefaultAlertPreferences("user-1")

	alert := model.RawAlert{
		ID:         "alert-usage",
		Type:       model.AlertTypeUsageDrop,
		CustomerID: "cust-1",
		Title:      "Usage down",
		CreatedAt:  testNow,
	}

	recentOf := func(typ model.AlertType) []model.ScoredAlert {
		return []model.ScoredAlert{{
			RawAlert: model.RawAlert{ID: "alert-prior", Type: typ, CustomerID: "cust-1", CreatedAt: testNow.Add(-2 * time.Hour)},
		}}
	}

	factorValue := func(score model.AlertScore) float64 {
		for _, f := range score.Factors {
			if f.Factor == "recent_signals" {
				return f.Value
			}
		}
		return -1
	}

	actx := contextWithARR(50_000)

	actx.RecentAlerts = nil
	assert.Equal(t, 70.0, factorValue(s.ScoreAlert(alert, actx, prefs, nil)))

	actx.RecentAlerts = recentOf(model.AlertTypeUsageDrop)
	assert.Equal(t, 95.0, factorValue(s.ScoreAlert(alert, actx, prefs, nil)))

	// A spike in the same window contradicts a drop.
	actx.RecentAlerts = recentOf(model.AlertTypeUsageSpike)
	assert.Equal(t, 35.0, factorValue(s.ScoreAlert(alert, actx, prefs, nil)))
}

func TestScoreAlertSeasonalAdjustment(t *testing.T) {
	july := time.Date(2026, 7, 15, 10, 0, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time { return july }))
	prefs := model.DefaultAlertPreferences("user-1")

	alert := model.RawAlert{
		ID:         "alert-seasonal",
		Type:       model.AlertTypeUsageDrop,
		CustomerID: "cust-1",
		Title:      "WAU down",
		MetricChange: &model.MetricChange{
			Metric:        "weekly_active_users",
			Before:        900,
			After:         600,
			ChangePercent: -33,
		},
		CreatedAt: july,
	}

	actx := contextWithARR(100_000)
	actx.SeasonalPatterns = []model.SeasonalPattern{{
		Metric:     "weekly_active_users",
		MonthStart: 6,
		MonthEnd:   8,
	}}

	seasonal := func(score model.AlertScore) float64 {
		for _, f := range score.Factors {
			if f.Factor == "seasonal_adjustment" {
				return f.Value
			}
		}
		return -1
	}

	matched := s.ScoreAlert(alert, actx, prefs, nil)
	assert.Equal(t, 30.0, seasonal(matched))

	prefs.SeasonalSuppression = false
	unmatched := s.ScoreAlert(alert, actx, prefs, nil)
	assert.Equal(t, 85.0, seasonal(unmatched))
}

func TestRecommendDeliveryQuietHours(t *testing.T) {
	s := newTestScorer() // clock pinned at 14:00 UTC
	prefs := model.DefaultAlertPreferences("user-1")
	prefs.QuietHours = model.QuietHours{Enabled: true, StartHour: 12, EndHour: 18, Timezone: "UTC"}

	// Immediate-worthy but below critical gets demoted to digest.
	score := s.ScoreAlert(criticalAlert(), contextWithARR(200_000), prefs, nil)
	assert.Equal(t, model.DeliveryDigest, score.Delivery)

	// At or above the critical override quiet hours do not apply.
	prefs.CriticalThreshold = 80
	score = s.ScoreAlert(criticalAlert(), contextWithARR(200_000), prefs, nil)
	assert.Equal(t, model.DeliveryImmediate, score.Delivery)
}

func TestScoreAlertSuppressionRules(t *testing.T) {
	s := newTestScorer()
	prefs := model.DefaultAlertPreferences("user-1")
	custID := "cust-1"

	rule := model.AlertSuppression{
		ID:         "rule-1",
		Type:       model.SuppressionCustomer,
		CustomerID: &custID,
		Reason:     "known migration window",
	}

	score := s.ScoreAlert(criticalAlert(), contextWithARR(200_000), prefs, []model.AlertSuppression{rule})
	assert.True(t, score.Filtered)
	require.NotNil(t, score.FilterReason)
	assert.Equal(t, "known migration window", *score.FilterReason)
	assert.Equal(t, model.DeliverySuppress, score.Delivery)
	// The score itself is still computed for the audit trail.
	assert.InDelta(t, 80.71, score.FinalScore, 0.001)
}

func TestScoreAlertExpiredSuppressionIgnored(t *testing.T) {
	s := newTestScorer()
	prefs := model.DefaultAlertPreferences("user-1")
	custID := "cust-1"
	expired := testNow.Add(-time.Hour)

	rule := model.AlertSuppression{
		ID:         "rule-1",
		Type:       model.SuppressionCustomer,
		CustomerID: &custID,
		ExpiresAt:  &expired,
	}

	score := s.ScoreAlert(criticalAlert(), contextWithARR(200_000), prefs, []model.AlertSuppression{rule})
	assert.False(t, score.Filtered)
	assert.Equal(t, model.DeliveryImmediate, score.Delivery)
}

func TestScoreAlertMinorHealthChangeFiltered(t *testing.T) {
	s := newTestScorer()
	prefs := model.DefaultAlertPreferences("user-1")

	minor := model.RawAlert{
		ID:         "alert-minor",
		Type:       model.AlertTypeHealthScoreDrop,
		CustomerID: "cust-1",
		Title:      "Small health dip",
		MetricChange: &model.MetricChange{
			Metric:        "health_score",
			Before:        72,
			After:         69,
			ChangePercent: -4.2,
		},
		CreatedAt: testNow,
	}

	score := s.ScoreAlert(minor, contextWithARR(100_000), prefs, nil)
	assert.True(t, score.Filtered)
	assert.Equal(t, model.DeliverySuppress, score.Delivery)

	// A larger move clears the floor.
	minor.MetricChange.After = 60
	score = s.ScoreAlert(minor, contextWithARR(100_000), prefs, nil)
	assert.False(t, score.Filtered)

	// The filter can be turned off entirely.
	minor.MetricChange.After = 69
	prefs.FilterMinorHealthChanges = false
	score = s.ScoreAlert(minor, contextWithARR(100_000), prefs, nil)
	assert.False(t, score.Filtered)
}

func TestScoreAlertsBatchIndependent(t *testing.T) {
	s := newTestScorer()
	prefs := model.DefaultAlertPreferences("user-1")
	actx := contextWithARR(200_000)

	single := s.ScoreAlert(criticalAlert(), actx, prefs, nil)
	batch := s.ScoreAlerts([]model.RawAlert{criticalAlert(), criticalAlert()}, actx, prefs, nil)

	require.Len(t, batch, 2)
	assert.Equal(t, single, batch[0])
	assert.Equal(t, single, batch[1])
}

func TestArrTierValue(t *testing.T) {
	cases := []struct {
		arr  float64
		want float64
	}{
		{300_000, 100},
		{250_000, 100},
		{200_000, 85},
		{60_000, 70},
		{15_000, 50},
		{5_000, 30},
		{0, 20},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, arrTierValue(tc.arr), "arr %.0f", tc.arr)
	}
}

func TestRenewalProximityValue(t *testing.T) {
	intPtr := func(v int) *int { return &v }
	cases := []struct {
		days *int
		want float64
	}{
		{nil, 30},
		{intPtr(10), 100},
		{intPtr(45), 75},
		{intPtr(90), 50},
		{intPtr(120), 25},
		{intPtr(365), 10},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, renewalProximityValue(tc.days))
	}
}
