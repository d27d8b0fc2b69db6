package scorer

import (
	"fmt"
	"math"
	"time"

	"cscx-api/internal/model"
)

// Scorer turns a raw alert plus its context and the owning user's
// preferences into an explainable 0-100 score with a delivery
// recommendation. Scoring is pure with respect to its inputs; the only
// injected dependency is the clock, used for quiet hours and
// suppression expiry.
type Scorer struct {
	now func() time.Time
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithClock overrides the time source. Tests pin it for determinism.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) { s.now = now }
}

// New creates a Scorer.
func New(opts ...Option) *Scorer {
	s := &Scorer{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScoreAlert scores a single alert. The suppression rules are the
// caller's active rules; expired rules are ignored here rather than
// deleted.
func (s *Scorer) ScoreAlert(alert model.RawAlert, actx model.AlertContext, prefs model.AlertPreferences, rules []model.AlertSuppression) model.AlertScore {
	var factors []model.ScoreFactor

	impact := s.impactScore(alert, actx, &factors)
	urgency := s.urgencyScore(alert, actx, prefs, &factors)
	confidence := s.confidenceScore(alert, actx, prefs, &factors)

	final := round2(WeightImpact*impact + WeightUrgency*urgency + WeightConfidence*confidence)

	score := model.AlertScore{
		ImpactScore:     impact,
		UrgencyScore:    urgency,
		ConfidenceScore: confidence,
		FinalScore:      final,
		Factors:         factors,
	}

	if reason, matched := s.matchFilters(alert, prefs, rules, final); matched {
		score.Filtered = true
		score.FilterReason = &reason
		score.Delivery = model.DeliverySuppress
		return score
	}

	score.Delivery = s.recommendDelivery(final, prefs)
	return score
}

// ScoreAlerts scores a batch one at a time. No state is shared between
// elements.
func (s *Scorer) ScoreAlerts(alerts []model.RawAlert, actx model.AlertContext, prefs model.AlertPreferences, rules []model.AlertSuppression) []model.AlertScore {
	scores := make([]model.AlertScore, len(alerts))
	for i, a := range alerts {
		scores[i] = s.ScoreAlert(a, actx, prefs, rules)
	}
	return scores
}

// impactScore weighs the business blast radius of the signal.
func (s *Scorer) impactScore(alert model.RawAlert, actx model.AlertContext, factors *[]model.ScoreFactor) float64 {
	severity := typeSeverity(alert.Type)
	tier := arrTierValue(actx.Customer.ARR)

	magnitude := 0.0
	if alert.MetricChange != nil {
		magnitude = math.Min(100, math.Abs(alert.MetricChange.ChangePercent)*2)
	}

	total := addFactor(factors, "type_severity", WeightTypeSeverity, severity,
		fmt.Sprintf("%s carries inherent severity %.0f", alert.Type, severity))
	total += addFactor(factors, "arr_tier", WeightARRTier, tier,
		fmt.Sprintf("customer ARR $%.0f maps to tier value %.0f", actx.Customer.ARR, tier))
	if alert.MetricChange != nil {
		total += addFactor(factors, "metric_magnitude", WeightMetricMagnitude, magnitude,
			fmt.Sprintf("%s changed %.1f%%", alert.MetricChange.Metric, alert.MetricChange.ChangePercent))
	} else {
		total += addFactor(factors, "metric_magnitude", WeightMetricMagnitude, 0,
			"no metric change attached")
	}

	return clampScore(total)
}

// urgencyScore weighs the time pressure on responding.
func (s *Scorer) urgencyScore(alert model.RawAlert, actx model.AlertContext, prefs model.AlertPreferences, factors *[]model.ScoreFactor) float64 {
	urgency := typeUrgency(alert.Type)
	proximity := renewalProximityValue(actx.Customer.DaysToRenewal)

	// An active save play means remediation is already underway; fresh
	// alerts for the same customer should not re-alarm at full volume.
	damping := 100.0
	dampingExplanation := "no active save play"
	if actx.SavePlayActive && prefs.SavePlaySuppressionHints {
		damping = 40
		dampingExplanation = "active save play already remediating this customer"
	}

	total := addFactor(factors, "type_urgency", WeightTypeUrgency, urgency,
		fmt.Sprintf("%s carries response urgency %.0f", alert.Type, urgency))
	total += addFactor(factors, "renewal_proximity", WeightRenewalProximity, proximity,
		renewalExplanation(actx.Customer.DaysToRenewal))
	total += addFactor(factors, "save_play_damping", WeightSavePlayDamping, damping, dampingExplanation)

	return clampScore(total)
}

// confidenceScore weighs how likely the signal is real.
func (s *Scorer) confidenceScore(alert model.RawAlert, actx model.AlertContext, prefs model.AlertPreferences, factors *[]model.ScoreFactor) float64 {
	evidence := 40.0
	evidenceExplanation := "no concrete metric change to corroborate"
	if alert.MetricChange != nil {
		evidence = 90
		evidenceExplanation = fmt.Sprintf("concrete %s movement recorded", alert.MetricChange.Metric)
	}

	recent, recentExplanation := recentSignalsValue(alert, actx.RecentAlerts)

	seasonal := 85.0
	seasonalExplanation := "no seasonal pattern matched"
	if prefs.SeasonalSuppression && matchesSeasonalPattern(alert, actx.SeasonalPatterns) {
		seasonal = 30
		seasonalExplanation = "matches a known seasonal variance for this customer"
	}

	total := addFactor(factors, "metric_evidence", WeightMetricEvidence, evidence, evidenceExplanation)
	total += addFactor(factors, "recent_signals", WeightRecentSignals, recent, recentExplanation)
	total += addFactor(factors, "seasonal_adjustment", WeightSeasonalAdjustment, seasonal, seasonalExplanation)

	return clampScore(total)
}

// recommendDelivery routes by final score against the user's
// thresholds. Quiet hours demote would-be-immediate alerts to digest,
// but never alerts at or above the critical override.
func (s *Scorer) recommendDelivery(final float64, prefs model.AlertPreferences) model.DeliveryRecommendation {
	if final >= prefs.ImmediateThreshold {
		if prefs.QuietHours.Contains(s.now()) && final < prefs.CriticalThreshold {
			return model.DeliveryDigest
		}
		return model.DeliveryImmediate
	}
	if final >= prefs.DigestThreshold {
		return model.DeliveryDigest
	}
	return model.DeliverySuppress
}

// recentSignalsValue looks for corroborating or contradicting alerts in
// the customer's recent history.
func recentSignalsValue(alert model.RawAlert, recent []model.ScoredAlert) (float64, string) {
	for _, r := range recent {
		if r.ID == alert.ID {
			continue
		}
		if contradicts(alert.Type, r.Type) {
			return 35, fmt.Sprintf("recent %s contradicts this signal", r.Type)
		}
	}
	for _, r := range recent {
		if r.ID == alert.ID {
			continue
		}
		if r.Type == alert.Type || sameCategory(alert.Type, r.Type) {
			return 95, fmt.Sprintf("corroborated by recent %s", r.Type)
		}
	}
	return 70, "no recent signals either way"
}

// contradicts reports whether two signal types point in opposite
// directions for the same underlying metric.
func contradicts(a, b model.AlertType) bool {
	switch {
	case a == model.AlertTypeUsageDrop && b == model.AlertTypeUsageSpike:
		return true
	case a == model.AlertTypeUsageSpike && b == model.AlertTypeUsageDrop:
		return true
	}
	return false
}

func sameCategory(a, b model.AlertType) bool {
	return category(a) == category(b)
}

func category(t model.AlertType) string {
	switch t {
	case model.AlertTypeHealthScoreDrop, model.AlertTypeHealthScoreCritical:
		return "health"
	case model.AlertTypeUsageDrop, model.AlertTypeUsageSpike:
		return "usage"
	case model.AlertTypeEngagementDrop:
		return "engagement"
	case model.AlertTypeRenewalApproaching:
		return "renewal"
	case model.AlertTypeSupportEscalation:
		return "support"
	case model.AlertTypeNPSDetractor:
		return "nps"
	case model.AlertTypeChampionDeparture:
		return "champion"
	case model.AlertTypePaymentOverdue:
		return "payment"
	}
	return "other"
}

// matchesSeasonalPattern reports whether the alert's metric and month
// fall inside a known recurring variance window.
func matchesSeasonalPattern(alert model.RawAlert, patterns []model.SeasonalPattern) bool {
	if alert.MetricChange == nil {
		return false
	}
	month := int(alert.CreatedAt.Month())
	for _, p := range patterns {
		if p.Metric != alert.MetricChange.Metric {
			continue
		}
		if p.MonthStart <= p.MonthEnd {
			if month >= p.MonthStart && month <= p.MonthEnd {
				return true
			}
		} else if month >= p.MonthStart || month <= p.MonthEnd {
			return true
		}
	}
	return false
}

func renewalExplanation(daysToRenewal *int) string {
	if daysToRenewal == nil {
		return "renewal date unknown"
	}
	return fmt.Sprintf("renewal in %d days", *daysToRenewal)
}

// addFactor records one factor and returns its contribution.
func addFactor(factors *[]model.ScoreFactor, name string, weight, value float64, explanation string) float64 {
	contribution := round2(weight * value)
	*factors = append(*factors, model.ScoreFactor{
		Factor:       name,
		Weight:       weight,
		Value:        value,
		Contribution: contribution,
		Explanation:  explanation,
	})
	return contribution
}

func clampScore(v float64) float64 {
	return round2(math.Max(0, math.Min(100, v)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
