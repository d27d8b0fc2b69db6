package scorer

import (
	"fmt"
	"math"

	"cscx-api/internal/model"
)

// matchFilters applies suppression rules and the minor-health-change
// filter. A match forces delivery to suppress regardless of score.
func (s *Scorer) matchFilters(alert model.RawAlert, prefs model.AlertPreferences, rules []model.AlertSuppression, final float64) (string, bool) {
	now := s.now()
	for _, rule := range rules {
		if rule.Expired(now) {
			continue
		}
		if rule.Matches(alert, final) {
			reason := rule.Reason
			if reason == "" {
				reason = fmt.Sprintf("matched %s suppression rule", rule.Type)
			}
			return reason, true
		}
	}

	if prefs.FilterMinorHealthChanges && alert.Type == model.AlertTypeHealthScoreDrop && alert.MetricChange != nil {
		delta := math.Abs(alert.MetricChange.Before - alert.MetricChange.After)
		if delta < prefs.MinorHealthChangePoints {
			return fmt.Sprintf("health change of %.1f points is below the %.1f point floor",
				delta, prefs.MinorHealthChangePoints), true
		}
	}

	return "", false
}
