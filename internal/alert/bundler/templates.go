package bundler

import (
	"fmt"

	"cscx-api/internal/model"
)

// ruleBasedSummary pattern-matches on the set of alert categories
// present in the bundle and picks a canned framing. Single-alert
// bundles pass the alert's own copy through; anything unmatched gets
// the generic N-alerts template.
func ruleBasedSummary(members []model.ScoredAlert) summaryCopy {
	name := customerName(members)

	if len(members) == 1 {
		return singleAlertSummary(members[0], name)
	}

	present := make(map[string]bool)
	for _, m := range members {
		present[category(m.Type)] = true
	}

	switch {
	case present["health"] && present["usage"] && present["engagement"]:
		return summaryCopy{
			Title:             fmt.Sprintf("Converging risk signals at %s", name),
			Summary:           fmt.Sprintf("%s shows simultaneous health, usage and engagement decline across %d alerts. Multiple independent signals pointing the same way usually mean real churn risk.", name, len(members)),
			RecommendedAction: "Open a save play and schedule an executive check-in this week.",
		}
	case present["renewal"] && present["health"]:
		return summaryCopy{
			Title:             fmt.Sprintf("Renewal at risk for %s", name),
			Summary:           fmt.Sprintf("%s is approaching renewal while its health score is deteriorating (%d alerts). Renewal conversations on a declining account need early intervention.", name, len(members)),
			RecommendedAction: "Review the renewal plan and bring value evidence to the next call.",
		}
	case present["usage"] && present["engagement"]:
		return summaryCopy{
			Title:             fmt.Sprintf("Usage and engagement falling at %s", name),
			Summary:           fmt.Sprintf("%s has declining product usage alongside dropping engagement (%d alerts). Adoption is sliding before it shows up in the health score.", name, len(members)),
			RecommendedAction: "Run an adoption review and re-engage the key users who went quiet.",
		}
	case present["support"] && len(present) == 1:
		return summaryCopy{
			Title:             fmt.Sprintf("Support escalations at %s", name),
			Summary:           fmt.Sprintf("%s has %d active support escalations and no other risk signals. This looks like a service problem, not a churn problem yet.", name, len(members)),
			RecommendedAction: "Coordinate with support on resolution and follow up with the customer directly.",
		}
	}

	return summaryCopy{
		Title:             fmt.Sprintf("%d alerts require attention at %s", len(members), name),
		Summary:           fmt.Sprintf("%s has %d active alerts of mixed type. Review them together before they compound.", name, len(members)),
		RecommendedAction: "Triage the alerts and pick the highest-scoring one to act on first.",
	}
}

func singleAlertSummary(a model.ScoredAlert, name string) summaryCopy {
	title := a.Title
	if title == "" {
		title = fmt.Sprintf("%s at %s", a.Type, name)
	}
	summary := a.Description
	if summary == "" {
		summary = fmt.Sprintf("%s reported a %s signal.", name, a.Type)
	}
	return summaryCopy{
		Title:             title,
		Summary:           summary,
		RecommendedAction: defaultAction(a.Type),
	}
}

// defaultAction is the canned next step for a lone alert of each type.
func defaultAction(t model.AlertType) string {
	switch t {
	case model.AlertTypeHealthScoreDrop:
		return "Review the health score factors and check in with the account owner."
	case model.AlertTypeHealthScoreCritical:
		return "Escalate internally and contact the customer today."
	case model.AlertTypeUsageDrop:
		return "Look at which features went quiet and reach out to the affected users."
	case model.AlertTypeUsageSpike:
		return "Confirm the spike is organic growth and flag any expansion opportunity."
	case model.AlertTypeEngagementDrop:
		return "Re-engage your champion and schedule a touchpoint."
	case model.AlertTypeRenewalApproaching:
		return "Start renewal preparation and confirm the decision timeline."
	case model.AlertTypeSupportEscalation:
		return "Sync with support on the escalation and own the customer communication."
	case model.AlertTypeNPSDetractor:
		return "Follow up on the detractor response within 48 hours."
	case model.AlertTypeChampionDeparture:
		return "Identify and build a relationship with a replacement champion."
	case model.AlertTypePaymentOverdue:
		return "Loop in finance and confirm there is no underlying dissatisfaction."
	}
	return "Review the alert and decide on next steps."
}

// category groups alert types for template matching.
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
