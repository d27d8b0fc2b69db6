package bundler

import (
	"testing"

	"cscx-api/internal/model"

	"github.com/stretchr/testify/assert"
)

func templateMembers(types ...model.AlertType) []model.ScoredAlert {
	name := "Acme Corp"
	members := make([]model.ScoredAlert, 0, len(types))
	for i, typ := range types {
		members = append(members, model.ScoredAlert{
			RawAlert: model.RawAlert{
				ID:           string(rune('a' + i)),
				Type:         typ,
				CustomerID:   "cust-a",
				CustomerName: &name,
				Title:        "fixture title",
				Description:  "fixture description",
			},
		})
	}
	return members
}

func TestRuleBasedSummaryConvergingRisk(t *testing.T) {
	sc := ruleBasedSummary(templateMembers(
		model.AlertTypeHealthScoreDrop,
		model.AlertTypeUsageDrop,
		model.AlertTypeEngagementDrop,
	))
	assert.Equal(t, "Converging risk signals at Acme Corp", sc.Title)
	assert.Contains(t, sc.Summary, "3 alerts")
	assert.Contains(t, sc.RecommendedAction, "save play")
}

func TestRuleBasedSummaryRenewalRisk(t *testing.T) {
	sc := ruleBasedSummary(templateMembers(
		model.AlertTypeRenewalApproaching,
		model.AlertTypeHealthScoreCritical,
	))
	assert.Equal(t, "Renewal at risk for Acme Corp", sc.Title)
	assert.Contains(t, sc.RecommendedAction, "renewal plan")
}

func TestRuleBasedSummaryAdoptionDecline(t *testing.T) {
	sc := ruleBasedSummary(templateMembers(
		model.AlertTypeUsageDrop,
		model.AlertTypeEngagementDrop,
	))
	assert.Equal(t, "Usage and engagement falling at Acme Corp", sc.Title)
	assert.Contains(t, sc.RecommendedAction, "adoption review")
}

func TestRuleBasedSummarySupportOnly(t *testing.T) {
	sc := ruleBasedSummary(templateMembers(
		model.AlertTypeSupportEscalation,
		model.AlertTypeSupportEscalation,
	))
	assert.Equal(t, "Support escalations at Acme Corp", sc.Title)

	// A second category breaks the support-only match.
	mixed := ruleBasedSummary(templateMembers(
		model.AlertTypeSupportEscalation,
		model.AlertTypePaymentOverdue,
	))
	assert.Equal(t, "2 alerts require attention at Acme Corp", mixed.Title)
}

func TestRuleBasedSummarySingleAlertPassthrough(t *testing.T) {
	members := templateMembers(model.AlertTypeChampionDeparture)
	sc := ruleBasedSummary(members)
	assert.Equal(t, "fixture title", sc.Title)
	assert.Equal(t, "fixture description", sc.Summary)
	assert.Equal(t, defaultAction(model.AlertTypeChampionDeparture), sc.RecommendedAction)

	// Empty copy on the alert falls back to generated text.
	members[0].Title = ""
	members[0].Description = ""
	sc = ruleBasedSummary(members)
	assert.Contains(t, sc.Title, "champion_departure")
	assert.Contains(t, sc.Summary, "Acme Corp")
}

func TestRuleBasedSummaryGenericFallback(t *testing.T) {
	sc := ruleBasedSummary(templateMembers(
		model.AlertTypeNPSDetractor,
		model.AlertTypePaymentOverdue,
		model.AlertTypeChampionDeparture,
	))
	assert.Equal(t, "3 alerts require attention at Acme Corp", sc.Title)
	assert.NotEmpty(t, sc.RecommendedAction)
}

func TestDefaultActionCoversAllTypes(t *testing.T) {
	for _, typ := range model.AlertTypes() {
		assert.NotEmpty(t, defaultAction(typ), "type %s", typ)
		assert.NotEqual(t, "Review the alert and decide on next steps.", defaultAction(typ), "type %s", typ)
	}
}

func TestCustomerNameFallsBackToID(t *testing.T) {
	members := templateMembers(model.AlertTypeUsageDrop)
	members[0].CustomerName = nil
	assert.Equal(t, "cust-a", customerName(members))
}
