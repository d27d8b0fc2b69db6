package scorer

import "cscx-api/internal/model"

// Combination weights for the final score. Policy constants, not
// learned at runtime; calibrated against the delivery scenarios in the
// usecase tests.
const (
	WeightImpact     = 0.40
	WeightUrgency    = 0.35
	WeightConfidence = 0.25
)

// Impact factor weights.
const (
	WeightTypeSeverity    = 0.50
	WeightARRTier         = 0.30
	WeightMetricMagnitude = 0.20
)

// Urgency factor weights.
const (
	WeightTypeUrgency      = 0.50
	WeightRenewalProximity = 0.35
	WeightSavePlayDamping  = 0.15
)

// Confidence factor weights.
const (
	WeightMetricEvidence     = 0.40
	WeightRecentSignals      = 0.35
	WeightSeasonalAdjustment = 0.25
)

// ARR tier values. The floor keeps zero-ARR customers scoreable
// without any division.
const (
	arrTierEnterprise = 100.0 // >= 250k
	arrTierMidMarket  = 85.0  // >= 100k
	arrTierGrowth     = 70.0  // >= 50k
	arrTierStarter    = 50.0  // >= 10k
	arrTierSmall      = 30.0  // > 0
	arrTierUnknown    = 20.0  // 0 or unreported
)

// typeSeverity is the inherent business severity of a signal type.
func typeSeverity(t model.AlertType) float64 {
	switch t {
	case model.AlertTypeHealthScoreCritical:
		return 95
	case model.AlertTypeSupportEscalation:
		return 85
	case model.AlertTypeChampionDeparture:
		return 80
	case model.AlertTypePaymentOverdue:
		return 75
	case model.AlertTypeHealthScoreDrop:
		return 70
	case model.AlertTypeUsageDrop:
		return 65
	case model.AlertTypeRenewalApproaching:
		return 60
	case model.AlertTypeEngagementDrop:
		return 60
	case model.AlertTypeNPSDetractor:
		return 55
	case model.AlertTypeUsageSpike:
		return 30
	}
	return 50
}

// typeUrgency is the SLA pressure a signal type carries.
func typeUrgency(t model.AlertType) float64 {
	switch t {
	case model.AlertTypeSupportEscalation:
		return 95
	case model.AlertTypeHealthScoreCritical:
		return 90
	case model.AlertTypePaymentOverdue:
		return 80
	case model.AlertTypeRenewalApproaching:
		return 75
	case model.AlertTypeChampionDeparture:
		return 65
	case model.AlertTypeHealthScoreDrop:
		return 60
	case model.AlertTypeUsageDrop:
		return 55
	case model.AlertTypeEngagementDrop:
		return 50
	case model.AlertTypeNPSDetractor:
		return 40
	case model.AlertTypeUsageSpike:
		return 25
	}
	return 40
}

func arrTierValue(arr float64) float64 {
	switch {
	case arr >= 250_000:
		return arrTierEnterprise
	case arr >= 100_000:
		return arrTierMidMarket
	case arr >= 50_000:
		return arrTierGrowth
	case arr >= 10_000:
		return arrTierStarter
	case arr > 0:
		return arrTierSmall
	}
	return arrTierUnknown
}

func renewalProximityValue(daysToRenewal *int) float64 {
	if daysToRenewal == nil {
		return 30
	}
	switch d := *daysToRenewal; {
	case d <= 30:
		return 100
	case d <= 60:
		return 75
	case d <= 90:
		return 50
	case d <= 180:
		return 25
	}
	return 10
}
