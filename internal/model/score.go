package model

// DeliveryRecommendation routes a scored alert to a delivery tier.
type DeliveryRecommendation string

const (
	DeliveryImmediate DeliveryRecommendation = "immediate"
	DeliveryDigest    DeliveryRecommendation = "digest"
	DeliverySuppress  DeliveryRecommendation = "suppress"
)

// ScoreFactor is one named contribution to a score dimension.
// The factor list is the audit trail for a score and is never discarded.
type ScoreFactor struct {
	Factor       string  `json:"factor"`
	Weight       float64 `json:"weight"`
	Value        float64 `json:"value"`
	Contribution float64 `json:"contribution"`
	Explanation  string  `json:"explanation"`
}

// AlertScore is the scorer's output for one alert.
// FinalScore is always re-derivable from Factors and the fixed
// combination weights; Delivery is a pure function of FinalScore and
// the caller's preferences plus suppression filtering.
type AlertScore struct {
	ImpactScore     float64                `json:"impact_score"`
	UrgencyScore    float64                `json:"urgency_score"`
	ConfidenceScore float64                `json:"confidence_score"`
	FinalScore      float64                `json:"final_score"`
	Factors         []ScoreFactor          `json:"factors"`
	Delivery        DeliveryRecommendation `json:"delivery_recommendation"`
	Filtered        bool                   `json:"filtered"`
	FilterReason    *string                `json:"filter_reason,omitempty"`
}
