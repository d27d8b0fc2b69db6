package model

import "time"

// FeedbackRating is a user's judgment on a delivered alert.
type FeedbackRating string

const (
	FeedbackHelpful       FeedbackRating = "helpful"
	FeedbackNotHelpful    FeedbackRating = "not_helpful"
	FeedbackAlreadyKnew   FeedbackRating = "already_knew"
	FeedbackFalsePositive FeedbackRating = "false_positive"
)

// IsValid reports whether r is one of the known ratings.
func (r FeedbackRating) IsValid() bool {
	switch r {
	case FeedbackHelpful, FeedbackNotHelpful, FeedbackAlreadyKnew, FeedbackFalsePositive:
		return true
	}
	return false
}

// AlertFeedback is an append-only record; entries are never mutated.
type AlertFeedback struct {
	ID        string         `json:"id"`
	AlertID   string         `json:"alert_id"`
	UserID    string         `json:"user_id"`
	AlertType AlertType      `json:"alert_type"`
	Rating    FeedbackRating `json:"rating"`
	Notes     *string        `json:"notes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
