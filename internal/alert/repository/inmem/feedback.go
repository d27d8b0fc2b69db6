package inmem

import (
	"context"
	"time"

	"cscx-api/internal/alert/repository"
	"cscx-api/internal/model"
	postgresPkg "cscx-api/pkg/postgre"
)

func (r *implRepository) CreateFeedback(ctx context.Context, sc model.Scope, fb model.AlertFeedback) (model.AlertFeedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if fb.ID == "" {
		fb.ID = postgresPkg.NewUUID()
	}
	fb.UserID = sc.UserID
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now().UTC()
	}

	r.feedback = append(r.feedback, fb)
	return fb, nil
}

func (r *implRepository) ListFeedback(ctx context.Context, sc model.Scope, opts repository.ListFeedbackOptions) ([]model.AlertFeedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]model.AlertFeedback, 0)
	for _, fb := range r.feedback {
		if fb.UserID != sc.UserID {
			continue
		}
		if opts.AlertType != nil && fb.AlertType != *opts.AlertType {
			continue
		}
		if opts.Since != nil && fb.CreatedAt.Before(*opts.Since) {
			continue
		}
		matched = append(matched, fb)
	}
	return matched, nil
}
