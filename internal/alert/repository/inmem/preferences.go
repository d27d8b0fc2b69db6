package inmem

import (
	"context"
	"time"

	"cscx-api/internal/alert/repository"
	"cscx-api/internal/model"
)

func (r *implRepository) GetPreferences(ctx context.Context, sc model.Scope) (model.AlertPreferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefs, ok := r.preferences[sc.UserID]
	if !ok {
		return model.AlertPreferences{}, repository.ErrNotFound
	}
	return prefs, nil
}

func (r *implRepository) UpsertPreferences(ctx context.Context, sc model.Scope, prefs model.AlertPreferences) (model.AlertPreferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	prefs.UserID = sc.UserID
	prefs.UpdatedAt = now
	if existing, ok := r.preferences[sc.UserID]; ok {
		prefs.CreatedAt = existing.CreatedAt
	} else {
		prefs.CreatedAt = now
	}

	r.preferences[sc.UserID] = prefs
	return prefs, nil
}
