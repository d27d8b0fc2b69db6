package inmem

import (
	"context"
	"sort"
	"time"

	"cscx-api/internal/alert/repository"
	"cscx-api/internal/model"
	postgresPkg "cscx-api/pkg/postgre"
)

func (r *implRepository) CreateSuppression(ctx context.Context, sc model.Scope, rule model.AlertSuppression) (model.AlertSuppression, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rule.ID == "" {
		rule.ID = postgresPkg.NewUUID()
	}
	rule.UserID = sc.UserID
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = time.Now().UTC()
	}

	r.suppressions[rule.ID] = rule
	return rule, nil
}

func (r *implRepository) ListSuppressions(ctx context.Context, sc model.Scope) ([]model.AlertSuppression, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]model.AlertSuppression, 0)
	for _, rule := range r.suppressions {
		if rule.UserID == sc.UserID {
			rules = append(rules, rule)
		}
	}

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].CreatedAt.Equal(rules[j].CreatedAt) {
			return rules[i].ID > rules[j].ID
		}
		return rules[i].CreatedAt.After(rules[j].CreatedAt)
	})
	return rules, nil
}

func (r *implRepository) DeleteSuppression(ctx context.Context, sc model.Scope, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rule, ok := r.suppressions[id]
	if !ok || rule.UserID != sc.UserID {
		return repository.ErrNotFound
	}
	delete(r.suppressions, id)
	return nil
}
