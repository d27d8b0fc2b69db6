package inmem

import (
	"context"
	"sort"

	"cscx-api/internal/alert/repository"
	"cscx-api/internal/model"
	"cscx-api/pkg/paginator"
)

func (r *implRepository) CreateAlert(ctx context.Context, sc model.Scope, opts repository.CreateAlertOptions) (model.ScoredAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := opts.Alert
	a.UserID = sc.UserID
	r.alerts[a.ID] = a
	return a, nil
}

func (r *implRepository) UpdateAlert(ctx context.Context, sc model.Scope, opts repository.UpdateAlertOptions) (model.ScoredAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.alerts[opts.Alert.ID]
	if !ok || existing.UserID != sc.UserID {
		return model.ScoredAlert{}, repository.ErrNotFound
	}

	a := opts.Alert
	a.UserID = sc.UserID
	r.alerts[a.ID] = a
	return a, nil
}

func (r *implRepository) DetailAlert(ctx context.Context, sc model.Scope, id string) (model.ScoredAlert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.alerts[id]
	if !ok || a.UserID != sc.UserID {
		return model.ScoredAlert{}, repository.ErrNotFound
	}
	return a, nil
}

func (r *implRepository) ListAlerts(ctx context.Context, sc model.Scope, opts repository.ListAlertsOptions) ([]model.ScoredAlert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.filterAlerts(sc, opts.Filter)
	if opts.Limit > 0 && len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

func (r *implRepository) GetAlerts(ctx context.Context, sc model.Scope, opts repository.GetAlertsOptions) ([]model.ScoredAlert, paginator.Paginator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.filterAlerts(sc, opts.Filter)

	pq := opts.PaginateQuery
	pq.Adjust()

	total := int64(len(matched))
	offset := pq.Offset()
	if offset > total {
		offset = total
	}
	end := offset + pq.Limit
	if end > total {
		end = total
	}
	page := matched[offset:end]

	pag := paginator.Paginator{
		Total:       total,
		Count:       int64(len(page)),
		PerPage:     pq.Limit,
		CurrentPage: pq.Page,
	}
	return page, pag, nil
}

func (r *implRepository) DeleteAlerts(ctx context.Context, sc model.Scope, ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	if len(ids) == 0 {
		for id, a := range r.alerts {
			if a.UserID == sc.UserID {
				delete(r.alerts, id)
				removed++
			}
		}
		return removed, nil
	}

	for _, id := range ids {
		if a, ok := r.alerts[id]; ok && a.UserID == sc.UserID {
			delete(r.alerts, id)
			removed++
		}
	}
	return removed, nil
}

// filterAlerts applies the filter and returns alerts ordered by
// created_at descending, matching the Postgres adapter. Callers hold
// the read lock.
func (r *implRepository) filterAlerts(sc model.Scope, f repository.AlertFilter) []model.ScoredAlert {
	matched := make([]model.ScoredAlert, 0)
	for _, a := range r.alerts {
		if a.UserID != sc.UserID {
			continue
		}
		if f.CustomerID != "" && a.CustomerID != f.CustomerID {
			continue
		}
		if len(f.Types) > 0 && !containsType(f.Types, a.Type) {
			continue
		}
		if len(f.Statuses) > 0 && !containsStatus(f.Statuses, a.Status) {
			continue
		}
		if f.MinScore != nil && a.Score.FinalScore < *f.MinScore {
			continue
		}
		if f.Since != nil && a.CreatedAt.Before(*f.Since) {
			continue
		}
		matched = append(matched, a)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

func containsType(types []model.AlertType, t model.AlertType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func containsStatus(statuses []model.AlertStatus, s model.AlertStatus) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}
