package inmem

import (
	"context"

	"cscx-api/internal/customer"
	"cscx-api/internal/model"
)

func (r *implReader) Snapshot(ctx context.Context, customerID string) (model.CustomerSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.customers[customerID]
	if !ok {
		return model.CustomerSnapshot{}, customer.ErrNotFound
	}
	return c, nil
}

func (r *implReader) ActivePlaybooks(ctx context.Context, customerID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.playbooks[customerID]...), nil
}

func (r *implReader) SavePlayActive(ctx context.Context, customerID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.savePlays[customerID], nil
}

func (r *implReader) SeasonalPatterns(ctx context.Context, customerID string) ([]model.SeasonalPattern, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]model.SeasonalPattern(nil), r.seasonal[customerID]...), nil
}
