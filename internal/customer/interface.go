// Package customer exposes the read-only customer view the alert
// pipeline consumes when assembling scoring context.
package customer

import (
	"context"
	"errors"

	"cscx-api/internal/model"
)

var (
	// ErrNotFound is returned when no customer exists for the given id.
	ErrNotFound = errors.New("customer not found")
)

//go:generate mockery --name Reader
type Reader interface {
	Snapshot(ctx context.Context, customerID string) (model.CustomerSnapshot, error)
	ActivePlaybooks(ctx context.Context, customerID string) ([]string, error)
	SavePlayActive(ctx context.Context, customerID string) (bool, error)
	SeasonalPatterns(ctx context.Context, customerID string) ([]model.SeasonalPattern, error)
}
