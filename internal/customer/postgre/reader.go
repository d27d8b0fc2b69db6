// Package postgres reads customer snapshots from the hosted database.
package postgres

import (
	"context"
	"database/sql"

	"cscx-api/internal/customer"
	"cscx-api/internal/model"
	pkgLog "cscx-api/pkg/log"

	"github.com/aarondl/null/v8"
	"github.com/friendsofgo/errors"
)

type implReader struct {
	l  pkgLog.Logger
	db *sql.DB
}

// New creates a Postgres-backed customer reader.
func New(l pkgLog.Logger, db *sql.DB) customer.Reader {
	return &implReader{l: l, db: db}
}

func (r *implReader) Snapshot(ctx context.Context, customerID string) (model.CustomerSnapshot, error) {
	query := `SELECT id, name, arr, health_score, lifecycle, days_to_renewal, tier
		FROM customers WHERE id = $1`

	var (
		c             model.CustomerSnapshot
		lifecycle     string
		daysToRenewal null.Int
		tier          null.String
	)
	err := r.db.QueryRowContext(ctx, query, customerID).Scan(
		&c.ID, &c.Name, &c.ARR, &c.HealthScore, &lifecycle, &daysToRenewal, &tier,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.CustomerSnapshot{}, customer.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.customer.postgres.Snapshot.Scan: %v", err)
		return model.CustomerSnapshot{}, errors.Wrap(err, "select customer")
	}

	c.Lifecycle = model.LifecycleStatus(lifecycle)
	c.Tier = tier.String
	if daysToRenewal.Valid {
		d := daysToRenewal.Int
		c.DaysToRenewal = &d
	}
	return c, nil
}

func (r *implReader) ActivePlaybooks(ctx context.Context, customerID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM playbooks WHERE customer_id = $1 AND status = 'active' ORDER BY created_at DESC`,
		customerID)
	if err != nil {
		r.l.Errorf(ctx, "internal.customer.postgres.ActivePlaybooks.Query: %v", err)
		return nil, errors.Wrap(err, "select playbooks")
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			r.l.Errorf(ctx, "internal.customer.postgres.ActivePlaybooks.Scan: %v", err)
			return nil, errors.Wrap(err, "scan playbook")
		}
		names = append(names, name)
	}
	return names, errors.Wrap(rows.Err(), "iterate playbooks")
}

func (r *implReader) SavePlayActive(ctx context.Context, customerID string) (bool, error) {
	var active bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM playbooks WHERE customer_id = $1 AND status = 'active' AND type = 'save_play')`,
		customerID).Scan(&active)
	if err != nil {
		r.l.Errorf(ctx, "internal.customer.postgres.SavePlayActive.Scan: %v", err)
		return false, errors.Wrap(err, "select save play")
	}
	return active, nil
}

func (r *implReader) SeasonalPatterns(ctx context.Context, customerID string) ([]model.SeasonalPattern, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT metric, description, month_start, month_end FROM seasonal_patterns WHERE customer_id = $1`,
		customerID)
	if err != nil {
		r.l.Errorf(ctx, "internal.customer.postgres.SeasonalPatterns.Query: %v", err)
		return nil, errors.Wrap(err, "select seasonal_patterns")
	}
	defer rows.Close()

	patterns := make([]model.SeasonalPattern, 0)
	for rows.Next() {
		var p model.SeasonalPattern
		if err := rows.Scan(&p.Metric, &p.Description, &p.MonthStart, &p.MonthEnd); err != nil {
			r.l.Errorf(ctx, "internal.customer.postgres.SeasonalPatterns.Scan: %v", err)
			return nil, errors.Wrap(err, "scan seasonal_pattern")
		}
		patterns = append(patterns, p)
	}
	return patterns, errors.Wrap(rows.Err(), "iterate seasonal_patterns")
}
