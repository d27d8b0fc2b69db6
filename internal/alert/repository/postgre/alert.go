package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"cscx-api/internal/alert/repository"
	"cscx-api/internal/model"
	"cscx-api/pkg/paginator"

	"github.com/friendsofgo/errors"
	"github.com/lib/pq"
)

const alertColumns = `id, user_id, customer_id, customer_name, type, title, description,
	metric_change, metadata, source, score, final_score, status,
	read_at, actioned_at, snooze_until, created_at`

func (r *implRepository) CreateAlert(ctx context.Context, sc model.Scope, opts repository.CreateAlertOptions) (model.ScoredAlert, error) {
	a := opts.Alert
	a.UserID = sc.UserID

	row, err := newAlertRow(a)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.CreateAlert.newAlertRow: %v", err)
		return model.ScoredAlert{}, err
	}

	query := fmt.Sprintf(`INSERT INTO scored_alerts (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		alertColumns)

	if _, err := r.db.ExecContext(ctx, query,
		row.ID, row.UserID, row.CustomerID, row.CustomerName, row.Type, row.Title, row.Description,
		row.MetricChange, row.Metadata, row.Source, row.Score, row.FinalScore, row.Status,
		row.ReadAt, row.ActionedAt, row.SnoozeUntil, row.CreatedAt,
	); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.CreateAlert.Exec: %v", err)
		return model.ScoredAlert{}, errors.Wrap(err, "insert scored_alert")
	}

	return a, nil
}

func (r *implRepository) UpdateAlert(ctx context.Context, sc model.Scope, opts repository.UpdateAlertOptions) (model.ScoredAlert, error) {
	a := opts.Alert
	a.UserID = sc.UserID

	row, err := newAlertRow(a)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.UpdateAlert.newAlertRow: %v", err)
		return model.ScoredAlert{}, err
	}

	query := `UPDATE scored_alerts
		SET status = $1, score = $2, final_score = $3, read_at = $4, actioned_at = $5, snooze_until = $6
		WHERE id = $7 AND user_id = $8`

	res, err := r.db.ExecContext(ctx, query,
		row.Status, row.Score, row.FinalScore, row.ReadAt, row.ActionedAt, row.SnoozeUntil,
		row.ID, row.UserID,
	)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.UpdateAlert.Exec: %v", err)
		return model.ScoredAlert{}, errors.Wrap(err, "update scored_alert")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.UpdateAlert.RowsAffected: %v", err)
		return model.ScoredAlert{}, errors.Wrap(err, "update scored_alert")
	}
	if rows == 0 {
		return model.ScoredAlert{}, repository.ErrNotFound
	}

	return a, nil
}

func (r *implRepository) DetailAlert(ctx context.Context, sc model.Scope, id string) (model.ScoredAlert, error) {
	query := fmt.Sprintf(`SELECT %s FROM scored_alerts WHERE id = $1 AND user_id = $2`, alertColumns)

	var row alertRow
	err := r.db.QueryRowContext(ctx, query, id, sc.UserID).Scan(
		&row.ID, &row.UserID, &row.CustomerID, &row.CustomerName, &row.Type, &row.Title, &row.Description,
		&row.MetricChange, &row.Metadata, &row.Source, &row.Score, &row.FinalScore, &row.Status,
		&row.ReadAt, &row.ActionedAt, &row.SnoozeUntil, &row.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.ScoredAlert{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.alert.repository.postgres.DetailAlert.Scan: %v", err)
		return model.ScoredAlert{}, errors.Wrap(err, "select scored_alert")
	}

	return row.toModel()
}

func (r *implRepository) ListAlerts(ctx context.Context, sc model.Scope, opts repository.ListAlertsOptions) ([]model.ScoredAlert, error) {
	where, args := buildAlertWhere(sc, opts.Filter)

	query := fmt.Sprintf(`SELECT %s FROM scored_alerts WHERE %s ORDER BY created_at DESC, id DESC`,
		alertColumns, where)
	if opts.Limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, opts.Limit)
	}

	return r.queryAlerts(ctx, query, args)
}

func (r *implRepository) GetAlerts(ctx context.Context, sc model.Scope, opts repository.GetAlertsOptions) ([]model.ScoredAlert, paginator.Paginator, error) {
	where, args := buildAlertWhere(sc, opts.Filter)

	pgq := opts.PaginateQuery
	pgq.Adjust()

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM scored_alerts WHERE %s`, where)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.GetAlerts.Count: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "count scored_alerts")
	}

	query := fmt.Sprintf(`SELECT %s FROM scored_alerts WHERE %s ORDER BY created_at DESC, id DESC LIMIT %d OFFSET %d`,
		alertColumns, where, pgq.Limit, pgq.Offset())

	alerts, err := r.queryAlerts(ctx, query, args)
	if err != nil {
		return nil, paginator.Paginator{}, err
	}

	pag := paginator.Paginator{
		Total:       total,
		Count:       int64(len(alerts)),
		PerPage:     pgq.Limit,
		CurrentPage: pgq.Page,
	}
	return alerts, pag, nil
}

func (r *implRepository) DeleteAlerts(ctx context.Context, sc model.Scope, ids []string) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if len(ids) == 0 {
		res, err = r.db.ExecContext(ctx, `DELETE FROM scored_alerts WHERE user_id = $1`, sc.UserID)
	} else {
		res, err = r.db.ExecContext(ctx,
			`DELETE FROM scored_alerts WHERE user_id = $1 AND id = ANY($2)`,
			sc.UserID, pq.Array(ids))
	}
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.DeleteAlerts.Exec: %v", err)
		return 0, errors.Wrap(err, "delete scored_alerts")
	}

	removed, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.DeleteAlerts.RowsAffected: %v", err)
		return 0, errors.Wrap(err, "delete scored_alerts")
	}
	return removed, nil
}

func (r *implRepository) queryAlerts(ctx context.Context, query string, args []any) ([]model.ScoredAlert, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.queryAlerts.Query: %v", err)
		return nil, errors.Wrap(err, "select scored_alerts")
	}
	defer rows.Close()

	alerts := make([]model.ScoredAlert, 0)
	for rows.Next() {
		var row alertRow
		if err := rows.Scan(
			&row.ID, &row.UserID, &row.CustomerID, &row.CustomerName, &row.Type, &row.Title, &row.Description,
			&row.MetricChange, &row.Metadata, &row.Source, &row.Score, &row.FinalScore, &row.Status,
			&row.ReadAt, &row.ActionedAt, &row.SnoozeUntil, &row.CreatedAt,
		); err != nil {
			r.l.Errorf(ctx, "internal.alert.repository.postgres.queryAlerts.Scan: %v", err)
			return nil, errors.Wrap(err, "scan scored_alert")
		}

		a, err := row.toModel()
		if err != nil {
			r.l.Errorf(ctx, "internal.alert.repository.postgres.queryAlerts.toModel: %v", err)
			return nil, err
		}
		alerts = append(alerts, a)
	}

	return alerts, errors.Wrap(rows.Err(), "iterate scored_alerts")
}

// buildAlertWhere renders the filter as a WHERE clause with positional
// args. The user scope is always the first condition.
func buildAlertWhere(sc model.Scope, f repository.AlertFilter) (string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{sc.UserID}

	next := func() int { return len(args) + 1 }

	if f.CustomerID != "" {
		conds = append(conds, fmt.Sprintf("customer_id = $%d", next()))
		args = append(args, f.CustomerID)
	}
	if len(f.Types) > 0 {
		types := make([]string, len(f.Types))
		for i, t := range f.Types {
			types[i] = string(t)
		}
		conds = append(conds, fmt.Sprintf("type = ANY($%d)", next()))
		args = append(args, pq.Array(types))
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		conds = append(conds, fmt.Sprintf("status = ANY($%d)", next()))
		args = append(args, pq.Array(statuses))
	}
	if f.MinScore != nil {
		conds = append(conds, fmt.Sprintf("final_score >= $%d", next()))
		args = append(args, *f.MinScore)
	}
	if f.Since != nil {
		conds = append(conds, fmt.Sprintf("created_at >= $%d", next()))
		args = append(args, *f.Since)
	}

	return strings.Join(conds, " AND "), args
}
