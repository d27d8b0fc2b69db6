package postgres

import (
	"context"
	"time"

	"cscx-api/internal/alert/repository"
	"cscx-api/internal/model"
	postgresPkg "cscx-api/pkg/postgre"

	"github.com/aarondl/null/v8"
	"github.com/friendsofgo/errors"
)

const suppressionColumns = `id, user_id, suppression_type, customer_id, alert_type, threshold,
	pattern, reason, expires_at, created_at`

func (r *implRepository) CreateSuppression(ctx context.Context, sc model.Scope, rule model.AlertSuppression) (model.AlertSuppression, error) {
	if rule.ID == "" {
		rule.ID = postgresPkg.NewUUID()
	}
	rule.UserID = sc.UserID
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO alert_suppressions (` + suppressionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	if _, err := r.db.ExecContext(ctx, query,
		rule.ID, rule.UserID, string(rule.Type),
		null.StringFromPtr(rule.CustomerID), alertTypePtrToNull(rule.AlertType),
		null.Float64FromPtr(rule.Threshold), null.StringFromPtr(rule.Pattern),
		rule.Reason, null.TimeFromPtr(rule.ExpiresAt), rule.CreatedAt,
	); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.CreateSuppression.Exec: %v", err)
		return model.AlertSuppression{}, errors.Wrap(err, "insert alert_suppression")
	}

	return rule, nil
}

func (r *implRepository) ListSuppressions(ctx context.Context, sc model.Scope) ([]model.AlertSuppression, error) {
	query := `SELECT ` + suppressionColumns + ` FROM alert_suppressions
		WHERE user_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, sc.UserID)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.ListSuppressions.Query: %v", err)
		return nil, errors.Wrap(err, "select alert_suppressions")
	}
	defer rows.Close()

	rules := make([]model.AlertSuppression, 0)
	for rows.Next() {
		var (
			rule       model.AlertSuppression
			ruleType   string
			customerID null.String
			alertType  null.String
			threshold  null.Float64
			pattern    null.String
			expiresAt  null.Time
		)
		if err := rows.Scan(
			&rule.ID, &rule.UserID, &ruleType, &customerID, &alertType,
			&threshold, &pattern, &rule.Reason, &expiresAt, &rule.CreatedAt,
		); err != nil {
			r.l.Errorf(ctx, "internal.alert.repository.postgres.ListSuppressions.Scan: %v", err)
			return nil, errors.Wrap(err, "scan alert_suppression")
		}

		rule.Type = model.SuppressionType(ruleType)
		rule.CustomerID = customerID.Ptr()
		if alertType.Valid {
			t := model.AlertType(alertType.String)
			rule.AlertType = &t
		}
		rule.Threshold = threshold.Ptr()
		rule.Pattern = pattern.Ptr()
		rule.ExpiresAt = expiresAt.Ptr()
		rules = append(rules, rule)
	}

	return rules, errors.Wrap(rows.Err(), "iterate alert_suppressions")
}

func (r *implRepository) DeleteSuppression(ctx context.Context, sc model.Scope, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM alert_suppressions WHERE id = $1 AND user_id = $2`, id, sc.UserID)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.DeleteSuppression.Exec: %v", err)
		return errors.Wrap(err, "delete alert_suppression")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.DeleteSuppression.RowsAffected: %v", err)
		return errors.Wrap(err, "delete alert_suppression")
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func alertTypePtrToNull(t *model.AlertType) null.String {
	if t == nil {
		return null.String{}
	}
	return null.StringFrom(string(*t))
}
