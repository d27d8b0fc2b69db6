package postgres

import (
	"context"
	"fmt"
	"time"

	"cscx-api/internal/alert/repository"
	"cscx-api/internal/model"
	postgresPkg "cscx-api/pkg/postgre"

	"github.com/aarondl/null/v8"
	"github.com/friendsofgo/errors"
)

const feedbackColumns = `id, alert_id, user_id, alert_type, rating, notes, created_at`

func (r *implRepository) CreateFeedback(ctx context.Context, sc model.Scope, fb model.AlertFeedback) (model.AlertFeedback, error) {
	if fb.ID == "" {
		fb.ID = postgresPkg.NewUUID()
	}
	fb.UserID = sc.UserID
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO alert_feedback (` + feedbackColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if _, err := r.db.ExecContext(ctx, query,
		fb.ID, fb.AlertID, fb.UserID, string(fb.AlertType), string(fb.Rating),
		null.StringFromPtr(fb.Notes), fb.CreatedAt,
	); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.CreateFeedback.Exec: %v", err)
		return model.AlertFeedback{}, errors.Wrap(err, "insert alert_feedback")
	}

	return fb, nil
}

func (r *implRepository) ListFeedback(ctx context.Context, sc model.Scope, opts repository.ListFeedbackOptions) ([]model.AlertFeedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM alert_feedback WHERE user_id = $1`
	args := []any{sc.UserID}

	if opts.AlertType != nil {
		args = append(args, string(*opts.AlertType))
		query = fmt.Sprintf("%s AND alert_type = $%d", query, len(args))
	}
	if opts.Since != nil {
		args = append(args, *opts.Since)
		query = fmt.Sprintf("%s AND created_at >= $%d", query, len(args))
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.ListFeedback.Query: %v", err)
		return nil, errors.Wrap(err, "select alert_feedback")
	}
	defer rows.Close()

	list := make([]model.AlertFeedback, 0)
	for rows.Next() {
		var (
			fb        model.AlertFeedback
			alertType string
			rating    string
			notes     null.String
		)
		if err := rows.Scan(&fb.ID, &fb.AlertID, &fb.UserID, &alertType, &rating, &notes, &fb.CreatedAt); err != nil {
			r.l.Errorf(ctx, "internal.alert.repository.postgres.ListFeedback.Scan: %v", err)
			return nil, errors.Wrap(err, "scan alert_feedback")
		}
		fb.AlertType = model.AlertType(alertType)
		fb.Rating = model.FeedbackRating(rating)
		fb.Notes = notes.Ptr()
		list = append(list, fb)
	}

	return list, errors.Wrap(rows.Err(), "iterate alert_feedback")
}
