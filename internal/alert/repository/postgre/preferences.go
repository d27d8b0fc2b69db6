package postgres

import (
	"context"
	"database/sql"
	"time"

	"cscx-api/internal/alert/repository"
	"cscx-api/internal/model"

	"github.com/aarondl/null/v8"
	"github.com/friendsofgo/errors"
)

const preferencesColumns = `user_id, immediate_threshold, digest_threshold, suppress_threshold,
	critical_threshold, quiet_hours_enabled, quiet_hours_start, quiet_hours_end, quiet_hours_tz,
	filter_minor_health_changes, minor_health_change_points, seasonal_suppression,
	save_play_suppression_hints, created_at, updated_at`

func (r *implRepository) GetPreferences(ctx context.Context, sc model.Scope) (model.AlertPreferences, error) {
	query := `SELECT ` + preferencesColumns + ` FROM alert_preferences WHERE user_id = $1`

	var (
		prefs     model.AlertPreferences
		tz        null.String
		createdAt null.Time
		updatedAt null.Time
	)
	err := r.db.QueryRowContext(ctx, query, sc.UserID).Scan(
		&prefs.UserID, &prefs.ImmediateThreshold, &prefs.DigestThreshold, &prefs.SuppressThreshold,
		&prefs.CriticalThreshold, &prefs.QuietHours.Enabled, &prefs.QuietHours.StartHour,
		&prefs.QuietHours.EndHour, &tz,
		&prefs.FilterMinorHealthChanges, &prefs.MinorHealthChangePoints, &prefs.SeasonalSuppression,
		&prefs.SavePlaySuppressionHints, &createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.AlertPreferences{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.alert.repository.postgres.GetPreferences.Scan: %v", err)
		return model.AlertPreferences{}, errors.Wrap(err, "select alert_preferences")
	}

	prefs.QuietHours.Timezone = tz.String
	prefs.CreatedAt = createdAt.Time
	prefs.UpdatedAt = updatedAt.Time
	return prefs, nil
}

func (r *implRepository) UpsertPreferences(ctx context.Context, sc model.Scope, prefs model.AlertPreferences) (model.AlertPreferences, error) {
	now := time.Now().UTC()
	prefs.UserID = sc.UserID
	prefs.UpdatedAt = now
	if prefs.CreatedAt.IsZero() {
		prefs.CreatedAt = now
	}

	query := `INSERT INTO alert_preferences (` + preferencesColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (user_id) DO UPDATE SET
			immediate_threshold = EXCLUDED.immediate_threshold,
			digest_threshold = EXCLUDED.digest_threshold,
			suppress_threshold = EXCLUDED.suppress_threshold,
			critical_threshold = EXCLUDED.critical_threshold,
			quiet_hours_enabled = EXCLUDED.quiet_hours_enabled,
			quiet_hours_start = EXCLUDED.quiet_hours_start,
			quiet_hours_end = EXCLUDED.quiet_hours_end,
			quiet_hours_tz = EXCLUDED.quiet_hours_tz,
			filter_minor_health_changes = EXCLUDED.filter_minor_health_changes,
			minor_health_change_points = EXCLUDED.minor_health_change_points,
			seasonal_suppression = EXCLUDED.seasonal_suppression,
			save_play_suppression_hints = EXCLUDED.save_play_suppression_hints,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, query,
		prefs.UserID, prefs.ImmediateThreshold, prefs.DigestThreshold, prefs.SuppressThreshold,
		prefs.CriticalThreshold, prefs.QuietHours.Enabled, prefs.QuietHours.StartHour,
		prefs.QuietHours.EndHour, null.NewString(prefs.QuietHours.Timezone, prefs.QuietHours.Timezone != ""),
		prefs.FilterMinorHealthChanges, prefs.MinorHealthChangePoints, prefs.SeasonalSuppression,
		prefs.SavePlaySuppressionHints, prefs.CreatedAt, prefs.UpdatedAt,
	); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.UpsertPreferences.Exec: %v", err)
		return model.AlertPreferences{}, errors.Wrap(err, "upsert alert_preferences")
	}

	return prefs, nil
}
