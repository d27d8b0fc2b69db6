package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"cscx-api/internal/alert/repository"
	"cscx-api/internal/model"
	"cscx-api/pkg/paginator"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(ctx context.Context, arg ...any)                    {}
func (noopLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (noopLogger) Info(ctx context.Context, arg ...any)                     {}
func (noopLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (noopLogger) Warn(ctx context.Context, arg ...any)                     {}
func (noopLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (noopLogger) Error(ctx context.Context, arg ...any)                    {}
func (noopLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (noopLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (noopLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (noopLogger) Panic(ctx context.Context, arg ...any)                    {}
func (noopLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (noopLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (noopLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, repository.Repository) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return db, mock, New(noopLogger{}, db)
}

func alertRowColumns() []string {
	return []string{
		"id", "user_id", "customer_id", "customer_name", "type", "title", "description",
		"metric_change", "metadata", "source", "score", "final_score", "status",
		"read_at", "actioned_at", "snooze_until", "created_at",
	}
}

var pgNow = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

func pgScope() model.Scope {
	return model.Scope{UserID: "user-1", Username: "user-1", Role: model.RoleCSM}
}

func TestDetailAlertSuccess(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows(alertRowColumns()).AddRow(
		"a1", "user-1", "cust-a", "Acme Corp", "usage_drop", "Usage dropped", "weekly logins down",
		[]byte(`{"metric":"weekly_logins","before":120,"after":60,"change_percent":-50}`),
		[]byte(`{"region":"emea"}`), "usage-detector",
		[]byte(`{"final_score":55.5,"delivery_recommendation":"digest","filtered":false}`),
		55.5, "unread",
		nil, nil, nil, pgNow,
	)

	mock.ExpectQuery(`SELECT (.+) FROM scored_alerts WHERE id = \$1 AND user_id = \$2`).
		WithArgs("a1", "user-1").
		WillReturnRows(rows)

	a, err := repo.DetailAlert(context.Background(), pgScope(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", a.ID)
	assert.Equal(t, model.AlertTypeUsageDrop, a.Type)
	require.NotNil(t, a.CustomerName)
	assert.Equal(t, "Acme Corp", *a.CustomerName)
	require.NotNil(t, a.MetricChange)
	assert.Equal(t, -50.0, a.MetricChange.ChangePercent)
	assert.Equal(t, "emea", a.Metadata["region"])
	require.NotNil(t, a.Source)
	assert.Equal(t, "usage-detector", *a.Source)
	assert.Equal(t, 55.5, a.Score.FinalScore)
	assert.Equal(t, model.DeliveryDigest, a.Score.Delivery)
	assert.Equal(t, model.AlertStatusUnread, a.Status)
	assert.Equal(t, pgNow, a.CreatedAt)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDetailAlertNotFound(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM scored_alerts`).
		WithArgs("missing", "user-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.DetailAlert(context.Background(), pgScope(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAlert(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO scored_alerts`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	name := "Acme Corp"
	created, err := repo.CreateAlert(context.Background(), pgScope(), repository.CreateAlertOptions{
		Alert: model.ScoredAlert{
			RawAlert: model.RawAlert{
				ID:           "a1",
				Type:         model.AlertTypeUsageDrop,
				CustomerID:   "cust-a",
				CustomerName: &name,
				Title:        "Usage dropped",
				CreatedAt:    pgNow,
			},
			Score:  model.AlertScore{FinalScore: 55.5, Delivery: model.DeliveryDigest},
			Status: model.AlertStatusUnread,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", created.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAlertNotFound(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE scored_alerts`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.UpdateAlert(context.Background(), pgScope(), repository.UpdateAlertOptions{
		Alert: model.ScoredAlert{
			RawAlert: model.RawAlert{ID: "missing", Type: model.AlertTypeUsageDrop, CustomerID: "cust-a", Title: "t", CreatedAt: pgNow},
			Status:   model.AlertStatusRead,
		},
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAlertsBuildsFilter(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows(alertRowColumns()).AddRow(
		"a1", "user-1", "cust-a", nil, "usage_drop", "Usage dropped", "",
		nil, nil, nil, []byte(`{"final_score":55.5,"delivery_recommendation":"digest"}`), 55.5, "unread",
		nil, nil, nil, pgNow,
	)

	mock.ExpectQuery(`SELECT (.+) FROM scored_alerts WHERE user_id = \$1 AND customer_id = \$2 AND type = ANY\(\$3\) AND final_score >= \$4 ORDER BY created_at DESC, id DESC`).
		WillReturnRows(rows)

	minScore := 50.0
	alerts, err := repo.ListAlerts(context.Background(), pgScope(), repository.ListAlertsOptions{
		Filter: repository.AlertFilter{
			CustomerID: "cust-a",
			Types:      []model.AlertType{model.AlertTypeUsageDrop},
			MinScore:   &minScore,
		},
	})
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "a1", alerts[0].ID)
	assert.Nil(t, alerts[0].CustomerName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAlertsPaginates(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM scored_alerts WHERE user_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	rows := sqlmock.NewRows(alertRowColumns()).AddRow(
		"a1", "user-1", "cust-a", nil, "usage_drop", "Usage dropped", "",
		nil, nil, nil, []byte(`{"final_score":55.5}`), 55.5, "unread",
		nil, nil, nil, pgNow,
	)
	mock.ExpectQuery(`SELECT (.+) FROM scored_alerts WHERE user_id = \$1 ORDER BY created_at DESC, id DESC LIMIT 5 OFFSET 5`).
		WithArgs("user-1").
		WillReturnRows(rows)

	alerts, pag, err := repo.GetAlerts(context.Background(), pgScope(), repository.GetAlertsOptions{
		PaginateQuery: paginator.PaginateQuery{Page: 2, Limit: 5},
	})
	require.NoError(t, err)
	assert.Len(t, alerts, 1)
	assert.Equal(t, int64(12), pag.Total)
	assert.Equal(t, int64(1), pag.Count)
	assert.Equal(t, 2, pag.CurrentPage)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAlerts(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM scored_alerts WHERE user_id = \$1 AND id = ANY\(\$2\)`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	removed, err := repo.DeleteAlerts(context.Background(), pgScope(), []string{"a1", "a2"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAlertsAllForUser(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM scored_alerts WHERE user_id = \$1`).
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 7))

	removed, err := repo.DeleteAlerts(context.Background(), pgScope(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), removed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPreferences(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"user_id", "immediate_threshold", "digest_threshold", "suppress_threshold",
		"critical_threshold", "quiet_hours_enabled", "quiet_hours_start", "quiet_hours_end", "quiet_hours_tz",
		"filter_minor_health_changes", "minor_health_change_points", "seasonal_suppression",
		"save_play_suppression_hints", "created_at", "updated_at",
	}).AddRow(
		"user-1", 80.0, 40.0, 0.0,
		90.0, true, 22, 7, "Europe/Berlin",
		true, 5.0, true,
		true, pgNow, pgNow,
	)

	mock.ExpectQuery(`SELECT (.+) FROM alert_preferences WHERE user_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(rows)

	prefs, err := repo.GetPreferences(context.Background(), pgScope())
	require.NoError(t, err)
	assert.Equal(t, 80.0, prefs.ImmediateThreshold)
	assert.True(t, prefs.QuietHours.Enabled)
	assert.Equal(t, 22, prefs.QuietHours.StartHour)
	assert.Equal(t, "Europe/Berlin", prefs.QuietHours.Timezone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPreferencesNotFound(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM alert_preferences`).
		WithArgs("user-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetPreferences(context.Background(), pgScope())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertPreferences(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO alert_preferences`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	saved, err := repo.UpsertPreferences(context.Background(), pgScope(), model.DefaultAlertPreferences("user-1"))
	require.NoError(t, err)
	assert.Equal(t, "user-1", saved.UserID)
	assert.False(t, saved.UpdatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}
