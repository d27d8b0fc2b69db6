package postgres

import (
	"encoding/json"

	"cscx-api/internal/model"

	"github.com/aarondl/null/v8"
	"github.com/friendsofgo/errors"
)

// alertRow mirrors the scored_alerts table. Score, metric change and
// metadata are stored as JSONB; final_score is denormalized for SQL
// filtering.
type alertRow struct {
	ID           string
	UserID       string
	CustomerID   string
	CustomerName null.String
	Type         string
	Title        string
	Description  string
	MetricChange null.JSON
	Metadata     null.JSON
	Source       null.String
	Score        []byte
	FinalScore   float64
	Status       string
	ReadAt       null.Time
	ActionedAt   null.Time
	SnoozeUntil  null.Time
	CreatedAt    null.Time
}

func (row alertRow) toModel() (model.ScoredAlert, error) {
	a := model.ScoredAlert{
		RawAlert: model.RawAlert{
			ID:          row.ID,
			Type:        model.AlertType(row.Type),
			CustomerID:  row.CustomerID,
			Title:       row.Title,
			Description: row.Description,
			CreatedAt:   row.CreatedAt.Time,
		},
		UserID: row.UserID,
		Status: model.AlertStatus(row.Status),
	}

	if row.CustomerName.Valid {
		a.CustomerName = &row.CustomerName.String
	}
	if row.Source.Valid {
		a.Source = &row.Source.String
	}
	if row.ReadAt.Valid {
		a.ReadAt = &row.ReadAt.Time
	}
	if row.ActionedAt.Valid {
		a.ActionedAt = &row.ActionedAt.Time
	}
	if row.SnoozeUntil.Valid {
		a.SnoozeUntil = &row.SnoozeUntil.Time
	}

	if err := json.Unmarshal(row.Score, &a.Score); err != nil {
		return model.ScoredAlert{}, errors.Wrap(err, "unmarshal score")
	}
	if row.MetricChange.Valid {
		var mc model.MetricChange
		if err := json.Unmarshal(row.MetricChange.JSON, &mc); err != nil {
			return model.ScoredAlert{}, errors.Wrap(err, "unmarshal metric_change")
		}
		a.MetricChange = &mc
	}
	if row.Metadata.Valid {
		if err := json.Unmarshal(row.Metadata.JSON, &a.Metadata); err != nil {
			return model.ScoredAlert{}, errors.Wrap(err, "unmarshal metadata")
		}
	}

	return a, nil
}

func newAlertRow(a model.ScoredAlert) (alertRow, error) {
	row := alertRow{
		ID:          a.ID,
		UserID:      a.UserID,
		CustomerID:  a.CustomerID,
		Type:        string(a.Type),
		Title:       a.Title,
		Description: a.Description,
		FinalScore:  a.Score.FinalScore,
		Status:      string(a.Status),
		CreatedAt:   null.TimeFrom(a.CreatedAt),
	}

	if a.CustomerName != nil {
		row.CustomerName = null.StringFrom(*a.CustomerName)
	}
	if a.Source != nil {
		row.Source = null.StringFrom(*a.Source)
	}
	if a.ReadAt != nil {
		row.ReadAt = null.TimeFrom(*a.ReadAt)
	}
	if a.ActionedAt != nil {
		row.ActionedAt = null.TimeFrom(*a.ActionedAt)
	}
	if a.SnoozeUntil != nil {
		row.SnoozeUntil = null.TimeFrom(*a.SnoozeUntil)
	}

	score, err := json.Marshal(a.Score)
	if err != nil {
		return alertRow{}, errors.Wrap(err, "marshal score")
	}
	row.Score = score

	if a.MetricChange != nil {
		mc, err := json.Marshal(a.MetricChange)
		if err != nil {
			return alertRow{}, errors.Wrap(err, "marshal metric_change")
		}
		row.MetricChange = null.JSONFrom(mc)
	}
	if len(a.Metadata) > 0 {
		md, err := json.Marshal(a.Metadata)
		if err != nil {
			return alertRow{}, errors.Wrap(err, "marshal metadata")
		}
		row.Metadata = null.JSONFrom(md)
	}

	return row, nil
}
