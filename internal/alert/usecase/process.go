package usecase

import (
	"context"
	"time"

	"cscx-api/internal/alert"
	"cscx-api/internal/alert/repository"
	"cscx-api/internal/customer"
	"cscx-api/internal/model"
	pkgPostgre "cscx-api/pkg/postgre"
)

// recentSignalWindow bounds how far back the scorer looks for
// corroborating or contradicting alerts on the same customer.
const recentSignalWindow = 7 * 24 * time.Hour

func (uc *usecase) ProcessAlert(ctx context.Context, sc model.Scope, ip alert.ProcessAlertInput) (alert.ProcessAlertOutput, error) {
	scored, err := uc.processOne(ctx, sc, ip.Alert)
	if err != nil {
		return alert.ProcessAlertOutput{}, err
	}
	return alert.ProcessAlertOutput{Alert: scored}, nil
}

func (uc *usecase) ProcessAlerts(ctx context.Context, sc model.Scope, ip alert.ProcessAlertsInput) (alert.ProcessAlertsOutput, error) {
	out := alert.ProcessAlertsOutput{Alerts: make([]model.ScoredAlert, 0, len(ip.Alerts))}
	for _, raw := range ip.Alerts {
		scored, err := uc.processOne(ctx, sc, raw)
		if err != nil {
			return alert.ProcessAlertsOutput{}, err
		}
		out.Alerts = append(out.Alerts, scored)
	}
	return out, nil
}

func (uc *usecase) processOne(ctx context.Context, sc model.Scope, raw model.RawAlert) (model.ScoredAlert, error) {
	if !raw.Type.IsValid() {
		return model.ScoredAlert{}, alert.ErrInvalidAlertType
	}
	if raw.CustomerID == "" {
		return model.ScoredAlert{}, alert.ErrCustomerRequired
	}
	if raw.Title == "" {
		return model.ScoredAlert{}, alert.ErrFieldRequired
	}

	if raw.ID == "" {
		raw.ID = pkgPostgre.NewUUID()
	}
	if raw.CreatedAt.IsZero() {
		raw.CreatedAt = uc.now()
	}

	actx, err := uc.buildContext(ctx, sc, raw)
	if err != nil {
		return model.ScoredAlert{}, err
	}
	if raw.CustomerName == nil && actx.Customer.Name != "" {
		name := actx.Customer.Name
		raw.CustomerName = &name
	}

	prefs, err := uc.loadPreferences(ctx, sc)
	if err != nil {
		return model.ScoredAlert{}, err
	}

	rules, err := uc.repo.ListSuppressions(ctx, sc)
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.processOne.ListSuppressions: %v", err)
		return model.ScoredAlert{}, err
	}

	score := uc.scorer.ScoreAlert(raw, actx, prefs, rules)

	scored, err := uc.repo.CreateAlert(ctx, sc, repository.CreateAlertOptions{
		Alert: model.ScoredAlert{
			RawAlert: raw,
			UserID:   sc.UserID,
			Score:    score,
			Status:   model.AlertStatusUnread,
		},
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.processOne.CreateAlert: %v", err)
		return model.ScoredAlert{}, err
	}
	return scored, nil
}

// buildContext assembles everything the scorer needs for one alert. An
// unknown customer is not an error: detectors may fire before the CRM
// sync lands, so scoring proceeds against a neutral snapshot.
func (uc *usecase) buildContext(ctx context.Context, sc model.Scope, raw model.RawAlert) (model.AlertContext, error) {
	actx := model.AlertContext{}

	snapshot, err := uc.customers.Snapshot(ctx, raw.CustomerID)
	if err != nil {
		if err != customer.ErrNotFound {
			uc.l.Errorf(ctx, "internal.alert.usecase.buildContext.Snapshot: %v", err)
			return model.AlertContext{}, err
		}
		snapshot = model.CustomerSnapshot{ID: raw.CustomerID, Lifecycle: model.LifecycleActive}
		if raw.CustomerName != nil {
			snapshot.Name = *raw.CustomerName
		}
	}
	actx.Customer = snapshot

	since := uc.now().Add(-recentSignalWindow)
	recent, err := uc.repo.ListAlerts(ctx, sc, repository.ListAlertsOptions{
		Filter: repository.AlertFilter{CustomerID: raw.CustomerID, Since: &since},
		Limit:  50,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.buildContext.ListAlerts: %v", err)
		return model.AlertContext{}, err
	}
	actx.RecentAlerts = recent

	playbooks, err := uc.customers.ActivePlaybooks(ctx, raw.CustomerID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.buildContext.ActivePlaybooks: %v", err)
		return model.AlertContext{}, err
	}
	actx.ActivePlaybooks = playbooks

	savePlay, err := uc.customers.SavePlayActive(ctx, raw.CustomerID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.buildContext.SavePlayActive: %v", err)
		return model.AlertContext{}, err
	}
	actx.SavePlayActive = savePlay

	patterns, err := uc.customers.SeasonalPatterns(ctx, raw.CustomerID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.buildContext.SeasonalPatterns: %v", err)
		return model.AlertContext{}, err
	}
	actx.SeasonalPatterns = patterns

	return actx, nil
}
