package usecase

import (
	"context"

	"cscx-api/internal/alert"
	"cscx-api/internal/alert/repository"
	"cscx-api/internal/model"
	"cscx-api/pkg/paginator"
)

func (uc *usecase) Get(ctx context.Context, sc model.Scope, ip alert.GetInput) (alert.GetOutput, error) {
	for _, t := range ip.Filter.Types {
		if !t.IsValid() {
			return alert.GetOutput{}, alert.ErrInvalidAlertType
		}
	}
	for _, s := range ip.Filter.Statuses {
		if !s.IsValid() {
			return alert.GetOutput{}, alert.ErrInvalidStatus
		}
	}

	if err := uc.resurfaceSnoozed(ctx, sc); err != nil {
		return alert.GetOutput{}, err
	}

	filter := repository.AlertFilter{
		CustomerID: ip.Filter.CustomerID,
		Types:      ip.Filter.Types,
		Statuses:   ip.Filter.Statuses,
		MinScore:   ip.Filter.MinScore,
	}

	// Counts cover every matched alert, not just the requested page.
	matched, err := uc.repo.ListAlerts(ctx, sc, repository.ListAlertsOptions{Filter: filter})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.Get.ListAlerts: %v", err)
		return alert.GetOutput{}, err
	}
	counts := deliveryCounts(matched)

	format := ip.Format
	if format == "" {
		format = alert.FormatBundled
	}

	switch format {
	case alert.FormatIndividual:
		alerts, pag, err := uc.repo.GetAlerts(ctx, sc, repository.GetAlertsOptions{
			Filter:        filter,
			PaginateQuery: ip.PaginateQuery,
		})
		if err != nil {
			uc.l.Errorf(ctx, "internal.alert.usecase.Get.GetAlerts: %v", err)
			return alert.GetOutput{}, err
		}
		return alert.GetOutput{
			Format:    alert.FormatIndividual,
			Alerts:    alerts,
			Counts:    counts,
			Paginator: pag,
		}, nil

	case alert.FormatBundled:
		bundles := uc.bundler.BundleAlerts(ctx, matched)
		page, pag := paginator.PaginateSlice(bundles, ip.PaginateQuery)
		return alert.GetOutput{
			Format:    alert.FormatBundled,
			Bundles:   page,
			Counts:    counts,
			Paginator: pag,
		}, nil
	}

	return alert.GetOutput{}, alert.ErrFieldRequired
}

// resurfaceSnoozed flips every snoozed alert whose snooze has lapsed
// back to unread so it shows up in the read that triggered the check.
func (uc *usecase) resurfaceSnoozed(ctx context.Context, sc model.Scope) error {
	snoozed, err := uc.repo.ListAlerts(ctx, sc, repository.ListAlertsOptions{
		Filter: repository.AlertFilter{Statuses: []model.AlertStatus{model.AlertStatusSnoozed}},
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.resurfaceSnoozed.ListAlerts: %v", err)
		return err
	}

	now := uc.now()
	for _, a := range snoozed {
		if !a.SnoozeExpired(now) {
			continue
		}
		a.Status = model.AlertStatusUnread
		a.SnoozeUntil = nil
		if _, err := uc.repo.UpdateAlert(ctx, sc, repository.UpdateAlertOptions{Alert: a}); err != nil {
			uc.l.Errorf(ctx, "internal.alert.usecase.resurfaceSnoozed.UpdateAlert: %v", err)
			return err
		}
	}
	return nil
}

func deliveryCounts(alerts []model.ScoredAlert) alert.Counts {
	counts := alert.Counts{Total: len(alerts)}
	for _, a := range alerts {
		switch a.Score.Delivery {
		case model.DeliveryImmediate:
			counts.Immediate++
		case model.DeliveryDigest:
			counts.Digest++
		case model.DeliverySuppress:
			counts.Suppressed++
		}
	}
	return counts
}
