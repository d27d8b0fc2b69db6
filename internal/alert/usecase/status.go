package usecase

import (
	"context"

	"cscx-api/internal/alert"
	"cscx-api/internal/alert/repository"
	"cscx-api/internal/model"
)

func (uc *usecase) MarkRead(ctx context.Context, sc model.Scope, id string) (model.ScoredAlert, error) {
	return uc.transition(ctx, sc, id, func(a *model.ScoredAlert) error {
		if a.Status != model.AlertStatusUnread {
			return alert.ErrInvalidStatus
		}
		now := uc.now()
		a.Status = model.AlertStatusRead
		a.ReadAt = &now
		return nil
	})
}

func (uc *usecase) MarkActioned(ctx context.Context, sc model.Scope, id string) (model.ScoredAlert, error) {
	return uc.transition(ctx, sc, id, func(a *model.ScoredAlert) error {
		if a.Status != model.AlertStatusUnread && a.Status != model.AlertStatusRead {
			return alert.ErrInvalidStatus
		}
		now := uc.now()
		a.Status = model.AlertStatusActioned
		a.ActionedAt = &now
		if a.ReadAt == nil {
			a.ReadAt = &now
		}
		return nil
	})
}

func (uc *usecase) Dismiss(ctx context.Context, sc model.Scope, id string) (model.ScoredAlert, error) {
	return uc.transition(ctx, sc, id, func(a *model.ScoredAlert) error {
		if a.Status != model.AlertStatusUnread && a.Status != model.AlertStatusRead {
			return alert.ErrInvalidStatus
		}
		a.Status = model.AlertStatusDismissed
		return nil
	})
}

func (uc *usecase) Snooze(ctx context.Context, sc model.Scope, ip alert.SnoozeInput) (model.ScoredAlert, error) {
	if !ip.Until.After(uc.now()) {
		return model.ScoredAlert{}, alert.ErrInvalidSnoozeUntil
	}
	return uc.transition(ctx, sc, ip.ID, func(a *model.ScoredAlert) error {
		if a.Status != model.AlertStatusUnread && a.Status != model.AlertStatusRead {
			return alert.ErrInvalidStatus
		}
		until := ip.Until
		a.Status = model.AlertStatusSnoozed
		a.SnoozeUntil = &until
		return nil
	})
}

// MarkBundleRead marks every still-unread member of a bundle as read.
// Bundles are computed on demand and never persisted, so the operation
// takes the member alert ids. Members already past unread are skipped
// rather than failed.
func (uc *usecase) MarkBundleRead(ctx context.Context, sc model.Scope, ip alert.MarkBundleReadInput) (alert.MarkBundleReadOutput, error) {
	if len(ip.AlertIDs) == 0 {
		return alert.MarkBundleReadOutput{}, alert.ErrFieldRequired
	}

	out := alert.MarkBundleReadOutput{}
	for _, id := range ip.AlertIDs {
		a, err := uc.repo.DetailAlert(ctx, sc, id)
		if err != nil {
			if err == repository.ErrNotFound {
				return alert.MarkBundleReadOutput{}, alert.ErrAlertNotFound
			}
			uc.l.Errorf(ctx, "internal.alert.usecase.MarkBundleRead.DetailAlert: %v", err)
			return alert.MarkBundleReadOutput{}, err
		}
		if a.Status != model.AlertStatusUnread {
			continue
		}
		now := uc.now()
		a.Status = model.AlertStatusRead
		a.ReadAt = &now
		if _, err := uc.repo.UpdateAlert(ctx, sc, repository.UpdateAlertOptions{Alert: a}); err != nil {
			uc.l.Errorf(ctx, "internal.alert.usecase.MarkBundleRead.UpdateAlert: %v", err)
			return alert.MarkBundleReadOutput{}, err
		}
		out.Updated++
	}
	return out, nil
}

// Forget deletes alerts outright. An empty id list wipes the user's
// whole alert history.
func (uc *usecase) Forget(ctx context.Context, sc model.Scope, ip alert.ForgetInput) (int64, error) {
	deleted, err := uc.repo.DeleteAlerts(ctx, sc, ip.AlertIDs)
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.Forget.DeleteAlerts: %v", err)
		return 0, err
	}
	return deleted, nil
}

// transition loads an alert, applies mutate and persists the result.
func (uc *usecase) transition(ctx context.Context, sc model.Scope, id string, mutate func(*model.ScoredAlert) error) (model.ScoredAlert, error) {
	a, err := uc.repo.DetailAlert(ctx, sc, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return model.ScoredAlert{}, alert.ErrAlertNotFound
		}
		uc.l.Errorf(ctx, "internal.alert.usecase.transition.DetailAlert: %v", err)
		return model.ScoredAlert{}, err
	}

	if err := mutate(&a); err != nil {
		return model.ScoredAlert{}, err
	}

	updated, err := uc.repo.UpdateAlert(ctx, sc, repository.UpdateAlertOptions{Alert: a})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.transition.UpdateAlert: %v", err)
		return model.ScoredAlert{}, err
	}
	return updated, nil
}
