package usecase

import (
	"context"

	"cscx-api/internal/alert"
	"cscx-api/internal/alert/repository"
	"cscx-api/internal/model"
)

func (uc *usecase) GetPreferences(ctx context.Context, sc model.Scope) (model.AlertPreferences, error) {
	return uc.loadPreferences(ctx, sc)
}

// UpdatePreferences applies a partial merge on top of the stored
// record; nil fields keep their current value. Threshold monotonicity
// is checked on the merged result, so a partial update can never leave
// the record inconsistent.
func (uc *usecase) UpdatePreferences(ctx context.Context, sc model.Scope, ip alert.UpdatePreferencesInput) (model.AlertPreferences, error) {
	prefs, err := uc.loadPreferences(ctx, sc)
	if err != nil {
		return model.AlertPreferences{}, err
	}

	if ip.ImmediateThreshold != nil {
		prefs.ImmediateThreshold = *ip.ImmediateThreshold
	}
	if ip.DigestThreshold != nil {
		prefs.DigestThreshold = *ip.DigestThreshold
	}
	if ip.SuppressThreshold != nil {
		prefs.SuppressThreshold = *ip.SuppressThreshold
	}
	if ip.CriticalThreshold != nil {
		prefs.CriticalThreshold = *ip.CriticalThreshold
	}
	if ip.QuietHours != nil {
		prefs.QuietHours = *ip.QuietHours
	}
	if ip.FilterMinorHealthChanges != nil {
		prefs.FilterMinorHealthChanges = *ip.FilterMinorHealthChanges
	}
	if ip.MinorHealthChangePoints != nil {
		prefs.MinorHealthChangePoints = *ip.MinorHealthChangePoints
	}
	if ip.SeasonalSuppression != nil {
		prefs.SeasonalSuppression = *ip.SeasonalSuppression
	}
	if ip.SavePlaySuppressionHints != nil {
		prefs.SavePlaySuppressionHints = *ip.SavePlaySuppressionHints
	}

	if !prefs.ThresholdsValid() {
		return model.AlertPreferences{}, alert.ErrInvalidThresholds
	}
	if q := prefs.QuietHours; q.StartHour < 0 || q.StartHour > 23 || q.EndHour < 0 || q.EndHour > 23 {
		return model.AlertPreferences{}, alert.ErrFieldRequired
	}

	prefs.UpdatedAt = uc.now()
	saved, err := uc.repo.UpsertPreferences(ctx, sc, prefs)
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.UpdatePreferences.UpsertPreferences: %v", err)
		return model.AlertPreferences{}, err
	}
	return saved, nil
}

// loadPreferences reads the user's record, falling back to defaults
// before the first explicit update. The defaults are not persisted on
// read.
func (uc *usecase) loadPreferences(ctx context.Context, sc model.Scope) (model.AlertPreferences, error) {
	prefs, err := uc.repo.GetPreferences(ctx, sc)
	if err != nil {
		if err == repository.ErrNotFound {
			return model.DefaultAlertPreferences(sc.UserID), nil
		}
		uc.l.Errorf(ctx, "internal.alert.usecase.loadPreferences.GetPreferences: %v", err)
		return model.AlertPreferences{}, err
	}
	return prefs, nil
}
