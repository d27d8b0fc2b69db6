package usecase

import (
	"context"

	"cscx-api/internal/alert"
	"cscx-api/internal/alert/repository"
	"cscx-api/internal/model"
	pkgPostgre "cscx-api/pkg/postgre"
)

func (uc *usecase) CreateSuppression(ctx context.Context, sc model.Scope, ip alert.CreateSuppressionInput) (model.AlertSuppression, error) {
	if !ip.Type.IsValid() {
		return model.AlertSuppression{}, alert.ErrInvalidSuppression
	}

	// Each scope requires its own target field.
	switch ip.Type {
	case model.SuppressionCustomer:
		if ip.CustomerID == nil || *ip.CustomerID == "" {
			return model.AlertSuppression{}, alert.ErrInvalidSuppression
		}
	case model.SuppressionAlertType:
		if ip.AlertType == nil || !ip.AlertType.IsValid() {
			return model.AlertSuppression{}, alert.ErrInvalidSuppression
		}
	case model.SuppressionThreshold:
		if ip.Threshold == nil || *ip.Threshold < 0 || *ip.Threshold > 100 {
			return model.AlertSuppression{}, alert.ErrInvalidSuppression
		}
	case model.SuppressionPattern:
		if ip.Pattern == nil || *ip.Pattern == "" {
			return model.AlertSuppression{}, alert.ErrInvalidSuppression
		}
	}

	rule, err := uc.repo.CreateSuppression(ctx, sc, model.AlertSuppression{
		ID:         pkgPostgre.NewUUID(),
		UserID:     sc.UserID,
		Type:       ip.Type,
		CustomerID: ip.CustomerID,
		AlertType:  ip.AlertType,
		Threshold:  ip.Threshold,
		Pattern:    ip.Pattern,
		Reason:     ip.Reason,
		ExpiresAt:  ip.ExpiresAt,
		CreatedAt:  uc.now(),
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.CreateSuppression.CreateSuppression: %v", err)
		return model.AlertSuppression{}, err
	}
	return rule, nil
}

func (uc *usecase) ListSuppressions(ctx context.Context, sc model.Scope) ([]model.AlertSuppression, error) {
	rules, err := uc.repo.ListSuppressions(ctx, sc)
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.ListSuppressions.ListSuppressions: %v", err)
		return nil, err
	}
	return rules, nil
}

func (uc *usecase) DeleteSuppression(ctx context.Context, sc model.Scope, id string) error {
	err := uc.repo.DeleteSuppression(ctx, sc, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return alert.ErrSuppressionNotFound
		}
		uc.l.Errorf(ctx, "internal.alert.usecase.DeleteSuppression.DeleteSuppression: %v", err)
		return err
	}
	return nil
}
