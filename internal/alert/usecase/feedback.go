package usecase

import (
	"context"

	"cscx-api/internal/alert"
	"cscx-api/internal/alert/repository"
	"cscx-api/internal/model"
	pkgPostgre "cscx-api/pkg/postgre"
)

func (uc *usecase) SubmitFeedback(ctx context.Context, sc model.Scope, ip alert.SubmitFeedbackInput) (model.AlertFeedback, error) {
	if !ip.Rating.IsValid() {
		return model.AlertFeedback{}, alert.ErrInvalidRating
	}

	a, err := uc.repo.DetailAlert(ctx, sc, ip.AlertID)
	if err != nil {
		if err == repository.ErrNotFound {
			return model.AlertFeedback{}, alert.ErrAlertNotFound
		}
		uc.l.Errorf(ctx, "internal.alert.usecase.SubmitFeedback.DetailAlert: %v", err)
		return model.AlertFeedback{}, err
	}

	fb, err := uc.repo.CreateFeedback(ctx, sc, model.AlertFeedback{
		ID:        pkgPostgre.NewUUID(),
		AlertID:   a.ID,
		UserID:    sc.UserID,
		AlertType: a.Type,
		Rating:    ip.Rating,
		Notes:     ip.Notes,
		CreatedAt: uc.now(),
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.SubmitFeedback.CreateFeedback: %v", err)
		return model.AlertFeedback{}, err
	}
	return fb, nil
}

// FeedbackStats aggregates the user's feedback history. The per-type
// helpful ratio is the input for tuning detector thresholds.
func (uc *usecase) FeedbackStats(ctx context.Context, sc model.Scope) (alert.FeedbackStatsOutput, error) {
	entries, err := uc.repo.ListFeedback(ctx, sc, repository.ListFeedbackOptions{})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.FeedbackStats.ListFeedback: %v", err)
		return alert.FeedbackStatsOutput{}, err
	}

	out := alert.FeedbackStatsOutput{
		Total:    len(entries),
		ByRating: make(map[model.FeedbackRating]int),
		ByType:   make(map[model.AlertType]alert.TypeFeedbackStats),
	}
	for _, fb := range entries {
		out.ByRating[fb.Rating]++

		stats := out.ByType[fb.AlertType]
		stats.Total++
		if fb.Rating == model.FeedbackHelpful {
			stats.Helpful++
		}
		out.ByType[fb.AlertType] = stats
	}
	for t, stats := range out.ByType {
		if stats.Total > 0 {
			stats.HelpfulRatio = float64(stats.Helpful) / float64(stats.Total)
		}
		out.ByType[t] = stats
	}
	return out, nil
}
