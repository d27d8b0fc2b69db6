package bundler

import (
	"context"
	"sort"
	"time"

	"cscx-api/internal/model"
	pkgLog "cscx-api/pkg/log"

	"github.com/google/uuid"
)

// Window is how far back from now a scored alert stays bundle-relevant.
const Window = 24 * time.Hour

// Summarizer is the text-generation collaborator. A nil Summarizer is a
// supported mode: the rule-based generator handles everything.
type Summarizer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Bundler groups scored alerts per customer within a rolling time
// window and attaches a title/summary/action. Bundling is idempotent
// for a fixed alert set and clock; only AI-generated copy may vary
// between runs.
type Bundler struct {
	l          pkgLog.Logger
	summarizer Summarizer
	now        func() time.Time
}

// Option configures a Bundler.
type Option func(*Bundler)

// WithSummarizer attaches the text-generation collaborator.
func WithSummarizer(s Summarizer) Option {
	return func(b *Bundler) { b.summarizer = s }
}

// WithClock overrides the time source. Tests pin it for determinism.
func WithClock(now func() time.Time) Option {
	return func(b *Bundler) { b.now = now }
}

// New creates a Bundler.
func New(l pkgLog.Logger, opts ...Option) *Bundler {
	b := &Bundler{l: l, now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BundleAlerts groups the given alerts into per-customer bundles sorted
// by bundle score descending. Customers whose alerts all fall outside
// the window produce no bundle at all. Summary generation never fails
// the call; any summarizer error falls back to the rule-based
// generator.
func (b *Bundler) BundleAlerts(ctx context.Context, alerts []model.ScoredAlert) []model.AlertBundle {
	now := b.now()
	cutoff := now.Add(-Window)

	groups := make(map[string][]model.ScoredAlert)
	var order []string
	for _, a := range alerts {
		if a.Score.Delivery == model.DeliverySuppress {
			continue
		}
		if a.CreatedAt.Before(cutoff) {
			continue
		}
		if _, seen := groups[a.CustomerID]; !seen {
			order = append(order, a.CustomerID)
		}
		groups[a.CustomerID] = append(groups[a.CustomerID], a)
	}

	bundles := make([]model.AlertBundle, 0, len(groups))
	for _, customerID := range order {
		members := groups[customerID]

		sort.SliceStable(members, func(i, j int) bool {
			return members[i].Score.FinalScore > members[j].Score.FinalScore
		})

		bundleScore := members[0].Score.FinalScore
		for _, m := range members[1:] {
			if m.Score.FinalScore > bundleScore {
				bundleScore = m.Score.FinalScore
			}
		}

		summary := b.generateSummary(ctx, members)

		bundles = append(bundles, model.AlertBundle{
			BundleID:          uuid.New().String(),
			CustomerID:        customerID,
			CustomerName:      customerName(members),
			Alerts:            members,
			BundleScore:       bundleScore,
			Title:             summary.Title,
			Summary:           summary.Summary,
			RecommendedAction: summary.RecommendedAction,
			AlertCount:        len(members),
			CreatedAt:         now,
			Status:            bundleStatus(members),
		})
	}

	sort.SliceStable(bundles, func(i, j int) bool {
		return bundles[i].BundleScore > bundles[j].BundleScore
	})

	return bundles
}

func customerName(members []model.ScoredAlert) string {
	for _, m := range members {
		if m.CustomerName != nil && *m.CustomerName != "" {
			return *m.CustomerName
		}
	}
	return members[0].CustomerID
}

// bundleStatus reflects the members: a bundle reads as read only once
// every member has been read or actioned.
func bundleStatus(members []model.ScoredAlert) model.AlertStatus {
	for _, m := range members {
		if m.Status == model.AlertStatusUnread || m.Status == model.AlertStatusSnoozed {
			return model.AlertStatusUnread
		}
	}
	return model.AlertStatusRead
}
