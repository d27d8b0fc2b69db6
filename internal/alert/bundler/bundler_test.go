package bundler

import (
	"context"
	"errors"
	"testing"
	"time"

	"cscx-api/internal/model"

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

// mockSummarizer lets each test script the collaborator.
type mockSummarizer struct {
	completeFunc func(ctx context.Context, system, user string) (string, error)
	calls        int
}

func (m *mockSummarizer) Complete(ctx context.Context, system, user string) (string, error) {
	m.calls++
	return m.completeFunc(ctx, system, user)
}

var bundleNow = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

func newTestBundler(opts ...Option) *Bundler {
	opts = append([]Option{WithClock(func() time.Time { return bundleNow })}, opts...)
	return New(noopLogger{}, opts...)
}

func scoredAlert(id, customerID string, typ model.AlertType, final float64, age time.Duration) model.ScoredAlert {
	name := "Customer " + customerID
	return model.ScoredAlert{
		RawAlert: model.RawAlert{
			ID:           id,
			Type:         typ,
			CustomerID:   customerID,
			CustomerName: &name,
			Title:        string(typ) + " at " + customerID,
			Description:  "detected by test fixture",
			CreatedAt:    bundleNow.Add(-age),
		},
		UserID: "user-1",
		Score:  model.AlertScore{FinalScore: final, Delivery: model.DeliveryDigest},
		Status: model.AlertStatusUnread,
	}
}

func TestBundleAlertsGroupsByCustomer(t *testing.T) {
	b := newTestBundler()

	alerts := []model.ScoredAlert{
		scoredAlert("a1", "cust-a", model.AlertTypeUsageDrop, 55, time.Hour),
		scoredAlert("a2", "cust-b", model.AlertTypeHealthScoreDrop, 72, time.Hour),
		scoredAlert("a3", "cust-a", model.AlertTypeEngagementDrop, 61, 2*time.Hour),
	}

	bundles := b.BundleAlerts(context.Background(), alerts)
	require.Len(t, bundles, 2)

	// Sorted by bundle score descending.
	assert.Equal(t, "cust-b", bundles[0].CustomerID)
	assert.Equal(t, 72.0, bundles[0].BundleScore)
	assert.Equal(t, "cust-a", bundles[1].CustomerID)
	assert.Equal(t, 61.0, bundles[1].BundleScore)
	assert.Equal(t, 2, bundles[1].AlertCount)

	// Members ordered by score descending inside the bundle.
	require.Len(t, bundles[1].Alerts, 2)
	assert.Equal(t, "a3", bundles[1].Alerts[0].ID)
	assert.Equal(t, "a1", bundles[1].Alerts[1].ID)
}

func TestBundleAlertsWindowExcludesOldAlerts(t *testing.T) {
	b := newTestBundler()

	alerts := []model.ScoredAlert{
		scoredAlert("fresh", "cust-a", model.AlertTypeUsageDrop, 55, 23*time.Hour),
		scoredAlert("stale", "cust-a", model.AlertTypeUsageDrop, 90, 25*time.Hour),
		scoredAlert("ancient", "cust-b", model.AlertTypeHealthScoreCritical, 95, 48*time.Hour),
	}

	bundles := b.BundleAlerts(context.Background(), alerts)
	require.Len(t, bundles, 1)
	assert.Equal(t, "cust-a", bundles[0].CustomerID)
	assert.Equal(t, 1, bundles[0].AlertCount)
	assert.Equal(t, "fresh", bundles[0].Alerts[0].ID)
	// The stale high score must not leak into the bundle score.
	assert.Equal(t, 55.0, bundles[0].BundleScore)
}

func TestBundleAlertsSkipsSuppressed(t *testing.T) {
	b := newTestBundler()

	suppressed := scoredAlert("s1", "cust-a", model.AlertTypeUsageDrop, 20, time.Hour)
	suppressed.Score.Delivery = model.DeliverySuppress

	bundles := b.BundleAlerts(context.Background(), []model.ScoredAlert{suppressed})
	assert.Empty(t, bundles)
}

func TestBundleAlertsIdempotent(t *testing.T) {
	b := newTestBundler()

	alerts := []model.ScoredAlert{
		scoredAlert("a1", "cust-a", model.AlertTypeUsageDrop, 55, time.Hour),
		scoredAlert("a2", "cust-a", model.AlertTypeEngagementDrop, 61, 2*time.Hour),
	}

	first := b.BundleAlerts(context.Background(), alerts)
	second := b.BundleAlerts(context.Background(), alerts)

	require.Len(t, first, 1)
	require.Len(t, second, 1)

	// Everything except the generated id must be stable across runs.
	first[0].BundleID = ""
	second[0].BundleID = ""
	assert.Equal(t, first, second)
}

func TestBundleAlertsStatus(t *testing.T) {
	b := newTestBundler()

	read := scoredAlert("a1", "cust-a", model.AlertTypeUsageDrop, 55, time.Hour)
	read.Status = model.AlertStatusRead
	actioned := scoredAlert("a2", "cust-a", model.AlertTypeEngagementDrop, 61, time.Hour)
	actioned.Status = model.AlertStatusActioned

	bundles := b.BundleAlerts(context.Background(), []model.ScoredAlert{read, actioned})
	require.Len(t, bundles, 1)
	assert.Equal(t, model.AlertStatusRead, bundles[0].Status)

	unread := scoredAlert("a3", "cust-a", model.AlertTypeHealthScoreDrop, 70, time.Hour)
	bundles = b.BundleAlerts(context.Background(), []model.ScoredAlert{read, actioned, unread})
	require.Len(t, bundles, 1)
	assert.Equal(t, model.AlertStatusUnread, bundles[0].Status)
}

func TestBundleAlertsUsesAISummary(t *testing.T) {
	summarizer := &mockSummarizer{
		completeFunc: func(ctx context.Context, system, user string) (string, error) {
			assert.Contains(t, user, "cust-a")
			return "```json\n{\"title\":\"AI title\",\"summary\":\"AI summary.\",\"recommended_action\":\"Call them.\"}\n```", nil
		},
	}
	b := newTestBundler(WithSummarizer(summarizer))

	bundles := b.BundleAlerts(context.Background(), []model.ScoredAlert{
		scoredAlert("a1", "cust-a", model.AlertTypeUsageDrop, 55, time.Hour),
	})
	require.Len(t, bundles, 1)
	assert.Equal(t, 1, summarizer.calls)
	assert.Equal(t, "AI title", bundles[0].Title)
	assert.Equal(t, "AI summary.", bundles[0].Summary)
	assert.Equal(t, "Call them.", bundles[0].RecommendedAction)
}

func TestBundleAlertsFallsBackOnSummarizerError(t *testing.T) {
	summarizer := &mockSummarizer{
		completeFunc: func(ctx context.Context, system, user string) (string, error) {
			return "", errors.New("rate limited")
		},
	}
	b := newTestBundler(WithSummarizer(summarizer))

	bundles := b.BundleAlerts(context.Background(), []model.ScoredAlert{
		scoredAlert("a1", "cust-a", model.AlertTypeUsageDrop, 55, time.Hour),
	})
	require.Len(t, bundles, 1)
	assert.NotEmpty(t, bundles[0].Title)
	assert.NotEmpty(t, bundles[0].RecommendedAction)
}

func TestBundleAlertsFallsBackOnMalformedSummary(t *testing.T) {
	cases := []string{
		"not json at all",
		`{"title":"only a title"}`,
		`{"title":"t","summary":"s"}`,
	}
	for _, raw := range cases {
		response := raw
		summarizer := &mockSummarizer{
			completeFunc: func(ctx context.Context, system, user string) (string, error) {
				return response, nil
			},
		}
		b := newTestBundler(WithSummarizer(summarizer))

		bundles := b.BundleAlerts(context.Background(), []model.ScoredAlert{
			scoredAlert("a1", "cust-a", model.AlertTypeUsageDrop, 55, time.Hour),
		})
		require.Len(t, bundles, 1, "response %q", raw)
		assert.NotEmpty(t, bundles[0].Title)
		assert.NotEqual(t, "only a title", bundles[0].Title)
	}
}

func TestParseSummaryResponse(t *testing.T) {
	sc, err := parseSummaryResponse(`{"title":"T","summary":"S","recommended_action":"A"}`)
	require.NoError(t, err)
	assert.Equal(t, summaryCopy{Title: "T", Summary: "S", RecommendedAction: "A"}, sc)

	_, err = parseSummaryResponse("")
	assert.ErrorIs(t, err, errMalformedSummary)

	_, err = parseSummaryResponse(`{"title":"","summary":"S","recommended_action":"A"}`)
	assert.ErrorIs(t, err, errMalformedSummary)
}
