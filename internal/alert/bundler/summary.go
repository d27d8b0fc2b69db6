package bundler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"cscx-api/internal/model"
)

const summarySystemPrompt = `You are a customer-success assistant. Given a customer's active alerts, respond with a strict JSON object containing exactly three string fields: "title", "summary" and "recommended_action". Title is one line. Summary is at most two sentences. No markdown, no extra fields, no surrounding text.`

// summaryCopy is the title/summary/action attached to a bundle.
type summaryCopy struct {
	Title             string `json:"title"`
	Summary           string `json:"summary"`
	RecommendedAction string `json:"recommended_action"`
}

var (
	errSummarizerUnavailable = errors.New("summarizer unavailable")
	errMalformedSummary      = errors.New("malformed summary response")
)

// generateSummary asks the text-generation collaborator first and falls
// back to the rule-based generator on any failure. External failures
// are logged, never propagated.
func (b *Bundler) generateSummary(ctx context.Context, members []model.ScoredAlert) summaryCopy {
	sc, err := b.aiSummary(ctx, members)
	if err == nil {
		return sc
	}
	if !errors.Is(err, errSummarizerUnavailable) {
		b.l.Warnf(ctx, "internal.alert.bundler.generateSummary: falling back to rules: %v", err)
	}
	return ruleBasedSummary(members)
}

// aiSummary returns the parsed collaborator response, or one of
// errSummarizerUnavailable (not configured), a wrapped transport error,
// or errMalformedSummary (unparsable or incomplete JSON).
func (b *Bundler) aiSummary(ctx context.Context, members []model.ScoredAlert) (summaryCopy, error) {
	if b.summarizer == nil {
		return summaryCopy{}, errSummarizerUnavailable
	}

	raw, err := b.summarizer.Complete(ctx, summarySystemPrompt, buildSummaryPrompt(members))
	if err != nil {
		return summaryCopy{}, fmt.Errorf("summarizer transport: %w", err)
	}

	return parseSummaryResponse(raw)
}

// buildSummaryPrompt enumerates each member alert with its score so the
// collaborator can weigh severity.
func buildSummaryPrompt(members []model.ScoredAlert) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Customer %s has %d active alerts:\n", customerName(members), len(members))
	for i, m := range members {
		fmt.Fprintf(&sb, "%d. [%s] %s (score %.0f): %s\n",
			i+1, m.Type, m.Title, m.Score.FinalScore, m.Description)
	}
	return sb.String()
}

// parseSummaryResponse accepts only a complete JSON object with all
// three fields present. Models occasionally wrap JSON in code fences;
// that much is tolerated.
func parseSummaryResponse(raw string) (summaryCopy, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var sc summaryCopy
	if err := json.Unmarshal([]byte(trimmed), &sc); err != nil {
		return summaryCopy{}, fmt.Errorf("%w: %v", errMalformedSummary, err)
	}
	if sc.Title == "" || sc.Summary == "" || sc.RecommendedAction == "" {
		return summaryCopy{}, fmt.Errorf("%w: missing fields", errMalformedSummary)
	}
	return sc, nil
}
