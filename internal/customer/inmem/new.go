// Package inmem is the demo-mode customer book. It ships a small fixed
// roster so the whole pipeline works end to end with no database.
package inmem

import (
	"sync"

	"cscx-api/internal/customer"
	"cscx-api/internal/model"
)

type implReader struct {
	mu        sync.RWMutex
	customers map[string]model.CustomerSnapshot
	playbooks map[string][]string
	savePlays map[string]bool
	seasonal  map[string][]model.SeasonalPattern
}

// New creates a demo customer reader seeded with the demo roster.
func New() customer.Reader {
	r := &implReader{
		customers: make(map[string]model.CustomerSnapshot),
		playbooks: make(map[string][]string),
		savePlays: make(map[string]bool),
		seasonal:  make(map[string][]model.SeasonalPattern),
	}
	r.seed()
	return r
}

func (r *implReader) seed() {
	renewal45 := 45
	renewal120 := 120

	for _, c := range []model.CustomerSnapshot{
		{ID: "demo-acme", Name: "Acme Corp", ARR: 200_000, HealthScore: 58, Lifecycle: model.LifecycleAtRisk, Tier: "enterprise"},
		{ID: "demo-globex", Name: "Globex", ARR: 85_000, HealthScore: 74, Lifecycle: model.LifecycleActive, DaysToRenewal: &renewal120, Tier: "mid_market"},
		{ID: "demo-initech", Name: "Initech", ARR: 30_000, HealthScore: 66, Lifecycle: model.LifecycleRenewal, DaysToRenewal: &renewal45, Tier: "growth"},
		{ID: "demo-umbrella", Name: "Umbrella Retail", ARR: 120_000, HealthScore: 81, Lifecycle: model.LifecycleActive, Tier: "mid_market"},
	} {
		r.customers[c.ID] = c
	}

	r.playbooks["demo-acme"] = []string{"Executive Save Play", "Quarterly Business Review"}
	r.savePlays["demo-acme"] = true
	r.playbooks["demo-initech"] = []string{"Renewal Prep"}

	// Retail seasonality: usage always dips over the summer.
	r.seasonal["demo-umbrella"] = []model.SeasonalPattern{
		{Metric: "weekly_active_users", Description: "summer slowdown", MonthStart: 6, MonthEnd: 8},
	}
}
