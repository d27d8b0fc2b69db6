// Package inmem is the no-database adapter for the alert storage port.
// It backs demo mode and tests, and mirrors the Postgres adapter's
// filter and ordering semantics exactly.
package inmem

import (
	"sync"

	"cscx-api/internal/alert/repository"
	"cscx-api/internal/model"
	pkgLog "cscx-api/pkg/log"
)

type implRepository struct {
	l pkgLog.Logger

	mu           sync.RWMutex
	alerts       map[string]model.ScoredAlert     // alert id -> alert
	preferences  map[string]model.AlertPreferences // user id -> prefs
	suppressions map[string]model.AlertSuppression // rule id -> rule
	feedback     []model.AlertFeedback             // append-only
}

// New creates an isolated in-memory repository instance.
func New(l pkgLog.Logger) repository.Repository {
	return &implRepository{
		l:            l,
		alerts:       make(map[string]model.ScoredAlert),
		preferences:  make(map[string]model.AlertPreferences),
		suppressions: make(map[string]model.AlertSuppression),
	}
}
