package usecase

import (
	"time"

	"cscx-api/internal/alert"
	"cscx-api/internal/alert/bundler"
	"cscx-api/internal/alert/repository"
	"cscx-api/internal/alert/scorer"
	"cscx-api/internal/customer"
	pkgLog "cscx-api/pkg/log"
)

type usecase struct {
	l         pkgLog.Logger
	repo      repository.Repository
	customers customer.Reader
	scorer    *scorer.Scorer
	bundler   *bundler.Bundler
	now       func() time.Time
}

// Option configures the usecase.
type Option func(*usecase)

// WithClock overrides the time source. Tests pin it for determinism.
func WithClock(now func() time.Time) Option {
	return func(uc *usecase) { uc.now = now }
}

func New(l pkgLog.Logger, repo repository.Repository, customers customer.Reader, sc *scorer.Scorer, b *bundler.Bundler, opts ...Option) alert.UseCase {
	uc := &usecase{
		l:         l,
		repo:      repo,
		customers: customers,
		scorer:    sc,
		bundler:   b,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}
