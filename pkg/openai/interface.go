package openai

import (
	"context"
	"net/http"
	"strings"
	"time"

	pkgLog "cscx-api/pkg/log"
)

// Client is a minimal chat-completion client.
// Implementations are safe for concurrent use.
type Client interface {
	// Complete sends one system+user prompt pair and returns the
	// assistant's text.
	Complete(ctx context.Context, system, user string) (string, error)
}

// New creates a Client from the given config.
func New(l pkgLog.Logger, cfg Config) Client {
	return &implClient{
		l:          l,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSec) * time.Second},
	}
}
