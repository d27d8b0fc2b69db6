package httpserver

import (
	"database/sql"
	"errors"

	pkgLog "cscx-api/pkg/log"
	"cscx-api/pkg/openai"
	"cscx-api/pkg/scope"

	"github.com/gin-gonic/gin"
)

// HTTPServer wires the alert pipeline behind a gin engine.
// New() only wires dependencies and validates them; Run() starts the
// HTTP serving loop.
type HTTPServer struct {
	gin         *gin.Engine
	logger      pkgLog.Logger
	port        int
	environment string

	// Storage. A nil db selects the in-memory adapters (demo mode).
	db *sql.DB

	// Auth. demoMode admits a fixed demo scope without a token.
	jwtMgr   scope.Manager
	demoMode bool

	// Optional AI summarizer; nil falls back to rule-based summaries.
	aiClient openai.Client
}

// Config is the constructor input for HTTPServer.
type Config struct {
	Port        int
	Environment string
	Mode        string

	DB         *sql.DB
	JWTManager scope.Manager
	DemoMode   bool
	AIClient   openai.Client
}

// New creates a new HTTPServer instance with the provided configuration.
func New(logger pkgLog.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	srv := &HTTPServer{
		gin:         gin.New(),
		logger:      logger,
		port:        cfg.Port,
		environment: cfg.Environment,
		db:          cfg.DB,
		jwtMgr:      cfg.JWTManager,
		demoMode:    cfg.DemoMode,
		aiClient:    cfg.AIClient,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.logger == nil {
		return errors.New("logger is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if !srv.demoMode && srv.jwtMgr == nil {
		return errors.New("JWT manager is required outside demo mode")
	}
	return nil
}
