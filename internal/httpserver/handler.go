package httpserver

import (
	"cscx-api/internal/alert/bundler"
	alertHTTP "cscx-api/internal/alert/delivery/http"
	"cscx-api/internal/alert/repository"
	alertInmem "cscx-api/internal/alert/repository/inmem"
	alertPostgres "cscx-api/internal/alert/repository/postgre"
	"cscx-api/internal/alert/scorer"
	"cscx-api/internal/alert/usecase"
	"cscx-api/internal/customer"
	customerInmem "cscx-api/internal/customer/inmem"
	customerPostgres "cscx-api/internal/customer/postgre"
	"cscx-api/internal/middleware"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const Api = "/api/v1"

func (srv *HTTPServer) mapHandlers() error {
	srv.gin.Use(middleware.Recovery(srv.logger))
	srv.gin.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	// Health check endpoints (no auth required)
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	// Swagger UI
	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Storage adapters follow the configured database; demo mode runs
	// everything in memory.
	var (
		repo      repository.Repository
		customers customer.Reader
	)
	if srv.db != nil {
		repo = alertPostgres.New(srv.logger, srv.db)
		customers = customerPostgres.New(srv.logger, srv.db)
	} else {
		repo = alertInmem.New(srv.logger)
		customers = customerInmem.New()
	}

	var bundlerOpts []bundler.Option
	if srv.aiClient != nil {
		bundlerOpts = append(bundlerOpts, bundler.WithSummarizer(srv.aiClient))
	}

	uc := usecase.New(
		srv.logger,
		repo,
		customers,
		scorer.New(),
		bundler.New(srv.logger, bundlerOpts...),
	)

	mw := middleware.New(srv.logger, srv.jwtMgr, srv.demoMode)
	api := srv.gin.Group(Api)
	alertHTTP.New(srv.logger, uc).RegisterRoutes(api, mw)

	return nil
}
