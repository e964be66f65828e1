package api

import (
	"log/slog"

	"github.com/chadaustin/gmail-mbox-analyzer/internal/api/handlers"
	"github.com/chadaustin/gmail-mbox-analyzer/internal/api/middleware"
	"github.com/chadaustin/gmail-mbox-analyzer/internal/report"
	"github.com/chadaustin/gmail-mbox-analyzer/internal/store"
	"github.com/labstack/echo/v4"
)

// RouterConfig holds dependencies for the router
type RouterConfig struct {
	Store      store.Store
	Aggregator *report.Aggregator
	Database   string // display name of the index file
	Logger     *slog.Logger
}

// NewRouter creates and configures the Echo router with all routes
func NewRouter(cfg *RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	if cfg.Logger != nil {
		e.Use(middleware.RequestLogger(cfg.Logger))
	}

	overviewHandler := handlers.NewOverviewHandler(cfg.Aggregator, cfg.Database)
	healthHandler := handlers.NewHealthHandler(cfg.Store)

	e.GET("/", overviewHandler.Overview)
	e.GET("/health", healthHandler.Health)

	return e
}
