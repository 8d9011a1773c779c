// Package app contains the application setup for the catalog web UI.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/acmeshop/catalog/internal/webui/client"
	"github.com/acmeshop/catalog/internal/webui/config"
	"github.com/acmeshop/catalog/internal/webui/form"
	"github.com/acmeshop/catalog/internal/webui/state"
	"github.com/acmeshop/catalog/internal/webui/transport/web"
	"github.com/acmeshop/catalog/pkg/server"
)

type Dependencies struct {
	Cache  *state.ProductCache
	Form   *form.Controller
	Logger *slog.Logger
}

func SetupDependencies(cfg *config.Config, logger *slog.Logger) *Dependencies {
	api := client.New(cfg.API.BaseURL, cfg.API.Timeout)
	cache := state.NewProductCache(api, logger)
	controller := form.NewController(cache, form.DefaultNoticeTTL)

	return &Dependencies{
		Cache:  cache,
		Form:   controller,
		Logger: logger,
	}
}

// SetupHttpHandler initializes the router and routes for the web UI.
func SetupHttpHandler(deps *Dependencies) (http.Handler, error) {
	mux := server.NewChiRouter(deps.Logger)

	handler, err := web.NewHandler(deps.Cache, deps.Form, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create web handler: %w", err)
	}
	handler.RegisterRoutes(mux)

	return mux, nil
}

// SetupHttpServer creates and configures an HTTP server for the web UI.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) (*http.Server, error) {
	mux, err := SetupHttpHandler(deps)
	if err != nil {
		return nil, err
	}
	return server.NewHTTPServer(server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}, mux), nil
}
