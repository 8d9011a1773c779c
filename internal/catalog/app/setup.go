// Package app contains the application setup for the catalog API.
package app

import (
	"log/slog"
	"net/http"

	"github.com/acmeshop/catalog/internal/catalog/config"
	"github.com/acmeshop/catalog/internal/catalog/service"
	"github.com/acmeshop/catalog/internal/catalog/store"
	"github.com/acmeshop/catalog/internal/catalog/transport/rest"
	"github.com/acmeshop/catalog/pkg/server"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependencies struct {
	ProductService service.ProductService
	Logger         *slog.Logger
}

func SetupDependencies(dbPool *pgxpool.Pool, logger *slog.Logger) *Dependencies {
	pService := service.NewService(store.NewPgStore(dbPool))

	return &Dependencies{
		ProductService: pService,
		Logger:         logger,
	}
}

// SetupHttpHandler initializes the router and routes for the catalog API.
// Also used by tests to run the real handler inside an httptest server.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)

	handler := rest.NewHandler(deps.ProductService, deps.Logger)
	handler.RegisterRoutes(mux)

	return mux
}

// SetupHttpServer creates and configures an HTTP server for the catalog API.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)
	return server.NewHTTPServer(server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}, mux)
}
