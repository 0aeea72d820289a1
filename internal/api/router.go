package api

import (
	"log/slog"
	"net/http"
	"time"

	_ "customer-service/docs"
	"customer-service/internal/api/handler"
	mw "customer-service/internal/api/middleware"
	"customer-service/internal/config"
	"customer-service/internal/domain/auth"
	"customer-service/internal/domain/customer"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const defaultRequestTimeout = 60 * time.Second

// Dependencies are the collaborators the HTTP edge is built from.
type Dependencies struct {
	CustomerService customer.CustomerService
	Authenticator   handler.LoginAuthenticator
	Tokens          auth.TokenService
	Users           mw.UserLookup
}

func SetupRouter(deps Dependencies, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	router.Route("/api/v1", func(r chi.Router) {
		setupAuthRoutes(r, deps, logger)
		setupCustomerRoutes(r, deps, logger)
	})

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	timeout := cfg.Server.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(mw.CORS(cfg.CORS))
	router.Use(middleware.Timeout(timeout))
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(r chi.Router, deps Dependencies, logger *slog.Logger) {
	h := handler.NewAuthHandler(deps.Authenticator, logger)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
	})
}

func setupCustomerRoutes(r chi.Router, deps Dependencies, logger *slog.Logger) {
	h := handler.NewCustomerHandler(deps.CustomerService, deps.Tokens, logger)

	r.Route("/customers", func(r chi.Router) {
		r.Post("/", h.RegisterCustomer)

		r.Group(func(r chi.Router) {
			r.Use(mw.Authorization(deps.Tokens, deps.Users, logger))
			r.Use(mw.RequireAuthenticated)
			r.Get("/", h.ListCustomers)
			r.Route("/{customerId}", func(r chi.Router) {
				r.Get("/", h.GetCustomer)
				r.Put("/", h.UpdateCustomer)
				r.Delete("/", h.DeleteCustomer)
			})
		})
	})
}
