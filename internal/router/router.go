package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-portfolio/internal/about"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/api"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/auth"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/project"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/services"
)

// Banner is the body of GET /.
const Banner = "Portfolio API running"

// Pinger is satisfied by *sqlx.DB and *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators the router mounts.
type Deps struct {
	Logger *zap.SugaredLogger
	DB     Pinger
	Tokens *auth.TokenIssuer

	Auth     *auth.Handler
	About    *about.Handler
	Projects *project.Handler
	Services *services.Handler

	AllowedOrigins []string
	// LoginRateLimit is attempts per IP per minute on the login route; 0 disables.
	LoginRateLimit int
	// Registry receives the HTTP metrics; a fresh one is created when nil.
	Registry *prometheus.Registry
}

type crudHandler interface {
	List(http.ResponseWriter, *http.Request)
	Get(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

// RegisterRoutes builds the chi router with its middleware chain.
func RegisterRoutes(d Deps) http.Handler {
	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	metrics := newHTTPMetrics(reg)

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware(d.Logger))
	r.Use(RecoverMiddleware(d.Logger))
	r.Use(metrics.middleware)
	r.Use(SecurityHeadersMiddleware())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.WriteError(w, r, d.Logger, api.NotFoundError("Not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(Banner))
	})
	r.Get("/health", healthHandler(d.DB, d.Logger))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	admin := []func(http.Handler) http.Handler{
		auth.VerifyToken(d.Tokens, d.Logger),
		auth.RequireAdmin(d.Logger),
	}

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if d.LoginRateLimit > 0 {
				r.Use(loginLimiter(d.LoginRateLimit))
			}
			r.Post("/auth/login", d.Auth.Login)
		})
		mountContent(r, "/about", d.About, admin)
		mountContent(r, "/projects", d.Projects, admin)
		mountContent(r, "/services", d.Services, admin)
	})

	return r
}

// mountContent exposes reads publicly and guards writes with the admin chain.
func mountContent(r chi.Router, path string, h crudHandler, admin []func(http.Handler) http.Handler) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Group(func(r chi.Router) {
			r.Use(admin...)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

func loginLimiter(perMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			api.WriteJSON(w, http.StatusTooManyRequests, map[string]string{"error": "Too many login attempts, try again later"})
		}),
	)
}

func healthHandler(db Pinger, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				logger.Warnw("health check failed", "err", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("unavailable"))
				return
			}
		}
		_, _ = w.Write([]byte("ok"))
	}
}
