package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/audit"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/business"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/calls"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/customers"
	httpmiddleware "github.com/onespecapp/nemo-b2b-web-sub000/internal/http/middleware"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/notify"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/templates"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/tenancy"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/validation"
	"github.com/onespecapp/nemo-b2b-web-sub000/pkg/logging"
)

// Config holds router configuration. Nil handlers leave their routes unmounted.
type Config struct {
	Logger    *logging.Logger
	Templates *templates.Handler
	Validator *validation.Handler
	Profiles  *business.Handler
	Customers *customers.Handler
	Calls     *calls.Handler
	Emails    *notify.Handler
	Audit     *audit.Handler

	MetricsHandler     http.Handler
	StatsHandler       http.Handler
	HealthChecks       map[string]HealthCheck
	CORSAllowedOrigins []string
	RateLimiter        *httpmiddleware.RateLimiter
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}

	r.Get("/health", healthHandler(cfg.HealthChecks))
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.RateLimiter != nil {
			api.Use(httpmiddleware.RateLimit(cfg.RateLimiter))
		}

		if cfg.StatsHandler != nil {
			api.Get("/stats", cfg.StatsHandler.ServeHTTP)
		}
		if cfg.Validator != nil {
			api.Route("/validate", func(v chi.Router) {
				v.Post("/phone", cfg.Validator.Phone)
				v.Post("/email", cfg.Validator.Email)
			})
		}
		if cfg.Templates != nil {
			api.Group(func(g chi.Router) {
				g.Use(optionalOrgHeader)
				g.Route("/templates", mountTemplates(cfg.Templates))
			})
		}

		api.Route("/orgs/{orgID}", func(org chi.Router) {
			org.Use(tenancy.OrgScope)

			if cfg.Profiles != nil {
				org.Get("/profile", cfg.Profiles.GetProfile)
				org.Put("/profile", cfg.Profiles.UpdateProfile)
			}
			if cfg.Templates != nil {
				org.Route("/templates", mountTemplates(cfg.Templates))
			}
			if cfg.Customers != nil {
				org.Route("/customers", func(c chi.Router) {
					c.Get("/", cfg.Customers.ListCustomers)
					c.Post("/", cfg.Customers.CreateCustomer)
					c.Get("/{customerID}", cfg.Customers.GetCustomer)
				})
			}
			if cfg.Calls != nil {
				org.Post("/test-call", cfg.Calls.TestCall)
			}
			if cfg.Emails != nil {
				org.Post("/test-email", cfg.Emails.SendTestEmail)
			}
			if cfg.Audit != nil {
				org.Get("/audit", cfg.Audit.ListEvents)
			}
		})
	})

	return r
}

func mountTemplates(h *templates.Handler) func(chi.Router) {
	return func(t chi.Router) {
		t.Post("/sms", h.SMS)
		t.Post("/reminder", h.Reminder)
		t.Post("/card", h.Card)
		t.Post("/policy", h.Policy)
	}
}
