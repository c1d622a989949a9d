package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/onespecapp/nemo-b2b-web-sub000/cmd/mainconfig"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/api/router"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/app/bootstrap"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/audit"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/business"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/calls"
	appconfig "github.com/onespecapp/nemo-b2b-web-sub000/internal/config"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/customers"
	httpmiddleware "github.com/onespecapp/nemo-b2b-web-sub000/internal/http/middleware"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/notify"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/observability/metrics"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/templates"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/validation"
	"github.com/onespecapp/nemo-b2b-web-sub000/pkg/logging"
)

func main() {
	// Missing .env is fine outside local development.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting nemo reminders API server", "env", cfg.Env, "port", cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) error {
	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	pg, err := bootstrap.BuildPostgres(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer pg.Close()

	sender, err := bootstrap.BuildEmailSender(ctx, cfg, func(ctx context.Context) (notify.SESAPI, error) {
		return mainconfig.NewSESClient(ctx, cfg)
	}, logger)
	if err != nil {
		return err
	}

	limiter := httpmiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer limiter.Stop()

	handler := newHandler(cfg, logger, prometheus.NewRegistry(), deps{
		redis:   redisClient,
		pg:      pg,
		email:   sender,
		placer:  bootstrap.BuildCallPlacer(cfg, logger),
		limiter: limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// deps are the optional backing services; nil members disable the routes
// that need them.
type deps struct {
	redis   *redis.Client
	pg      *bootstrap.Postgres
	email   notify.EmailSender
	placer  calls.Placer
	limiter *httpmiddleware.RateLimiter
}

func newHandler(cfg *appconfig.Config, logger *logging.Logger, reg *prometheus.Registry, d deps) http.Handler {
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	engineMetrics := metrics.NewEngineMetrics(reg)
	outreachMetrics := metrics.NewOutreachMetrics(reg)

	checks := map[string]router.HealthCheck{}
	var (
		auditor     *audit.Service
		auditRoutes *audit.Handler
		repo        customers.Repository = customers.NewInMemoryRepository()
	)
	if d.pg != nil {
		auditor = audit.NewService(d.pg.DB)
		auditRoutes = audit.NewHandler(auditor, logger)
		repo = customers.NewPostgresRepository(d.pg.Pool)
		checks["postgres"] = d.pg.Ping
	} else {
		logger.Warn("DATABASE_URL not set; customers kept in memory and audit log disabled")
	}

	var (
		defaults templates.DefaultsSource
		profiles *business.Handler
	)
	if d.redis != nil {
		store := business.NewStore(d.redis)
		defaults = store
		profiles = business.NewHandler(store, auditor, logger)
		checks["redis"] = func(ctx context.Context) error { return d.redis.Ping(ctx).Err() }
	} else {
		logger.Warn("redis unavailable; business profiles disabled")
	}

	return router.New(&router.Config{
		Logger:             logger,
		Templates:          templates.NewHandler(defaults, auditor, engineMetrics, logger),
		Validator:          validation.NewHandler(engineMetrics, logger),
		Profiles:           profiles,
		Customers:          customers.NewHandler(repo, auditor, logger),
		Calls:              calls.NewHandler(d.placer, defaults, auditor, outreachMetrics, logger),
		Emails:             notify.NewHandler(notify.NewReminderMailer(d.email, logger), defaults, auditor, outreachMetrics, logger),
		Audit:              auditRoutes,
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		StatsHandler:       metrics.StatsHandler(reg),
		HealthChecks:       checks,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimiter:        d.limiter,
	})
}
