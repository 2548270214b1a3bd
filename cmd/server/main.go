package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"arbiter/internal/decision"
	decisionhandler "arbiter/internal/decision/handler"
	"arbiter/internal/decision/metrics"
	"arbiter/internal/platform/config"
	"arbiter/internal/platform/httpserver"
	"arbiter/internal/platform/logger"
	"arbiter/internal/platform/middleware"
	platformredis "arbiter/internal/platform/redis"
	"arbiter/internal/workflow"
	workflowhandler "arbiter/internal/workflow/handler"
	audit "arbiter/pkg/platform/audit"
	audithandler "arbiter/pkg/platform/audit/handler"
	"arbiter/pkg/platform/audit/publisher"
	auditmemory "arbiter/pkg/platform/audit/store/memory"
	auditpostgres "arbiter/pkg/platform/audit/store/postgres"
	"arbiter/pkg/platform/audit/stream"
	auditworker "arbiter/pkg/platform/audit/worker"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Audit store: postgres when DATABASE_URL is set, in-memory otherwise.
	var auditStore audit.Store
	if cfg.DatabaseURL != "" {
		pgStore, err := auditpostgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("audit store init failed", "error", err.Error())
			os.Exit(1)
		}
		defer pgStore.Close()
		auditStore = pgStore
		log.Info("audit store: postgres")
	} else {
		auditStore = auditmemory.NewInMemoryStore()
		log.Info("audit store: memory")
	}

	// Optional Kafka mirror of the audit trail. Best-effort: the primary
	// store stays authoritative, the mirror feeds downstream consumers.
	pubOpts := []publisher.Option{
		publisher.WithLogger(log),
		publisher.WithMetrics(publisher.NewMetrics()),
	}
	if len(cfg.AuditBrokers) > 0 {
		sink, err := stream.NewKafkaSink(cfg.AuditBrokers, cfg.AuditTopic)
		if err != nil {
			log.Error("audit stream init failed", "error", err.Error())
			os.Exit(1)
		}
		defer sink.Close()

		mirror := make(chan audit.Entry, 256)
		w := auditworker.New(sink, mirror, log)
		go func() { _ = w.Run(ctx) }()
		pubOpts = append(pubOpts, publisher.WithMirror(mirror))
		log.Info("audit stream: kafka", "topic", cfg.AuditTopic)
	}
	pub := publisher.New(auditStore, pubOpts...)

	// Decision store: redis when REDIS_URL is set, in-memory otherwise.
	var decisionStore decision.Store
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis init failed", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		decisionStore = decision.NewRedisStore(redisClient.Client, cfg.Redis.DecisionTTL)
		log.Info("decision store: redis")
	} else {
		decisionStore = decision.NewMemoryStore()
		log.Info("decision store: memory")
	}

	m := metrics.NewMetrics()
	decisionService := decision.NewService(decisionStore, pub, log, m)
	workflowService := workflow.NewService(decisionStore, pub, log, m)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Actor)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))

	decisionhandler.New(decisionService, log).Register(r)
	workflowhandler.New(workflowService, log).Register(r)
	audithandler.New(auditStore, log).Register(r)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, r)

	go func() {
		log.Info("starting arbiter", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
	log.Info("arbiter stopped")
}
