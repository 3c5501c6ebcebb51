// Command server wires the donation-compliance platform: the identity
// registry, the cycle quota enforcer, the campaign state machine, the
// donation ledger and the treasury, behind one HTTP surface.
//
// Storage backends are chosen by configuration: in-memory by default,
// PostgreSQL for registry and ledger when TALLY_POSTGRES_URL is set, Redis
// for enforcer cycle totals when TALLY_REDIS_URL is set. Audit events go to
// structured logs, or to Kafka when TALLY_KAFKA_BROKERS is set.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	_ "github.com/lib/pq"

	campaignhandler "tally/internal/campaign/handler"
	campaignmetrics "tally/internal/campaign/metrics"
	campaignsvc "tally/internal/campaign/service"
	campaignstore "tally/internal/campaign/store"
	enforcerhandler "tally/internal/enforcer/handler"
	enforcermetrics "tally/internal/enforcer/metrics"
	enforcerports "tally/internal/enforcer/ports"
	enforcersvc "tally/internal/enforcer/service"
	cyclestore "tally/internal/enforcer/store/cycle"
	ledgerhandler "tally/internal/ledger/handler"
	ledgermetrics "tally/internal/ledger/metrics"
	ledgerports "tally/internal/ledger/ports"
	ledgersvc "tally/internal/ledger/service"
	ledgerstore "tally/internal/ledger/store"
	"tally/internal/platform/config"
	"tally/internal/platform/httpserver"
	"tally/internal/platform/logger"
	"tally/internal/platform/metrics"
	"tally/internal/platform/middleware"
	platformredis "tally/internal/platform/redis"
	"tally/internal/platform/tracing"
	registryhandler "tally/internal/registry/handler"
	registryports "tally/internal/registry/ports"
	registrysvc "tally/internal/registry/service"
	registrystore "tally/internal/registry/store"
	"tally/internal/transport/http/shared"
	"tally/internal/treasury"
	"tally/pkg/platform/audit/publisher"
	"tally/pkg/platform/clock"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, "tally", cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("trace shutdown failed", "error", err)
		}
	}()

	clk := clock.NewLogical()

	var auditPub publisher.Publisher = publisher.NewSlog(log)
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := publisher.NewKafka(ctx, cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			return err
		}
		defer kafka.Close()
		auditPub = kafka
		log.Info("audit events go to kafka", "topic", cfg.AuditTopic)
	}

	var (
		registryStore registryports.Store = registrystore.NewMemory()
		ledgerStore   ledgerports.Store   = ledgerstore.NewMemory()
	)
	if cfg.PostgresURL != "" {
		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return err
		}
		registryPG := registrystore.NewPostgres(db)
		if err := registryPG.Migrate(ctx); err != nil {
			return err
		}
		ledgerPG := ledgerstore.NewPostgres(db)
		if err := ledgerPG.Migrate(ctx); err != nil {
			return err
		}
		registryStore = registryPG
		ledgerStore = ledgerPG
		log.Info("registry and ledger use postgres")
	}

	var cycleStore enforcerports.CycleStore = cyclestore.NewMemory()
	redisClient, err := platformredis.New(cfg.Redis())
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		cycleStore = cyclestore.NewRedis(redisClient.Client)
		log.Info("enforcer cycle totals use redis")
	}

	registrySvc, err := registrysvc.New(registryStore,
		registrysvc.WithLogger(log),
		registrysvc.WithAuditPublisher(auditPub),
	)
	if err != nil {
		return err
	}
	enforcerSvc, err := enforcersvc.New(cycleStore, registrySvc, cfg.GlobalLimit, cfg.CycleDuration,
		enforcersvc.WithLogger(log),
		enforcersvc.WithAuditPublisher(auditPub),
		enforcersvc.WithMetrics(enforcermetrics.New(prometheus.DefaultRegisterer)),
	)
	if err != nil {
		return err
	}
	ledgerSvc, err := ledgersvc.New(ledgerStore,
		ledgersvc.WithLogger(log),
		ledgersvc.WithAuditPublisher(auditPub),
		ledgersvc.WithMetrics(ledgermetrics.New(prometheus.DefaultRegisterer)),
	)
	if err != nil {
		return err
	}
	funds := treasury.New()
	campaignSvc, err := campaignsvc.New(campaignstore.NewMemory(), enforcerSvc, ledgerSvc, funds, registrySvc,
		campaignsvc.WithLogger(log),
		campaignsvc.WithAuditPublisher(auditPub),
		campaignsvc.WithMetrics(campaignmetrics.New(prometheus.DefaultRegisterer)),
	)
	if err != nil {
		return err
	}

	platformMetrics := metrics.New()
	validator := middleware.NewHMACValidator(cfg.JWTSigningKey)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Tick(clk))
	r.Use(middleware.Logger(log, platformMetrics))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	registerClock(r, clk)

	// Public surface: registration, ledger reads, treasury crediting.
	r.Group(func(r chi.Router) {
		registryhandler.New(registrySvc, log).Register(r)
		ledgerhandler.New(ledgerSvc, log).Register(r)
		treasury.NewHandler(funds).Register(r)
	})

	// Authenticated surface: operations acting on behalf of a caller.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator))
		enforcerhandler.New(enforcerSvc, log).Register(r)
		campaignhandler.New(campaignSvc, log).Register(r)
	})

	srv := httpserver.New(cfg.Addr, r)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting tally server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// registerClock exposes the host's clock controls. Compliance windows move
// only when something calls these.
func registerClock(r chi.Router, clk *clock.Logical) {
	type advanceRequest struct {
		Ticks uint64 `json:"ticks"`
	}
	r.Get("/clock", func(w http.ResponseWriter, req *http.Request) {
		shared.WriteJSON(w, http.StatusOK, map[string]uint64{"tick": uint64(clk.Tick())})
	})
	r.Post("/clock/advance", func(w http.ResponseWriter, req *http.Request) {
		var body advanceRequest
		if err := shared.Decode(req, &body); err != nil {
			shared.WriteError(w, err)
			return
		}
		tick := clk.Advance(body.Ticks)
		shared.WriteJSON(w, http.StatusOK, map[string]uint64{"tick": uint64(tick)})
	})
}
