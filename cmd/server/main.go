package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"boardkeep/internal/account"
	"boardkeep/internal/app"
	"boardkeep/internal/audit"
	boardservice "boardkeep/internal/board/service"
	"boardkeep/internal/board/store"
	"boardkeep/internal/platform/config"
	kafkaproducer "boardkeep/internal/platform/kafka/producer"
	"boardkeep/internal/platform/logger"
	"boardkeep/internal/platform/metrics"
	"boardkeep/internal/platform/postgres"
	platformredis "boardkeep/internal/platform/redis"
)

// main wires storage, session cache, audit sink and the domain services
// into the app facade. The presentation layer embeds the facade directly;
// the only listener here serves metrics and health.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	m := metrics.New()

	var (
		gateway store.Gateway
		users   account.UserStore
		checks  []app.HealthFunc
	)
	if cfg.PostgresDSN != "" {
		db, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		pg := store.NewPostgres(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Error("schema bootstrap failed", "error", err)
			os.Exit(1)
		}
		userStore := account.NewPostgresUserStore(db)
		if err := userStore.EnsureSchema(ctx); err != nil {
			log.Error("user schema bootstrap failed", "error", err)
			os.Exit(1)
		}
		gateway = pg
		users = userStore
		checks = append(checks, db.PingContext)
	} else {
		log.Warn("no postgres DSN configured, using in-memory storage")
		gateway = store.NewMemory()
		users = account.NewInMemoryUserStore()
	}

	var sessions account.SessionStore = account.NewInMemorySessionStore()
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		sessions = account.NewRedisSessionStore(redisClient, cfg.SessionTTL)
		checks = append(checks, redisClient.Health)
	}

	var publisher audit.Publisher = audit.NewLogPublisher(log)
	producer, err := kafkaproducer.New(cfg.Kafka.Brokers)
	if err != nil {
		log.Error("kafka connection failed", "error", err)
		os.Exit(1)
	}
	if producer != nil {
		defer producer.Close()
		publisher = audit.NewKafkaPublisher(producer, cfg.Kafka.AuditTopic)
	}

	accounts := account.NewService(users, sessions,
		account.WithLogger(log),
		account.WithAuditPublisher(publisher),
		account.WithMetrics(m),
	)
	application := app.New(accounts, gateway,
		boardservice.WithLogger(log),
		boardservice.WithAuditPublisher(publisher),
		boardservice.WithMetrics(m),
	)
	for _, check := range checks {
		application.AddHealthCheck(check)
	}

	// Single-handler debug mux; the domain itself exposes no transport.
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := application.Health(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	go func() {
		if err := http.ListenAndServe(":9090", mux); err != nil && err != http.ErrServerClosed {
			log.Error("metrics listener failed", "error", err)
		}
	}()

	log.Info("boardkeep ready",
		"postgres", cfg.PostgresDSN != "",
		"redis", redisClient != nil,
		"kafka", producer != nil,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")
}
