package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	allocation "allocation-tracker/internal/allocationService"
	"allocation-tracker/internal/auth"
	"allocation-tracker/internal/config"
	"allocation-tracker/internal/events"
	"allocation-tracker/internal/lifecycle"
	"allocation-tracker/internal/metrics"
	model "allocation-tracker/internal/models"
	"allocation-tracker/internal/reports"
	"allocation-tracker/internal/repository"
	"allocation-tracker/internal/server"
	"allocation-tracker/internal/throttle"
	"allocation-tracker/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var configPath = flag.String("config", ".", "directory holding app.env")

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		utils.Fatal("failed to load config", map[string]any{"error": err.Error()})
	}
	if err := utils.SetLevel(cfg.LogLevel); err != nil {
		utils.Fatal("failed to set log level", map[string]any{"error": err.Error()})
	}
	gin.SetMode(gin.ReleaseMode)
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		utils.Fatal("failed to initialize store", map[string]any{"driver": cfg.StoreDriver, "error": err.Error()})
	}
	defer closeStore()

	hub := events.NewHub(cfg.EventBuffer)
	defer hub.Close()

	var publisher events.Publisher = hub
	var relay *events.KafkaRelay
	if len(cfg.KafkaBrokers) > 0 {
		relay = events.NewKafkaRelay(events.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
			GroupID: cfg.KafkaGroupPrefix + "-" + instanceID(),
		}, hub)
		defer func() {
			if err := relay.Close(); err != nil {
				utils.Warn("failed to close kafka relay", map[string]any{"error": err.Error()})
			}
		}()
		publisher = relay
	}

	limiter, closeLimiter := buildLimiter(cfg)
	defer closeLimiter()

	winners := buildWinnerPublisher(cfg)
	defer func() {
		if err := winners.Close(); err != nil {
			utils.Warn("failed to close winner publisher", map[string]any{"error": err.Error()})
		}
	}()

	allocationSvc := allocation.NewAllocationService(store, publisher, allocation.WithRetry(cfg.TxMaxAttempts, cfg.TxRetryBackoff))
	lifecycleSvc := lifecycle.NewLifecycleService(store, publisher)
	reportsSvc := reports.NewReportsService(store, winners, cfg.PaymentDeadlineDays)

	router := server.SetupRouter(server.Dependencies{
		Claims:          allocationSvc,
		Lifecycle:       lifecycleSvc,
		Reports:         reportsSvc,
		Stream:          hub,
		Verifier:        auth.NewVerifier(cfg.JWTSecret),
		Limiter:         limiter,
		RequestTimeout:  cfg.RequestTimeout,
		StreamHeartbeat: cfg.StreamHeartbeat,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		utils.Info("starting allocation server", map[string]any{"addr": cfg.ServerAddress, "store": cfg.StoreDriver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if relay != nil {
		g.Go(func() error { return relay.Run(gctx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		utils.Info("shutting down", nil)
		// open streams end only when the hub closes
		hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		utils.Error("server stopped with error", map[string]any{"error": err.Error()})
		return
	}
	utils.Info("server stopped", nil)
}

func buildStore(ctx context.Context, cfg config.Config) (repository.Store, func(), error) {
	if cfg.StoreDriver == config.DriverMemory {
		repo := repository.NewMemoryRepo()
		prepopulateCycle(repo)
		return repo, func() {}, nil
	}

	if cfg.MigrateOnStart {
		if err := repository.RunMigrations(cfg.PostgresConn); err != nil {
			return nil, nil, err
		}
		utils.Info("database migrations applied", nil)
	}
	pool, err := repository.Connect(ctx, cfg.PostgresConn)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewPostgresRepo(pool, cfg.LockTimeout), pool.Close, nil
}

func buildLimiter(cfg config.Config) (throttle.Limiter, func()) {
	if cfg.RedisAddr == "" {
		return throttle.NewMemoryLimiter(cfg.RateLimitPerMinute, time.Minute), func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return throttle.NewRedisLimiter(client, cfg.RateLimitPerMinute, time.Minute), func() {
		if err := client.Close(); err != nil {
			utils.Warn("failed to close redis client", map[string]any{"error": err.Error()})
		}
	}
}

func buildWinnerPublisher(cfg config.Config) reports.WinnerPublisher {
	if cfg.AMQPURL == "" {
		return reports.LogPublisher{}
	}
	p, err := reports.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		utils.Warn("amqp unavailable, winner payloads will only be logged", map[string]any{"error": err.Error()})
		return reports.LogPublisher{}
	}
	return p
}

// instanceID names this process in its own kafka consumer group
func instanceID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return uuid.NewString()
	}
	return host + "-" + uuid.NewString()[:8]
}

// prepopulateCycle adds an open sample cycle to the in-memory store
func prepopulateCycle(repo *repository.MemoryRepo) {
	now := time.Now().UTC()
	cycle := model.Cycle{ID: uuid.NewString(), Name: "Sample cycle", Status: model.CycleOpen, MaxItemsPerUser: 3, OpenAt: &now, CreatedAt: now}
	repo.AddCycle(cycle)

	perUser := 1
	items := []model.Item{
		{ID: uuid.NewString(), CycleID: cycle.ID, Name: "Laptop", Price: decimal.RequireFromString("899.00"), TotalQty: 2, MaxQtyPerUser: &perUser, CreatedAt: now},
		{ID: uuid.NewString(), CycleID: cycle.ID, Name: "Monitor", Price: decimal.RequireFromString("189.50"), TotalQty: 5, CreatedAt: now.Add(time.Millisecond)},
		{ID: uuid.NewString(), CycleID: cycle.ID, Name: "Keyboard", Price: decimal.RequireFromString("45.99"), TotalQty: 10, CreatedAt: now.Add(2 * time.Millisecond)},
	}
	for _, item := range items {
		repo.AddItem(item)
	}
}
