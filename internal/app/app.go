package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/auth"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/config"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/event"
	handler "github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/handler/http"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/repository/postgres"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/repository/postgres/migrations"
	redisrepo "github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/repository/redis"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/service"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/storage"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/storage/local"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/storage/memory"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/storage/minio"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/database"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/health"
	pkgkafka "github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/kafka"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/middleware"
	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/pkg/tracing"
)

// cartTTL is how long an idle cart survives in Redis.
const cartTTL = 30 * 24 * time.Hour

// App wires together all dependencies and runs the storefront API.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	pool            *pgxpool.Pool
	rdb             *redis.Client
	producer        *pkgkafka.Producer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// PostgreSQL connection pool with schema migrations.
	pgCfg := database.DefaultPostgresConfig()
	pgCfg.Host = cfg.PostgresHost
	pgCfg.Port = cfg.PostgresPort
	pgCfg.User = cfg.PostgresUser
	pgCfg.Password = cfg.PostgresPass
	pgCfg.DBName = cfg.PostgresDB
	pgCfg.SSLMode = cfg.PostgresSSL

	pool, err := database.NewPostgresPoolWithLogger(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	// Redis client for cart storage.
	rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("host", cfg.RedisHost),
		slog.Int("db", cfg.RedisDB),
	)

	// Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Tracing.
	var tracingShutdown func(context.Context) error
	if cfg.TracingEnabled {
		traceCfg := tracing.DefaultConfig("storefront")
		traceCfg.Environment = cfg.Environment
		traceCfg.OTLPEndpoint = cfg.OTLPEndpoint
		traceCfg.Enabled = true
		tracingShutdown, err = tracing.InitTracer(ctx, traceCfg)
		if err != nil {
			logger.Warn("tracing init failed, continuing without traces",
				slog.String("error", err.Error()),
			)
			tracingShutdown = nil
		}
	}

	// Upload storage driver.
	store, uploadsDir, err := newStorage(ctx, cfg)
	if err != nil {
		pool.Close()
		return nil, err
	}
	logger.Info("upload storage initialized", slog.String("driver", cfg.StorageDriver))

	// Build the dependency graph.
	productRepo := postgres.NewProductRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	cartRepo := redisrepo.NewCartRepository(rdb, cartTTL)

	eventProducer := event.NewProducer(producer, logger)
	tokens := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	// The cart store is non-critical: the catalog keeps serving without it.
	healthHandler.RegisterNonCritical("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins

	router := handler.NewRouter(handler.RouterConfig{
		Products:       service.NewProductService(productRepo, eventProducer, logger),
		Reviews:        service.NewReviewService(reviewRepo, eventProducer, logger),
		Users:          service.NewUserService(userRepo, tokens, logger),
		Orders:         service.NewOrderService(orderRepo, eventProducer, logger),
		Cart:           service.NewCartService(cartRepo, productRepo, logger),
		Uploads:        service.NewUploadService(store, logger),
		TokenValidate:  tokens.Validate,
		Health:         healthHandler,
		CORS:           corsCfg,
		AuthRateRPS:    cfg.AuthRateRPS,
		AuthRateBurst:  cfg.AuthRateBurst,
		UploadsDir:     uploadsDir,
		TracingEnabled: cfg.TracingEnabled,
	}, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		pool:            pool,
		rdb:             rdb,
		producer:        producer,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// newStorage builds the configured upload storage driver. The second return
// value is the directory served under /uploads/, empty unless the local
// driver is active.
func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, string, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverLocal:
		store, err := local.New(cfg.UploadDir, cfg.PublicBaseURL+"/uploads")
		if err != nil {
			return nil, "", fmt.Errorf("init local storage: %w", err)
		}
		return store, cfg.UploadDir, nil
	case config.StorageDriverMinio:
		store, err := minio.New(ctx, minio.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			PublicURL: cfg.MinioPublicURL,
		})
		if err != nil {
			return nil, "", fmt.Errorf("init minio storage: %w", err)
		}
		return store, "", nil
	case config.StorageDriverMemory:
		return memory.New(cfg.PublicBaseURL), "", nil
	default:
		return nil, "", fmt.Errorf("unknown storage driver: %q", cfg.StorageDriver)
	}
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.tracingShutdown != nil {
		if err := a.tracingShutdown(shutdownCtx); err != nil {
			a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
		}
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return nil
}
