package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/payhub_backend/internal/core/ports/repositories"
	"github.com/SscSPs/payhub_backend/internal/core/services"
	"github.com/SscSPs/payhub_backend/internal/events"
	"github.com/SscSPs/payhub_backend/internal/handlers"
	"github.com/SscSPs/payhub_backend/internal/middleware"
	"github.com/SscSPs/payhub_backend/internal/platform/config"
	"github.com/SscSPs/payhub_backend/internal/repositories/database/pgsql"
	"github.com/SscSPs/payhub_backend/internal/repositories/memory"
	"github.com/SscSPs/payhub_backend/internal/utils"
	"github.com/SscSPs/payhub_backend/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	memstore "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// @title PayHub API
// @version 1.0
// @description Payments demo backend: ledger, cards, contacts and QR codes.

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	if err := middleware.RegisterValidators(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}

	repos, closeStore, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.Error("Error closing redis client", slog.String("error", cerr.Error()))
			}
		}()
		logger.Info("Redis connection established.")
	}

	publisher, err := buildPublisher(cfg, redisClient)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := publisher.Close(); cerr != nil {
			logger.Error("Error closing event publisher", slog.String("error", cerr.Error()))
		}
	}()

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	container := services.NewServiceContainer(cfg, repos, publisher)

	if cfg.SeedDemoData {
		seedCtx := middleware.WithLogger(ctx, logger)
		if err := services.SeedDemoData(seedCtx, container); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		logger.Info("Demo data ready", slog.String("username", services.DemoUsername))
	}

	loginLimiter, err := buildLimiter(cfg.LoginRateLimit, "payhub_login", redisClient)
	if err != nil {
		return err
	}
	apiLimiter, err := buildLimiter(cfg.APIRateLimit, "payhub_api", redisClient)
	if err != nil {
		return err
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, container, handlers.RouteDeps{
		LoginLimiter: loginLimiter,
		APILimiter:   apiLimiter,
		Posthog:      posthogClient,
	})

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
	return r.Run(":" + cfg.Port)
}

// buildRepositories selects the storage backend. The returned func releases it.
func buildRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewRepositoryProvider(memory.NewStore()), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return repositories.RepositoryProvider{}, nil, fmt.Errorf("initialize database pool: %w", err)
	}
	logger.Info("Database connection pool established.")

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		database.ClosePgxPool(dbPool)
		return repositories.RepositoryProvider{}, nil, err
	}

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

func buildPublisher(cfg *config.Config, redisClient *redis.Client) (events.Publisher, error) {
	switch cfg.EventBus {
	case config.EventBusRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("EVENT_BUS=redis requires REDIS_ADDR")
		}
		return events.NewRedisPublisher(redisClient, cfg.EventStream, 10000), nil
	case config.EventBusKafka:
		return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.EventStream), nil
	default:
		return events.NoopPublisher{}, nil
	}
}

// buildLimiter shares counters through redis when a client is available.
// An empty rate disables the limiter.
func buildLimiter(formatted, prefix string, redisClient *redis.Client) (*limiter.Limiter, error) {
	if formatted == "" {
		return nil, nil
	}
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", formatted, err)
	}

	if redisClient == nil {
		return limiter.New(memstore.NewStoreWithOptions(limiter.StoreOptions{Prefix: prefix}), rate), nil
	}

	store, err := redisstore.NewStoreWithOptions(redisClient, limiter.StoreOptions{Prefix: prefix})
	if err != nil {
		return nil, fmt.Errorf("create redis limiter store: %w", err)
	}
	return limiter.New(store, rate), nil
}
