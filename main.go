package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akjilan/digital-ecommerce/common/auth"
	apperrors "github.com/akjilan/digital-ecommerce/common/errors"
	"github.com/akjilan/digital-ecommerce/common/logger"
	commonmw "github.com/akjilan/digital-ecommerce/common/middleware"
	"github.com/akjilan/digital-ecommerce/controllers"
	"github.com/akjilan/digital-ecommerce/database"
	"github.com/akjilan/digital-ecommerce/models"
	aws_pkg "github.com/akjilan/digital-ecommerce/pkg/aws"
	"github.com/akjilan/digital-ecommerce/providers"
	"github.com/akjilan/digital-ecommerce/repository"
	"github.com/akjilan/digital-ecommerce/routes"
	"github.com/akjilan/digital-ecommerce/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	// --- Logging (CloudWatch tee is optional) ---
	env := os.Getenv("APP_ENV")
	cwLogs, err := aws_pkg.NewCloudWatchLogsClient(context.Background(), routes.ServiceName)
	var log *zap.Logger
	if err == nil && cwLogs.IsEnabled() {
		log = logger.InitializeWithWriter(env, cwLogs)
	} else {
		log = logger.Initialize(env)
		if err != nil {
			log.Warn("CloudWatch Logs init failed (non-fatal)", zap.Error(err))
		}
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal("Config load failed", zap.Error(err))
	}

	// --- CloudWatch metrics (non-fatal) ---
	metricsClient, err := aws_pkg.NewMetricsClient(context.Background())
	if err != nil {
		log.Warn("CloudWatch metrics client init failed (non-fatal)", zap.Error(err))
	}

	// --- Database ---
	if err := database.Connect(cfg.Postgres, log, &models.Product{}, &models.ChatMessage{}); err != nil {
		log.Fatal("DB connection failed", zap.Error(err))
	}

	// --- Redis (optional) ---
	redisClient, err := database.NewRedisClient(context.Background(), cfg.RedisURL, log)
	if err != nil {
		log.Warn("Redis unavailable, catalog cache disabled", zap.Error(err))
		redisClient = nil
	}

	// --- Assistant gateway ---
	gateway, err := providers.NewGateway(context.Background(), cfg.Gateway)
	if err != nil {
		log.Fatal("Assistant gateway init failed", zap.Error(err))
	}
	log.Info("Assistant gateway ready", zap.String("provider", gateway.Name()))

	// --- Dependency injection ---
	productRepo := repository.NewGormProductRepository(database.DB)
	chatRepo := repository.NewGormChatRepository(database.DB)

	catalogService := services.NewCatalogService(productRepo, log)
	selector := services.NewContextSelector(productRepo, chatRepo, cfg.ChatContextTurns, log)
	handler := services.NewResponseHandler(gateway, chatRepo, metricsClient, cfg.AssistantTimeout, log)
	assistantService := services.NewAssistantService(selector, handler, chatRepo, cfg.ChatHistoryLimit, log)

	cache := controllers.NewCacheManager(redisClient, cfg.CacheTTL, metricsClient, log)
	var catalogCache controllers.CatalogCache
	if cache.Enabled() {
		catalogCache = cache
	}
	catalogController := controllers.NewCatalogController(catalogService, catalogCache, log)
	chatController := controllers.NewChatController(assistantService, controllers.NewRequestValidator(), log)

	// --- HTTP router ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(commonmw.RequestID())
	r.Use(commonmw.RequestLogger(log))
	r.Use(commonmw.SecurityHeaders())
	r.Use(cors.New(commonmw.CORSConfig(cfg.AllowedOrigins)))
	r.Use(commonmw.MetricsMiddleware(metricsClient, routes.ServiceName))
	r.Use(apperrors.ErrorMiddleware())

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.RegisterRoutes(r, catalogController, chatController, auth.NewTokenValidator(cfg.JWTSecret), cfg.ChatRatePerMinute)

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Info("Storefront Service started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Initiating graceful shutdown...")
	httpShutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(httpShutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Redis close error", zap.Error(err))
		}
	}

	if err := database.Close(); err != nil {
		log.Error("Database close error", zap.Error(err))
	}

	log.Info("Storefront Service stopped gracefully")
}
