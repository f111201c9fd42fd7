// In file: cmd/gateway/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dileep-u-k/mcp-gateway/internal/auth"
	"github.com/dileep-u-k/mcp-gateway/internal/logging"
	"github.com/dileep-u-k/mcp-gateway/internal/mcp"
	"github.com/dileep-u-k/mcp-gateway/internal/metrics"
	"github.com/dileep-u-k/mcp-gateway/internal/model"
	"github.com/dileep-u-k/mcp-gateway/internal/ratelimit"
	"github.com/dileep-u-k/mcp-gateway/internal/store"
	"github.com/dileep-u-k/mcp-gateway/internal/tools"
)

// main is the entry point for the application.
// Its primary role is the "Composition Root": it loads configuration,
// initializes all services, injects dependencies, and starts the server.
func main() {
	buildInfo := GetBuildInfo()

	// 1. LOAD CONFIGURATION
	cfg, err := LoadConfig()
	if err != nil {
		bootLog := logging.New("info", "debug")
		bootLog.Fatal().Err(err).Msg("❌ FATAL: Configuration error")
	}
	log := logging.New(cfg.LogLevel, cfg.GinMode)
	log.Info().Str("version", buildInfo.Version).Str("commit", buildInfo.GitCommit).Msg("🚀 Starting MCP Gateway")
	log.Info().Msg("✅ Configuration loaded.")

	// 2. INITIALIZE SERVICES
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatal().Err(err).Msg("❌ FATAL: Could not connect to Redis")
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ FATAL: Could not open database")
	}

	authManager := auth.NewManager(st, cfg.JWTSecret)
	collectors := metrics.New()

	registry := initializeRegistry(cfg, collectors, log)
	engine := mcp.NewEngine(registry, mcp.Config{
		MaxConcurrentTools: cfg.Engine.MaxConcurrentTools,
		ToolTimeout:        cfg.Engine.ToolTimeout(),
	}, log)

	generator := initializeGenerator(cfg, log)
	limiter := ratelimit.NewLimiter(rdb, log)
	gatewayHandler := NewGatewayHandler(generator, engine, registry, authManager, st, rdb, cfg, log)
	log.Info().Msg("✅ All services initialized.")

	// 3. SETUP AND RUN THE WEB SERVER
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestMetrics(collectors))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Engine.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	minute := time.Minute
	router.GET("/", gatewayHandler.HandleRoot)
	router.GET("/status", gatewayHandler.HandleStatus)
	router.GET("/metrics", gin.WrapH(collectors.Handler()))

	router.POST("/auth/register",
		limiter.Middleware("register", cfg.Engine.RateLimits.RegisterPerMinute, minute),
		gatewayHandler.HandleRegister)
	router.POST("/auth/login",
		limiter.Middleware("login", cfg.Engine.RateLimits.LoginPerMinute, minute),
		gatewayHandler.HandleLogin)

	router.GET("/tools", auth.OptionalAuth(authManager), gatewayHandler.HandleTools)
	router.POST("/tools/:name/toggle", auth.RequireAuth(authManager), gatewayHandler.HandleToggleTool)
	router.POST("/ask",
		auth.RequireAuth(authManager),
		limiter.Middleware("ask", cfg.Engine.RateLimits.AskPerMinute, minute),
		gatewayHandler.HandleAsk)
	router.GET("/history", auth.RequireAuth(authManager), gatewayHandler.HandleHistory)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	runServerWithGracefulShutdown(srv, log)
}

// initializeRegistry creates and registers all builtin tools.
func initializeRegistry(cfg *AppConfig, collectors *metrics.Metrics, log zerolog.Logger) *tools.Registry {
	registry := tools.NewRegistry()
	registry.SetObserver(collectors.ObserveTool)

	registry.Register(tools.NewWeatherTool(cfg.OpenWeatherAPIKey))
	registry.Register(tools.NewCryptoTool())
	registry.Register(tools.NewWikiTool())
	registry.Register(tools.NewSearchTool())
	registry.Register(tools.NewJokeTool())
	registry.Register(tools.NewNewsTool(cfg.NewsAPIKey))
	registry.Register(tools.NewCalculatorTool())

	log.Info().Int("tools", registry.Count()).Msg("✅ Tool registry initialized.")
	return registry
}

// initializeGenerator selects the generation backend. A configured Gemini key
// selects the live model; otherwise the builtin pattern generator serves.
func initializeGenerator(cfg *AppConfig, log zerolog.Logger) model.Generator {
	if cfg.GeminiAPIKey == "" {
		log.Info().Msg("✅ Pattern generator initialized (no GEMINI_API_KEY set).")
		return model.NewPatternGenerator()
	}

	gemini, err := model.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Warn().Err(err).Msg("⚠️ Gemini unavailable, falling back to pattern generator")
		return model.NewPatternGenerator()
	}
	log.Info().Str("model", cfg.GeminiModel).Msg("✅ Gemini generator initialized.")
	return gemini
}

// requestMetrics records latency and status for every handled request.
func requestMetrics(collectors *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		collectors.ObserveRequest(route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(srv *http.Server, log zerolog.Logger) {
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("👂 Gateway is listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("❌ Listen error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("❌ Server shutdown failed")
	}

	log.Info().Msg("👋 Server exited gracefully.")
}
