package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"coindash/internal/client/coingecko"
	"coindash/internal/config"
	cronrunner "coindash/internal/cron"
	"coindash/internal/db"
	"coindash/internal/handler"
	"coindash/internal/logger"
	"coindash/internal/models"
	gormrepository "coindash/internal/repository/gorm"
	"coindash/internal/service"

	_ "coindash/docs"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("COINDASH_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("COINDASH_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Driver, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	cgHTTP := &http.Client{Timeout: cfg.CoinGecko.Timeout}
	cgClient := coingecko.NewClient(cgHTTP, cfg.CoinGecko.BaseURL)
	store := gormrepository.New(dbConn.Gorm)

	refreshService := &service.RefreshService{
		Store:          store,
		CG:             cgClient,
		Logger:         logger,
		VsCurrency:     cfg.CoinGecko.VsCurrency,
		MarketPageSize: cfg.Refresh.MarketPageSize,
		MoversSize:     cfg.Refresh.MoversSize,
	}
	queryService := &service.QueryService{Repo: store}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	coinHandler := &handler.CoinHandler{Query: queryService, Refresh: refreshService, Logger: logger}
	coinHandler.Register(engine)
	rankingHandler := &handler.RankingHandler{Query: queryService, Refresh: refreshService, Logger: logger}
	rankingHandler.Register(engine)
	globalHandler := &handler.GlobalHandler{Query: queryService, Refresh: refreshService, Logger: logger}
	globalHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Warm the global snapshot once before the timer takes over, so the
	// dashboard has data on first load. Failure here is not fatal.
	if _, err := refreshService.RefreshGlobal(ctx); err != nil {
		logger.Warn("initial global refresh failed (continuing)", zap.Error(err))
	} else {
		logger.Info("initial global refresh complete")
	}

	cronRunner := cronrunner.New(logger, ctx)
	_, err = cronRunner.Add(cfg.Cron.GlobalSnapshot, func(ctx context.Context) {
		if _, err := refreshService.RefreshGlobal(ctx); err != nil {
			logger.Warn("cron global refresh failed", zap.Error(err))
			return
		}
		logger.Info("cron global refresh ok")
	})
	if err != nil {
		logger.Warn("cron register global refresh failed", zap.Error(err))
	}

	if spec := strings.TrimSpace(cfg.Cron.Rankings); spec != "" {
		_, err = cronRunner.Add(spec, func(ctx context.Context) {
			for _, name := range models.RankingNames {
				result, err := refreshService.RefreshRanking(ctx, name)
				if err != nil {
					logger.Warn("cron ranking refresh failed",
						zap.String("ranking", name), zap.Error(err))
					continue
				}
				logger.Info("cron ranking refresh ok",
					zap.String("ranking", name),
					zap.Int("entries", len(result.Entries)),
				)
			}
		})
		if err != nil {
			logger.Warn("cron register ranking refresh failed", zap.Error(err))
		}
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
