package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appsync "github.com/stockflow/backend/internal/application/sync"
	"github.com/stockflow/backend/internal/infrastructure/cache"
	"github.com/stockflow/backend/internal/infrastructure/config"
	"github.com/stockflow/backend/internal/infrastructure/erp"
	"github.com/stockflow/backend/internal/infrastructure/logger"
	"github.com/stockflow/backend/internal/infrastructure/persistence"
	"github.com/stockflow/backend/internal/interfaces/http/handler"
	"github.com/stockflow/backend/internal/interfaces/http/middleware"
	"github.com/stockflow/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	repo := persistence.NewSyncRepository(db.DB)

	erpClient, err := erp.NewClient(erp.NewConfig(
		cfg.ERP.BaseURL,
		cfg.ERP.AccountID,
		cfg.ERP.APIKeyID,
		cfg.ERP.APISecret,
	))
	if err != nil {
		if cfg.ERP.HasCredentials() {
			log.Fatal("Failed to configure ERP client", zap.Error(err))
		}
		// Missing credentials are reported per request instead.
		log.Warn("ERP client not configured", zap.Error(err))
	}

	var lock *cache.SyncLock
	if cfg.Redis.Host != "" {
		lock, err = cache.NewSyncLockFromAddr(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Info("Sync run lock enabled", zap.String("redis", cfg.Redis.Addr()))
	} else {
		log.Info("Redis not configured, sync run lock disabled")
	}

	service := appsync.NewService(erpClient, repo, lock, log, appsync.Options{
		PageSize:          cfg.ERP.PageSize,
		VendorCap:         cfg.ERP.VendorCap,
		ProductCap:        cfg.ERP.ProductCap,
		PurchaseOrderCap:  cfg.ERP.PurchaseOrderCap,
		OrderWindowMonths: cfg.ERP.OrderWindowMonths,
	})

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.CORS(middleware.CORSConfig{
			AllowOrigins: cfg.HTTP.CORSAllowOrigins,
			AllowMethods: cfg.HTTP.CORSAllowMethods,
			AllowHeaders: cfg.HTTP.CORSAllowHeaders,
			MaxAge:       12 * time.Hour,
		}),
	)

	r := router.New(engine)
	r.Register(
		handler.NewSystemHandler(db, cfg.App.Name, cfg.App.Env),
		handler.NewSyncHandler(service, &cfg.ERP, log),
	)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
