package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"shopadmin/internal/auth"
	"shopadmin/internal/company"
	"shopadmin/internal/config"
	"shopadmin/internal/contacts"
	"shopadmin/internal/faq"
	"shopadmin/internal/homepage"
	"shopadmin/internal/infrastructure/logger"
	"shopadmin/internal/infrastructure/mysql"
	"shopadmin/internal/infrastructure/redis"
	"shopadmin/internal/infrastructure/storage"
	"shopadmin/internal/middleware"
	"shopadmin/internal/order"
	"shopadmin/internal/product"
	"shopadmin/internal/review"
	"shopadmin/internal/server"
	"shopadmin/internal/textpage"
	"shopadmin/internal/upload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.Database.MigrateOnStart {
		if err := mysql.Migrate(cfg.Database, zapLogger); err != nil {
			zapLogger.Fatal("running migrations", zap.Error(err))
		}
	}

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	store, err := storage.New(context.Background(), cfg.Storage)
	if err != nil {
		zapLogger.Fatal("configuring storage", zap.Error(err))
	}
	zapLogger.Info("storage ready", zap.String("backend", cfg.Storage.Backend))

	var uploadsDir string
	if local, ok := store.(*storage.Local); ok {
		uploadsDir = local.Dir()
	}

	var (
		limiter middleware.Counter = middleware.NewMemoryCounter()
		cache   server.RedisPinger
	)
	if cfg.Redis.URL != "" {
		rdb, err := redis.Connect(cfg.Redis.URL)
		if err != nil {
			zapLogger.Warn("redis unavailable, using in-memory rate limiter", zap.Error(err))
		} else {
			defer rdb.Close()
			limiter, cache = rdb, rdb
		}
	}

	images := upload.NewImageManager(store, zapLogger)
	limits := upload.LimitsFromConfig(cfg.Upload)
	authCtrl, verifier := auth.NewModule(cfg.Auth, zapLogger)

	router := server.NewRouter(server.RouterDeps{
		Controllers: server.Controllers{
			Auth:        authCtrl,
			Products:    product.NewModule(db, images, limits, zapLogger),
			Company:     company.NewModule(db, images, limits, zapLogger),
			Contacts:    contacts.NewModule(db, zapLogger),
			FAQ:         faq.NewModule(db, limits, zapLogger),
			Homepage:    homepage.NewModule(db, images, limits, zapLogger),
			Orders:      order.NewModule(db, cfg.Order, zapLogger),
			Reviews:     review.NewModule(db, zapLogger),
			Partnership: textpage.NewPartnershipModule(db, limits, zapLogger),
			Payment:     textpage.NewPaymentModule(db, limits, zapLogger),
		},
		Verifier:       verifier,
		Limiter:        limiter,
		RateLimit:      cfg.RateLimit,
		Origins:        cfg.Server.CORSAllowedOrigins,
		TrustedProxies: cfg.Server.TrustedProxies,
		UploadsDir:     uploadsDir,
		DB:             db,
		Redis:          cache,
		Logger:         zapLogger,
	})

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
