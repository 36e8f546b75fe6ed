package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/cache"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/config"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/events"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/handlers"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/repositories/filestore"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/services"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/utils"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/validator"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.IsDevelopment() {
		logger = utils.NewDevelopmentLogger()
	} else {
		logger = utils.NewDefaultLogger()
	}
	slogLogger := utils.ToSlogLogger(logger)

	store, err := filestore.New(cfg.DataDir, slogLogger)
	if err != nil {
		logger.Error("failed to initialize record store", "error", err, "data_dir", cfg.DataDir)
		os.Exit(1)
	}

	// Redis is optional: without REDIS_URL the exam cache is disabled and
	// every read goes to the file store.
	var cacheService cache.CacheService
	if cfg.RedisURL != "" {
		redisClient, err := pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		cacheService = cache.NewRedisCache(redisClient, slogLogger)
		logger.Info("exam cache enabled")
	}

	publisher := events.NewGoChannelEventPublisher(events.PublisherConfig{
		TopicName: events.NotificationTopic,
		Logger:    slogLogger,
	})
	defer publisher.Close()

	serviceManager := services.NewServiceManager(services.Deps{
		Repo:      store,
		Logger:    slogLogger,
		Validator: validator.New(),
		Cache:     cacheService,
		Publisher: publisher,
	})

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(serviceManager, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port, "data_dir", cfg.DataDir)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
	logger.Info("server stopped")
}
