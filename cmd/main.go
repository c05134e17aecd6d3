package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	productapp "github.com/muhammadheryan/product-console/application/product"
	"github.com/muhammadheryan/product-console/cmd/config"
	redisclient "github.com/muhammadheryan/product-console/cmd/redis"
	_ "github.com/muhammadheryan/product-console/docs"
	productRepo "github.com/muhammadheryan/product-console/repository/product"
	sessionRepo "github.com/muhammadheryan/product-console/repository/session"
	"github.com/muhammadheryan/product-console/transport"
	"github.com/muhammadheryan/product-console/utils/logger"
	"github.com/muhammadheryan/product-console/utils/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// @title PRODUCT CONSOLE API
// @version 1.0
// @description Product management console API Documentation
// @host localhost:8080
// @BasePath /
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server",
		zap.String("env", cfg.Environment),
		zap.String("product_api", cfg.ProductAPI.BaseURL),
	)

	// Session state lives in redis when configured, in memory otherwise
	var SessionRepo sessionRepo.SessionRepository
	if cfg.Redis.Host != "" {
		if err := redisclient.New(cfg); err != nil {
			logger.Fatal("err connect redis", zap.Error(err))
		}
		defer func() {
			_ = redisclient.Close()
		}()
		SessionRepo = sessionRepo.NewRedisRepository(cfg.Session.TTL)
	} else {
		logger.Warn("REDIS_HOST not set, keeping sessions in memory")
		SessionRepo = sessionRepo.NewMemoryRepository(cfg.Session.TTL)
	}

	// Initialize repositories
	ProductRepo := productRepo.NewProductRepository(
		cfg.ProductAPI.BaseURL,
		productRepo.NewHTTPClient(cfg.ProductAPI.Timeout),
		metrics.New(prometheus.DefaultRegisterer),
	)

	// Initialize application layers
	ProductApp := productapp.NewProductApp(ProductRepo, SessionRepo)

	httpTransport := transport.NewTransport(cfg, ProductApp)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("err shutdown server", zap.Error(err))
	}
}
