package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/vodworks/audio-service/internal/cache"
	"github.com/vodworks/audio-service/internal/config"
	"github.com/vodworks/audio-service/internal/logging"
	"github.com/vodworks/audio-service/internal/media"
	"github.com/vodworks/audio-service/internal/metrics"
	"github.com/vodworks/audio-service/internal/middleware"
	"github.com/vodworks/audio-service/internal/pipeline"
	"github.com/vodworks/audio-service/internal/storage"
	"github.com/vodworks/audio-service/internal/tracing"
	"github.com/vodworks/audio-service/internal/transcribe"
)

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Initialize tracing
	if cfg.Tracing.Enabled {
		_, closer, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.JaegerEndpoint)
		if err != nil {
			logger.Fatalf("Failed to initialize tracer: %v", err)
		}
		defer closer.Close()
	}

	ctx := context.Background()

	// Initialize storage
	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		logger.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize transcription client
	jobs, err := transcribe.New(ctx, cfg.Transcribe)
	if err != nil {
		logger.Fatalf("Failed to initialize transcription client: %v", err)
	}

	// Initialize probe cache
	var probeCache pipeline.ProbeCache
	if cfg.Cache.Enabled {
		c, err := cache.NewCache(cfg.Cache.Host, cfg.Cache.Port, cfg.Cache.Password, cfg.Cache.DB)
		if err != nil {
			logger.Fatalf("Failed to connect to probe cache: %v", err)
		}
		defer c.Close()
		probeCache = c
	}

	// Initialize external tools
	ffmpeg := media.NewFFmpeg(cfg.FFmpeg.FFmpegPath, cfg.FFmpeg.FFprobePath)

	pipelines := pipeline.New(pipeline.Config{
		TempDir:  cfg.FFmpeg.TempDir,
		ProbeTTL: cfg.Cache.ProbeTTL,
	}, ffmpeg, store, jobs, probeCache, logger)

	api := &API{pipeline: pipelines}
	router := setupRouter(api, logger)

	// Metrics listener on its own port
	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(cfg.Metrics.Port)
		go func() {
			logger.Infof("Starting metrics server on :%d", cfg.Metrics.Port)
			if err := metricsServer.Start(); err != nil {
				logger.Fatalf("Failed to start metrics server: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Error("Metrics server forced to shutdown")
			}
		}()
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Starting API server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped")
}

func setupRouter(api *API, logger *logging.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/", api.root)
	router.GET("/items/:id", api.readItem)
	router.POST("/probe-audio", api.probeAudio)
	router.POST("/extract-audio", api.extractAudio)
	router.POST("/transcribe-audio", api.transcribeAudio)

	return router
}
