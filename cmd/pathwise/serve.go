package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/pathwise/pathwise"
	httpAdapter "github.com/pathwise/pathwise/internal/adapters/http"
	"github.com/pathwise/pathwise/internal/config"
	"github.com/pathwise/pathwise/internal/evidence"
	"github.com/pathwise/pathwise/internal/logging"
	fileAdapter "github.com/pathwise/pathwise/pkg/adapters/file"
	"github.com/pathwise/pathwise/pkg/adapters/memory"
	redisAdapter "github.com/pathwise/pathwise/pkg/adapters/redis"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the Pathwise engine in server mode, exposing a JSON API over HTTP. Configuration comes from the environment (and .env if present).`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(); err != nil {
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	// Best effort; absence of a .env file is normal.
	_ = godotenv.Load()
	cfg := config.Load()
	logger := logging.New(logging.ParseLevel(cfg.LogLevel))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	opts := []pathwise.Option{
		pathwise.WithLogger(logger),
		pathwise.WithEntryNode(cfg.EntryNode),
		pathwise.WithHubNode(cfg.HubNode),
		pathwise.WithMetricsRegisterer(registry),
	}

	scenes, err := fileAdapter.LoadSceneSkillMap(cfg.SceneSkillsPath)
	if err != nil {
		return fmt.Errorf("failed to load scene-skill map: %w", err)
	}
	opts = append(opts, pathwise.WithSceneSkills(scenes))

	if cfg.CareersPath != "" {
		careers, err := fileAdapter.LoadCareerCatalog(cfg.CareersPath)
		if err != nil {
			return fmt.Errorf("failed to load career catalog: %w", err)
		}
		opts = append(opts, pathwise.WithCareerPaths(careers))
	}

	if cfg.EvidenceCap > 0 || cfg.RetentionDays > 0 {
		storeCfg := evidence.DefaultConfig()
		if cfg.EvidenceCap > 0 {
			storeCfg.MaxEntries = cfg.EvidenceCap
		}
		if cfg.RetentionDays > 0 {
			storeCfg.RetentionWindow = time.Duration(cfg.RetentionDays) * 24 * time.Hour
		}
		opts = append(opts, pathwise.WithEvidenceConfig(storeCfg))
	}

	switch cfg.StoreBackend {
	case "memory":
		opts = append(opts, pathwise.WithBlobStore(memory.NewStore()))
	case "file":
		opts = append(opts, pathwise.WithBlobStore(fileAdapter.NewStore(cfg.StateDir)))
	case "redis":
		client := backend.NewClient(&backend.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
		}
		var storeOpts []redisAdapter.StoreOption
		if cfg.RedisTTL > 0 {
			storeOpts = append(storeOpts, redisAdapter.WithTTL(cfg.RedisTTL))
		}
		store := redisAdapter.NewStoreFromClient(client, storeOpts...)
		queue := redisAdapter.NewQueueFromClient(client)
		opts = append(opts, pathwise.WithBlobStore(store), pathwise.WithSyncQueue(queue))
	default:
		return fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	engine, err := pathwise.New(cfg.GraphPath, opts...)
	if err != nil {
		return err
	}

	handler := httpAdapter.NewHandler(engine,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting pathwise server", "addr", srv.Addr, "graph", cfg.GraphPath, "backend", cfg.StoreBackend)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err

	case sig := <-shutdown:
		logger.Info("shutdown started", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("graceful shutdown did not complete, forcing close", "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("failed to close server: %w", err)
			}
		}
		logger.Info("pathwise server stopped")
	}
	return nil
}
