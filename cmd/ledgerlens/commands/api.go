package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ozgurk/ledgerlens/internal/api"
	"github.com/ozgurk/ledgerlens/internal/api/handlers"
	"github.com/ozgurk/ledgerlens/internal/ledger"
	"github.com/ozgurk/ledgerlens/internal/scheduler"
	"github.com/ozgurk/ledgerlens/internal/scheduler/jobs"
	"github.com/ozgurk/ledgerlens/internal/stats"
	"github.com/ozgurk/ledgerlens/pkg/config"
	"github.com/ozgurk/ledgerlens/pkg/database"
	"github.com/ozgurk/ledgerlens/pkg/logger"
	"github.com/ozgurk/ledgerlens/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the analytics API server",
	Long: `Starts the REST API server in front of the aggregation engine.

Endpoints:
  GET  /health                        - health check with pool stats
  GET  /api/stats/summary             - sales/purchases/VAT card
  GET  /api/stats/trend               - bucketed inflow/outflow series
  GET  /api/stats/balance/{accountID} - derived account balance
  GET  /api/stats/accounts            - all accounts with balances
  GET  /api/stats/top/{kind}          - top-N customers|suppliers|products
  GET  /api/stats/stock               - derived per-product stock view

Example:
  go run ./cmd/ledgerlens api
  go run ./cmd/ledgerlens api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (default from PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)
	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Connect to the backing store
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Connected to database")

	// 4. Connect to Redis (optional response cache)
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	cache := redis.NewCache(redisClient, "ledgerlens", log)

	// 5. Wire the engine
	repo := ledger.NewRepository(db.Pool)
	svc := stats.New(repo, log)

	// 6. Create handlers and router
	statsHandler := handlers.NewStatsHandler(svc, cache, cfg, log)
	healthHandler := handlers.NewHealthHandler(db, log)
	router := api.NewRouter(statsHandler, healthHandler, log, cfg.Ledger.RateLimitRPS)

	// 7. Create server
	server := api.New(cfg, log, router)

	// 8. Start the cache warm scheduler when Redis is on
	var sched *scheduler.Scheduler
	if redisClient.Enabled() {
		sched = scheduler.New(log)
		if err := sched.AddJob(jobs.NewCacheWarmJob(svc, cache, cfg, log)); err != nil {
			return fmt.Errorf("schedule cache warm job: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// 9. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started")
	fmt.Printf("Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
