// cmd/match-worker/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"match-workers/internal/common/config"
	"match-workers/internal/common/database"
	"match-workers/internal/common/logger"
	"match-workers/internal/common/metrics"
	"match-workers/internal/common/observability"
	"match-workers/internal/matching/embedding"
	"match-workers/internal/matching/engine"
	"match-workers/internal/store"
	"match-workers/internal/workers/backfill"
	"match-workers/internal/workers/recompute"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting match worker...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Wire the scoring pipeline ---
	db := store.New(pg.GetDB(), log)

	provider := embedding.NewHTTPProvider(cfg.Embedding)
	vectors := embedding.NewCache(
		provider,
		db,
		redisClient.GetClient(),
		time.Duration(cfg.Embedding.CacheTTL)*time.Second,
		cfg.Embedding.Enabled,
		log,
	)

	scorer := engine.New(db, vectors, log)

	recomputeWorker := recompute.New(
		recompute.ConfigFrom(cfg.Worker.Recompute, cfg.Worker.Backfill.WindowDays),
		db, db, scorer, log,
	)
	backfillWorker := backfill.New(backfill.ConfigFrom(cfg.Worker.Backfill), db, scorer, log)

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			if err := pg.Ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
		if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Recompute ticker loop ---
	interval := time.Duration(cfg.Worker.Recompute.IntervalSec) * time.Second
	if interval <= 0 {
		interval = 60 * time.Second
	}
	if cfg.Worker.Recompute.Enabled {
		go runRecomputeLoop(ctx, recomputeWorker, obs, interval, log)
	} else {
		log.Info("recompute worker disabled", nil)
	}

	// --- Nightly backfill loop ---
	if cfg.Worker.Backfill.Enabled {
		go runBackfillLoop(ctx, backfillWorker, obs, cfg.Worker.Backfill.HourUTC, log)
	} else {
		log.Info("backfill worker disabled", nil)
	}

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	cancel()
	time.Sleep(time.Second)
	zapLog.Info("Match worker stopped")
}

// runRecomputeLoop drives queue invocations on a fixed tick. An invocation
// that fails (claim error, connection loss) only logs; the next tick retries.
func runRecomputeLoop(ctx context.Context, w *recompute.Worker, obs *observability.Observability, interval time.Duration, log logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("recompute worker started", map[string]interface{}{"interval": interval.String()})

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			_, err := w.Run(ctx)
			elapsed := time.Since(start)

			metrics.InvocationDuration.WithLabelValues("recompute").Observe(elapsed.Seconds())
			obs.RecordInvocationDuration(ctx, "recompute", elapsed)
			if err != nil {
				obs.RecordInvocation(ctx, "recompute", "failure")
				log.Error("recompute invocation failed", map[string]interface{}{"error": err.Error()})
				continue
			}
			obs.RecordInvocation(ctx, "recompute", "success")
		}
	}
}

// runBackfillLoop fires the full recompute once per day at the configured
// UTC hour. The hour check runs every minute so a restart near the boundary
// cannot skip a night.
func runBackfillLoop(ctx context.Context, w *backfill.Worker, obs *observability.Observability, hourUTC int, log logger.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	log.Info("backfill worker started", map[string]interface{}{"hourUTC": hourUTC})

	var lastRunDay string
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now().UTC()
			day := now.Format("2006-01-02")
			if now.Hour() != hourUTC || day == lastRunDay {
				continue
			}
			lastRunDay = day

			start := time.Now()
			_, err := w.Run(ctx)
			elapsed := time.Since(start)

			metrics.InvocationDuration.WithLabelValues("backfill").Observe(elapsed.Seconds())
			obs.RecordInvocationDuration(ctx, "backfill", elapsed)
			if err != nil {
				obs.RecordInvocation(ctx, "backfill", "failure")
				log.Error("backfill run failed", map[string]interface{}{"error": err.Error()})
				continue
			}
			obs.RecordInvocation(ctx, "backfill", "success")
		}
	}
}
