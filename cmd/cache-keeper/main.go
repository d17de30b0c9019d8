package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/swrge/randy/cache"
)

// cache-keeper runs the index repair loop for a cache deployment that
// uses TTLs: it subscribes to Redis expiration events and cleans up the
// id sets the expired values were indexed in. It also exposes the cache
// collection sizes on /metrics.
func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <redis-url> [metrics-addr]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Example: %s redis://localhost:6379/0 :9313\n", os.Args[0])
		os.Exit(1)
	}
	redisURL := os.Args[1]
	metricsAddr := ":9313"
	if len(os.Args) == 3 {
		metricsAddr = os.Args[2]
	}

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("invalid redis url", zap.Error(err))
	}
	client := redis.NewClient(opts)
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatal("redis unreachable", zap.Error(err))
	}

	// Expired events only arrive if the server emits them.
	if err := client.ConfigSet(ctx, "notify-keyspace-events", "Ex").Err(); err != nil {
		log.Warn("could not enable keyspace notifications, assuming preconfigured", zap.Error(err))
	}

	cfg := cache.DefaultConfig()
	cfg.Logger = log
	c := cache.New(client, cfg)

	reg := prometheus.NewRegistry()
	reg.MustRegister(cache.NewCollector(c))
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: metricsAddr, Handler: mux}
	go func() {
		log.Info("serving metrics", zap.String("addr", metricsAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server failed", zap.Error(err))
		}
	}()
	defer srv.Shutdown(context.Background())

	log.Info("listening for expirations",
		zap.String("db", strconv.Itoa(opts.DB)))
	if err := c.ListenExpired(ctx, opts.DB); err != nil && ctx.Err() == nil {
		log.Fatal("expiration listener failed", zap.Error(err))
	}
	log.Info("shutting down")
}
