package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sternrassler/gatekeeper-proxy/pkg/access"
	"github.com/Sternrassler/gatekeeper-proxy/pkg/backend"
	"github.com/Sternrassler/gatekeeper-proxy/pkg/driver"
	"github.com/Sternrassler/gatekeeper-proxy/pkg/logging"
	"github.com/Sternrassler/gatekeeper-proxy/pkg/metrics"
	"github.com/Sternrassler/gatekeeper-proxy/pkg/proxy"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.Setup(logging.ConfigFromEnv(os.Getenv))

	// Configuration from environment
	secret := getEnv("PROXY_SECRET", access.DefaultSecret)
	credential := getEnv("PROXY_CREDENTIAL", secret)
	ttl := getEnvDuration("PROXY_TTL", proxy.DefaultConfig().TTL)
	latency := getEnvDuration("BACKEND_LATENCY", backend.DefaultLatency)
	redisURL := getEnv("REDIS_URL", "")
	metricsAddr := getEnv("METRICS_ADDR", "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	compute := backend.NewSimulated(latency, logging.NewLogger(logging.ComponentBackend))

	var b backend.Backend = compute
	var redisClient *redis.Client
	if redisURL != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr: redisURL,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", redisURL).Msg("Failed to connect to Redis")
		}
		log.Info().Str("addr", redisURL).Msg("Connected to Redis origin store")

		origin, err := backend.NewRedis(redisClient, compute, logging.NewLogger(logging.ComponentBackend))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Redis backend")
		}
		b = origin
	}

	cfg := proxy.DefaultConfig()
	cfg.TTL = ttl
	cfg.Secret = secret

	p, err := proxy.New(b, credential, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create proxy")
	}
	defer p.Close()

	if metricsAddr != "" {
		srv := &http.Server{
			Addr:    metricsAddr,
			Handler: newMux(redisClient, p),
		}
		go func() {
			log.Info().Str("addr", metricsAddr).Msg("Starting metrics server")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("Metrics server failed")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	plan := driver.DefaultPlan()
	results, err := driver.Run(ctx, p, plan, func(r driver.Result) {
		if r.Caller == driver.FinalCaller {
			fmt.Println()
			fmt.Println(r.Response)
			return
		}
		fmt.Printf("%s - %s\n", r.Caller, r.Response)
	})
	if err != nil {
		log.Error().Err(err).Int("completed", len(results)).Msg("Demo failed")
		return
	}

	stats := p.Stats()
	log.Info().
		Int64("hits", stats.Hits).
		Int64("misses", stats.Misses).
		Int64("backend_calls", stats.BackendCalls).
		Int("entries", stats.Entries).
		Msg("Proxy statistics")
}

// newMux wires the operational endpoints.
func newMux(redisClient *redis.Client, p *proxy.Proxy) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/ready", readyHandler(redisClient))
	mux.HandleFunc("/stats", statsHandler(p))
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

// readyHandler reports 503 when the Redis origin store is configured but
// unreachable. Without Redis the proxy is always ready.
func readyHandler(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := redisClient.Ping(ctx).Err(); err != nil {
				log.Warn().Err(err).Msg("Readiness check failed")
				http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK")
	}
}

func statsHandler(p *proxy.Proxy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(p.Stats()); err != nil {
			log.Error().Err(err).Msg("Failed to write stats")
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Str("value", value).Msg("Invalid duration - using default")
		return defaultValue
	}
	return d
}
