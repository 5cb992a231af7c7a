package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	ocache "github.com/fvelazquezb100/betadona/internal/odds-cache/cache"
	"github.com/fvelazquezb100/betadona/internal/odds-cache/provider"
	"github.com/fvelazquezb100/betadona/internal/odds-cache/pubsub"
	"github.com/fvelazquezb100/betadona/internal/odds-cache/repo"
	"github.com/fvelazquezb100/betadona/internal/odds-cache/worker"
	sharedcache "github.com/fvelazquezb100/betadona/internal/shared/cache"
	"github.com/fvelazquezb100/betadona/internal/shared/config"
	"github.com/fvelazquezb100/betadona/internal/shared/db"
	"github.com/fvelazquezb100/betadona/internal/shared/logger"
	"github.com/fvelazquezb100/betadona/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	redisClient, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	// Métricas Prometheus do ciclo de atualização de odds
	fetched := prometheus.NewCounter(prometheus.CounterOpts{Name: "odds_cache_fetches_total", Help: "buscas no provedor"})
	cached := prometheus.NewCounter(prometheus.CounterOpts{Name: "odds_cache_sets_total", Help: "sets no cache"})
	persist := prometheus.NewCounter(prometheus.CounterOpts{Name: "odds_cache_db_writes_total", Help: "upserts no banco"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "odds_cache_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(fetched, cached, persist, errorsBy)

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return redisClient.Ping(ctx).Err()
	})

	w := &worker.Worker{
		Log:         log,
		Provider:    provider.NewOddsClient(cfg.OddsAPIBaseURL, cfg.OddsAPIKey, cfg.OddsSportKey, log),
		Repo:        repo.NewPostgres(pg),
		Cache:       ocache.NewRedisCache(redisClient, 90*time.Second),
		Broadcaster: pubsub.NewRedisBroadcaster(redisClient),
		Interval:    time.Minute,
		OnFetched:   func() { fetched.Inc() },
		OnCached:    func() { cached.Inc() },
		OnPersist:   func() { persist.Inc() },
		OnError:     func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("odds-cache-worker started")
	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("worker stopped with error", zap.Error(err))
	}
	log.Info("odds-cache-worker stopped")
}
