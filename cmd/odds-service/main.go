package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	ocache "github.com/fvelazquezb100/betadona/internal/odds-service/cache"
	ohttp "github.com/fvelazquezb100/betadona/internal/odds-service/http"
	"github.com/fvelazquezb100/betadona/internal/odds-service/repo"
	"github.com/fvelazquezb100/betadona/internal/odds-service/ws"
	"github.com/fvelazquezb100/betadona/internal/shared/cache"
	"github.com/fvelazquezb100/betadona/internal/shared/config"
	"github.com/fvelazquezb100/betadona/internal/shared/db"
	"github.com/fvelazquezb100/betadona/internal/shared/logger"
	"github.com/fvelazquezb100/betadona/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	redisClient, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Hub WebSocket alimentado pelo Redis Pub/Sub do odds-cache-worker
	hub := ws.NewHub(func(r *http.Request) bool { return true })
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ws.StartRedisSubscriber(ctx, redisClient, hub)

	api := &ohttp.API{
		ReadRepo: &repo.ReadRepo{DB: pg},
		Cache:    ocache.New(redisClient),
		WS:       hub.HandleWS,
	}

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return redisClient.Ping(ctx).Err()
	})

	addr := ":" + cfg.HTTPPort
	log.Info("odds-service listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, api.Router()); err != nil && err != http.ErrServerClosed {
		log.Fatal("odds-service failed", zap.Error(err))
	}
}
