package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/fvelazquezb100/betadona/internal/bet-service/budget"
	bhttp "github.com/fvelazquezb100/betadona/internal/bet-service/http"
	kpub "github.com/fvelazquezb100/betadona/internal/bet-service/producer"
	"github.com/fvelazquezb100/betadona/internal/bet-service/repo"
	"github.com/fvelazquezb100/betadona/internal/shared/config"
	"github.com/fvelazquezb100/betadona/internal/shared/db"
	"github.com/fvelazquezb100/betadona/internal/shared/kafka"
	"github.com/fvelazquezb100/betadona/internal/shared/logger"
	"github.com/fvelazquezb100/betadona/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, _ := logger.New(cfg.ServiceName, cfg.Env)
	defer log.Sync()

	// Postgres
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg", zap.Error(err))
	}
	defer pg.Close()

	// Kafka writer (topic bet_placed)
	writer := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetPlaced)
	defer writer.Close()

	// deps
	rules := budget.Rules{MaxBetsPerMatchday: cfg.MaxBetsPerMatchday}
	repository := repo.NewPostgres(pg, rules)
	publ := kpub.NewKafkaPublisher(writer, cfg.TopicBetPlaced)

	// HTTP público
	api := bhttp.NewServer(log, repository, publ)
	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: api.Router(),
	}

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return pg.PingContext(ctx)
	})

	log.Info("bet-service listening", zap.String("addr", apiSrv.Addr))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
