package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/fvelazquezb100/betadona/internal/settlement/job"
	kpub "github.com/fvelazquezb100/betadona/internal/settlement/producer"
	"github.com/fvelazquezb100/betadona/internal/settlement/provider"
	"github.com/fvelazquezb100/betadona/internal/settlement/repo"
	"github.com/fvelazquezb100/betadona/internal/shared/config"
	"github.com/fvelazquezb100/betadona/internal/shared/db"
	"github.com/fvelazquezb100/betadona/internal/shared/kafka"
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

	// Data da jornada: ontem por padrão, ou SETTLEMENT_DATE (YYYY-MM-DD)
	date := os.Getenv("SETTLEMENT_DATE")
	if date == "" {
		date = time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	}

	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	// Producers Kafka para eventos de liquidação
	betWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSettled)
	defer betWriter.Close()
	matchdayWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicMatchdaySettled)
	defer matchdayWriter.Close()

	// Métricas Prometheus por etapa da liquidação
	settled := prometheus.NewCounter(prometheus.CounterOpts{Name: "settlement_bets_settled_total", Help: "apostas liquidadas"})
	skipped := prometheus.NewCounter(prometheus.CounterOpts{Name: "settlement_bets_skipped_total", Help: "apostas puladas"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "settlement_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(settled, skipped, errorsBy)

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return pg.PingContext(ctx)
	})

	store := repo.NewPostgres(pg)
	j := &job.Job{
		Log:         log,
		Provider:    provider.NewFootballClient(cfg.FootballAPIBaseURL, cfg.FootballAPIKey, cfg.FootballLeagueID, log),
		Bets:        store,
		Profiles:    store,
		Publisher:   kpub.NewKafkaPublisher(betWriter, matchdayWriter),
		BudgetCents: cfg.WeeklyBudgetCents,
		OnSettled:   func() { settled.Inc() },
		OnSkipped:   func() { skipped.Inc() },
		OnError:     func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("settlement job starting", zap.String("date", date))
	sum, err := j.Run(ctx, date)
	if err != nil {
		log.Fatal("settlement job failed", zap.String("date", date), zap.Error(err))
	}
	log.Info("settlement job done",
		zap.String("date", sum.Date),
		zap.Int("fixtures", sum.FixturesFound),
		zap.Int("settled", sum.BetsSettled),
		zap.Int("skipped", sum.BetsSkipped),
		zap.Int("profiles_reset", sum.ProfilesReset),
		zap.Int("profiles_failed", sum.ProfilesFailed),
	)
}
