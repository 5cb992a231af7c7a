package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/fvelazquezb100/betadona/internal/notifier/consumer"
	"github.com/fvelazquezb100/betadona/internal/notifier/repo"
	"github.com/fvelazquezb100/betadona/internal/shared/config"
	"github.com/fvelazquezb100/betadona/internal/shared/db"
	"github.com/fvelazquezb100/betadona/internal/shared/kafka"
	"github.com/fvelazquezb100/betadona/internal/shared/logger"
	"github.com/fvelazquezb100/betadona/internal/shared/metrics"
)

// dlqWriter adapta o writer Kafka à interface DLQ do processor
type dlqWriter struct{ w *kafkago.Writer }

func (d dlqWriter) Send(ctx context.Context, key string, value []byte) error {
	return kafka.WriteJSON(ctx, d.w, key, value)
}

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg connect", zap.Error(err))
	}
	defer pg.Close()

	// Kafka consumer: consome eventos bet_settled para gerar notificações
	reader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicBetSettled, "settlement-notifier")
	defer reader.Close()

	var dlq consumer.DLQ
	if cfg.TopicBetSettledDLQ != "" {
		w := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSettledDLQ)
		defer w.Close()
		dlq = dlqWriter{w: w}
	}

	consumed := prometheus.NewCounter(prometheus.CounterOpts{Name: "notifier_messages_consumed_total", Help: "mensagens consumidas"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "notifier_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(consumed, errorsBy)

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return pg.PingContext(ctx)
	})

	proc := &consumer.Processor{
		Log:        log,
		Store:      repo.NewPostgres(pg),
		DLQ:        dlq,
		OnConsumed: func() { consumed.Inc() },
		OnError:    func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("settlement-notifier started", zap.String("consume", cfg.TopicBetSettled))

	// Loop principal: consome eventos do Kafka e grava notificações
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("settlement-notifier stopped")
				return
			}
			log.Warn("kafka read", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		if err := proc.ProcessMessage(ctx, msg.Key, msg.Value); err != nil {
			log.Error("process notification", zap.Error(err))
			// Backoff simples para evitar flood em caso de erro
			time.Sleep(500 * time.Millisecond)
		}
	}
}
