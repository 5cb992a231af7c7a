package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/fvelazquezb100/betadona/internal/provider-simulator/sim"
	"github.com/fvelazquezb100/betadona/internal/shared/config"
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

	// Métricas Prometheus das requisições simuladas
	fixturesReq := prometheus.NewCounter(prometheus.CounterOpts{Name: "sim_fixtures_requests_total", Help: "requisições de resultados"})
	oddsReq := prometheus.NewCounter(prometheus.CounterOpts{Name: "sim_odds_requests_total", Help: "requisições de odds"})
	prometheus.MustRegister(fixturesReq, oddsReq)

	s := &sim.Server{
		Log:           log,
		LeagueID:      cfg.FootballLeagueID,
		OnFixturesReq: func() { fixturesReq.Inc() },
		OnOddsReq:     func() { oddsReq.Inc() },
	}

	// Mesmos paths dos provedores reais, para trocar só a base URL nos clientes
	r := chi.NewRouter()
	r.Get("/fixtures", s.FixturesHandler)
	r.Get("/v4/sports/{sport}/odds", s.OddsHandler)

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error { return nil })

	addr := fmt.Sprintf(":%s", cfg.HTTPPort)
	log.Info("provider simulator running",
		zap.String("addr", addr),
		zap.String("paths", "/fixtures,/v4/sports/{sport}/odds"),
	)
	if err := http.ListenAndServe(addr, r); err != nil && err != http.ErrServerClosed {
		log.Fatal("simulator server error", zap.Error(err))
	}
}
