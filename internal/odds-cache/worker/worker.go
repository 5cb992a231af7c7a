package worker

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/fvelazquezb100/betadona/internal/odds-cache/cache"
	"github.com/fvelazquezb100/betadona/internal/odds-cache/provider"
	"github.com/fvelazquezb100/betadona/internal/odds-cache/pubsub"
	"github.com/fvelazquezb100/betadona/internal/odds-cache/repo"
)

// OddsProvider entrega as odds transformadas das próximas partidas
type OddsProvider interface {
	UpcomingOdds(ctx context.Context) ([]provider.MatchOdds, error)
}

// Worker atualiza o cache de odds em intervalos fixos: busca no provedor,
// grava no Redis, persiste no Postgres e publica o refresh via Pub/Sub.
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa.
type Worker struct {
	Log         *zap.Logger
	Provider    OddsProvider
	Repo        *repo.Postgres
	Cache       *cache.RedisCache
	Broadcaster *pubsub.RedisBroadcaster
	Interval    time.Duration

	OnFetched func()       // métricas (counter++)
	OnCached  func()       // métricas
	OnPersist func()       // métricas
	OnError   func(string) // métricas por fase
}

// Run executa o loop de refresh até o contexto ser cancelado
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	// primeira atualização imediata
	if err := w.RefreshOnce(ctx); err != nil {
		w.Log.Warn("initial refresh failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.RefreshOnce(ctx); err != nil {
				w.Log.Warn("refresh failed", zap.Error(err))
			}
		}
	}
}

// RefreshOnce faz um ciclo completo de atualização do cache.
// Falha do provedor aborta o ciclo; falha de cache não bloqueia a
// persistência, e falha numa partida não bloqueia as demais.
func (w *Worker) RefreshOnce(ctx context.Context) error {
	matches, err := w.Provider.UpcomingOdds(ctx)
	if err != nil {
		if w.OnError != nil {
			w.OnError("provider")
		}
		return err
	}
	if w.OnFetched != nil {
		w.OnFetched()
	}

	for _, m := range matches {
		if err := w.Cache.SetMatch(ctx, m); err != nil {
			w.Log.Warn("redis set failed", zap.String("match_id", m.MatchID), zap.Error(err))
			if w.OnError != nil {
				w.OnError("cache")
			}
			// não bloqueia persistência se falhar o cache
		} else if w.OnCached != nil {
			w.OnCached()
		}

		if err := w.Repo.UpsertMatchOdds(ctx, m); err != nil {
			w.Log.Warn("db upsert failed", zap.String("match_id", m.MatchID), zap.Error(err))
			if w.OnError != nil {
				w.OnError("db_upsert")
			}
			continue
		}
		if w.OnPersist != nil {
			w.OnPersist()
		}

		// notifica o WS do odds-service via Redis Pub/Sub
		if w.Broadcaster != nil {
			msg := pubsub.WSUpdate{MatchID: m.MatchID, Payload: m}
			b, _ := json.Marshal(msg)

			pctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
			if err := w.Broadcaster.Publish(pctx, pubsub.ChannelOddsBroadcast, b); err != nil {
				w.Log.Warn("ws broadcast publish failed", zap.Error(err))
			}
			cancel()
		}
	}

	w.Log.Info("odds cache refreshed", zap.Int("matches", len(matches)))
	return nil
}
