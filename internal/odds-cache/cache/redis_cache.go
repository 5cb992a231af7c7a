package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fvelazquezb100/betadona/internal/odds-cache/provider"
)

// RedisCache encapsula o cache de odds por partida no Redis
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(c *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: c, TTL: ttl}
}

// key gera a chave Redis para as odds de uma partida
func key(matchID string) string { return "odds:match:" + matchID }

// SetMatch armazena as odds atuais de uma partida com TTL definido
func (r *RedisCache) SetMatch(ctx context.Context, m provider.MatchOdds) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, key(m.MatchID), b, r.TTL).Err()
}
