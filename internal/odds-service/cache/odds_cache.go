package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct{ R *redis.Client }

func New(r *redis.Client) *Cache { return &Cache{R: r} }

func keyMatch(matchID string) string { return "odds:match:" + matchID }

// GetOdds lê o payload bruto de odds de uma partida; (false, nil) em cache miss
func (c *Cache) GetOdds(ctx context.Context, matchID string) ([]byte, bool, error) {
	b, err := c.R.Get(ctx, keyMatch(matchID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *Cache) SetOdds(ctx context.Context, matchID string, payload []byte, ttl time.Duration) error {
	return c.R.Set(ctx, keyMatch(matchID), payload, ttl).Err()
}
