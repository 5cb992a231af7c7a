package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/fvelazquezb100/betadona/internal/odds-cache/provider"
)

// Postgres persiste o cache de odds por partida
type Postgres struct{ DB *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{DB: db} }

// UpsertMatchOdds insere ou atualiza o payload de odds de uma partida.
// ON CONFLICT por match_id evita duplicidade entre refreshes.
func (r *Postgres) UpsertMatchOdds(ctx context.Context, m provider.MatchOdds) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}

	const q = `
		INSERT INTO match_odds_cache
		  (match_id, home_team, away_team, start_time, data, updated_at)
		VALUES
		  ($1,$2,$3,$4,$5,NOW())
		ON CONFLICT (match_id) DO UPDATE SET
		  home_team  = EXCLUDED.home_team,
		  away_team  = EXCLUDED.away_team,
		  start_time = EXCLUDED.start_time,
		  data       = EXCLUDED.data,
		  updated_at = NOW()
	`
	_, err = r.DB.ExecContext(ctx, q, m.MatchID, m.HomeTeam, m.AwayTeam, m.StartTime, data)
	return err
}
