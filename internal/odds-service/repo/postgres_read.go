package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/fvelazquezb100/betadona/internal/odds-service/dto"
)

type ReadRepo struct {
	DB *sql.DB
}

// ListMatches retorna as próximas partidas presentes no cache de odds
func (r *ReadRepo) ListMatches(ctx context.Context) ([]dto.Match, error) {
	const q = `
		SELECT match_id, home_team, away_team, start_time
		FROM match_odds_cache
		ORDER BY start_time;
	`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []dto.Match
	for rows.Next() {
		var m dto.Match
		if err := rows.Scan(&m.MatchID, &m.HomeTeam, &m.AwayTeam, &m.StartTime); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetOddsByMatch retorna o payload de odds gravado pelo odds-cache-worker
func (r *ReadRepo) GetOddsByMatch(ctx context.Context, matchID string) (json.RawMessage, error) {
	var data []byte
	err := r.DB.QueryRowContext(ctx,
		`SELECT data FROM match_odds_cache WHERE match_id = $1`, matchID,
	).Scan(&data)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}
