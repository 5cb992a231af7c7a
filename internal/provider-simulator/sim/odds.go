package sim

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// gera número aleatório entre min e max
func rnd(rng *rand.Rand, min, max float64) float64 {
	return (rng.Float64() * (max - min)) + min
}

// OddsHandler simula GET /v4/sports/{sport}/odds no formato the-odds-api v4
// Cada chamada gera odds novas, como faria um bookmaker real
func (s *Server) OddsHandler(w http.ResponseWriter, r *http.Request) {
	if s.OnOddsReq != nil {
		s.OnOddsReq()
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	out := make([]map[string]any, 0, len(Catalog))
	for i, f := range Catalog {
		commence := time.Now().UTC().Add(time.Duration(24+i*3) * time.Hour)

		h2h := []map[string]any{
			{"name": f.HomeTeam, "price": round2(rnd(rng, 1.40, 3.50))},
			{"name": "Draw", "price": round2(rnd(rng, 2.80, 4.20))},
			{"name": f.AwayTeam, "price": round2(rnd(rng, 1.80, 5.00))},
		}
		totals := make([]map[string]any, 0, 8)
		for _, point := range []float64{0.5, 1.5, 2.5, 3.5} {
			totals = append(totals,
				map[string]any{"name": "Over", "price": round2(rnd(rng, 1.30, 2.60)), "point": point},
				map[string]any{"name": "Under", "price": round2(rnd(rng, 1.30, 2.60)), "point": point},
			)
		}
		btts := []map[string]any{
			{"name": "Yes", "price": round2(rnd(rng, 1.50, 2.20))},
			{"name": "No", "price": round2(rnd(rng, 1.60, 2.40))},
		}

		out = append(out, map[string]any{
			"id":            strconv.FormatInt(f.ID, 10),
			"commence_time": commence.Format(time.RFC3339),
			"home_team":     f.HomeTeam,
			"away_team":     f.AwayTeam,
			"bookmakers": []map[string]any{
				{
					"key": "betadona_sim",
					"markets": []map[string]any{
						{"key": "h2h", "outcomes": h2h},
						{"key": "totals", "outcomes": totals},
						{"key": "both_teams_to_score", "outcomes": btts},
					},
				},
			},
		})
	}

	s.Log.Info("odds served", zap.Int("matches", len(out)))
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
