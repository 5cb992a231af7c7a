package sim

import (
	"encoding/json"
	"hash/fnv"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Server simula os provedores externos de resultados e odds
// Os placares são determinísticos por data para que execuções repetidas
// do job de liquidação observem os mesmos resultados
type Server struct {
	Log      *zap.Logger
	LeagueID int

	// Métricas
	OnFixturesReq func()
	OnOddsReq     func()
}

// FixturesHandler simula GET /fixtures?league=&date=&status=FT no formato api-football v3
func (s *Server) FixturesHandler(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	}
	if league := r.URL.Query().Get("league"); league != "" && league != strconv.Itoa(s.LeagueID) {
		writeEnvelope(w, nil) // liga desconhecida: resposta vazia
		return
	}
	if s.OnFixturesReq != nil {
		s.OnFixturesReq()
	}

	rng := rand.New(rand.NewSource(dateSeed(date)))
	resp := make([]map[string]any, 0, len(Catalog))
	for _, f := range Catalog {
		hg := rng.Intn(4)
		ag := rng.Intn(4)
		resp = append(resp, map[string]any{
			"fixture": map[string]any{
				"id":     f.ID,
				"status": map[string]any{"short": "FT"},
			},
			"teams": map[string]any{
				"home": map[string]any{"name": f.HomeTeam},
				"away": map[string]any{"name": f.AwayTeam},
			},
			"goals": map[string]any{"home": hg, "away": ag},
		})
	}
	s.Log.Info("fixtures served", zap.String("date", date), zap.Int("count", len(resp)))
	writeEnvelope(w, resp)
}

// dateSeed deriva uma seed estável a partir da data consultada
func dateSeed(date string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(date))
	return int64(h.Sum64())
}

func writeEnvelope(w http.ResponseWriter, response []map[string]any) {
	if response == nil {
		response = []map[string]any{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"results":  len(response),
		"response": response,
	})
}
