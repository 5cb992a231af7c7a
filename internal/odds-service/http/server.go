package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fvelazquezb100/betadona/internal/odds-service/cache"
	"github.com/fvelazquezb100/betadona/internal/odds-service/repo"
)

// API expõe os endpoints REST de consulta de partidas e odds da LaLiga
// Utiliza um repositório de leitura (Postgres) e cache (Redis)
type API struct {
	ReadRepo *repo.ReadRepo   // acesso ao banco de dados
	Cache    *cache.Cache     // cache de odds
	WS       http.HandlerFunc // opcional: upgrade WebSocket em /ws
}

// Router retorna o roteador HTTP com os endpoints REST
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/v1/matches", a.listMatches)       // Lista próximas partidas
	r.Get("/v1/matches/{id}/odds", a.getOdds) // Odds de uma partida
	if a.WS != nil {
		r.Get("/ws", a.WS) // Atualizações de odds ao vivo
	}
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// listMatches retorna as partidas disponíveis para aposta
func (a *API) listMatches(w http.ResponseWriter, r *http.Request) {
	mt, err := a.ReadRepo.ListMatches(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, mt)
}

// getOdds retorna as odds de uma partida, preferencialmente do cache
func (a *API) getOdds(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if b, ok, _ := a.Cache.GetOdds(r.Context(), id); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
		return
	}

	od, err := a.ReadRepo.GetOddsByMatch(r.Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	_ = a.Cache.SetOdds(r.Context(), id, od, 30*time.Second) // salva no cache por 30s
	writeJSON(w, http.StatusOK, od)
}
