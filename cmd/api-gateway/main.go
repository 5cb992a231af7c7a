package main

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"

	"go.uber.org/zap"

	"github.com/fvelazquezb100/betadona/internal/shared/config"
	"github.com/fvelazquezb100/betadona/internal/shared/logger"
)

func rp(to string) *httputil.ReverseProxy {
	u, _ := url.Parse(to)
	return httputil.NewSingleHostReverseProxy(u)
}

func main() {
	cfg := config.Load()
	log, _ := logger.New(cfg.ServiceName, cfg.Env)
	defer log.Sync()

	// targets
	oddsURL := os.Getenv("ODDS_URL")
	if oddsURL == "" {
		oddsURL = "http://localhost:8080"
	}
	betURL := os.Getenv("BET_URL")
	if betURL == "" {
		betURL = "http://localhost:8083"
	}
	// o path /v1 do target é prefixado pelo reverse proxy
	odds := rp(oddsURL + "/v1")
	bet := rp(betURL + "/v1")
	oddsWS := rp(oddsURL)

	mux := http.NewServeMux()

	// partidas e odds (ex.: /api/matches/* -> odds-service /v1/matches/*)
	mux.Handle("/api/matches/", http.StripPrefix("/api", odds))
	mux.Handle("/api/matches", http.StripPrefix("/api", odds))

	// WebSocket de odds ao vivo
	mux.Handle("/api/ws", http.StripPrefix("/api", oddsWS))

	// apostas, perfis e classificação (-> bet-service)
	for _, p := range []string{"/api/bets", "/api/profiles", "/api/standings", "/api/leagues"} {
		mux.Handle(p+"/", http.StripPrefix("/api", bet))
		mux.Handle(p, http.StripPrefix("/api", bet))
	}

	addr := ":" + cfg.HTTPPort
	log.Info("api-gateway listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, withCORS(mux)); err != nil && err != http.ErrServerClosed {
		log.Fatal("gateway failed", zap.Error(err))
	}
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}
