package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fvelazquezb100/betadona/internal/bet-service/budget"
	"github.com/fvelazquezb100/betadona/internal/bet-service/dto"
	"github.com/fvelazquezb100/betadona/internal/bet-service/repo"
	"github.com/fvelazquezb100/betadona/pkg/contracts/events"
)

// Publisher emite o evento bet_placed após o commit do lote
type Publisher interface {
	PublishBetPlaced(context.Context, events.BetPlaced) error
}

// Server expõe a API pública de apostas, histórico e standings
type Server struct {
	log  *zap.Logger
	repo *repo.Postgres
	publ Publisher
}

func NewServer(log *zap.Logger, r *repo.Postgres, p Publisher) *Server {
	return &Server{log: log, repo: r, publ: p}
}

// Router retorna o roteador HTTP com os endpoints da API
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/v1/bets", s.placeBets)              // lote de apostas
	r.Get("/v1/bets", s.listBets)                // histórico ?userId=&status=
	r.Get("/v1/profiles/{id}", s.getProfile)     // perfil
	r.Get("/v1/standings", s.standings)          // ranking ?leagueId=
	r.Get("/v1/leagues/{id}", s.getLeague)       // nome da liga
	return r
}

// placeBets valida e persiste um lote de apostas como unidade atômica.
// Rejeições retornam um motivo legível por máquina, sem mutação parcial.
func (s *Server) placeBets(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceBetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json", "invalid_payload")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusUnauthorized, "userId required", "unauthenticated")
		return
	}
	if len(req.Bets) == 0 {
		writeError(w, http.StatusBadRequest, "empty bet batch", "invalid_payload")
		return
	}

	newBets := make([]repo.NewBet, 0, len(req.Bets))
	for _, c := range req.Bets {
		if c.MatchDescription == "" || c.BetSelection == "" || c.Odds <= 1 {
			writeError(w, http.StatusBadRequest, "invalid bet candidate", "invalid_payload")
			return
		}
		newBets = append(newBets, repo.NewBet{
			MatchDescription: c.MatchDescription,
			BetSelection:     c.BetSelection,
			MarketKind:       c.MarketKind,
			Pick:             c.Pick,
			Threshold:        c.Threshold,
			FixtureID:        c.FixtureID,
			StakeCents:       c.StakeCents,
			Odds:             c.Odds,
		})
	}

	ids, newBudget, err := s.repo.PlaceBets(r.Context(), req.UserID, req.Matchday, newBets)
	if err != nil {
		status, reason := placementError(err)
		if status == http.StatusInternalServerError {
			s.log.Error("place bets", zap.String("user_id", req.UserID), zap.Error(err))
		}
		writeError(w, status, err.Error(), reason)
		return
	}

	var total int64
	for _, b := range newBets {
		total += b.StakeCents
	}

	// evento de auditoria; a aposta já está confirmada mesmo se falhar
	if s.publ != nil {
		for i, b := range newBets {
			ev := events.BetPlaced{
				BetID:            ids[i],
				UserID:           req.UserID,
				MatchDescription: b.MatchDescription,
				BetSelection:     b.BetSelection,
				StakeCents:       b.StakeCents,
				Odds:             b.Odds,
				Matchday:         req.Matchday,
			}
			if err := s.publ.PublishBetPlaced(r.Context(), ev); err != nil {
				s.log.Warn("publish bet_placed failed", zap.String("bet_id", ids[i]), zap.Error(err))
			}
		}
	}

	writeJSON(w, http.StatusCreated, dto.PlaceBetsResponse{
		BetIDs:          ids,
		TotalStakeCents: total,
		NewBudgetCents:  newBudget,
	})
}

// listBets retorna o histórico de apostas do usuário
func (s *Server) listBets(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "userId required", "unauthenticated")
		return
	}
	status := r.URL.Query().Get("status")

	bets, err := s.repo.ListByUser(r.Context(), userID, status)
	if err != nil {
		s.log.Error("list bets", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error", "internal")
		return
	}

	out := make([]dto.BetResponse, 0, len(bets))
	for _, b := range bets {
		resp := dto.BetResponse{
			BetID:            b.ID,
			MatchDescription: b.MatchDescription,
			BetSelection:     b.BetSelection,
			StakeCents:       b.StakeCents,
			Odds:             b.Odds,
			Status:           b.Status,
			Matchday:         b.Matchday,
			CreatedAt:        b.CreatedAt.Format(time.RFC3339),
		}
		if b.PayoutCents.Valid {
			v := b.PayoutCents.Int64
			resp.PayoutCents = &v
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}

// getProfile retorna orçamento e pontos do usuário
func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	pr, err := s.repo.GetProfile(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "profile not found", "not_found")
			return
		}
		s.log.Error("get profile", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error", "internal")
		return
	}

	resp := dto.ProfileResponse{
		UserID:            pr.ID,
		Username:          pr.Username,
		WeeklyBudgetCents: pr.WeeklyBudgetCents,
		TotalPointsCents:  pr.TotalPointsCents,
	}
	if pr.LeagueID.Valid {
		v := pr.LeagueID.Int64
		resp.LeagueID = &v
	}
	writeJSON(w, http.StatusOK, resp)
}

// standings retorna o ranking, global ou por liga
func (s *Server) standings(w http.ResponseWriter, r *http.Request) {
	var leagueID int64
	if v := r.URL.Query().Get("leagueId"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid leagueId", "invalid_payload")
			return
		}
		leagueID = n
	}

	rows, err := s.repo.Standings(r.Context(), leagueID)
	if err != nil {
		s.log.Error("standings", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error", "internal")
		return
	}

	out := make([]dto.StandingRow, 0, len(rows))
	for i, row := range rows {
		out = append(out, dto.StandingRow{
			Rank:              i + 1,
			UserID:            row.UserID,
			Username:          row.Username,
			TotalPointsCents:  row.TotalPointsCents,
			LastMatchdayCents: row.LastMatchdayCents,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// getLeague retorna o nome de uma liga
func (s *Server) getLeague(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid league id", "invalid_payload")
		return
	}

	name, err := s.repo.LeagueName(r.Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeError(w, http.StatusNotFound, "league not found", "not_found")
			return
		}
		s.log.Error("get league", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error", "internal")
		return
	}
	writeJSON(w, http.StatusOK, dto.LeagueResponse{LeagueID: id, Name: name})
}

// placementError mapeia os erros de validação para status HTTP + motivo
func placementError(err error) (int, string) {
	switch {
	case errors.Is(err, budget.ErrInsufficientBudget):
		return http.StatusUnprocessableEntity, "insufficient_budget"
	case errors.Is(err, budget.ErrInvalidStake):
		return http.StatusBadRequest, "invalid_stake"
	case errors.Is(err, budget.ErrBetCapExceeded):
		return http.StatusUnprocessableEntity, "bet_cap_exceeded"
	case errors.Is(err, budget.ErrEmptyBatch):
		return http.StatusBadRequest, "invalid_payload"
	case errors.Is(err, repo.ErrProfileNotFound):
		return http.StatusUnauthorized, "unauthenticated"
	}
	return http.StatusInternalServerError, "internal"
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, reason string) {
	writeJSON(w, status, dto.ErrorResponse{Error: msg, Reason: reason})
}
