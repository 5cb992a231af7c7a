package job

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fvelazquezb100/betadona/internal/settlement/grading"
	"github.com/fvelazquezb100/betadona/internal/settlement/provider"
	"github.com/fvelazquezb100/betadona/internal/settlement/repo"
	"github.com/fvelazquezb100/betadona/pkg/contracts/events"
)

// ResultsProvider entrega os resultados encerrados de uma data
type ResultsProvider interface {
	FinishedFixtures(ctx context.Context, date string) ([]provider.FixtureResult, error)
}

// BetStore expõe leitura de pendentes e gravação de liquidação
type BetStore interface {
	PendingBets(ctx context.Context) ([]repo.PendingBet, error)
	SettleBet(ctx context.Context, betID, status string, payoutCents int64) (bool, error)
}

// ProfileStore expõe perfis e atualização de standings/orçamento
type ProfileStore interface {
	Profiles(ctx context.Context) ([]repo.Profile, error)
	ApplyMatchday(ctx context.Context, userID string, payoutCents, budgetCents int64) error
}

// Publisher emite eventos de liquidação (pode ser nil em execuções locais)
type Publisher interface {
	PublishBetSettled(ctx context.Context, e events.BetSettled) error
	PublishMatchdaySettled(ctx context.Context, e events.MatchdaySettled) error
}

// Job executa a varredura de liquidação de uma jornada: busca resultados,
// grada apostas pendentes, grava payouts e atualiza standings/orçamentos.
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa.
type Job struct {
	Log       *zap.Logger
	Provider  ResultsProvider
	Bets      BetStore
	Profiles  ProfileStore
	Publisher Publisher

	BudgetCents int64 // orçamento semanal restaurado em cada perfil

	OnSettled func()       // métricas (counter++)
	OnSkipped func()       // métricas
	OnError   func(string) // métricas por fase
}

// Summary resume uma execução do job
type Summary struct {
	Date           string
	FixturesFound  int
	BetsSettled    int
	BetsSkipped    int
	ProfilesReset  int
	ProfilesFailed int
}

// Run processa a jornada da data informada (YYYY-MM-DD).
// Falha do provedor aborta tudo: nenhuma aposta é gradada e nenhum perfil é
// tocado. Zero partidas encerradas não é erro. Erros individuais de aposta ou
// de perfil são logados e pulados sem abortar o lote.
func (j *Job) Run(ctx context.Context, date string) (Summary, error) {
	sum := Summary{Date: date}

	fixtures, err := j.Provider.FinishedFixtures(ctx, date)
	if err != nil {
		if j.OnError != nil {
			j.OnError("provider")
		}
		return sum, fmt.Errorf("fetch fixtures: %w", err)
	}
	sum.FixturesFound = len(fixtures)

	if len(fixtures) == 0 {
		j.Log.Info("no finished fixtures for date", zap.String("date", date))
		return sum, nil
	}

	pending, err := j.Bets.PendingBets(ctx)
	if err != nil {
		if j.OnError != nil {
			j.OnError("pending")
		}
		return sum, fmt.Errorf("list pending bets: %w", err)
	}
	j.Log.Info("settlement sweep starting",
		zap.String("date", date),
		zap.Int("fixtures", len(fixtures)),
		zap.Int("pending_bets", len(pending)),
	)

	// payout líquido acumulado por usuário, só de apostas efetivamente
	// liquidadas nesta execução
	userPayouts := make(map[string]int64)

	for _, bet := range pending {
		fx, ok := findFixture(bet, fixtures)
		if !ok {
			// sem partida correspondente nesta rodada: permanece pendente
			j.skip(&sum, "no_fixture", bet.ID)
			continue
		}

		sel, ok := resolveSelection(bet, fx)
		if !ok {
			j.Log.Warn("ungradeable selection, bet left pending",
				zap.String("bet_id", bet.ID),
				zap.String("selection", bet.BetSelection),
			)
			j.skip(&sum, "selection", bet.ID)
			continue
		}

		won := grading.Grade(sel, fx.HomeGoals, fx.AwayGoals)
		payout := grading.PayoutCents(bet.StakeCents, bet.Odds, won)
		status := "lost"
		if won {
			status = "won"
		}

		settled, err := j.Bets.SettleBet(ctx, bet.ID, status, payout)
		if err != nil {
			j.Log.Error("settle bet failed", zap.String("bet_id", bet.ID), zap.Error(err))
			j.skip(&sum, "persist", bet.ID)
			continue
		}
		if !settled {
			// outra execução já liquidou esta aposta; não credita de novo
			j.skip(&sum, "already_settled", bet.ID)
			continue
		}

		userPayouts[bet.UserID] += payout
		sum.BetsSettled++
		if j.OnSettled != nil {
			j.OnSettled()
		}

		j.Log.Info("bet settled",
			zap.String("bet_id", bet.ID),
			zap.String("status", status),
			zap.Int64("payout_cents", payout),
		)

		if j.Publisher != nil {
			ev := events.BetSettled{
				BetID:       bet.ID,
				UserID:      bet.UserID,
				Status:      status,
				PayoutCents: payout,
				Fixture:     fmt.Sprintf("%s %d-%d %s", fx.HomeTeam, fx.HomeGoals, fx.AwayGoals, fx.AwayTeam),
				Ts:          time.Now(),
			}
			if err := j.Publisher.PublishBetSettled(ctx, ev); err != nil {
				j.Log.Warn("publish bet_settled failed", zap.String("bet_id", bet.ID), zap.Error(err))
			}
		}
	}

	// Standings: todo perfil recebe o payout acumulado (ou 0) e tem o
	// orçamento restaurado. Falha num perfil não aborta os demais.
	profiles, err := j.Profiles.Profiles(ctx)
	if err != nil {
		if j.OnError != nil {
			j.OnError("profiles")
		}
		return sum, fmt.Errorf("list profiles: %w", err)
	}

	for _, pr := range profiles {
		payout := userPayouts[pr.ID]
		if err := j.Profiles.ApplyMatchday(ctx, pr.ID, payout, j.BudgetCents); err != nil {
			j.Log.Error("profile update failed",
				zap.String("user_id", pr.ID),
				zap.Error(err),
			)
			sum.ProfilesFailed++
			if j.OnError != nil {
				j.OnError("profile_update")
			}
			continue
		}
		sum.ProfilesReset++
	}

	if j.Publisher != nil {
		ev := events.MatchdaySettled{
			Date:           date,
			FixturesFound:  sum.FixturesFound,
			BetsSettled:    sum.BetsSettled,
			BetsSkipped:    sum.BetsSkipped,
			ProfilesReset:  sum.ProfilesReset,
			ProfilesFailed: sum.ProfilesFailed,
			Ts:             time.Now(),
		}
		if err := j.Publisher.PublishMatchdaySettled(ctx, ev); err != nil {
			j.Log.Warn("publish matchday_settled failed", zap.Error(err))
		}
	}

	j.Log.Info("settlement sweep finished",
		zap.Int("settled", sum.BetsSettled),
		zap.Int("skipped", sum.BetsSkipped),
		zap.Int("profiles_reset", sum.ProfilesReset),
		zap.Int("profiles_failed", sum.ProfilesFailed),
	)
	return sum, nil
}

func (j *Job) skip(sum *Summary, stage, betID string) {
	sum.BetsSkipped++
	if j.OnSkipped != nil {
		j.OnSkipped()
	}
	if j.OnError != nil && (stage == "persist") {
		j.OnError(stage)
	}
	j.Log.Debug("bet skipped", zap.String("bet_id", betID), zap.String("stage", stage))
}

// findFixture localiza a partida da aposta: referência estruturada primeiro,
// senão a heurística textual (descrição contém os dois nomes de time).
// Partidas ainda não encerradas não liquidam, mesmo que o provedor as
// devolva fora do filtro FT.
func findFixture(bet repo.PendingBet, fixtures []provider.FixtureResult) (provider.FixtureResult, bool) {
	if bet.FixtureID.Valid {
		for _, fx := range fixtures {
			if fx.FixtureID == bet.FixtureID.Int64 {
				return fx, fx.Finished
			}
		}
		return provider.FixtureResult{}, false
	}
	for _, fx := range fixtures {
		if grading.MatchesFixture(bet.MatchDescription, fx.HomeTeam, fx.AwayTeam) {
			return fx, fx.Finished
		}
	}
	return provider.FixtureResult{}, false
}

// resolveSelection prefere os campos estruturados gravados na aposta; cai no
// parse do texto de exibição para apostas antigas.
func resolveSelection(bet repo.PendingBet, fx provider.FixtureResult) (grading.Selection, bool) {
	if bet.MarketKind.Valid && bet.Pick.Valid {
		if sel, ok := grading.FromStructured(bet.MarketKind.String, bet.Pick.String, bet.Threshold.Float64); ok {
			return sel, true
		}
	}
	return grading.Parse(bet.BetSelection, fx.HomeTeam, fx.AwayTeam)
}
