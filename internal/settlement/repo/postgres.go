package repo

import (
	"context"
	"database/sql"
)

// Postgres implementa a persistência da liquidação de apostas
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// PendingBets lista todas as apostas pendentes do sistema
func (p *Postgres) PendingBets(ctx context.Context) ([]PendingBet, error) {
	const q = `
		SELECT id, user_id, match_description, bet_selection,
		       market_kind, pick, threshold, fixture_id,
		       stake_cents, odds
		FROM bets
		WHERE status = 'pending'
		ORDER BY created_at`
	rows, err := p.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PendingBet
	for rows.Next() {
		var b PendingBet
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.MatchDescription, &b.BetSelection,
			&b.MarketKind, &b.Pick, &b.Threshold, &b.FixtureID,
			&b.StakeCents, &b.Odds,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// SettleBet grava status e payout de uma aposta. O filtro status='pending'
// garante at-most-once: uma aposta já liquidada nunca é regravada, mesmo que
// o job rode duas vezes para a mesma data. Retorna false quando a aposta não
// estava mais pendente.
func (p *Postgres) SettleBet(ctx context.Context, betID, status string, payoutCents int64) (bool, error) {
	res, err := p.db.ExecContext(ctx, `
		UPDATE bets
		SET status = $1, payout_cents = $2, settled_at = NOW()
		WHERE id = $3 AND status = 'pending'`,
		status, payoutCents, betID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Profiles retorna todos os perfis do sistema (todas as ligas)
func (p *Postgres) Profiles(ctx context.Context) ([]Profile, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, username, total_points_cents FROM profiles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		var pr Profile
		if err := rows.Scan(&pr.ID, &pr.Username, &pr.TotalPointsCents); err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}

// ApplyMatchday soma o payout acumulado da rodada ao total do usuário e
// restaura o orçamento semanal ao valor padrão, numa única escrita atômica.
func (p *Postgres) ApplyMatchday(ctx context.Context, userID string, payoutCents, budgetCents int64) error {
	_, err := p.db.ExecContext(ctx, `
		UPDATE profiles
		SET total_points_cents = total_points_cents + $1,
		    weekly_budget_cents = $2,
		    updated_at = NOW()
		WHERE id = $3`,
		payoutCents, budgetCents, userID,
	)
	return err
}
