package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/fvelazquezb100/betadona/internal/bet-service/budget"
)

// Postgres implementa operações de persistência de apostas e perfis
type Postgres struct {
	db    *sql.DB
	rules budget.Rules
}

// NewPostgres retorna uma instância do repositório de apostas
func NewPostgres(db *sql.DB, rules budget.Rules) *Postgres {
	return &Postgres{db: db, rules: rules}
}

var ErrProfileNotFound = errors.New("profile not found")

// NewBet é uma aposta candidata já normalizada pelo handler.
type NewBet struct {
	MatchDescription string
	BetSelection     string
	MarketKind       string // vazio quando o cliente só manda o texto
	Pick             string
	Threshold        float64
	FixtureID        int64
	StakeCents       int64
	Odds             float64
}

// PlaceBets insere o lote de apostas e debita o orçamento numa única
// transação. A linha do perfil é travada com FOR UPDATE, a validação roda
// sobre o saldo travado e qualquer falha desfaz tudo: nunca há lote parcial.
// Retorna os ids criados e o orçamento restante.
func (p *Postgres) PlaceBets(ctx context.Context, userID string, matchday int, bets []NewBet) ([]string, int64, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	var budgetCents int64
	err = tx.QueryRowContext(ctx,
		`SELECT weekly_budget_cents FROM profiles WHERE id=$1 FOR UPDATE`, userID,
	).Scan(&budgetCents)
	if err == sql.ErrNoRows {
		return nil, 0, ErrProfileNotFound
	}
	if err != nil {
		return nil, 0, err
	}

	var pendingCount int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bets WHERE user_id=$1 AND status='pending'`, userID,
	).Scan(&pendingCount); err != nil {
		return nil, 0, err
	}

	stakes := make([]int64, len(bets))
	for i, b := range bets {
		stakes[i] = b.StakeCents
	}
	total, err := p.rules.Validate(stakes, budgetCents, pendingCount)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, 0, len(bets))
	for _, b := range bets {
		id := uuid.NewString()
		_, err := tx.ExecContext(ctx, `
			INSERT INTO bets
			  (id, user_id, match_description, bet_selection,
			   market_kind, pick, threshold, fixture_id,
			   stake_cents, odds, status, matchday)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,'pending',$11)`,
			id, userID, b.MatchDescription, b.BetSelection,
			nullStr(b.MarketKind), nullStr(b.Pick), nullFloat(b.Threshold), nullInt(b.FixtureID),
			b.StakeCents, b.Odds, matchday,
		)
		if err != nil {
			return nil, 0, err
		}
		ids = append(ids, id)
	}

	newBudget := budgetCents - total
	if _, err := tx.ExecContext(ctx,
		`UPDATE profiles SET weekly_budget_cents=$1, updated_at=NOW() WHERE id=$2`,
		newBudget, userID,
	); err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}
	return ids, newBudget, nil
}

// ListByUser retorna o histórico de apostas do usuário, opcionalmente
// filtrado por status
func (p *Postgres) ListByUser(ctx context.Context, userID, status string) ([]Bet, error) {
	q := `
		SELECT id, user_id, match_description, bet_selection,
		       stake_cents, odds, status, payout_cents, matchday, created_at
		FROM bets
		WHERE user_id=$1`
	args := []any{userID}
	if status != "" {
		q += ` AND status=$2`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Bet
	for rows.Next() {
		var b Bet
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.MatchDescription, &b.BetSelection,
			&b.StakeCents, &b.Odds, &b.Status, &b.PayoutCents, &b.Matchday, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetProfile retorna o perfil do usuário
func (p *Postgres) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	var pr Profile
	err := p.db.QueryRowContext(ctx, `
		SELECT id, username, weekly_budget_cents, total_points_cents, league_id
		FROM profiles WHERE id=$1`, userID,
	).Scan(&pr.ID, &pr.Username, &pr.WeeklyBudgetCents, &pr.TotalPointsCents, &pr.LeagueID)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pr, nil
}

// Standings retorna o ranking por pontos acumulados. leagueID = 0 lista o
// ranking global. A coluna last_matchday soma os payouts da última data de
// liquidação de cada usuário.
func (p *Postgres) Standings(ctx context.Context, leagueID int64) ([]Standing, error) {
	q := `
		SELECT p.id, p.username, p.total_points_cents,
		       COALESCE((
		           SELECT SUM(b.payout_cents)
		           FROM bets b
		           WHERE b.user_id = p.id
		             AND b.settled_at::date = (
		                 SELECT MAX(settled_at::date) FROM bets WHERE settled_at IS NOT NULL
		             )
		       ), 0) AS last_matchday_cents
		FROM profiles p`
	args := []any{}
	if leagueID != 0 {
		q += ` WHERE p.league_id=$1`
		args = append(args, leagueID)
	}
	q += ` ORDER BY p.total_points_cents DESC, p.username`

	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Standing
	for rows.Next() {
		var s Standing
		if err := rows.Scan(&s.UserID, &s.Username, &s.TotalPointsCents, &s.LastMatchdayCents); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// LeagueName retorna o nome de uma liga (tabela somente leitura neste escopo)
func (p *Postgres) LeagueName(ctx context.Context, leagueID int64) (string, error) {
	var name string
	err := p.db.QueryRowContext(ctx, `SELECT name FROM leagues WHERE id=$1`, leagueID).Scan(&name)
	return name, err
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: f != 0}
}

func nullInt(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: n != 0}
}
