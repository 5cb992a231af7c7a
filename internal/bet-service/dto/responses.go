package dto

type PlaceBetsResponse struct {
	BetIDs          []string `json:"bet_ids"`
	TotalStakeCents int64    `json:"total_stake_cents"`
	NewBudgetCents  int64    `json:"new_budget_cents"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason"` // insufficient_budget | invalid_stake | bet_cap_exceeded | unauthenticated
}

type BetResponse struct {
	BetID            string  `json:"betId"`
	MatchDescription string  `json:"match_description"`
	BetSelection     string  `json:"bet_selection"`
	StakeCents       int64   `json:"stake_cents"`
	Odds             float64 `json:"odds"`
	Status           string  `json:"status"`
	PayoutCents      *int64  `json:"payout_cents"` // null até a liquidação
	Matchday         int     `json:"matchday"`
	CreatedAt        string  `json:"created_at"`
}

type ProfileResponse struct {
	UserID           string `json:"userId"`
	Username         string `json:"username"`
	WeeklyBudgetCents int64 `json:"weekly_budget_cents"`
	TotalPointsCents int64  `json:"total_points_cents"`
	LeagueID         *int64 `json:"league_id"`
}

type StandingRow struct {
	Rank              int    `json:"rank"`
	UserID            string `json:"userId"`
	Username          string `json:"username"`
	TotalPointsCents  int64  `json:"total_points_cents"`
	LastMatchdayCents int64  `json:"last_matchday_cents"`
}

type LeagueResponse struct {
	LeagueID int64  `json:"leagueId"`
	Name     string `json:"name"`
}
