package events

type BetPlaced struct {
	BetID            string  `json:"bet_id"`
	UserID           string  `json:"user_id"`
	MatchDescription string  `json:"match_description"`
	BetSelection     string  `json:"bet_selection"`
	StakeCents       int64   `json:"stake_cents"`
	Odds             float64 `json:"odds"`
	Matchday         int     `json:"matchday"`
	TsUnixMs         int64   `json:"ts_unix_ms"`
}
