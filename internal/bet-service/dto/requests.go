package dto

// BetCandidate é uma seleção do boleto com o stake informado pelo usuário.
// Os campos estruturados (market_kind/pick/threshold/fixture_id) permitem a
// liquidação sem heurística textual; o texto de exibição segue obrigatório.
type BetCandidate struct {
	MatchDescription string  `json:"match_description"`
	BetSelection     string  `json:"bet_selection"`
	MarketKind       string  `json:"market_kind,omitempty"` // match_winner | over_under | both_teams_score
	Pick             string  `json:"pick,omitempty"`
	Threshold        float64 `json:"threshold,omitempty"`
	FixtureID        int64   `json:"fixture_id,omitempty"`
	StakeCents       int64   `json:"stake_cents"`
	Odds             float64 `json:"odds"`
}

type PlaceBetsRequest struct {
	UserID   string         `json:"userId"`
	Matchday int            `json:"matchday"`
	Bets     []BetCandidate `json:"bets"`
}
