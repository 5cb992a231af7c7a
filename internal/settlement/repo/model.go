package repo

import "database/sql"

// PendingBet é a projeção de uma aposta pendente usada na liquidação.
// Os campos estruturados (MarketKind/Pick/Threshold/FixtureID) são opcionais:
// apostas antigas só carregam o texto de exibição.
type PendingBet struct {
	ID               string
	UserID           string
	MatchDescription string
	BetSelection     string
	MarketKind       sql.NullString
	Pick             sql.NullString
	Threshold        sql.NullFloat64
	FixtureID        sql.NullInt64
	StakeCents       int64
	Odds             float64
}

// Profile é a projeção de perfil usada na atualização de standings.
type Profile struct {
	ID               string
	Username         string
	TotalPointsCents int64
}
