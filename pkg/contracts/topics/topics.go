package topics

const (
	// Apostas
	BetPlaced  = "bet_placed"
	BetSettled = "bet_settled"

	// Fechamento de jornada
	MatchdaySettled = "matchday_settled"

	// DLQs
	BetSettledDLQ = "bet_settled_dlq"
)
