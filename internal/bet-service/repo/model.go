package repo

import (
	"database/sql"
	"time"
)

// Bet é o modelo persistido no Postgres.
type Bet struct {
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
	Status           string
	PayoutCents      sql.NullInt64
	Matchday         int
	CreatedAt        time.Time
}

// Profile é a linha de perfil lida pelo bet-service.
type Profile struct {
	ID                string
	Username          string
	WeeklyBudgetCents int64
	TotalPointsCents  int64
	LeagueID          sql.NullInt64
}

// Standing é uma linha do ranking da liga.
type Standing struct {
	UserID            string
	Username          string
	TotalPointsCents  int64
	LastMatchdayCents int64
}
