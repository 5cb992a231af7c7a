package events

import "time"

// Resumo publicado no tópico "matchday_settled" ao final de cada execução.
type MatchdaySettled struct {
	Date           string    `json:"date"` // YYYY-MM-DD
	FixturesFound  int       `json:"fixturesFound"`
	BetsSettled    int       `json:"betsSettled"`
	BetsSkipped    int       `json:"betsSkipped"`
	ProfilesReset  int       `json:"profilesReset"`
	ProfilesFailed int       `json:"profilesFailed"`
	Ts             time.Time `json:"ts"`
}
