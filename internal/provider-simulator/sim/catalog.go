package sim

// Fixture representa uma partida do catálogo fixo da LaLiga
type Fixture struct {
	ID       int64
	HomeTeam string
	AwayTeam string
}

// Catalog catálogo fixo de partidas simuladas da LaLiga
var Catalog = []Fixture{
	{ID: 1001, HomeTeam: "Real Madrid", AwayTeam: "Barcelona"},
	{ID: 1002, HomeTeam: "Atletico Madrid", AwayTeam: "Sevilla"},
	{ID: 1003, HomeTeam: "Real Sociedad", AwayTeam: "Athletic Club"},
	{ID: 1004, HomeTeam: "Valencia", AwayTeam: "Villarreal"},
	{ID: 1005, HomeTeam: "Real Betis", AwayTeam: "Girona"},
}
