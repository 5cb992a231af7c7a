package grading

import (
	"regexp"
	"strconv"
	"strings"
)

// Família do mercado apostado
type Family int

const (
	FamilyUnknown Family = iota
	FamilyMatchWinner
	FamilyOverUnder
	FamilyBothScore
)

// Lado vencedor num mercado 1x2
type Side int

const (
	SideNone Side = iota
	SideHome
	SideAway
	SideDraw
)

// Direção num mercado de gols
type Direction int

const (
	DirNone Direction = iota
	DirOver
	DirUnder
)

// Selection é a forma estruturada de uma seleção de aposta, independente do
// idioma de exibição. Pode vir gravada na própria aposta (colunas market_kind/
// pick/threshold) ou ser derivada do texto livre via Parse.
type Selection struct {
	Family    Family
	Winner    Side    // FamilyMatchWinner
	Direction Direction
	Threshold float64 // FamilyOverUnder
	BothScore bool    // FamilyBothScore: true = sim
}

var thresholdRegex = regexp.MustCompile(`(\d+\.?\d*)`)

var overUnderLabel = strings.NewReplacer("goals over/under", "", "goles más/menos", "")

// Identificadores de market_kind gravados pelo bet-service
const (
	KindMatchWinner = "match_winner"
	KindOverUnder   = "over_under"
	KindBothScore   = "both_teams_score"
)

// FromStructured monta a Selection a partir dos campos estruturados gravados
// no momento da aposta. Retorna ok=false se os campos forem inconsistentes.
func FromStructured(kind, pick string, threshold float64) (Selection, bool) {
	switch kind {
	case KindMatchWinner:
		switch pick {
		case "home":
			return Selection{Family: FamilyMatchWinner, Winner: SideHome}, true
		case "away":
			return Selection{Family: FamilyMatchWinner, Winner: SideAway}, true
		case "draw":
			return Selection{Family: FamilyMatchWinner, Winner: SideDraw}, true
		}
	case KindOverUnder:
		if threshold <= 0 {
			return Selection{}, false
		}
		switch pick {
		case "over":
			return Selection{Family: FamilyOverUnder, Direction: DirOver, Threshold: threshold}, true
		case "under":
			return Selection{Family: FamilyOverUnder, Direction: DirUnder, Threshold: threshold}, true
		}
	case KindBothScore:
		switch pick {
		case "yes":
			return Selection{Family: FamilyBothScore, BothScore: true}, true
		case "no":
			return Selection{Family: FamilyBothScore, BothScore: false}, true
		}
	}
	return Selection{}, false
}

// Parse interpreta o texto de exibição de uma seleção (inglês ou espanhol) no
// formato gravado pelo frontend, ex: "Match Winner: Real Madrid",
// "Goles Más/Menos: Menos de 2.5", "Both Teams To Score - Yes". Seleções sem
// rótulo de mercado ("Real Madrid to Win", "Draw") valem como 1x2.
// Retorna ok=false quando o texto não corresponde a nenhuma família conhecida;
// nesse caso a aposta fica pendente.
func Parse(text, homeTeam, awayTeam string) (Selection, bool) {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "match winner") || strings.Contains(lower, "ganador del partido"):
		var winner Side
		switch {
		case homeTeam != "" && strings.Contains(text, homeTeam):
			winner = SideHome
		case awayTeam != "" && strings.Contains(text, awayTeam):
			winner = SideAway
		case strings.Contains(lower, "draw") || strings.Contains(lower, "empate"):
			winner = SideDraw
		default:
			return Selection{}, false
		}
		return Selection{Family: FamilyMatchWinner, Winner: winner}, true

	case strings.Contains(lower, "goals over/under") || strings.Contains(lower, "goles más/menos") ||
		strings.Contains(lower, "over ") || strings.Contains(lower, "under ") ||
		strings.Contains(lower, "más de") || strings.Contains(lower, "menos de"):
		m := thresholdRegex.FindString(text)
		if m == "" {
			return Selection{}, false
		}
		threshold, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return Selection{}, false
		}
		// o nome do mercado ("Goals Over/Under") contém as duas direções;
		// remove antes de inspecionar a seleção em si
		dirText := overUnderLabel.Replace(lower)
		var dir Direction
		switch {
		case strings.Contains(dirText, "over") || strings.Contains(dirText, "más de"):
			dir = DirOver
		case strings.Contains(dirText, "under") || strings.Contains(dirText, "menos de"):
			dir = DirUnder
		default:
			return Selection{}, false
		}
		return Selection{Family: FamilyOverUnder, Direction: dir, Threshold: threshold}, true

	case strings.Contains(lower, "both teams to score") || strings.Contains(lower, "ambos equipos marcan"):
		switch {
		case strings.Contains(lower, "yes") || strings.Contains(lower, "sí"):
			return Selection{Family: FamilyBothScore, BothScore: true}, true
		case strings.Contains(lower, "no"):
			return Selection{Family: FamilyBothScore, BothScore: false}, true
		}
		return Selection{}, false
	}

	// Seleção sem rótulo de mercado, ex: "Real Madrid to Win", "Draw".
	// Vale como 1x2 quando o texto nomeia um dos times ou o empate.
	switch {
	case homeTeam != "" && strings.Contains(text, homeTeam):
		return Selection{Family: FamilyMatchWinner, Winner: SideHome}, true
	case awayTeam != "" && strings.Contains(text, awayTeam):
		return Selection{Family: FamilyMatchWinner, Winner: SideAway}, true
	case strings.Contains(lower, "draw") || strings.Contains(lower, "empate"):
		return Selection{Family: FamilyMatchWinner, Winner: SideDraw}, true
	}

	return Selection{}, false
}

// MatchesFixture decide se a descrição de uma aposta referencia a partida.
// Heurística textual: a descrição precisa conter o nome dos dois times.
func MatchesFixture(matchDescription, homeTeam, awayTeam string) bool {
	return strings.Contains(matchDescription, homeTeam) &&
		strings.Contains(matchDescription, awayTeam)
}
