package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMatchWinner(t *testing.T) {
	sel, ok := Parse("Match Winner: Real Madrid", "Real Madrid", "Barcelona")
	require.True(t, ok)
	assert.Equal(t, FamilyMatchWinner, sel.Family)
	assert.Equal(t, SideHome, sel.Winner)

	sel, ok = Parse("Ganador del Partido: Barcelona", "Real Madrid", "Barcelona")
	require.True(t, ok)
	assert.Equal(t, SideAway, sel.Winner)

	sel, ok = Parse("Match Winner: Draw", "Real Madrid", "Barcelona")
	require.True(t, ok)
	assert.Equal(t, SideDraw, sel.Winner)

	sel, ok = Parse("Ganador del Partido: Empate", "Real Madrid", "Barcelona")
	require.True(t, ok)
	assert.Equal(t, SideDraw, sel.Winner)

	// time citado não participa da partida
	_, ok = Parse("Match Winner: Sevilla", "Real Madrid", "Barcelona")
	assert.False(t, ok)
}

func TestParseUnlabeledMatchWinner(t *testing.T) {
	sel, ok := Parse("Real Madrid to Win", "Real Madrid", "Barcelona")
	require.True(t, ok)
	assert.Equal(t, FamilyMatchWinner, sel.Family)
	assert.Equal(t, SideHome, sel.Winner)

	sel, ok = Parse("Barcelona to Win", "Real Madrid", "Barcelona")
	require.True(t, ok)
	assert.Equal(t, SideAway, sel.Winner)

	sel, ok = Parse("Draw", "Real Madrid", "Barcelona")
	require.True(t, ok)
	assert.Equal(t, SideDraw, sel.Winner)

	sel, ok = Parse("Empate", "Real Madrid", "Barcelona")
	require.True(t, ok)
	assert.Equal(t, SideDraw, sel.Winner)

	// "Under 2.5 Goals" não pode cair no 1x2 mesmo sem rótulo
	sel, ok = Parse("Under 2.5 Goals", "Real Madrid", "Barcelona")
	require.True(t, ok)
	assert.Equal(t, FamilyOverUnder, sel.Family)
}

func TestParseOverUnder(t *testing.T) {
	sel, ok := Parse("Goals Over/Under: Over 2.5", "Real Madrid", "Barcelona")
	require.True(t, ok)
	assert.Equal(t, FamilyOverUnder, sel.Family)
	assert.Equal(t, DirOver, sel.Direction)
	assert.Equal(t, 2.5, sel.Threshold)

	// o nome do mercado contém "Over"; a direção vem da seleção, não do rótulo
	sel, ok = Parse("Goals Over/Under: Under 2.5", "Real Madrid", "Barcelona")
	require.True(t, ok)
	assert.Equal(t, DirUnder, sel.Direction)

	sel, ok = Parse("Goles Más/Menos: Menos de 3.5", "Valencia", "Villarreal")
	require.True(t, ok)
	assert.Equal(t, DirUnder, sel.Direction)
	assert.Equal(t, 3.5, sel.Threshold)

	sel, ok = Parse("Goles Más/Menos: Más de 1.5", "Valencia", "Villarreal")
	require.True(t, ok)
	assert.Equal(t, DirOver, sel.Direction)
	assert.Equal(t, 1.5, sel.Threshold)

	sel, ok = Parse("Under 2.5 Goals", "Real Madrid", "Barcelona")
	require.True(t, ok)
	assert.Equal(t, DirUnder, sel.Direction)

	// sem linha de gols não dá pra gradar
	_, ok = Parse("Goals Over/Under: Over", "Real Madrid", "Barcelona")
	assert.False(t, ok)
}

func TestParseBothTeamsToScore(t *testing.T) {
	sel, ok := Parse("Both Teams To Score - Yes", "Real Madrid", "Barcelona")
	require.True(t, ok)
	assert.Equal(t, FamilyBothScore, sel.Family)
	assert.True(t, sel.BothScore)

	// variação de caixa do frontend
	sel, ok = Parse("Both Teams to Score - Yes", "Real Madrid", "Barcelona")
	require.True(t, ok)
	assert.True(t, sel.BothScore)

	sel, ok = Parse("Ambos Equipos Marcan: No", "Real Madrid", "Barcelona")
	require.True(t, ok)
	assert.False(t, sel.BothScore)

	sel, ok = Parse("Ambos Equipos Marcan: Sí", "Real Madrid", "Barcelona")
	require.True(t, ok)
	assert.True(t, sel.BothScore)
}

func TestParseUnknownMarket(t *testing.T) {
	_, ok := Parse("Correct Score: 2-1", "Real Madrid", "Barcelona")
	assert.False(t, ok)

	_, ok = Parse("", "Real Madrid", "Barcelona")
	assert.False(t, ok)
}

func TestFromStructured(t *testing.T) {
	sel, ok := FromStructured(KindMatchWinner, "home", 0)
	require.True(t, ok)
	assert.Equal(t, SideHome, sel.Winner)

	sel, ok = FromStructured(KindOverUnder, "under", 2.5)
	require.True(t, ok)
	assert.Equal(t, DirUnder, sel.Direction)
	assert.Equal(t, 2.5, sel.Threshold)

	sel, ok = FromStructured(KindBothScore, "yes", 0)
	require.True(t, ok)
	assert.True(t, sel.BothScore)

	// over/under sem linha é inconsistente
	_, ok = FromStructured(KindOverUnder, "over", 0)
	assert.False(t, ok)

	_, ok = FromStructured("half_time_result", "home", 0)
	assert.False(t, ok)
}

func TestMatchesFixture(t *testing.T) {
	assert.True(t, MatchesFixture("Real Madrid vs Barcelona", "Real Madrid", "Barcelona"))
	assert.False(t, MatchesFixture("Real Madrid vs Barcelona", "Real Madrid", "Sevilla"))
	assert.False(t, MatchesFixture("", "Real Madrid", "Barcelona"))
}
