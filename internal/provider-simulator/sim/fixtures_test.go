package sim

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func doFixtures(t *testing.T, s *Server, query string) map[string]any {
	t.Helper()
	req := httptest.NewRequest("GET", "/fixtures"+query, nil)
	rec := httptest.NewRecorder()
	s.FixturesHandler(rec, req)
	require.Equal(t, 200, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestFixturesHandlerServesCatalog(t *testing.T) {
	s := &Server{Log: zap.NewNop(), LeagueID: 140}

	body := doFixtures(t, s, "?league=140&date=2026-08-30&status=FT")
	resp := body["response"].([]any)
	require.Len(t, resp, len(Catalog))

	first := resp[0].(map[string]any)
	fixture := first["fixture"].(map[string]any)
	assert.Equal(t, "FT", fixture["status"].(map[string]any)["short"])

	teams := first["teams"].(map[string]any)
	assert.Equal(t, "Real Madrid", teams["home"].(map[string]any)["name"])
	assert.Equal(t, "Barcelona", teams["away"].(map[string]any)["name"])
}

func TestFixturesHandlerDeterministicPerDate(t *testing.T) {
	s := &Server{Log: zap.NewNop(), LeagueID: 140}

	a := doFixtures(t, s, "?league=140&date=2026-08-30")
	b := doFixtures(t, s, "?league=140&date=2026-08-30")

	// reexecuções do settlement-job veem o mesmo placar
	assert.Equal(t, a, b)
}

func TestFixturesHandlerUnknownLeagueIsEmpty(t *testing.T) {
	s := &Server{Log: zap.NewNop(), LeagueID: 140}

	body := doFixtures(t, s, "?league=39&date=2026-08-30")
	assert.Empty(t, body["response"])
}

func TestOddsHandlerShape(t *testing.T) {
	s := &Server{Log: zap.NewNop(), LeagueID: 140}

	req := httptest.NewRequest("GET", "/v4/sports/soccer_spain_la_liga/odds?apiKey=x", nil)
	rec := httptest.NewRecorder()
	s.OddsHandler(rec, req)
	require.Equal(t, 200, rec.Code)

	var matches []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &matches))
	require.Len(t, matches, len(Catalog))

	m := matches[0]
	assert.Equal(t, "1001", m["id"])
	bookmakers := m["bookmakers"].([]any)
	require.Len(t, bookmakers, 1)
	markets := bookmakers[0].(map[string]any)["markets"].([]any)
	assert.Len(t, markets, 3) // h2h, totals, both_teams_to_score
}
