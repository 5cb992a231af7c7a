package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinishedFixtures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fixtures", r.URL.Path)
		assert.Equal(t, "140", r.URL.Query().Get("league"))
		assert.Equal(t, "2026-08-30", r.URL.Query().Get("date"))
		assert.Equal(t, "FT", r.URL.Query().Get("status"))
		assert.Equal(t, "test-key", r.Header.Get("x-rapidapi-key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"results": 1,
			"response": [
				{
					"fixture": {"id": 1001, "status": {"short": "FT"}},
					"teams": {"home": {"name": "Real Madrid"}, "away": {"name": "Barcelona"}},
					"goals": {"home": 2, "away": 1}
				}
			]
		}`))
	}))
	defer srv.Close()

	c := NewFootballClient(srv.URL, "test-key", 140, nil)
	fixtures, err := c.FinishedFixtures(context.Background(), "2026-08-30")
	require.NoError(t, err)
	require.Len(t, fixtures, 1)

	fx := fixtures[0]
	assert.Equal(t, int64(1001), fx.FixtureID)
	assert.Equal(t, "Real Madrid", fx.HomeTeam)
	assert.Equal(t, "Barcelona", fx.AwayTeam)
	assert.Equal(t, 2, fx.HomeGoals)
	assert.Equal(t, 1, fx.AwayGoals)
	assert.True(t, fx.Finished)
}

func TestFinishedFixturesEmptyDay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": 0, "response": []}`))
	}))
	defer srv.Close()

	c := NewFootballClient(srv.URL, "test-key", 140, nil)
	fixtures, err := c.FinishedFixtures(context.Background(), "2026-08-30")
	require.NoError(t, err)
	assert.Empty(t, fixtures)
}

func TestFinishedFixturesProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewFootballClient(srv.URL, "test-key", 140, nil)
	_, err := c.FinishedFixtures(context.Background(), "2026-08-30")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
