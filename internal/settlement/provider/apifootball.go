package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// FixtureResult é o resultado final de uma partida, consumido uma vez por
// execução do settlement-job. Não é persistido.
type FixtureResult struct {
	FixtureID int64
	HomeTeam  string
	AwayTeam  string
	HomeGoals int
	AwayGoals int
	Finished  bool
}

// FootballClient consulta resultados de partidas no provedor de futebol
// (formato api-football v3).
type FootballClient struct {
	BaseURL  string
	APIKey   string
	LeagueID int
	HTTP     *http.Client
	Log      *zap.Logger
}

func NewFootballClient(baseURL, apiKey string, leagueID int, log *zap.Logger) *FootballClient {
	return &FootballClient{
		BaseURL:  baseURL,
		APIKey:   apiKey,
		LeagueID: leagueID,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
		Log:      log,
	}
}

// Envelope de resposta do provedor
type fixturesEnvelope struct {
	Response []struct {
		Fixture struct {
			ID     int64 `json:"id"`
			Status struct {
				Short string `json:"short"`
			} `json:"status"`
		} `json:"fixture"`
		Teams struct {
			Home struct {
				Name string `json:"name"`
			} `json:"home"`
			Away struct {
				Name string `json:"name"`
			} `json:"away"`
		} `json:"teams"`
		Goals struct {
			Home int `json:"home"`
			Away int `json:"away"`
		} `json:"goals"`
	} `json:"response"`
}

// FinishedFixtures retorna as partidas encerradas (status FT) da liga para a
// data informada (YYYY-MM-DD). Qualquer falha de rede ou status não-2xx é
// retornada como erro: o settlement-job aborta a execução inteira.
func (c *FootballClient) FinishedFixtures(ctx context.Context, date string) ([]FixtureResult, error) {
	q := url.Values{}
	q.Set("league", strconv.Itoa(c.LeagueID))
	q.Set("date", date)
	q.Set("status", "FT")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/fixtures?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-rapidapi-key", c.APIKey)
	req.Header.Set("x-rapidapi-host", req.URL.Host)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("football provider request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("football provider http %d", res.StatusCode)
	}

	var env fixturesEnvelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("football provider decode: %w", err)
	}

	out := make([]FixtureResult, 0, len(env.Response))
	for _, item := range env.Response {
		out = append(out, FixtureResult{
			FixtureID: item.Fixture.ID,
			HomeTeam:  item.Teams.Home.Name,
			AwayTeam:  item.Teams.Away.Name,
			HomeGoals: item.Goals.Home,
			AwayGoals: item.Goals.Away,
			Finished:  item.Fixture.Status.Short == "FT",
		})
	}

	if c.Log != nil {
		c.Log.Info("fixtures fetched", zap.String("date", date), zap.Int("count", len(out)))
	}
	return out, nil
}
