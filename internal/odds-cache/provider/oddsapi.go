package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Formato bruto do provedor de odds (the-odds-api v4)
type rawMatch struct {
	ID           string    `json:"id"`
	CommenceTime time.Time `json:"commence_time"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
	Bookmakers   []struct {
		Key     string `json:"key"`
		Markets []struct {
			Key      string `json:"key"`
			Outcomes []struct {
				Name  string  `json:"name"`
				Price float64 `json:"price"`
				Point float64 `json:"point"`
			} `json:"outcomes"`
		} `json:"markets"`
	} `json:"bookmakers"`
}

// MatchOdds é a forma consumida pelo frontend e gravada no cache.
// Quando um mercado não vem do bookmaker, valem os defaults.
type MatchOdds struct {
	MatchID   string    `json:"matchId"`
	HomeTeam  string    `json:"homeTeam"`
	AwayTeam  string    `json:"awayTeam"`
	StartTime time.Time `json:"startTime"`

	Odds             WinOdds    `json:"odds"`
	Totals           TotalOdds  `json:"totals"`
	BothTeamsToScore YesNoOdds  `json:"bothTeamsToScore"`
}

type WinOdds struct {
	HomeWin float64 `json:"homeWin"`
	Draw    float64 `json:"draw"`
	AwayWin float64 `json:"awayWin"`
}

// Linhas de gols 0.5–3.5, como o frontend exibe
type TotalOdds struct {
	Over05  float64 `json:"over05"`
	Under05 float64 `json:"under05"`
	Over15  float64 `json:"over15"`
	Under15 float64 `json:"under15"`
	Over25  float64 `json:"over25"`
	Under25 float64 `json:"under25"`
	Over35  float64 `json:"over35"`
	Under35 float64 `json:"under35"`
}

type YesNoOdds struct {
	Yes float64 `json:"yes"`
	No  float64 `json:"no"`
}

// OddsClient consulta as odds da LaLiga no provedor
type OddsClient struct {
	BaseURL  string
	APIKey   string
	SportKey string
	HTTP     *http.Client
	Log      *zap.Logger
}

func NewOddsClient(baseURL, apiKey, sportKey string, log *zap.Logger) *OddsClient {
	return &OddsClient{
		BaseURL:  baseURL,
		APIKey:   apiKey,
		SportKey: sportKey,
		HTTP:     &http.Client{Timeout: 15 * time.Second},
		Log:      log,
	}
}

// UpcomingOdds busca as próximas partidas com os mercados h2h, totals e
// both_teams_to_score, já transformadas para a forma do cache.
func (c *OddsClient) UpcomingOdds(ctx context.Context) ([]MatchOdds, error) {
	q := url.Values{}
	q.Set("apiKey", c.APIKey)
	q.Set("regions", "eu")
	q.Set("markets", "h2h,totals,both_teams_to_score")
	q.Set("oddsFormat", "decimal")
	q.Set("dateFormat", "iso")

	endpoint := fmt.Sprintf("%s/v4/sports/%s/odds?%s", c.BaseURL, c.SportKey, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("odds provider request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("odds provider http %d", res.StatusCode)
	}

	var raw []rawMatch
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("odds provider decode: %w", err)
	}

	out := make([]MatchOdds, 0, len(raw))
	for _, m := range raw {
		out = append(out, transform(m))
	}
	if c.Log != nil {
		c.Log.Info("odds fetched", zap.Int("matches", len(out)))
	}
	return out, nil
}

// transform extrai os mercados do primeiro bookmaker, com defaults quando o
// mercado não está disponível (mesma regra da versão anterior do cache).
func transform(m rawMatch) MatchOdds {
	out := MatchOdds{
		MatchID:   m.ID,
		HomeTeam:  m.HomeTeam,
		AwayTeam:  m.AwayTeam,
		StartTime: m.CommenceTime,
		Odds:      WinOdds{HomeWin: 2.00, Draw: 3.00, AwayWin: 2.50},
		Totals: TotalOdds{
			Over05: 2.20, Under05: 1.65,
			Over15: 1.85, Under15: 1.95,
			Over25: 2.00, Under25: 1.80,
			Over35: 2.40, Under35: 1.55,
		},
		BothTeamsToScore: YesNoOdds{Yes: 1.85, No: 1.95},
	}

	if len(m.Bookmakers) == 0 {
		return out
	}
	bk := m.Bookmakers[0] // primeiro bookmaker, por simplicidade

	for _, market := range bk.Markets {
		switch market.Key {
		case "h2h":
			for _, o := range market.Outcomes {
				switch o.Name {
				case m.HomeTeam:
					out.Odds.HomeWin = o.Price
				case m.AwayTeam:
					out.Odds.AwayWin = o.Price
				case "Draw":
					out.Odds.Draw = o.Price
				}
			}
		case "totals":
			for _, o := range market.Outcomes {
				over := o.Name == "Over"
				switch o.Point {
				case 0.5:
					setLine(&out.Totals.Over05, &out.Totals.Under05, over, o.Price)
				case 1.5:
					setLine(&out.Totals.Over15, &out.Totals.Under15, over, o.Price)
				case 2.5:
					setLine(&out.Totals.Over25, &out.Totals.Under25, over, o.Price)
				case 3.5:
					setLine(&out.Totals.Over35, &out.Totals.Under35, over, o.Price)
				}
			}
		case "both_teams_to_score":
			for _, o := range market.Outcomes {
				if o.Name == "Yes" {
					out.BothTeamsToScore.Yes = o.Price
				} else if o.Name == "No" {
					out.BothTeamsToScore.No = o.Price
				}
			}
		}
	}
	return out
}

func setLine(over, under *float64, isOver bool, price float64) {
	if isOver {
		*over = price
	} else {
		*under = price
	}
}
