package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fvelazquezb100/betadona/internal/bet-service/budget"
	"github.com/fvelazquezb100/betadona/internal/bet-service/dto"
	"github.com/fvelazquezb100/betadona/internal/bet-service/repo"
)

func postBets(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	s := NewServer(zap.NewNop(), nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/bets", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestPlaceBetsRejectsBadJSON(t *testing.T) {
	rec := postBets(t, "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_payload", decodeError(t, rec).Reason)
}

func TestPlaceBetsRequiresUser(t *testing.T) {
	rec := postBets(t, `{"matchday":3,"bets":[{"match_description":"Real Madrid vs Barcelona","bet_selection":"Match Winner: Real Madrid","stake_cents":10000,"odds":2.1}]}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthenticated", decodeError(t, rec).Reason)
}

func TestPlaceBetsRejectsEmptyBatch(t *testing.T) {
	rec := postBets(t, `{"userId":"u1","matchday":3,"bets":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlaceBetsRejectsOddsAtOrBelowOne(t *testing.T) {
	body := `{"userId":"u1","matchday":3,"bets":[{"match_description":"Real Madrid vs Barcelona","bet_selection":"Match Winner: Real Madrid","stake_cents":10000,"odds":%s}]}`
	for _, odds := range []string{"1.0", "0.5", "0"} {
		rec := postBets(t, fmt.Sprintf(body, odds))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "odds=%s", odds)
	}
}

func TestListBetsRequiresUser(t *testing.T) {
	s := NewServer(zap.NewNop(), nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/v1/bets", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPlacementErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantReason string
	}{
		{budget.ErrInsufficientBudget, http.StatusUnprocessableEntity, "insufficient_budget"},
		{budget.ErrBetCapExceeded, http.StatusUnprocessableEntity, "bet_cap_exceeded"},
		{budget.ErrInvalidStake, http.StatusBadRequest, "invalid_stake"},
		{budget.ErrEmptyBatch, http.StatusBadRequest, "invalid_payload"},
		{repo.ErrProfileNotFound, http.StatusUnauthorized, "unauthenticated"},
		{errors.New("pg down"), http.StatusInternalServerError, "internal"},
	}
	for _, tt := range tests {
		status, reason := placementError(tt.err)
		assert.Equal(t, tt.wantStatus, status, tt.err.Error())
		assert.Equal(t, tt.wantReason, reason, tt.err.Error())
	}
}
