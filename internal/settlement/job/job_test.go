package job

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fvelazquezb100/betadona/internal/settlement/provider"
	"github.com/fvelazquezb100/betadona/internal/settlement/repo"
	"github.com/fvelazquezb100/betadona/pkg/contracts/events"
)

// ---- fakes ----

type fakeProvider struct {
	fixtures []provider.FixtureResult
	err      error
}

func (f *fakeProvider) FinishedFixtures(ctx context.Context, date string) ([]provider.FixtureResult, error) {
	return f.fixtures, f.err
}

type settledBet struct {
	status      string
	payoutCents int64
}

type fakeBetStore struct {
	pending []repo.PendingBet
	settled map[string]settledBet
	failIDs map[string]bool
	// staleList simula uma listagem feita antes de outra execução liquidar
	staleList bool
}

func newFakeBetStore(pending ...repo.PendingBet) *fakeBetStore {
	return &fakeBetStore{
		pending: pending,
		settled: make(map[string]settledBet),
		failIDs: make(map[string]bool),
	}
}

func (f *fakeBetStore) PendingBets(ctx context.Context) ([]repo.PendingBet, error) {
	out := make([]repo.PendingBet, 0, len(f.pending))
	for _, b := range f.pending {
		if _, done := f.settled[b.ID]; done && !f.staleList {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBetStore) SettleBet(ctx context.Context, betID, status string, payoutCents int64) (bool, error) {
	if f.failIDs[betID] {
		return false, errors.New("db down")
	}
	if _, done := f.settled[betID]; done {
		return false, nil // já liquidada por outra execução
	}
	f.settled[betID] = settledBet{status: status, payoutCents: payoutCents}
	return true, nil
}

type profileUpdate struct {
	payoutCents int64
	budgetCents int64
}

type fakeProfileStore struct {
	profiles []repo.Profile
	updates  map[string][]profileUpdate
	failIDs  map[string]bool
}

func newFakeProfileStore(ids ...string) *fakeProfileStore {
	s := &fakeProfileStore{
		updates: make(map[string][]profileUpdate),
		failIDs: make(map[string]bool),
	}
	for _, id := range ids {
		s.profiles = append(s.profiles, repo.Profile{ID: id, Username: "user-" + id})
	}
	return s
}

func (f *fakeProfileStore) Profiles(ctx context.Context) ([]repo.Profile, error) {
	return f.profiles, nil
}

func (f *fakeProfileStore) ApplyMatchday(ctx context.Context, userID string, payoutCents, budgetCents int64) error {
	if f.failIDs[userID] {
		return errors.New("db down")
	}
	f.updates[userID] = append(f.updates[userID], profileUpdate{payoutCents, budgetCents})
	return nil
}

type fakePublisher struct {
	betEvents      []events.BetSettled
	matchdayEvents []events.MatchdaySettled
}

func (f *fakePublisher) PublishBetSettled(ctx context.Context, e events.BetSettled) error {
	f.betEvents = append(f.betEvents, e)
	return nil
}

func (f *fakePublisher) PublishMatchdaySettled(ctx context.Context, e events.MatchdaySettled) error {
	f.matchdayEvents = append(f.matchdayEvents, e)
	return nil
}

// ---- helpers ----

var clasico = provider.FixtureResult{
	FixtureID: 1001,
	HomeTeam:  "Real Madrid",
	AwayTeam:  "Barcelona",
	HomeGoals: 2,
	AwayGoals: 1,
	Finished:  true,
}

func textBet(id, user, selection string, stakeCents int64, odds float64) repo.PendingBet {
	return repo.PendingBet{
		ID:               id,
		UserID:           user,
		MatchDescription: "Real Madrid vs Barcelona",
		BetSelection:     selection,
		StakeCents:       stakeCents,
		Odds:             odds,
	}
}

func newJob(p *fakeProvider, bets *fakeBetStore, profiles *fakeProfileStore, pub *fakePublisher) *Job {
	return &Job{
		Log:         zap.NewNop(),
		Provider:    p,
		Bets:        bets,
		Profiles:    profiles,
		Publisher:   pub,
		BudgetCents: 100000,
	}
}

// ---- tests ----

func TestRunSettlesMatchday(t *testing.T) {
	bets := newFakeBetStore(
		textBet("b1", "u1", "Match Winner: Real Madrid", 10000, 2.10),
		textBet("b2", "u1", "Match Winner: Draw", 5000, 3.50),
		textBet("b3", "u2", "Under 2.5 Goals", 7500, 1.95),
		textBet("b4", "u2", "Both Teams To Score - Yes", 20000, 1.80),
	)
	profiles := newFakeProfileStore("u1", "u2", "u3")
	pub := &fakePublisher{}
	j := newJob(&fakeProvider{fixtures: []provider.FixtureResult{clasico}}, bets, profiles, pub)

	sum, err := j.Run(context.Background(), "2026-08-30")
	require.NoError(t, err)

	assert.Equal(t, 1, sum.FixturesFound)
	assert.Equal(t, 4, sum.BetsSettled)
	assert.Equal(t, 0, sum.BetsSkipped)
	assert.Equal(t, 3, sum.ProfilesReset)

	// 2-1: vitória do mandante, 3 gols, ambos marcam
	assert.Equal(t, settledBet{"won", 11000}, bets.settled["b1"])
	assert.Equal(t, settledBet{"lost", -5000}, bets.settled["b2"])
	assert.Equal(t, settledBet{"lost", -7500}, bets.settled["b3"])
	assert.Equal(t, settledBet{"won", 16000}, bets.settled["b4"])

	// payout líquido acumulado por usuário; quem não apostou recebe 0
	require.Len(t, profiles.updates["u1"], 1)
	assert.Equal(t, profileUpdate{6000, 100000}, profiles.updates["u1"][0])
	assert.Equal(t, profileUpdate{8500, 100000}, profiles.updates["u2"][0])
	assert.Equal(t, profileUpdate{0, 100000}, profiles.updates["u3"][0])

	assert.Len(t, pub.betEvents, 4)
	require.Len(t, pub.matchdayEvents, 1)
	assert.Equal(t, 4, pub.matchdayEvents[0].BetsSettled)
}

func TestRunSettlesUnlabeledSelections(t *testing.T) {
	bets := newFakeBetStore(
		textBet("b1", "u1", "Real Madrid to Win", 10000, 2.10),
		textBet("b2", "u2", "Draw", 5000, 3.50),
	)
	profiles := newFakeProfileStore("u1", "u2")
	j := newJob(&fakeProvider{fixtures: []provider.FixtureResult{clasico}}, bets, profiles, &fakePublisher{})

	sum, err := j.Run(context.Background(), "2026-08-30")
	require.NoError(t, err)

	assert.Equal(t, 2, sum.BetsSettled)
	assert.Equal(t, settledBet{"won", 11000}, bets.settled["b1"])
	assert.Equal(t, settledBet{"lost", -5000}, bets.settled["b2"])
}

func TestRunIsIdempotent(t *testing.T) {
	bets := newFakeBetStore(textBet("b1", "u1", "Match Winner: Real Madrid", 10000, 2.10))
	profiles := newFakeProfileStore("u1")
	j := newJob(&fakeProvider{fixtures: []provider.FixtureResult{clasico}}, bets, profiles, &fakePublisher{})

	_, err := j.Run(context.Background(), "2026-08-30")
	require.NoError(t, err)

	// segunda execução do mesmo dia: nada pendente, nenhum crédito repetido
	sum, err := j.Run(context.Background(), "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, 0, sum.BetsSettled)

	var creditTotal int64
	for _, u := range profiles.updates["u1"] {
		creditTotal += u.payoutCents
	}
	assert.Equal(t, int64(11000), creditTotal)
}

func TestRunConcurrentSettleLosesRace(t *testing.T) {
	bets := newFakeBetStore(textBet("b1", "u1", "Match Winner: Real Madrid", 10000, 2.10))
	// outra execução liquidou a aposta entre a listagem e o update
	bets.settled["b1"] = settledBet{"won", 11000}
	bets.staleList = true

	profiles := newFakeProfileStore("u1")
	pub := &fakePublisher{}
	j := newJob(&fakeProvider{fixtures: []provider.FixtureResult{clasico}}, bets, profiles, pub)

	sum, err := j.Run(context.Background(), "2026-08-30")
	require.NoError(t, err)

	// a aposta já liquidada é pulada: sem crédito e sem evento repetidos
	assert.Equal(t, 0, sum.BetsSettled)
	assert.Equal(t, 1, sum.BetsSkipped)
	assert.Empty(t, pub.betEvents)
	assert.Equal(t, profileUpdate{0, 100000}, profiles.updates["u1"][0])
}

func TestRunProviderFailureAborts(t *testing.T) {
	bets := newFakeBetStore(textBet("b1", "u1", "Match Winner: Real Madrid", 10000, 2.10))
	profiles := newFakeProfileStore("u1")
	j := newJob(&fakeProvider{err: errors.New("api-football 500")}, bets, profiles, &fakePublisher{})

	_, err := j.Run(context.Background(), "2026-08-30")
	require.Error(t, err)

	// nada foi tocado
	assert.Empty(t, bets.settled)
	assert.Empty(t, profiles.updates)
}

func TestRunNoFixturesIsNotAnError(t *testing.T) {
	bets := newFakeBetStore(textBet("b1", "u1", "Match Winner: Real Madrid", 10000, 2.10))
	profiles := newFakeProfileStore("u1")
	j := newJob(&fakeProvider{}, bets, profiles, &fakePublisher{})

	sum, err := j.Run(context.Background(), "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, 0, sum.FixturesFound)
	assert.Empty(t, bets.settled)
	assert.Empty(t, profiles.updates) // perfis só são tocados quando há partidas
}

func TestRunUngradeableBetStaysPending(t *testing.T) {
	bets := newFakeBetStore(
		textBet("b1", "u1", "Correct Score: 2-1", 10000, 8.00),
		textBet("b2", "u1", "Match Winner: Real Madrid", 10000, 2.10),
	)
	profiles := newFakeProfileStore("u1")
	j := newJob(&fakeProvider{fixtures: []provider.FixtureResult{clasico}}, bets, profiles, &fakePublisher{})

	sum, err := j.Run(context.Background(), "2026-08-30")
	require.NoError(t, err)

	assert.Equal(t, 1, sum.BetsSettled)
	assert.Equal(t, 1, sum.BetsSkipped)
	_, settled := bets.settled["b1"]
	assert.False(t, settled)
}

func TestRunBetWithoutFixtureStaysPending(t *testing.T) {
	other := textBet("b1", "u1", "Match Winner: Sevilla", 10000, 2.40)
	other.MatchDescription = "Sevilla vs Getafe"

	bets := newFakeBetStore(other)
	profiles := newFakeProfileStore("u1")
	j := newJob(&fakeProvider{fixtures: []provider.FixtureResult{clasico}}, bets, profiles, &fakePublisher{})

	sum, err := j.Run(context.Background(), "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, 0, sum.BetsSettled)
	assert.Equal(t, 1, sum.BetsSkipped)
}

func TestRunUnfinishedFixtureStaysPending(t *testing.T) {
	live := clasico
	live.Finished = false

	bets := newFakeBetStore(textBet("b1", "u1", "Match Winner: Real Madrid", 10000, 2.10))
	profiles := newFakeProfileStore("u1")
	j := newJob(&fakeProvider{fixtures: []provider.FixtureResult{live}}, bets, profiles, &fakePublisher{})

	sum, err := j.Run(context.Background(), "2026-08-30")
	require.NoError(t, err)

	// placar parcial não grada nada
	assert.Equal(t, 0, sum.BetsSettled)
	assert.Equal(t, 1, sum.BetsSkipped)
	assert.Empty(t, bets.settled)
}

func TestRunStructuredSelectionWins(t *testing.T) {
	bet := repo.PendingBet{
		ID:               "b1",
		UserID:           "u1",
		MatchDescription: "Real Madrid vs Barcelona",
		BetSelection:     "texto ilegível",
		StakeCents:       10000,
		Odds:             1.90,
	}
	bet.MarketKind.String, bet.MarketKind.Valid = "over_under", true
	bet.Pick.String, bet.Pick.Valid = "over", true
	bet.Threshold.Float64, bet.Threshold.Valid = 2.5, true
	bet.FixtureID.Int64, bet.FixtureID.Valid = 1001, true

	bets := newFakeBetStore(bet)
	profiles := newFakeProfileStore("u1")
	j := newJob(&fakeProvider{fixtures: []provider.FixtureResult{clasico}}, bets, profiles, &fakePublisher{})

	sum, err := j.Run(context.Background(), "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.BetsSettled)
	assert.Equal(t, settledBet{"won", 9000}, bets.settled["b1"])
}

func TestRunProfileFailureDoesNotAbortOthers(t *testing.T) {
	bets := newFakeBetStore(textBet("b1", "u1", "Match Winner: Real Madrid", 10000, 2.10))
	profiles := newFakeProfileStore("u1", "u2")
	profiles.failIDs["u1"] = true

	j := newJob(&fakeProvider{fixtures: []provider.FixtureResult{clasico}}, bets, profiles, &fakePublisher{})

	sum, err := j.Run(context.Background(), "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.ProfilesFailed)
	assert.Equal(t, 1, sum.ProfilesReset)
	assert.Len(t, profiles.updates["u2"], 1)
}

func TestRunPersistFailureSkipsBet(t *testing.T) {
	bets := newFakeBetStore(
		textBet("b1", "u1", "Match Winner: Real Madrid", 10000, 2.10),
		textBet("b2", "u2", "Match Winner: Draw", 5000, 3.50),
	)
	bets.failIDs["b1"] = true
	profiles := newFakeProfileStore("u1", "u2")

	j := newJob(&fakeProvider{fixtures: []provider.FixtureResult{clasico}}, bets, profiles, &fakePublisher{})

	sum, err := j.Run(context.Background(), "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.BetsSettled)
	assert.Equal(t, 1, sum.BetsSkipped)

	// a falha de persistência não pode creditar o usuário
	assert.Equal(t, profileUpdate{0, 100000}, profiles.updates["u1"][0])
	assert.Equal(t, profileUpdate{-5000, 100000}, profiles.updates["u2"][0])
}
