package game

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerhands/internal/history"
	"github.com/lox/pokerhands/poker"
)

var epoch = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestGame(t *testing.T, names []string, opts ...Option) (*Game, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	clock.Set(epoch)
	g, err := New(names, append([]Option{WithSeed(42), WithClock(clock), WithID("test-game")}, opts...)...)
	require.NoError(t, err)
	return g, clock
}

// dealtCards returns every card currently held, failing on duplicates.
func dealtCards(t *testing.T, g *Game) map[poker.Card]bool {
	t.Helper()
	seen := make(map[poker.Card]bool)
	for _, p := range g.Players() {
		for _, c := range p.Hand.Cards() {
			require.False(t, seen[c], "card %s dealt twice", c)
			seen[c] = true
		}
	}
	return seen
}

func TestNewDealsEveryPlayer(t *testing.T) {
	t.Parallel()

	g, _ := newTestGame(t, []string{"alice", "bob", "carol"})

	players := g.Players()
	require.Len(t, players, 3)
	assert.Equal(t, "alice", players[0].Name)
	assert.Equal(t, "bob", players[1].Name)
	assert.Equal(t, "carol", players[2].Name)
	assert.Len(t, dealtCards(t, g), 15)
	assert.Equal(t, poker.DeckSize-15, g.deck.Remaining())

	state := g.Snapshot()
	assert.Equal(t, "test-game", state.GameID)
	assert.Equal(t, 1, state.Deal)
	assert.True(t, state.DealtAt.Equal(epoch))
	assert.NotEmpty(t, state.Winners)
}

func TestNewValidatesNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		names []string
		err   error
	}{
		{"blank name", []string{"alice", "  "}, ErrEmptyName},
		{"duplicate", []string{"alice", "bob", "alice"}, ErrDuplicateName},
		{"duplicate after trim", []string{"alice", " alice "}, ErrDuplicateName},
		{"eleven players", []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}, ErrTooManyPlayers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tt.names, WithSeed(1))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestNewWithoutPlayers(t *testing.T) {
	t.Parallel()

	g, _ := newTestGame(t, nil)
	state := g.Snapshot()
	assert.Empty(t, state.Players)
	assert.Empty(t, state.Winners)
	assert.NotNil(t, state.Winners)
}

func TestSeedIsDeterministic(t *testing.T) {
	t.Parallel()

	a, _ := newTestGame(t, []string{"alice", "bob"})
	b, _ := newTestGame(t, []string{"alice", "bob"})
	assert.Equal(t, a.Snapshot().Players, b.Snapshot().Players)
}

func TestAddPlayer(t *testing.T) {
	t.Parallel()

	g, _ := newTestGame(t, []string{"alice"})
	require.NoError(t, g.AddPlayer("  bob "))

	players := g.Players()
	require.Len(t, players, 2)
	assert.Equal(t, "bob", players[1].Name)
	assert.Len(t, dealtCards(t, g), 10)
	assert.Equal(t, 1, g.Snapshot().Deal, "joining does not start a new deal")

	assert.ErrorIs(t, g.AddPlayer(""), ErrEmptyName)
	assert.ErrorIs(t, g.AddPlayer("bob"), ErrDuplicateName)
}

func TestAddPlayerUpToTen(t *testing.T) {
	t.Parallel()

	g, _ := newTestGame(t, nil)
	for i := range MaxPlayers {
		require.NoError(t, g.AddPlayer(fmt.Sprintf("p%d", i)))
	}
	assert.Len(t, dealtCards(t, g), 50)
	assert.ErrorIs(t, g.AddPlayer("one-too-many"), ErrTooManyPlayers)
}

func TestRemovePlayerReturnsCards(t *testing.T) {
	t.Parallel()

	g, _ := newTestGame(t, []string{"alice", "bob", "carol"})
	require.NoError(t, g.RemovePlayer("bob"))

	players := g.Players()
	require.Len(t, players, 2)
	assert.Equal(t, "alice", players[0].Name)
	assert.Equal(t, "carol", players[1].Name)
	assert.Equal(t, poker.DeckSize-10, g.deck.Remaining())
	assert.NotContains(t, g.Winners(), "bob")

	assert.ErrorIs(t, g.RemovePlayer("bob"), ErrPlayerNotFound)
}

func TestRedealReplacesHands(t *testing.T) {
	t.Parallel()

	g, clock := newTestGame(t, []string{"alice", "bob"})
	before := g.Snapshot()

	clock.Advance(time.Minute)
	require.NoError(t, g.Redeal())
	after := g.Snapshot()

	assert.Equal(t, 2, after.Deal)
	assert.True(t, after.DealtAt.Equal(epoch.Add(time.Minute)))
	assert.NotEqual(t, before.Players, after.Players)
	assert.Len(t, dealtCards(t, g), 10)
	assert.Equal(t, poker.DeckSize-10, g.deck.Remaining())
}

func TestWinnersAreRecomputed(t *testing.T) {
	t.Parallel()

	g, _ := newTestGame(t, []string{"alice", "bob", "carol", "dave"})
	for range 5 {
		require.NoError(t, g.Redeal())

		state := g.Snapshot()
		var best int64
		for _, p := range state.Players {
			best = max(best, p.Score)
		}
		var want []string
		for _, p := range state.Players {
			assert.Equal(t, p.Score == best, p.Winner, p.Name)
			if p.Score == best {
				want = append(want, p.Name)
			}
		}
		assert.Equal(t, want, state.Winners)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	t.Parallel()

	g, _ := newTestGame(t, []string{"alice", "bob"})
	state := g.Snapshot()
	state.Players[0].Name = "mallory"
	state.Winners = append(state.Winners, "mallory")

	fresh := g.Snapshot()
	assert.Equal(t, "alice", fresh.Players[0].Name)
	assert.NotContains(t, fresh.Winners, "mallory")
}

func TestSnapshotDescribesHands(t *testing.T) {
	t.Parallel()

	g, _ := newTestGame(t, []string{"alice"})
	p := g.Snapshot().Players[0]
	hand, err := poker.ParseHand(p.Hand)
	require.NoError(t, err)
	assert.Equal(t, hand.String(), p.Display)
	assert.Equal(t, hand.Category().String(), p.Category)
	assert.Equal(t, hand.Score(), p.Score)
	assert.True(t, p.Winner)
}

func TestRoundsAreRecorded(t *testing.T) {
	t.Parallel()

	store := history.NewMemoryStore()
	g, clock := newTestGame(t, []string{"alice", "bob"}, WithRecorder(store))
	require.NoError(t, g.AddPlayer("carol"))
	clock.Advance(time.Second)
	require.NoError(t, g.RemovePlayer("alice"))
	require.NoError(t, g.Redeal())

	rounds, err := store.List(context.Background(), "test-game")
	require.NoError(t, err)
	require.Len(t, rounds, 4)

	events := make([]history.Event, len(rounds))
	for i, r := range rounds {
		events[i] = r.Event
		assert.Equal(t, i+1, r.Seq)
	}
	assert.Equal(t, []history.Event{history.EventDeal, history.EventJoin, history.EventLeave, history.EventRedeal}, events)
	assert.Len(t, rounds[1].Seats, 3)
	assert.Len(t, rounds[2].Seats, 2)
	assert.Equal(t, 2, rounds[3].Deal)
	assert.True(t, rounds[2].At.Equal(epoch.Add(time.Second)))

	last := g.Snapshot()
	assert.Equal(t, last.Winners, rounds[3].Winners)
}

type failingRecorder struct{}

func (failingRecorder) Record(context.Context, history.Round) error {
	return fmt.Errorf("disk full")
}

func (failingRecorder) List(context.Context, string) ([]history.Round, error) {
	return nil, nil
}

func TestRecorderFailureDoesNotBlockPlay(t *testing.T) {
	t.Parallel()

	g, _ := newTestGame(t, []string{"alice"}, WithRecorder(failingRecorder{}))
	assert.NoError(t, g.AddPlayer("bob"))
	assert.NoError(t, g.Redeal())
}

func TestReusedIDContinuesSequence(t *testing.T) {
	t.Parallel()

	store := history.NewMemoryStore()
	for range 2 {
		g, _ := newTestGame(t, []string{"alice", "bob"}, WithRecorder(store))
		require.NoError(t, g.Redeal())
	}

	rounds, err := store.List(context.Background(), "test-game")
	require.NoError(t, err)
	require.Len(t, rounds, 4)
	for i, r := range rounds {
		assert.Equal(t, i+1, r.Seq)
	}
	assert.Equal(t, []history.Event{history.EventDeal, history.EventRedeal, history.EventDeal, history.EventRedeal},
		[]history.Event{rounds[0].Event, rounds[1].Event, rounds[2].Event, rounds[3].Event})
}

func TestNewRejectsInvalidID(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"../escape", "a/b", "table 1"} {
		_, err := New([]string{"alice"}, WithID(id))
		assert.ErrorIs(t, err, ErrInvalidID, id)
	}
}

type unreadableRecorder struct{}

func (unreadableRecorder) Record(context.Context, history.Round) error {
	return nil
}

func (unreadableRecorder) List(context.Context, string) ([]history.Round, error) {
	return nil, fmt.Errorf("connection refused")
}

func TestNewFailsWhenHistoryIsUnreadable(t *testing.T) {
	t.Parallel()

	_, err := New([]string{"alice"}, WithID("table-1"), WithRecorder(unreadableRecorder{}))
	assert.ErrorContains(t, err, "connection refused")
}

// blockingRecorder holds every Record call until release is closed.
type blockingRecorder struct {
	entered chan struct{}
	release chan struct{}
}

func (r *blockingRecorder) Record(context.Context, history.Round) error {
	r.entered <- struct{}{}
	<-r.release
	return nil
}

func (r *blockingRecorder) List(context.Context, string) ([]history.Round, error) {
	return nil, nil
}

func TestRecordingDoesNotHoldTheTable(t *testing.T) {
	t.Parallel()

	rec := &blockingRecorder{entered: make(chan struct{}, 1), release: make(chan struct{})}
	done := make(chan error, 1)
	var g *Game
	go func() {
		var err error
		g, err = New([]string{"alice", "bob"}, WithSeed(7), WithRecorder(rec))
		done <- err
	}()
	<-rec.entered
	close(rec.release)
	require.NoError(t, <-done)

	rec.release = make(chan struct{})
	redealt := make(chan error, 1)
	go func() { redealt <- g.Redeal() }()
	<-rec.entered

	state := g.Snapshot()
	assert.Equal(t, 2, state.Deal, "snapshot should see the redeal while it is being recorded")
	assert.Len(t, g.Players(), 2)

	close(rec.release)
	require.NoError(t, <-redealt)
}

func TestConcurrentMutations(t *testing.T) {
	t.Parallel()

	g, _ := newTestGame(t, []string{"alice", "bob"})

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("guest-%d", i)
			_ = g.AddPlayer(name)
			_ = g.Redeal()
			_ = g.Snapshot()
			_ = g.RemovePlayer(name)
		}()
	}
	wg.Wait()

	assert.Len(t, g.Players(), 2)
	dealtCards(t, g)
}
