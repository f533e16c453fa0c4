package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pitchside/transfer-market-service/internal/domain"
	publisher "github.com/pitchside/transfer-market-service/internal/infrastructure/kafka"
	"github.com/pitchside/transfer-market-service/internal/infrastructure/memstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRosterPublisher struct {
	events chan publisher.RosterReadyEvent
}

func newFakeRosterPublisher() *fakeRosterPublisher {
	return &fakeRosterPublisher{events: make(chan publisher.RosterReadyEvent, 8)}
}

func (f *fakeRosterPublisher) PublishRosterReady(event publisher.RosterReadyEvent) error {
	f.events <- event
	return nil
}

func createUser(t *testing.T, store domain.Store, id, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:       id,
		Email:    username + "@example.com",
		Username: username,
		Name:     "Test",
		LastName: "User",
	}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return user
}

// seedDraftPool creates perPosition players per position with market values
// base, base+step, base+2*step, ... so the cheapest picks are predictable.
func seedDraftPool(t *testing.T, store domain.Store, perPosition int, base, step int64) {
	t.Helper()
	var players []domain.Player
	for _, position := range domain.Positions {
		for i := 0; i < perPosition; i++ {
			players = append(players, domain.Player{
				Name:        fmt.Sprintf("%s Player %d", position, i),
				Position:    position,
				MarketValue: decimal.NewFromInt(base + int64(i)*step),
			})
		}
	}
	require.NoError(t, store.Players().BulkCreate(context.Background(), players))
}

func TestDraftSquadDraftsCheapestPlayersWithinBudget(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewMemoryStore()
	pub := newFakeRosterPublisher()
	uc := NewDefaultTeamUsecase(store, pub, nil)

	createUser(t, store, "user-1", "alice")
	seedDraftPool(t, store, 30, 1000, 100)

	require.NoError(t, uc.DraftSquad(ctx, "user-1"))

	team, err := uc.GetTeamWithPlayers(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Team of alice", team.Name)
	require.Len(t, team.Players, 20)

	// The cheapest candidates per position cost base..base+(quota-1)*step.
	totalCost := decimal.Zero
	byPosition := make(map[string]int)
	for _, player := range team.Players {
		byPosition[player.Position]++
		totalCost = totalCost.Add(player.MarketValue)
	}
	assert.Equal(t, 1, byPosition["GK"])
	assert.Equal(t, 7, byPosition["DF"])
	assert.Equal(t, 7, byPosition["MF"])
	assert.Equal(t, 5, byPosition["FW"])

	var expectedCost int64
	for _, quota := range domain.DraftQuota {
		for i := 0; i < quota; i++ {
			expectedCost += 1000 + int64(i)*100
		}
	}
	assert.True(t, totalCost.Equal(decimal.NewFromInt(expectedCost)),
		"expected cost %d, got %s", expectedCost, totalCost)
	assert.True(t, team.Budget.Equal(domain.DraftBudgetCap.Sub(totalCost)),
		"budget should be cap minus cost, got %s", team.Budget)

	select {
	case event := <-pub.events:
		assert.Equal(t, "user-1", event.UserID)
		assert.Equal(t, team.ID, event.TeamID)
	case <-time.After(time.Second):
		t.Fatal("expected a RosterReadyEvent")
	}
}

func TestDraftSquadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewMemoryStore()
	uc := NewDefaultTeamUsecase(store, nil, nil)

	createUser(t, store, "user-1", "alice")
	seedDraftPool(t, store, 30, 1000, 100)

	require.NoError(t, uc.DraftSquad(ctx, "user-1"))
	first, err := uc.GetTeamWithPlayers(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, uc.DraftSquad(ctx, "user-1"))
	second, err := uc.GetTeamWithPlayers(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, second.Players, 20)
	assert.True(t, first.Budget.Equal(second.Budget))
}

func TestDraftSquadSkipsPlayersOwnedByOtherTeams(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewMemoryStore()
	uc := NewDefaultTeamUsecase(store, nil, nil)

	createUser(t, store, "user-1", "alice")
	seedDraftPool(t, store, 30, 1000, 100)

	// The cheapest goalkeeper already belongs to someone else.
	candidates, err := store.Players().ListAvailableByPosition(ctx, domain.PositionGoalkeeper)
	require.NoError(t, err)
	cheapest := candidates[0]
	require.NoError(t, store.Teams().Create(ctx, &domain.Team{ID: "rival", UserID: "user-2", Name: "Rival"}))
	require.NoError(t, store.Teams().AddRosterEntry(ctx, "rival", cheapest.ID))

	require.NoError(t, uc.DraftSquad(ctx, "user-1"))

	team, err := uc.GetTeamWithPlayers(ctx, "user-1")
	require.NoError(t, err)
	for _, player := range team.Players {
		assert.NotEqual(t, cheapest.ID, player.ID)
	}
}

func TestDraftSquadFailsOnInsufficientSupply(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewMemoryStore()
	uc := NewDefaultTeamUsecase(store, nil, nil)

	createUser(t, store, "user-1", "alice")
	// Plenty of every position except defenders.
	var players []domain.Player
	for _, position := range domain.Positions {
		n := 10
		if position == domain.PositionDefender {
			n = 3
		}
		for i := 0; i < n; i++ {
			players = append(players, domain.Player{
				Name:        fmt.Sprintf("%s %d", position, i),
				Position:    position,
				MarketValue: decimal.NewFromInt(1000),
			})
		}
	}
	require.NoError(t, store.Players().BulkCreate(ctx, players))

	err := uc.DraftSquad(ctx, "user-1")
	require.ErrorIs(t, err, domain.ErrInsufficientSupply)

	// Nothing may survive the rollback.
	_, err = uc.GetTeamWithPlayers(ctx, "user-1")
	assert.ErrorIs(t, err, domain.ErrTeamNotFound)
}

func TestDraftSquadFailsWhenSquadExceedsBudgetCap(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewMemoryStore()
	uc := NewDefaultTeamUsecase(store, nil, nil)

	createUser(t, store, "user-1", "alice")
	// 20 players at 1,000,000 each blows the 5,000,000 cap.
	seedDraftPool(t, store, 10, 1_000_000, 0)

	err := uc.DraftSquad(ctx, "user-1")
	require.ErrorIs(t, err, domain.ErrBudgetExceeded)

	_, err = uc.GetTeamWithPlayers(ctx, "user-1")
	assert.ErrorIs(t, err, domain.ErrTeamNotFound)
}

func TestGetTeamWithPlayersBeforeDraft(t *testing.T) {
	store := memstore.NewMemoryStore()
	uc := NewDefaultTeamUsecase(store, nil, nil)

	createUser(t, store, "user-1", "alice")

	_, err := uc.GetTeamWithPlayers(context.Background(), "user-1")
	assert.ErrorIs(t, err, domain.ErrTeamNotFound)
}
