package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pitchside/transfer-market-service/internal/delivery/ws"
	"github.com/pitchside/transfer-market-service/internal/domain"
	"github.com/pitchside/transfer-market-service/internal/infrastructure/memstore"
	"github.com/pitchside/transfer-market-service/internal/usecase"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret"

type syncEnqueuer struct {
	teamUC usecase.TeamUsecase
}

// EnqueueDraft drafts inline so tests see the squad right after /api/auth.
func (e *syncEnqueuer) EnqueueDraft(ctx context.Context, userID string) error {
	return e.teamUC.DraftSquad(ctx, userID)
}

func newTestRouter(t *testing.T) (*gin.Engine, domain.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memstore.NewMemoryStore()
	seedPlayers(t, store)

	teamUC := usecase.NewDefaultTeamUsecase(store, nil, nil)
	authUC := usecase.NewDefaultAuthUsecase(store, &syncEnqueuer{teamUC: teamUC}, testSecret, time.Hour)
	marketUC := usecase.NewDefaultMarketUsecase(store, nil, nil)

	router := NewRouter(
		[]byte(testSecret),
		NewAuthHandler(authUC),
		NewTeamHandler(teamUC),
		NewMarketHandler(marketUC),
		ws.NewHub(),
	)
	return router, store
}

func seedPlayers(t *testing.T, store domain.Store) {
	t.Helper()
	var players []domain.Player
	for _, position := range domain.Positions {
		for i := 0; i < 30; i++ {
			players = append(players, domain.Player{
				Name:        fmt.Sprintf("%s %d", position, i),
				Position:    position,
				MarketValue: decimal.NewFromInt(1000 + int64(i)*10),
			})
		}
	}
	require.NoError(t, store.Players().BulkCreate(context.Background(), players))
}

func doJSON(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerUser(t *testing.T, router *gin.Engine, email, username string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":"pw","name":"N","lastName":"L","username":%q}`, email, username)
	rec := doJSON(router, http.MethodPost, "/api/auth", "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodGet, "/api/team", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(router, http.MethodGet, "/api/team", "not-a-valid-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterDraftsSquad(t *testing.T) {
	router, _ := newTestRouter(t)

	token := registerUser(t, router, "alice@example.com", "alice")

	rec := doJSON(router, http.MethodGet, "/api/team", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var team struct {
		Name    string `json:"name"`
		Players []struct {
			ID uint `json:"id"`
		} `json:"players"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &team))
	assert.Equal(t, "Team of alice", team.Name)
	assert.Len(t, team.Players, 20)
}

func TestListAndBuyFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	sellerToken := registerUser(t, router, "seller@example.com", "seller")
	buyerToken := registerUser(t, router, "buyer@example.com", "buyer")

	rec := doJSON(router, http.MethodGet, "/api/team", sellerToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var sellerTeam struct {
		Players []struct {
			ID uint `json:"id"`
		} `json:"players"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sellerTeam))
	playerID := sellerTeam.Players[0].ID

	// Seller lists a player.
	body := fmt.Sprintf(`{"playerId":%d,"askingPrice":"2000"}`, playerID)
	rec = doJSON(router, http.MethodPost, "/api/market/listings", sellerToken, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var listing struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))

	// The market shows it.
	rec = doJSON(router, http.MethodGet, "/api/market/listings", buyerToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Listings []struct {
			ID string `json:"id"`
		} `json:"listings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Listings, 1)
	assert.Equal(t, listing.ID, page.Listings[0].ID)

	// Seller cannot buy their own listing.
	rec = doJSON(router, http.MethodPost, "/api/market/listings/"+listing.ID+"/buy", sellerToken, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Buyer completes the trade at 95% of the asking price.
	rec = doJSON(router, http.MethodPost, "/api/market/listings/"+listing.ID+"/buy", buyerToken, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var trade struct {
		Reference string          `json:"reference"`
		Price     decimal.Decimal `json:"price"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trade))
	assert.Len(t, trade.Reference, 15)
	assert.True(t, trade.Price.Equal(decimal.NewFromInt(1900)), "got %s", trade.Price)

	// A second buy hits a listing that no longer exists.
	rec = doJSON(router, http.MethodPost, "/api/market/listings/"+listing.ID+"/buy", buyerToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelListingEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	sellerToken := registerUser(t, router, "seller@example.com", "seller")

	rec := doJSON(router, http.MethodGet, "/api/team", sellerToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var team struct {
		Players []struct {
			ID uint `json:"id"`
		} `json:"players"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &team))

	body := fmt.Sprintf(`{"playerId":%d,"askingPrice":"2000"}`, team.Players[0].ID)
	rec = doJSON(router, http.MethodPost, "/api/market/listings", sellerToken, body)
	require.Equal(t, http.StatusCreated, rec.Code)
	var listing struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))

	rec = doJSON(router, http.MethodDelete, "/api/market/listings/"+listing.ID, sellerToken, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// The player is back on the roster.
	rec = doJSON(router, http.MethodGet, "/api/team", sellerToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &team))
	assert.Len(t, team.Players, 20)
}
