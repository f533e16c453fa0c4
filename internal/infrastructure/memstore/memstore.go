// Package memstore is an in-memory domain.Store used by unit tests. It keeps
// the same (nil, nil) not-found and rollback semantics as the Postgres store.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/pitchside/transfer-market-service/internal/domain"
	"github.com/shopspring/decimal"
)

type memState struct {
	users        map[string]domain.User
	teams        map[string]domain.Team
	players      map[uint]domain.Player
	nextPlayerID uint
	// roster is keyed by player ID: a player owns at most one ownership row.
	roster    map[uint]domain.RosterEntry
	listings  map[string]domain.Listing
	transfers []domain.Transfer
}

func newMemState() *memState {
	return &memState{
		users:        make(map[string]domain.User),
		teams:        make(map[string]domain.Team),
		players:      make(map[uint]domain.Player),
		nextPlayerID: 1,
		roster:       make(map[uint]domain.RosterEntry),
		listings:     make(map[string]domain.Listing),
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	c.nextPlayerID = s.nextPlayerID
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.teams {
		c.teams[k] = v
	}
	for k, v := range s.players {
		c.players[k] = v
	}
	for k, v := range s.roster {
		c.roster[k] = v
	}
	for k, v := range s.listings {
		c.listings[k] = v
	}
	c.transfers = append(c.transfers, s.transfers...)
	return c
}

// MemoryStore serializes transactions on one mutex. WithinTx snapshots the
// state and restores the snapshot when fn fails, so rollback behaviour
// matches the SQL store.
type MemoryStore struct {
	mu    sync.Mutex
	state *memState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: newMemState()}
}

func (m *MemoryStore) WithinTx(ctx context.Context, fn func(domain.Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.state.clone()
	if err := fn(&txStore{state: m.state}); err != nil {
		m.state = snapshot
		return err
	}
	return nil
}

func (m *MemoryStore) Users() domain.UserRepository         { return &userRepo{access{store: m}} }
func (m *MemoryStore) Teams() domain.TeamRepository         { return &teamRepo{access{store: m}} }
func (m *MemoryStore) Players() domain.PlayerRepository     { return &playerRepo{access{store: m}} }
func (m *MemoryStore) Listings() domain.ListingRepository   { return &listingRepo{access{store: m}} }
func (m *MemoryStore) Transfers() domain.TransferRepository { return &transferRepo{access{store: m}} }

func (m *MemoryStore) withLock(fn func(*memState) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m.state)
}

// txStore runs inside WithinTx while the store mutex is already held.
type txStore struct {
	state *memState
}

func (t *txStore) WithinTx(ctx context.Context, fn func(domain.Store) error) error {
	return fn(t)
}

func (t *txStore) Users() domain.UserRepository         { return &userRepo{access{tx: t}} }
func (t *txStore) Teams() domain.TeamRepository         { return &teamRepo{access{tx: t}} }
func (t *txStore) Players() domain.PlayerRepository     { return &playerRepo{access{tx: t}} }
func (t *txStore) Listings() domain.ListingRepository   { return &listingRepo{access{tx: t}} }
func (t *txStore) Transfers() domain.TransferRepository { return &transferRepo{access{tx: t}} }

type access struct {
	store *MemoryStore
	tx    *txStore
}

func (a access) run(fn func(*memState) error) error {
	if a.tx != nil {
		return fn(a.tx.state)
	}
	return a.store.withLock(fn)
}

type userRepo struct{ access }

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	return r.run(func(s *memState) error {
		s.users[user.ID] = *user
		return nil
	})
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var out *domain.User
	err := r.run(func(s *memState) error {
		if u, ok := s.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUser(func(u domain.User) bool { return u.Email == email })
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findUser(func(u domain.User) bool { return u.Username == username })
}

func (r *userRepo) findUser(match func(domain.User) bool) (*domain.User, error) {
	var out *domain.User
	err := r.run(func(s *memState) error {
		for _, u := range s.users {
			if match(u) {
				cp := u
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

type teamRepo struct{ access }

func (r *teamRepo) Create(ctx context.Context, team *domain.Team) error {
	return r.run(func(s *memState) error {
		s.teams[team.ID] = *team
		return nil
	})
}

func (r *teamRepo) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	var out *domain.Team
	err := r.run(func(s *memState) error {
		if t, ok := s.teams[id]; ok {
			cp := t
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *teamRepo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Team, error) {
	return r.GetByID(ctx, id)
}

func (r *teamRepo) GetByUserID(ctx context.Context, userID string) (*domain.Team, error) {
	var out *domain.Team
	err := r.run(func(s *memState) error {
		for _, t := range s.teams {
			if t.UserID == userID {
				cp := t
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *teamRepo) UpdateBudget(ctx context.Context, teamID string, budget decimal.Decimal) error {
	return r.run(func(s *memState) error {
		t, ok := s.teams[teamID]
		if !ok {
			return nil
		}
		t.Budget = budget
		s.teams[teamID] = t
		return nil
	})
}

func (r *teamRepo) AddRosterEntry(ctx context.Context, teamID string, playerID uint) error {
	return r.run(func(s *memState) error {
		s.roster[playerID] = domain.RosterEntry{TeamID: teamID, PlayerID: playerID}
		return nil
	})
}

func (r *teamRepo) RemoveRosterEntry(ctx context.Context, teamID string, playerID uint) error {
	return r.run(func(s *memState) error {
		if e, ok := s.roster[playerID]; ok && e.TeamID == teamID {
			delete(s.roster, playerID)
		}
		return nil
	})
}

func (r *teamRepo) CountRoster(ctx context.Context, teamID string) (int64, error) {
	var n int64
	err := r.run(func(s *memState) error {
		for _, e := range s.roster {
			if e.TeamID == teamID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *teamRepo) GetRosterEntryForUpdate(ctx context.Context, playerID uint) (*domain.RosterEntry, error) {
	var out *domain.RosterEntry
	err := r.run(func(s *memState) error {
		if e, ok := s.roster[playerID]; ok {
			cp := e
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *teamRepo) ListPlayers(ctx context.Context, teamID string) ([]domain.Player, error) {
	var out []domain.Player
	err := r.run(func(s *memState) error {
		for _, e := range s.roster {
			if e.TeamID == teamID {
				out = append(out, s.players[e.PlayerID])
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return nil
	})
	return out, err
}

type playerRepo struct{ access }

func (r *playerRepo) BulkCreate(ctx context.Context, players []domain.Player) error {
	return r.run(func(s *memState) error {
		for i := range players {
			if players[i].ID == 0 {
				players[i].ID = s.nextPlayerID
				s.nextPlayerID++
			} else if players[i].ID >= s.nextPlayerID {
				s.nextPlayerID = players[i].ID + 1
			}
			s.players[players[i].ID] = players[i]
		}
		return nil
	})
}

func (r *playerRepo) GetByID(ctx context.Context, id uint) (*domain.Player, error) {
	var out *domain.Player
	err := r.run(func(s *memState) error {
		if p, ok := s.players[id]; ok {
			cp := p
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *playerRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.run(func(s *memState) error {
		n = int64(len(s.players))
		return nil
	})
	return n, err
}

func (r *playerRepo) ListAvailableByPosition(ctx context.Context, position domain.Position) ([]domain.Player, error) {
	var out []domain.Player
	err := r.run(func(s *memState) error {
		listed := make(map[uint]bool, len(s.listings))
		for _, l := range s.listings {
			listed[l.PlayerID] = true
		}
		for _, p := range s.players {
			if p.Position != position {
				continue
			}
			if _, owned := s.roster[p.ID]; owned || listed[p.ID] {
				continue
			}
			out = append(out, p)
		}
		sort.Slice(out, func(i, j int) bool {
			if c := out[i].MarketValue.Cmp(out[j].MarketValue); c != 0 {
				return c < 0
			}
			return out[i].ID < out[j].ID
		})
		return nil
	})
	return out, err
}

type listingRepo struct{ access }

func (r *listingRepo) Create(ctx context.Context, listing *domain.Listing) error {
	return r.run(func(s *memState) error {
		s.listings[listing.ID] = *listing
		return nil
	})
}

func (r *listingRepo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Listing, error) {
	var out *domain.Listing
	err := r.run(func(s *memState) error {
		if l, ok := s.listings[id]; ok {
			cp := l
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *listingRepo) GetByPlayerID(ctx context.Context, playerID uint) (*domain.Listing, error) {
	var out *domain.Listing
	err := r.run(func(s *memState) error {
		for _, l := range s.listings {
			if l.PlayerID == playerID {
				cp := l
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *listingRepo) Delete(ctx context.Context, id string) error {
	return r.run(func(s *memState) error {
		delete(s.listings, id)
		return nil
	})
}

func (r *listingRepo) CountBySeller(ctx context.Context, sellerTeamID string) (int64, error) {
	var n int64
	err := r.run(func(s *memState) error {
		for _, l := range s.listings {
			if l.SellerTeamID == sellerTeamID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *listingRepo) Search(ctx context.Context, filter domain.ListingFilter) ([]domain.ListingView, error) {
	var out []domain.ListingView
	err := r.run(func(s *memState) error {
		for _, l := range s.listings {
			player := s.players[l.PlayerID]
			team := s.teams[l.SellerTeamID]
			if filter.PlayerName != "" && !strings.Contains(strings.ToLower(player.Name), strings.ToLower(filter.PlayerName)) {
				continue
			}
			if filter.TeamName != "" && !strings.Contains(strings.ToLower(team.Name), strings.ToLower(filter.TeamName)) {
				continue
			}
			if filter.MaxPrice != nil && l.AskingPrice.GreaterThan(*filter.MaxPrice) {
				continue
			}
			out = append(out, domain.ListingView{
				ID:             l.ID,
				PlayerID:       l.PlayerID,
				PlayerName:     player.Name,
				SellerTeamID:   l.SellerTeamID,
				SellerTeamName: team.Name,
				AskingPrice:    l.AskingPrice,
				PostedAt:       l.PostedAt,
			})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].PostedAt.After(out[j].PostedAt) })
		return nil
	})
	return out, err
}

type transferRepo struct{ access }

func (r *transferRepo) Append(ctx context.Context, transfer *domain.Transfer) error {
	return r.run(func(s *memState) error {
		s.transfers = append(s.transfers, *transfer)
		return nil
	})
}

func (r *transferRepo) ListByTeam(ctx context.Context, teamID string) ([]domain.Transfer, error) {
	var out []domain.Transfer
	err := r.run(func(s *memState) error {
		for _, t := range s.transfers {
			if t.BuyerTeamID == teamID || t.SellerTeamID == teamID {
				out = append(out, t)
			}
		}
		return nil
	})
	return out, err
}
