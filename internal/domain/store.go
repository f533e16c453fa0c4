package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Store is the transactional gateway to persistent state. WithinTx runs fn
// against a Store bound to a single transaction: if fn returns an error the
// whole transaction rolls back, otherwise it commits. Repositories obtained
// outside WithinTx operate in auto-commit mode.
//
// The store is always passed explicitly; there is no package-level handle.
type Store interface {
	WithinTx(ctx context.Context, fn func(Store) error) error

	Users() UserRepository
	Teams() TeamRepository
	Players() PlayerRepository
	Listings() ListingRepository
	Transfers() TransferRepository
}

// UserRepository lookups return (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

type TeamRepository interface {
	Create(ctx context.Context, team *Team) error
	GetByID(ctx context.Context, id string) (*Team, error)
	// GetByIDForUpdate reads the team row with a row-level write lock.
	GetByIDForUpdate(ctx context.Context, id string) (*Team, error)
	GetByUserID(ctx context.Context, userID string) (*Team, error)
	UpdateBudget(ctx context.Context, teamID string, budget decimal.Decimal) error

	AddRosterEntry(ctx context.Context, teamID string, playerID uint) error
	RemoveRosterEntry(ctx context.Context, teamID string, playerID uint) error
	CountRoster(ctx context.Context, teamID string) (int64, error)
	// GetRosterEntryForUpdate locks the ownership row of a player;
	// (nil, nil) means the player is currently unowned (or listed).
	GetRosterEntryForUpdate(ctx context.Context, playerID uint) (*RosterEntry, error)
	ListPlayers(ctx context.Context, teamID string) ([]Player, error)
}

type PlayerRepository interface {
	BulkCreate(ctx context.Context, players []Player) error
	GetByID(ctx context.Context, id uint) (*Player, error)
	Count(ctx context.Context) (int64, error)
	// ListAvailableByPosition returns unowned, unlisted players of one
	// position, cheapest first, ties broken by insertion order.
	ListAvailableByPosition(ctx context.Context, position Position) ([]Player, error)
}

type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	// GetByIDForUpdate locks the listing row; (nil, nil) when absent.
	GetByIDForUpdate(ctx context.Context, id string) (*Listing, error)
	GetByPlayerID(ctx context.Context, playerID uint) (*Listing, error)
	Delete(ctx context.Context, id string) error
	CountBySeller(ctx context.Context, sellerTeamID string) (int64, error)
	Search(ctx context.Context, filter ListingFilter) ([]ListingView, error)
}

type TransferRepository interface {
	Append(ctx context.Context, transfer *Transfer) error
	ListByTeam(ctx context.Context, teamID string) ([]Transfer, error)
}
