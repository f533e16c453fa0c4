package domain

import "errors"

var (
	ErrNotOwner             = errors.New("player is not owned by the caller's team")
	ErrAlreadyListed        = errors.New("player is already listed")
	ErrRosterTooSmall       = errors.New("team would fall below the minimum roster size")
	ErrInvalidPrice         = errors.New("asking price must be positive")
	ErrListingNotFound      = errors.New("listing not found")
	ErrSelfTrade            = errors.New("cannot buy your own player")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrBuyerRosterFull      = errors.New("buyer roster is already at the maximum size")
	ErrSellerRosterTooSmall = errors.New("seller cannot go below the minimum roster size")
	ErrInsufficientSupply   = errors.New("not enough available players")
	ErrBudgetExceeded       = errors.New("drafted squad exceeds the budget cap")
	ErrTeamNotFound         = errors.New("team not found")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUsernameTaken        = errors.New("username already in use")
	ErrRegistrationDetails  = errors.New("registration requires name, last name and username")
)

// businessErrors is the closed set callers must handle. Anything outside it
// that escapes the store is a transient storage failure and safe to retry.
var businessErrors = []error{
	ErrNotOwner, ErrAlreadyListed, ErrRosterTooSmall, ErrInvalidPrice,
	ErrListingNotFound, ErrSelfTrade, ErrInsufficientFunds,
	ErrBuyerRosterFull, ErrSellerRosterTooSmall, ErrInsufficientSupply,
	ErrBudgetExceeded, ErrTeamNotFound, ErrInvalidCredentials,
	ErrUsernameTaken, ErrRegistrationDetails,
}

func IsBusinessError(err error) bool {
	for _, be := range businessErrors {
		if errors.Is(err, be) {
			return true
		}
	}
	return false
}
