package repository

import (
	"context"

	"github.com/pitchside/transfer-market-service/internal/domain"
	"gorm.io/gorm"
)

// GormStore implements domain.Store on top of a *gorm.DB handle. WithinTx
// hands the callback a store bound to the transaction, so every repository
// call inside it shares the same connection and commits or rolls back as one.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) WithinTx(ctx context.Context, fn func(domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) Users() domain.UserRepository {
	return &userRepo{db: s.db}
}

func (s *GormStore) Teams() domain.TeamRepository {
	return &teamRepo{db: s.db}
}

func (s *GormStore) Players() domain.PlayerRepository {
	return &playerRepo{db: s.db}
}

func (s *GormStore) Listings() domain.ListingRepository {
	return &listingRepo{db: s.db}
}

func (s *GormStore) Transfers() domain.TransferRepository {
	return &transferRepo{db: s.db}
}
