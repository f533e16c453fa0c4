package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pitchside/transfer-market-service/internal/domain"
	"github.com/pitchside/transfer-market-service/internal/infrastructure/postgres/mappers"
	"github.com/pitchside/transfer-market-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type listingRepo struct {
	db *gorm.DB
}

func (r *listingRepo) Create(ctx context.Context, listing *domain.Listing) error {
	return r.db.WithContext(ctx).Create(mappers.ToGORMListing(listing)).Error
}

func (r *listingRepo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Listing, error) {
	var m models.ListingModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainListing(&m), nil
}

func (r *listingRepo) GetByPlayerID(ctx context.Context, playerID uint) (*domain.Listing, error) {
	var m models.ListingModel
	if err := r.db.WithContext(ctx).First(&m, "player_id = ?", playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainListing(&m), nil
}

func (r *listingRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ListingModel{}).Error
}

func (r *listingRepo) CountBySeller(ctx context.Context, sellerTeamID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ListingModel{}).
		Where("seller_team_id = ?", sellerTeamID).
		Count(&count).Error
	return count, err
}

// listingRow carries the joined columns the market page needs.
type listingRow struct {
	ID             string
	PlayerID       uint
	PlayerName     string
	SellerTeamID   string
	SellerTeamName string
	AskingPrice    decimal.Decimal
	PostedAt       time.Time
}

func (r *listingRepo) Search(ctx context.Context, filter domain.ListingFilter) ([]domain.ListingView, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ListingModel{}).
		Select(`transfer_listings.id,
			transfer_listings.player_id,
			players.name AS player_name,
			transfer_listings.seller_team_id,
			teams.name AS seller_team_name,
			transfer_listings.asking_price,
			transfer_listings.posted_at`).
		Joins("JOIN players ON players.id = transfer_listings.player_id").
		Joins("JOIN teams ON teams.id = transfer_listings.seller_team_id")

	if filter.TeamName != "" {
		query = query.Where("LOWER(teams.name) LIKE ?", "%"+strings.ToLower(filter.TeamName)+"%")
	}
	if filter.PlayerName != "" {
		query = query.Where("LOWER(players.name) LIKE ?", "%"+strings.ToLower(filter.PlayerName)+"%")
	}
	if filter.MaxPrice != nil {
		query = query.Where("transfer_listings.asking_price <= ?", *filter.MaxPrice)
	}

	var rows []listingRow
	if err := query.Order("transfer_listings.posted_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]domain.ListingView, len(rows))
	for i, row := range rows {
		views[i] = domain.ListingView{
			ID:             row.ID,
			PlayerID:       row.PlayerID,
			PlayerName:     row.PlayerName,
			SellerTeamID:   row.SellerTeamID,
			SellerTeamName: row.SellerTeamName,
			AskingPrice:    row.AskingPrice,
			PostedAt:       row.PostedAt,
		}
	}
	return views, nil
}
