package repository

import (
	"context"
	"errors"

	"github.com/pitchside/transfer-market-service/internal/domain"
	"github.com/pitchside/transfer-market-service/internal/infrastructure/postgres/mappers"
	"github.com/pitchside/transfer-market-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type playerRepo struct {
	db *gorm.DB
}

func (r *playerRepo) BulkCreate(ctx context.Context, players []domain.Player) error {
	playerModels := make([]models.PlayerModel, len(players))
	for i := range players {
		playerModels[i] = *mappers.ToGORMPlayer(&players[i])
	}
	return r.db.WithContext(ctx).CreateInBatches(&playerModels, 500).Error
}

func (r *playerRepo) GetByID(ctx context.Context, id uint) (*domain.Player, error) {
	var m models.PlayerModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainPlayer(&m), nil
}

func (r *playerRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PlayerModel{}).Count(&count).Error
	return count, err
}

// ListAvailableByPosition returns players of one position that are neither
// rostered nor listed, cheapest first. The id tie-break keeps draft picks
// deterministic when market values collide.
func (r *playerRepo) ListAvailableByPosition(ctx context.Context, position domain.Position) ([]domain.Player, error) {
	var playerModels []models.PlayerModel
	err := r.db.WithContext(ctx).
		Model(&models.PlayerModel{}).
		Where("position = ?", string(position)).
		Where("NOT EXISTS (SELECT 1 FROM team_players WHERE team_players.player_id = players.id)").
		Where("NOT EXISTS (SELECT 1 FROM transfer_listings WHERE transfer_listings.player_id = players.id)").
		Order("market_value ASC, id ASC").
		Find(&playerModels).Error
	if err != nil {
		return nil, err
	}

	players := make([]domain.Player, len(playerModels))
	for i := range playerModels {
		players[i] = *mappers.ToDomainPlayer(&playerModels[i])
	}
	return players, nil
}
