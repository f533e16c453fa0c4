package repository

import (
	"context"
	"errors"

	"github.com/pitchside/transfer-market-service/internal/domain"
	"github.com/pitchside/transfer-market-service/internal/infrastructure/postgres/mappers"
	"github.com/pitchside/transfer-market-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type teamRepo struct {
	db *gorm.DB
}

func (r *teamRepo) Create(ctx context.Context, team *domain.Team) error {
	return r.db.WithContext(ctx).Create(mappers.ToGORMTeam(team)).Error
}

func (r *teamRepo) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	return r.getTeam(r.db.WithContext(ctx), "id = ?", id)
}

func (r *teamRepo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Team, error) {
	// SELECT ... FOR UPDATE; only meaningful inside WithinTx.
	locked := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.getTeam(locked, "id = ?", id)
}

func (r *teamRepo) GetByUserID(ctx context.Context, userID string) (*domain.Team, error) {
	return r.getTeam(r.db.WithContext(ctx), "user_id = ?", userID)
}

func (r *teamRepo) getTeam(db *gorm.DB, query string, arg any) (*domain.Team, error) {
	var m models.TeamModel
	if err := db.First(&m, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainTeam(&m), nil
}

func (r *teamRepo) UpdateBudget(ctx context.Context, teamID string, budget decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.TeamModel{}).
		Where("id = ?", teamID).
		Update("budget", budget).Error
}

func (r *teamRepo) AddRosterEntry(ctx context.Context, teamID string, playerID uint) error {
	entry := models.RosterEntryModel{TeamID: teamID, PlayerID: playerID}
	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r *teamRepo) RemoveRosterEntry(ctx context.Context, teamID string, playerID uint) error {
	return r.db.WithContext(ctx).
		Where("team_id = ? AND player_id = ?", teamID, playerID).
		Delete(&models.RosterEntryModel{}).Error
}

func (r *teamRepo) CountRoster(ctx context.Context, teamID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RosterEntryModel{}).
		Where("team_id = ?", teamID).
		Count(&count).Error
	return count, err
}

func (r *teamRepo) GetRosterEntryForUpdate(ctx context.Context, playerID uint) (*domain.RosterEntry, error) {
	var m models.RosterEntryModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "player_id = ?", playerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &domain.RosterEntry{TeamID: m.TeamID, PlayerID: m.PlayerID, CreatedAt: m.CreatedAt}, nil
}

func (r *teamRepo) ListPlayers(ctx context.Context, teamID string) ([]domain.Player, error) {
	var playerModels []models.PlayerModel
	err := r.db.WithContext(ctx).
		Model(&models.PlayerModel{}).
		Joins("JOIN team_players ON team_players.player_id = players.id").
		Where("team_players.team_id = ?", teamID).
		Order("players.id ASC").
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
