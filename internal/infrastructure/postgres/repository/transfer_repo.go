package repository

import (
	"context"

	"github.com/pitchside/transfer-market-service/internal/domain"
	"github.com/pitchside/transfer-market-service/internal/infrastructure/postgres/mappers"
	"github.com/pitchside/transfer-market-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type transferRepo struct {
	db *gorm.DB
}

func (r *transferRepo) Append(ctx context.Context, transfer *domain.Transfer) error {
	return r.db.WithContext(ctx).Create(mappers.ToGORMTransfer(transfer)).Error
}

func (r *transferRepo) ListByTeam(ctx context.Context, teamID string) ([]domain.Transfer, error) {
	var transferModels []models.TransferModel
	err := r.db.WithContext(ctx).
		Where("buyer_team_id = ? OR seller_team_id = ?", teamID, teamID).
		Order("created_at DESC").
		Find(&transferModels).Error
	if err != nil {
		return nil, err
	}

	transfers := make([]domain.Transfer, len(transferModels))
	for i := range transferModels {
		transfers[i] = *mappers.ToDomainTransfer(&transferModels[i])
	}
	return transfers, nil
}
