package postgres

import (
	"log"

	"github.com/pitchside/transfer-market-service/internal/config"
	"github.com/pitchside/transfer-market-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.MarketConfig) *gorm.DB {
	dsn := cfg.MarketDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.UserModel{},
		&models.TeamModel{},
		&models.PlayerModel{},
		&models.RosterEntryModel{},
		&models.ListingModel{},
		&models.TransferModel{},
	)

	return db
}
