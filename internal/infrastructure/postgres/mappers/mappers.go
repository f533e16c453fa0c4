// Package mappers converts between persistence models and domain entities.
package mappers

import (
	"github.com/pitchside/transfer-market-service/internal/domain"
	"github.com/pitchside/transfer-market-service/internal/infrastructure/postgres/models"
)

func ToDomainUser(m *models.UserModel) *domain.User {
	return &domain.User{
		ID:           m.ID,
		Email:        m.Email,
		Username:     m.Username,
		Name:         m.Name,
		LastName:     m.LastName,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func ToGORMUser(u *domain.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		Name:         u.Name,
		LastName:     u.LastName,
		PasswordHash: u.PasswordHash,
	}
}

func ToDomainTeam(m *models.TeamModel) *domain.Team {
	return &domain.Team{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Budget:    m.Budget,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToGORMTeam(t *domain.Team) *models.TeamModel {
	return &models.TeamModel{
		ID:     t.ID,
		UserID: t.UserID,
		Name:   t.Name,
		Budget: t.Budget,
	}
}

func ToDomainPlayer(m *models.PlayerModel) *domain.Player {
	return &domain.Player{
		ID:          m.ID,
		Name:        m.Name,
		Position:    domain.Position(m.Position),
		MarketValue: m.MarketValue,
		CreatedAt:   m.CreatedAt,
	}
}

func ToGORMPlayer(p *domain.Player) *models.PlayerModel {
	return &models.PlayerModel{
		ID:          p.ID,
		Name:        p.Name,
		Position:    string(p.Position),
		MarketValue: p.MarketValue,
	}
}

func ToDomainListing(m *models.ListingModel) *domain.Listing {
	return &domain.Listing{
		ID:           m.ID,
		PlayerID:     m.PlayerID,
		SellerTeamID: m.SellerTeamID,
		AskingPrice:  m.AskingPrice,
		PostedAt:     m.PostedAt,
	}
}

func ToGORMListing(l *domain.Listing) *models.ListingModel {
	return &models.ListingModel{
		ID:           l.ID,
		PlayerID:     l.PlayerID,
		SellerTeamID: l.SellerTeamID,
		AskingPrice:  l.AskingPrice,
	}
}

func ToDomainTransfer(m *models.TransferModel) *domain.Transfer {
	return &domain.Transfer{
		ID:           m.ID,
		Reference:    m.Reference,
		BuyerTeamID:  m.BuyerTeamID,
		SellerTeamID: m.SellerTeamID,
		PlayerID:     m.PlayerID,
		Price:        m.Price,
		CreatedAt:    m.CreatedAt,
	}
}

func ToGORMTransfer(t *domain.Transfer) *models.TransferModel {
	return &models.TransferModel{
		ID:           t.ID,
		Reference:    t.Reference,
		BuyerTeamID:  t.BuyerTeamID,
		SellerTeamID: t.SellerTeamID,
		PlayerID:     t.PlayerID,
		Price:        t.Price,
	}
}
