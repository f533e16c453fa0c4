package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pitchside/transfer-market-service/internal/domain"
	"github.com/shopspring/decimal"
)

const playersPerPosition = 3000

var firstNames = []string{
	"Luca", "Mateo", "Diego", "Kai", "Jonas", "Emil", "Theo", "Milan",
	"Rafael", "Santiago", "Andre", "Viktor", "Pablo", "Marco", "Denis",
	"Bruno", "Felix", "Ivan", "Oscar", "Hugo", "Adam", "Leon", "Noah",
	"Samuel", "Tomas", "Nico", "Erik", "Joel", "Aaron", "David",
}

var lastNames = []string{
	"Silva", "Fernandez", "Kovac", "Mueller", "Rossi", "Novak", "Costa",
	"Santos", "Weber", "Moreno", "Petrov", "Jansen", "Keita", "Dubois",
	"Larsen", "Okafor", "Ramos", "Bianchi", "Vargas", "Schmidt", "Traore",
	"Nilsson", "Sato", "Horvat", "Diallo", "Mendes", "Fischer", "Ortega",
	"Berg", "Carvalho",
}

// SeedPlayers fills an empty player pool, mirroring the production seeders:
// an equal batch per position with market values in the 1,000-6,000 range.
// It is a no-op when players already exist.
func SeedPlayers(ctx context.Context, store domain.Store) error {
	count, err := store.Players().Count(ctx)
	if err != nil {
		return fmt.Errorf("counting players: %w", err)
	}
	if count > 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(42))
	players := make([]domain.Player, 0, playersPerPosition*len(domain.Positions))
	for _, position := range domain.Positions {
		for i := 0; i < playersPerPosition; i++ {
			name := fmt.Sprintf("%s %s",
				firstNames[rng.Intn(len(firstNames))],
				lastNames[rng.Intn(len(lastNames))],
			)
			value := decimal.NewFromFloat(rng.Float64()*5000 + 1000).Round(2)
			players = append(players, domain.Player{
				Name:        name,
				Position:    position,
				MarketValue: value,
			})
		}
	}

	if err := store.Players().BulkCreate(ctx, players); err != nil {
		return fmt.Errorf("seeding players: %w", err)
	}

	slog.Info("player pool seeded", "players", len(players))
	return nil
}
