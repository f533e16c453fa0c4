package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pitchside/transfer-market-service/internal/domain"
	publisher "github.com/pitchside/transfer-market-service/internal/infrastructure/kafka"
	"github.com/pitchside/transfer-market-service/internal/infrastructure/metrics"
	teamdto "github.com/pitchside/transfer-market-service/internal/usecase/dto/team"
	"github.com/shopspring/decimal"
)

// RosterEventPublisher announces committed drafts.
type RosterEventPublisher interface {
	PublishRosterReady(event publisher.RosterReadyEvent) error
}

type TeamUsecase interface {
	DraftSquad(ctx context.Context, userID string) error
	GetTeamWithPlayers(ctx context.Context, userID string) (*teamdto.TeamOutput, error)
}

type DefaultTeamUsecase struct {
	Store     domain.Store
	Publisher RosterEventPublisher
	Metrics   *metrics.MarketMetrics
}

func NewDefaultTeamUsecase(store domain.Store, rosterPublisher RosterEventPublisher, marketMetrics *metrics.MarketMetrics) *DefaultTeamUsecase {
	return &DefaultTeamUsecase{
		Store:     store,
		Publisher: rosterPublisher,
		Metrics:   marketMetrics,
	}
}

// DraftSquad builds the initial roster for a user's team: per position it
// takes the cheapest unowned, unlisted players until the quota is met, then
// commits the team with budget = cap - total cost. The whole draft is one
// transaction. A user who already has a team is a no-op, which makes the
// operation safe under the queue's at-least-once delivery.
func (uc *DefaultTeamUsecase) DraftSquad(ctx context.Context, userID string) error {
	started := time.Now()
	var teamID string

	err := uc.Store.WithinTx(ctx, func(s domain.Store) error {
		existing, err := s.Teams().GetByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("checking for existing team: %w", err)
		}
		if existing != nil {
			// Duplicate delivery: the squad is already drafted.
			return nil
		}

		user, err := s.Users().GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("loading user: %w", err)
		}
		if user == nil {
			return fmt.Errorf("draft for unknown user %s", userID)
		}

		selected := make([]domain.Player, 0, 20)
		taken := make(map[uint]bool)
		for _, position := range domain.Positions {
			needed := domain.DraftQuota[position]
			candidates, err := s.Players().ListAvailableByPosition(ctx, position)
			if err != nil {
				return fmt.Errorf("listing %s candidates: %w", position, err)
			}

			picked := 0
			for _, candidate := range candidates {
				if taken[candidate.ID] {
					continue
				}
				selected = append(selected, candidate)
				taken[candidate.ID] = true
				picked++
				if picked == needed {
					break
				}
			}
			if picked < needed {
				return fmt.Errorf("%w: position %s has %d of %d required",
					domain.ErrInsufficientSupply, position, picked, needed)
			}
		}

		totalCost := decimal.Zero
		for _, player := range selected {
			totalCost = totalCost.Add(player.MarketValue)
		}
		if totalCost.GreaterThan(domain.DraftBudgetCap) {
			return fmt.Errorf("%w: squad costs %s", domain.ErrBudgetExceeded, totalCost)
		}

		team := &domain.Team{
			ID:     uuid.New().String(),
			UserID: userID,
			Name:   fmt.Sprintf("Team of %s", user.Username),
			Budget: domain.DraftBudgetCap.Sub(totalCost),
		}
		if err := s.Teams().Create(ctx, team); err != nil {
			return fmt.Errorf("creating team: %w", err)
		}
		for _, player := range selected {
			if err := s.Teams().AddRosterEntry(ctx, team.ID, player.ID); err != nil {
				return fmt.Errorf("rostering player %d: %w", player.ID, err)
			}
		}

		teamID = team.ID
		return nil
	})
	if err != nil {
		uc.recordDraftFailure(err)
		return err
	}
	if teamID == "" {
		// Idempotent no-op, nothing to announce.
		return nil
	}

	if uc.Metrics != nil {
		uc.Metrics.DraftsCompletedTotal.Inc()
		uc.Metrics.DraftDuration.Observe(time.Since(started).Seconds())
	}

	if uc.Publisher != nil {
		go func(event publisher.RosterReadyEvent) {
			if err := uc.Publisher.PublishRosterReady(event); err != nil {
				slog.Error("failed to publish RosterReadyEvent", "user_id", event.UserID, "error", err.Error())
			}
		}(publisher.RosterReadyEvent{UserID: userID, TeamID: teamID})
	}

	return nil
}

func (uc *DefaultTeamUsecase) recordDraftFailure(err error) {
	if uc.Metrics == nil {
		return
	}
	reason := "storage"
	if domain.IsBusinessError(err) {
		reason = "business"
	}
	uc.Metrics.DraftsFailedTotal.WithLabelValues(reason).Inc()
}

// GetTeamWithPlayers returns the caller's team and owned players. Players
// held by an active listing have no roster entry, so they never appear here.
func (uc *DefaultTeamUsecase) GetTeamWithPlayers(ctx context.Context, userID string) (*teamdto.TeamOutput, error) {
	team, err := uc.Store.Teams().GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading team: %w", err)
	}
	if team == nil {
		return nil, domain.ErrTeamNotFound
	}

	players, err := uc.Store.Teams().ListPlayers(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}

	out := &teamdto.TeamOutput{
		ID:      team.ID,
		Name:    team.Name,
		Budget:  team.Budget,
		Players: make([]teamdto.PlayerOutput, len(players)),
	}
	for i, player := range players {
		out.Players[i] = teamdto.PlayerOutput{
			ID:          player.ID,
			Name:        player.Name,
			Position:    string(player.Position),
			MarketValue: player.MarketValue,
		}
	}
	return out, nil
}
