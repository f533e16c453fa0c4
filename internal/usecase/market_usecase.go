package usecase

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"github.com/pitchside/transfer-market-service/internal/domain"
	publisher "github.com/pitchside/transfer-market-service/internal/infrastructure/kafka"
	"github.com/pitchside/transfer-market-service/internal/infrastructure/metrics"
	marketdto "github.com/pitchside/transfer-market-service/internal/usecase/dto/market"
	"github.com/shopspring/decimal"
)

// transferDiscount is the fixed factor applied to the asking price when a
// trade executes. The agreed price is never renegotiated.
var transferDiscount = decimal.NewFromFloat(0.95)

// TradeEventPublisher announces committed trades.
type TradeEventPublisher interface {
	PublishTradeCompleted(event publisher.TradeCompletedEvent) error
}

type MarketUsecase interface {
	SearchListings(ctx context.Context, filter marketdto.ListingFilterInput) ([]marketdto.ListingOutput, error)
	CreateListing(ctx context.Context, callerUserID string, input marketdto.CreateListingInput) (*marketdto.ListingOutput, error)
	CancelListing(ctx context.Context, callerUserID, listingID string) error
	ExecuteTrade(ctx context.Context, callerUserID, listingID string) (*marketdto.TradeOutput, error)
}

type DefaultMarketUsecase struct {
	Store        domain.Store
	Publisher    TradeEventPublisher
	Metrics      *metrics.MarketMetrics
	newReference func() string
}

func NewDefaultMarketUsecase(store domain.Store, tradePublisher TradeEventPublisher, marketMetrics *metrics.MarketMetrics) *DefaultMarketUsecase {
	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		log.Fatalf("failed to init nanoid generator: %v", err)
	}

	return &DefaultMarketUsecase{
		Store:        store,
		Publisher:    tradePublisher,
		Metrics:      marketMetrics,
		newReference: idGenerator,
	}
}

// finalPrice applies the discount to the asking price, rounded to cents.
func finalPrice(askingPrice decimal.Decimal) decimal.Decimal {
	return askingPrice.Mul(transferDiscount).Round(2)
}

func (uc *DefaultMarketUsecase) SearchListings(ctx context.Context, filter marketdto.ListingFilterInput) ([]marketdto.ListingOutput, error) {
	views, err := uc.Store.Listings().Search(ctx, domain.ListingFilter{
		TeamName:   filter.TeamName,
		PlayerName: filter.PlayerName,
		MaxPrice:   filter.MaxPrice,
	})
	if err != nil {
		return nil, fmt.Errorf("searching listings: %w", err)
	}

	out := make([]marketdto.ListingOutput, len(views))
	for i, view := range views {
		out[i] = toListingOutput(view)
	}
	return out, nil
}

func toListingOutput(view domain.ListingView) marketdto.ListingOutput {
	return marketdto.ListingOutput{
		ID:             view.ID,
		PlayerID:       view.PlayerID,
		PlayerName:     view.PlayerName,
		SellerTeamID:   view.SellerTeamID,
		SellerTeamName: view.SellerTeamName,
		AskingPrice:    view.AskingPrice,
		PostedAt:       view.PostedAt,
	}
}

// CreateListing puts an owned player up for sale. The ownership row is
// deleted for the listing's lifetime: the listing itself holds the player.
func (uc *DefaultMarketUsecase) CreateListing(ctx context.Context, callerUserID string, input marketdto.CreateListingInput) (*marketdto.ListingOutput, error) {
	if !input.AskingPrice.IsPositive() {
		return nil, domain.ErrInvalidPrice
	}

	var out *marketdto.ListingOutput
	err := uc.Store.WithinTx(ctx, func(s domain.Store) error {
		seller, err := s.Teams().GetByUserID(ctx, callerUserID)
		if err != nil {
			return fmt.Errorf("loading seller team: %w", err)
		}
		if seller == nil {
			return domain.ErrTeamNotFound
		}
		// Lock the seller row so concurrent listings by the same team
		// serialize against the roster-size check below.
		if seller, err = s.Teams().GetByIDForUpdate(ctx, seller.ID); err != nil {
			return fmt.Errorf("locking seller team: %w", err)
		}

		entry, err := s.Teams().GetRosterEntryForUpdate(ctx, input.PlayerID)
		if err != nil {
			return fmt.Errorf("locking ownership row: %w", err)
		}
		if entry == nil || entry.TeamID != seller.ID {
			// A listed player has no ownership row, so a double listing
			// attempt by the owner also lands here; report the more
			// specific error when a listing exists.
			if existing, lookupErr := s.Listings().GetByPlayerID(ctx, input.PlayerID); lookupErr == nil && existing != nil {
				return domain.ErrAlreadyListed
			}
			return domain.ErrNotOwner
		}

		rosterSize, err := s.Teams().CountRoster(ctx, seller.ID)
		if err != nil {
			return fmt.Errorf("counting roster: %w", err)
		}
		if rosterSize <= domain.RosterMin {
			return domain.ErrRosterTooSmall
		}

		listing := &domain.Listing{
			ID:           uuid.New().String(),
			PlayerID:     input.PlayerID,
			SellerTeamID: seller.ID,
			AskingPrice:  input.AskingPrice,
			PostedAt:     time.Now(),
		}
		if err := s.Listings().Create(ctx, listing); err != nil {
			return fmt.Errorf("creating listing: %w", err)
		}
		if err := s.Teams().RemoveRosterEntry(ctx, seller.ID, input.PlayerID); err != nil {
			return fmt.Errorf("suspending ownership: %w", err)
		}

		player, err := s.Players().GetByID(ctx, input.PlayerID)
		if err != nil {
			return fmt.Errorf("loading player: %w", err)
		}
		out = &marketdto.ListingOutput{
			ID:             listing.ID,
			PlayerID:       listing.PlayerID,
			PlayerName:     player.Name,
			SellerTeamID:   seller.ID,
			SellerTeamName: seller.Name,
			AskingPrice:    listing.AskingPrice,
			PostedAt:       listing.PostedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.ListingsCreatedTotal.Inc()
	}
	return out, nil
}

// CancelListing removes the caller's listing and hands the player back to
// the seller's roster. Restoration is mandatory: a player must belong
// somewhere the moment the listing stops existing.
func (uc *DefaultMarketUsecase) CancelListing(ctx context.Context, callerUserID, listingID string) error {
	err := uc.Store.WithinTx(ctx, func(s domain.Store) error {
		caller, err := s.Teams().GetByUserID(ctx, callerUserID)
		if err != nil {
			return fmt.Errorf("loading caller team: %w", err)
		}
		if caller == nil {
			return domain.ErrTeamNotFound
		}

		listing, err := s.Listings().GetByIDForUpdate(ctx, listingID)
		if err != nil {
			return fmt.Errorf("locking listing: %w", err)
		}
		if listing == nil || listing.SellerTeamID != caller.ID {
			return domain.ErrListingNotFound
		}

		if err := s.Listings().Delete(ctx, listing.ID); err != nil {
			return fmt.Errorf("deleting listing: %w", err)
		}
		if err := s.Teams().AddRosterEntry(ctx, caller.ID, listing.PlayerID); err != nil {
			return fmt.Errorf("restoring ownership: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if uc.Metrics != nil {
		uc.Metrics.ListingsCancelledTotal.Inc()
	}
	return nil
}

// ExecuteTrade buys a listed player. Lock order is fixed globally:
// listing row, then buyer team, then seller team. Concurrent buyers on one
// listing serialize on the listing lock; the losers find the row gone and
// fail with ErrListingNotFound.
func (uc *DefaultMarketUsecase) ExecuteTrade(ctx context.Context, callerUserID, listingID string) (*marketdto.TradeOutput, error) {
	started := time.Now()

	var (
		out   *marketdto.TradeOutput
		event publisher.TradeCompletedEvent
	)
	err := uc.Store.WithinTx(ctx, func(s domain.Store) error {
		buyer, err := s.Teams().GetByUserID(ctx, callerUserID)
		if err != nil {
			return fmt.Errorf("loading buyer team: %w", err)
		}
		if buyer == nil {
			return domain.ErrTeamNotFound
		}

		listing, err := s.Listings().GetByIDForUpdate(ctx, listingID)
		if err != nil {
			return fmt.Errorf("locking listing: %w", err)
		}
		if listing == nil {
			return domain.ErrListingNotFound
		}
		if listing.SellerTeamID == buyer.ID {
			return domain.ErrSelfTrade
		}

		price := finalPrice(listing.AskingPrice)

		buyer, err = s.Teams().GetByIDForUpdate(ctx, buyer.ID)
		if err != nil {
			return fmt.Errorf("locking buyer: %w", err)
		}
		seller, err := s.Teams().GetByIDForUpdate(ctx, listing.SellerTeamID)
		if err != nil {
			return fmt.Errorf("locking seller: %w", err)
		}
		if buyer == nil || seller == nil {
			return domain.ErrTeamNotFound
		}

		if buyer.Budget.LessThan(price) {
			return domain.ErrInsufficientFunds
		}

		// Effective roster size counts listed players too: they return on
		// cancellation, so they still occupy a squad slot.
		buyerSize, err := effectiveRosterSize(ctx, s, buyer.ID)
		if err != nil {
			return err
		}
		if buyerSize >= domain.RosterMax {
			return domain.ErrBuyerRosterFull
		}
		sellerSize, err := effectiveRosterSize(ctx, s, seller.ID)
		if err != nil {
			return err
		}
		if sellerSize <= domain.RosterMin {
			return domain.ErrSellerRosterTooSmall
		}

		if err := s.Teams().UpdateBudget(ctx, buyer.ID, buyer.Budget.Sub(price)); err != nil {
			return fmt.Errorf("debiting buyer: %w", err)
		}
		if err := s.Teams().UpdateBudget(ctx, seller.ID, seller.Budget.Add(price)); err != nil {
			return fmt.Errorf("crediting seller: %w", err)
		}

		// The listing held the player, so only the buyer side needs a row.
		if err := s.Teams().AddRosterEntry(ctx, buyer.ID, listing.PlayerID); err != nil {
			return fmt.Errorf("transferring ownership: %w", err)
		}

		transfer := &domain.Transfer{
			ID:           uuid.New().String(),
			Reference:    uc.newReference(),
			BuyerTeamID:  buyer.ID,
			SellerTeamID: seller.ID,
			PlayerID:     listing.PlayerID,
			Price:        price,
		}
		if err := s.Transfers().Append(ctx, transfer); err != nil {
			return fmt.Errorf("appending ledger entry: %w", err)
		}

		if err := s.Listings().Delete(ctx, listing.ID); err != nil {
			return fmt.Errorf("deleting listing: %w", err)
		}

		event = publisher.TradeCompletedEvent{
			BuyerUserID:  buyer.UserID,
			SellerUserID: seller.UserID,
			PlayerID:     listing.PlayerID,
			Reference:    transfer.Reference,
			Price:        price,
		}
		out = &marketdto.TradeOutput{Reference: transfer.Reference, Price: price}
		return nil
	})
	if err != nil {
		uc.recordTradeFailure(err)
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.TradesCompletedTotal.Inc()
		volume, _ := out.Price.Float64()
		uc.Metrics.TradeVolumeTotal.Add(volume)
		uc.Metrics.TradeDuration.Observe(time.Since(started).Seconds())
	}

	if uc.Publisher != nil {
		go func(event publisher.TradeCompletedEvent) {
			if err := uc.Publisher.PublishTradeCompleted(event); err != nil {
				slog.Error("failed to publish TradeCompletedEvent", "reference", event.Reference, "error", err.Error())
			}
		}(event)
	}

	return out, nil
}

func effectiveRosterSize(ctx context.Context, s domain.Store, teamID string) (int64, error) {
	rostered, err := s.Teams().CountRoster(ctx, teamID)
	if err != nil {
		return 0, fmt.Errorf("counting roster: %w", err)
	}
	listed, err := s.Listings().CountBySeller(ctx, teamID)
	if err != nil {
		return 0, fmt.Errorf("counting listings: %w", err)
	}
	return rostered + listed, nil
}

func (uc *DefaultMarketUsecase) recordTradeFailure(err error) {
	if uc.Metrics == nil {
		return
	}
	reason := "storage"
	if domain.IsBusinessError(err) {
		reason = "business"
	}
	uc.Metrics.TradesFailedTotal.WithLabelValues(reason).Inc()
}
