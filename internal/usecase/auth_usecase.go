package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pitchside/transfer-market-service/internal/domain"
	authdto "github.com/pitchside/transfer-market-service/internal/usecase/dto/auth"
	"golang.org/x/crypto/bcrypt"
)

// DraftEnqueuer schedules the asynchronous squad draft for a new user.
type DraftEnqueuer interface {
	EnqueueDraft(ctx context.Context, userID string) error
}

type AuthUsecase interface {
	RegisterOrLogin(ctx context.Context, input authdto.RegisterOrLoginInput) (string, error)
}

type DefaultAuthUsecase struct {
	Store     domain.Store
	Queue     DraftEnqueuer
	JWTSecret []byte
	TokenTTL  time.Duration
}

func NewDefaultAuthUsecase(store domain.Store, queue DraftEnqueuer, jwtSecret string, tokenTTL time.Duration) *DefaultAuthUsecase {
	return &DefaultAuthUsecase{
		Store:     store,
		Queue:     queue,
		JWTSecret: []byte(jwtSecret),
		TokenTTL:  tokenTTL,
	}
}

// RegisterOrLogin logs the caller in when the email is known, otherwise
// registers a new user and schedules the draft of their initial squad. The
// draft runs out-of-band: the token is returned before the squad exists.
func (uc *DefaultAuthUsecase) RegisterOrLogin(ctx context.Context, input authdto.RegisterOrLoginInput) (string, error) {
	existing, err := uc.Store.Users().GetByEmail(ctx, input.Email)
	if err != nil {
		return "", fmt.Errorf("looking up user: %w", err)
	}

	if existing != nil {
		if err := bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(input.Password)); err != nil {
			return "", domain.ErrInvalidCredentials
		}
		return uc.signToken(existing.ID)
	}

	if input.Name == "" || input.LastName == "" || input.Username == "" {
		return "", domain.ErrRegistrationDetails
	}

	taken, err := uc.Store.Users().GetByUsername(ctx, input.Username)
	if err != nil {
		return "", fmt.Errorf("looking up username: %w", err)
	}
	if taken != nil {
		return "", domain.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        input.Email,
		Username:     input.Username,
		Name:         input.Name,
		LastName:     input.LastName,
		PasswordHash: string(hash),
	}
	if err := uc.Store.Users().Create(ctx, user); err != nil {
		return "", fmt.Errorf("creating user: %w", err)
	}

	if err := uc.Queue.EnqueueDraft(ctx, user.ID); err != nil {
		// The user exists but their draft never got queued; surface the
		// failure so the caller retries registration.
		slog.Error("failed to enqueue draft job", "user_id", user.ID, "error", err.Error())
		return "", fmt.Errorf("scheduling draft: %w", err)
	}

	return uc.signToken(user.ID)
}

func (uc *DefaultAuthUsecase) signToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(uc.TokenTTL).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(uc.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}
