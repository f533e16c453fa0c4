package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pitchside/transfer-market-service/internal/domain"
	"github.com/pitchside/transfer-market-service/internal/infrastructure/memstore"
	authdto "github.com/pitchside/transfer-market-service/internal/usecase/dto/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDraftEnqueuer struct {
	userIDs []string
}

func (f *fakeDraftEnqueuer) EnqueueDraft(ctx context.Context, userID string) error {
	f.userIDs = append(f.userIDs, userID)
	return nil
}

const testJWTSecret = "test-secret"

func newAuthTestUsecase(store domain.Store, queue DraftEnqueuer) *DefaultAuthUsecase {
	return NewDefaultAuthUsecase(store, queue, testJWTSecret, time.Hour)
}

func subjectOf(t *testing.T, token string) string {
	t.Helper()
	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	sub, err := parsed.Claims.GetSubject()
	require.NoError(t, err)
	return sub
}

func validRegistration() authdto.RegisterOrLoginInput {
	return authdto.RegisterOrLoginInput{
		Email:    "alice@example.com",
		Password: "s3cret",
		Name:     "Alice",
		LastName: "Smith",
		Username: "alice",
	}
}

func TestRegisterCreatesUserAndSchedulesDraft(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewMemoryStore()
	queue := &fakeDraftEnqueuer{}
	uc := newAuthTestUsecase(store, queue)

	token, err := uc.RegisterOrLogin(ctx, validRegistration())
	require.NoError(t, err)

	userID := subjectOf(t, token)
	user, err := store.Users().GetByID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	require.Len(t, queue.userIDs, 1)
	assert.Equal(t, userID, queue.userIDs[0])
}

func TestLoginWithKnownEmail(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewMemoryStore()
	queue := &fakeDraftEnqueuer{}
	uc := newAuthTestUsecase(store, queue)

	first, err := uc.RegisterOrLogin(ctx, validRegistration())
	require.NoError(t, err)

	// Same email and password logs in, no second draft.
	second, err := uc.RegisterOrLogin(ctx, authdto.RegisterOrLoginInput{
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, subjectOf(t, first), subjectOf(t, second))
	assert.Len(t, queue.userIDs, 1)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewMemoryStore()
	uc := newAuthTestUsecase(store, &fakeDraftEnqueuer{})

	_, err := uc.RegisterOrLogin(ctx, validRegistration())
	require.NoError(t, err)

	_, err = uc.RegisterOrLogin(ctx, authdto.RegisterOrLoginInput{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegisterRequiresProfileFields(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewMemoryStore()
	uc := newAuthTestUsecase(store, &fakeDraftEnqueuer{})

	input := validRegistration()
	input.Username = ""
	_, err := uc.RegisterOrLogin(ctx, input)
	assert.ErrorIs(t, err, domain.ErrRegistrationDetails)
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewMemoryStore()
	uc := newAuthTestUsecase(store, &fakeDraftEnqueuer{})

	_, err := uc.RegisterOrLogin(ctx, validRegistration())
	require.NoError(t, err)

	input := validRegistration()
	input.Email = "other@example.com"
	_, err = uc.RegisterOrLogin(ctx, input)
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}
