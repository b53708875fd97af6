package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/mock"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/models"
)

var testAppConfig = config.App{
	TokenSignKey:  "sign-key",
	TokenIssuer:   "todo-keeper",
	TokenDuration: time.Hour,
	Version:       "1.0.0",
}

func newTestServerAuth(t *testing.T) (*authService, *mock.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)

	svc := NewAuthService(repo, testAppConfig, logger.Nop()).(*authService)
	svc.hashCost = bcrypt.MinCost
	return svc, repo
}

func TestAuthService_RegisterUser_HashesPassword(t *testing.T) {
	svc, repo := newTestServerAuth(t)
	ctx := context.Background()

	repo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.Empty(t, u.Password, "the plaintext never reaches the repository")
			require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret")))
			u.UserID = 7
			return u, nil
		})

	user, err := svc.RegisterUser(ctx, models.User{Login: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.UserID)
}

func TestAuthService_RegisterUser_Errors(t *testing.T) {
	svc, repo := newTestServerAuth(t)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, models.User{Login: "alice"})
	require.ErrorIs(t, err, ErrInvalidDataProvided)

	repo.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrLoginAlreadyExists)
	_, err = svc.RegisterUser(ctx, models.User{Login: "alice", Password: "secret"})
	require.ErrorIs(t, err, store.ErrLoginAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := models.User{UserID: 7, Login: "alice", PasswordHash: string(hash)}

	tests := []struct {
		name     string
		password string
		repoErr  error
		wantErr  error
	}{
		{name: "correct password", password: "secret"},
		{name: "wrong password", password: "guess", wantErr: ErrWrongPassword},
		{name: "unknown user", password: "secret", repoErr: store.ErrNoUserWasFound, wantErr: store.ErrNoUserWasFound},
		{name: "empty password", password: "", wantErr: ErrInvalidDataProvided},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestServerAuth(t)
			ctx := context.Background()

			if tt.password != "" {
				repo.EXPECT().FindUserByLogin(ctx, "alice").Return(stored, tt.repoErr)
			}

			user, err := svc.Login(ctx, models.User{Login: "alice", Password: tt.password})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(7), user.UserID)
		})
	}
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc, _ := newTestServerAuth(t)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: 42})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)

	_, err = svc.ParseToken(ctx, token.SignedString+"x")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)

	other := NewAuthService(nil, config.App{TokenSignKey: "other", TokenIssuer: "todo-keeper", TokenDuration: time.Hour}, logger.Nop())
	_, err = other.ParseToken(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_CreateToken_Misconfigured(t *testing.T) {
	svc := NewAuthService(nil, config.App{}, logger.Nop())

	_, err := svc.CreateToken(context.Background(), models.User{UserID: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTokenCreationFailed))
}
