package service

import (
	"context"
	"testing"
	"time"

	"reviewhub/internal/config"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T, userRepo *MockUserRepository, tokenRepo *MockRefreshTokenRepository) (AuthService, *recordingMailer) {
	t.Helper()
	store, _ := newTestStore(t)
	mail := &recordingMailer{}
	cfg := &config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
	return NewAuthService(userRepo, tokenRepo, store, mail, cfg), mail
}

func TestAuthServiceSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesUserAndMailsCode", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		svc, mail := newAuthService(t, userRepo, tokenRepo)

		userRepo.On("FindByUsername", "alice").Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("FindByEmail", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

		user, err := svc.Signup(ctx, "alice", "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", mail.to)
		assert.NotEmpty(t, mail.code)
		userRepo.AssertExpectations(t)
	})

	t.Run("ReissuesCodeForMatchingPair", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		svc, mail := newAuthService(t, userRepo, tokenRepo)

		existing := &models.User{ID: "u-1", Username: "alice", Email: "alice@example.com"}
		userRepo.On("FindByUsername", "alice").Return(existing, nil)

		user, err := svc.Signup(ctx, "alice", "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, existing.ID, user.ID)
		assert.NotEmpty(t, mail.code)
		userRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("RejectsUsernameTakenByOtherEmail", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		svc, _ := newAuthService(t, userRepo, tokenRepo)

		existing := &models.User{ID: "u-1", Username: "alice", Email: "other@example.com"}
		userRepo.On("FindByUsername", "alice").Return(existing, nil)

		_, err := svc.Signup(ctx, "alice", "alice@example.com")
		fieldErr, ok := AsFieldError(err)
		require.True(t, ok)
		assert.Equal(t, "username", fieldErr.Field)
	})

	t.Run("RejectsEmailTakenByOtherUsername", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		svc, _ := newAuthService(t, userRepo, tokenRepo)

		existing := &models.User{ID: "u-1", Username: "bob", Email: "alice@example.com"}
		userRepo.On("FindByUsername", "alice").Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("FindByEmail", "alice@example.com").Return(existing, nil)

		_, err := svc.Signup(ctx, "alice", "alice@example.com")
		fieldErr, ok := AsFieldError(err)
		require.True(t, ok)
		assert.Equal(t, "email", fieldErr.Field)
	})

	t.Run("RejectsInvalidUsername", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		svc, _ := newAuthService(t, userRepo, tokenRepo)

		_, err := svc.Signup(ctx, "me", "me@example.com")
		fieldErr, ok := AsFieldError(err)
		require.True(t, ok)
		assert.Equal(t, "username", fieldErr.Field)
		userRepo.AssertNotCalled(t, "FindByUsername", mock.Anything)
	})

	t.Run("TranslatesDuplicateRace", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		svc, _ := newAuthService(t, userRepo, tokenRepo)

		userRepo.On("FindByUsername", "alice").Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("FindByEmail", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("Create", mock.AnythingOfType("*models.User")).Return(repository.ErrDuplicate)

		_, err := svc.Signup(ctx, "alice", "alice@example.com")
		_, ok := AsFieldError(err)
		assert.True(t, ok)
	})
}

func TestAuthServiceIssueToken(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownUser", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		svc, _ := newAuthService(t, userRepo, tokenRepo)

		userRepo.On("FindByUsername", "nobody").Return(nil, gorm.ErrRecordNotFound)

		_, _, err := svc.IssueToken(ctx, "nobody", "some-code")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("InvalidCode", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		svc, _ := newAuthService(t, userRepo, tokenRepo)

		user := &models.User{ID: "u-1", Username: "alice", Email: "alice@example.com", Role: models.RoleUser}
		userRepo.On("FindByUsername", "alice").Return(user, nil)

		_, _, err := svc.IssueToken(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, ErrInvalidConfirmationCode)
	})

	t.Run("IssuesValidatedClaims", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		svc, mail := newAuthService(t, userRepo, tokenRepo)

		user := &models.User{ID: "u-1", Username: "alice", Email: "alice@example.com", Role: models.RoleModerator}
		userRepo.On("FindByUsername", "alice").Return(user, nil)
		userRepo.On("FindByEmail", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
		tokenRepo.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

		_, err := svc.Signup(ctx, "alice", "alice@example.com")
		require.NoError(t, err)

		access, refresh, err := svc.IssueToken(ctx, "alice", mail.code)
		require.NoError(t, err)
		assert.NotEmpty(t, refresh)

		claims, err := svc.ValidateToken(access)
		require.NoError(t, err)
		assert.Equal(t, "u-1", claims.UserID)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, models.RoleModerator, claims.Role)
	})

	t.Run("CodeCannotBeReplayed", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		svc, mail := newAuthService(t, userRepo, tokenRepo)

		user := &models.User{ID: "u-1", Username: "alice", Email: "alice@example.com", Role: models.RoleUser}
		userRepo.On("FindByUsername", "alice").Return(user, nil)
		userRepo.On("FindByEmail", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
		tokenRepo.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

		_, err := svc.Signup(ctx, "alice", "alice@example.com")
		require.NoError(t, err)

		_, _, err = svc.IssueToken(ctx, "alice", mail.code)
		require.NoError(t, err)

		_, _, err = svc.IssueToken(ctx, "alice", mail.code)
		assert.ErrorIs(t, err, ErrInvalidConfirmationCode)
	})
}

func TestAuthServiceRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("RotatesTokenPair", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		svc, _ := newAuthService(t, userRepo, tokenRepo)

		user := &models.User{ID: "u-1", Username: "alice", Role: models.RoleUser}
		stored := &models.RefreshToken{
			ID:        "rt-1",
			UserID:    "u-1",
			Token:     "old-token",
			ExpiresAt: time.Now().Add(time.Hour),
		}
		tokenRepo.On("FindByToken", "old-token").Return(stored, nil)
		tokenRepo.On("Delete", "rt-1").Return(nil)
		tokenRepo.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)
		userRepo.On("FindByID", "u-1").Return(user, nil)

		access, refresh, err := svc.RefreshAccessToken(ctx, "old-token")
		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEqual(t, "old-token", refresh)
		tokenRepo.AssertCalled(t, "Delete", "rt-1")
	})

	t.Run("RejectsUnknownToken", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		svc, _ := newAuthService(t, userRepo, tokenRepo)

		tokenRepo.On("FindByToken", "missing").Return(nil, gorm.ErrRecordNotFound)

		_, _, err := svc.RefreshAccessToken(ctx, "missing")
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("RejectsExpiredToken", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		svc, _ := newAuthService(t, userRepo, tokenRepo)

		stored := &models.RefreshToken{
			ID:        "rt-1",
			UserID:    "u-1",
			Token:     "stale",
			ExpiresAt: time.Now().Add(-time.Minute),
		}
		tokenRepo.On("FindByToken", "stale").Return(stored, nil)
		tokenRepo.On("Delete", "rt-1").Return(nil)

		_, _, err := svc.RefreshAccessToken(ctx, "stale")
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}

func TestAuthServiceValidateToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc, _ := newAuthService(t, userRepo, tokenRepo)

	t.Run("RejectsGarbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("RejectsForeignSignature", func(t *testing.T) {
		// Token minted by a service holding a different secret.
		ctx := context.Background()
		cfg := &config.Config{
			JWTSecret:       "another-secret",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: time.Hour,
		}
		foreignUsers := new(MockUserRepository)
		foreignTokens := new(MockRefreshTokenRepository)
		foreignStore, _ := newTestStore(t)
		foreignMail := &recordingMailer{}
		foreign := NewAuthService(foreignUsers, foreignTokens, foreignStore, foreignMail, cfg)

		user := &models.User{ID: "u-2", Username: "mallory", Email: "mallory@example.com", Role: models.RoleUser}
		foreignUsers.On("FindByUsername", "mallory").Return(user, nil)
		foreignTokens.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

		_, err := foreign.Signup(ctx, "mallory", "mallory@example.com")
		require.NoError(t, err)
		access, _, err := foreign.IssueToken(ctx, "mallory", foreignMail.code)
		require.NoError(t, err)

		_, err = svc.ValidateToken(access)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
