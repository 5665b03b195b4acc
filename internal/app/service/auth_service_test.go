package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hartondavid/delivery-backend/internal/app/model"
	"github.com/hartondavid/delivery-backend/internal/app/repository"
	"github.com/hartondavid/delivery-backend/internal/db"
	"github.com/hartondavid/delivery-backend/pkg/util"
)

const testJWTSecret = "test-jwt-secret"

func setupAuthServiceTest(t *testing.T) (*gorm.DB, AuthService, repository.UserRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	authService := NewAuthService(userRepo, testJWTSecret, 24*time.Hour, nil)

	return testDB, authService, userRepo
}

func seedUser(t *testing.T, userRepo repository.UserRepository, email, password string) *model.User {
	t.Helper()

	hash, err := util.HashPassword(password)
	require.NoError(t, err)

	user := &model.User{
		Name:         "Test User",
		Email:        email,
		Phone:        "0712345678",
		PasswordHash: hash,
	}
	require.NoError(t, userRepo.Create(user))
	return user
}

func TestAuthService_Login(t *testing.T) {
	testDB, authService, userRepo := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	seedUser(t, userRepo, "a@b.com", "secret1")

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "Valid credentials", email: "a@b.com", password: "secret1", wantErr: nil},
		{name: "Wrong password", email: "a@b.com", password: "wrong", wantErr: ErrInvalidCredentials},
		{name: "Unknown email", email: "nobody@b.com", password: "secret1", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, token, err := authService.Login(tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Equal(t, tt.email, user.Email)

			claims, err := util.ValidateToken(token, testJWTSecret)
			require.NoError(t, err)
			assert.Equal(t, user.ID, claims.UserID)
			assert.False(t, claims.Guest)
			assert.True(t, claims.Employee)
		})
	}
}

func TestAuthService_LoginUpdatesLastLogin(t *testing.T) {
	testDB, authService, userRepo := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	user := seedUser(t, userRepo, "a@b.com", "secret1")
	assert.Nil(t, user.LastLogin)

	_, _, err := authService.Login("a@b.com", "secret1")
	require.NoError(t, err)

	refreshed, err := userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.NotNil(t, refreshed.LastLogin)
}

func TestAuthService_UpdatePassword(t *testing.T) {
	testDB, authService, userRepo := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	user := seedUser(t, userRepo, "a@b.com", "secret1")

	require.NoError(t, authService.UpdatePassword(user.ID, "newsecret"))

	_, _, err := authService.Login("a@b.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = authService.Login("a@b.com", "newsecret")
	assert.NoError(t, err)

	err = authService.UpdatePassword(9999, "whatever")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_GetUserByID(t *testing.T) {
	testDB, authService, userRepo := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	user := seedUser(t, userRepo, "a@b.com", "secret1")

	found, err := authService.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	_, err = authService.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
