package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hartondavid/delivery-backend/internal/app/model"
	"github.com/hartondavid/delivery-backend/internal/app/repository"
	"github.com/hartondavid/delivery-backend/internal/db"
	"github.com/hartondavid/delivery-backend/internal/errors"
	"github.com/hartondavid/delivery-backend/pkg/util"
)

const testSecret = "test-jwt-secret"

func setupAuthTest(t *testing.T) (*gin.Engine, *model.User) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	user := &model.User{
		Name:         "Test User",
		Email:        "test@example.com",
		Phone:        "0712345678",
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, userRepo.Create(user))

	authMiddleware := NewAuthMiddleware(testSecret, userRepo, nil)

	router := gin.New()
	router.GET("/protected", authMiddleware.Authenticate(), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	return router, user
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	router, user := setupAuthTest(t)

	validToken, err := util.GenerateToken(user.ID, user.Phone, testSecret, time.Hour)
	require.NoError(t, err)

	expiredToken, err := util.GenerateToken(user.ID, user.Phone, testSecret, -time.Hour)
	require.NoError(t, err)

	orphanToken, err := util.GenerateToken(9999, "0700000000", testSecret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "Valid token", header: "Bearer " + validToken, wantStatus: http.StatusOK},
		{name: "Missing header", header: "", wantStatus: http.StatusUnprocessableEntity},
		{name: "Missing scheme", header: validToken, wantStatus: http.StatusUnprocessableEntity},
		{name: "Wrong scheme", header: "Basic " + validToken, wantStatus: http.StatusUnprocessableEntity},
		{name: "Garbage token", header: "Bearer not-a-token", wantStatus: http.StatusUnauthorized},
		{name: "Expired token", header: "Bearer " + expiredToken, wantStatus: http.StatusUnauthorized},
		{name: "Token for deleted user", header: "Bearer " + orphanToken, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus != http.StatusOK {
				var envelope errors.Envelope
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
				assert.False(t, envelope.Success)
				assert.NotEmpty(t, envelope.Message)
			}
		})
	}
}

func TestAuthMiddleware_ContextValues(t *testing.T) {
	router, user := setupAuthTest(t)

	token, err := util.GenerateToken(user.ID, user.Phone, testSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]uint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, user.ID, body["user_id"])
}

type stubBlacklist struct {
	revoked bool
}

func (s stubBlacklist) IsRevoked(_ context.Context, _ string) (bool, error) {
	return s.revoked, nil
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	user := &model.User{
		Name:         "Test User",
		Email:        "test@example.com",
		Phone:        "0712345678",
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, userRepo.Create(user))

	authMiddleware := NewAuthMiddleware(testSecret, userRepo, stubBlacklist{revoked: true})

	router := gin.New()
	router.GET("/protected", authMiddleware.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token, err := util.GenerateToken(user.ID, user.Phone, testSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
