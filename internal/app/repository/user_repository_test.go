package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hartondavid/delivery-backend/internal/app/model"
	"github.com/hartondavid/delivery-backend/internal/db"
)

func setupUserTest(t *testing.T) (*gorm.DB, UserRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewUserRepository(testDB)
	return testDB, repo
}

// grantRight attaches a right to a user directly, for test fixtures.
func grantRight(t *testing.T, testDB *gorm.DB, userID uint, code model.RightCode) {
	t.Helper()

	var right model.Right
	require.NoError(t, testDB.Where("right_code = ?", code).First(&right).Error)
	require.NoError(t, testDB.Create(&model.UserRight{UserID: userID, RightID: right.ID}).Error)
}

func createUser(t *testing.T, repo UserRepository, name, email, phone string) *model.User {
	t.Helper()

	user := &model.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, repo.Create(user))
	return user
}

func TestUserRepository_Create(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	tests := []struct {
		name    string
		user    *model.User
		wantErr bool
	}{
		{
			name: "Valid user",
			user: &model.User{
				Name:         "Test User",
				Email:        "test@example.com",
				Phone:        "0712345678",
				PasswordHash: "hashedpassword",
			},
			wantErr: false,
		},
		{
			name: "Duplicate email",
			user: &model.User{
				Name:         "Another User",
				Email:        "test@example.com",
				Phone:        "0787654321",
				PasswordHash: "hashedpassword",
			},
			wantErr: true,
		},
		{
			name: "Duplicate phone",
			user: &model.User{
				Name:         "Third User",
				Email:        "third@example.com",
				Phone:        "0712345678",
				PasswordHash: "hashedpassword",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(tt.user)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotZero(t, tt.user.ID)
			}
		})
	}
}

func TestUserRepository_FindByEmail(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	user := createUser(t, repo, "Test User", "test@example.com", "0712345678")

	found, err := repo.FindByEmail("test@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByEmail("missing@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	user := createUser(t, repo, "Test User", "test@example.com", "0712345678")

	require.NoError(t, repo.UpdatePassword(user.ID, "newhash"))

	found, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "newhash", found.PasswordHash)
}

func TestUserRepository_FindCouriers(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	admin := createUser(t, repo, "Admin", "admin@example.com", "0700000001")
	grantRight(t, testDB, admin.ID, model.RightAdmin)

	courier := createUser(t, repo, "Courier", "courier@example.com", "0700000002")
	grantRight(t, testDB, courier.ID, model.RightCourier)

	couriers, err := repo.FindCouriers()
	require.NoError(t, err)
	require.Len(t, couriers, 1)
	assert.Equal(t, courier.ID, couriers[0].ID)
}

func TestUserRepository_SearchUnassignedCouriers(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	admin := createUser(t, repo, "Admin", "admin@example.com", "0700000001")
	grantRight(t, testDB, admin.ID, model.RightAdmin)

	free := createUser(t, repo, "Free Courier", "free@example.com", "0700000002")
	grantRight(t, testDB, free.ID, model.RightCourier)

	busy := createUser(t, repo, "Busy Courier", "busy@example.com", "0700000003")
	grantRight(t, testDB, busy.ID, model.RightCourier)

	route := &model.Route{Area: "North", AdminID: admin.ID}
	require.NoError(t, testDB.Create(route).Error)
	require.NoError(t, testDB.Create(&model.UserRoute{CourierID: busy.ID, RouteID: route.ID}).Error)

	tests := []struct {
		name    string
		search  string
		wantIDs []uint
	}{
		{name: "Matches free courier", search: "Free", wantIDs: []uint{free.ID}},
		{name: "Assigned courier excluded", search: "Courier", wantIDs: []uint{free.ID}},
		{name: "No match", search: "nomatch", wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := repo.SearchUnassignedCouriers(tt.search)
			require.NoError(t, err)

			ids := make([]uint, 0, len(users))
			for _, u := range users {
				ids = append(ids, u.ID)
			}
			if tt.wantIDs == nil {
				assert.Empty(t, ids)
			} else {
				assert.Equal(t, tt.wantIDs, ids)
			}
		})
	}
}
