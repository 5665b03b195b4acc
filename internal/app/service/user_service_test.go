package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hartondavid/delivery-backend/internal/app/model"
	"github.com/hartondavid/delivery-backend/internal/app/repository"
	"github.com/hartondavid/delivery-backend/internal/db"
	"github.com/hartondavid/delivery-backend/pkg/util"
)

func setupUserServiceTest(t *testing.T) (*gorm.DB, UserService, repository.RightRepository, *model.User) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	rightRepo := repository.NewRightRepository(testDB)

	admin := seedPrincipal(t, testDB, userRepo, "admin@example.com", "0700000001", model.RightAdmin)

	return testDB, NewUserService(userRepo, rightRepo), rightRepo, admin
}

func TestUserService_AddCourier(t *testing.T) {
	testDB, svc, rightRepo, admin := setupUserServiceTest(t)
	defer db.CleanupTestDB(testDB)

	courier, err := svc.AddCourier(admin.ID, "New Courier", "courier@example.com", "secret1", "0712345678")
	require.NoError(t, err)
	assert.NotZero(t, courier.ID)

	// The stored hash must verify against the original password.
	assert.True(t, util.VerifyPassword(courier.PasswordHash, "secret1"))

	has, err := rightRepo.HasRight(courier.ID, model.RightCourier)
	require.NoError(t, err)
	assert.True(t, has)

	_, err = svc.AddCourier(admin.ID, "Dup Email", "courier@example.com", "secret1", "0787654321")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	_, err = svc.AddCourier(admin.ID, "Dup Phone", "other@example.com", "secret1", "0712345678")
	assert.ErrorIs(t, err, ErrPhoneAlreadyExists)
}

func TestUserService_AddCourierRequiresAdmin(t *testing.T) {
	testDB, svc, _, admin := setupUserServiceTest(t)
	defer db.CleanupTestDB(testDB)

	courier, err := svc.AddCourier(admin.ID, "Courier", "courier@example.com", "secret1", "0712345678")
	require.NoError(t, err)

	_, err = svc.AddCourier(courier.ID, "Sneaky", "sneaky@example.com", "secret1", "0798765432")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUserService_DeleteCourier(t *testing.T) {
	testDB, svc, _, admin := setupUserServiceTest(t)
	defer db.CleanupTestDB(testDB)

	courier, err := svc.AddCourier(admin.ID, "Courier", "courier@example.com", "secret1", "0712345678")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCourier(admin.ID, courier.ID))

	err = svc.DeleteCourier(admin.ID, courier.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_ListCouriers(t *testing.T) {
	testDB, svc, _, admin := setupUserServiceTest(t)
	defer db.CleanupTestDB(testDB)

	first, err := svc.AddCourier(admin.ID, "First", "first@example.com", "secret1", "0711111111")
	require.NoError(t, err)

	couriers, err := svc.ListCouriers(admin.ID)
	require.NoError(t, err)
	require.Len(t, couriers, 1)
	assert.Equal(t, first.ID, couriers[0].ID)

	_, err = svc.ListCouriers(first.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}
