package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hartondavid/delivery-backend/internal/app/model"
	"github.com/hartondavid/delivery-backend/internal/app/repository"
	"github.com/hartondavid/delivery-backend/internal/db"
)

type orderServiceFixture struct {
	db        *gorm.DB
	service   OrderService
	orderRepo repository.OrderRepository
	admin     *model.User
	courier   *model.User
}

func setupOrderServiceTest(t *testing.T) orderServiceFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	rightRepo := repository.NewRightRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)

	admin := seedPrincipal(t, testDB, userRepo, "admin@example.com", "0700000001", model.RightAdmin)
	courier := seedPrincipal(t, testDB, userRepo, "courier@example.com", "0700000002", model.RightCourier)

	return orderServiceFixture{
		db:        testDB,
		service:   NewOrderService(orderRepo, rightRepo),
		orderRepo: orderRepo,
		admin:     admin,
		courier:   courier,
	}
}

// seedPrincipal creates a user holding the given right.
func seedPrincipal(t *testing.T, testDB *gorm.DB, userRepo repository.UserRepository, email, phone string, code model.RightCode) *model.User {
	t.Helper()

	user := &model.User{
		Name:         email,
		Email:        email,
		Phone:        phone,
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, userRepo.Create(user))

	var right model.Right
	require.NoError(t, testDB.Where("right_code = ?", code).First(&right).Error)
	require.NoError(t, testDB.Create(&model.UserRight{UserID: user.ID, RightID: right.ID}).Error)

	return user
}

func TestOrderService_Create(t *testing.T) {
	f := setupOrderServiceTest(t)
	defer db.CleanupTestDB(f.db)

	order, err := f.service.Create(f.admin.ID, "Alice", "0711111111", "1 Main Street", "")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, order.Status)
	assert.Equal(t, f.admin.ID, order.AdminID)

	_, err = f.service.Create(f.admin.ID, "Bob", "0722222222", "2 Main Street", "teleported")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

// A caller without the admin right gets ErrForbidden and no rows change.
func TestOrderService_CourierCannotMutate(t *testing.T) {
	f := setupOrderServiceTest(t)
	defer db.CleanupTestDB(f.db)

	existing, err := f.service.Create(f.admin.ID, "Alice", "0711111111", "1 Main Street", "")
	require.NoError(t, err)

	_, err = f.service.Create(f.courier.ID, "Mallory", "0733333333", "3 Main Street", "")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.service.Update(f.courier.ID, existing.ID, "Mallory", "", "", "")
	assert.ErrorIs(t, err, ErrForbidden)

	err = f.service.Delete(f.courier.ID, existing.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	var count int64
	require.NoError(t, f.db.Model(&model.Order{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	unchanged, err := f.orderRepo.FindByID(existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", unchanged.Recipient)
}

func TestOrderService_Update(t *testing.T) {
	f := setupOrderServiceTest(t)
	defer db.CleanupTestDB(f.db)

	order, err := f.service.Create(f.admin.ID, "Alice", "0711111111", "1 Main Street", "")
	require.NoError(t, err)

	updated, err := f.service.Update(f.admin.ID, order.ID, "", "", "", model.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDelivered, updated.Status)
	assert.Equal(t, "Alice", updated.Recipient)

	_, err = f.service.Update(f.admin.ID, 9999, "X", "", "", "")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_ListByCourier(t *testing.T) {
	f := setupOrderServiceTest(t)
	defer db.CleanupTestDB(f.db)

	order, err := f.service.Create(f.admin.ID, "Alice", "0711111111", "1 Main Street", "")
	require.NoError(t, err)

	delivery := &model.Delivery{AdminID: f.admin.ID, CourierID: &f.courier.ID}
	require.NoError(t, f.db.Create(delivery).Error)
	require.NoError(t, f.orderRepo.AssignToDelivery([]uint{order.ID}, delivery.ID))

	orders, err := f.service.ListByCourier(f.courier.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	_, err = f.service.ListByCourier(f.admin.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestOrderService_SearchUnassigned(t *testing.T) {
	f := setupOrderServiceTest(t)
	defer db.CleanupTestDB(f.db)

	_, err := f.service.Create(f.admin.ID, "Alice", "0711111111", "1 Main Street", "")
	require.NoError(t, err)

	orders, err := f.service.SearchUnassigned(f.admin.ID, "Main")
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	_, err = f.service.SearchUnassigned(f.courier.ID, "Main")
	assert.ErrorIs(t, err, ErrForbidden)
}
