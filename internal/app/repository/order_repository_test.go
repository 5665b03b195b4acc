package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hartondavid/delivery-backend/internal/app/model"
	"github.com/hartondavid/delivery-backend/internal/db"
)

func setupOrderTest(t *testing.T) (*gorm.DB, OrderRepository, *model.User) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := NewUserRepository(testDB)
	admin := createUser(t, userRepo, "Admin", "admin@example.com", "0700000001")
	grantRight(t, testDB, admin.ID, model.RightAdmin)

	return testDB, NewOrderRepository(testDB), admin
}

func createOrder(t *testing.T, repo OrderRepository, adminID uint, recipient string) *model.Order {
	t.Helper()

	order := &model.Order{
		Recipient: recipient,
		Phone:     "0711111111",
		Address:   "1 Main Street",
		Status:    model.StatusPending,
		AdminID:   adminID,
	}
	require.NoError(t, repo.Create(order))
	return order
}

func TestOrderRepository_CreateAndFind(t *testing.T) {
	testDB, repo, admin := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	order := createOrder(t, repo, admin.ID, "Alice")

	found, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Recipient)
	assert.Equal(t, model.StatusPending, found.Status)
	assert.Nil(t, found.DeliveryID)

	_, err = repo.FindByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrderRepository_SearchUnassigned(t *testing.T) {
	testDB, repo, admin := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	free := createOrder(t, repo, admin.ID, "Alice")
	assigned := createOrder(t, repo, admin.ID, "Alina")

	delivery := &model.Delivery{AdminID: admin.ID}
	require.NoError(t, testDB.Create(delivery).Error)
	require.NoError(t, repo.AssignToDelivery([]uint{assigned.ID}, delivery.ID))

	orders, err := repo.SearchUnassigned("Ali")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, free.ID, orders[0].ID)

	orders, err = repo.SearchUnassigned("nomatch")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderRepository_AssignToDelivery(t *testing.T) {
	testDB, repo, admin := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	first := createOrder(t, repo, admin.ID, "Alice")
	second := createOrder(t, repo, admin.ID, "Bob")

	delivery := &model.Delivery{AdminID: admin.ID}
	require.NoError(t, testDB.Create(delivery).Error)

	require.NoError(t, repo.AssignToDelivery([]uint{first.ID, second.ID}, delivery.ID))

	orders, err := repo.FindByDelivery(delivery.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestOrderRepository_FindByCourier(t *testing.T) {
	testDB, repo, admin := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	userRepo := NewUserRepository(testDB)
	courier := createUser(t, userRepo, "Courier", "courier@example.com", "0700000002")
	grantRight(t, testDB, courier.ID, model.RightCourier)

	order := createOrder(t, repo, admin.ID, "Alice")
	createOrder(t, repo, admin.ID, "Bob")

	delivery := &model.Delivery{AdminID: admin.ID, CourierID: &courier.ID}
	require.NoError(t, testDB.Create(delivery).Error)
	require.NoError(t, repo.AssignToDelivery([]uint{order.ID}, delivery.ID))

	orders, err := repo.FindByCourier(courier.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	orders, err = repo.FindByCourier(9999)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderRepository_CountByStatus(t *testing.T) {
	testDB, repo, admin := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	createOrder(t, repo, admin.ID, "Alice")
	createOrder(t, repo, admin.ID, "Bob")

	delivered := createOrder(t, repo, admin.ID, "Carol")
	delivered.Status = model.StatusDelivered
	require.NoError(t, repo.Update(delivered))

	counts, err := repo.CountByStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[model.StatusPending])
	assert.Equal(t, int64(1), counts[model.StatusDelivered])
}
