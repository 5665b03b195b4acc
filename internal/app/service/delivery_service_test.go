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

type deliveryServiceFixture struct {
	db      *gorm.DB
	service DeliveryService
	issues  IssueService
	orders  repository.OrderRepository
	admin   *model.User
	courier *model.User
}

func setupDeliveryServiceTest(t *testing.T) deliveryServiceFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	rightRepo := repository.NewRightRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	deliveryRepo := repository.NewDeliveryRepository(testDB)
	issueRepo := repository.NewIssueRepository(testDB)

	admin := seedPrincipal(t, testDB, userRepo, "admin@example.com", "0700000001", model.RightAdmin)
	courier := seedPrincipal(t, testDB, userRepo, "courier@example.com", "0700000002", model.RightCourier)

	return deliveryServiceFixture{
		db:      testDB,
		service: NewDeliveryService(deliveryRepo, orderRepo, userRepo, rightRepo),
		issues:  NewIssueService(issueRepo, deliveryRepo, rightRepo),
		orders:  orderRepo,
		admin:   admin,
		courier: courier,
	}
}

func (f deliveryServiceFixture) seedOrder(t *testing.T, recipient string) *model.Order {
	t.Helper()

	order := &model.Order{
		Recipient: recipient,
		Phone:     "0711111111",
		Address:   "1 Main Street",
		Status:    model.StatusPending,
		AdminID:   f.admin.ID,
	}
	require.NoError(t, f.orders.Create(order))
	return order
}

func TestDeliveryService_CreateWithOrders(t *testing.T) {
	f := setupDeliveryServiceTest(t)
	defer db.CleanupTestDB(f.db)

	order := f.seedOrder(t, "Alice")

	delivery, err := f.service.Create(f.admin.ID, []uint{order.ID})
	require.NoError(t, err)

	attached, err := f.orders.FindByDelivery(delivery.ID)
	require.NoError(t, err)
	require.Len(t, attached, 1)
	assert.Equal(t, order.ID, attached[0].ID)

	_, err = f.service.Create(f.courier.ID, nil)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeliveryService_AssignCourier(t *testing.T) {
	f := setupDeliveryServiceTest(t)
	defer db.CleanupTestDB(f.db)

	delivery, err := f.service.Create(f.admin.ID, nil)
	require.NoError(t, err)

	require.NoError(t, f.service.AssignCourier(f.admin.ID, delivery.ID, f.courier.ID))

	err = f.service.AssignCourier(f.admin.ID, 9999, f.courier.ID)
	assert.ErrorIs(t, err, ErrDeliveryNotFound)

	err = f.service.AssignCourier(f.admin.ID, delivery.ID, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeliveryService_ListByAdminIncludesOrders(t *testing.T) {
	f := setupDeliveryServiceTest(t)
	defer db.CleanupTestDB(f.db)

	order := f.seedOrder(t, "Alice")
	delivery, err := f.service.Create(f.admin.ID, []uint{order.ID})
	require.NoError(t, err)
	require.NoError(t, f.service.AssignCourier(f.admin.ID, delivery.ID, f.courier.ID))

	details, err := f.service.ListByAdmin(f.admin.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "courier@example.com", details[0].CourierName)
	require.Len(t, details[0].Orders, 1)
	assert.Equal(t, order.ID, details[0].Orders[0].ID)
}

func TestDeliveryService_ListByCourier(t *testing.T) {
	f := setupDeliveryServiceTest(t)
	defer db.CleanupTestDB(f.db)

	delivery, err := f.service.Create(f.admin.ID, nil)
	require.NoError(t, err)
	require.NoError(t, f.service.AssignCourier(f.admin.ID, delivery.ID, f.courier.ID))

	details, err := f.service.ListByCourier(f.courier.ID)
	require.NoError(t, err)
	assert.Len(t, details, 1)

	_, err = f.service.ListByCourier(f.admin.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestIssueService_Lifecycle(t *testing.T) {
	f := setupDeliveryServiceTest(t)
	defer db.CleanupTestDB(f.db)

	delivery, err := f.service.Create(f.admin.ID, nil)
	require.NoError(t, err)
	require.NoError(t, f.service.AssignCourier(f.admin.ID, delivery.ID, f.courier.ID))

	issue, err := f.issues.Create(f.courier.ID, delivery.ID, "Damaged package")
	require.NoError(t, err)

	_, err = f.issues.Create(f.courier.ID, 9999, "Ghost delivery")
	assert.ErrorIs(t, err, ErrDeliveryNotFound)

	_, err = f.issues.Create(f.admin.ID, delivery.ID, "Not a courier")
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := f.issues.Update(f.courier.ID, issue.ID, "Damaged and wet package")
	require.NoError(t, err)
	assert.Equal(t, "Damaged and wet package", updated.Description)

	all, err := f.issues.ListAll(f.admin.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "courier@example.com", all[0].CourierName)

	mine, err := f.issues.ListByCourier(f.courier.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, f.issues.Delete(f.courier.ID, issue.ID))
	_, err = f.issues.Get(f.courier.ID, issue.ID)
	assert.ErrorIs(t, err, ErrIssueNotFound)
}

// Deleting a delivery takes its issues down with it.
func TestDeliveryService_DeleteCascadesIssues(t *testing.T) {
	f := setupDeliveryServiceTest(t)
	defer db.CleanupTestDB(f.db)

	delivery, err := f.service.Create(f.admin.ID, nil)
	require.NoError(t, err)
	require.NoError(t, f.service.AssignCourier(f.admin.ID, delivery.ID, f.courier.ID))

	_, err = f.issues.Create(f.courier.ID, delivery.ID, "Damaged package")
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(f.admin.ID, delivery.ID))

	var count int64
	require.NoError(t, f.db.Model(&model.Issue{}).Count(&count).Error)
	assert.Zero(t, count)
}
