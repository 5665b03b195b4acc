package repository

import (
	"gorm.io/gorm"

	"github.com/hartondavid/delivery-backend/internal/app/model"
	"github.com/hartondavid/delivery-backend/pkg/logger"
)

type OrderRepository interface {
	Create(order *model.Order) error
	FindByID(id uint) (*model.Order, error)
	Update(order *model.Order) error
	Delete(id uint) error
	FindByAdmin(adminID uint) ([]model.Order, error)
	FindByCourier(courierID uint) ([]model.Order, error)
	FindByDelivery(deliveryID uint) ([]model.Order, error)
	SearchUnassigned(search string) ([]model.Order, error)
	AssignToDelivery(orderIDs []uint, deliveryID uint) error
	CountByStatus() (map[model.OrderStatus]int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"recipient": order.Recipient,
		"admin_id":  order.AdminID,
	})

	if err := r.db.Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"recipient": order.Recipient,
		})
		return err
	}
	return nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Update(order *model.Order) error {
	if err := r.db.Save(order).Error; err != nil {
		logger.Error("Failed to update order in database", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return err
	}
	return nil
}

func (r *orderRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Order{}, id).Error; err != nil {
		logger.Error("Failed to delete order from database", err, map[string]interface{}{
			"order_id": id,
		})
		return err
	}
	return nil
}

func (r *orderRepository) FindByAdmin(adminID uint) ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.Where("admin_id = ?", adminID).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByCourier returns the orders attached to deliveries assigned to the
// given courier.
func (r *orderRepository) FindByCourier(courierID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.
		Joins("JOIN delivery ON delivery.id = orders.delivery_id").
		Where("delivery.courier_id = ?", courierID).
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to list orders for courier", err, map[string]interface{}{
			"courier_id": courierID,
		})
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindByDelivery(deliveryID uint) ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.Where("delivery_id = ?", deliveryID).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// SearchUnassigned searches the unassigned pool (orders without a delivery)
// by recipient, phone or address.
func (r *orderRepository) SearchUnassigned(search string) ([]model.Order, error) {
	pattern := "%" + search + "%"

	var orders []model.Order
	err := r.db.
		Where("delivery_id IS NULL").
		Where("recipient LIKE ? OR phone LIKE ? OR address LIKE ?", pattern, pattern, pattern).
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to search orders", err, map[string]interface{}{
			"search": search,
		})
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) AssignToDelivery(orderIDs []uint, deliveryID uint) error {
	logger.Debug("Assigning orders to delivery", map[string]interface{}{
		"order_ids":   orderIDs,
		"delivery_id": deliveryID,
	})
	return r.db.Model(&model.Order{}).
		Where("id IN ?", orderIDs).
		Update("delivery_id", deliveryID).Error
}

func (r *orderRepository) CountByStatus() (map[model.OrderStatus]int64, error) {
	type statusCount struct {
		Status model.OrderStatus
		Count  int64
	}

	var rows []statusCount
	err := r.db.Model(&model.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
