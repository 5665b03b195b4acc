package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/hartondavid/delivery-backend/internal/app/model"
	"github.com/hartondavid/delivery-backend/pkg/logger"
)

// DeliveryRow is a delivery joined with its courier's name.
type DeliveryRow struct {
	ID          uint      `json:"id"`
	AdminID     uint      `json:"admin_id"`
	CourierID   *uint     `json:"courier_id"`
	CourierName string    `json:"courier_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type DeliveryRepository interface {
	Create(delivery *model.Delivery) error
	FindByID(id uint) (*model.Delivery, error)
	Delete(id uint) error
	FindByAdmin(adminID uint) ([]DeliveryRow, error)
	FindByCourier(courierID uint) ([]DeliveryRow, error)
	AssignCourier(deliveryID, courierID uint) error
	SearchByCourier(courierID uint, search string) ([]model.Delivery, error)
}

type deliveryRepository struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) DeliveryRepository {
	return &deliveryRepository{db: db}
}

func (r *deliveryRepository) Create(delivery *model.Delivery) error {
	if err := r.db.Create(delivery).Error; err != nil {
		logger.Error("Failed to create delivery in database", err, map[string]interface{}{
			"admin_id": delivery.AdminID,
		})
		return err
	}
	return nil
}

func (r *deliveryRepository) FindByID(id uint) (*model.Delivery, error) {
	var delivery model.Delivery
	if err := r.db.First(&delivery, id).Error; err != nil {
		return nil, err
	}
	return &delivery, nil
}

func (r *deliveryRepository) Delete(id uint) error {
	logger.Debug("Deleting delivery from database", map[string]interface{}{
		"delivery_id": id,
	})

	if err := r.db.Delete(&model.Delivery{}, id).Error; err != nil {
		logger.Error("Failed to delete delivery from database", err, map[string]interface{}{
			"delivery_id": id,
		})
		return err
	}
	return nil
}

func (r *deliveryRepository) FindByAdmin(adminID uint) ([]DeliveryRow, error) {
	var rows []DeliveryRow
	err := r.db.Model(&model.Delivery{}).
		Select("delivery.id, delivery.admin_id, delivery.courier_id, delivery.created_at, users.name AS courier_name").
		Joins("LEFT JOIN users ON users.id = delivery.courier_id").
		Where("delivery.admin_id = ?", adminID).
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to list deliveries for admin", err, map[string]interface{}{
			"admin_id": adminID,
		})
		return nil, err
	}
	return rows, nil
}

func (r *deliveryRepository) FindByCourier(courierID uint) ([]DeliveryRow, error) {
	var rows []DeliveryRow
	err := r.db.Model(&model.Delivery{}).
		Select("delivery.id, delivery.admin_id, delivery.courier_id, delivery.created_at, users.name AS courier_name").
		Joins("LEFT JOIN users ON users.id = delivery.courier_id").
		Where("delivery.courier_id = ?", courierID).
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to list deliveries for courier", err, map[string]interface{}{
			"courier_id": courierID,
		})
		return nil, err
	}
	return rows, nil
}

func (r *deliveryRepository) AssignCourier(deliveryID, courierID uint) error {
	logger.Debug("Assigning courier to delivery", map[string]interface{}{
		"delivery_id": deliveryID,
		"courier_id":  courierID,
	})
	return r.db.Model(&model.Delivery{}).
		Where("id = ?", deliveryID).
		Update("courier_id", courierID).Error
}

func (r *deliveryRepository) SearchByCourier(courierID uint, search string) ([]model.Delivery, error) {
	var deliveries []model.Delivery
	err := r.db.
		Where("courier_id = ?", courierID).
		Where("CAST(id AS TEXT) LIKE ?", "%"+search+"%").
		Find(&deliveries).Error
	if err != nil {
		logger.Error("Failed to search deliveries", err, map[string]interface{}{
			"courier_id": courierID,
			"search":     search,
		})
		return nil, err
	}
	return deliveries, nil
}
