package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hartondavid/delivery-backend/internal/app/model"
	"github.com/hartondavid/delivery-backend/internal/app/repository"
	"github.com/hartondavid/delivery-backend/pkg/logger"
)

var ErrDeliveryNotFound = errors.New("delivery not found")

// DeliveryDetail is a delivery with its courier name and the orders
// currently attached to it.
type DeliveryDetail struct {
	repository.DeliveryRow
	Orders []model.Order `json:"orders"`
}

// DeliveryService manages deliveries and the orders attached to them.
type DeliveryService interface {
	Create(adminID uint, orderIDs []uint) (*model.Delivery, error)
	Delete(adminID, deliveryID uint) error
	ListByAdmin(adminID uint) ([]DeliveryDetail, error)
	ListByCourier(courierID uint) ([]DeliveryDetail, error)
	AddOrders(adminID, deliveryID uint, orderIDs []uint) error
	AssignCourier(adminID, deliveryID, courierID uint) error
	SearchByCourier(courierID uint, search string) ([]model.Delivery, error)
}

type deliveryService struct {
	rightsGuard
	deliveryRepo repository.DeliveryRepository
	orderRepo    repository.OrderRepository
	userRepo     repository.UserRepository
}

func NewDeliveryService(
	deliveryRepo repository.DeliveryRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	rightRepo repository.RightRepository,
) DeliveryService {
	return &deliveryService{
		rightsGuard:  rightsGuard{rightRepo: rightRepo},
		deliveryRepo: deliveryRepo,
		orderRepo:    orderRepo,
		userRepo:     userRepo,
	}
}

// Create opens a new delivery and optionally attaches an initial batch of
// orders to it.
func (s *deliveryService) Create(adminID uint, orderIDs []uint) (*model.Delivery, error) {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return nil, err
	}

	delivery := &model.Delivery{AdminID: adminID}
	if err := s.deliveryRepo.Create(delivery); err != nil {
		return nil, err
	}

	if len(orderIDs) > 0 {
		if err := s.orderRepo.AssignToDelivery(orderIDs, delivery.ID); err != nil {
			return nil, err
		}
	}

	logger.Info("Delivery created", map[string]interface{}{
		"delivery_id": delivery.ID,
		"admin_id":    adminID,
		"order_count": len(orderIDs),
	})
	return delivery, nil
}

// Delete removes a delivery together with its issues and attached orders.
func (s *deliveryService) Delete(adminID, deliveryID uint) error {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return err
	}

	if _, err := s.deliveryRepo.FindByID(deliveryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDeliveryNotFound
		}
		return err
	}

	if err := s.deliveryRepo.Delete(deliveryID); err != nil {
		return err
	}

	logger.Info("Delivery deleted", map[string]interface{}{
		"delivery_id": deliveryID,
		"admin_id":    adminID,
	})
	return nil
}

func (s *deliveryService) ListByAdmin(adminID uint) ([]DeliveryDetail, error) {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return nil, err
	}
	rows, err := s.deliveryRepo.FindByAdmin(adminID)
	if err != nil {
		return nil, err
	}
	return s.attachOrders(rows)
}

func (s *deliveryService) ListByCourier(courierID uint) ([]DeliveryDetail, error) {
	if err := s.require(courierID, model.RightCourier); err != nil {
		return nil, err
	}
	rows, err := s.deliveryRepo.FindByCourier(courierID)
	if err != nil {
		return nil, err
	}
	return s.attachOrders(rows)
}

func (s *deliveryService) attachOrders(rows []repository.DeliveryRow) ([]DeliveryDetail, error) {
	details := make([]DeliveryDetail, 0, len(rows))
	for _, row := range rows {
		orders, err := s.orderRepo.FindByDelivery(row.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, DeliveryDetail{DeliveryRow: row, Orders: orders})
	}
	return details, nil
}

func (s *deliveryService) AddOrders(adminID, deliveryID uint, orderIDs []uint) error {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return err
	}

	if _, err := s.deliveryRepo.FindByID(deliveryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDeliveryNotFound
		}
		return err
	}

	return s.orderRepo.AssignToDelivery(orderIDs, deliveryID)
}

func (s *deliveryService) AssignCourier(adminID, deliveryID, courierID uint) error {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return err
	}

	if _, err := s.deliveryRepo.FindByID(deliveryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDeliveryNotFound
		}
		return err
	}

	if _, err := s.userRepo.FindByID(courierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.deliveryRepo.AssignCourier(deliveryID, courierID); err != nil {
		return err
	}

	logger.Info("Courier assigned to delivery", map[string]interface{}{
		"delivery_id": deliveryID,
		"courier_id":  courierID,
		"admin_id":    adminID,
	})
	return nil
}

func (s *deliveryService) SearchByCourier(courierID uint, search string) ([]model.Delivery, error) {
	if err := s.require(courierID, model.RightCourier); err != nil {
		return nil, err
	}
	return s.deliveryRepo.SearchByCourier(courierID, search)
}
