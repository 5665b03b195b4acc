package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hartondavid/delivery-backend/internal/app/model"
	"github.com/hartondavid/delivery-backend/internal/app/repository"
	"github.com/hartondavid/delivery-backend/pkg/logger"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

// OrderService manages orders. Creation, mutation and unassigned search are
// admin operations; couriers can only list orders on their own deliveries.
type OrderService interface {
	Create(adminID uint, recipient, phone, address string, status model.OrderStatus) (*model.Order, error)
	Update(adminID, orderID uint, recipient, phone, address string, status model.OrderStatus) (*model.Order, error)
	Delete(adminID, orderID uint) error
	Get(adminID, orderID uint) (*model.Order, error)
	ListByAdmin(adminID uint) ([]model.Order, error)
	ListByCourier(courierID uint) ([]model.Order, error)
	SearchUnassigned(adminID uint, search string) ([]model.Order, error)
	ListByDelivery(adminID, deliveryID uint) ([]model.Order, error)
	StatusSummary() (map[model.OrderStatus]int64, error)
}

type orderService struct {
	rightsGuard
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository, rightRepo repository.RightRepository) OrderService {
	return &orderService{
		rightsGuard: rightsGuard{rightRepo: rightRepo},
		orderRepo:   orderRepo,
	}
}

func (s *orderService) Create(adminID uint, recipient, phone, address string, status model.OrderStatus) (*model.Order, error) {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return nil, err
	}
	if status == "" {
		status = model.StatusPending
	}
	if !model.ValidOrderStatus(status) {
		return nil, ErrInvalidOrderStatus
	}

	order := &model.Order{
		Recipient: recipient,
		Phone:     phone,
		Address:   address,
		Status:    status,
		AdminID:   adminID,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	logger.Info("Order created", map[string]interface{}{
		"order_id": order.ID,
		"admin_id": adminID,
	})
	return order, nil
}

func (s *orderService) Update(adminID, orderID uint, recipient, phone, address string, status model.OrderStatus) (*model.Order, error) {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if recipient != "" {
		order.Recipient = recipient
	}
	if phone != "" {
		order.Phone = phone
	}
	if address != "" {
		order.Address = address
	}
	if status != "" {
		if !model.ValidOrderStatus(status) {
			return nil, ErrInvalidOrderStatus
		}
		order.Status = status
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) Delete(adminID, orderID uint) error {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return err
	}

	if _, err := s.orderRepo.FindByID(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	if err := s.orderRepo.Delete(orderID); err != nil {
		return err
	}

	logger.Info("Order deleted", map[string]interface{}{
		"order_id": orderID,
		"admin_id": adminID,
	})
	return nil
}

func (s *orderService) Get(adminID, orderID uint) (*model.Order, error) {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListByAdmin(adminID uint) ([]model.Order, error) {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return nil, err
	}
	return s.orderRepo.FindByAdmin(adminID)
}

func (s *orderService) ListByCourier(courierID uint) ([]model.Order, error) {
	if err := s.require(courierID, model.RightCourier); err != nil {
		return nil, err
	}
	return s.orderRepo.FindByCourier(courierID)
}

func (s *orderService) SearchUnassigned(adminID uint, search string) ([]model.Order, error) {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return nil, err
	}
	return s.orderRepo.SearchUnassigned(search)
}

func (s *orderService) ListByDelivery(adminID, deliveryID uint) ([]model.Order, error) {
	if err := s.require(adminID, model.RightAdmin); err != nil {
		return nil, err
	}
	return s.orderRepo.FindByDelivery(deliveryID)
}

// StatusSummary is used by the daily report job, which runs without a
// principal, so no rights check applies here.
func (s *orderService) StatusSummary() (map[model.OrderStatus]int64, error) {
	return s.orderRepo.CountByStatus()
}
