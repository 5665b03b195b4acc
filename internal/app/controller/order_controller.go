package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hartondavid/delivery-backend/internal/app/model"
	"github.com/hartondavid/delivery-backend/internal/app/service"
	apperrors "github.com/hartondavid/delivery-backend/internal/errors"
	"github.com/hartondavid/delivery-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

type AddOrderRequest struct {
	Recipient string `json:"recipient" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Address   string `json:"address" binding:"required"`
	Status    string `json:"status"`
}

type UpdateOrderRequest struct {
	Recipient string `json:"recipient"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Status    string `json:"status"`
}

// AddOrder creates a new order.
// POST /api/v1/orders/addOrder
func (ctrl *OrderController) AddOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID, _ := middleware.GetUserID(c)

	var req AddOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Recipient, phone and address are required")
		return
	}

	order, err := ctrl.orderService.Create(userID, req.Recipient, req.Phone, req.Address, model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			apperrors.Forbidden(c)
		case errors.Is(err, service.ErrInvalidOrderStatus):
			apperrors.BadRequest(c, "Invalid order status")
		default:
			log.Error("Order creation failed", err, nil)
			apperrors.ParseAndRespond(c, err, "create order")
		}
		return
	}

	apperrors.Created(c, "Order created successfully", gin.H{"order": order})
}

// UpdateOrder partially updates an order.
// PUT /api/v1/orders/updateOrder/:orderId
func (ctrl *OrderController) UpdateOrder(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	orderID, ok := parseIDParam(c, "orderId")
	if !ok {
		apperrors.BadRequest(c, "Invalid order id")
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid order data")
		return
	}

	order, err := ctrl.orderService.Update(userID, orderID, req.Recipient, req.Phone, req.Address, model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			apperrors.Forbidden(c)
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, "Order not found")
		case errors.Is(err, service.ErrInvalidOrderStatus):
			apperrors.BadRequest(c, "Invalid order status")
		default:
			apperrors.InternalError(c, "Internal server error")
		}
		return
	}

	apperrors.OK(c, "Order updated successfully", gin.H{"order": order})
}

// DeleteOrder removes an order.
// DELETE /api/v1/orders/deleteOrder/:orderId
func (ctrl *OrderController) DeleteOrder(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	orderID, ok := parseIDParam(c, "orderId")
	if !ok {
		apperrors.BadRequest(c, "Invalid order id")
		return
	}

	if err := ctrl.orderService.Delete(userID, orderID); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			apperrors.Forbidden(c)
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, "Order not found")
		default:
			apperrors.InternalError(c, "Internal server error")
		}
		return
	}

	apperrors.OK(c, "Order deleted successfully", nil)
}

// GetOrder fetches a single order.
// GET /api/v1/orders/getOrder/:orderId
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	orderID, ok := parseIDParam(c, "orderId")
	if !ok {
		apperrors.BadRequest(c, "Invalid order id")
		return
	}

	order, err := ctrl.orderService.Get(userID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			apperrors.Forbidden(c)
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, "Order not found")
		default:
			apperrors.InternalError(c, "Internal server error")
		}
		return
	}

	apperrors.OK(c, "Order retrieved successfully", gin.H{"order": order})
}

// GetOrdersByAdmin lists the caller's orders.
// GET /api/v1/orders/getOrdersByAdminId
func (ctrl *OrderController) GetOrdersByAdmin(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	orders, err := ctrl.orderService.ListByAdmin(userID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			apperrors.Forbidden(c)
			return
		}
		apperrors.InternalError(c, "Internal server error")
		return
	}

	apperrors.OK(c, "Orders retrieved successfully", orders)
}

// GetOrdersByCourier lists orders on deliveries assigned to the caller.
// GET /api/v1/orders/getOrdersByCourierId
func (ctrl *OrderController) GetOrdersByCourier(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	orders, err := ctrl.orderService.ListByCourier(userID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			apperrors.Forbidden(c)
			return
		}
		apperrors.InternalError(c, "Internal server error")
		return
	}

	apperrors.OK(c, "Orders retrieved successfully", orders)
}

// SearchOrder finds orders not yet attached to any delivery.
// GET /api/v1/orders/searchOrder?searchField=...
func (ctrl *OrderController) SearchOrder(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	search := c.Query("searchField")

	orders, err := ctrl.orderService.SearchUnassigned(userID, search)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			apperrors.Forbidden(c)
			return
		}
		apperrors.InternalError(c, "Internal server error")
		return
	}

	apperrors.OK(c, "Orders retrieved successfully", orders)
}

// GetOrdersByDelivery lists the orders attached to a delivery.
// GET /api/v1/orders/getOrdersByDeliveryId/:deliveryId
func (ctrl *OrderController) GetOrdersByDelivery(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	deliveryID, ok := parseIDParam(c, "deliveryId")
	if !ok {
		apperrors.BadRequest(c, "Invalid delivery id")
		return
	}

	orders, err := ctrl.orderService.ListByDelivery(userID, deliveryID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			apperrors.Forbidden(c)
			return
		}
		apperrors.InternalError(c, "Internal server error")
		return
	}

	apperrors.OK(c, "Orders retrieved successfully", orders)
}
