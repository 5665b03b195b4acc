package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hartondavid/delivery-backend/internal/app/service"
	apperrors "github.com/hartondavid/delivery-backend/internal/errors"
	"github.com/hartondavid/delivery-backend/internal/middleware"
)

type DeliveryController struct {
	deliveryService service.DeliveryService
}

func NewDeliveryController(deliveryService service.DeliveryService) *DeliveryController {
	return &DeliveryController{deliveryService: deliveryService}
}

type AddDeliveryRequest struct {
	OrderIDs []uint `json:"order_ids"`
}

type AddOrdersToDeliveryRequest struct {
	OrderIDs []uint `json:"order_ids" binding:"required,min=1"`
}

type AssignCourierRequest struct {
	CourierID uint `json:"courier_id" binding:"required"`
}

// AddDelivery opens a new delivery, optionally with an initial order batch.
// POST /api/v1/delivery/addDelivery
func (ctrl *DeliveryController) AddDelivery(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID, _ := middleware.GetUserID(c)

	var req AddDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid delivery data")
		return
	}

	delivery, err := ctrl.deliveryService.Create(userID, req.OrderIDs)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			apperrors.Forbidden(c)
			return
		}
		log.Error("Delivery creation failed", err, nil)
		apperrors.ParseAndRespond(c, err, "create delivery")
		return
	}

	apperrors.Created(c, "Delivery created successfully", gin.H{"delivery": delivery})
}

// GetDeliveriesByAdmin lists the caller's deliveries with their orders.
// GET /api/v1/delivery/getDeliveriesByAdminId
func (ctrl *DeliveryController) GetDeliveriesByAdmin(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	deliveries, err := ctrl.deliveryService.ListByAdmin(userID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			apperrors.Forbidden(c)
			return
		}
		apperrors.InternalError(c, "Internal server error")
		return
	}

	apperrors.OK(c, "Deliveries retrieved successfully", deliveries)
}

// GetDeliveriesByCourier lists deliveries assigned to the caller.
// GET /api/v1/delivery/getDeliveriesByCourierId
func (ctrl *DeliveryController) GetDeliveriesByCourier(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	deliveries, err := ctrl.deliveryService.ListByCourier(userID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			apperrors.Forbidden(c)
			return
		}
		apperrors.InternalError(c, "Internal server error")
		return
	}

	apperrors.OK(c, "Deliveries retrieved successfully", deliveries)
}

// DeleteDelivery removes a delivery along with its issues and orders.
// DELETE /api/v1/delivery/deleteDelivery/:deliveryId
func (ctrl *DeliveryController) DeleteDelivery(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	deliveryID, ok := parseIDParam(c, "deliveryId")
	if !ok {
		apperrors.BadRequest(c, "Invalid delivery id")
		return
	}

	if err := ctrl.deliveryService.Delete(userID, deliveryID); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			apperrors.Forbidden(c)
		case errors.Is(err, service.ErrDeliveryNotFound):
			apperrors.NotFound(c, "Delivery not found")
		default:
			apperrors.InternalError(c, "Internal server error")
		}
		return
	}

	apperrors.OK(c, "Delivery deleted successfully", nil)
}

// AddOrdersToDelivery attaches orders to an existing delivery.
// POST /api/v1/delivery/addOrdersToDelivery/:deliveryId
func (ctrl *DeliveryController) AddOrdersToDelivery(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	deliveryID, ok := parseIDParam(c, "deliveryId")
	if !ok {
		apperrors.BadRequest(c, "Invalid delivery id")
		return
	}

	var req AddOrdersToDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "At least one order id is required")
		return
	}

	if err := ctrl.deliveryService.AddOrders(userID, deliveryID, req.OrderIDs); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			apperrors.Forbidden(c)
		case errors.Is(err, service.ErrDeliveryNotFound):
			apperrors.NotFound(c, "Delivery not found")
		default:
			apperrors.InternalError(c, "Internal server error")
		}
		return
	}

	apperrors.OK(c, "Orders added to delivery successfully", nil)
}

// AssignCourierToDelivery assigns a courier to a delivery.
// POST /api/v1/delivery/assignCourierToDelivery/:deliveryId
func (ctrl *DeliveryController) AssignCourierToDelivery(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	deliveryID, ok := parseIDParam(c, "deliveryId")
	if !ok {
		apperrors.BadRequest(c, "Invalid delivery id")
		return
	}

	var req AssignCourierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Courier id is required")
		return
	}

	if err := ctrl.deliveryService.AssignCourier(userID, deliveryID, req.CourierID); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			apperrors.Forbidden(c)
		case errors.Is(err, service.ErrDeliveryNotFound):
			apperrors.NotFound(c, "Delivery not found")
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, "Courier not found")
		default:
			apperrors.InternalError(c, "Internal server error")
		}
		return
	}

	apperrors.OK(c, "Courier assigned successfully", nil)
}

// SearchDeliveryByCourier finds the caller's deliveries by id fragment.
// GET /api/v1/delivery/searchDeliveryByCourierId?searchField=...
func (ctrl *DeliveryController) SearchDeliveryByCourier(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	search := c.Query("searchField")

	deliveries, err := ctrl.deliveryService.SearchByCourier(userID, search)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			apperrors.Forbidden(c)
			return
		}
		apperrors.InternalError(c, "Internal server error")
		return
	}

	apperrors.OK(c, "Deliveries retrieved successfully", deliveries)
}
