package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hartondavid/delivery-backend/internal/app/service"
	apperrors "github.com/hartondavid/delivery-backend/internal/errors"
	"github.com/hartondavid/delivery-backend/internal/middleware"
)

type RouteController struct {
	routeService service.RouteService
}

func NewRouteController(routeService service.RouteService) *RouteController {
	return &RouteController{routeService: routeService}
}

type AddRouteRequest struct {
	Area string `json:"area" binding:"required"`
}

type UpdateRouteRequest struct {
	Area string `json:"area"`
}

type AddCourierToRouteRequest struct {
	CourierID uint `json:"courier_id" binding:"required"`
}

// AddRoute creates a delivery route.
// POST /api/v1/routes/addRoute
func (ctrl *RouteController) AddRoute(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID, _ := middleware.GetUserID(c)

	var req AddRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Area is required")
		return
	}

	route, err := ctrl.routeService.Create(userID, req.Area)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			apperrors.Forbidden(c)
			return
		}
		log.Error("Route creation failed", err, nil)
		apperrors.ParseAndRespond(c, err, "create route")
		return
	}

	apperrors.Created(c, "Route created successfully", gin.H{"route": route})
}

// UpdateRoute updates a route's area.
// PUT /api/v1/routes/updateRoute/:routeId
func (ctrl *RouteController) UpdateRoute(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	routeID, ok := parseIDParam(c, "routeId")
	if !ok {
		apperrors.BadRequest(c, "Invalid route id")
		return
	}

	var req UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid route data")
		return
	}

	route, err := ctrl.routeService.Update(userID, routeID, req.Area)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			apperrors.Forbidden(c)
		case errors.Is(err, service.ErrRouteNotFound):
			apperrors.NotFound(c, "Route not found")
		default:
			apperrors.InternalError(c, "Internal server error")
		}
		return
	}

	apperrors.OK(c, "Route updated successfully", gin.H{"route": route})
}

// DeleteRoute removes a route.
// DELETE /api/v1/routes/deleteRoute/:routeId
func (ctrl *RouteController) DeleteRoute(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	routeID, ok := parseIDParam(c, "routeId")
	if !ok {
		apperrors.BadRequest(c, "Invalid route id")
		return
	}

	if err := ctrl.routeService.Delete(userID, routeID); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			apperrors.Forbidden(c)
		case errors.Is(err, service.ErrRouteNotFound):
			apperrors.NotFound(c, "Route not found")
		default:
			apperrors.InternalError(c, "Internal server error")
		}
		return
	}

	apperrors.OK(c, "Route deleted successfully", nil)
}

// GetRoutesByCourier lists routes the caller is assigned to.
// GET /api/v1/routes/getRoutesByCourierId
func (ctrl *RouteController) GetRoutesByCourier(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	routes, err := ctrl.routeService.ListByCourier(userID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			apperrors.Forbidden(c)
			return
		}
		apperrors.InternalError(c, "Internal server error")
		return
	}

	apperrors.OK(c, "Routes retrieved successfully", routes)
}

// GetCouriersByAdmin lists the caller's routes, each with its couriers.
// GET /api/v1/routes/getCouriersByAdminId
func (ctrl *RouteController) GetCouriersByAdmin(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	routes, err := ctrl.routeService.ListWithCouriers(userID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			apperrors.Forbidden(c)
			return
		}
		apperrors.InternalError(c, "Internal server error")
		return
	}

	apperrors.OK(c, "Routes retrieved successfully", routes)
}

// AddCourierToRoute assigns a courier to a route.
// POST /api/v1/routes/addCourierToRoute/:routeId
func (ctrl *RouteController) AddCourierToRoute(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	routeID, ok := parseIDParam(c, "routeId")
	if !ok {
		apperrors.BadRequest(c, "Invalid route id")
		return
	}

	var req AddCourierToRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Courier id is required")
		return
	}

	if err := ctrl.routeService.AssignCourier(userID, req.CourierID, routeID); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			apperrors.Forbidden(c)
		case errors.Is(err, service.ErrRouteNotFound):
			apperrors.NotFound(c, "Route not found")
		default:
			apperrors.InternalError(c, "Internal server error")
		}
		return
	}

	apperrors.OK(c, "Courier assigned to route successfully", nil)
}

// GetCouriersByRoute lists the couriers assigned to a route.
// GET /api/v1/routes/getCouriersByRouteId/:routeId
func (ctrl *RouteController) GetCouriersByRoute(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	routeID, ok := parseIDParam(c, "routeId")
	if !ok {
		apperrors.BadRequest(c, "Invalid route id")
		return
	}

	couriers, err := ctrl.routeService.ListCouriersByRoute(userID, routeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			apperrors.Forbidden(c)
		case errors.Is(err, service.ErrRouteNotFound):
			apperrors.NotFound(c, "Route not found")
		default:
			apperrors.InternalError(c, "Internal server error")
		}
		return
	}

	apperrors.OK(c, "Couriers retrieved successfully", couriers)
}
