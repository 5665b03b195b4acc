package router

import (
	"github.com/gin-gonic/gin"

	"github.com/hartondavid/delivery-backend/config"
	"github.com/hartondavid/delivery-backend/internal/app/controller"
	"github.com/hartondavid/delivery-backend/internal/middleware"
)

type Router struct {
	userController     *controller.UserController
	orderController    *controller.OrderController
	deliveryController *controller.DeliveryController
	issueController    *controller.IssueController
	routeController    *controller.RouteController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	userController *controller.UserController,
	orderController *controller.OrderController,
	deliveryController *controller.DeliveryController,
	issueController *controller.IssueController,
	routeController *controller.RouteController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		userController:     userController,
		orderController:    orderController,
		deliveryController: deliveryController,
		issueController:    issueController,
		routeController:    routeController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Delivery API is running",
		})
	})

	auth := r.authMiddleware.Authenticate()

	v1 := router.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("/login", r.userController.Login)
			users.GET("/profile/:userId", r.userController.Profile)
			users.GET("/checkLogin", auth, r.userController.CheckLogin)
			users.POST("/logout", auth, r.userController.Logout)
			users.PUT("/updatePassword/:userId", auth, r.userController.UpdatePassword)
			users.GET("/getCouriers", auth, r.userController.GetCouriers)
			users.GET("/searchCourier", auth, r.userController.SearchCourier)
			users.POST("/addCourier", auth, r.userController.AddCourier)
			users.DELETE("/deleteCourier/:courierId", auth, r.userController.DeleteCourier)
		}

		orders := v1.Group("/orders", auth)
		{
			orders.POST("/addOrder", r.orderController.AddOrder)
			orders.PUT("/updateOrder/:orderId", r.orderController.UpdateOrder)
			orders.DELETE("/deleteOrder/:orderId", r.orderController.DeleteOrder)
			orders.GET("/getOrder/:orderId", r.orderController.GetOrder)
			orders.GET("/getOrdersByAdminId", r.orderController.GetOrdersByAdmin)
			orders.GET("/getOrdersByCourierId", r.orderController.GetOrdersByCourier)
			orders.GET("/searchOrder", r.orderController.SearchOrder)
			orders.GET("/getOrdersByDeliveryId/:deliveryId", r.orderController.GetOrdersByDelivery)
		}

		delivery := v1.Group("/delivery", auth)
		{
			delivery.POST("/addDelivery", r.deliveryController.AddDelivery)
			delivery.GET("/getDeliveriesByAdminId", r.deliveryController.GetDeliveriesByAdmin)
			delivery.GET("/getDeliveriesByCourierId", r.deliveryController.GetDeliveriesByCourier)
			delivery.DELETE("/deleteDelivery/:deliveryId", r.deliveryController.DeleteDelivery)
			delivery.POST("/addOrdersToDelivery/:deliveryId", r.deliveryController.AddOrdersToDelivery)
			delivery.POST("/assignCourierToDelivery/:deliveryId", r.deliveryController.AssignCourierToDelivery)
			delivery.GET("/searchDeliveryByCourierId", r.deliveryController.SearchDeliveryByCourier)
		}

		issues := v1.Group("/issues", auth)
		{
			issues.POST("/addIssue/:deliveryId", r.issueController.AddIssue)
			issues.PUT("/updateIssue/:issueId", r.issueController.UpdateIssue)
			issues.DELETE("/deleteIssue/:issueId", r.issueController.DeleteIssue)
			issues.GET("/getIssue/:issueId", r.issueController.GetIssue)
			issues.GET("/getIssuesByAdminId", r.issueController.GetIssuesByAdmin)
			issues.GET("/getIssuesByCourierId", r.issueController.GetIssuesByCourier)
		}

		routes := v1.Group("/routes", auth)
		{
			routes.POST("/addRoute", r.routeController.AddRoute)
			routes.PUT("/updateRoute/:routeId", r.routeController.UpdateRoute)
			routes.DELETE("/deleteRoute/:routeId", r.routeController.DeleteRoute)
			routes.GET("/getRoutesByCourierId", r.routeController.GetRoutesByCourier)
			routes.GET("/getCouriersByAdminId", r.routeController.GetCouriersByAdmin)
			routes.POST("/addCourierToRoute/:routeId", r.routeController.AddCourierToRoute)
			routes.GET("/getCouriersByRouteId/:routeId", r.routeController.GetCouriersByRoute)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Auth-Token")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
