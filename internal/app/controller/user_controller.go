package controller

import (
	"errors"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hartondavid/delivery-backend/internal/app/service"
	apperrors "github.com/hartondavid/delivery-backend/internal/errors"
	"github.com/hartondavid/delivery-backend/internal/middleware"
)

var phonePattern = regexp.MustCompile(`^07[0-9]{8}$`)

// parseIDParam reads a numeric path parameter. A zero return means the
// parameter was missing or not a positive integer.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

type UserController struct {
	authService service.AuthService
	userService service.UserService
}

func NewUserController(authService service.AuthService, userService service.UserService) *UserController {
	return &UserController{
		authService: authService,
		userService: userService,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AddCourierRequest struct {
	Name            string `json:"name" binding:"required,min=3"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
}

type UpdatePasswordRequest struct {
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// Login authenticates a user and issues a bearer token.
// POST /api/v1/users/login
func (ctrl *UserController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, "Email and password are required")
		return
	}

	user, token, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warn("Login failed: invalid credentials", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.Unauthorized(c, "Invalid credentials")
			return
		}
		log.Error("Login failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.InternalError(c, "Internal server error")
		return
	}

	log.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	c.Header("X-Auth-Token", token)
	apperrors.OK(c, "Login successful", gin.H{
		"user":  user.Public(),
		"token": token,
	})
}

// CheckLogin returns the authenticated principal. Reaching the handler means
// the token already passed the auth middleware.
// GET /api/v1/users/checkLogin
func (ctrl *UserController) CheckLogin(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apperrors.Unauthorized(c, "Invalid token")
		return
	}
	apperrors.OK(c, "Token is valid", gin.H{"user": user.Public()})
}

// Profile returns a user's public profile.
// GET /api/v1/users/profile/:userId
func (ctrl *UserController) Profile(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		apperrors.BadRequest(c, "Invalid user id")
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, "User not found")
			return
		}
		apperrors.InternalError(c, "Internal server error")
		return
	}

	apperrors.OK(c, "User retrieved successfully", gin.H{"user": user.Public()})
}

// UpdatePassword replaces a user's password.
// PUT /api/v1/users/updatePassword/:userId
func (ctrl *UserController) UpdatePassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := parseIDParam(c, "userId")
	if !ok {
		apperrors.BadRequest(c, "Invalid user id")
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Password must be at least 6 characters")
		return
	}
	if req.Password != req.ConfirmPassword {
		apperrors.BadRequest(c, "Passwords do not match")
		return
	}

	if err := ctrl.authService.UpdatePassword(userID, req.Password); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, "User not found")
			return
		}
		log.Error("Password update failed", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Internal server error")
		return
	}

	apperrors.OK(c, "Password updated successfully", nil)
}

// Logout revokes the caller's token for its remaining lifetime.
// POST /api/v1/users/logout
func (ctrl *UserController) Logout(c *gin.Context) {
	token, ok := middleware.GetToken(c)
	if !ok {
		apperrors.Unauthorized(c, "Invalid token")
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), token); err != nil {
		apperrors.InternalError(c, "Internal server error")
		return
	}

	apperrors.OK(c, "Logged out successfully", nil)
}

// GetCouriers lists every courier account.
// GET /api/v1/users/getCouriers
func (ctrl *UserController) GetCouriers(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	couriers, err := ctrl.userService.ListCouriers(userID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			apperrors.Forbidden(c)
			return
		}
		apperrors.InternalError(c, "Internal server error")
		return
	}

	result := make([]map[string]interface{}, 0, len(couriers))
	for _, courier := range couriers {
		result = append(result, courier.Public())
	}
	apperrors.OK(c, "Couriers retrieved successfully", result)
}

// SearchCourier finds couriers not yet assigned to any route.
// GET /api/v1/users/searchCourier?searchField=...
func (ctrl *UserController) SearchCourier(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	search := c.Query("searchField")

	couriers, err := ctrl.userService.SearchCouriers(userID, search)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			apperrors.Forbidden(c)
			return
		}
		apperrors.InternalError(c, "Internal server error")
		return
	}

	result := make([]map[string]interface{}, 0, len(couriers))
	for _, courier := range couriers {
		result = append(result, courier.Public())
	}
	apperrors.OK(c, "Couriers retrieved successfully", result)
}

// AddCourier creates a courier account.
// POST /api/v1/users/addCourier
func (ctrl *UserController) AddCourier(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID, _ := middleware.GetUserID(c)

	var req AddCourierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid courier request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, "Invalid courier data")
		return
	}
	if req.Password != req.ConfirmPassword {
		apperrors.BadRequest(c, "Passwords do not match")
		return
	}
	if !phonePattern.MatchString(req.Phone) {
		apperrors.BadRequest(c, "Invalid phone number")
		return
	}

	courier, err := ctrl.userService.AddCourier(userID, req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			apperrors.Forbidden(c)
		case errors.Is(err, service.ErrEmailAlreadyExists):
			apperrors.BadRequest(c, "Email already exists")
		case errors.Is(err, service.ErrPhoneAlreadyExists):
			apperrors.BadRequest(c, "Phone already exists")
		default:
			log.Error("Courier creation failed", err, map[string]interface{}{
				"email": req.Email,
			})
			apperrors.ParseAndRespond(c, err, "create courier")
		}
		return
	}

	apperrors.Created(c, "Courier created successfully", gin.H{"courier": courier.Public()})
}

// DeleteCourier removes a courier account.
// DELETE /api/v1/users/deleteCourier/:courierId
func (ctrl *UserController) DeleteCourier(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	courierID, ok := parseIDParam(c, "courierId")
	if !ok {
		apperrors.BadRequest(c, "Invalid courier id")
		return
	}

	if err := ctrl.userService.DeleteCourier(userID, courierID); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			apperrors.Forbidden(c)
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, "Courier not found")
		default:
			apperrors.InternalError(c, "Internal server error")
		}
		return
	}

	apperrors.OK(c, "Courier deleted successfully", nil)
}
