package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hartondavid/delivery-backend/internal/app/service"
	apperrors "github.com/hartondavid/delivery-backend/internal/errors"
	"github.com/hartondavid/delivery-backend/internal/middleware"
)

type IssueController struct {
	issueService service.IssueService
}

func NewIssueController(issueService service.IssueService) *IssueController {
	return &IssueController{issueService: issueService}
}

type AddIssueRequest struct {
	Description string `json:"description" binding:"required"`
}

type UpdateIssueRequest struct {
	Description string `json:"description"`
}

// AddIssue files an issue against a delivery.
// POST /api/v1/issues/addIssue/:deliveryId
func (ctrl *IssueController) AddIssue(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID, _ := middleware.GetUserID(c)

	deliveryID, ok := parseIDParam(c, "deliveryId")
	if !ok {
		apperrors.BadRequest(c, "Invalid delivery id")
		return
	}

	var req AddIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Description is required")
		return
	}

	issue, err := ctrl.issueService.Create(userID, deliveryID, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			apperrors.Forbidden(c)
		case errors.Is(err, service.ErrDeliveryNotFound):
			apperrors.NotFound(c, "Delivery not found")
		default:
			log.Error("Issue creation failed", err, nil)
			apperrors.ParseAndRespond(c, err, "create issue")
		}
		return
	}

	apperrors.Created(c, "Issue created successfully", gin.H{"issue": issue})
}

// UpdateIssue updates an issue's description.
// PUT /api/v1/issues/updateIssue/:issueId
func (ctrl *IssueController) UpdateIssue(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	issueID, ok := parseIDParam(c, "issueId")
	if !ok {
		apperrors.BadRequest(c, "Invalid issue id")
		return
	}

	var req UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid issue data")
		return
	}

	issue, err := ctrl.issueService.Update(userID, issueID, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			apperrors.Forbidden(c)
		case errors.Is(err, service.ErrIssueNotFound):
			apperrors.NotFound(c, "Issue not found")
		default:
			apperrors.InternalError(c, "Internal server error")
		}
		return
	}

	apperrors.OK(c, "Issue updated successfully", gin.H{"issue": issue})
}

// DeleteIssue removes an issue.
// DELETE /api/v1/issues/deleteIssue/:issueId
func (ctrl *IssueController) DeleteIssue(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	issueID, ok := parseIDParam(c, "issueId")
	if !ok {
		apperrors.BadRequest(c, "Invalid issue id")
		return
	}

	if err := ctrl.issueService.Delete(userID, issueID); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			apperrors.Forbidden(c)
		case errors.Is(err, service.ErrIssueNotFound):
			apperrors.NotFound(c, "Issue not found")
		default:
			apperrors.InternalError(c, "Internal server error")
		}
		return
	}

	apperrors.OK(c, "Issue deleted successfully", nil)
}

// GetIssue fetches a single issue.
// GET /api/v1/issues/getIssue/:issueId
func (ctrl *IssueController) GetIssue(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	issueID, ok := parseIDParam(c, "issueId")
	if !ok {
		apperrors.BadRequest(c, "Invalid issue id")
		return
	}

	issue, err := ctrl.issueService.Get(userID, issueID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			apperrors.Forbidden(c)
		case errors.Is(err, service.ErrIssueNotFound):
			apperrors.NotFound(c, "Issue not found")
		default:
			apperrors.InternalError(c, "Internal server error")
		}
		return
	}

	apperrors.OK(c, "Issue retrieved successfully", gin.H{"issue": issue})
}

// GetIssuesByAdmin lists every issue with delivery and courier context.
// GET /api/v1/issues/getIssuesByAdminId
func (ctrl *IssueController) GetIssuesByAdmin(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	issues, err := ctrl.issueService.ListAll(userID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			apperrors.Forbidden(c)
			return
		}
		apperrors.InternalError(c, "Internal server error")
		return
	}

	apperrors.OK(c, "Issues retrieved successfully", issues)
}

// GetIssuesByCourier lists issues on the caller's deliveries.
// GET /api/v1/issues/getIssuesByCourierId
func (ctrl *IssueController) GetIssuesByCourier(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	issues, err := ctrl.issueService.ListByCourier(userID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			apperrors.Forbidden(c)
			return
		}
		apperrors.InternalError(c, "Internal server error")
		return
	}

	apperrors.OK(c, "Issues retrieved successfully", issues)
}
