package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ParseAndRespond maps a store error and writes the envelope in one step.
func ParseAndRespond(c *gin.Context, err error, context string) {
	status, message := ParseStoreError(err, context)
	Respond(c, status, false, message, nil)
}

// ParseStoreError converts a store/driver error into an HTTP status and a
// client-safe message. Driver text, constraint names and stack traces stay
// in the logs; clients only see the mapped message.
func ParseStoreError(err error, context string) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, "Internal server error"
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound, notFoundMessage(context)
	}

	errStr := strings.ToLower(err.Error())

	// Unique constraint violation (23505). Creation relies on these
	// constraints rather than a pre-check alone, so a violation is a
	// normal client error, not a server fault.
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		switch {
		case strings.Contains(errStr, "email"):
			return http.StatusBadRequest, "Email is already registered"
		case strings.Contains(errStr, "phone"):
			return http.StatusBadRequest, "Phone number is already registered"
		}
		return http.StatusBadRequest, "Record already exists"
	}

	// Foreign key constraint violation (23503)
	if strings.Contains(errStr, "foreign key constraint") {
		if strings.Contains(errStr, "still referenced") {
			return http.StatusConflict, "Record is referenced by other data and cannot be deleted"
		}
		return http.StatusNotFound, "Referenced record does not exist"
	}

	// Not null constraint violation (23502)
	if strings.Contains(errStr, "violates not-null constraint") {
		return http.StatusBadRequest, "A required field is missing"
	}

	// Connection failures
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return http.StatusInternalServerError, "Database is unavailable, please try again later"
	}

	return http.StatusInternalServerError, "Internal server error"
}

func notFoundMessage(context string) string {
	switch {
	case strings.Contains(context, "courier"), strings.Contains(context, "user"):
		return "User not found"
	case strings.Contains(context, "order"):
		return "Order not found"
	case strings.Contains(context, "delivery"):
		return "Delivery not found"
	case strings.Contains(context, "issue"):
		return "Issue not found"
	case strings.Contains(context, "route"):
		return "Route not found"
	}
	return "Record not found"
}
