package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response body. Every endpoint answers with this
// exact shape; existing clients depend on it.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Respond writes the envelope with the given status code.
func Respond(c *gin.Context, statusCode int, success bool, message string, data interface{}) {
	if data == nil {
		data = []interface{}{}
	}
	c.JSON(statusCode, Envelope{
		Success: success,
		Message: message,
		Data:    data,
	})
}

// OK writes a 200 success envelope.
func OK(c *gin.Context, message string, data interface{}) {
	Respond(c, http.StatusOK, true, message, data)
}

// Created writes a 201 success envelope.
func Created(c *gin.Context, message string, data interface{}) {
	Respond(c, http.StatusCreated, true, message, data)
}

// Failure helpers. Data is always empty on failure.

func BadRequest(c *gin.Context, message string) {
	Respond(c, http.StatusBadRequest, false, message, nil)
}

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid credentials"
	}
	Respond(c, http.StatusUnauthorized, false, message, nil)
}

func Forbidden(c *gin.Context) {
	Respond(c, http.StatusForbidden, false, "You are not authorized to perform this action", nil)
}

func NotFound(c *gin.Context, message string) {
	Respond(c, http.StatusNotFound, false, message, nil)
}

func UnprocessableEntity(c *gin.Context, message string) {
	Respond(c, http.StatusUnprocessableEntity, false, message, nil)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Respond(c, http.StatusInternalServerError, false, message, nil)
}
