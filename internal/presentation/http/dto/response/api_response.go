package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/investify-pos/pkg/apperror"
	"github.com/sangkips/investify-pos/pkg/utils"
)

// APIResponse is the envelope of every checkout API response.
type APIResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    interface{}           `json:"data,omitempty"`
	Errors  []apperror.FieldError `json:"errors,omitempty"`
	Meta    Meta                  `json:"meta"`
}

// Meta identifies the request and the operator at the terminal.
type Meta struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id,omitempty"`
	Operator  string `json:"operator,omitempty"`
}

func write(c *gin.Context, status int, body APIResponse) {
	body.Meta = Meta{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: c.GetString(utils.ContextRequestID),
		Operator:  c.GetString(utils.ContextOperatorName),
	}
	c.JSON(status, body)
}

// Success sends data with status.
func Success(c *gin.Context, status int, message string, data interface{}) {
	write(c, status, APIResponse{Success: true, Message: message, Data: data})
}

// OK sends a 200 response.
func OK(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusOK, message, data)
}

// Created sends a 201 response.
func Created(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusCreated, message, data)
}

// Error renders err. Checkout rejections keep their status and field errors;
// anything else is recorded on the context for the request logger and
// answered with a generic 500.
func Error(c *gin.Context, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		_ = c.Error(err)
		appErr = apperror.ErrInternalServer
	}
	write(c, appErr.Code, APIResponse{Message: appErr.Message, Errors: appErr.Errors})
}

// Fail sends a refusal without field errors.
func Fail(c *gin.Context, status int, message string) {
	write(c, status, APIResponse{Message: message})
}

// BadRequest sends a 400 response.
func BadRequest(c *gin.Context, message string) { Fail(c, http.StatusBadRequest, message) }

// Unauthorized sends a 401 response.
func Unauthorized(c *gin.Context, message string) { Fail(c, http.StatusUnauthorized, message) }

// Forbidden sends a 403 response.
func Forbidden(c *gin.Context, message string) { Fail(c, http.StatusForbidden, message) }

// TooManyRequests sends a 429 response.
func TooManyRequests(c *gin.Context, message string) { Fail(c, http.StatusTooManyRequests, message) }
