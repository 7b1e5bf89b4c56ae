package response

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// Error codes used across the service layer
const (
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeAlreadyExists  = "ALREADY_EXISTS"
	ErrCodeAlreadyMember  = "ALREADY_MEMBER"
	ErrCodeAlreadyInvited = "ALREADY_INVITED"
	ErrCodeCodeExpired    = "CODE_EXPIRED"
	ErrCodeInternal       = "INTERNAL_ERROR"
)

// AppError is a service layer error carrying a machine-readable code
type AppError struct {
	Code    string
	Message string
	Details string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAppError creates a new AppError
func NewAppError(code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// ErrorResponse is the JSON envelope for non-2xx responses
type ErrorResponse struct {
	Success bool   `json:"success"` // always false
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// SendError writes the error envelope and aborts further handlers
func SendError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Success: false,
		Code:    code,
		Message: message,
	})
}

// SendSuccess writes data as the response body with the given status.
// Success bodies are the plain resource representation, not an envelope.
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}
