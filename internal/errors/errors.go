package errors

import (
	"net/http"

	"codeberg.org/llamaquill/quill/internal/logger"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP handlers:
//   - Use errors.ValidationError(), errors.GenerationFailed(), etc. to respond
//     These functions build the JSON envelope and sanitize details in production
//   - Use logger.ErrorErr() only for non-critical errors where processing continues
//   - Never call both logger.ErrorErr() and errors.InternalError() for the same error
//
// For the terminal form:
//   - Generation failures are rendered, never fatal
//
// For services/clients/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler or form) decide how to log and respond
//   - Do not log errors in non-handler code (avoid double logging)

// represents a standardized error response
type ErrorResponse struct {
	Error   string   `json:"error"`             // error code (e.g., "validation_error")
	Message string   `json:"message"`           // user-friendly message
	Field   string   `json:"field,omitempty"`   // offending form field for validation errors
	Details string   `json:"details,omitempty"` // optional details (sanitized in production)
	Hints   []string `json:"hints,omitempty"`   // remediation hints for generation failures
}

// standard error codes
const (
	CodeNotFound             = "not_found"
	CodeValidationError      = "validation_error"
	CodeServerError          = "server_error"
	CodeBadRequest           = "bad_request"
	CodeTooManyRequests      = "too_many_requests"
	CodeGenerationInProgress = "generation_in_progress"
	CodeGenerationFailed     = "generation_failed"
)

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeNotFound,
		Message: message,
	})
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
	}

	// add details if error provided
	if err != nil {
		response.Details = Sanitize(err)
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 400 for a rejected form field. the message is written for the
// user and is returned as is.
func ValidationError(c *gin.Context, field, message string) {
	if message == "" {
		message = "validation failed"
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeValidationError,
		Message: message,
		Field:   field,
	})
}

// returns a 409 while another generation is outstanding
func GenerationInProgress(c *gin.Context) {
	c.JSON(http.StatusConflict, ErrorResponse{
		Error:   CodeGenerationInProgress,
		Message: "a generation is already in progress",
	})
}

// returns a 502 when the generation server could not produce text
func GenerationFailed(c *gin.Context, message string, hints []string) {
	c.JSON(http.StatusBadGateway, ErrorResponse{
		Error:   CodeGenerationFailed,
		Message: SanitizeMessage(message),
		Hints:   hints,
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	// log full error server-side with context
	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)

	// return sanitized error to client
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeServerError,
		Message: message,
		Details: Sanitize(err),
	})
}

// returns a 429 too many requests error
func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "too many requests"
	}

	c.JSON(http.StatusTooManyRequests, ErrorResponse{
		Error:   CodeTooManyRequests,
		Message: message,
	})
}
