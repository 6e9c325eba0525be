package apihandlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError defines the standard error response
// Example: { "error": { "code": "service_unavailable", "message": "..." } }
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error APIError `json:"error"`
}

// JSONError sends a structured error response
func JSONError(ctx *gin.Context, status int, code, msg string) {
	ctx.JSON(status, errorResponse{Error: APIError{Code: code, Message: msg}})
}

// Convenience wrappers
func BadRequest(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusBadRequest, "bad_request", msg)
}

func Internal(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusInternalServerError, "internal_error", msg)
}

// ServiceUnavailable signals that the model artifacts are not loaded; the
// process itself stays up and other routes remain usable.
func ServiceUnavailable(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusServiceUnavailable, "service_unavailable", msg)
}
