// Package response holds the JSON envelope for the service's
// non-streaming endpoints: admin ingest results, health, and request
// rejections. The availability formats bypass it and stream straight to
// the response writer.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body is the envelope for JSON responses.
type Body struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success sends a 200 with the operation's outcome.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Body{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error sends an error response with the given status code.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Body{
		Code:    code,
		Message: message,
	})
}

// BadRequest rejects a request. The message names the offending option
// and the constraint it violates so callers can correct the request.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// InternalError reports a server-side failure without leaking its cause.
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
