package response

import "github.com/gin-gonic/gin"

// ErrorItem is one failure inside the error envelope. Path names the request
// field the failure refers to, empty when the error is not field-bound.
type ErrorItem struct {
	Message string `json:"message"`
	Path    string `json:"path"`
}

// ErrorResponse is the uniform JSON error envelope. Stack is populated only
// outside release mode.
type ErrorResponse struct {
	Name   string      `json:"name"`
	Code   int         `json:"code"`
	Errors []ErrorItem `json:"errors"`
	Stack  string      `json:"stack,omitempty"`
}

// WriteError aborts the request with the envelope.
func WriteError(c *gin.Context, resp ErrorResponse) {
	c.AbortWithStatusJSON(resp.Code, resp)
}

// Envelope builds a single-message envelope.
func Envelope(name string, code int, message string) ErrorResponse {
	return ErrorResponse{
		Name:   name,
		Code:   code,
		Errors: []ErrorItem{{Message: message}},
	}
}
