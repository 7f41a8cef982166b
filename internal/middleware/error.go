package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/yash-bansod-2003/shop-autentication/internal/httperr"
	"github.com/yash-bansod-2003/shop-autentication/pkg/logger"
	"github.com/yash-bansod-2003/shop-autentication/pkg/response"
)

// ErrorHandler translates any error attached to the context into the uniform
// envelope. Unrecognized errors collapse to 500; the stack is attached only
// outside release mode.
func ErrorHandler(l logger.Logger, mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		resp := translate(err)
		if resp.Code >= http.StatusInternalServerError {
			l.Error("request failed", "error", err, "path", c.FullPath())
		} else {
			l.Debug("request rejected", "error", err, "path", c.FullPath())
		}
		if mode != "release" {
			resp.Stack = string(debug.Stack())
		}
		response.WriteError(c, resp)
	}
}

func translate(err error) response.ErrorResponse {
	var appErr *httperr.Error
	if errors.As(err, &appErr) {
		return response.Envelope(appErr.Name, appErr.Code, appErr.Message)
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		resp := response.ErrorResponse{
			Name: "Validation Error",
			Code: http.StatusBadRequest,
		}
		for _, fe := range fieldErrs {
			resp.Errors = append(resp.Errors, response.ErrorItem{
				Message: fe.Error(),
				Path:    fe.Field(),
			})
		}
		return resp
	}

	return response.Envelope("Internal Server Error", http.StatusInternalServerError, "internal server error")
}

// Recovery recovers from panics and returns the 500 envelope.
func Recovery(l logger.Logger, mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				l.Error("panic recovered", "panic", r, "stack", string(debug.Stack()))
				resp := response.Envelope("Internal Server Error", http.StatusInternalServerError, "internal server error")
				if mode != "release" {
					resp.Stack = string(debug.Stack())
				}
				response.WriteError(c, resp)
			}
		}()
		c.Next()
	}
}
