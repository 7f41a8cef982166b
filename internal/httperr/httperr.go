// Package httperr carries the service's error taxonomy. Each error knows its
// HTTP status and name, so the boundary middleware maps it to the response
// envelope without type switching on concrete failure causes.
package httperr

import "net/http"

type Error struct {
	Name    string
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New builds an error whose name is derived from the status text.
func New(code int, message string) *Error {
	return &Error{
		Name:    http.StatusText(code),
		Code:    code,
		Message: message,
	}
}

// Named builds an error with an explicit name, used where clients need to
// distinguish failures sharing a status code (token expiry vs bad signature).
func Named(name string, code int, message string) *Error {
	return &Error{Name: name, Code: code, Message: message}
}

func BadRequest(message string) *Error      { return New(http.StatusBadRequest, message) }
func Unauthorized(message string) *Error    { return New(http.StatusUnauthorized, message) }
func Forbidden(message string) *Error       { return New(http.StatusForbidden, message) }
func NotFound(message string) *Error        { return New(http.StatusNotFound, message) }
func Conflict(message string) *Error        { return New(http.StatusConflict, message) }
func TooManyRequests(message string) *Error { return New(http.StatusTooManyRequests, message) }
func Internal(message string) *Error        { return New(http.StatusInternalServerError, message) }
