package viewer

import "net/http"

// APIError 带 HTTP 状态码的错误，由 Router 统一写成 {"error": Message}
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

var (
	ErrMissingSegments    = &APIError{Status: http.StatusBadRequest, Message: "Missing UUID or subresource."}
	ErrInvalidBody        = &APIError{Status: http.StatusBadRequest, Message: "Invalid JSON body"}
	ErrPlayerNotFound     = &APIError{Status: http.StatusNotFound, Message: "Player not found"}
	ErrUnknownSubresource = &APIError{Status: http.StatusNotFound, Message: "Unknown subresource"}
	ErrMethodNotAllowed   = &APIError{Status: http.StatusMethodNotAllowed, Message: "Method not allowed"}
	errInternal           = &APIError{Status: http.StatusInternalServerError, Message: "Internal error"}
)

// ErrorBody 错误响应体
type ErrorBody struct {
	Error string `json:"error"`
}
