package models

// APIResponse is the uniform success envelope returned by gateway endpoints.
// Downstream services reply with the same shape, so proxy handlers can pass
// the envelope through without re-wrapping.
type APIResponse[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// ErrorResponse is the uniform error body: {"status":"error","message":...}.
// The message is always a client-safe summary; internal detail stays in the
// server logs.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewErrorResponse builds an [ErrorResponse] with status fixed to "error".
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Status: "error", Message: message}
}
