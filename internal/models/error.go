package models

import "time"

// Error codes shared with the other SmartBachat services.
const (
	CodeTokenExpired  = "TOKEN_EXPIRED"
	CodeTokenInvalid  = "TOKEN_INVALID"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeBadRequest    = "BAD_REQUEST"
	CodeNotFound      = "NOT_FOUND"
	CodeInternalError = "INTERNAL_ERROR"
)

// APIError is the standardized error body returned by all endpoints.
type APIError struct {
	Code      string `json:"code"`
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
}

// NewAPIError builds an APIError stamped with the current UTC time.
func NewAPIError(code string, status int, message, detail, path string) APIError {
	return APIError{
		Code:      code,
		Status:    status,
		Message:   message,
		Detail:    detail,
		Path:      path,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
