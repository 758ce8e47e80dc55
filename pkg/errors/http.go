package errors

import "fmt"

// HTTPError is an error that carries the HTTP status and the envelope error code to answer with.
type HTTPError struct {
	StatusCode int
	Code       int
	Message    string
}

// Error formats the envelope code and message.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// NewHTTPError returns an HTTPError whose envelope code equals the status code.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Code: statusCode, Message: message}
}

// NewHTTPErrorWithCode returns an HTTPError with a domain specific envelope code.
func NewHTTPErrorWithCode(statusCode, code int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Code: code, Message: message}
}
