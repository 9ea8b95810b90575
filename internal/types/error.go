package types

import "fmt"

// Error kinds raised before a request reaches a store
const (
	TypeBody    = "body"
	TypeVersion = "version"
)

// CustomError carries an HTTP status for the error handler
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// NewCustomError returns a coded error of the given kind
func NewCustomError(code int, message, kind string) *CustomError {
	return &CustomError{Code: code, Message: message, Type: kind}
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}
