package errors

import (
	"net/http"
	"strings"
)

// Error carries a client-facing message with the HTTP status it maps to.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(message string, status int) *Error {
	return &Error{Message: message, Status: status}
}

var (
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrNotFound            = New("record not found", http.StatusNotFound)
	ErrInvalidPassword     = New("invalid email or password", http.StatusUnauthorized)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
)

// GetUniqueContraintError maps a database unique-violation into a 400
// with a friendlier message.
func GetUniqueContraintError(err error) *Error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "email"):
		return New("email already exists", http.StatusBadRequest)
	case strings.Contains(msg, "telephone"):
		return New("telephone already exists", http.StatusBadRequest)
	default:
		return New(msg, http.StatusBadRequest)
	}
}
