package apierror

import (
	"fmt"
	"net/http"
)

type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, details string, status int) *APIError {
	return &APIError{Code: code, Message: message, Details: details, HTTPStatus: status}
}

// ObjectNotFound reports a missing entity with the message format clients
// depend on.
func ObjectNotFound(object string, id string) *APIError {
	return New("NOT_FOUND", fmt.Sprintf("Could not find %s with id %s", object, id), id, http.StatusNotFound)
}

// InvalidObjectID reports a malformed entity identifier.
func InvalidObjectID(object string, id string) *APIError {
	return New("INVALID_ARGUMENT", fmt.Sprintf("%s id: %s is invalid, should be 24 characters long", object, id), id, http.StatusBadRequest)
}

// UserAlreadyExists reports a duplicate registration email.
func UserAlreadyExists(email string) *APIError {
	return New("ALREADY_EXISTS", fmt.Sprintf("User with email %s already exists", email), email, http.StatusBadRequest)
}
