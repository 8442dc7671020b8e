package model

import (
	"errors"
	"net/http"

	"stream-api/pkg/apierror"
)

// Outward messages for the closed failure taxonomy. Internal failure causes
// (which lookup branch fired, which token check failed) are deliberately not
// part of the response.
const (
	MsgBadCredentials     = "username or password is incorrect"
	MsgAccountDisabled    = "User account is abnormal"
	MsgInvalidBearerToken = "The access token provided is expired, revoked, malformed or invalid for other reasons."
	MsgMissingCredentials = "Login credentials are missing."
	MsgForbidden          = "No permission to access this resource"
	MsgInvalidArguments   = "Provided arguments are not valid, see data for details"
)

// ClassifyError converts any internal error into the outward response
// envelope. Every failure path in the application funnels through here, so
// the mapping from error to status code and message lives in exactly one
// place.
func ClassifyError(err error) Result {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return Failure(http.StatusBadRequest, MsgInvalidArguments, validationErr.Fields)
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		return Failure(apiErr.HTTPStatus, apiErr.Message, nil)
	}

	switch {
	case errors.Is(err, ErrBadCredentials):
		return Failure(http.StatusUnauthorized, MsgBadCredentials, nil)
	case errors.Is(err, ErrAccountDisabled):
		return Failure(http.StatusUnauthorized, MsgAccountDisabled, nil)
	case errors.Is(err, ErrInvalidBearerToken):
		return Failure(http.StatusUnauthorized, MsgInvalidBearerToken, nil)
	case errors.Is(err, ErrMissingCredentials):
		return Failure(http.StatusUnauthorized, MsgMissingCredentials, nil)
	case errors.Is(err, ErrForbidden):
		return Failure(http.StatusForbidden, MsgForbidden, nil)
	case errors.Is(err, ErrUserNotFound):
		return Failure(http.StatusNotFound, "user not found", nil)
	default:
		return Failure(http.StatusInternalServerError, err.Error(), nil)
	}
}
