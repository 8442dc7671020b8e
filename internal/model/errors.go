package model

import (
	"errors"
	"fmt"
)

var (
	// Login handshake failures. Unknown-username and wrong-password both
	// unwrap to ErrBadCredentials so the response boundary cannot reveal
	// which branch fired; the distinction survives for logs and tests.
	ErrBadCredentials   = errors.New("bad credentials")
	ErrUnknownUsername  = fmt.Errorf("%w: unknown username", ErrBadCredentials)
	ErrPasswordMismatch = fmt.Errorf("%w: password mismatch", ErrBadCredentials)

	ErrAccountDisabled = errors.New("account disabled")

	// Bearer token verification failures. Three internal causes, one
	// outward category.
	ErrInvalidBearerToken    = errors.New("invalid bearer token")
	ErrTokenMalformed        = fmt.Errorf("%w: malformed", ErrInvalidBearerToken)
	ErrTokenSignatureInvalid = fmt.Errorf("%w: signature mismatch", ErrInvalidBearerToken)
	ErrTokenExpired          = fmt.Errorf("%w: expired", ErrInvalidBearerToken)

	// Missing credentials, distinguished by which mechanism noticed.
	ErrMissingCredentials = errors.New("login credentials are missing")
	ErrMissingBasicAuth   = fmt.Errorf("%w: no basic authorization header", ErrMissingCredentials)
	ErrMissingBearerToken = fmt.Errorf("%w: no bearer token", ErrMissingCredentials)

	ErrForbidden = errors.New("forbidden")

	ErrUserNotFound = errors.New("user not found")
)

// ValidationError carries the field-to-message map produced by request
// validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("provided arguments are not valid: %d invalid field(s)", len(e.Fields))
}
