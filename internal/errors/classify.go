package errors

import (
	"context"
	"errors"
	"net"
)

// IsAuthError reports whether err represents an authentication failure,
// either a typed AuthError or a 401/403 APIError.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return errors.Is(err, ErrAuthFailed) || errors.Is(err, ErrNoToken) || errors.Is(err, ErrTokenExpired)
}

// IsNetworkError reports whether err is a transport-level failure.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// IsParseError reports whether err came from decoding a response body.
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// IsValidationError reports whether err is client-side input rejection.
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsCancellation reports whether err is the result of user cancellation
// rather than a genuine failure.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, ErrStopped)
}

// HTTPStatus returns the status code carried by an APIError in err's
// chain, or 0 if there is none.
func HTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
