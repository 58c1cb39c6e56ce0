package gateway

import "errors"

var (
	// ErrGatewayNotFound indicates no driver is registered under the requested name.
	ErrGatewayNotFound = errors.New("gateway not found")
	// ErrInvalidRequest indicates a request is missing parameters or carries invalid ones.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNotRedirect is returned when redirecting on a response that is not a redirect.
	ErrNotRedirect = errors.New("response is not a redirect")
)
