package app

import "errors"

// Typed errors for the omnipay app layer. These enable HTTP mapping without
// relying on driver-specific error types at the transport layer.
var (
	// ErrNoGateway indicates an operation needs an active gateway and Create was not called or failed.
	ErrNoGateway = errors.New("no active gateway")
	// ErrGateway indicates the gateway rejected the request before answering or could not be reached.
	ErrGateway = errors.New("gateway error")
	// ErrSession indicates the payment record could not be written to the session.
	ErrSession = errors.New("session error")
)
