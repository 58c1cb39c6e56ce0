package gateway

import "context"

// Gateway abstracts a payment provider driver needed by the app layer.
// Drivers are selected by short name through the registry and configured
// through their Set<Option> methods.
type Gateway interface {
	Name() string
	ShortName() string
	DefaultParameters() map[string]any
	Parameters() map[string]any
	SupportsAuthorize() bool
	Purchase(options map[string]any) PurchaseRequest
}

// PurchaseRequest is a single purchase built by a gateway. It is sent once.
type PurchaseRequest interface {
	SetTransactionID(id string)
	SetDescription(description string)
	SetReturnURL(url string)
	SetCancelURL(url string)
	SetNotifyURL(url string)
	Send(ctx context.Context) (Response, error)
}

// Response is the gateway's answer to a sent request. A response is either
// successful, a redirect, or a failure carrying a message.
type Response interface {
	IsSuccessful() bool
	IsRedirect() bool
	Message() string
	TransactionReference() string
	RedirectURL() string
	RedirectMethod() string
	RedirectData() map[string]string
}
