package stripegw

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	stripe "github.com/stripe/stripe-go"
	"github.com/stripe/stripe-go/paymentintent"

	"github.com/tbeaudouin05/paygate/api/services/omnipay/gateway"
)

const ShortName = "Stripe"

func init() {
	gateway.Register(ShortName, func() gateway.Gateway { return New() })
}

// intents is the slice of the PaymentIntents API the driver needs.
type intents interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// client is the Stripe SDK-backed purchase gateway. Purchases create and
// confirm a PaymentIntent in one call.
type client struct {
	*gateway.Base
	intents func(key string) intents
}

// New returns a Stripe gateway backed by the official Stripe SDK.
func New() *client {
	return &client{
		Base: gateway.NewBase("Stripe", ShortName, map[string]any{
			"apiKey":        "",
			"paymentMethod": "",
			"testMode":      false,
		}),
		intents: sdkIntents,
	}
}

func sdkIntents(key string) intents {
	return &paymentintent.Client{B: stripe.GetBackend(stripe.APIBackend), Key: key}
}

func (c *client) SetAPIKey(key string)           { c.SetParameter("apiKey", key) }
func (c *client) SetPaymentMethod(method string) { c.SetParameter("paymentMethod", method) }

func (c *client) SupportsAuthorize() bool { return true }

func (c *client) Purchase(options map[string]any) gateway.PurchaseRequest {
	return &purchaseRequest{
		BaseRequest: gateway.NewBaseRequest(gateway.Merge(c.Parameters(), options)),
		intents:     c.intents,
	}
}

type purchaseRequest struct {
	*gateway.BaseRequest
	intents func(key string) intents
}

func (r *purchaseRequest) params() (*stripe.PaymentIntentParams, error) {
	if err := r.Validate("apiKey", "amount", "currency", "paymentMethod"); err != nil {
		return nil, err
	}
	amount, err := r.AmountInteger()
	if err != nil {
		return nil, err
	}
	p := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amount),
		Currency:      stripe.String(strings.ToLower(r.Currency())),
		PaymentMethod: stripe.String(r.String("paymentMethod")),
		Confirm:       stripe.Bool(true),
	}
	if d := r.Description(); d != "" {
		p.Description = stripe.String(d)
	}
	if u := r.ReturnURL(); u != "" {
		p.ReturnURL = stripe.String(u)
	}
	if id := r.TransactionID(); id != "" {
		p.AddMetadata("transaction_id", id)
	}
	return p, nil
}

func (r *purchaseRequest) Send(ctx context.Context) (gateway.Response, error) {
	p, err := r.params()
	if err != nil {
		return nil, err
	}
	p.Context = ctx

	pi, err := r.intents(r.String("apiKey")).New(p)
	if err != nil {
		var se *stripe.Error
		if errors.As(err, &se) && se.Type == stripe.ErrorTypeCard {
			return gateway.Failed("", se.Msg), nil
		}
		return nil, fmt.Errorf("stripe payment intent: %w", err)
	}
	if pi == nil {
		return nil, fmt.Errorf("stripe payment intent: empty response")
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return gateway.Succeeded(pi.ID, string(pi.Status)), nil
	case stripe.PaymentIntentStatusRequiresAction:
		if pi.NextAction != nil && pi.NextAction.RedirectToURL != nil && pi.NextAction.RedirectToURL.URL != "" {
			return gateway.Redirecting(pi.ID, pi.NextAction.RedirectToURL.URL, http.MethodGet, nil), nil
		}
	}
	msg := string(pi.Status)
	if pi.LastPaymentError != nil && pi.LastPaymentError.Msg != "" {
		msg = pi.LastPaymentError.Msg
	}
	return gateway.Failed(pi.ID, msg), nil
}
