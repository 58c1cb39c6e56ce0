// Package dummy is an offline gateway for development and tests. Card numbers
// must pass the Luhn check; an even last digit is approved, an odd one declined.
package dummy

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tbeaudouin05/paygate/api/services/omnipay/gateway"
)

const ShortName = "Dummy"

func init() {
	gateway.Register(ShortName, func() gateway.Gateway { return New() })
}

type Gateway struct {
	*gateway.Base
}

func New() *Gateway {
	return &Gateway{Base: gateway.NewBase("Dummy", ShortName, map[string]any{
		"card":     "",
		"testMode": true,
	})}
}

func (g *Gateway) SupportsAuthorize() bool { return true }

// SetCard sets the card number used when a purchase does not carry one.
func (g *Gateway) SetCard(number string) { g.SetParameter("card", number) }

func (g *Gateway) Purchase(options map[string]any) gateway.PurchaseRequest {
	return &purchaseRequest{BaseRequest: gateway.NewBaseRequest(gateway.Merge(g.Parameters(), options))}
}

type purchaseRequest struct {
	*gateway.BaseRequest
}

func (r *purchaseRequest) Send(ctx context.Context) (gateway.Response, error) {
	if err := r.Validate("amount", "card"); err != nil {
		return nil, err
	}
	if _, err := r.Amount(); err != nil {
		return nil, err
	}
	number := digits(r.String("card"))
	if !luhn(number) {
		return nil, fmt.Errorf("%w: card number is invalid", gateway.ErrInvalidRequest)
	}
	reference := uuid.NewString()
	if (number[len(number)-1]-'0')%2 == 0 {
		return gateway.Succeeded(reference, "Success"), nil
	}
	return gateway.Failed(reference, "Failure"), nil
}

func digits(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func luhn(number string) bool {
	if len(number) < 12 {
		return false
	}
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
