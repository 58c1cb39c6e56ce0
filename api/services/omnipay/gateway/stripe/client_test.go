package stripegw

import (
	"context"
	"errors"
	"net/http"
	"testing"

	stripe "github.com/stripe/stripe-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbeaudouin05/paygate/api/services/omnipay/gateway"
)

type fakeIntents struct {
	key    string
	params *stripe.PaymentIntentParams
	pi     *stripe.PaymentIntent
	err    error
}

func (f *fakeIntents) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	f.params = params
	return f.pi, f.err
}

func newTestClient(f *fakeIntents) *client {
	c := New()
	c.intents = func(key string) intents {
		f.key = key
		return f
	}
	c.SetAPIKey("sk_test_123")
	c.SetPaymentMethod("pm_card_visa")
	return c
}

func send(t *testing.T, c *client) (gateway.Response, error) {
	t.Helper()
	req := c.Purchase(map[string]any{"amount": "12.50", "currency": "EUR"})
	req.SetTransactionID("order-1")
	req.SetDescription("Order #1")
	req.SetReturnURL("https://shop.test/return")
	return req.Send(context.Background())
}

func TestStripe_SucceededIntent(t *testing.T) {
	f := &fakeIntents{pi: &stripe.PaymentIntent{ID: "pi_1", Status: stripe.PaymentIntentStatusSucceeded}}
	resp, err := send(t, newTestClient(f))
	require.NoError(t, err)
	assert.True(t, resp.IsSuccessful())
	assert.Equal(t, "pi_1", resp.TransactionReference())

	assert.Equal(t, "sk_test_123", f.key)
	require.NotNil(t, f.params)
	assert.Equal(t, int64(1250), *f.params.Amount)
	assert.Equal(t, "eur", *f.params.Currency)
	assert.Equal(t, "pm_card_visa", *f.params.PaymentMethod)
	assert.True(t, *f.params.Confirm)
	assert.Equal(t, "Order #1", *f.params.Description)
	assert.Equal(t, "https://shop.test/return", *f.params.ReturnURL)
	assert.Equal(t, "order-1", f.params.Metadata["transaction_id"])
}

func TestStripe_RequiresActionRedirects(t *testing.T) {
	f := &fakeIntents{pi: &stripe.PaymentIntent{
		ID:     "pi_2",
		Status: stripe.PaymentIntentStatusRequiresAction,
		NextAction: &stripe.PaymentIntentNextAction{
			RedirectToURL: &stripe.PaymentIntentNextActionRedirectToURL{URL: "https://hooks.stripe.com/3ds"},
		},
	}}
	resp, err := send(t, newTestClient(f))
	require.NoError(t, err)
	assert.True(t, resp.IsRedirect())
	assert.Equal(t, http.MethodGet, resp.RedirectMethod())
	assert.Equal(t, "https://hooks.stripe.com/3ds", resp.RedirectURL())
}

func TestStripe_FailedIntentUsesLastError(t *testing.T) {
	f := &fakeIntents{pi: &stripe.PaymentIntent{
		ID:               "pi_3",
		Status:           stripe.PaymentIntentStatusRequiresPaymentMethod,
		LastPaymentError: &stripe.Error{Msg: "Your card was declined."},
	}}
	resp, err := send(t, newTestClient(f))
	require.NoError(t, err)
	assert.False(t, resp.IsSuccessful())
	assert.False(t, resp.IsRedirect())
	assert.Equal(t, "Your card was declined.", resp.Message())
}

func TestStripe_CardErrorIsAFailedResponse(t *testing.T) {
	f := &fakeIntents{err: &stripe.Error{Type: stripe.ErrorTypeCard, Msg: "Your card has insufficient funds."}}
	resp, err := send(t, newTestClient(f))
	require.NoError(t, err)
	assert.False(t, resp.IsSuccessful())
	assert.Equal(t, "Your card has insufficient funds.", resp.Message())
}

func TestStripe_APIErrorIsReturned(t *testing.T) {
	f := &fakeIntents{err: &stripe.Error{Type: stripe.ErrorTypeAPI, Msg: "boom"}}
	_, err := send(t, newTestClient(f))
	require.Error(t, err)
	var se *stripe.Error
	assert.True(t, errors.As(err, &se))
}

func TestStripe_MissingAPIKey(t *testing.T) {
	c := New()
	c.SetPaymentMethod("pm_card_visa")
	_, err := c.Purchase(map[string]any{"amount": "1.00", "currency": "USD"}).Send(context.Background())
	assert.True(t, errors.Is(err, gateway.ErrInvalidRequest))
}
