package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tbeaudouin05/paygate/api/config"
	omnipaydb "github.com/tbeaudouin05/paygate/api/services/omnipay/db"
	"github.com/tbeaudouin05/paygate/api/services/omnipay/gateway"
	"github.com/tbeaudouin05/paygate/api/services/omnipay/gateway/dummy"
	"github.com/tbeaudouin05/paygate/api/services/omnipay/gateway/esewa"
	mock_gateway "github.com/tbeaudouin05/paygate/api/services/omnipay/gateway/mock"
)

type fakeSession struct {
	values map[string]any
	err    error
}

func (f *fakeSession) Set(key string, value any) error {
	if f.err != nil {
		return f.err
	}
	if f.values == nil {
		f.values = map[string]any{}
	}
	f.values[key] = value
	return nil
}

func newObservedLogger() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return zap.New(core).Sugar(), logs
}

func testConfig() *config.Gateways {
	return &config.Gateways{
		URLs: map[string]string{
			"fail_url":    "https://shop.test/fail",
			"success_url": "https://shop.test/success",
		},
		Gateways: map[string]config.Options{
			dummy.ShortName: {
				"card":      "4242424242424242",
				"testMode":  true,
				"returnUrl": "https://shop.test/return",
			},
			esewa.ShortName: {
				"merchantCode": "EPAYTEST",
				"secretKey":    "8gBm/:&EnhH.1/q",
				"testMode":     "1",
				"returnUrl":    "https://shop.test/esewa/return",
				"cancelUrl":    "https://shop.test/esewa/cancel",
			},
			"Unregistered": {"apiKey": "x"},
		},
	}
}

func testPayment() omnipaydb.Payment {
	return omnipaydb.Payment{ID: "pay-1", Amount: 100, Currency: "NPR", Email: "buyer@example.com", UserID: "user-7"}
}

func TestCreate(t *testing.T) {
	logger, _ := newObservedLogger()
	s := NewService(logger, &fakeSession{}, testConfig())

	assert.Nil(t, s.Gateway())
	assert.False(t, s.Create("Nope"), "name missing from config")
	assert.False(t, s.Create("Unregistered"), "no driver for configured name")
	assert.Nil(t, s.Gateway())

	require.True(t, s.Create(dummy.ShortName))
	assert.Equal(t, dummy.ShortName, s.Gateway().ShortName())
	assert.Equal(t, "Dummy", s.GatewayName())
	assert.True(t, s.GatewaySupportsAuthorize())
	assert.Contains(t, s.GatewayDefaultParameters(), "card")
}

func TestNoGateway(t *testing.T) {
	logger, _ := newObservedLogger()
	s := NewService(logger, &fakeSession{}, testConfig())

	assert.ErrorIs(t, s.SetGatewayParameters(), ErrNoGateway)
	assert.ErrorIs(t, s.SetConfigOption("card", "x", ""), ErrNoGateway)
	_, err := s.CreatePurchase("p", "d", nil)
	assert.ErrorIs(t, err, ErrNoGateway)
	ok, err := s.SendPurchase(context.Background(), httptest.NewRecorder(), testPayment(), "d")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrNoGateway)

	assert.Equal(t, "", s.ConfigOption("card"))
	assert.Equal(t, "", s.GatewayName())
	assert.False(t, s.GatewaySupportsAuthorize())
	assert.Nil(t, s.GatewayParameters())
	assert.Nil(t, s.GatewayDefaultParameters())
}

func TestSetGatewayParameters_UsesSetters(t *testing.T) {
	logger, _ := newObservedLogger()
	s := NewService(logger, &fakeSession{}, testConfig())
	require.True(t, s.Create(esewa.ShortName))
	require.NoError(t, s.SetGatewayParameters())

	params := s.GatewayParameters()
	assert.Equal(t, "EPAYTEST", params["merchantCode"])
	assert.Equal(t, "8gBm/:&EnhH.1/q", params["secretKey"])
	assert.Equal(t, true, params["testMode"], "string \"1\" coerced to bool")
	assert.NotContains(t, params, "returnUrl", "no gateway setter for returnUrl")
}

func TestSetGatewayParameters_SkipsEmptyValues(t *testing.T) {
	logger, _ := newObservedLogger()
	cfg := testConfig()
	cfg.Gateways[dummy.ShortName]["card"] = ""
	cfg.Gateways[dummy.ShortName]["testMode"] = false
	s := NewService(logger, &fakeSession{}, cfg)
	require.True(t, s.Create(dummy.ShortName))
	require.NoError(t, s.SetGatewayParameters())

	params := s.GatewayParameters()
	assert.Equal(t, "", params["card"])
	assert.Equal(t, true, params["testMode"], "false is empty so the default stays")
}

func TestConfigOptions(t *testing.T) {
	logger, _ := newObservedLogger()
	cfg := testConfig()
	s := NewService(logger, &fakeSession{}, cfg)
	require.True(t, s.Create(dummy.ShortName))

	assert.Equal(t, "4242424242424242", s.ConfigOption("card"))
	assert.Equal(t, "", s.ConfigOption("missing"))

	require.NoError(t, s.SetConfigOption("card", "4111111111111111", ""))
	assert.Equal(t, "4111111111111111", s.ConfigOption("card"))
	assert.Equal(t, "4242424242424242", cfg.Gateways[dummy.ShortName]["card"], "service works on a copy")

	require.NoError(t, s.SetConfigOptions(map[string]any{"notifyUrl": "https://shop.test/n", "testMode": false}, dummy.ShortName))
	assert.Equal(t, "https://shop.test/n", s.ConfigOption("notifyUrl"))
	assert.Equal(t, false, s.ConfigOption("testMode"))

	// Options for a gateway without an entry create the entry.
	require.NoError(t, s.SetConfigOption("card", "4242424242424242", "Fresh"))
	assert.Equal(t, "4242424242424242", s.(*serviceImpl).config.Gateways["Fresh"]["card"])
}

func TestConfigURL(t *testing.T) {
	logger, _ := newObservedLogger()
	s := NewService(logger, &fakeSession{}, testConfig())
	assert.Equal(t, "https://shop.test/success", s.ConfigURL("success"))
	assert.Equal(t, "https://shop.test/fail", s.ConfigURL("cancel"))

	empty := NewService(logger, &fakeSession{}, nil)
	assert.Equal(t, "", empty.ConfigURL("success"))
}

func TestCreatePurchase_AttachesConfiguredURLs(t *testing.T) {
	ctrl := gomock.NewController(t)
	g := mock_gateway.NewMockGateway(ctrl)
	req := mock_gateway.NewMockPurchaseRequest(ctrl)

	cfg := testConfig()
	cfg.Gateways["Mock"] = config.Options{"returnUrl": "https://shop.test/r", "notifyUrl": "https://shop.test/n", "cancelUrl": ""}
	s := NewService(nil, &fakeSession{}, cfg).(*serviceImpl)
	s.gateway = g

	opts := map[string]any{"amount": "1.00"}
	g.EXPECT().ShortName().Return("Mock").AnyTimes()
	g.EXPECT().Purchase(opts).Return(req)
	req.EXPECT().SetTransactionID("pay-1")
	req.EXPECT().SetDescription("Order")
	req.EXPECT().SetReturnURL("https://shop.test/r")
	req.EXPECT().SetNotifyURL("https://shop.test/n")

	got, err := s.CreatePurchase("pay-1", "Order", opts)
	require.NoError(t, err)
	assert.Equal(t, req, got)
}

// newMockedService wires a mock gateway whose purchase answers resp/err.
func newMockedService(t *testing.T, sess Session, resp gateway.Response, sendErr error) (Service, *observer.ObservedLogs) {
	t.Helper()
	ctrl := gomock.NewController(t)
	g := mock_gateway.NewMockGateway(ctrl)
	req := mock_gateway.NewMockPurchaseRequest(ctrl)

	cfg := testConfig()
	cfg.Gateways["Mock"] = config.Options{}
	logger, logs := newObservedLogger()
	s := NewService(logger, sess, cfg).(*serviceImpl)
	s.gateway = g

	g.EXPECT().ShortName().Return("Mock").AnyTimes()
	g.EXPECT().Name().Return("Mock Gateway").AnyTimes()
	g.EXPECT().Purchase(map[string]any{"amount": "100.00", "currency": "NPR"}).Return(req)
	req.EXPECT().SetTransactionID("pay-1")
	req.EXPECT().SetDescription("Order #1")
	req.EXPECT().Send(gomock.Any()).Return(resp, sendErr)
	return s, logs
}

func TestSendPurchase_Success(t *testing.T) {
	sess := &fakeSession{}
	s, logs := newMockedService(t, sess, gateway.Succeeded("ref", "Success"), nil)
	rec := httptest.NewRecorder()

	ok, err := s.SendPurchase(context.Background(), rec, testPayment(), "Order #1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, rec.Body.String())

	assert.Equal(t, PaymentData{
		TransactionID: "pay-1",
		Email:         "buyer@example.com",
		UserID:        "user-7",
		Amount:        100,
		Currency:      "NPR",
		GatewayName:   "Mock Gateway",
	}, sess.values[PaymentDataKey])

	entries := logs.FilterField(zap.String("omnipay", SourceStart)).All()
	require.Len(t, entries, 1)
	assert.Equal(t, `{"transactionId":"pay-1","email":"buyer@example.com","userId":"user-7","amount":100,"currency":"NPR","gatewayName":"Mock Gateway"} Order ID: user-7`, entries[0].Message)
}

func TestSendPurchase_RedirectWritesRedirect(t *testing.T) {
	resp := gateway.Redirecting("ref", "https://pay.test/checkout", http.MethodGet, map[string]string{"token": "abc"})
	s, _ := newMockedService(t, &fakeSession{}, resp, nil)
	rec := httptest.NewRecorder()

	ok, err := s.SendPurchase(context.Background(), rec, testPayment(), "Order #1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://pay.test/checkout?token=abc", rec.Header().Get("Location"))
}

func TestSendPurchase_FailureWritesMessage(t *testing.T) {
	sess := &fakeSession{}
	s, _ := newMockedService(t, sess, gateway.Failed("ref", "Card declined"), nil)
	rec := httptest.NewRecorder()

	ok, err := s.SendPurchase(context.Background(), rec, testPayment(), "Order #1")
	require.NoError(t, err)
	assert.True(t, ok, "a declined payment still counts as handled")
	assert.Equal(t, "Card declined", rec.Body.String())
	assert.Contains(t, sess.values, PaymentDataKey)
}

func TestSendPurchase_SendErrorIsGatewayError(t *testing.T) {
	sess := &fakeSession{}
	cause := errors.New("connection refused")
	s, logs := newMockedService(t, sess, nil, cause)

	ok, err := s.SendPurchase(context.Background(), httptest.NewRecorder(), testPayment(), "Order #1")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrGateway)
	assert.ErrorIs(t, err, cause)
	assert.Empty(t, sess.values)
	assert.Equal(t, 0, logs.Len())
}

func TestSendPurchase_SessionErrorIsReturned(t *testing.T) {
	s, _ := newMockedService(t, &fakeSession{err: errors.New("redis down")}, gateway.Succeeded("ref", ""), nil)
	ok, err := s.SendPurchase(context.Background(), httptest.NewRecorder(), testPayment(), "Order #1")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrSession)
}

func TestSendPurchase_EsewaEndToEnd(t *testing.T) {
	sess := &fakeSession{}
	logger, _ := newObservedLogger()
	s := NewService(logger, sess, testConfig())
	require.True(t, s.Create(esewa.ShortName))
	rec := httptest.NewRecorder()

	ok, err := s.SendPurchase(context.Background(), rec, testPayment(), "Order #1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="https://rc-epay.esewa.com.np/api/epay/main/v2/form"`)
	assert.Contains(t, rec.Body.String(), `value="https://shop.test/esewa/return"`)

	raw, err := json.Marshal(sess.values[PaymentDataKey])
	require.NoError(t, err)
	assert.JSONEq(t, `{"transactionId":"pay-1","email":"buyer@example.com","userId":"user-7","amount":100,"currency":"NPR","gatewayName":"eSewa"}`, string(raw))
}

func TestSendPurchase_DummyDecline(t *testing.T) {
	cfg := testConfig()
	cfg.Gateways[dummy.ShortName]["card"] = "4111111111111111"
	logger, _ := newObservedLogger()
	s := NewService(logger, &fakeSession{}, cfg)
	require.True(t, s.Create(dummy.ShortName))
	rec := httptest.NewRecorder()

	payment := testPayment()
	payment.Currency = "USD"
	ok, err := s.SendPurchase(context.Background(), rec, payment, "Order #1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Failure", rec.Body.String())
}

func TestSendPurchase_DriverValidationError(t *testing.T) {
	cfg := testConfig()
	delete(cfg.Gateways[esewa.ShortName], "cancelUrl")
	logger, _ := newObservedLogger()
	s := NewService(logger, &fakeSession{}, cfg)
	require.True(t, s.Create(esewa.ShortName))

	_, err := s.SendPurchase(context.Background(), httptest.NewRecorder(), testPayment(), "Order #1")
	assert.ErrorIs(t, err, ErrGateway)
	assert.ErrorIs(t, err, gateway.ErrInvalidRequest)
}

func TestLogInfo(t *testing.T) {
	logger, logs := newObservedLogger()
	s := NewService(logger, &fakeSession{}, testConfig())
	s.LogInfo("hello", SourceNotify)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "hello", entry.Message)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, SourceNotify, entry.ContextMap()["omnipay"])
}
