package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbeaudouin05/paygate/api/config"
	"github.com/tbeaudouin05/paygate/api/metrics"
	omnipaydb "github.com/tbeaudouin05/paygate/api/services/omnipay/db"
	"github.com/tbeaudouin05/paygate/api/services/omnipay/gateway"
	"github.com/tbeaudouin05/paygate/api/tracing"
)

// Logger is the logging the service needs; *zap.SugaredLogger satisfies it.
type Logger interface {
	Infow(msg string, keysAndValues ...interface{})
}

// Session receives the payment record of a purchase attempt.
type Session interface {
	Set(key string, value any) error
}

// Service configures a payment gateway by name and runs purchases through it.
// A Service is request scoped: it holds the active gateway and its own copy
// of the gateway configuration.
type Service interface {
	Create(gatewayName string) bool
	Gateway() gateway.Gateway
	SetGatewayParameters() error
	SetConfigOption(name string, value any, gatewayName string) error
	SetConfigOptions(options map[string]any, gatewayName string) error
	ConfigURL(kind string) string
	ConfigOption(name string) any
	GatewayParameters() map[string]any
	GatewayDefaultParameters() map[string]any
	GatewayName() string
	GatewaySupportsAuthorize() bool
	CreatePurchase(paymentID, description string, options map[string]any) (gateway.PurchaseRequest, error)
	SendPurchase(ctx context.Context, w http.ResponseWriter, payment omnipaydb.Payment, description string) (bool, error)
	LogInfo(message, source string)
}

type serviceImpl struct {
	logger  Logger
	session Session
	config  *config.Gateways
	gateway gateway.Gateway
}

// NewService builds a service over a private copy of cfg.
func NewService(logger Logger, session Session, cfg *config.Gateways) Service {
	return &serviceImpl{logger: logger, session: session, config: cfg.Clone()}
}

// Create activates the driver registered as gatewayName. The name must also
// have an entry in the configuration.
func (s *serviceImpl) Create(gatewayName string) bool {
	if _, ok := s.config.Gateways[gatewayName]; !ok {
		return false
	}
	g, err := gateway.Create(gatewayName)
	if err != nil {
		return false
	}
	s.gateway = g
	return true
}

func (s *serviceImpl) Gateway() gateway.Gateway { return s.gateway }

// SetGatewayParameters pushes the configured options of the active gateway
// through its setters.
func (s *serviceImpl) SetGatewayParameters() error {
	if s.gateway == nil {
		return ErrNoGateway
	}
	applyOptions(s.gateway, s.config.Gateways[s.gateway.ShortName()])
	return nil
}

// SetConfigOption sets an option for gatewayName, or for the active gateway
// when gatewayName is empty.
func (s *serviceImpl) SetConfigOption(name string, value any, gatewayName string) error {
	if gatewayName == "" {
		if s.gateway == nil {
			return ErrNoGateway
		}
		gatewayName = s.gateway.ShortName()
	}
	opts := s.config.Gateways[gatewayName]
	if opts == nil {
		opts = config.Options{}
		s.config.Gateways[gatewayName] = opts
	}
	opts[name] = value
	return nil
}

func (s *serviceImpl) SetConfigOptions(options map[string]any, gatewayName string) error {
	names := make([]string, 0, len(options))
	for name := range options {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := s.SetConfigOption(name, options[name], gatewayName); err != nil {
			return err
		}
	}
	return nil
}

// ConfigURL returns the {kind}_url entry, or fail_url when it is not set.
func (s *serviceImpl) ConfigURL(kind string) string { return s.config.URL(kind) }

// ConfigOption returns an option of the active gateway, "" when unset.
func (s *serviceImpl) ConfigOption(name string) any {
	if s.gateway == nil {
		return ""
	}
	v, ok := s.config.Gateways[s.gateway.ShortName()][name]
	if !ok || v == nil {
		return ""
	}
	return v
}

func (s *serviceImpl) GatewayParameters() map[string]any {
	if s.gateway == nil {
		return nil
	}
	return s.gateway.Parameters()
}

func (s *serviceImpl) GatewayDefaultParameters() map[string]any {
	if s.gateway == nil {
		return nil
	}
	return s.gateway.DefaultParameters()
}

func (s *serviceImpl) GatewayName() string {
	if s.gateway == nil {
		return ""
	}
	return s.gateway.Name()
}

func (s *serviceImpl) GatewaySupportsAuthorize() bool {
	return s.gateway != nil && s.gateway.SupportsAuthorize()
}

// CreatePurchase builds a purchase on the active gateway. The return, cancel
// and notify URLs are attached only when configured for the gateway.
func (s *serviceImpl) CreatePurchase(paymentID, description string, options map[string]any) (gateway.PurchaseRequest, error) {
	if s.gateway == nil {
		return nil, ErrNoGateway
	}
	purchase := s.gateway.Purchase(options)
	purchase.SetTransactionID(paymentID)
	purchase.SetDescription(description)
	if u := s.ConfigOption("returnUrl"); !isEmpty(u) {
		purchase.SetReturnURL(fmt.Sprint(u))
	}
	if u := s.ConfigOption("cancelUrl"); !isEmpty(u) {
		purchase.SetCancelURL(fmt.Sprint(u))
	}
	if u := s.ConfigOption("notifyUrl"); !isEmpty(u) {
		purchase.SetNotifyURL(fmt.Sprint(u))
	}
	return purchase, nil
}

// SendPurchase sends a purchase for payment and acts on the answer: nothing
// is written on success, a redirect is written for redirects and the gateway
// message is written on failure. Every gateway answer yields true; errors are
// reserved for requests that never got an answer.
func (s *serviceImpl) SendPurchase(ctx context.Context, w http.ResponseWriter, payment omnipaydb.Payment, description string) (bool, error) {
	if s.gateway == nil {
		return false, ErrNoGateway
	}
	shortName := s.gateway.ShortName()
	ctx, span := tracing.Tracer().Start(ctx, "omnipay.SendPurchase", trace.WithAttributes(
		attribute.String("omnipay.gateway", shortName),
		attribute.String("omnipay.transaction_id", payment.ID),
	))
	defer span.End()

	if err := s.SetGatewayParameters(); err != nil {
		return false, err
	}
	purchase, err := s.CreatePurchase(payment.ID, description, map[string]any{
		"amount":   ToDecimal(payment.Amount),
		"currency": payment.Currency,
	})
	if err != nil {
		return false, err
	}

	start := time.Now()
	resp, err := purchase.Send(ctx)
	metrics.PurchaseDuration.WithLabelValues(shortName).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PurchaseTotal.WithLabelValues(shortName, "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "purchase failed")
		return false, fmt.Errorf("%w: %w", ErrGateway, err)
	}

	data := PaymentData{
		TransactionID: payment.ID,
		Email:         payment.Email,
		UserID:        payment.UserID,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		GatewayName:   s.GatewayName(),
	}
	if err := s.session.Set(PaymentDataKey, data); err != nil {
		return false, fmt.Errorf("%w: %w", ErrSession, err)
	}
	raw, _ := json.Marshal(data)
	s.LogInfo(fmt.Sprintf("%s Order ID: %s", raw, payment.UserID), SourceStart)

	switch {
	case resp.IsSuccessful():
		metrics.PurchaseTotal.WithLabelValues(shortName, "success").Inc()
	case resp.IsRedirect():
		metrics.PurchaseTotal.WithLabelValues(shortName, "redirect").Inc()
		if err := gateway.Redirect(w, resp); err != nil {
			return false, fmt.Errorf("%w: %w", ErrGateway, err)
		}
	default:
		metrics.PurchaseTotal.WithLabelValues(shortName, "failure").Inc()
		span.SetAttributes(attribute.String("omnipay.message", resp.Message()))
		_, _ = io.WriteString(w, resp.Message())
	}
	return true, nil
}

// LogInfo logs message at info level tagged with its source.
func (s *serviceImpl) LogInfo(message, source string) {
	s.logger.Infow(message, "omnipay", source)
}
