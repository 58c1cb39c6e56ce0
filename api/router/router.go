package router

import (
	"context"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	bootstrap "github.com/tbeaudouin05/paygate/api/bootstrap"
	"github.com/tbeaudouin05/paygate/api/config"
	"github.com/tbeaudouin05/paygate/api/health"
	"github.com/tbeaudouin05/paygate/api/metrics"
	omnipaydb "github.com/tbeaudouin05/paygate/api/services/omnipay/db"
	"github.com/tbeaudouin05/paygate/api/session"
	"github.com/tbeaudouin05/paygate/api/tracing"
)

// PaymentStore loads the payment a purchase is made for.
type PaymentStore interface {
	GetPayment(ctx context.Context, id string) (omnipaydb.Payment, error)
}

// Deps are the collaborators of the HTTP handlers.
type Deps struct {
	Logger   *zap.SugaredLogger
	Payments PaymentStore
	Gateways *config.Gateways
	Sessions *session.Manager
	// Health is optional; /healthz reports ok without it.
	Health *health.Server
}

type handlers struct {
	Deps
}

// NewRouter returns the central HTTP router for the API, wired from bootstrap.
func NewRouter() http.Handler {
	if err := bootstrap.Ensure(); err != nil {
		zap.S().Errorw("bootstrap ensure failed", "err", err)
	}
	return New(Deps{
		Logger:   bootstrap.GetLogger(),
		Payments: bootstrap.GetPaymentStore(),
		Gateways: bootstrap.GetGateways(),
		Sessions: bootstrap.GetSessionManager(),
		Health:   bootstrap.GetHealth(),
	})
}

// New maps the payment endpoints on a grpc-gateway ServeMux and wraps it
// with tracing and metrics.
func New(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop().Sugar()
	}
	if d.Gateways == nil {
		d.Gateways = &config.Gateways{}
	}
	h := &handlers{Deps: d}

	mux := runtime.NewServeMux()
	routes := []struct {
		method  string
		pattern string
		handler runtime.HandlerFunc
	}{
		{http.MethodPost, "/api/payments/{payment_id}/purchase", h.purchase},
		{http.MethodGet, "/api/payments/{gateway}/return", h.returned(returnKind)},
		{http.MethodGet, "/api/payments/{gateway}/cancel", h.returned(cancelKind)},
		{http.MethodPost, "/api/payments/{gateway}/notify", h.notify},
		{http.MethodGet, "/api/gateways", h.listGateways},
		{http.MethodGet, "/api/gateways/{gateway}", h.gatewayInfo},
		{http.MethodGet, "/healthz", h.healthz},
		{http.MethodGet, "/metrics", func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
			promhttp.Handler().ServeHTTP(w, r)
		}},
	}
	for _, rt := range routes {
		if err := mux.HandlePath(rt.method, rt.pattern, rt.handler); err != nil {
			d.Logger.Errorw("failed to register route", "method", rt.method, "pattern", rt.pattern, "err", err)
		}
	}
	return tracing.Middleware(metrics.Middleware(mux))
}
