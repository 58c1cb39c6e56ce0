package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/tbeaudouin05/paygate/api/services/omnipay/app"
	omnipaydb "github.com/tbeaudouin05/paygate/api/services/omnipay/db"
	"github.com/tbeaudouin05/paygate/api/services/omnipay/gateway"
)

const (
	returnKind = "success"
	cancelKind = "cancel"
)

type purchasePayload struct {
	Gateway     string `json:"gateway" validate:"required,max=64"`
	Description string `json:"description" validate:"max=255"`
}

// purchase starts a payment on the requested gateway. The service output is
// buffered until the session is saved; when it wrote nothing the payment
// completed synchronously and the client goes to the success URL.
func (h *handlers) purchase(w http.ResponseWriter, r *http.Request, params map[string]string) {
	if h.Payments == nil || h.Sessions == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "payments are not available")
		return
	}
	var payload purchasePayload
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	payment, err := h.Payments.GetPayment(ctx, params["payment_id"])
	if errors.Is(err, omnipaydb.ErrPaymentNotFound) {
		writeJSONError(w, http.StatusNotFound, "payment not found")
		return
	}
	if err != nil {
		h.Logger.Errorw("failed to load payment", "payment_id", params["payment_id"], "err", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to load payment")
		return
	}

	sess, err := h.Sessions.Start(w, r)
	if err != nil {
		h.Logger.Errorw("failed to start session", "err", err)
		writeJSONError(w, http.StatusInternalServerError, "session unavailable")
		return
	}
	svc := app.NewService(h.Logger, sess, h.Gateways)
	if !svc.Create(payload.Gateway) {
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("gateway %s is not available", payload.Gateway))
		return
	}

	description := payload.Description
	if description == "" {
		description = "Payment " + payment.ID
	}
	buf := newBufferedWriter()
	if _, err := svc.SendPurchase(ctx, buf, payment, description); err != nil {
		h.Logger.Errorw("purchase failed", "payment_id", payment.ID, "gateway", payload.Gateway, "err", err)
		switch {
		case errors.Is(err, gateway.ErrInvalidRequest):
			writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, app.ErrGateway):
			writeJSONError(w, http.StatusBadGateway, "payment gateway error")
		default:
			writeJSONError(w, http.StatusInternalServerError, "purchase failed")
		}
		return
	}
	if err := h.Sessions.Save(ctx, sess); err != nil {
		h.Logger.Errorw("failed to save session", "err", err)
		writeJSONError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	if buf.Empty() {
		if target := svc.ConfigURL(returnKind); target != "" {
			http.Redirect(w, r, target, http.StatusFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "paymentId": payment.ID})
		return
	}
	if err := buf.flushTo(w); err != nil {
		h.Logger.Warnw("failed to write purchase response", "err", err)
	}
}

// returned handles the customer coming back from the gateway.
func (h *handlers) returned(kind string) func(http.ResponseWriter, *http.Request, map[string]string) {
	source := app.SourceReturn
	if kind == cancelKind {
		source = app.SourceCancel
	}
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		if h.Sessions == nil {
			writeJSONError(w, http.StatusServiceUnavailable, "sessions are not available")
			return
		}
		sess, err := h.Sessions.Start(w, r)
		if err != nil {
			h.Logger.Errorw("failed to start session", "err", err)
			writeJSONError(w, http.StatusInternalServerError, "session unavailable")
			return
		}
		var data app.PaymentData
		found, err := sess.Get(app.PaymentDataKey, &data)
		if err != nil {
			h.Logger.Warnw("unreadable payment data in session", "err", err)
		}

		svc := app.NewService(h.Logger, sess, h.Gateways)
		raw := []byte("{}")
		if found {
			raw, _ = json.Marshal(data)
		}
		svc.LogInfo(fmt.Sprintf("%s Gateway: %s Query: %s", raw, params["gateway"], r.URL.RawQuery), source)

		if err := h.Sessions.Save(r.Context(), sess); err != nil {
			h.Logger.Errorw("failed to save session", "err", err)
		}
		if target := svc.ConfigURL(kind); target != "" {
			http.Redirect(w, r, target, http.StatusFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": kind, "paymentData": data})
	}
}

// notify records an asynchronous notification from a gateway.
func (h *handlers) notify(w http.ResponseWriter, r *http.Request, params map[string]string) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 64<<10))
	if err != nil {
		writeJSONError(w, http.StatusRequestEntityTooLarge, "notification too large")
		return
	}
	svc := app.NewService(h.Logger, nil, h.Gateways)
	svc.LogInfo(fmt.Sprintf("%s Gateway: %s", body, params["gateway"]), app.SourceNotify)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "OK")
}

type gatewayInfo struct {
	Name              string         `json:"name"`
	ShortName         string         `json:"shortName"`
	SupportsAuthorize bool           `json:"supportsAuthorize"`
	DefaultParameters map[string]any `json:"defaultParameters"`
	Parameters        map[string]any `json:"parameters"`
}

// listGateways returns the gateways that are both configured and available.
func (h *handlers) listGateways(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	names := []string{}
	for name := range h.Gateways.Gateways {
		if gateway.Registered(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	writeJSON(w, http.StatusOK, map[string]any{"gateways": names})
}

func (h *handlers) gatewayInfo(w http.ResponseWriter, r *http.Request, params map[string]string) {
	svc := app.NewService(h.Logger, nil, h.Gateways)
	if !svc.Create(params["gateway"]) {
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("gateway %s is not available", params["gateway"]))
		return
	}
	if err := svc.SetGatewayParameters(); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, gatewayInfo{
		Name:              svc.GatewayName(),
		ShortName:         svc.Gateway().ShortName(),
		SupportsAuthorize: svc.GatewaySupportsAuthorize(),
		DefaultParameters: maskSecrets(svc.GatewayDefaultParameters()),
		Parameters:        maskSecrets(svc.GatewayParameters()),
	})
}

func (h *handlers) healthz(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	if h.Health == nil {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
		return
	}
	status, code := "ok", http.StatusOK
	if !h.Health.Refresh(r.Context()) {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]any{"status": status, "checks": h.Health.Status()})
}
