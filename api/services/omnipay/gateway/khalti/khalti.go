package khalti

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/tbeaudouin05/paygate/api/services/omnipay/gateway"
)

const (
	ShortName = "Khalti"

	liveEndpoint = "https://khalti.com/api/v2/"
	testEndpoint = "https://dev.khalti.com/api/v2/"
)

func init() {
	gateway.Register(ShortName, func() gateway.Gateway { return New() })
}

// Gateway initiates Khalti ePayment (KPG-2) sessions. The initiate call
// returns a payment_url the customer is redirected to.
type Gateway struct {
	*gateway.Base
	httpClient *http.Client
}

func New() *Gateway {
	return &Gateway{
		Base: gateway.NewBase("Khalti", ShortName, map[string]any{
			"secretKey":  "",
			"websiteUrl": "",
			"endpoint":   "",
			"testMode":   false,
		}),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *Gateway) SetSecretKey(key string)      { g.SetParameter("secretKey", key) }
func (g *Gateway) SetWebsiteURL(url string)     { g.SetParameter("websiteUrl", url) }
func (g *Gateway) SetEndpoint(base string)      { g.SetParameter("endpoint", base) }
func (g *Gateway) SetHTTPClient(c *http.Client) { g.httpClient = c }

func (g *Gateway) Purchase(options map[string]any) gateway.PurchaseRequest {
	return &purchaseRequest{
		BaseRequest: gateway.NewBaseRequest(gateway.Merge(g.Parameters(), options)),
		httpClient:  g.httpClient,
	}
}

type purchaseRequest struct {
	*gateway.BaseRequest
	httpClient *http.Client
}

func (r *purchaseRequest) initiateURL() string {
	base := r.String("endpoint")
	if base == "" {
		base = liveEndpoint
		if r.TestMode() {
			base = testEndpoint
		}
	}
	return strings.TrimRight(base, "/") + "/epayment/initiate/"
}

type initiateResponse struct {
	Pidx       string `json:"pidx"`
	PaymentURL string `json:"payment_url"`
	ExpiresAt  string `json:"expires_at"`
	ExpiresIn  int    `json:"expires_in"`
}

func (r *purchaseRequest) Send(ctx context.Context) (gateway.Response, error) {
	if err := r.Validate("secretKey", "amount", "transactionId", "returnUrl"); err != nil {
		return nil, err
	}
	if c := r.Currency(); c != "" && c != "NPR" {
		return nil, fmt.Errorf("%w: Khalti only accepts NPR, got %s", gateway.ErrInvalidRequest, c)
	}
	paisa, err := r.AmountInteger()
	if err != nil {
		return nil, err
	}
	websiteURL := r.String("websiteUrl")
	if websiteURL == "" {
		websiteURL = r.ReturnURL()
	}
	name := r.Description()
	if name == "" {
		name = r.TransactionID()
	}
	payload := map[string]any{
		"return_url":          r.ReturnURL(),
		"website_url":         websiteURL,
		"amount":              paisa,
		"purchase_order_id":   r.TransactionID(),
		"purchase_order_name": name,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("khalti initiate encode: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.initiateURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("khalti initiate request: %w", err)
	}
	httpReq.Header.Set("Authorization", "key "+r.String("secretKey"))
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("khalti initiate request: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("khalti initiate read: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return gateway.Failed("", errorMessage(resp.StatusCode, raw)), nil
	}

	var res initiateResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("khalti initiate decode: %w body=%s", err, string(raw))
	}
	if res.PaymentURL == "" {
		return gateway.Failed(res.Pidx, "khalti returned no payment_url"), nil
	}
	return gateway.Redirecting(res.Pidx, res.PaymentURL, http.MethodGet, nil), nil
}

// errorMessage flattens Khalti's error bodies: either {"detail": "..."} or a
// map of field name to a list of messages.
func errorMessage(status int, raw []byte) string {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return fmt.Sprintf("khalti initiate failed: http=%d", status)
	}
	if detail, ok := body["detail"].(string); ok && detail != "" {
		return detail
	}
	var parts []string
	for field, v := range body {
		if field == "error_key" || field == "status_code" {
			continue
		}
		if list, ok := v.([]any); ok {
			for _, msg := range list {
				parts = append(parts, fmt.Sprintf("%s: %v", field, msg))
			}
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("khalti initiate failed: http=%d", status)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
