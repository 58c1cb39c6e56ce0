package esewa

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/tbeaudouin05/paygate/api/services/omnipay/gateway"
)

const (
	ShortName = "Esewa"

	liveEndpoint = "https://epay.esewa.com.np/api/epay/main/v2/form"
	testEndpoint = "https://rc-epay.esewa.com.np/api/epay/main/v2/form"

	signedFieldNames = "total_amount,transaction_uuid,product_code"
)

func init() {
	gateway.Register(ShortName, func() gateway.Gateway { return New() })
}

// Gateway builds eSewa ePay v2 form posts. eSewa has no server-side initiate
// call: the customer's browser posts the signed form to eSewa.
type Gateway struct {
	*gateway.Base
}

func New() *Gateway {
	return &Gateway{Base: gateway.NewBase("eSewa", ShortName, map[string]any{
		"merchantCode": "",
		"secretKey":    "",
		"testMode":     false,
	})}
}

func (g *Gateway) SetMerchantCode(code string) { g.SetParameter("merchantCode", code) }
func (g *Gateway) SetSecretKey(key string)     { g.SetParameter("secretKey", key) }

func (g *Gateway) Purchase(options map[string]any) gateway.PurchaseRequest {
	return &purchaseRequest{BaseRequest: gateway.NewBaseRequest(gateway.Merge(g.Parameters(), options))}
}

type purchaseRequest struct {
	*gateway.BaseRequest
}

func (r *purchaseRequest) endpoint() string {
	if r.TestMode() {
		return testEndpoint
	}
	return liveEndpoint
}

func (r *purchaseRequest) Send(ctx context.Context) (gateway.Response, error) {
	if err := r.Validate("merchantCode", "secretKey", "amount", "transactionId", "returnUrl", "cancelUrl"); err != nil {
		return nil, err
	}
	if c := r.Currency(); c != "" && c != "NPR" {
		return nil, fmt.Errorf("%w: eSewa only accepts NPR, got %s", gateway.ErrInvalidRequest, c)
	}
	total, err := r.Amount()
	if err != nil {
		return nil, err
	}
	merchant := r.String("merchantCode")
	txID := r.TransactionID()

	fields := map[string]string{
		"amount":                  total,
		"tax_amount":              "0",
		"product_service_charge":  "0",
		"product_delivery_charge": "0",
		"total_amount":            total,
		"transaction_uuid":        txID,
		"product_code":            merchant,
		"success_url":             r.ReturnURL(),
		"failure_url":             r.CancelURL(),
		"signed_field_names":      signedFieldNames,
		"signature":               Sign(r.String("secretKey"), total, txID, merchant),
	}
	return gateway.Redirecting(txID, r.endpoint(), http.MethodPost, fields), nil
}

// Sign computes the base64 HMAC-SHA256 eSewa expects over the signed fields.
// Responses from eSewa are signed the same way.
func Sign(secret, totalAmount, transactionUUID, productCode string) string {
	raw := fmt.Sprintf("total_amount=%s,transaction_uuid=%s,product_code=%s", totalAmount, transactionUUID, productCode)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(raw))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a signature received from eSewa in constant time.
func VerifySignature(secret, totalAmount, transactionUUID, productCode, signature string) bool {
	want := Sign(secret, totalAmount, transactionUUID, productCode)
	return hmac.Equal([]byte(want), []byte(signature))
}
