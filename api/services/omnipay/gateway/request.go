package gateway

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// currencyDecimals lists ISO 4217 currencies whose minor unit is not cents.
var currencyDecimals = map[string]int32{
	"BIF": 0, "CLP": 0, "DJF": 0, "GNF": 0, "JPY": 0, "KMF": 0, "KRW": 0, "MGA": 0,
	"PYG": 0, "RWF": 0, "UGX": 0, "VND": 0, "VUV": 0, "XAF": 0, "XOF": 0, "XPF": 0,
	"BHD": 3, "JOD": 3, "KWD": 3, "OMR": 3, "TND": 3,
}

// CurrencyDecimals returns the number of minor-unit digits for an ISO 4217 code.
func CurrencyDecimals(currency string) int32 {
	if d, ok := currencyDecimals[strings.ToUpper(currency)]; ok {
		return d
	}
	return 2
}

// BaseRequest holds the parameters of a request and the setters every
// purchase needs. Drivers embed it and implement Send.
type BaseRequest struct {
	params map[string]any
}

func NewBaseRequest(params map[string]any) *BaseRequest {
	return &BaseRequest{params: copyParams(params)}
}

func (r *BaseRequest) Parameters() map[string]any { return copyParams(r.params) }

func (r *BaseRequest) Parameter(key string) any { return r.params[key] }

func (r *BaseRequest) SetParameter(key string, value any) { r.params[key] = value }

func (r *BaseRequest) String(key string) string { return toString(r.params[key]) }

func (r *BaseRequest) Bool(key string) bool { return toBool(r.params[key]) }

func (r *BaseRequest) TestMode() bool { return r.Bool("testMode") }

func (r *BaseRequest) SetTransactionID(id string)        { r.params["transactionId"] = id }
func (r *BaseRequest) TransactionID() string              { return r.String("transactionId") }
func (r *BaseRequest) SetDescription(description string) { r.params["description"] = description }
func (r *BaseRequest) Description() string               { return r.String("description") }
func (r *BaseRequest) SetReturnURL(url string)           { r.params["returnUrl"] = url }
func (r *BaseRequest) ReturnURL() string                 { return r.String("returnUrl") }
func (r *BaseRequest) SetCancelURL(url string)           { r.params["cancelUrl"] = url }
func (r *BaseRequest) CancelURL() string                 { return r.String("cancelUrl") }
func (r *BaseRequest) SetNotifyURL(url string)           { r.params["notifyUrl"] = url }
func (r *BaseRequest) NotifyURL() string                 { return r.String("notifyUrl") }

func (r *BaseRequest) Currency() string { return strings.ToUpper(r.String("currency")) }

// Validate fails on the first key whose value is missing or blank.
func (r *BaseRequest) Validate(keys ...string) error {
	for _, key := range keys {
		v, ok := r.params[key]
		if !ok || v == nil || strings.TrimSpace(toString(v)) == "" {
			return fmt.Errorf("%w: the %s parameter is required", ErrInvalidRequest, key)
		}
	}
	return nil
}

// AmountDecimal parses the amount parameter and checks it against the
// precision of the request currency.
func (r *BaseRequest) AmountDecimal() (decimal.Decimal, error) {
	var (
		amount decimal.Decimal
		err    error
	)
	switch v := r.params["amount"].(type) {
	case nil:
		return decimal.Zero, fmt.Errorf("%w: the amount parameter is required", ErrInvalidRequest)
	case string:
		amount, err = decimal.NewFromString(strings.TrimSpace(v))
	case float64:
		amount = decimal.NewFromFloat(v)
	case int:
		amount = decimal.NewFromInt(int64(v))
	case int64:
		amount = decimal.NewFromInt(v)
	case decimal.Decimal:
		amount = v
	default:
		err = fmt.Errorf("unsupported amount type %T", v)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid amount: %v", ErrInvalidRequest, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: a negative amount is not allowed", ErrInvalidRequest)
	}
	if amount.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: a zero amount is not allowed", ErrInvalidRequest)
	}
	places := CurrencyDecimals(r.Currency())
	if !amount.Equal(amount.Truncate(places)) {
		return decimal.Zero, fmt.Errorf("%w: amount precision is too high for currency %s", ErrInvalidRequest, r.Currency())
	}
	return amount, nil
}

// Amount formats the amount with the currency's number of decimals.
func (r *BaseRequest) Amount() (string, error) {
	amount, err := r.AmountDecimal()
	if err != nil {
		return "", err
	}
	return amount.StringFixed(CurrencyDecimals(r.Currency())), nil
}

// AmountInteger returns the amount in the currency's minor unit.
func (r *BaseRequest) AmountInteger() (int64, error) {
	amount, err := r.AmountDecimal()
	if err != nil {
		return 0, err
	}
	return amount.Shift(CurrencyDecimals(r.Currency())).IntPart(), nil
}
