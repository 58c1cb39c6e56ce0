package app

// PaymentDataKey is the session key holding the last purchase attempt.
const PaymentDataKey = "paymentData"

// Source tags for LogInfo.
const (
	SourceStart  = "start"
	SourceReturn = "return"
	SourceCancel = "cancel"
	SourceNotify = "notify"
)

// PaymentData is the snapshot of a purchase attempt kept in the session so
// the return and cancel endpoints can tell which payment came back.
type PaymentData struct {
	TransactionID string  `json:"transactionId"`
	Email         string  `json:"email"`
	UserID        string  `json:"userId"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	GatewayName   string  `json:"gatewayName"`
}
