package gateway

import "net/http"

// BaseResponse is a plain Response value drivers can return directly.
type BaseResponse struct {
	Success   bool
	Msg       string
	Reference string
	URL       string
	Method    string
	Fields    map[string]string
}

// Succeeded builds a successful response.
func Succeeded(reference, message string) *BaseResponse {
	return &BaseResponse{Success: true, Reference: reference, Msg: message}
}

// Failed builds a failed response carrying the gateway's message.
func Failed(reference, message string) *BaseResponse {
	return &BaseResponse{Reference: reference, Msg: message}
}

// Redirecting builds a response sending the customer to url with method
// GET or POST. POST redirects submit fields as a form.
func Redirecting(reference, url, method string, fields map[string]string) *BaseResponse {
	if method == "" {
		method = http.MethodGet
	}
	return &BaseResponse{Reference: reference, URL: url, Method: method, Fields: fields}
}

func (r *BaseResponse) IsSuccessful() bool           { return r.Success && r.URL == "" }
func (r *BaseResponse) IsRedirect() bool             { return r.URL != "" }
func (r *BaseResponse) Message() string              { return r.Msg }
func (r *BaseResponse) TransactionReference() string { return r.Reference }
func (r *BaseResponse) RedirectURL() string          { return r.URL }
func (r *BaseResponse) RedirectMethod() string       { return r.Method }

func (r *BaseResponse) RedirectData() map[string]string {
	out := make(map[string]string, len(r.Fields))
	for k, v := range r.Fields {
		out[k] = v
	}
	return out
}
