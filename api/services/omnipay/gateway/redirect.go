package gateway

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"
)

var autoPostForm = template.Must(template.New("redirect").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Redirecting…</title>
</head>
<body onload="document.forms[0].submit();">
  <form action="{{.Action}}" method="post">
    <p>Redirecting to payment page...</p>
    {{range $k, $v := .Fields}}<input type="hidden" name="{{$k}}" value="{{$v}}" />
    {{end}}<noscript><input type="submit" value="Continue" /></noscript>
  </form>
</body>
</html>`))

// Redirect writes the redirect carried by resp to w. GET redirects become a
// 302 with the redirect data appended to the query string, POST redirects an
// auto-submitting form.
func Redirect(w http.ResponseWriter, resp Response) error {
	if !resp.IsRedirect() {
		return ErrNotRedirect
	}
	switch strings.ToUpper(resp.RedirectMethod()) {
	case "", http.MethodGet:
		target, err := withQuery(resp.RedirectURL(), resp.RedirectData())
		if err != nil {
			return err
		}
		w.Header().Set("Location", target)
		w.WriteHeader(http.StatusFound)
		return nil
	case http.MethodPost:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store, max-age=0")
		w.WriteHeader(http.StatusOK)
		return autoPostForm.Execute(w, map[string]any{
			"Action": resp.RedirectURL(),
			"Fields": resp.RedirectData(),
		})
	default:
		return fmt.Errorf("%w: invalid redirect method %q", ErrInvalidRequest, resp.RedirectMethod())
	}
}

func withQuery(base string, fields map[string]string) (string, error) {
	if len(fields) == 0 {
		return base, nil
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%w: invalid redirect url: %v", ErrInvalidRequest, err)
	}
	q := u.Query()
	for k, v := range fields {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
