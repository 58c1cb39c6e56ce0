package router

import (
	"bytes"
	"net/http"
)

// bufferedWriter holds what the payment service writes so the session can
// be saved before anything reaches the client.
type bufferedWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newBufferedWriter() *bufferedWriter {
	return &bufferedWriter{header: http.Header{}}
}

func (b *bufferedWriter) Header() http.Header { return b.header }

func (b *bufferedWriter) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedWriter) WriteHeader(code int) {
	if b.status == 0 {
		b.status = code
	}
}

// Empty reports whether nothing was written.
func (b *bufferedWriter) Empty() bool {
	return b.status == 0 && b.body.Len() == 0 && len(b.header) == 0
}

// flushTo copies headers, status and body to w.
func (b *bufferedWriter) flushTo(w http.ResponseWriter) error {
	for k, vs := range b.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	status := b.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, err := w.Write(b.body.Bytes())
	return err
}
