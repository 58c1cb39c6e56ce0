package tracing

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"net/url"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "paygate"

var propagator = propagation.NewCompositeTextMapPropagator(
	propagation.TraceContext{},
	propagation.Baggage{},
)

// Tracer returns the tracer used across the service.
func Tracer() trace.Tracer { return otel.Tracer(tracerName) }

// Init initializes the global tracer provider and returns a shutdown function.
// If OTEL_EXPORTER_OTLP_ENDPOINT is not set, returns nil (tracing disabled).
func Init(serviceName string) func() {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return nil
	}
	// WithEndpoint expects host:port (no scheme).
	if u, err := parseOTLPEndpoint(endpoint); err == nil {
		endpoint = u
	}
	ctx := context.Background()
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil
	}
	res, _ := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes("", semconv.ServiceNameKey.String(serviceName)),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagator)
	return func() { _ = tp.Shutdown(ctx) }
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// Middleware creates a span per request. A valid X-Request-ID (32 hex chars)
// becomes the trace id so logs and traces correlate.
func Middleware(next http.Handler) http.Handler {
	tracer := Tracer()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		if sc, ok := spanContextFromRequestID(r.Header.Get("X-Request-ID")); ok {
			ctx = trace.ContextWithRemoteSpanContext(ctx, sc)
		}
		ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path)
		defer span.End()

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r.WithContext(ctx))
		if sw.status == 0 {
			sw.status = http.StatusOK
		}
		span.SetAttributes(
			attribute.Int("http.status_code", sw.status),
			attribute.String("http.method", r.Method),
			attribute.String("http.route", r.URL.Path),
		)
		if sw.status >= 400 {
			span.SetStatus(codes.Error, http.StatusText(sw.status))
		}
	})
}

func spanContextFromRequestID(requestID string) (trace.SpanContext, bool) {
	if len(requestID) != 32 {
		return trace.SpanContext{}, false
	}
	tid, err := trace.TraceIDFromHex(requestID)
	if err != nil {
		return trace.SpanContext{}, false
	}
	var spanID trace.SpanID
	if _, err := hex.Decode(spanID[:], []byte(requestID[16:32])); err != nil {
		_, _ = rand.Read(spanID[:])
	}
	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    tid,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	}), true
}

// parseOTLPEndpoint returns "host:port" from OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "http://tempo:4318" -> "tempo:4318").
func parseOTLPEndpoint(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if !strings.Contains(raw, "://") {
		return raw, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	port := u.Port()
	if port == "" {
		port = "4318"
	}
	return u.Hostname() + ":" + port, nil
}
