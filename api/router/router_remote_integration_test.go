package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	config "github.com/tbeaudouin05/paygate/api/config"
)

// Remote HTTP integration tests against a deployed instance.
// Skipped unless INTEGRATION_BASE_URL is set.

func remoteBaseURL(t *testing.T) string {
	t.Helper()
	ensureConfig(t)
	if config.AppConfig.IntegrationBaseURL == "" {
		t.Skip("INTEGRATION_BASE_URL not set")
	}
	return config.AppConfig.IntegrationBaseURL
}

func TestHealthzHTTP_Remote_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in -short mode")
	}
	base := remoteBaseURL(t)

	resp, err := http.Get(base + "/healthz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /healthz, got %d", resp.StatusCode)
	}
}

func TestPurchaseInvalidPayloadHTTP_Remote_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in -short mode")
	}
	base := remoteBaseURL(t)

	b, _ := json.Marshal(map[string]any{"gateway": ""})
	resp, err := http.Post(base+"/api/payments/remote-missing/purchase", "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload, got %d", resp.StatusCode)
	}
}

func TestUnknownGatewayHTTP_Remote_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in -short mode")
	}
	base := remoteBaseURL(t)

	resp, err := http.Get(base + "/api/gateways/NoSuchGateway")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown gateway, got %d", resp.StatusCode)
	}
}
