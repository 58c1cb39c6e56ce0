package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGateways = `
fail_url: https://shop.test/fail
success_url: https://shop.test/success
gateways:
  Dummy:
    card: "4242424242424242"
    testMode: true
  Esewa:
    merchantCode: EPAYTEST
    secretKey: ${PAYGATE_TEST_ESEWA_SECRET}
    returnUrl: https://shop.test/esewa/return
  Khalti: ~
`

func TestParseGateways(t *testing.T) {
	t.Setenv("PAYGATE_TEST_ESEWA_SECRET", "s3cret")

	g, err := ParseGateways([]byte(sampleGateways))
	require.NoError(t, err)

	assert.Equal(t, "https://shop.test/success", g.URL("success"))
	assert.Equal(t, "https://shop.test/fail", g.URL("cancel"))
	assert.Equal(t, "https://shop.test/fail", g.URL("fail"))

	require.Contains(t, g.Gateways, "Dummy")
	assert.Equal(t, "4242424242424242", g.Gateways["Dummy"]["card"])
	assert.Equal(t, true, g.Gateways["Dummy"]["testMode"])
	assert.Equal(t, "s3cret", g.Gateways["Esewa"]["secretKey"])
	assert.NotContains(t, g.Gateways, "Khalti")
}

func TestParseGateways_Invalid(t *testing.T) {
	_, err := ParseGateways([]byte("gateways: [a, b]"))
	assert.Error(t, err)

	_, err = ParseGateways([]byte("gateways:\n  Dummy: 3\n"))
	assert.Error(t, err)

	_, err = ParseGateways([]byte("fail_url: [x]"))
	assert.Error(t, err)
}

func TestGateways_URLWithoutFallback(t *testing.T) {
	g, err := ParseGateways([]byte("gateways: {}"))
	require.NoError(t, err)
	assert.Equal(t, "", g.URL("success"))
}

func TestGateways_CloneIsIndependent(t *testing.T) {
	g, err := ParseGateways([]byte(sampleGateways))
	require.NoError(t, err)

	c := g.Clone()
	c.Gateways["Dummy"]["card"] = "4111111111111111"
	c.Gateways["Stripe"] = Options{"apiKey": "sk"}
	c.URLs["success_url"] = "https://other.test"

	assert.Equal(t, "4242424242424242", g.Gateways["Dummy"]["card"])
	assert.NotContains(t, g.Gateways, "Stripe")
	assert.Equal(t, "https://shop.test/success", g.URL("success"))
}

func TestLoadGateways(t *testing.T) {
	path := filepath.Join(t.TempDir(), "omnipay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleGateways), 0o600))

	g, err := LoadGateways(path)
	require.NoError(t, err)
	assert.Len(t, g.Gateways, 2)

	_, err = LoadGateways(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSessionLifetime(t *testing.T) {
	d, err := (&Config{SessionTTL: "30m"}).SessionLifetime()
	require.NoError(t, err)
	assert.Equal(t, "30m0s", d.String())

	_, err = (&Config{SessionTTL: "soon"}).SessionLifetime()
	assert.Error(t, err)
	_, err = (&Config{SessionTTL: "-1h"}).SessionLifetime()
	assert.Error(t, err)
}
