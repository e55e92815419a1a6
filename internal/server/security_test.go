package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSPString(t *testing.T) {
	csp := &CSPConfig{
		DefaultSrc: []string{"'self'"},
		ScriptSrc:  []string{"'self'", "https://cdn.example.com"},
	}
	assert.Equal(t, "default-src 'self'; script-src 'self' https://cdn.example.com", csp.String())
	assert.Empty(t, (&CSPConfig{}).String())
}

func TestSecurityHeaders(t *testing.T) {
	_, srv := newTestServer(t, testConfig(t))

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", resp.Header.Get("Referrer-Policy"))

	csp := resp.Header.Get("Content-Security-Policy")
	assert.Contains(t, csp, "script-src 'self' 'unsafe-inline' https://cdn.tailwindcss.com")
	assert.Contains(t, csp, "connect-src 'self' ws: wss:")
	assert.Contains(t, csp, "frame-ancestors 'none'")
}
