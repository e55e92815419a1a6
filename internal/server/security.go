package server

import (
	"fmt"
	"net/http"
	"strings"
)

// CSPConfig lists the Content Security Policy sources of each directive.
type CSPConfig struct {
	DefaultSrc     []string
	ScriptSrc      []string
	StyleSrc       []string
	ImgSrc         []string
	ConnectSrc     []string
	FrameAncestors []string
	BaseURI        []string
}

// DefaultCSP allows the tailwind CDN, the inline reload script, the inline
// styles of highlighted code and the reload socket.
func DefaultCSP() *CSPConfig {
	return &CSPConfig{
		DefaultSrc:     []string{"'self'"},
		ScriptSrc:      []string{"'self'", "'unsafe-inline'", "https://cdn.tailwindcss.com"},
		StyleSrc:       []string{"'self'", "'unsafe-inline'"},
		ImgSrc:         []string{"'self'", "data:", "https:"},
		ConnectSrc:     []string{"'self'", "ws:", "wss:"},
		FrameAncestors: []string{"'none'"},
		BaseURI:        []string{"'self'"},
	}
}

// String renders the policy as a header value.
func (c *CSPConfig) String() string {
	var directives []string
	add := func(name string, values []string) {
		if len(values) > 0 {
			directives = append(directives, fmt.Sprintf("%s %s", name, strings.Join(values, " ")))
		}
	}

	add("default-src", c.DefaultSrc)
	add("script-src", c.ScriptSrc)
	add("style-src", c.StyleSrc)
	add("img-src", c.ImgSrc)
	add("connect-src", c.ConnectSrc)
	add("frame-ancestors", c.FrameAncestors)
	add("base-uri", c.BaseURI)

	return strings.Join(directives, "; ")
}

// securityHeaders sets the response headers shared by every route.
func securityHeaders(csp *CSPConfig) func(http.Handler) http.Handler {
	policy := csp.String()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Content-Security-Policy", policy)
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			next.ServeHTTP(w, r)
		})
	}
}
