package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/patelhettt/vulninsights/internal/ctxkeys"
)

// SecurityHeaders sets the response security headers. The CSP only admits
// scripts from the site, inline scripts carrying the request nonce, the
// configured analytics hosts and TryHackMe badge frames. Images may come from
// any https origin since post thumbnails live on Medium's CDN.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", contentSecurityPolicy(r))
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

		cfg := ctxkeys.Config(r.Context())
		if cfg != nil && cfg.IsProduction() {
			h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

func contentSecurityPolicy(r *http.Request) string {
	scriptSrc := []string{"'self'"}
	connectSrc := []string{"'self'"}

	nonce := GetNonce(r.Context())
	if nonce != "" {
		scriptSrc = append(scriptSrc, fmt.Sprintf("'nonce-%s'", nonce))
	}

	cfg := ctxkeys.Config(r.Context())
	if cfg != nil {
		if cfg.GoogleAnalyticsID != "" {
			scriptSrc = append(scriptSrc, "https://www.googletagmanager.com")
			connectSrc = append(connectSrc, "https://*.google-analytics.com")
		}
		if cfg.PlausibleDomain != "" {
			scriptSrc = append(scriptSrc, "https://"+cfg.PlausibleHost)
			connectSrc = append(connectSrc, "https://"+cfg.PlausibleHost)
		}
	}

	directives := []string{
		"default-src 'self'",
		"script-src " + strings.Join(scriptSrc, " "),
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' https: data:",
		"font-src 'self'",
		"connect-src " + strings.Join(connectSrc, " "),
		"frame-src https://tryhackme.com",
		"frame-ancestors 'none'",
		"base-uri 'self'",
		"form-action 'self'",
		"object-src 'none'",
	}
	return strings.Join(directives, "; ")
}
