package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/patelhettt/vulninsights/internal/ctxkeys"
	"github.com/patelhettt/vulninsights/internal/service"
)

type SEOHandler struct {
	sitemapService *service.SitemapService
	baseURL        string
}

// NewSEOHandler creates a new SEO handler
func NewSEOHandler(blogService *service.BlogService, baseURL string) *SEOHandler {
	return &SEOHandler{
		sitemapService: service.NewSitemapService(blogService, baseURL),
		baseURL:        strings.TrimSuffix(baseURL, "/"),
	}
}

// Robots serves robots.txt pointing crawlers at the absolute sitemap URL.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", h.baseURL)
}

// Sitemap generates and serves the sitemap.xml dynamically
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	sitemap, err := h.sitemapService.GenerateSitemap(r.Context())
	if err != nil {
		slog.Error("sitemap generation failed", "error", err)
		http.Error(w, "Failed to generate sitemap", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if _, err := w.Write(sitemap); err != nil {
		slog.Debug("sitemap write failed", "request_id", ctxkeys.RequestID(r.Context()), "error", err)
	}
}
