// Package pages holds the site's page components. Each page is an embedded
// html/template file rendered inside the shared layout and exposed as a
// templ.Component.
package pages

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/patelhettt/vulninsights/internal/config"
	"github.com/patelhettt/vulninsights/internal/ctxkeys"
)

//go:embed templates
var templateFS embed.FS

var pageNames = []string{"home", "blogs", "post", "about", "tools", "notfound"}

var templates = parseTemplates()

func parseTemplates() map[string]*template.Template {
	base := template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/partials.html"))

	out := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t := template.Must(base.Clone())
		out[name] = template.Must(t.ParseFS(templateFS, "templates/"+name+".html"))
	}
	return out
}

// Meta is the per page head data: title, description and social cards.
type Meta struct {
	Title       string
	Description string
	Path        string // canonical path, e.g. /blogs/my-post
	Type        string // og:type, "website" unless set
	Image       string
	Author      string
	Published   time.Time
	JSONLD      any
}

// Site is the part of the sanitized config the layout needs.
type Site struct {
	Name              string
	Tagline           string
	URL               string
	GoogleAnalyticsID string
	PlausibleDomain   string
	PlausibleHost     string
	FallbackNotice    bool
	Year              int
}

// View is the data every template receives.
type View struct {
	Site  Site
	Meta  Meta
	Nonce string
	Path  string
	Data  any
}

// Canonical is the absolute URL of the page.
func (v View) Canonical() string {
	return v.Site.URL + v.Meta.Path
}

// Title is the document title, suffixed with the site name.
func (v View) Title() string {
	if v.Meta.Title == "" {
		return v.Site.Name
	}
	return v.Meta.Title + " | " + v.Site.Name
}

// StructuredData is the JSON-LD block for the page, or "" when there is none.
func (v View) StructuredData() (template.JS, error) {
	if v.Meta.JSONLD == nil {
		return "", nil
	}
	b, err := json.Marshal(v.Meta.JSONLD)
	if err != nil {
		return "", fmt.Errorf("failed to encode json-ld: %w", err)
	}
	return template.JS(b), nil
}

func siteFromContext(ctx context.Context) Site {
	cfg := ctxkeys.Config(ctx)
	if cfg == nil {
		cfg = &config.Config{AppName: "VulnInsights", FallbackNotice: true}
	}
	return Site{
		Name:              cfg.AppName,
		Tagline:           cfg.AppTagline,
		URL:               cfg.AppURL,
		GoogleAnalyticsID: cfg.GoogleAnalyticsID,
		PlausibleDomain:   cfg.PlausibleDomain,
		PlausibleHost:     cfg.PlausibleHost,
		FallbackNotice:    cfg.FallbackNotice,
		Year:              time.Now().Year(),
	}
}

// page renders the named template inside the layout.
func page(name string, meta Meta, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t, ok := templates[name]
		if !ok {
			return fmt.Errorf("unknown page template %q", name)
		}
		if meta.Type == "" {
			meta.Type = "website"
		}

		view := View{
			Site:  siteFromContext(ctx),
			Meta:  meta,
			Nonce: templ.GetNonce(ctx),
			Path:  ctxkeys.URLPath(ctx),
			Data:  data,
		}
		return templ.FromGoHTML(t.Lookup("layout"), view).Render(ctx, w)
	})
}
