package routes

import (
	"io/fs"
	"net/http"

	"github.com/patelhettt/vulninsights/assets"
	"github.com/patelhettt/vulninsights/internal/app"
	"github.com/patelhettt/vulninsights/internal/handler"
	"github.com/patelhettt/vulninsights/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	authors := app.Fetcher.Authors()

	// Handlers
	home := handler.NewHomeHandler(app.BlogService, app.TipsService, authors)
	blog := handler.NewBlogHandler(app.BlogService, authors, app.Cfg.AppURL)
	tools := handler.NewToolsHandler(app.ToolsService, app.Cfg.GitHubUser)
	about := handler.NewAboutHandler(app.TeamService)
	seo := handler.NewSEOHandler(app.BlogService, app.Cfg.AppURL)

	// Pages that fetch from Medium or GitHub on every request
	upstream := app.RateLimiter.Middleware

	mux := http.NewServeMux()

	// Static files
	sub, _ := fs.Sub(assets.AssetsFS, ".")
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(sub))))

	// SEO
	mux.HandleFunc("GET /robots.txt", seo.Robots)
	mux.Handle("GET /sitemap.xml", upstream(http.HandlerFunc(seo.Sitemap)))

	// Pages
	mux.Handle("GET /{$}", upstream(http.HandlerFunc(home.HomePage)))
	mux.Handle("GET /blogs", upstream(http.HandlerFunc(blog.ListPosts)))
	mux.Handle("GET /blogs/{slug}", upstream(http.HandlerFunc(blog.ShowPost)))
	mux.Handle("GET /tools", upstream(http.HandlerFunc(tools.ToolsPage)))
	mux.HandleFunc("GET /about", about.AboutPage)

	if app.Cfg.MetricsEnabled {
		mux.Handle("GET /metrics", app.Metrics.Handler())
	}

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Metrics(app.Metrics),
		middleware.Config(app.Cfg), // Sanitized config for SecurityHeaders and templates
		middleware.NonceMiddleware, // Must run before SecurityHeaders
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.WithURLPath,
	)

	return handler
}
