package service

import (
	"context"
	"encoding/xml"
	"strings"
	"time"

	"github.com/patelhettt/vulninsights/internal/model"
)

// publicRoutes defines all static public routes that should be included in the sitemap
var publicRoutes = []struct {
	Path       string
	Priority   string
	ChangeFreq string
}{
	{"/", "1.0", "weekly"},
	{"/blogs", "0.9", "daily"},
	{"/tools", "0.8", "weekly"},
	{"/about", "0.7", "monthly"},
}

type SitemapService struct {
	blogService *BlogService
	baseURL     string
	now         func() time.Time
}

// NewSitemapService creates a new sitemap service
func NewSitemapService(blogService *BlogService, baseURL string) *SitemapService {
	// Ensure baseURL doesn't have trailing slash
	baseURL = strings.TrimSuffix(baseURL, "/")

	return &SitemapService{
		blogService: blogService,
		baseURL:     baseURL,
		now:         time.Now,
	}
}

// GenerateSitemap builds the sitemap from the static routes and a fresh feed
// fetch. Placeholder posts are never listed.
func (s *SitemapService) GenerateSitemap(ctx context.Context) ([]byte, error) {
	sitemap := model.Sitemap{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  s.getStaticRoutes(),
	}

	snap := s.blogService.Snapshot(ctx)
	if !snap.Fallback {
		sitemap.URLs = append(sitemap.URLs, s.getBlogURLs(snap.Posts)...)
	}

	output, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	result := xml.Header + string(output)
	return []byte(result), nil
}

// getStaticRoutes returns the static routes of the application
func (s *SitemapService) getStaticRoutes() []model.SitemapURL {
	today := s.now().Format(time.DateOnly)
	urls := make([]model.SitemapURL, 0, len(publicRoutes))

	for _, route := range publicRoutes {
		urls = append(urls, model.SitemapURL{
			Loc:        s.baseURL + route.Path,
			LastMod:    today,
			ChangeFreq: route.ChangeFreq,
			Priority:   route.Priority,
		})
	}

	return urls
}

func (s *SitemapService) getBlogURLs(posts []*model.BlogPost) []model.SitemapURL {
	urls := make([]model.SitemapURL, 0, len(posts))
	seen := make(map[string]bool, len(posts))
	for _, post := range posts {
		if post.Slug == "" || seen[post.Slug] {
			continue
		}
		seen[post.Slug] = true

		// Use the post date if available, otherwise use today
		lastMod := s.now().Format(time.DateOnly)
		if post.HasDate() {
			lastMod = post.PublishedAt.Format(time.DateOnly)
		}

		urls = append(urls, model.SitemapURL{
			Loc:        s.baseURL + "/blogs/" + post.Slug,
			LastMod:    lastMod,
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}
	return urls
}
