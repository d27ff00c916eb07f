package handler

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patelhettt/vulninsights"
	"github.com/patelhettt/vulninsights/internal/ctxkeys"
	"github.com/patelhettt/vulninsights/internal/feed"
	"github.com/patelhettt/vulninsights/internal/model"
	"github.com/patelhettt/vulninsights/internal/service"
)

var (
	het     = model.Author{Name: "Het", Handle: "hettt"}
	kaif    = model.Author{Name: "Kaif", Handle: "SKaif009"}
	authors = []model.Author{kaif, het}
)

type stubFetcher struct {
	feeds []feed.AuthorFeed
	err   error
}

func (s *stubFetcher) FetchAll(ctx context.Context) ([]feed.AuthorFeed, error) {
	return s.feeds, s.err
}

type stubRepos struct {
	repos []model.Repo
	err   error
}

func (s *stubRepos) ListRepos(ctx context.Context) ([]model.Repo, error) {
	return s.repos, s.err
}

func liveFetcher() *stubFetcher {
	return &stubFetcher{feeds: []feed.AuthorFeed{
		{Author: kaif, Feed: &feed.RawFeed{Items: []feed.RawItem{{
			Title:       "Hunting with Sigma Rules",
			Link:        "https://medium.com/@SKaif009/hunting-with-sigma-rules-9f8e7d",
			GUID:        "https://medium.com/p/9f8e7d",
			PubDate:     "2024-12-10 08:00:00",
			Description: "<p>Detection as code.</p>",
			Content:     `<h2>Intro</h2><p>Detection as code.</p><script>alert(1)</script>`,
			Categories:  []string{"threat-hunting"},
		}}}},
		{Author: het, Feed: &feed.RawFeed{Items: []feed.RawItem{{
			Title:       "Bypassing 403 Pages",
			Link:        "https://medium.com/@hettt/bypassing-403-pages-1a2b3c",
			PubDate:     "2024-12-12 08:00:00",
			Description: "<p>Header tricks.</p>",
		}}}},
	}}
}

func blogService(f service.FeedFetcher) *service.BlogService {
	return service.NewBlogService(f, feed.NewNormalizer(0))
}

func get(t *testing.T, h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHomePage(t *testing.T) {
	h := NewHomeHandler(blogService(liveFetcher()), service.NewTipsService(), authors)

	rec := get(t, h.HomePage, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bypassing 403 Pages")
	assert.Contains(t, rec.Body.String(), "Hunting with Sigma Rules")
	assert.Contains(t, rec.Body.String(), "Did you know?")
	assert.NotContains(t, rec.Body.String(), "Showing sample posts")
}

func TestHomePageFallback(t *testing.T) {
	h := NewHomeHandler(blogService(&stubFetcher{err: errors.New("bridge down")}), service.NewTipsService(), authors)

	rec := get(t, h.HomePage, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Showing sample posts")
	assert.Contains(t, rec.Body.String(), "Advanced Penetration Testing Techniques")
}

func TestListPostsFiltersByAuthor(t *testing.T) {
	h := NewBlogHandler(blogService(liveFetcher()), authors, "https://vulninsights.com")

	rec := get(t, h.ListPosts, "/blogs?author=HET")

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "Bypassing 403 Pages")
	assert.NotContains(t, body, "Hunting with Sigma Rules")
	assert.Contains(t, body, "All (2)")
	assert.Contains(t, body, "Kaif (1)")
}

func TestListPostsSearchMiss(t *testing.T) {
	h := NewBlogHandler(blogService(liveFetcher()), authors, "https://vulninsights.com")

	rec := get(t, h.ListPosts, "/blogs?q=kubernetes")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No articles found")
}

func TestListPostsBothFeedsFail(t *testing.T) {
	h := NewBlogHandler(blogService(&stubFetcher{err: errors.New("timeout")}), authors, "https://vulninsights.com")

	rec := get(t, h.ListPosts, "/blogs")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Showing 4 of 4 articles")
	assert.Contains(t, rec.Body.String(), "Showing sample posts")
}

func showPost(t *testing.T, h *BlogHandler, slug string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /blogs/{slug}", h.ShowPost)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blogs/"+slug, nil))
	return rec
}

func TestShowPost(t *testing.T) {
	h := NewBlogHandler(blogService(liveFetcher()), authors, "https://vulninsights.com/")

	rec := showPost(t, h, "hunting-with-sigma-rules")

	body := rec.Body.String()
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, `<h2 class="blog-h2">Intro</h2>`)
	assert.NotContains(t, body, "alert(1)")
	assert.Contains(t, body, `value="https://vulninsights.com/blogs/hunting-with-sigma-rules"`)
	assert.Contains(t, body, "1 min read")
}

func TestShowPostByLinkFragment(t *testing.T) {
	h := NewBlogHandler(blogService(liveFetcher()), authors, "https://vulninsights.com")

	rec := showPost(t, h, "bypassing-403-pages-1a2b3c")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bypassing 403 Pages")
}

func TestShowPostNotFound(t *testing.T) {
	h := NewBlogHandler(blogService(liveFetcher()), authors, "https://vulninsights.com")

	rec := showPost(t, h, "no-such-post")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Blog Post Not Found")
}

func TestShowPostUnknownWordsAreNotFound(t *testing.T) {
	live := NewBlogHandler(blogService(liveFetcher()), authors, "https://vulninsights.com")
	for _, slug := range []string{"medium", "https", "com", "e", "hettt", "9f8e7d", "hunting"} {
		rec := showPost(t, live, slug)
		assert.Equal(t, http.StatusNotFound, rec.Code, slug)
	}

	placeholders := NewBlogHandler(blogService(&stubFetcher{err: errors.New("down")}), authors, "https://vulninsights.com")
	for _, slug := range []string{"hettt", "skaif009", "medium"} {
		rec := showPost(t, placeholders, slug)
		assert.Equal(t, http.StatusNotFound, rec.Code, slug)
	}
}

func TestCollidingPostStaysReachable(t *testing.T) {
	f := &stubFetcher{feeds: []feed.AuthorFeed{
		{Author: kaif, Feed: &feed.RawFeed{Items: []feed.RawItem{{
			Title:   "Recon Notes",
			Link:    "https://medium.com/@SKaif009/recon-notes-aa11",
			GUID:    "https://medium.com/p/aa11",
			PubDate: "2024-10-01 08:00:00",
			Content: "<p>Kaif recon body.</p>",
		}}}},
		{Author: het, Feed: &feed.RawFeed{Items: []feed.RawItem{{
			Title:   "Recon notes!",
			Link:    "https://medium.com/@hettt/recon-notes-bb22",
			GUID:    "https://medium.com/p/bb22",
			PubDate: "2024-12-01 08:00:00",
			Content: "<p>Het recon body.</p>",
		}}}},
	}}
	h := NewBlogHandler(blogService(f), authors, "https://vulninsights.com")

	list := get(t, h.ListPosts, "/blogs")
	body := list.Body.String()
	assert.Contains(t, body, `href="/blogs/recon-notes"`)
	assert.Contains(t, body, `href="/blogs/https:%2F%2Fmedium.com%2Fp%2Faa11"`)

	rec := showPost(t, h, "recon-notes")
	assert.Contains(t, rec.Body.String(), "Het recon body.")

	rec = showPost(t, h, "https:%2F%2Fmedium.com%2Fp%2Faa11")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kaif recon body.")
}

func TestToolsPage(t *testing.T) {
	h := NewToolsHandler(service.NewToolsService(&stubRepos{repos: []model.Repo{
		{Name: "Flash_Crawler", Description: "BFS web crawler", StargazersCount: 15, Language: "Python"},
		{Name: "HashDecoder", Description: "Crack hashes", StargazersCount: 18},
		{Name: "dotfiles", Description: "vim config"},
	}}), "SKaif009")

	rec := get(t, h.ToolsPage, "/tools?category=crypto")

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "HashDecoder")
	assert.NotContains(t, body, "Flash_Crawler")
	assert.NotContains(t, body, "dotfiles")
	assert.Contains(t, body, ">33<")
}

func TestToolsPageFallback(t *testing.T) {
	h := NewToolsHandler(service.NewToolsService(&stubRepos{err: errors.New("403 rate limited")}), "SKaif009")

	rec := get(t, h.ToolsPage, "/tools")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ForbiddenHack")
	assert.Contains(t, rec.Body.String(), "curated selection")
}

func TestAboutPage(t *testing.T) {
	content, err := fs.Sub(vulninsights.ContentFS, "content")
	require.NoError(t, err)
	team, err := service.NewTeamService(content)
	require.NoError(t, err)

	rec := get(t, NewAboutHandler(team).AboutPage, "/about")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Het Patel")
	assert.Contains(t, rec.Body.String(), "GCIH Certified")
}

func TestNotFoundPage(t *testing.T) {
	h := NewHomeHandler(blogService(liveFetcher()), service.NewTipsService(), authors)

	rec := get(t, h.NotFoundPage, "/wp-admin")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page Not Found")
}

func TestRobots(t *testing.T) {
	h := NewSEOHandler(blogService(liveFetcher()), "https://vulninsights.com/")

	rec := get(t, h.Robots, "/robots.txt")

	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Sitemap: https://vulninsights.com/sitemap.xml")
}

func TestSitemap(t *testing.T) {
	h := NewSEOHandler(blogService(liveFetcher()), "https://vulninsights.com")

	rec := get(t, h.Sitemap, "/sitemap.xml")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml; charset=utf-8", rec.Header().Get("Content-Type"))

	var sm model.Sitemap
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &sm))
	locs := make([]string, 0, len(sm.URLs))
	for _, u := range sm.URLs {
		locs = append(locs, u.Loc)
	}
	assert.Contains(t, locs, "https://vulninsights.com/tools")
	assert.Contains(t, locs, "https://vulninsights.com/blogs/bypassing-403-pages")
	assert.Contains(t, locs, "https://vulninsights.com/blogs/hunting-with-sigma-rules")
}

type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset by peer")
}

func TestSitemapWriteFailureIsLogged(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	h := NewSEOHandler(blogService(liveFetcher()), "https://vulninsights.com")
	req := httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	req = req.WithContext(ctxkeys.WithRequestID(req.Context(), "req-123"))

	h.Sitemap(brokenWriter{httptest.NewRecorder()}, req)

	assert.Contains(t, logs.String(), "sitemap write failed")
	assert.Contains(t, logs.String(), "request_id=req-123")
	assert.Contains(t, logs.String(), "connection reset by peer")
}
