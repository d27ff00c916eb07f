package handler

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/patelhettt/vulninsights/internal/feed"
	"github.com/patelhettt/vulninsights/internal/model"
	"github.com/patelhettt/vulninsights/internal/service"
	"github.com/patelhettt/vulninsights/internal/ui"
	"github.com/patelhettt/vulninsights/internal/ui/pages"
	"github.com/patelhettt/vulninsights/internal/validation"
)

type BlogHandler struct {
	blogService *service.BlogService
	authors     []model.Author
	baseURL     string
}

func NewBlogHandler(blogService *service.BlogService, authors []model.Author, baseURL string) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
		authors:     authors,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
	}
}

func (h *BlogHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := feed.Query{
		Author: validation.FilterKey(r.URL.Query().Get("author")),
		Term:   validation.SearchTerm(r.URL.Query().Get("q")),
	}

	listing := h.blogService.Search(r.Context(), q)

	ui.Render(w, r, pages.BlogList(pages.BlogsData{
		Posts:    listing.Posts,
		Query:    q,
		Tabs:     h.authorTabs(q.Author, listing),
		Total:    listing.Total,
		Fallback: listing.Fallback,
	}))
}

func (h *BlogHandler) authorTabs(selected string, listing *service.BlogListing) []pages.AuthorTab {
	if selected == "" {
		selected = feed.AllAuthors
	}

	tabs := []pages.AuthorTab{{
		Key:      feed.AllAuthors,
		Label:    "All",
		Count:    listing.Total,
		Selected: selected == feed.AllAuthors,
	}}
	for _, a := range h.authors {
		tabs = append(tabs, pages.AuthorTab{
			Key:      a.Key(),
			Label:    a.Name,
			Count:    listing.Counts[a.Key()],
			Selected: selected == a.Key(),
		})
	}
	return tabs
}

func (h *BlogHandler) ShowPost(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	post, err := h.blogService.Post(r.Context(), slug)
	if errors.Is(err, feed.ErrPostNotFound) {
		ui.RenderStatus(w, r, http.StatusNotFound, pages.PostNotFound(slug))
		return
	}
	if err != nil {
		slog.Error("blog post lookup failed", "slug", slug, "error", err)
		http.Error(w, "Failed to load blog post", http.StatusInternalServerError)
		return
	}

	content, err := feed.RenderContent(post.Content)
	if err != nil {
		slog.Warn("post content could not be decorated, showing plain text", "slug", post.Slug, "error", err)
		content = "<p>" + template.HTMLEscapeString(feed.StripHTML(post.Content)) + "</p>"
	}

	ui.Render(w, r, pages.BlogPost(pages.PostData{
		Post:     post,
		Content:  template.HTML(content),
		ReadTime: feed.ReadTime(post.Content),
		ShareURL: h.baseURL + post.ReaderPath(),
	}))
}
