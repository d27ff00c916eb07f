package handler

import (
	"net/http"

	"github.com/patelhettt/vulninsights/internal/model"
	"github.com/patelhettt/vulninsights/internal/service"
	"github.com/patelhettt/vulninsights/internal/ui"
	"github.com/patelhettt/vulninsights/internal/ui/pages"
)

type HomeHandler struct {
	blogService *service.BlogService
	tipsService *service.TipsService
	authors     []model.Author
}

func NewHomeHandler(blogService *service.BlogService, tipsService *service.TipsService, authors []model.Author) *HomeHandler {
	return &HomeHandler{
		blogService: blogService,
		tipsService: tipsService,
		authors:     authors,
	}
}

func (h *HomeHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	posts, fallback := h.blogService.Latest(r.Context(), service.HomePostCount)

	ui.Render(w, r, pages.Home(pages.HomeData{
		Posts:    posts,
		Authors:  h.authors,
		Tip:      h.tipsService.Random(),
		Fallback: fallback,
	}))
}

func (h *HomeHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound())
}
