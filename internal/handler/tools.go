package handler

import (
	"net/http"

	"github.com/patelhettt/vulninsights/internal/service"
	"github.com/patelhettt/vulninsights/internal/ui"
	"github.com/patelhettt/vulninsights/internal/ui/pages"
	"github.com/patelhettt/vulninsights/internal/validation"
)

type ToolsHandler struct {
	toolsService *service.ToolsService
	githubUser   string
}

func NewToolsHandler(toolsService *service.ToolsService, githubUser string) *ToolsHandler {
	return &ToolsHandler{
		toolsService: toolsService,
		githubUser:   githubUser,
	}
}

func (h *ToolsHandler) ToolsPage(w http.ResponseWriter, r *http.Request) {
	category := validation.FilterKey(r.URL.Query().Get("category"))
	term := validation.SearchTerm(r.URL.Query().Get("q"))

	listing := h.toolsService.Search(r.Context(), term, category)

	ui.Render(w, r, pages.Tools(pages.ToolsData{
		Tools:      listing.Tools,
		Category:   listing.Category,
		Term:       listing.Term,
		TotalTools: listing.TotalTools,
		TotalStars: listing.TotalStars,
		TotalForks: listing.TotalForks,
		GitHubUser: h.githubUser,
		Fallback:   listing.Fallback,
	}))
}
