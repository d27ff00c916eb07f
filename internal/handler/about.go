package handler

import (
	"net/http"

	"github.com/patelhettt/vulninsights/internal/service"
	"github.com/patelhettt/vulninsights/internal/ui"
	"github.com/patelhettt/vulninsights/internal/ui/pages"
)

type AboutHandler struct {
	teamService *service.TeamService
}

func NewAboutHandler(teamService *service.TeamService) *AboutHandler {
	return &AboutHandler{teamService: teamService}
}

func (h *AboutHandler) AboutPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.About(pages.AboutData{
		Members: pages.NewMembers(h.teamService.Members()),
		Mission: h.teamService.Mission(),
		Values:  h.teamService.Values(),
	}))
}
