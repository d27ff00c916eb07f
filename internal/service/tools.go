package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/patelhettt/vulninsights/internal/github"
	"github.com/patelhettt/vulninsights/internal/metrics"
	"github.com/patelhettt/vulninsights/internal/model"
)

// RepoLister lists a GitHub user's repositories.
type RepoLister interface {
	ListRepos(ctx context.Context) ([]model.Repo, error)
}

// ToolsListing is what the tools page shows for one query.
type ToolsListing struct {
	Category   model.ToolCategory
	Term       string
	Tools      []model.Repo
	TotalTools int
	TotalStars int
	TotalForks int
	Fallback   bool
}

type ToolsService struct {
	repos   RepoLister
	metrics *metrics.Metrics
}

func NewToolsService(repos RepoLister) *ToolsService {
	return &ToolsService{repos: repos}
}

// Instrument records GitHub fetches on m.
func (s *ToolsService) Instrument(m *metrics.Metrics) *ToolsService {
	s.metrics = m
	return s
}

// Tools returns the security tools among the user's repositories, or the
// fallback set when GitHub cannot be reached.
func (s *ToolsService) Tools(ctx context.Context) ([]model.Repo, bool) {
	start := time.Now()
	repos, err := s.repos.ListRepos(ctx)
	s.metrics.ObserveUpstream(metrics.UpstreamGitHub, err, time.Since(start))
	if err != nil {
		slog.Warn("github fetch failed, serving fallback tools", "error", err)
		return github.FallbackRepos(), true
	}
	return github.SecurityRepos(repos), false
}

// Search filters the tools by term and category. Stats cover all tools.
func (s *ToolsService) Search(ctx context.Context, term, category string) *ToolsListing {
	tools, fallback := s.Tools(ctx)
	return &ToolsListing{
		Category:   github.LookupCategory(category),
		Term:       term,
		Tools:      github.FilterRepos(tools, term, category),
		TotalTools: len(tools),
		TotalStars: github.TotalStars(tools),
		TotalForks: github.TotalForks(tools),
		Fallback:   fallback,
	}
}
