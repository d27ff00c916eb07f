package app

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/patelhettt/vulninsights"
	"github.com/patelhettt/vulninsights/internal/config"
	"github.com/patelhettt/vulninsights/internal/feed"
	"github.com/patelhettt/vulninsights/internal/github"
	"github.com/patelhettt/vulninsights/internal/metrics"
	"github.com/patelhettt/vulninsights/internal/middleware"
	"github.com/patelhettt/vulninsights/internal/service"
)

type App struct {
	Cfg          *config.Config
	Fetcher      *feed.Fetcher
	RateLimiter  *middleware.RateLimiter
	Metrics      *metrics.Metrics
	BlogService  *service.BlogService
	ToolsService *service.ToolsService
	TeamService  *service.TeamService
	TipsService  *service.TipsService
}

func New(cfg *config.Config) (*App, error) {
	authors, err := feed.ParseAuthors(cfg.FeedAuthors)
	if err != nil {
		return nil, fmt.Errorf("invalid FEED_AUTHORS: %w", err)
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	// Feed source
	var source feed.Source
	switch cfg.FeedSource {
	case "rss":
		source = feed.NewRSSSource(feed.MediumFeedBase, httpClient)
	default:
		source = feed.NewBridgeSource(cfg.FeedBridgeURL, httpClient)
	}
	fetcher := feed.NewFetcher(source, authors)

	// Static content
	content, err := fs.Sub(vulninsights.ContentFS, "content")
	if err != nil {
		return nil, fmt.Errorf("failed to open content: %w", err)
	}
	teamService, err := service.NewTeamService(content)
	if err != nil {
		return nil, fmt.Errorf("failed to load team: %w", err)
	}

	// Services
	m := metrics.New()
	blogService := service.NewBlogService(fetcher, feed.NewNormalizer(cfg.DescriptionLength)).Instrument(m)
	githubClient := github.NewClient(cfg.GitHubAPIURL, cfg.GitHubUser, cfg.GitHubToken, cfg.HTTPTimeout)
	toolsService := service.NewToolsService(githubClient).Instrument(m)

	return &App{
		Cfg:          cfg,
		Fetcher:      fetcher,
		RateLimiter:  middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow).TrustProxy(cfg.TrustProxy),
		Metrics:      m,
		BlogService:  blogService,
		ToolsService: toolsService,
		TeamService:  teamService,
		TipsService:  service.NewTipsService(),
	}, nil
}

func (a *App) Close() error {
	if a.RateLimiter != nil {
		a.RateLimiter.Stop()
	}
	return nil
}
