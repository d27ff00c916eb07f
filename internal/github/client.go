// Package github lists the team's public repositories and picks out the
// security tools among them.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/patelhettt/vulninsights/internal/model"
)

const (
	DefaultAPIURL = "https://api.github.com"
	maxReposBody  = 4 << 20
)

var ErrUnexpectedStatus = errors.New("github api returned unexpected status")

// Client is a minimal GitHub REST client for listing a user's repositories.
type Client struct {
	baseURL    string
	user       string
	httpClient *http.Client
}

// NewClient builds a client for the given user. An empty token keeps requests
// unauthenticated; a token switches to an oauth2 transport.
func NewClient(baseURL, user, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}

	httpClient := &http.Client{Timeout: timeout}
	if token != "" {
		httpClient = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
		httpClient.Timeout = timeout
	}

	return &Client{
		baseURL:    baseURL,
		user:       user,
		httpClient: httpClient,
	}
}

func (c *Client) User() string {
	return c.user
}

// ListRepos returns up to 100 of the user's repositories, most recently updated first.
func (c *Client) ListRepos(ctx context.Context) ([]model.Repo, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=100", c.baseURL, url.PathEscape(c.user))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build github request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", "VulnInsights")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s (rate limit remaining %s)", ErrUnexpectedStatus, resp.Status, resp.Header.Get("X-RateLimit-Remaining"))
	}

	var repos []model.Repo
	err = json.NewDecoder(io.LimitReader(resp.Body, maxReposBody)).Decode(&repos)
	if err != nil {
		return nil, fmt.Errorf("failed to decode github response: %w", err)
	}

	for i := range repos {
		if repos[i].Topics == nil {
			repos[i].Topics = []string{}
		}
	}

	return repos, nil
}
