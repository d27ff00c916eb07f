package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/patelhettt/vulninsights/internal/model"
)

// ErrBridgeStatus is returned when the bridge answers with a non-2xx status or
// a JSON envelope whose status is not "ok".
var ErrBridgeStatus = errors.New("feed bridge error")

// maxBridgeBody caps how much of a bridge response is decoded.
const maxBridgeBody = 8 << 20

// BridgeSource reads Medium feeds through an rss2json compatible bridge.
type BridgeSource struct {
	baseURL string
	client  *http.Client
}

func NewBridgeSource(baseURL string, client *http.Client) *BridgeSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &BridgeSource{
		baseURL: baseURL,
		client:  client,
	}
}

type bridgeEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Feed    struct {
		Title string `json:"title"`
		Image string `json:"image"`
	} `json:"feed"`
	Items []bridgeItem `json:"items"`
}

type bridgeItem struct {
	Title       string   `json:"title"`
	PubDate     string   `json:"pubDate"`
	Link        string   `json:"link"`
	GUID        string   `json:"guid"`
	Author      string   `json:"author"`
	Thumbnail   string   `json:"thumbnail"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Categories  []string `json:"categories"`
}

func (s *BridgeSource) Fetch(ctx context.Context, author model.Author) (*RawFeed, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid bridge url: %w", err)
	}
	q := u.Query()
	q.Set("rss_url", author.FeedURL())
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build bridge request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bridge request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrBridgeStatus, resp.Status)
	}

	var env bridgeEnvelope
	err = json.NewDecoder(io.LimitReader(resp.Body, maxBridgeBody)).Decode(&env)
	if err != nil {
		return nil, fmt.Errorf("failed to decode bridge response: %w", err)
	}
	if env.Status != "" && env.Status != "ok" {
		return nil, fmt.Errorf("%w: %s", ErrBridgeStatus, env.Message)
	}

	feed := &RawFeed{
		Image: env.Feed.Image,
		Items: make([]RawItem, 0, len(env.Items)),
	}
	for _, item := range env.Items {
		feed.Items = append(feed.Items, RawItem{
			Title:       item.Title,
			Link:        item.Link,
			PubDate:     item.PubDate,
			Description: item.Description,
			Content:     item.Content,
			Categories:  item.Categories,
			Thumbnail:   item.Thumbnail,
			GUID:        item.GUID,
		})
	}

	return feed, nil
}
