package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/patelhettt/vulninsights/internal/model"
)

// MediumFeedBase is where Medium serves per-author RSS feeds.
const MediumFeedBase = "https://medium.com/feed/@"

// RSSSource reads the Medium RSS feeds directly, without the JSON bridge.
type RSSSource struct {
	baseURL string
	parser  *gofeed.Parser
}

func NewRSSSource(baseURL string, client *http.Client) *RSSSource {
	if baseURL == "" {
		baseURL = MediumFeedBase
	}
	parser := gofeed.NewParser()
	parser.UserAgent = "VulnInsights/1.0"
	if client != nil {
		parser.Client = client
	}
	return &RSSSource{
		baseURL: baseURL,
		parser:  parser,
	}
}

func (s *RSSSource) Fetch(ctx context.Context, author model.Author) (*RawFeed, error) {
	parsed, err := s.parser.ParseURLWithContext(s.baseURL+author.Handle, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	feed := &RawFeed{
		Items: make([]RawItem, 0, len(parsed.Items)),
	}
	if parsed.Image != nil {
		feed.Image = parsed.Image.URL
	}

	for _, entry := range parsed.Items {
		item := RawItem{
			Title:       entry.Title,
			Link:        entry.Link,
			PubDate:     entry.Published,
			Description: entry.Description,
			Content:     entry.Content,
			Categories:  entry.Categories,
			GUID:        entry.GUID,
		}
		// Same layout the bridge uses, so both sources sort and display alike
		if entry.PublishedParsed != nil {
			item.PubDate = entry.PublishedParsed.UTC().Format(bridgeDateLayout)
		}
		if entry.Image != nil {
			item.Thumbnail = entry.Image.URL
		}
		if item.Link == "" && strings.HasPrefix(entry.GUID, "http") {
			item.Link = entry.GUID
		}
		feed.Items = append(feed.Items, item)
	}

	return feed, nil
}

// bridgeDateLayout is the pubDate format rss2json emits (always UTC).
const bridgeDateLayout = time.DateTime
