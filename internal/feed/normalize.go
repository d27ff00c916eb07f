package feed

import (
	"html"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/patelhettt/vulninsights/internal/model"
)

// DefaultDescriptionLength is the excerpt budget used by the blog listing.
const DefaultDescriptionLength = 200

var (
	stripPolicy = func() *bluemonday.Policy {
		p := bluemonday.StrictPolicy()
		// "<h3>Title</h3><p>Body" must not glue into "TitleBody"
		p.AddSpaceWhenStrippingTag(true)
		return p
	}()
	whitespace = regexp.MustCompile(`\s+`)
)

// dateLayouts are tried in order when parsing a feed pubDate.
var dateLayouts = []string{
	time.DateTime, // rss2json
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	time.DateOnly,
}

// Normalizer maps raw feed items to blog posts.
type Normalizer struct {
	DescriptionLength int
}

func NewNormalizer(descriptionLength int) Normalizer {
	if descriptionLength <= 0 {
		descriptionLength = DefaultDescriptionLength
	}
	return Normalizer{DescriptionLength: descriptionLength}
}

// Normalize converts one item. The author label comes from the fetch that
// produced the item, never from the item itself.
func (n Normalizer) Normalize(author model.Author, item RawItem) *model.BlogPost {
	categories := item.Categories
	if categories == nil {
		categories = []string{}
	}

	content := item.Content
	if content == "" {
		content = item.Description
	}

	description := StripHTML(item.Description)
	if description == "" {
		description = StripHTML(item.Content)
	}

	title := strings.TrimSpace(item.Title)

	return &model.BlogPost{
		Title:       title,
		Slug:        Slugify(title),
		Link:        item.Link,
		PubDate:     item.PubDate,
		PublishedAt: ParseDate(item.PubDate),
		Description: Truncate(description, n.DescriptionLength),
		Content:     content,
		Author:      author,
		Categories:  categories,
		Thumbnail:   item.Thumbnail,
		GUID:        item.GUID,
	}
}

// Aggregate normalizes every feed, concatenates them in author order and sorts
// newest first. The sort is stable, so equal dates keep insertion order.
func (n Normalizer) Aggregate(feeds []AuthorFeed) []*model.BlogPost {
	total := 0
	for _, f := range feeds {
		if f.Feed != nil {
			total += len(f.Feed.Items)
		}
	}

	posts := make([]*model.BlogPost, 0, total)
	for _, f := range feeds {
		if f.Feed == nil {
			continue
		}
		for _, item := range f.Feed.Items {
			posts = append(posts, n.Normalize(f.Author, item))
		}
	}

	SortByDate(posts)
	return posts
}

// SortByDate orders posts newest first. Posts without a parseable date sink to the end.
func SortByDate(posts []*model.BlogPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
}

// StripHTML removes all markup and returns plain text with collapsed whitespace.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	text := stripPolicy.Sanitize(s)
	text = html.UnescapeString(text)
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Truncate shortens s to at most n runes and appends "..." when it cut something.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}

// ParseDate parses a feed date. The zero time means "unknown".
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
