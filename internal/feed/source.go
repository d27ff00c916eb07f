// Package feed fetches the authors' Medium feeds and turns them into blog posts:
// normalization, newest-first aggregation, filtering and slug lookup.
package feed

import (
	"context"
	"fmt"
	"strings"

	"github.com/patelhettt/vulninsights/internal/model"
)

// RawItem is a feed entry before normalization. Every Source produces this shape.
type RawItem struct {
	Title       string
	Link        string
	PubDate     string
	Description string
	Content     string
	Categories  []string
	Thumbnail   string
	GUID        string
}

// RawFeed is one author's feed as returned by a Source.
type RawFeed struct {
	Image string
	Items []RawItem
}

// Source fetches the feed of a single author.
type Source interface {
	Fetch(ctx context.Context, author model.Author) (*RawFeed, error)
}

// ParseAuthors parses a "Name=handle,Name=handle" list. Order is preserved and
// decides the insertion order used to break date ties.
func ParseAuthors(list string) ([]model.Author, error) {
	var authors []model.Author
	for _, pair := range strings.Split(list, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, handle, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
		if !ok || name == "" || handle == "" {
			return nil, fmt.Errorf("invalid author %q, want Name=handle", pair)
		}
		authors = append(authors, model.Author{Name: name, Handle: handle})
	}
	if len(authors) == 0 {
		return nil, fmt.Errorf("no authors configured")
	}
	return authors, nil
}
