package model

import (
	"net/url"
	"strings"
	"time"
)

// Author is one of the fixed Medium accounts the site aggregates.
// Name is the display label shown on posts, Handle the Medium handle without "@".
type Author struct {
	Name   string
	Handle string
}

// Key is the lowercase tab identifier used by the author filter ("het", "kaif").
func (a Author) Key() string {
	return strings.ToLower(a.Name)
}

// ProfileURL links to the author's Medium profile.
func (a Author) ProfileURL() string {
	return "https://medium.com/@" + a.Handle
}

// FeedURL is the author's Medium RSS feed.
func (a Author) FeedURL() string {
	return "https://medium.com/feed/@" + a.Handle
}

// BlogPost is a normalized feed item. It only lives for the duration of one request.
type BlogPost struct {
	Title       string
	Slug        string
	Link        string
	PubDate     string
	PublishedAt time.Time
	Description string
	Content     string
	Author      Author
	Categories  []string
	Thumbnail   string
	GUID        string

	// Ref is the reader URL key that resolves to this post. It is the slug,
	// or the guid when the slug is empty or owned by a newer post. Set when
	// the post is indexed.
	Ref string
}

// HasDate reports whether the feed date could be parsed.
func (p *BlogPost) HasDate() bool {
	return !p.PublishedAt.IsZero()
}

// ReaderPath is the on-site URL of the post, or its Medium link when no key
// can resolve it.
func (p *BlogPost) ReaderPath() string {
	key := p.Ref
	if key == "" {
		key = p.Slug
	}
	if key == "" {
		key = p.GUID
	}
	if key == "" {
		return p.Link
	}
	return "/blogs/" + url.PathEscape(key)
}
