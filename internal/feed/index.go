package feed

import (
	"errors"
	"net/url"
	"path"
	"strings"

	"github.com/patelhettt/vulninsights/internal/model"
)

var ErrPostNotFound = errors.New("blog post not found")

// Collision records a post whose slug was already taken by a newer post.
type Collision struct {
	Slug    string
	Kept    *model.BlogPost
	Dropped *model.BlogPost
}

// Index resolves reader URLs to posts. It is built once per fetch from the
// sorted post list, so the newest post owns a contested slug.
type Index struct {
	posts      []*model.BlogPost
	bySlug     map[string]*model.BlogPost
	byGUID     map[string]*model.BlogPost
	collisions []Collision
}

func NewIndex(posts []*model.BlogPost) *Index {
	ix := &Index{
		posts:  posts,
		bySlug: make(map[string]*model.BlogPost, len(posts)),
		byGUID: make(map[string]*model.BlogPost, len(posts)),
	}

	for _, post := range posts {
		if post.GUID != "" {
			if _, ok := ix.byGUID[post.GUID]; !ok {
				ix.byGUID[post.GUID] = post
			}
		}
		if post.Slug == "" {
			post.Ref = fallbackRef(post)
			continue
		}
		if kept, ok := ix.bySlug[post.Slug]; ok {
			ix.collisions = append(ix.collisions, Collision{Slug: post.Slug, Kept: kept, Dropped: post})
			post.Ref = fallbackRef(post)
		} else {
			ix.bySlug[post.Slug] = post
			post.Ref = post.Slug
		}
	}

	return ix
}

// fallbackRef is the lookup key for a post that does not own a slug.
func fallbackRef(post *model.BlogPost) string {
	if post.GUID != "" {
		return post.GUID
	}
	return linkSegment(post.Link)
}

// linkSegment is the last path segment of a Medium article URL, which has the
// form /@handle/<slug>-<hexid>.
func linkSegment(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Path == "" {
		return ""
	}
	seg := path.Base(u.Path)
	if seg == "/" || seg == "." || strings.HasPrefix(seg, "@") {
		return ""
	}
	return seg
}

// matchesLink reports whether param names the article at link: the last path
// segment is param itself or param followed by Medium's hex id.
func matchesLink(link, param string) bool {
	seg := linkSegment(link)
	if seg == "" {
		return false
	}
	if seg == param {
		return true
	}
	id, ok := strings.CutPrefix(seg, param+"-")
	return ok && isHexID(id)
}

func isHexID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return false
		}
	}
	return true
}

// Lookup finds a post by slug, then by feed guid, then by the article segment
// of its Medium link. The link fallback only runs for well-formed slugs.
func (ix *Index) Lookup(param string) (*model.BlogPost, error) {
	if param == "" {
		return nil, ErrPostNotFound
	}
	if post, ok := ix.bySlug[param]; ok {
		return post, nil
	}
	if post, ok := ix.byGUID[param]; ok {
		return post, nil
	}
	if IsValidSlug(param) {
		for _, post := range ix.posts {
			if matchesLink(post.Link, param) {
				return post, nil
			}
		}
	}
	return nil, ErrPostNotFound
}

func (ix *Index) Posts() []*model.BlogPost {
	return ix.posts
}

func (ix *Index) Len() int {
	return len(ix.posts)
}

func (ix *Index) Collisions() []Collision {
	return ix.collisions
}
