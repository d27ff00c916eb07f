package feed

import (
	"strings"

	"github.com/patelhettt/vulninsights/internal/model"
)

// AllAuthors is the author tab that disables author filtering.
const AllAuthors = "all"

// Query is the blog listing filter: an author tab and a free-text search term.
type Query struct {
	Author string
	Term   string
}

// Active reports whether the query filters anything.
func (q Query) Active() bool {
	return q.author() != "" || strings.TrimSpace(q.Term) != ""
}

func (q Query) author() string {
	a := strings.ToLower(strings.TrimSpace(q.Author))
	if a == AllAuthors {
		return ""
	}
	return a
}

// Filter applies the author tab, then a case-insensitive substring match of
// the term against title, description and categories. The input order is kept.
func Filter(posts []*model.BlogPost, q Query) []*model.BlogPost {
	author := q.author()
	term := strings.ToLower(strings.TrimSpace(q.Term))

	filtered := make([]*model.BlogPost, 0, len(posts))
	for _, post := range posts {
		if author != "" && post.Author.Key() != author {
			continue
		}
		if term != "" && !matchesTerm(post, term) {
			continue
		}
		filtered = append(filtered, post)
	}
	return filtered
}

func matchesTerm(post *model.BlogPost, term string) bool {
	if strings.Contains(strings.ToLower(post.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(post.Description), term) {
		return true
	}
	for _, category := range post.Categories {
		if strings.Contains(strings.ToLower(category), term) {
			return true
		}
	}
	return false
}

// Latest returns at most n posts from the head of an already sorted list.
func Latest(posts []*model.BlogPost, n int) []*model.BlogPost {
	if n < 0 || len(posts) <= n {
		return posts
	}
	return posts[:n]
}

// CountByAuthor returns the number of posts per author key.
func CountByAuthor(posts []*model.BlogPost) map[string]int {
	counts := make(map[string]int)
	for _, post := range posts {
		counts[post.Author.Key()]++
	}
	return counts
}
