package pages

import (
	"html/template"

	"github.com/a-h/templ"

	"github.com/patelhettt/vulninsights/internal/feed"
	"github.com/patelhettt/vulninsights/internal/model"
)

// HomeData feeds the landing page.
type HomeData struct {
	Posts    []*model.BlogPost
	Authors  []model.Author
	Tip      string
	Fallback bool
}

// AuthorTab is one entry of the author filter on the blogs page.
type AuthorTab struct {
	Key      string
	Label    string
	Count    int
	Selected bool
}

// BlogsData feeds the blog listing.
type BlogsData struct {
	Posts    []*model.BlogPost
	Query    feed.Query
	Tabs     []AuthorTab
	Total    int
	Fallback bool
}

// PostData feeds the reader.
type PostData struct {
	Post     *model.BlogPost
	Content  template.HTML // sanitized by feed.RenderContent
	ReadTime int
	ShareURL string
}

func Home(data HomeData) templ.Component {
	return page("home", Meta{
		Description: "Cybersecurity research, penetration testing techniques and vulnerability write-ups from the VulnInsights team.",
		Path:        "/",
	}, data)
}

func BlogList(data BlogsData) templ.Component {
	return page("blogs", Meta{
		Title:       "Blogs",
		Description: "All VulnInsights articles on penetration testing, threat research and vulnerability analysis.",
		Path:        "/blogs",
	}, data)
}

func BlogPost(data PostData) templ.Component {
	post := data.Post
	description := feed.Truncate(post.Description, 160)

	return page("post", Meta{
		Title:       post.Title,
		Description: description,
		Path:        post.ReaderPath(),
		Type:        "article",
		Image:       post.Thumbnail,
		Author:      post.Author.Name,
		Published:   post.PublishedAt,
		JSONLD:      blogPostingLD(post, description, data.ShareURL),
	}, data)
}

// blogPostingLD is the schema.org BlogPosting for a post.
func blogPostingLD(post *model.BlogPost, description, url string) map[string]any {
	ld := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    post.Title,
		"description": description,
		"url":         url,
		"author": map[string]any{
			"@type": "Person",
			"name":  post.Author.Name,
			"url":   post.Author.ProfileURL(),
		},
		"mainEntityOfPage": post.Link,
	}
	if post.HasDate() {
		ld["datePublished"] = isoDate(post.PublishedAt)
	}
	if post.Thumbnail != "" {
		ld["image"] = post.Thumbnail
	}
	if len(post.Categories) > 0 {
		ld["keywords"] = post.Categories
	}
	return ld
}
