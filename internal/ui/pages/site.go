package pages

import (
	"html/template"

	"github.com/a-h/templ"

	"github.com/patelhettt/vulninsights/internal/github"
	"github.com/patelhettt/vulninsights/internal/model"
)

// Member is a team member with the rendered bio marked safe.
type Member struct {
	*model.TeamMember
	Bio template.HTML
}

type AboutData struct {
	Members []Member
	Mission []model.Highlight
	Values  []model.Highlight
}

type ToolsData struct {
	Tools      []model.Repo
	Categories []model.ToolCategory
	Category   model.ToolCategory
	Term       string
	TotalTools int
	TotalStars int
	TotalForks int
	GitHubUser string
	Fallback   bool
}

// NewMembers wraps team members for rendering. Bios come from our own
// embedded markdown, so the HTML is trusted.
func NewMembers(members []*model.TeamMember) []Member {
	out := make([]Member, 0, len(members))
	for _, m := range members {
		out = append(out, Member{TeamMember: m, Bio: template.HTML(m.BioHTML)})
	}
	return out
}

func About(data AboutData) templ.Component {
	return page("about", Meta{
		Title:       "About",
		Description: "Meet the VulnInsights team: security researchers sharing vulnerability research and practical security insights.",
		Path:        "/about",
	}, data)
}

func Tools(data ToolsData) templ.Component {
	if data.Categories == nil {
		data.Categories = github.Categories
	}
	return page("tools", Meta{
		Title:       "Security Tools",
		Description: "Open source security tools built by the VulnInsights team.",
		Path:        "/tools",
	}, data)
}

func NotFound() templ.Component {
	return page("notfound", Meta{
		Title:       "Not Found",
		Description: "The page you are looking for does not exist.",
	}, nil)
}

// PostNotFound is the reader's miss state, linking back to the listing.
func PostNotFound(slug string) templ.Component {
	return page("notfound", Meta{
		Title:       "Blog Post Not Found",
		Description: "The requested blog post could not be found.",
	}, map[string]string{"Slug": slug})
}
