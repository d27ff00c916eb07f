package pages

import (
	"html/template"
	"strings"
	"time"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/patelhettt/vulninsights/internal/feed"
	"github.com/patelhettt/vulninsights/internal/github"
	"github.com/patelhettt/vulninsights/internal/model"
)

var titleCaser = cases.Title(language.English)

var funcs = template.FuncMap{
	"cn":        twmerge.Merge,
	"navClass":  navClass,
	"tabClass":  tabClass,
	"postDate":  postDate,
	"isoDate":   isoDate,
	"readTime":  feed.ReadTime,
	"truncate":  feed.Truncate,
	"titleCase": titleCase,
	"langColor": github.LanguageColor,
	"shortDate": func(t time.Time) string { return t.Format("Jan 2, 2006") },
	"initial":   initial,
}

// navClass styles a navigation link, highlighting the section of the current path.
func navClass(current, href string) string {
	base := "px-3 py-2 text-sm font-medium text-slate-300 hover:text-cyan-400 transition-colors"
	active := current == href || (href != "/" && strings.HasPrefix(current, href+"/"))
	if active {
		return twmerge.Merge(base, "text-cyan-400 border-b-2 border-cyan-400")
	}
	return base
}

// tabClass styles a filter tab.
func tabClass(selected bool) string {
	base := "rounded-full border border-slate-700 px-4 py-1.5 text-sm text-slate-300 hover:border-cyan-500"
	if selected {
		return twmerge.Merge(base, "border-cyan-500 bg-cyan-600 text-white")
	}
	return base
}

// postDate formats the publication date, or echoes the raw feed date when it
// could not be parsed.
func postDate(p *model.BlogPost) string {
	if !p.HasDate() {
		return p.PubDate
	}
	return p.PublishedAt.Format("January 2, 2006")
}

func isoDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// titleCase turns slug-ish tags like "web-security" into "Web Security".
func titleCase(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "-", " "))
}

// initial is the uppercased first letter of a name, used for avatar placeholders.
func initial(name string) string {
	for _, r := range strings.TrimSpace(name) {
		return strings.ToUpper(string(r))
	}
	return "?"
}
