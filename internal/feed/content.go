package feed

import (
	"fmt"
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html/atom"
)

const wordsPerMinute = 200

// contentPolicy keeps the markup Medium emits for articles and drops scripts,
// styles, iframes and event handlers.
var contentPolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("figure", "figcaption")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}()

// elementClasses maps article elements to the reader stylesheet classes.
var elementClasses = []struct {
	selector string
	class    string
}{
	{"img", "blog-image"},
	{"h1", "blog-h1"},
	{"h2", "blog-h2"},
	{"h3", "blog-h3"},
	{"p", "blog-paragraph"},
	{"blockquote", "blog-quote"},
	{"pre", "blog-code"},
	{"code", "blog-inline-code"},
}

// RenderContent sanitizes an article body and decorates it for the reader.
func RenderContent(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}

	clean := contentPolicy.Sanitize(raw)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(clean))
	if err != nil {
		return "", fmt.Errorf("parse article content: %w", err)
	}

	doc.Find("figure").Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			n.Data = "div"
			n.DataAtom = atom.Div
		}
		s.AddClass("figure")
	})

	for _, ec := range elementClasses {
		doc.Find(ec.selector).AddClass(ec.class)
	}
	doc.Find("img").SetAttr("loading", "lazy")

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("render article content: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// ReadTime estimates reading minutes at 200 words per minute, at least one.
func ReadTime(content string) int {
	words := len(strings.Fields(StripHTML(content)))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
