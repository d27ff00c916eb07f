package feed

import (
	"html"
	"time"

	"github.com/patelhettt/vulninsights/internal/model"
)

var (
	het  = model.Author{Name: "Het", Handle: "hettt"}
	kaif = model.Author{Name: "Kaif", Handle: "SKaif009"}
)

// PlaceholderPosts is the sample content served when the feeds cannot be
// fetched. Dates are relative to now, one day apart, newest first.
func PlaceholderPosts(now time.Time) []*model.BlogPost {
	day := 24 * time.Hour
	samples := []struct {
		title       string
		author      model.Author
		age         time.Duration
		description string
		categories  []string
	}{
		{
			title:       "Advanced Penetration Testing Techniques",
			author:      het,
			description: "Exploring cutting-edge methodologies for ethical hacking and vulnerability assessment in modern enterprise environments. This comprehensive guide covers advanced techniques used by security professionals...",
			categories:  []string{"Penetration Testing", "Security", "Ethical Hacking"},
		},
		{
			title:       "Zero-Day Vulnerabilities: Detection & Response",
			author:      kaif,
			age:         day,
			description: "A comprehensive guide to identifying, analyzing, and mitigating zero-day exploits before they compromise your infrastructure. Learn about the latest detection methods and response strategies...",
			categories:  []string{"Zero-Day", "Incident Response", "Threat Intelligence"},
		},
		{
			title:       "Web Application Security Best Practices",
			author:      het,
			age:         2 * day,
			description: "Essential security practices for modern web applications, covering OWASP Top 10, secure coding practices, and implementation strategies for robust application security...",
			categories:  []string{"Web Security", "OWASP", "Secure Coding"},
		},
		{
			title:       "Network Security Monitoring Strategies",
			author:      kaif,
			age:         3 * day,
			description: "Implementing effective network security monitoring to detect and respond to threats in real-time. Covers tools, techniques, and best practices for network defense...",
			categories:  []string{"Network Security", "Monitoring", "SOC"},
		},
	}

	posts := make([]*model.BlogPost, 0, len(samples))
	for _, s := range samples {
		published := now.Add(-s.age).UTC()
		slug := Slugify(s.title)
		posts = append(posts, &model.BlogPost{
			Title:       s.title,
			Slug:        slug,
			Link:        s.author.ProfileURL(),
			PubDate:     published.Format(time.RFC3339),
			PublishedAt: published,
			Description: s.description,
			Content:     "<p>" + html.EscapeString(s.description) + "</p>",
			Author:      s.author,
			Categories:  s.categories,
			GUID:        slug,
		})
	}
	return posts
}
