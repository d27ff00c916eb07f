package github

import (
	"strings"

	"github.com/patelhettt/vulninsights/internal/model"
)

// AllCategories disables category filtering.
const AllCategories = "all"

// securityKeywords decide whether a repository is a security tool at all.
var securityKeywords = []string{
	"security", "hack", "pentest", "vulnerability", "exploit", "forensics",
	"malware", "crypto", "encryption", "decrypt", "crack", "brute",
	"scanner", "crawler", "spider", "recon", "enumeration", "audit",
	"firewall", "ids", "ips", "siem", "threat", "attack", "defense",
	"web", "network", "wireless", "mobile", "android", "ios",
	"reverse", "analysis", "debug", "disassembly", "decompile",
}

// Categories are the tabs of the tools page, in display order.
var Categories = []model.ToolCategory{
	{ID: AllCategories, Name: "All Tools"},
	{ID: "web", Name: "Web Security", Keywords: []string{"web", "crawler", "spider", "http", "https", "url"}},
	{ID: "network", Name: "Network Security", Keywords: []string{"network", "tcp", "udp", "port", "scan", "nmap"}},
	{ID: "forensics", Name: "Digital Forensics", Keywords: []string{"forensics", "memory", "disk", "analysis", "investigation"}},
	{ID: "malware", Name: "Malware Analysis", Keywords: []string{"malware", "virus", "trojan", "reverse", "analysis"}},
	{ID: "crypto", Name: "Cryptography", Keywords: []string{"crypto", "hash", "encrypt", "decrypt", "password"}},
	{ID: "database", Name: "Database Security", Keywords: []string{"database", "sql", "nosql", "injection", "query"}},
	{ID: "pentest", Name: "Penetration Testing", Keywords: []string{"pentest", "exploit", "vulnerability", "attack", "penetration"}},
}

// languageColors are the badge classes per primary language.
var languageColors = map[string]string{
	"Python":     "bg-blue-500",
	"JavaScript": "bg-yellow-500",
	"TypeScript": "bg-blue-600",
	"Go":         "bg-cyan-500",
	"Rust":       "bg-orange-500",
	"C++":        "bg-pink-500",
	"C":          "bg-gray-500",
	"Java":       "bg-red-500",
	"Shell":      "bg-green-500",
	"PHP":        "bg-purple-500",
}

// SecurityRepos drops private, archived and disabled repositories and keeps
// the ones whose name or description mentions a security keyword.
func SecurityRepos(repos []model.Repo) []model.Repo {
	out := make([]model.Repo, 0, len(repos))
	for _, repo := range repos {
		if repo.Private || repo.Archived || repo.Disabled {
			continue
		}
		text := strings.ToLower(repo.Name + " " + repo.Description)
		if containsAny(text, securityKeywords) {
			out = append(out, repo)
		}
	}
	return out
}

// FilterRepos applies the search term (name, description, topics) and then
// the category keywords (name, description and topics joined).
func FilterRepos(repos []model.Repo, term, category string) []model.Repo {
	term = strings.ToLower(strings.TrimSpace(term))
	keywords, filterCategory := categoryKeywords(category)

	out := make([]model.Repo, 0, len(repos))
	for _, repo := range repos {
		if term != "" && !matchesTerm(repo, term) {
			continue
		}
		if filterCategory {
			text := strings.ToLower(repo.Name + " " + repo.Description + " " + strings.Join(repo.Topics, " "))
			if !containsAny(text, keywords) {
				continue
			}
		}
		out = append(out, repo)
	}
	return out
}

// LookupCategory returns the category with the given id, defaulting to "all".
func LookupCategory(id string) model.ToolCategory {
	for _, c := range Categories {
		if c.ID == id {
			return c
		}
	}
	return Categories[0]
}

// TotalStars sums stargazers across repos.
func TotalStars(repos []model.Repo) int {
	total := 0
	for _, repo := range repos {
		total += repo.StargazersCount
	}
	return total
}

// TotalForks sums forks across repos.
func TotalForks(repos []model.Repo) int {
	total := 0
	for _, repo := range repos {
		total += repo.ForksCount
	}
	return total
}

// LanguageColor returns the badge class for a language.
func LanguageColor(language string) string {
	if c, ok := languageColors[language]; ok {
		return c
	}
	return "bg-gray-400"
}

func categoryKeywords(id string) ([]string, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" || id == AllCategories {
		return nil, false
	}
	for _, c := range Categories {
		if c.ID == id {
			return c.Keywords, true
		}
	}
	// Unknown categories match nothing
	return nil, true
}

func matchesTerm(repo model.Repo, term string) bool {
	if strings.Contains(strings.ToLower(repo.Name), term) ||
		strings.Contains(strings.ToLower(repo.Description), term) {
		return true
	}
	for _, topic := range repo.Topics {
		if strings.Contains(strings.ToLower(topic), term) {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
