package github

import (
	"time"

	"github.com/patelhettt/vulninsights/internal/model"
)

// FallbackRepos are shown when the GitHub API cannot be reached or rate limits us.
func FallbackRepos() []model.Repo {
	return []model.Repo{
		{
			ID:              1,
			Name:            "Flash_Crawler",
			FullName:        "SKaif009/Flash_Crawler",
			Description:     "Crawl websites using a breadth-first search approach and discover all reachable URLs. Advanced web crawler for security reconnaissance and vulnerability assessment.",
			HTMLURL:         "https://github.com/SKaif009/Flash_Crawler",
			CloneURL:        "https://github.com/SKaif009/Flash_Crawler.git",
			StargazersCount: 15,
			ForksCount:      8,
			WatchersCount:   25,
			Language:        "Python",
			Topics:          []string{"web-security", "crawler", "reconnaissance", "vulnerability-assessment"},
			CreatedAt:       time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			UpdatedAt:       time.Date(2024, 12, 20, 15, 30, 0, 0, time.UTC),
		},
		{
			ID:              2,
			Name:            "ForbiddenHack",
			FullName:        "SKaif009/ForbiddenHack",
			Description:     "Advanced penetration testing toolkit for web application security assessment. Includes custom exploits and vulnerability scanners.",
			HTMLURL:         "https://github.com/SKaif009/ForbiddenHack",
			CloneURL:        "https://github.com/SKaif009/ForbiddenHack.git",
			StargazersCount: 23,
			ForksCount:      12,
			WatchersCount:   45,
			Language:        "Python",
			Topics:          []string{"penetration-testing", "web-security", "exploits", "vulnerability-scanner"},
			CreatedAt:       time.Date(2024, 2, 10, 14, 20, 0, 0, time.UTC),
			UpdatedAt:       time.Date(2024, 12, 18, 9, 15, 0, 0, time.UTC),
		},
		{
			ID:              3,
			Name:            "HashDecoder",
			FullName:        "SKaif009/HashDecoder",
			Description:     "Comprehensive hash cracking and analysis tool supporting multiple algorithms. Essential for password recovery and security testing.",
			HTMLURL:         "https://github.com/SKaif009/HashDecoder",
			CloneURL:        "https://github.com/SKaif009/HashDecoder.git",
			StargazersCount: 18,
			ForksCount:      6,
			WatchersCount:   32,
			Language:        "Python",
			Topics:          []string{"cryptography", "hash-cracking", "password-recovery", "security-testing"},
			CreatedAt:       time.Date(2024, 3, 5, 11, 45, 0, 0, time.UTC),
			UpdatedAt:       time.Date(2024, 12, 19, 16, 20, 0, 0, time.UTC),
		},
	}
}
