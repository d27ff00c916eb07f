package service

import (
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/patelhettt/vulninsights/internal/markdown"
	"github.com/patelhettt/vulninsights/internal/model"
)

type teamFrontmatter struct {
	Name         string   `yaml:"name"`
	Role         string   `yaml:"role"`
	Order        int      `yaml:"order"`
	Medium       string   `yaml:"medium"`
	LinkedIn     string   `yaml:"linkedin"`
	TryHackMeID  string   `yaml:"tryhackme_id"`
	Expertise    []string `yaml:"expertise"`
	Achievements []string `yaml:"achievements"`
}

var mission = []model.Highlight{
	{Title: "Security Research", Description: "Conducting cutting-edge research into emerging cybersecurity threats and vulnerabilities."},
	{Title: "Knowledge Sharing", Description: "Sharing practical insights and real-world experiences through detailed technical articles."},
	{Title: "Community Building", Description: "Building a community of security professionals and enthusiasts passionate about cybersecurity."},
	{Title: "Industry Impact", Description: "Contributing to the cybersecurity industry through responsible disclosure and best practices."},
}

var values = []model.Highlight{
	{Title: "Responsible Disclosure", Description: "We believe in ethical vulnerability research and responsible disclosure practices that help improve security for everyone."},
	{Title: "Knowledge Sharing", Description: "Sharing knowledge and experiences to help the cybersecurity community grow and learn from real-world scenarios."},
	{Title: "Continuous Learning", Description: "Staying updated with the latest threats, techniques, and technologies to provide relevant and timely insights."},
}

// TeamService serves the about page content. Members are loaded from
// team/*.md once, at construction.
type TeamService struct {
	members []*model.TeamMember
}

func NewTeamService(content fs.FS) (*TeamService, error) {
	files, err := fs.Glob(content, "team/*.md")
	if err != nil {
		return nil, err
	}

	parser := markdown.NewParser()
	members := make([]*model.TeamMember, 0, len(files))
	for _, file := range files {
		src, err := fs.ReadFile(content, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}

		var meta teamFrontmatter
		bio, err := parser.ParseWithFrontmatter(src, &meta)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path.Base(file), err)
		}
		if meta.Name == "" {
			return nil, fmt.Errorf("team member %s has no name", path.Base(file))
		}

		members = append(members, &model.TeamMember{
			Name:         meta.Name,
			Role:         meta.Role,
			Order:        meta.Order,
			MediumURL:    meta.Medium,
			LinkedInURL:  meta.LinkedIn,
			TryHackMeID:  meta.TryHackMeID,
			Expertise:    meta.Expertise,
			Achievements: meta.Achievements,
			BioHTML:      string(bio),
		})
	}

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Order < members[j].Order
	})

	return &TeamService{members: members}, nil
}

func (s *TeamService) Members() []*model.TeamMember {
	return s.members
}

func (s *TeamService) Mission() []model.Highlight {
	return mission
}

func (s *TeamService) Values() []model.Highlight {
	return values
}
