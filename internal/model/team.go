package model

import "strings"

type TeamMember struct {
	Name         string
	Role         string
	Order        int
	MediumURL    string
	LinkedInURL  string
	TryHackMeID  string
	Expertise    []string
	Achievements []string
	BioHTML      string
}

// Initials returns the first letter of each word of the name, e.g. "Het Patel" -> "HP".
func (m *TeamMember) Initials() string {
	var b strings.Builder
	for _, part := range strings.Fields(m.Name) {
		for _, r := range part {
			b.WriteString(strings.ToUpper(string(r)))
			break
		}
	}
	return b.String()
}

// BadgeURL is the TryHackMe public profile badge rendered in an iframe.
func (m *TeamMember) BadgeURL() string {
	if m.TryHackMeID == "" {
		return ""
	}
	return "https://tryhackme.com/api/v2/badges/public-profile?userPublicId=" + m.TryHackMeID
}

// Highlight is a titled blurb used for the mission and values sections.
type Highlight struct {
	Title       string
	Description string
}
