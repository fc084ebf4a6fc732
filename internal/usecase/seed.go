package usecase

import (
	"strings"

	"github.com/cipher-shad0w/timeguardian/internal/domain"
)

// ParseWebsiteFile extracts domains from a plain-text website list: one
// domain per line, blank lines and #-prefixed comment lines ignored.
func ParseWebsiteFile(content string) []string {
	var domains []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		domains = append(domains, line)
	}
	return domains
}

// SeedLists builds the initial website lists for the setup command: two
// built-in defaults plus the user's custom domains.
func SeedLists(userDomains []string) []domain.WebsiteList {
	return []domain.WebsiteList{
		{
			Name: "Social Media",
			Domains: []string{
				"www.facebook.com",
				"facebook.com",
				"www.twitter.com",
				"twitter.com",
				"www.instagram.com",
				"instagram.com",
			},
		},
		{
			Name: "Entertainment",
			Domains: []string{
				"www.youtube.com",
				"youtube.com",
				"www.netflix.com",
				"netflix.com",
				"www.reddit.com",
				"reddit.com",
			},
		},
		{
			Name:    "Custom Sites",
			Domains: userDomains,
		},
	}
}
