package types

import (
	"fmt"
	"strings"
)

// Site identifies one of the benchmark's self-hosted websites.
type Site string

// Site constants name the benchmark environments.
const (
	SiteShopping      Site = "shopping"
	SiteShoppingAdmin Site = "shopping_admin"
	SiteGitLab        Site = "gitlab"
	SiteReddit        Site = "reddit"
	SiteWikipedia     Site = "wikipedia"
	SiteMap           Site = "map"
	SiteHomepage      Site = "homepage"
)

// String returns the string representation of the site.
func (s Site) String() string {
	return string(s)
}

// IsValid returns true if the site is a recognized value.
func (s Site) IsValid() bool {
	switch s {
	case SiteShopping, SiteShoppingAdmin, SiteGitLab, SiteReddit,
		SiteWikipedia, SiteMap, SiteHomepage:
		return true
	default:
		return false
	}
}

// Placeholder returns the site's URL template token, e.g. "__SHOPPING_ADMIN__".
func (s Site) Placeholder() string {
	return "__" + strings.ToUpper(string(s)) + "__"
}

// ParseSite converts a string to a Site, case-insensitively.
func ParseSite(s string) (Site, error) {
	site := Site(strings.ToLower(strings.TrimSpace(s)))
	if !site.IsValid() {
		return "", fmt.Errorf("unknown site %q", s)
	}
	return site, nil
}
