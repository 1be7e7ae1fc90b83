package types

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvironmentConfig holds the deployed URLs for one site. A site may have
// several interchangeable deployments; ActiveURLIdx selects the one in use.
type EnvironmentConfig struct {
	URLs         []string `yaml:"urls" json:"urls"`
	ActiveURLIdx *int     `yaml:"active_url_idx,omitempty" json:"active_url_idx,omitempty"`
}

// ActiveURL returns the URL selected by ActiveURLIdx, defaulting to the first
// URL. Returns "" when no URLs are configured.
func (e EnvironmentConfig) ActiveURL() string {
	if len(e.URLs) == 0 {
		return ""
	}
	idx := 0
	if e.ActiveURLIdx != nil {
		idx = *e.ActiveURLIdx
	}
	if idx < 0 || idx >= len(e.URLs) {
		return ""
	}
	return e.URLs[idx]
}

// Config maps sites to their deployed environments.
type Config struct {
	Environments map[Site]EnvironmentConfig `yaml:"environments" json:"environments"`
}

// LoadConfig reads and parses a config file. The format is chosen by
// extension: .json is JSON, everything else is YAML.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &config)
	} else {
		err = yaml.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks that every configured site is recognized.
func (c *Config) Validate() error {
	for site := range c.Environments {
		if !site.IsValid() {
			return fmt.Errorf("unknown site %q in environments", site)
		}
	}
	return nil
}

// urlOptions collects the optional parameters of RenderURL and DerenderURL.
type urlOptions struct {
	strict bool
	urlIdx *int
}

// URLOption configures RenderURL and DerenderURL.
type URLOption func(*urlOptions)

// NonStrict makes RenderURL and DerenderURL return the input unchanged when
// no site matches, instead of failing.
func NonStrict() URLOption {
	return func(o *urlOptions) { o.strict = false }
}

// WithURLIndex overrides the environment's active URL index for this call.
func WithURLIndex(idx int) URLOption {
	return func(o *urlOptions) { o.urlIdx = &idx }
}

func applyURLOptions(opts []URLOption) urlOptions {
	o := urlOptions{strict: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// siteURL resolves the URL to substitute for a site, honoring a per-call
// index override.
func (c *Config) siteURL(site Site, o urlOptions) string {
	env := c.Environments[site]
	if o.urlIdx != nil {
		if *o.urlIdx < 0 || *o.urlIdx >= len(env.URLs) {
			return ""
		}
		return env.URLs[*o.urlIdx]
	}
	return env.ActiveURL()
}

// checkSites verifies every requested site has an environment entry.
func (c *Config) checkSites(sites []Site) error {
	var missing []string
	for _, site := range sites {
		if _, ok := c.Environments[site]; !ok {
			missing = append(missing, site.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("Sites %v not found in environments", missing)
	}
	return nil
}

// RenderURL substitutes a site placeholder in template with the site's
// deployed URL. Sites are tried in order; the first whose placeholder appears
// in the template wins. When no site matches, strict mode (the default) fails
// and non-strict mode returns the template unchanged.
func (c *Config) RenderURL(template string, sites []Site, opts ...URLOption) (string, error) {
	o := applyURLOptions(opts)
	if err := c.checkSites(sites); err != nil {
		return "", err
	}
	for _, site := range sites {
		placeholder := site.Placeholder()
		if !strings.Contains(template, placeholder) {
			continue
		}
		base := c.siteURL(site, o)
		if base == "" {
			return "", fmt.Errorf("no usable URL configured for site %q", site)
		}
		return strings.ReplaceAll(template, placeholder, base), nil
	}
	if o.strict {
		return "", fmt.Errorf("No site in %v matched template %q", siteNames(sites), template)
	}
	return template, nil
}

// RenderURLs renders each template in order. In non-strict mode unmatched
// templates pass through unchanged.
func (c *Config) RenderURLs(templates []string, sites []Site, opts ...URLOption) ([]string, error) {
	out := make([]string, 0, len(templates))
	for _, tmpl := range templates {
		rendered, err := c.RenderURL(tmpl, sites, opts...)
		if err != nil {
			return nil, err
		}
		out = append(out, rendered)
	}
	return out, nil
}

// DerenderURL replaces a site's deployed URL prefix with its placeholder,
// inverting RenderURL. All URLs of every requested site are candidates; the
// longest matching prefix wins, so overlapping deployments resolve to the
// most specific site. When nothing matches, strict mode (the default) fails
// and non-strict mode returns the URL unchanged.
func (c *Config) DerenderURL(url string, sites []Site, opts ...URLOption) (string, error) {
	o := applyURLOptions(opts)
	if err := c.checkSites(sites); err != nil {
		return "", err
	}

	var bestSite Site
	bestLen := -1
	for _, site := range sites {
		for _, base := range c.Environments[site].URLs {
			if base == "" || !strings.HasPrefix(url, base) {
				continue
			}
			if len(base) > bestLen {
				bestSite, bestLen = site, len(base)
			}
		}
	}
	if bestLen < 0 {
		if o.strict {
			return "", fmt.Errorf("URL %q does not match any configured URLs for sites %v", url, siteNames(sites))
		}
		return url, nil
	}
	return bestSite.Placeholder() + url[bestLen:], nil
}

// DerenderURLs derenders each URL in order.
func (c *Config) DerenderURLs(urls []string, sites []Site, opts ...URLOption) ([]string, error) {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		derendered, err := c.DerenderURL(u, sites, opts...)
		if err != nil {
			return nil, err
		}
		out = append(out, derendered)
	}
	return out, nil
}

func siteNames(sites []Site) []string {
	names := make([]string, len(sites))
	for i, s := range sites {
		names[i] = s.String()
	}
	return names
}
