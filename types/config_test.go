package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Environments: map[Site]EnvironmentConfig{
			SiteShopping:      {URLs: []string{"http://localhost:7770"}},
			SiteShoppingAdmin: {URLs: []string{"http://localhost:7780/admin"}},
			SiteReddit:        {URLs: []string{"http://localhost:9999"}},
		},
	}
}

// TestRenderURL covers placeholder substitution across the sites list.
func TestRenderURL(t *testing.T) {
	cfg := testConfig()

	t.Run("single site", func(t *testing.T) {
		got, err := cfg.RenderURL("__SHOPPING_ADMIN__/sales/", []Site{SiteShoppingAdmin})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:7780/admin/sales/", got)
	})

	t.Run("first matching site wins", func(t *testing.T) {
		got, err := cfg.RenderURL("__SHOPPING_ADMIN__/sales/",
			[]Site{SiteShopping, SiteShoppingAdmin, SiteReddit})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:7780/admin/sales/", got)
	})

	t.Run("strict failure when nothing matches", func(t *testing.T) {
		_, err := cfg.RenderURL("__GITLAB__/projects", []Site{SiteShopping})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "matched template")
	})

	t.Run("non-strict passthrough", func(t *testing.T) {
		got, err := cfg.RenderURL("__GITLAB__/projects", []Site{SiteShopping}, NonStrict())
		require.NoError(t, err)
		assert.Equal(t, "__GITLAB__/projects", got)
	})

	t.Run("site missing from environments", func(t *testing.T) {
		_, err := cfg.RenderURL("__GITLAB__/projects", []Site{SiteGitLab})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found in environments")
	})
}

// TestRenderURLIndex verifies the active index default and per-call override.
func TestRenderURLIndex(t *testing.T) {
	idx := 0
	cfg := &Config{
		Environments: map[Site]EnvironmentConfig{
			SiteShopping: {
				URLs:         []string{"http://prod.example.com", "http://staging.example.com"},
				ActiveURLIdx: &idx,
			},
		},
	}

	got, err := cfg.RenderURL("__SHOPPING__/products", []Site{SiteShopping})
	require.NoError(t, err)
	assert.Equal(t, "http://prod.example.com/products", got)

	got, err = cfg.RenderURL("__SHOPPING__/products", []Site{SiteShopping}, WithURLIndex(1))
	require.NoError(t, err)
	assert.Equal(t, "http://staging.example.com/products", got)
}

// TestDerenderURL covers prefix inversion and longest-prefix specificity.
func TestDerenderURL(t *testing.T) {
	cfg := testConfig()

	t.Run("single site", func(t *testing.T) {
		got, err := cfg.DerenderURL("http://localhost:7780/admin/sales/", []Site{SiteShoppingAdmin})
		require.NoError(t, err)
		assert.Equal(t, "__SHOPPING_ADMIN__/sales/", got)
	})

	t.Run("longest prefix wins", func(t *testing.T) {
		overlapping := &Config{
			Environments: map[Site]EnvironmentConfig{
				SiteShopping:      {URLs: []string{"http://localhost:7780"}},
				SiteShoppingAdmin: {URLs: []string{"http://localhost:7780/admin"}},
			},
		}
		got, err := overlapping.DerenderURL("http://localhost:7780/admin/users",
			[]Site{SiteShopping, SiteShoppingAdmin})
		require.NoError(t, err)
		assert.Equal(t, "__SHOPPING_ADMIN__/users", got)
	})

	t.Run("strict failure when nothing matches", func(t *testing.T) {
		_, err := cfg.DerenderURL("http://localhost:7780/admin/sales/", []Site{SiteShopping})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not match any configured URLs for sites")
	})

	t.Run("non-strict passthrough", func(t *testing.T) {
		got, err := cfg.DerenderURL("http://elsewhere.test/x", []Site{SiteShopping}, NonStrict())
		require.NoError(t, err)
		assert.Equal(t, "http://elsewhere.test/x", got)
	})
}

// TestRenderDerenderRoundTrip verifies the inversion property both ways.
func TestRenderDerenderRoundTrip(t *testing.T) {
	cfg := testConfig()
	sites := []Site{SiteShopping, SiteReddit}

	template := "__REDDIT__/f/news/comments"
	rendered, err := cfg.RenderURL(template, sites)
	require.NoError(t, err)
	back, err := cfg.DerenderURL(rendered, sites)
	require.NoError(t, err)
	assert.Equal(t, template, back)

	url := "http://localhost:7770/cart"
	derendered, err := cfg.DerenderURL(url, sites)
	require.NoError(t, err)
	forward, err := cfg.RenderURL(derendered, sites)
	require.NoError(t, err)
	assert.Equal(t, url, forward)
}

// TestURLLists verifies the slice variants, including non-strict mixes.
func TestURLLists(t *testing.T) {
	cfg := testConfig()

	rendered, err := cfg.RenderURLs(
		[]string{"__SHOPPING__/products", "__GITLAB__/projects"},
		[]Site{SiteShopping}, NonStrict())
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:7770/products", "__GITLAB__/projects"}, rendered)

	derendered, err := cfg.DerenderURLs(
		[]string{"http://localhost:7770/products", "http://localhost:7770/cart"},
		[]Site{SiteShopping})
	require.NoError(t, err)
	assert.Equal(t, []string{"__SHOPPING__/products", "__SHOPPING__/cart"}, derendered)
}

// TestLoadConfig verifies YAML and JSON loading plus validation.
func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
environments:
  shopping:
    urls:
      - http://localhost:7770
  map:
    urls:
      - http://localhost:3000
    active_url_idx: 0
`), 0o644))
	cfg, err := LoadConfig(yamlPath)
	require.NoError(t, err)
	assert.Len(t, cfg.Environments, 2)
	assert.Equal(t, "http://localhost:3000", cfg.Environments[SiteMap].ActiveURL())

	jsonPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(jsonPath,
		[]byte(`{"environments": {"reddit": {"urls": ["http://localhost:9999"]}}}`), 0o644))
	cfg, err = LoadConfig(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", cfg.Environments[SiteReddit].ActiveURL())

	badPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("environments:\n  nonsense:\n    urls: []\n"), 0o644))
	_, err = LoadConfig(badPath)
	require.Error(t, err)
}
