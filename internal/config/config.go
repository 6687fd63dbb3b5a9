// Package config loads the optional _pkgdown.yml site configuration and
// merges it over built-in defaults. Merging is shallow: a top-level key
// present in the user document replaces the default value for that key
// entirely, nested structures are never deep-merged.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	siterrors "github.com/DataStrategist/pkgdown/internal/errors"
)

// FileName is the site configuration file expected at the package root.
const FileName = "_pkgdown.yml"

// Config represents the merged site configuration.
type Config struct {
	Destination string    `yaml:"destination"`
	URL         string    `yaml:"url,omitempty"`
	Title       string    `yaml:"title,omitempty"`
	Strict      bool      `yaml:"strict,omitempty"`
	Template    Template  `yaml:"template,omitempty"`
	Navbar      *Navbar   `yaml:"navbar,omitempty"`
	Articles    []Section `yaml:"articles,omitempty"`
	Reference   []Section `yaml:"reference,omitempty"`
}

// Template configures page layout expansion and static assets.
type Template struct {
	Package       string         `yaml:"package,omitempty"`
	Path          string         `yaml:"path,omitempty"`
	Assets        string         `yaml:"assets,omitempty"`
	DefaultAssets *bool          `yaml:"default_assets,omitempty"`
	Params        map[string]any `yaml:"params,omitempty"`
	// Converter optionally names an external markup converter command
	// (argv form). Empty means the built-in converter.
	Converter []string `yaml:"converter,omitempty"`
}

// Navbar describes the site navigation bar.
type Navbar struct {
	Type  string    `yaml:"type,omitempty"`
	Left  []NavItem `yaml:"left,omitempty"`
	Right []NavItem `yaml:"right,omitempty"`
}

// NavItem is one navigation entry: either a link (text/icon + href) or a
// titled menu of nested entries.
type NavItem struct {
	Text string    `yaml:"text,omitempty"`
	Icon string    `yaml:"icon,omitempty"`
	Href string    `yaml:"href,omitempty"`
	Menu []NavItem `yaml:"menu,omitempty"`
}

// Section is one user-configured index grouping for topics or articles.
type Section struct {
	Title    string   `yaml:"title"`
	Desc     string   `yaml:"desc,omitempty"`
	Contents []string `yaml:"contents"`
	Class    string   `yaml:"class,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	yes := true
	return &Config{
		Destination: "docs",
		Template:    Template{DefaultAssets: &yes},
	}
}

// Load reads _pkgdown.yml from sourcePath and merges it over Default().
// A missing file yields the defaults unchanged. Environment variables in the
// document are expanded, and a .env file next to the config is honored.
func Load(sourcePath string) (*Config, error) {
	// Best effort; absence of a .env file is the normal case.
	_ = godotenv.Load(filepath.Join(sourcePath, ".env"))

	path := filepath.Join(sourcePath, FileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, siterrors.WrapConfig(err, "site configuration not readable").WithPath(path)
	}
	cfg, err := Parse(data)
	if err != nil {
		if se, ok := err.(*siterrors.SiteError); ok {
			return nil, se.WithPath(path)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse unmarshals a configuration document and applies defaults for absent
// top-level keys.
func Parse(data []byte) (*Config, error) {
	expanded := []byte(os.ExpandEnv(string(data)))

	// Track which top-level keys the user supplied so defaults only fill
	// genuinely absent keys (replace-at-first-level semantics).
	var present map[string]yaml.Node
	if err := yaml.Unmarshal(expanded, &present); err != nil {
		return nil, siterrors.WrapConfig(err, "malformed site configuration")
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(expanded, cfg); err != nil {
		return nil, siterrors.WrapConfig(err, "malformed site configuration")
	}

	def := Default()
	if _, ok := present["destination"]; !ok {
		cfg.Destination = def.Destination
	}
	if _, ok := present["template"]; !ok {
		cfg.Template = def.Template
	} else if cfg.Template.DefaultAssets == nil {
		cfg.Template.DefaultAssets = def.Template.DefaultAssets
	}
	return cfg, nil
}

// UseDefaultAssets reports whether the built-in stylesheet should be copied
// into the output tree.
func (c *Config) UseDefaultAssets() bool {
	return c.Template.DefaultAssets == nil || *c.Template.DefaultAssets
}

// Init writes a starter configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}
	example := Config{
		Destination: "docs",
		URL:         "https://example.org/mypackage",
		Reference: []Section{
			{Title: "All functions", Contents: []string{`starts_with("")`}},
		},
	}
	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
