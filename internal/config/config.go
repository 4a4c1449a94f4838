// Package config loads document profiles: reusable presentation and output
// settings for generated reports.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/reportdoc/internal/errors"
	"git.home.luguber.info/inful/reportdoc/internal/render"
)

// Profile describes how documents are rendered and where calls go.
type Profile struct {
	Title      string   `yaml:"title"`
	Author     string   `yaml:"author,omitempty"`
	BrandColor string   `yaml:"brand_color,omitempty"`
	CSS        string   `yaml:"css,omitempty"`
	OmitStyle  bool     `yaml:"omit_style,omitempty"`
	AutoFlush  *bool    `yaml:"autoflush,omitempty"` // nil means true
	Echo       bool     `yaml:"echo,omitempty"`
	Formats    []string `yaml:"formats"` // "html", "markdown"
}

// Default returns the profile used when no file is given.
func Default() *Profile {
	return &Profile{
		Title:      "Report",
		BrandColor: render.DefaultBrandColor,
		Formats:    []string{"html", "markdown"},
	}
}

// Load reads a profile from a YAML file. Environment variables are expanded
// in the raw content first (a .env file beside the process is honored), so
// profiles can carry values like `author: ${USER}`.
func Load(path string) (*Profile, error) {
	// Best effort; a missing .env is not an error.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, "read profile")
	}

	var p Profile
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &p); err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, "parse profile")
	}

	applyDefaults(&p)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func applyDefaults(p *Profile) {
	if p.Title == "" {
		p.Title = "Report"
	}
	if p.BrandColor == "" {
		p.BrandColor = render.DefaultBrandColor
	}
	if len(p.Formats) == 0 {
		p.Formats = []string{"html", "markdown"}
	}
}

// Validate checks that every requested format is known.
func (p *Profile) Validate() error {
	for _, f := range p.Formats {
		if _, err := backendFor(f); err != nil {
			return err
		}
	}
	return nil
}

// AutoFlushEnabled reports the effective autoflush setting (default true).
func (p *Profile) AutoFlushEnabled() bool {
	return p.AutoFlush == nil || *p.AutoFlush
}

// Backends resolves the profile's format names in declaration order.
func (p *Profile) Backends() ([]render.Backend, error) {
	backends := make([]render.Backend, 0, len(p.Formats))
	for _, f := range p.Formats {
		b, err := backendFor(f)
		if err != nil {
			return nil, err
		}
		backends = append(backends, b)
	}
	return backends, nil
}

func backendFor(name string) (render.Backend, error) {
	switch name {
	case "html":
		return render.HTML{}, nil
	case "markdown", "md":
		return render.Markdown{}, nil
	default:
		return nil, errors.Newf(errors.CategoryConfig,
			"unknown format %q (want html or markdown)", name)
	}
}

// Init writes an example profile, refusing to overwrite unless forced.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.Newf(errors.CategoryConfig,
			"profile already exists: %s (use --force to overwrite)", path)
	}
	example := fmt.Sprintf(`# reportdoc document profile
title: "Run Report"
author: "${USER}"
brand_color: "%s"
formats:
  - html
  - markdown
`, render.DefaultBrandColor)
	if err := os.WriteFile(path, []byte(example), 0644); err != nil {
		return errors.Filesystem(err, "write profile")
	}
	return nil
}
