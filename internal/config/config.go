// Package config loads the optional YAML viewer profile consumed by the
// mdcanvas CLI. A profile tunes typography, theming and the diagram pipeline
// without touching code; every field falls back to the engine defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mdcanvas/internal/highlight"
	"git.home.luguber.info/inful/mdcanvas/internal/render"
	"git.home.luguber.info/inful/mdcanvas/internal/typography"
)

// Typography holds optional multiplier-of-font-size measurements. Nil fields
// stay unset so the engine treats them as unconfigured.
type Typography struct {
	Recommended         bool     `yaml:"recommended"`
	LineHeight          *float32 `yaml:"line_height"`
	ParagraphSpacing    *float32 `yaml:"paragraph_spacing"`
	HeadingSpacingAbove *float32 `yaml:"heading_spacing_above"`
	HeadingSpacingBelow *float32 `yaml:"heading_spacing_below"`
	CodeLineHeight      *float32 `yaml:"code_line_height"`
}

// Profile is the viewer profile file.
type Profile struct {
	Dark              bool       `yaml:"dark"`
	Width             float32    `yaml:"width"`
	IndentationSpaces int        `yaml:"indentation_spaces"`
	MaxImageWidth     float32    `yaml:"max_image_width"`
	ImplicitURIScheme string     `yaml:"implicit_uri_scheme"`
	ShowAltOnHover    *bool      `yaml:"show_alt_text_on_hover"`
	CodeThemeLight    string     `yaml:"code_theme_light"`
	CodeThemeDark     string     `yaml:"code_theme_dark"`
	Typography        Typography `yaml:"typography"`
	DiagramStore      string     `yaml:"diagram_store"`
	MermaidBinary     string     `yaml:"mermaid_binary"`
}

// Default is the profile used when no file is given.
func Default() Profile {
	return Profile{Width: 600}
}

// Load reads and parses a profile file. An empty path returns the default
// profile.
func Load(path string) (Profile, error) {
	p := Default()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse profile: %w", err)
	}
	if p.Width <= 0 {
		p.Width = Default().Width
	}
	return p, nil
}

// Options converts the profile into the per-call render options.
func (p Profile) Options() render.Options {
	o := render.DefaultOptions()
	if p.IndentationSpaces > 0 {
		o.IndentationSpaces = p.IndentationSpaces
	}
	if p.MaxImageWidth > 0 {
		o.MaxImageWidth = p.MaxImageWidth
	}
	if p.ImplicitURIScheme != "" {
		o.DefaultImplicitURIScheme = p.ImplicitURIScheme
	}
	if p.ShowAltOnHover != nil {
		o.ShowAltTextOnHover = *p.ShowAltOnHover
	}
	o.Typography = p.typography()
	return o
}

func (p Profile) typography() typography.Config {
	cfg := typography.Config{}
	if p.Typography.Recommended {
		cfg = typography.Recommended()
	}
	assign := func(dst **typography.Measurement, v *float32) {
		if v != nil {
			m := typography.Multiplier(*v)
			*dst = &m
		}
	}
	assign(&cfg.LineHeight, p.Typography.LineHeight)
	assign(&cfg.ParagraphSpacing, p.Typography.ParagraphSpacing)
	assign(&cfg.HeadingSpacingAbove, p.Typography.HeadingSpacingAbove)
	assign(&cfg.HeadingSpacingBelow, p.Typography.HeadingSpacingBelow)
	assign(&cfg.CodeLineHeight, p.Typography.CodeLineHeight)
	return cfg
}

// Highlighter builds the chroma theme provider for the profile.
func (p Profile) Highlighter() *highlight.Provider {
	if p.CodeThemeLight == "" && p.CodeThemeDark == "" {
		return highlight.NewDefaultProvider()
	}
	light, dark := p.CodeThemeLight, p.CodeThemeDark
	if light == "" {
		light = highlight.DefaultThemeLight
	}
	if dark == "" {
		dark = highlight.DefaultThemeDark
	}
	return highlight.NewProvider(light, dark)
}
