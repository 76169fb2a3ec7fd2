// Package render is the document rendering engine: a stateful consumer that
// walks the markdown AST and emits styled visual primitives through a host
// surface, driving the style accumulator, list stack, code highlighter and
// diagram pipeline along the way.
package render

import (
	"git.home.luguber.info/inful/mdcanvas/internal/typography"
	"git.home.luguber.info/inful/mdcanvas/internal/ui"
)

// MathRenderer renders a math block through the host instead of the default
// plain-text path.
type MathRenderer func(s ui.Surface, source string)

// HTMLRenderer renders a raw HTML block through the host. Configuring one
// disables the built-in plain-text fallback entirely; the table sub-parser
// still runs first.
type HTMLRenderer func(s ui.Surface, html string)

// Options are the per-call rendering knobs. They are constructed fresh by
// the caller for every render invocation and never mutated or retained by
// the engine.
type Options struct {
	// IndentationSpaces is the list indentation width in body-space widths
	// per nesting level.
	IndentationSpaces int
	// MaxImageWidth caps image display width; 0 means available width only.
	MaxImageWidth float32
	// DefaultWidth is the content width assumed when the host reports none.
	DefaultWidth float32
	// ShowAltTextOnHover surfaces image alt text as a hover overlay.
	ShowAltTextOnHover bool
	// UseExplicitURIScheme passes image URIs through untouched.
	UseExplicitURIScheme bool
	// DefaultImplicitURIScheme prefixes bare relative image paths.
	DefaultImplicitURIScheme string
	// Typography converts abstract spacing measurements to pixels.
	Typography typography.Config
	// Mutable allows checkbox toggling; toggles are reported as source
	// edits, never applied by the engine itself.
	Mutable bool
	// Alerts maps block-quote admonition kinds to their visual treatment.
	Alerts AlertBundle

	RenderMath MathRenderer
	RenderHTML HTMLRenderer
}

// DefaultOptions mirrors the shipped viewer defaults.
func DefaultOptions() Options {
	return Options{
		IndentationSpaces:        4,
		DefaultWidth:             760,
		ShowAltTextOnHover:       true,
		DefaultImplicitURIScheme: "file://",
		Alerts:                   GFMAlerts(),
	}
}
