// Package diagram turns embedded diagram-description blocks into cached
// raster images. Each block is keyed by a hash of its source text and moves
// through a small state machine (Rendering -> Ready | Error) driven by a
// single background worker, so diagrams resolve one at a time in document
// order.
package diagram

import (
	"crypto/sha256"
	"encoding/hex"

	"git.home.luguber.info/inful/mdcanvas/internal/ui"
)

// Hash returns the content hash of a diagram's source text. Byte-identical
// sources share one cache entry regardless of where they appear.
func Hash(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Status is the lifecycle phase of one content hash.
type Status int

const (
	// StatusRendering covers both "worker active" and "queued behind the
	// single worker slot".
	StatusRendering Status = iota
	StatusReady
	StatusError
)

// State is the cached outcome for one content hash. Ready and Error are
// terminal.
type State struct {
	Status Status
	// Texture and Size are set once Ready; the pixel data lives with the
	// host after upload, never here.
	Texture ui.TextureID
	Size    ui.Size
	// Message carries the failure text for Error states.
	Message string
}

// Renderer converts diagram source text to SVG. Implementations run on the
// background worker and may block.
type Renderer interface {
	RenderSVG(source string) ([]byte, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(source string) ([]byte, error)

func (f RendererFunc) RenderSVG(source string) ([]byte, error) {
	return f(source)
}

// result is what the worker sends back over the pipeline channel.
type result struct {
	hash string
	img  *Raster
	err  error
}
