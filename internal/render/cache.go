package render

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"git.home.luguber.info/inful/mdcanvas/internal/diagram"
	"git.home.luguber.info/inful/mdcanvas/internal/highlight"
	"git.home.luguber.info/inful/mdcanvas/internal/ui"
)

// ViewerID is the opaque identity of one scrollable viewer sharing a cache.
type ViewerID string

// NewViewerID allocates a fresh viewer identity.
func NewViewerID() ViewerID {
	return ViewerID(uuid.NewString())
}

// ScrollState is the per-viewer virtualization bookkeeping recorded between
// passes.
type ScrollState struct {
	Offset        float32
	ContentHeight float32
}

// Cache is the long-lived mutable state shared across render calls: link
// hooks, the header position index, scroll bookkeeping, code-block copy
// toggles and the diagram pipeline. It must only be touched from the render
// thread; the diagram worker communicates through its channel, never through
// the cache.
type Cache struct {
	highlighter *highlight.Provider
	diagrams    *diagram.Pipeline

	linkHooks  map[string]bool
	headers    map[string]float32
	viewers    map[ViewerID]ScrollState
	copied     map[string]bool
	scrollOffs float32

	lastDiagramClick   ui.TextureID
	lastDiagramClickOK bool

	loadersInstalled bool
}

// NewCache wires the shared highlighter and diagram pipeline into a fresh
// cache. Both collaborators are injected explicitly; the pipeline may be nil,
// which renders diagram blocks as ordinary code blocks.
func NewCache(highlighter *highlight.Provider, diagrams *diagram.Pipeline) *Cache {
	if highlighter == nil {
		highlighter = highlight.NewDefaultProvider()
	}
	return &Cache{
		highlighter: highlighter,
		diagrams:    diagrams,
		linkHooks:   map[string]bool{},
		headers:     map[string]float32{},
		viewers:     map[ViewerID]ScrollState{},
		copied:      map[string]bool{},
	}
}

// RegisterLinkHook intercepts clicks on the destination: instead of opening
// the URL, the engine flips the hook's flag for the caller to observe.
func (c *Cache) RegisterLinkHook(destination string) {
	if _, ok := c.linkHooks[destination]; !ok {
		c.linkHooks[destination] = false
	}
}

// RemoveLinkHook drops the registration entirely.
func (c *Cache) RemoveLinkHook(destination string) {
	delete(c.linkHooks, destination)
}

// LinkHookClicked reports whether the hooked destination was clicked since
// hooks were last deactivated.
func (c *Cache) LinkHookClicked(destination string) bool {
	return c.linkHooks[destination]
}

// DeactivateLinkHooks resets every hook's clicked flag without removing the
// registrations. The render entry point calls it at the start of each pass.
func (c *Cache) DeactivateLinkHooks() {
	for k := range c.linkHooks {
		c.linkHooks[k] = false
	}
}

func (c *Cache) isHooked(destination string) bool {
	_, ok := c.linkHooks[destination]
	return ok
}

// normalizeHeader builds the header-index key: NFC-normalized, trimmed,
// lower-cased.
func normalizeHeader(title string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(title)))
}

// recordHeader stores a header position, first write wins. Re-renders of the
// same title must not overwrite the recorded offset, or scroll-dependent
// repositioning would feed back into itself.
func (c *Cache) recordHeader(title string, y float32) {
	key := normalizeHeader(title)
	if _, ok := c.headers[key]; !ok {
		c.headers[key] = y
	}
}

// HeaderPosition looks up a recorded header offset by title. It returns
// false before the first render or for unknown titles.
func (c *Cache) HeaderPosition(title string) (float32, bool) {
	y, ok := c.headers[normalizeHeader(title)]
	return y, ok
}

// HeaderPositions returns a copy of the recorded header index, keyed by the
// normalized titles.
func (c *Cache) HeaderPositions() map[string]float32 {
	out := make(map[string]float32, len(c.headers))
	for k, v := range c.headers {
		out[k] = v
	}
	return out
}

// ClearHeaderPositions drops the whole index. Callers invoke it when the
// document content changes.
func (c *Cache) ClearHeaderPositions() {
	c.headers = map[string]float32{}
}

// SetScrollOffset records the viewport offset the caller will render at;
// header positions recorded this pass are relative to it.
func (c *Cache) SetScrollOffset(v float32) {
	c.scrollOffs = v
}

// ScrollOffset returns the offset set for the current pass.
func (c *Cache) ScrollOffset() float32 {
	return c.scrollOffs
}

// ViewerScroll returns the bookkeeping for one scrollable viewer.
func (c *Cache) ViewerScroll(id ViewerID) (ScrollState, bool) {
	st, ok := c.viewers[id]
	return st, ok
}

// SetViewerScroll stores the bookkeeping for one scrollable viewer.
func (c *Cache) SetViewerScroll(id ViewerID, st ScrollState) {
	c.viewers[id] = st
}

// LastClickedDiagram returns and clears the texture of the most recently
// clicked Ready diagram. A lightbox feature outside the engine consumes it.
func (c *Cache) LastClickedDiagram() (ui.TextureID, bool) {
	tex, ok := c.lastDiagramClick, c.lastDiagramClickOK
	c.lastDiagramClick, c.lastDiagramClickOK = 0, false
	return tex, ok
}
