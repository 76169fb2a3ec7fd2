package render

import (
	"git.home.luguber.info/inful/mdcanvas/internal/markdown"
	"git.home.luguber.info/inful/mdcanvas/internal/ui"
)

// Render walks the document and emits it through the surface. The returned
// rect is the emitted visual region, local to the surface's coordinate
// space at call time.
func Render(s ui.Surface, cache *Cache, o Options, source []byte) ui.Rect {
	region, _ := renderDocument(s, cache, o, source)
	return region
}

// RenderMut renders with checkbox toggling enabled and reports the byte
// range edits the caller must splice into the source. The engine never
// mutates the source itself.
func RenderMut(s ui.Surface, cache *Cache, o Options, source []byte) (ui.Rect, []markdown.CheckboxEdit) {
	o.Mutable = true
	return renderDocument(s, cache, o, source)
}

func renderDocument(s ui.Surface, cache *Cache, o Options, source []byte) (ui.Rect, []markdown.CheckboxEdit) {
	if !cache.loadersInstalled {
		s.InstallImageLoaders()
		cache.loadersInstalled = true
	}
	cache.DeactivateLinkHooks()
	if cache.diagrams != nil {
		cache.diagrams.BeginPass(s)
	}

	startY := s.CursorY()
	r := &renderer{s: s, cache: cache, o: o, source: source}
	r.renderBlocks(markdown.Parse(source))
	r.flushText()

	width := s.AvailableWidth()
	if width <= 0 {
		width = o.DefaultWidth
	}
	return ui.Rect{
		X: 0,
		Y: startY,
		W: width,
		H: s.CursorY() - startY,
	}, r.edits
}
