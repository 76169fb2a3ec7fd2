package render

import (
	"strconv"
	"strings"
	"time"

	"git.home.luguber.info/inful/mdcanvas/internal/diagram"
	"git.home.luguber.info/inful/mdcanvas/internal/highlight"
	"git.home.luguber.info/inful/mdcanvas/internal/ui"
)

const (
	copyGlyph   = "🗐"
	copiedGlyph = "✔"

	// diagramPlaceholderHeight reserves layout for a diagram that is still
	// rendering.
	diagramPlaceholderHeight = 160
	diagramRepaintInterval   = 150 * time.Millisecond
)

// renderCodeBlock lays out a fenced or indented code block: themed
// background and selection colors, highlighted lines with the code line
// height applied, and the copy affordance.
func (r *renderer) renderCodeBlock(lang, source string) {
	r.blockSeq++
	id := "codeblock-" + strconv.Itoa(r.blockSeq)

	theme := r.s.Theme()
	bg, ok := r.cache.highlighter.Background(theme.Dark)
	if !ok {
		bg = theme.CodeBackground
	}
	if sel, ok := r.cache.highlighter.Selection(theme.Dark); ok {
		r.s.SetSelectionColor(sel)
	} else if !theme.Selection.IsZero() {
		r.s.SetSelectionColor(theme.Selection)
	}

	lines, ok := r.cache.highlighter.Highlight(lang, source, theme.Dark)
	if !ok {
		lines = highlight.Plain(source)
	}

	startY := r.s.CursorY()
	r.copyAffordance(id, source)

	lineHeight := r.o.Typography.ResolveCodeLineHeight(r.s.MonoFontSize())
	for _, line := range lines {
		spans := make([]ui.Span, 0, len(line))
		for _, seg := range line {
			spans = append(spans, ui.Span{
				Text: seg.Text,
				Format: ui.TextFormat{
					Size:       r.s.MonoFontSize(),
					Color:      seg.Color,
					Code:       true,
					LineHeight: lineHeight,
				},
			})
		}
		if len(spans) == 0 {
			spans = append(spans, ui.Span{Format: ui.TextFormat{Size: r.s.MonoFontSize(), Code: true, LineHeight: lineHeight}})
		}
		r.s.Text(spans...)
	}

	r.s.PaintRect(
		ui.Rect{X: 0, Y: startY, W: r.s.AvailableWidth(), H: r.s.CursorY() - startY},
		bg,
		ui.Stroke{Width: 1, Color: theme.Border},
	)
	r.s.Newline()
}

// copyAffordance draws the copy button for a code block. After a click the
// checkmark glyph persists for as long as the pointer stays on the button
// and reverts once it leaves. Clicking always copies, checkmark or not.
func (r *renderer) copyAffordance(id, source string) {
	label := copyGlyph
	if r.cache.copied[id] {
		label = copiedGlyph
	}
	resp := r.s.Button(id, label)
	if resp.Clicked {
		r.s.CopyText(strings.TrimSuffix(source, "\n"))
		r.cache.copied[id] = true
	} else if !resp.Hovered {
		delete(r.cache.copied, id)
	}
}

// renderDiagram displays a diagram block in whatever state the pipeline has
// for its hash. Without a pipeline the block falls back to the syntax
// highlighter path.
func (r *renderer) renderDiagram(lang, source string) {
	if r.cache.diagrams == nil {
		r.renderCodeBlock(lang, source)
		return
	}

	st := r.cache.diagrams.Encounter(r.s, source)
	theme := r.s.Theme()

	switch st.Status {
	case diagram.StatusRendering:
		rect, _ := r.s.Allocate(r.s.AvailableWidth(), diagramPlaceholderHeight)
		r.s.PaintText(rect.Center(), ui.AnchorCenter, "Rendering diagram…", ui.TextFormat{Color: theme.WeakText})
		r.s.RequestRepaint(diagramRepaintInterval)
	case diagram.StatusReady:
		resp := r.s.Image(st.Texture, st.Size, r.s.AvailableWidth())
		if resp.Hovered {
			r.s.SetPointerCursor()
		}
		if resp.Clicked {
			r.cache.lastDiagramClick = st.Texture
			r.cache.lastDiagramClickOK = true
		}
	case diagram.StatusError:
		r.s.Text(ui.Span{Text: st.Message, Format: ui.TextFormat{Color: theme.Error}})
	}
	r.s.Newline()
}
