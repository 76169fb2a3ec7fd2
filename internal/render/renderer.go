package render

import (
	"strconv"
	"strings"

	gmast "github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/mdcanvas/internal/htmltable"
	"git.home.luguber.info/inful/mdcanvas/internal/markdown"
	"git.home.luguber.info/inful/mdcanvas/internal/style"
	"git.home.luguber.info/inful/mdcanvas/internal/ui"
)

// diagramLanguage is the code fence language tag routed to the diagram
// pipeline instead of the syntax highlighter.
const diagramLanguage = "mermaid"

// renderer is the per-pass state of the document walk. It lives for exactly
// one render call; everything that must survive between calls belongs on the
// Cache.
type renderer struct {
	s      ui.Surface
	cache  *Cache
	o      Options
	source []byte

	style style.Style
	list  list
	// buf accumulates inline spans until a block boundary or an interactive
	// unit (link, image, checkbox) forces a flush.
	buf []ui.Span
	// stripPrefix drops an alert marker from the next text run.
	stripPrefix string
	blockSeq    int
	edits       []markdown.CheckboxEdit
}

func (r *renderer) renderBlocks(parent gmast.Node) {
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		r.renderBlock(c)
	}
}

func (r *renderer) renderBlock(n gmast.Node) {
	switch t := n.(type) {
	case *gmast.Heading:
		r.renderHeading(t)
	case *gmast.Paragraph:
		r.renderInlines(t)
		r.flushText()
		r.s.Newline()
		if r.list.depth() == 0 {
			if sp := r.o.Typography.ResolveParagraphSpacing(r.s.BodyFontSize()); sp > 0 {
				r.s.Space(sp)
			}
		}
	case *gmast.TextBlock:
		// Tight list item content; item separation is the list's concern.
		r.renderInlines(t)
		r.flushText()
	case *gmast.Blockquote:
		r.renderBlockquote(t)
	case *gmast.List:
		r.renderList(t)
	case *gmast.FencedCodeBlock:
		lang := string(t.Language(r.source))
		body := string(markdown.BlockLines(t, r.source))
		switch {
		case strings.EqualFold(lang, diagramLanguage):
			r.renderDiagram(lang, body)
		case r.o.RenderMath != nil && (strings.EqualFold(lang, "math") || strings.EqualFold(lang, "latex")):
			r.o.RenderMath(r.s, body)
		default:
			r.renderCodeBlock(lang, body)
		}
	case *gmast.CodeBlock:
		r.renderCodeBlock("", string(markdown.BlockLines(t, r.source)))
	case *gmast.ThematicBreak:
		r.s.Rule()
		r.s.Newline()
	case *gmast.HTMLBlock:
		raw := string(markdown.BlockLines(t, r.source))
		if t.HasClosure() {
			raw += string(t.ClosureLine.Value(r.source))
		}
		r.renderHTML(raw)
	case *extast.Table:
		r.renderTable(t)
	case *extast.FootnoteList:
		for c := t.FirstChild(); c != nil; c = c.NextSibling() {
			if def, ok := c.(*extast.Footnote); ok {
				r.renderFootnoteDefinition(def)
			}
		}
	default:
		// Unknown block kinds are skipped rather than aborting the walk.
	}
}

func (r *renderer) renderHeading(t *gmast.Heading) {
	body := r.s.BodyFontSize()
	if above := r.o.Typography.ResolveHeadingAbove(body); above > 0 {
		r.s.Space(above)
	}

	localY := r.s.CursorY()
	saved := r.style
	r.style.Heading = t.Level
	r.renderInlines(t)
	r.flushText()
	r.style = saved

	r.cache.recordHeader(inlineText(t, r.source), r.cache.scrollOffs+localY)

	r.s.Newline()
	if below := r.o.Typography.ResolveHeadingBelow(body); below > 0 {
		r.s.Space(below)
	}
}

func (r *renderer) renderBlockquote(t *gmast.Blockquote) {
	accent := style.WeakColor(r.s.Theme())
	startY := r.s.CursorY()

	if first := t.FirstChild(); first != nil {
		if alert, marker, ok := r.o.Alerts.Detect(inlineText(first, r.source)); ok {
			accent = alert.Accent
			r.s.Text(ui.Span{
				Text:   alert.Icon + " " + alert.Label,
				Format: ui.TextFormat{Size: r.s.BodyFontSize(), Color: alert.Accent, Strong: true},
			})
			r.s.Newline()
			r.stripPrefix = marker
		}
	}

	savedQuote := r.style.Quote
	r.style.Quote = true
	r.renderBlocks(t)
	r.style.Quote = savedQuote
	r.stripPrefix = ""

	// 3px accent bar along the quote's left edge.
	r.s.PaintLine(
		ui.Point{X: 1.5, Y: startY},
		ui.Point{X: 1.5, Y: r.s.CursorY()},
		ui.Stroke{Width: 3, Color: accent},
	)
	r.s.Newline()
}

func (r *renderer) renderList(t *gmast.List) {
	r.list.startLevel(t.IsOrdered(), t.Start)
	for c := t.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*gmast.ListItem)
		if !ok {
			continue
		}
		r.list.startItem(r.s, r.o.IndentationSpaces)
		r.renderBlocks(item)
	}
	r.list.endLevel()
	if r.list.depth() == 0 {
		r.s.Newline()
	}
}

func (r *renderer) renderInlines(parent gmast.Node) {
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		r.renderInline(c, parent)
	}
}

func (r *renderer) renderInline(n gmast.Node, container gmast.Node) {
	switch t := n.(type) {
	case *gmast.Text:
		txt := string(t.Segment.Value(r.source))
		if r.stripPrefix != "" {
			txt = r.stripMarker(txt)
			if txt == "" {
				return
			}
		}
		r.appendText(txt)
		if t.SoftLineBreak() {
			r.appendText(" ")
		}
		if t.HardLineBreak() {
			r.flushText()
			r.s.Newline()
		}
	case *gmast.String:
		r.appendText(string(t.Value))
	case *gmast.CodeSpan:
		saved := r.style.Code
		r.style.Code = true
		r.renderInlines(t)
		r.style.Code = saved
	case *gmast.Emphasis:
		saved := r.style
		if t.Level >= 2 {
			r.style.Strong = true
		} else {
			r.style.Emphasis = true
		}
		r.renderInlines(t)
		r.style = saved
	case *extast.Strikethrough:
		saved := r.style.Strikethrough
		r.style.Strikethrough = true
		r.renderInlines(t)
		r.style.Strikethrough = saved
	case *gmast.Link:
		r.flushText()
		r.renderLink(string(t.Destination), r.collectSpans(t))
	case *gmast.AutoLink:
		r.flushText()
		url := string(t.URL(r.source))
		r.renderLink(url, []ui.Span{{Text: string(t.Label(r.source)), Format: r.format()}})
	case *gmast.Image:
		r.renderImage(string(t.Destination), inlineText(t, r.source))
	case *extast.FootnoteLink:
		f := r.format()
		f.Size = r.s.SmallFontSize()
		f.Small = true
		f.Raised = true
		f.Strong = true
		r.buf = append(r.buf, ui.Span{Text: strconv.Itoa(t.Index), Format: f})
	case *extast.TaskCheckBox:
		r.renderCheckbox(t, container)
	case *gmast.RawHTML:
		raw := segmentsText(t.Segments, r.source)
		if r.o.RenderHTML != nil {
			r.flushText()
			r.o.RenderHTML(r.s, raw)
		} else {
			r.appendText(raw)
		}
	default:
		if n.Type() == gmast.TypeInline {
			r.renderInlines(n)
		}
	}
}

// stripMarker removes a pending alert marker from the head of a text run.
// The marker's brackets arrive as their own text nodes, so the prefix is
// consumed run by run until it is covered.
func (r *renderer) stripMarker(txt string) string {
	trimmed := strings.TrimLeft(txt, " \t")
	if trimmed == "" {
		return ""
	}
	n := min(len(trimmed), len(r.stripPrefix))
	if trimmed[:n] != r.stripPrefix[:n] {
		r.stripPrefix = ""
		return txt
	}
	r.stripPrefix = r.stripPrefix[n:]
	rest := trimmed[n:]
	if r.stripPrefix == "" {
		rest = strings.TrimLeft(rest, " \t")
	}
	return rest
}

func (r *renderer) renderCheckbox(t *extast.TaskCheckBox, container gmast.Node) {
	r.flushText()

	// The container block's first line starts at the checkbox marker, which
	// was consumed from the line during inline parsing.
	start := -1
	if lines := container.Lines(); lines.Len() > 0 {
		seg := lines.At(0)
		if seg.Start+3 <= len(r.source) && r.source[seg.Start] == '[' && r.source[seg.Start+2] == ']' {
			start = seg.Start
		}
	}

	var id string
	if start >= 0 {
		id = strconv.Itoa(start)
	} else {
		r.blockSeq++
		id = "cb-" + strconv.Itoa(r.blockSeq)
	}

	resp := r.s.Checkbox(id, t.IsChecked, r.o.Mutable)
	if resp.Clicked && r.o.Mutable && start >= 0 {
		r.edits = append(r.edits, markdown.CheckboxEdit{
			Start:   start,
			End:     start + 3,
			Checked: !t.IsChecked,
		})
	}
}

func (r *renderer) renderTable(t *extast.Table) {
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		_, header := row.(*extast.TableHeader)
		var spans []ui.Span
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			if len(spans) > 0 {
				spans = append(spans, ui.Span{Text: "  ", Format: r.format()})
			}
			cellSpans := r.collectSpans(cell)
			if header {
				for i := range cellSpans {
					cellSpans[i].Format.Strong = true
				}
			}
			spans = append(spans, cellSpans...)
		}
		if len(spans) > 0 {
			r.s.Text(spans...)
		}
		if header {
			r.s.Rule()
		}
	}
	r.s.Newline()
}

func (r *renderer) renderHTML(raw string) {
	if table, ok := htmltable.Parse(raw); ok {
		r.renderHTMLTable(table)
		return
	}
	if r.o.RenderHTML != nil {
		r.o.RenderHTML(r.s, raw)
		return
	}
	r.s.Text(ui.Span{Text: raw, Format: r.format()})
	r.s.Newline()
}

func (r *renderer) renderHTMLTable(t htmltable.Table) {
	emit := func(row []string, strong bool) {
		var spans []ui.Span
		for _, cell := range row {
			if len(spans) > 0 {
				spans = append(spans, ui.Span{Text: "  ", Format: r.format()})
			}
			f := r.format()
			f.Strong = strong
			spans = append(spans, ui.Span{Text: cell, Format: f})
		}
		if len(spans) > 0 {
			r.s.Text(spans...)
		}
	}
	for _, row := range t.Header {
		emit(row, true)
	}
	if len(t.Header) > 0 {
		r.s.Rule()
	}
	for _, row := range t.Rows {
		emit(row, false)
	}
	r.s.Newline()
}

func (r *renderer) renderFootnoteDefinition(def *extast.Footnote) {
	cell, _ := r.s.Allocate(4*r.s.SpaceWidth(), r.s.BodyFontSize())
	r.s.PaintText(
		ui.Point{X: cell.X + cell.W, Y: cell.Y},
		ui.AnchorRightTop,
		strconv.Itoa(def.Index)+".",
		ui.TextFormat{Size: r.s.SmallFontSize(), Small: true},
	)
	r.renderBlocks(def)
}

// collectSpans renders an inline subtree into a detached span buffer.
func (r *renderer) collectSpans(n gmast.Node) []ui.Span {
	saved := r.buf
	r.buf = nil
	r.renderInlines(n)
	spans := r.buf
	r.buf = saved
	return spans
}

func (r *renderer) format() ui.TextFormat {
	return r.style.Format(r.s.BodyFontSize(), r.s.Theme(), r.o.Typography)
}

func (r *renderer) appendText(txt string) {
	if txt == "" {
		return
	}
	r.buf = append(r.buf, ui.Span{Text: txt, Format: r.format()})
}

func (r *renderer) flushText() {
	if len(r.buf) == 0 {
		return
	}
	r.s.Text(r.buf...)
	r.buf = nil
}

// inlineText flattens an inline subtree to its plain text.
func inlineText(n gmast.Node, source []byte) string {
	var b strings.Builder
	var walk func(gmast.Node)
	walk = func(node gmast.Node) {
		switch t := node.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(source))
		case *gmast.String:
			b.Write(t.Value)
		}
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func segmentsText(segs *text.Segments, source []byte) string {
	var b strings.Builder
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}
