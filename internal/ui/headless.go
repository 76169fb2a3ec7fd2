package ui

import (
	"image"
	"strconv"
	"strings"
	"time"
)

// OpKind identifies a recorded primitive.
type OpKind string

const (
	OpText      OpKind = "text"
	OpClickable OpKind = "clickable"
	OpNewline   OpKind = "newline"
	OpSpace     OpKind = "space"
	OpRule      OpKind = "rule"
	OpAllocate  OpKind = "allocate"
	OpCircle    OpKind = "circle"
	OpLine      OpKind = "line"
	OpRectOp    OpKind = "rect"
	OpPaintText OpKind = "paint-text"
	OpButton    OpKind = "button"
	OpCheckbox  OpKind = "checkbox"
	OpImage     OpKind = "image"
	OpImageURI  OpKind = "image-uri"
	OpSelection OpKind = "selection"
	OpTooltip   OpKind = "tooltip"
	OpOpenURL   OpKind = "open-url"
	OpCopyText  OpKind = "copy-text"
)

// Op is one primitive recorded by the headless surface.
type Op struct {
	Kind    OpKind
	Spans   []Span
	Text    string
	ID      string
	Rect    Rect
	Fill    Color
	Stroke  Stroke
	Anchor  Anchor
	Format  TextFormat
	Checked bool
	Mutable bool
	Texture TextureID
	Size    Size
}

// Headless is a Surface that records primitives instead of drawing them and
// reports scripted input. It is used by the engine's tests and by the CLI's
// layout dump.
type Headless struct {
	ThemeValue Theme
	Width      float32
	BodySize   float32
	MonoSize   float32
	SmallSize  float32

	// Clicks and Hovers script input: keys are "text:<runs>",
	// "button:<id>", "checkbox:<id>", "image:<texture id or uri>".
	Clicks       map[string]bool
	MiddleClicks map[string]bool
	Hovers       map[string]bool

	Ops      []Op
	Textures map[TextureID]image.Image
	Sizes    map[TextureID]Size
	Copied   []string
	Opened   []string
	Repaints []time.Duration

	LoadersInstalled int

	cursorY     float32
	nextTexture TextureID
}

// NewHeadless returns a headless surface with the light theme and typical
// desktop font metrics.
func NewHeadless() *Headless {
	return &Headless{
		ThemeValue: DefaultLightTheme(),
		Width:      600,
		BodySize:   16,
		MonoSize:   14,
		SmallSize:  13,
		Textures:   map[TextureID]image.Image{},
		Sizes:      map[TextureID]Size{},
	}
}

// Reset clears recorded ops and layout state but keeps scripted input and
// uploaded textures, modeling the next frame of an immediate-mode host.
func (h *Headless) Reset() {
	h.Ops = nil
	h.cursorY = 0
}

func (h *Headless) Theme() Theme            { return h.ThemeValue }
func (h *Headless) BodyFontSize() float32   { return h.BodySize }
func (h *Headless) MonoFontSize() float32   { return h.MonoSize }
func (h *Headless) SmallFontSize() float32  { return h.SmallSize }
func (h *Headless) SpaceWidth() float32     { return h.BodySize * 0.25 }
func (h *Headless) AvailableWidth() float32 { return h.Width }
func (h *Headless) CursorY() float32        { return h.cursorY }

func (h *Headless) response(key string, height float32) Response {
	r := Response{
		Rect:          Rect{X: 0, Y: h.cursorY, W: h.Width, H: height},
		Clicked:       h.Clicks[key],
		MiddleClicked: h.MiddleClicks[key],
		Hovered:       h.Hovers[key],
	}
	h.cursorY += height
	return r
}

func spanHeight(spans []Span, fallback float32) float32 {
	height := fallback
	for _, s := range spans {
		size := s.Format.Size
		if size == 0 {
			size = fallback
		}
		if s.Format.LineHeight > size {
			size = s.Format.LineHeight
		}
		if size > height {
			height = size
		}
	}
	return height
}

func spanText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

func (h *Headless) Text(spans ...Span) Response {
	h.Ops = append(h.Ops, Op{Kind: OpText, Spans: spans})
	return h.response("text:"+spanText(spans), spanHeight(spans, h.BodySize))
}

func (h *Headless) ClickableText(spans ...Span) Response {
	h.Ops = append(h.Ops, Op{Kind: OpClickable, Spans: spans})
	return h.response("text:"+spanText(spans), spanHeight(spans, h.BodySize))
}

func (h *Headless) Newline() {
	h.Ops = append(h.Ops, Op{Kind: OpNewline})
	h.cursorY += h.BodySize
}

func (h *Headless) Space(px float32) {
	h.Ops = append(h.Ops, Op{Kind: OpSpace, Size: Size{H: px}})
	h.cursorY += px
}

func (h *Headless) Rule() {
	h.Ops = append(h.Ops, Op{Kind: OpRule})
	h.cursorY += 6
}

func (h *Headless) Allocate(w, hgt float32) (Rect, Response) {
	rect := Rect{X: 0, Y: h.cursorY, W: w, H: hgt}
	h.Ops = append(h.Ops, Op{Kind: OpAllocate, Rect: rect})
	resp := h.response("allocate", hgt)
	resp.Rect = rect
	return rect, resp
}

func (h *Headless) PaintCircle(center Point, radius float32, fill Color, stroke Stroke) {
	h.Ops = append(h.Ops, Op{
		Kind:   OpCircle,
		Rect:   Rect{X: center.X, Y: center.Y, W: radius, H: radius},
		Fill:   fill,
		Stroke: stroke,
	})
}

func (h *Headless) PaintLine(from, to Point, stroke Stroke) {
	h.Ops = append(h.Ops, Op{
		Kind:   OpLine,
		Rect:   Rect{X: from.X, Y: from.Y, W: to.X - from.X, H: to.Y - from.Y},
		Stroke: stroke,
	})
}

func (h *Headless) PaintRect(r Rect, fill Color, stroke Stroke) {
	h.Ops = append(h.Ops, Op{Kind: OpRectOp, Rect: r, Fill: fill, Stroke: stroke})
}

func (h *Headless) PaintText(pos Point, anchor Anchor, text string, format TextFormat) {
	h.Ops = append(h.Ops, Op{
		Kind:   OpPaintText,
		Rect:   Rect{X: pos.X, Y: pos.Y},
		Anchor: anchor,
		Text:   text,
		Format: format,
	})
}

func (h *Headless) Button(id, label string) Response {
	h.Ops = append(h.Ops, Op{Kind: OpButton, ID: id, Text: label})
	return h.response("button:"+id, 0)
}

func (h *Headless) Checkbox(id string, checked, mutable bool) Response {
	h.Ops = append(h.Ops, Op{Kind: OpCheckbox, ID: id, Checked: checked, Mutable: mutable})
	resp := h.response("checkbox:"+id, h.BodySize)
	if !mutable {
		resp.Clicked = false
		resp.MiddleClicked = false
	}
	return resp
}

func (h *Headless) Image(tex TextureID, logical Size, maxWidth float32) Response {
	w := logical.W
	hgt := logical.H
	if maxWidth > 0 && w > maxWidth && w > 0 {
		scale := maxWidth / w
		w = maxWidth
		hgt *= scale
	}
	h.Ops = append(h.Ops, Op{Kind: OpImage, Texture: tex, Size: Size{W: w, H: hgt}})
	return h.response("image:"+strconv.FormatInt(int64(tex), 10), hgt)
}

func (h *Headless) ImageFromURI(uri, alt string, maxWidth float32) Response {
	h.Ops = append(h.Ops, Op{Kind: OpImageURI, Text: uri, ID: alt, Size: Size{W: maxWidth}})
	return h.response("image:"+uri, 100)
}

func (h *Headless) SetSelectionColor(c Color) {
	h.Ops = append(h.Ops, Op{Kind: OpSelection, Fill: c})
}

func (h *Headless) UploadTexture(img image.Image, logical Size) TextureID {
	h.nextTexture++
	h.Textures[h.nextTexture] = img
	h.Sizes[h.nextTexture] = logical
	return h.nextTexture
}

func (h *Headless) InstallImageLoaders() {
	h.LoadersInstalled++
}

func (h *Headless) Tooltip(text string) {
	h.Ops = append(h.Ops, Op{Kind: OpTooltip, Text: text})
}

func (h *Headless) SetPointerCursor() {}

func (h *Headless) OpenURL(url string) {
	h.Opened = append(h.Opened, url)
	h.Ops = append(h.Ops, Op{Kind: OpOpenURL, Text: url})
}

func (h *Headless) CopyText(text string) {
	h.Copied = append(h.Copied, text)
	h.Ops = append(h.Ops, Op{Kind: OpCopyText, Text: text})
}

func (h *Headless) RequestRepaint(after time.Duration) {
	h.Repaints = append(h.Repaints, after)
}

// OpsOfKind returns the recorded ops of one kind, in emission order.
func (h *Headless) OpsOfKind(kind OpKind) []Op {
	var out []Op
	for _, op := range h.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// AllText concatenates every emitted text run, useful for coarse assertions.
func (h *Headless) AllText() string {
	var b strings.Builder
	for _, op := range h.Ops {
		switch op.Kind {
		case OpText, OpClickable:
			b.WriteString(spanText(op.Spans))
		case OpPaintText:
			b.WriteString(op.Text)
		case OpNewline:
			b.WriteString("\n")
		}
	}
	return b.String()
}
