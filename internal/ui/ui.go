// Package ui defines the contract between the rendering engine and the host
// surface that actually lays out text and paint primitives. The engine never
// talks to a concrete GUI toolkit; it emits primitives through Surface and
// reads back input state from the returned Response values.
package ui

import (
	"image"
	"time"
)

// Color is straight (non-premultiplied) 8-bit RGBA. The zero value means
// "host default" wherever a format accepts it.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// IsZero reports whether the color is unset.
func (c Color) IsZero() bool {
	return c == Color{}
}

// Stroke describes an outline width and color.
type Stroke struct {
	Width float32
	Color Color
}

// Point is a position in surface coordinates.
type Point struct {
	X, Y float32
}

// Size is a width/height pair in logical pixels.
type Size struct {
	W, H float32
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float32
}

// Center returns the rectangle's midpoint.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Anchor selects the reference point used when painting positioned text.
type Anchor int

const (
	AnchorCenter Anchor = iota
	AnchorRightCenter
	AnchorRightTop
)

// TextFormat carries the per-run visual attributes resolved by the style
// accumulator. Zero values mean host defaults.
type TextFormat struct {
	Size          float32
	Color         Color
	Strong        bool
	Italics       bool
	Strikethrough bool
	Underline     *Stroke
	Code          bool
	Raised        bool
	Small         bool
	// LineHeight overrides the font's built-in line height when > 0.
	LineHeight float32
}

// Span is one styled text run.
type Span struct {
	Text   string
	Format TextFormat
}

// Response reports the allocated region and the input state the host
// observed for the emitted widget this frame.
type Response struct {
	Rect          Rect
	Clicked       bool
	MiddleClicked bool
	Hovered       bool
}

// TextureID is an opaque handle to an image uploaded to the host. The engine
// only ever stores the handle plus a logical size, never pixel data.
type TextureID int64

// Surface is the host immediate-mode rendering surface. All methods are
// called from the render thread and must not block.
type Surface interface {
	Theme() Theme
	BodyFontSize() float32
	MonoFontSize() float32
	SmallFontSize() float32
	// SpaceWidth is the advance width of a body-text space.
	SpaceWidth() float32
	AvailableWidth() float32
	// CursorY is the current layout position, local to the emitted region.
	CursorY() float32

	// Text lays out styled inline runs and advances the cursor.
	Text(spans ...Span) Response
	// ClickableText lays out runs as one clickable unit.
	ClickableText(spans ...Span) Response
	Newline()
	Space(px float32)
	// Rule draws a horizontal separator.
	Rule()

	// Allocate reserves a rectangular region and reports input on it.
	Allocate(w, h float32) (Rect, Response)
	PaintCircle(center Point, radius float32, fill Color, stroke Stroke)
	PaintLine(from, to Point, stroke Stroke)
	PaintRect(r Rect, fill Color, stroke Stroke)
	PaintText(pos Point, anchor Anchor, text string, format TextFormat)

	// Button emits a small icon button with a stable identity.
	Button(id, label string) Response
	// Checkbox emits a checkbox; a non-mutable checkbox draws the same but
	// reports no clicks.
	Checkbox(id string, checked, mutable bool) Response

	// Image displays an uploaded texture scaled to at most maxWidth.
	Image(tex TextureID, logical Size, maxWidth float32) Response
	// ImageFromURI asks the host's image loaders to resolve and display a
	// URI, scaled to at most maxWidth.
	ImageFromURI(uri, alt string, maxWidth float32) Response
	// UploadTexture hands pixel data to the host and returns its handle.
	UploadTexture(img image.Image, logical Size) TextureID
	// InstallImageLoaders performs the host's one-time loader setup. Safe to
	// call more than once; callers are expected to guard it anyway.
	InstallImageLoaders()

	// SetSelectionColor overrides the host's text selection color until the
	// end of the emitted region.
	SetSelectionColor(c Color)

	// Tooltip attaches hover text to the most recently emitted widget.
	Tooltip(text string)
	SetPointerCursor()
	OpenURL(url string)
	CopyText(text string)
	RequestRepaint(after time.Duration)
}

// Theme exposes the host's current color scheme to the engine.
type Theme struct {
	Dark           bool
	Background     Color
	Text           Color
	StrongText     Color
	WeakText       Color
	Link           Color
	CodeBackground Color
	Selection      Color
	Border         Color
	Error          Color
}

// DefaultLightTheme mirrors the shipped light palette.
func DefaultLightTheme() Theme {
	return Theme{
		Dark:           false,
		Background:     RGB(0xF8, 0xF8, 0xF8),
		Text:           RGB(0x33, 0x33, 0x33),
		StrongText:     RGB(0x11, 0x11, 0x11),
		WeakText:       RGB(0x77, 0x77, 0x77),
		Link:           RGB(0x0B, 0x61, 0xC4),
		CodeBackground: RGB(0xF0, 0xF0, 0xF0),
		Selection:      RGB(0xB3, 0xD7, 0xFF),
		Border:         RGB(0xD0, 0xD0, 0xD0),
		Error:          RGB(0xC6, 0x2B, 0x28),
	}
}

// DefaultDarkTheme mirrors the shipped dark palette.
func DefaultDarkTheme() Theme {
	return Theme{
		Dark:           true,
		Background:     RGB(0x12, 0x12, 0x12),
		Text:           RGB(0xE0, 0xE0, 0xE0),
		StrongText:     RGB(0xFF, 0xFF, 0xFF),
		WeakText:       RGB(0x9A, 0x9A, 0x9A),
		Link:           RGB(0x58, 0xA6, 0xFF),
		CodeBackground: RGB(0x1E, 0x1E, 0x1E),
		Selection:      RGB(0x26, 0x4F, 0x78),
		Border:         RGB(0x3A, 0x3A, 0x3A),
		Error:          RGB(0xE5, 0x53, 0x4F),
	}
}
