// Package style accumulates per-run text attributes (heading level, strong,
// emphasis, strikethrough, quote, code) and resolves them into the concrete
// visual attributes handed to the host surface.
package style

import (
	"github.com/lucasb-eyer/go-colorful"

	"git.home.luguber.info/inful/mdcanvas/internal/typography"
	"git.home.luguber.info/inful/mdcanvas/internal/ui"
)

// Style holds the composable flags of one inline run. Multiple flags may be
// set at once; a heading level overrides size and weight while the other
// flags still layer on top.
type Style struct {
	// Heading is 1-6 when inside a heading, 0 otherwise.
	Heading       int
	Strong        bool
	Emphasis      bool
	Strikethrough bool
	Quote         bool
	Code          bool
}

// headingScale maps heading level to the multiplier of the body font size
// and whether the heading is bold.
var headingScale = [6]struct {
	factor float32
	bold   bool
}{
	{2.0, true},
	{1.6, true},
	{1.25, true},
	{1.125, true},
	{1.0, false},
	{0.875, false},
}

// HeadingSize returns the resolved font size for a level 1-6 heading.
func HeadingSize(level int, bodySize float32) float32 {
	if level < 1 || level > 6 {
		return bodySize
	}
	return bodySize * headingScale[level-1].factor
}

// Format resolves the accumulated flags into a concrete text format for the
// given host metrics, theme and typography settings.
func (s Style) Format(bodySize float32, theme ui.Theme, typo typography.Config) ui.TextFormat {
	f := ui.TextFormat{Size: bodySize}

	if s.Heading >= 1 && s.Heading <= 6 {
		sc := headingScale[s.Heading-1]
		f.Size = bodySize * sc.factor
		f.Strong = sc.bold
		if lh := typo.ResolveHeadingLineHeight(f.Size); lh > 0 {
			f.LineHeight = lh
		}
	} else if lh := typo.ResolveLineHeight(bodySize); lh > 0 {
		f.LineHeight = lh
	}

	if s.Quote {
		f.Color = WeakColor(theme)
	}
	if s.Strong {
		f.Strong = true
	}
	if s.Emphasis {
		f.Italics = true
	}
	if s.Strikethrough {
		f.Strikethrough = true
	}
	if s.Code {
		f.Code = true
	}

	return f
}

// WeakColor derives the weakened text color used for quoted text by blending
// the theme's text color toward its background.
func WeakColor(theme ui.Theme) ui.Color {
	if !theme.WeakText.IsZero() {
		return theme.WeakText
	}
	text := toColorful(theme.Text)
	bg := toColorful(theme.Background)
	return fromColorful(text.BlendRgb(bg, 0.45))
}

func toColorful(c ui.Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func fromColorful(c colorful.Color) ui.Color {
	r, g, b := c.Clamped().RGB255()
	return ui.RGB(r, g, b)
}
