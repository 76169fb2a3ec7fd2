// Package highlight is the grammar/theme side of the code-block renderer. It
// resolves a language tag to a Chroma lexer, tokenizes source into colored
// line spans against a light/dark theme pair, and falls back to a single
// plain run when the language is unknown.
package highlight

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"git.home.luguber.info/inful/mdcanvas/internal/ui"
)

// DefaultThemeLight and DefaultThemeDark are the shipped theme pair.
const (
	DefaultThemeLight = "solarized-light"
	DefaultThemeDark  = "solarized-dark256"
)

// Span is one colored run within a line. A zero Color means the host's
// default text color.
type Span struct {
	Text  string
	Color ui.Color
}

// Line is the colored spans of one source line, excluding the newline.
type Line []Span

// Provider owns the shared grammar and theme sets. It is constructed once at
// startup and injected into every render cache that needs highlighting,
// rather than living in package-level state.
type Provider struct {
	light *chroma.Style
	dark  *chroma.Style

	mu     sync.RWMutex
	lexers map[string]chroma.Lexer
}

// NewProvider resolves the named themes, falling back to the shipped pair
// and finally to Chroma's fallback style for unknown names.
func NewProvider(lightName, darkName string) *Provider {
	light := styles.Get(lightName)
	if light == styles.Fallback && lightName != "" {
		light = styles.Get(DefaultThemeLight)
	}
	dark := styles.Get(darkName)
	if dark == styles.Fallback && darkName != "" {
		dark = styles.Get(DefaultThemeDark)
	}
	return &Provider{
		light:  light,
		dark:   dark,
		lexers: map[string]chroma.Lexer{},
	}
}

// NewDefaultProvider returns a Provider with the shipped theme pair.
func NewDefaultProvider() *Provider {
	return NewProvider(DefaultThemeLight, DefaultThemeDark)
}

func (p *Provider) style(dark bool) *chroma.Style {
	if dark {
		return p.dark
	}
	return p.light
}

// lexer resolves and caches a lexer for the language tag. Returns nil when
// no grammar matches.
func (p *Provider) lexer(lang string) chroma.Lexer {
	p.mu.RLock()
	lx, ok := p.lexers[lang]
	p.mu.RUnlock()
	if ok {
		return lx
	}

	lx = lexers.Get(lang)
	if lx == nil {
		// Language tags are often file-extension-like.
		lx = lexers.Match("file." + lang)
	}
	if lx != nil {
		lx = chroma.Coalesce(lx)
	}

	p.mu.Lock()
	p.lexers[lang] = lx
	p.mu.Unlock()
	return lx
}

// Highlight tokenizes source for the language tag against the theme matching
// the color scheme. The boolean is false when no grammar matched and the
// caller should use the plain fallback.
func (p *Provider) Highlight(lang, source string, dark bool) ([]Line, bool) {
	if lang == "" {
		return nil, false
	}
	lx := p.lexer(lang)
	if lx == nil {
		return nil, false
	}

	it, err := lx.Tokenise(nil, source)
	if err != nil {
		return nil, false
	}

	theme := p.style(dark)
	lines := []Line{nil}
	for _, tok := range it.Tokens() {
		if tok.Value == "" {
			continue
		}
		color := tokenColor(theme, tok.Type)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part == "" {
				continue
			}
			last := len(lines) - 1
			lines[last] = append(lines[last], Span{Text: part, Color: color})
		}
	}

	// Tokenise yields a trailing newline for most lexers; drop the empty
	// final line it produces.
	if len(lines) > 1 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}

	return lines, true
}

// Plain returns the whole block as uncolored lines, used when the language
// is unknown or highlighting is disabled.
func Plain(source string) []Line {
	raw := strings.Split(strings.TrimSuffix(source, "\n"), "\n")
	lines := make([]Line, len(raw))
	for i, l := range raw {
		if l != "" {
			lines[i] = Line{{Text: l}}
		}
	}
	return lines
}

// Background returns the theme's code-block background, false when the
// theme does not define one and host defaults should be used.
func (p *Provider) Background(dark bool) (ui.Color, bool) {
	entry := p.style(dark).Get(chroma.Background)
	if !entry.Background.IsSet() {
		return ui.Color{}, false
	}
	return fromChroma(entry.Background), true
}

// Selection returns the theme's selection color, false when undefined.
func (p *Provider) Selection(dark bool) (ui.Color, bool) {
	entry := p.style(dark).Get(chroma.Background)
	if !entry.Colour.IsSet() {
		return ui.Color{}, false
	}
	// Chroma has no dedicated selection entry; derive it from the theme
	// foreground the way terminals do.
	c := fromChroma(entry.Colour)
	c.A = 64
	return c, true
}

func tokenColor(theme *chroma.Style, t chroma.TokenType) ui.Color {
	entry := theme.Get(t)
	if !entry.Colour.IsSet() {
		return ui.Color{}
	}
	return fromChroma(entry.Colour)
}

func fromChroma(c chroma.Colour) ui.Color {
	return ui.RGB(c.Red(), c.Green(), c.Blue())
}
