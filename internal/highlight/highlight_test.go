package highlight

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHighlightKnownLanguage(t *testing.T) {
	p := NewDefaultProvider()

	lines, ok := p.Highlight("go", "package main\n\nfunc main() {}\n", false)
	require.True(t, ok)
	require.Len(t, lines, 3)

	// Keyword runs carry a theme color.
	var sawColored bool
	var text string
	for _, span := range lines[0] {
		text += span.Text
		if !span.Color.IsZero() {
			sawColored = true
		}
	}
	require.Equal(t, "package main", text)
	require.True(t, sawColored)
	require.Empty(t, lines[1])
}

func TestHighlightUnknownLanguageFallsBack(t *testing.T) {
	p := NewDefaultProvider()
	_, ok := p.Highlight("not-a-language-tag", "x", false)
	require.False(t, ok)
	_, ok = p.Highlight("", "x", false)
	require.False(t, ok)
}

func TestPlain(t *testing.T) {
	lines := Plain("a\nb\n")
	require.Len(t, lines, 2)
	require.Equal(t, "a", lines[0][0].Text)
	require.True(t, lines[0][0].Color.IsZero())
	require.Equal(t, "b", lines[1][0].Text)
}

func TestLexerCacheReuse(t *testing.T) {
	p := NewDefaultProvider()
	_, ok := p.Highlight("go", "package a\n", true)
	require.True(t, ok)
	p.mu.RLock()
	_, cached := p.lexers["go"]
	p.mu.RUnlock()
	require.True(t, cached)
}

func TestUnknownThemeNameFallsBackToDefaults(t *testing.T) {
	p := NewProvider("definitely-not-a-theme", "also-not-a-theme")
	lines, ok := p.Highlight("go", "package main\n", false)
	require.True(t, ok)
	require.NotEmpty(t, lines)
}

func TestBackground(t *testing.T) {
	p := NewDefaultProvider()
	_, okLight := p.Background(false)
	_, okDark := p.Background(true)
	// Solarized defines explicit backgrounds for both schemes.
	require.True(t, okLight)
	require.True(t, okDark)
}
