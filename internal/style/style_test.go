package style

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdcanvas/internal/typography"
	"git.home.luguber.info/inful/mdcanvas/internal/ui"
)

func TestHeadingScale(t *testing.T) {
	cases := []struct {
		level int
		size  float32
		bold  bool
	}{
		{1, 32, true},
		{2, 25.6, true},
		{3, 20, true},
		{4, 18, true},
		{5, 16, false},
		{6, 14, false},
	}
	for _, tc := range cases {
		f := Style{Heading: tc.level}.Format(16, ui.DefaultLightTheme(), typography.Config{})
		require.InDelta(t, tc.size, f.Size, 0.01, "level %d size", tc.level)
		require.Equal(t, tc.bold, f.Strong, "level %d bold", tc.level)
	}
}

func TestFlagsLayerOnTopOfHeading(t *testing.T) {
	s := Style{Heading: 5, Emphasis: true, Strikethrough: true}
	f := s.Format(16, ui.DefaultLightTheme(), typography.Config{})
	require.True(t, f.Italics)
	require.True(t, f.Strikethrough)
	require.False(t, f.Strong)
}

func TestHeadingLineHeightTightened(t *testing.T) {
	typo := typography.Recommended()
	body := Style{}.Format(16, ui.DefaultLightTheme(), typo)
	require.InDelta(t, 24.0, body.LineHeight, 0.01)

	// H1 at 32px with the 1.5 body multiplier mapped to 1.3.
	h1 := Style{Heading: 1}.Format(16, ui.DefaultLightTheme(), typo)
	require.InDelta(t, 41.6, h1.LineHeight, 0.01)
}

func TestQuoteUsesWeakColor(t *testing.T) {
	theme := ui.DefaultLightTheme()
	f := Style{Quote: true}.Format(16, theme, typography.Config{})
	require.Equal(t, theme.WeakText, f.Color)
}

func TestWeakColorBlendFallback(t *testing.T) {
	theme := ui.Theme{
		Text:       ui.RGB(0, 0, 0),
		Background: ui.RGB(255, 255, 255),
	}
	c := WeakColor(theme)
	// Blended toward the background: strictly lighter than pure text.
	require.Greater(t, c.R, uint8(0))
	require.Less(t, c.R, uint8(255))
}

func TestCodeFlag(t *testing.T) {
	f := Style{Code: true}.Format(16, ui.DefaultLightTheme(), typography.Config{})
	require.True(t, f.Code)
	require.InDelta(t, 16.0, f.Size, 0.01)
}
