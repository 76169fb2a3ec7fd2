package typography

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMeasurementResolve(t *testing.T) {
	require.InDelta(t, 24.0, Multiplier(1.5).Resolve(16), 0.001)
	require.InDelta(t, 24.0, Pixels(24).Resolve(16), 0.001)
	require.InDelta(t, 24.0, Pixels(24).Resolve(99), 0.001)
}

func TestMeasurementForHeading(t *testing.T) {
	// 1.5x body maps to 1.3x heading.
	h := Multiplier(1.5).ForHeading()
	require.Equal(t, KindMultiplier, h.Kind)
	require.InDelta(t, 1.3, h.Value, 0.001)

	// A 1.0x multiplier stays at 1.0x.
	require.InDelta(t, 1.0, Multiplier(1.0).ForHeading().Value, 0.001)

	// Absolute pixels shrink to 80%.
	p := Pixels(20).ForHeading()
	require.Equal(t, KindPixels, p.Kind)
	require.InDelta(t, 16.0, p.Value, 0.001)
}

func TestConfigZeroValueResolvesToZero(t *testing.T) {
	var c Config
	require.False(t, c.IsConfigured())
	require.Zero(t, c.ResolveLineHeight(16))
	require.Zero(t, c.ResolveHeadingLineHeight(32))
	require.Zero(t, c.ResolveCodeLineHeight(14))
	require.Zero(t, c.ResolveParagraphSpacing(16))
	require.Zero(t, c.ResolveHeadingAbove(16))
	require.Zero(t, c.ResolveHeadingBelow(16))
}

func TestRecommended(t *testing.T) {
	c := Recommended()
	require.True(t, c.IsConfigured())
	require.InDelta(t, 24.0, c.ResolveLineHeight(16), 0.001)
	require.InDelta(t, 24.0, c.ResolveParagraphSpacing(16), 0.001)
	require.InDelta(t, 32.0, c.ResolveHeadingAbove(16), 0.001)
	require.InDelta(t, 8.0, c.ResolveHeadingBelow(16), 0.001)
}

func TestHeadingLineHeightUsesHeadingSize(t *testing.T) {
	lh := Multiplier(1.5)
	c := Config{LineHeight: &lh}
	// Heading multiplier 1.3 applied to the heading's own font size.
	require.InDelta(t, 41.6, c.ResolveHeadingLineHeight(32), 0.01)
}
