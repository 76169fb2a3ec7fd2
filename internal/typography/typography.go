// Package typography resolves abstract text measurements (multiples of the
// font size or absolute pixels) into concrete pixel values for line height
// and block spacing.
package typography

// MeasurementKind discriminates how a Measurement is interpreted.
type MeasurementKind int

const (
	// KindMultiplier scales the font size (1.5 means 150% of the font size).
	KindMultiplier MeasurementKind = iota
	// KindPixels is an absolute pixel value.
	KindPixels
)

// Measurement is a length that is either relative to a font size or absolute.
type Measurement struct {
	Kind  MeasurementKind
	Value float32
}

// Multiplier returns a Measurement relative to the font size.
func Multiplier(m float32) Measurement {
	return Measurement{Kind: KindMultiplier, Value: m}
}

// Pixels returns an absolute Measurement.
func Pixels(px float32) Measurement {
	return Measurement{Kind: KindPixels, Value: px}
}

// Resolve converts the measurement to pixels for the given font size.
func (m Measurement) Resolve(fontSize float32) float32 {
	if m.Kind == KindMultiplier {
		return fontSize * m.Value
	}
	return m.Value
}

// ForHeading tightens a body line-height measurement for use on headings.
// Multipliers are scaled so that 1.5x body becomes 1.3x heading; absolute
// values are reduced to 80%.
func (m Measurement) ForHeading() Measurement {
	if m.Kind == KindMultiplier {
		return Multiplier(1 + (m.Value-1)*0.6)
	}
	return Pixels(m.Value * 0.8)
}

// Config holds the typography settings for a render pass. Nil fields fall
// back to the host's built-in spacing.
type Config struct {
	// LineHeight applies to body text runs.
	LineHeight *Measurement
	// ParagraphSpacing is extra space between paragraphs.
	ParagraphSpacing *Measurement
	// HeadingSpacingAbove is extra space before headings.
	HeadingSpacingAbove *Measurement
	// HeadingSpacingBelow is extra space after headings.
	HeadingSpacingBelow *Measurement
	// CodeLineHeight applies to code block runs.
	CodeLineHeight *Measurement
}

// Recommended returns readability-oriented defaults: 1.5x line height,
// 1.5x paragraph spacing, 2.0x above and 0.5x below headings.
func Recommended() Config {
	lh := Multiplier(1.5)
	ps := Multiplier(1.5)
	above := Multiplier(2.0)
	below := Multiplier(0.5)
	return Config{
		LineHeight:          &lh,
		ParagraphSpacing:    &ps,
		HeadingSpacingAbove: &above,
		HeadingSpacingBelow: &below,
	}
}

// IsConfigured reports whether any setting is present.
func (c Config) IsConfigured() bool {
	return c.LineHeight != nil || c.ParagraphSpacing != nil ||
		c.HeadingSpacingAbove != nil || c.HeadingSpacingBelow != nil ||
		c.CodeLineHeight != nil
}

// ResolveLineHeight resolves the body line height, or 0 if unset.
func (c Config) ResolveLineHeight(fontSize float32) float32 {
	if c.LineHeight == nil {
		return 0
	}
	return c.LineHeight.Resolve(fontSize)
}

// ResolveHeadingLineHeight resolves the tightened heading line height for a
// heading of the given font size, or 0 if no line height is configured.
func (c Config) ResolveHeadingLineHeight(headingSize float32) float32 {
	if c.LineHeight == nil {
		return 0
	}
	return c.LineHeight.ForHeading().Resolve(headingSize)
}

// ResolveCodeLineHeight resolves the code line height, or 0 if unset.
func (c Config) ResolveCodeLineHeight(monoSize float32) float32 {
	if c.CodeLineHeight == nil {
		return 0
	}
	return c.CodeLineHeight.Resolve(monoSize)
}

// ResolveParagraphSpacing resolves extra paragraph spacing, or 0 if unset.
func (c Config) ResolveParagraphSpacing(fontSize float32) float32 {
	if c.ParagraphSpacing == nil {
		return 0
	}
	return c.ParagraphSpacing.Resolve(fontSize)
}

// ResolveHeadingAbove resolves spacing before a heading, or 0 if unset.
func (c Config) ResolveHeadingAbove(fontSize float32) float32 {
	if c.HeadingSpacingAbove == nil {
		return 0
	}
	return c.HeadingSpacingAbove.Resolve(fontSize)
}

// ResolveHeadingBelow resolves spacing after a heading, or 0 if unset.
func (c Config) ResolveHeadingBelow(fontSize float32) float32 {
	if c.HeadingSpacingBelow == nil {
		return 0
	}
	return c.HeadingSpacingBelow.Resolve(fontSize)
}
