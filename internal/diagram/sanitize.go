package diagram

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// fallbackFontFamily replaces whatever fonts the upstream diagram renderer
// asked for; the rasterizer only resolves widely available families.
const fallbackFontFamily = `Helvetica, Arial, sans-serif`

// wrapThreshold is the character count at which re-flowed fallback labels
// break into a new line.
const wrapThreshold = 30

var cssFontFamilyRe = regexp.MustCompile(`font-family\s*:\s*(?:"[^"]*"|'[^']*'|[^;}"'])+`)

// Sanitize runs the three SVG text passes over the renderer's output:
// font-family substitution, duplicate stroke-outline text removal, and
// fallback label re-flow. The input must be well-formed XML.
func Sanitize(svg []byte) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(svg); err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("parse svg: no root element")
	}

	substituteFonts(root)
	if root.SelectAttr("font-family") == nil {
		root.CreateAttr("font-family", fallbackFontFamily)
	}
	removeStrokeOutlineText(root)
	reflowFallbackGroups(root)

	return doc.WriteToBytes()
}

// substituteFonts rewrites font-family declarations in both the XML
// attribute form and the CSS property form (style attributes and <style>
// element bodies).
func substituteFonts(e *etree.Element) {
	if a := e.SelectAttr("font-family"); a != nil {
		a.Value = fallbackFontFamily
	}
	if a := e.SelectAttr("style"); a != nil {
		a.Value = cssFontFamilyRe.ReplaceAllString(a.Value, "font-family:"+fallbackFontFamily)
	}
	if e.Tag == "style" {
		text := cssFontFamilyRe.ReplaceAllString(e.Text(), "font-family:"+fallbackFontFamily)
		e.SetText(text)
	}
	for _, child := range e.ChildElements() {
		substituteFonts(child)
	}
}

// removeStrokeOutlineText drops <text> elements that carry a stroke and
// duplicate the content of an unstroked sibling. The upstream renderer
// emits these pairs to fake outlined labels, which fattens glyphs once
// rasterized.
func removeStrokeOutlineText(e *etree.Element) {
	texts := make(map[string]bool)
	var stroked []*etree.Element
	for _, child := range e.ChildElements() {
		if child.Tag != "text" {
			continue
		}
		content := flattenText(child)
		if hasStroke(child) {
			stroked = append(stroked, child)
		} else {
			texts[content] = true
		}
	}
	for _, s := range stroked {
		if texts[flattenText(s)] {
			e.RemoveChild(s)
		}
	}

	for _, child := range e.ChildElements() {
		removeStrokeOutlineText(child)
	}
}

func hasStroke(e *etree.Element) bool {
	a := e.SelectAttr("stroke")
	return a != nil && a.Value != "" && a.Value != "none"
}

// reflowFallbackGroups rebuilds the text of groups the renderer marked as
// fallback labels: all tspan fragments are merged, word-wrapped at a fixed
// threshold, and re-emitted as one <text> per line with vertically centered
// offsets so multi-line labels stay balanced around the original anchor.
func reflowFallbackGroups(e *etree.Element) {
	if e.Tag == "g" && strings.Contains(attrValue(e, "class"), "fallback") {
		reflowGroup(e)
		return
	}
	for _, child := range e.ChildElements() {
		reflowFallbackGroups(child)
	}
}

func reflowGroup(g *etree.Element) {
	var textElems []*etree.Element
	for _, child := range g.ChildElements() {
		if child.Tag == "text" {
			textElems = append(textElems, child)
		}
	}
	if len(textElems) == 0 {
		return
	}

	var parts []string
	for _, t := range textElems {
		if s := strings.TrimSpace(flattenText(t)); s != "" {
			parts = append(parts, s)
		}
	}
	merged := strings.Join(parts, " ")
	lines := wrapWords(merged, wrapThreshold)

	template := textElems[0]
	x := attrValue(template, "x")
	baseY := parseFloat(attrValue(template, "y"), 0)
	fontSize := parseFloat(attrValue(template, "font-size"), 16)
	lineHeight := fontSize * 1.2

	for _, t := range textElems {
		g.RemoveChild(t)
	}

	n := len(lines)
	for i, line := range lines {
		t := g.CreateElement("text")
		for _, a := range template.Attr {
			if a.Key != "y" {
				t.CreateAttr(a.Key, a.Value)
			}
		}
		if x == "" {
			t.CreateAttr("x", "0")
		}
		offset := (float64(i) - float64(n-1)/2) * lineHeight
		t.CreateAttr("y", strconv.FormatFloat(baseY+offset, 'f', -1, 64))
		t.SetText(line)
	}
}

// flattenText concatenates an element's own text with that of all nested
// elements (tspans in practice).
func flattenText(e *etree.Element) string {
	var b strings.Builder
	b.WriteString(e.Text())
	for _, child := range e.ChildElements() {
		b.WriteString(flattenText(child))
		b.WriteString(child.Tail())
	}
	return b.String()
}

// wrapWords greedily wraps text at the character limit, never splitting a
// word.
func wrapWords(text string, limit int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		if len(current)+1+len(w) > limit {
			lines = append(lines, current)
			current = w
			continue
		}
		current += " " + w
	}
	return append(lines, current)
}

func attrValue(e *etree.Element, key string) string {
	if a := e.SelectAttr(key); a != nil {
		return a.Value
	}
	return ""
}

func parseFloat(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fallback
	}
	return v
}
