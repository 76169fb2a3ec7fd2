package render

import (
	"strconv"

	"git.home.luguber.info/inful/mdcanvas/internal/ui"
)

// afterGlyphSpace is the fixed gap between a list glyph cell and the item's
// content.
const afterGlyphSpace = 4

// listLevel is one entry of the nesting stack. A non-nil counter marks an
// ordered level and holds the next number to emit.
type listLevel struct {
	counter *int
	begun   bool
}

// list tracks ordered/unordered nesting depth and drives glyph emission and
// inter-item newlines.
type list struct {
	levels []listLevel
}

// startLevel pushes a nesting level. start is the first marker number of an
// ordered level and ignored for unordered ones.
func (l *list) startLevel(ordered bool, start int) {
	var counter *int
	if ordered {
		n := start
		counter = &n
	}
	l.levels = append(l.levels, listLevel{counter: counter})
}

// endLevel pops a nesting level. Popping with nothing open is a malformed
// event sequence and left as a no-op.
func (l *list) endLevel() {
	if len(l.levels) == 0 {
		return
	}
	l.levels = l.levels[:len(l.levels)-1]
}

func (l *list) depth() int {
	return len(l.levels)
}

// startItem separates the item from its predecessor, indents to the current
// depth and draws the level-appropriate glyph. The first item of each level
// suppresses the leading newline.
func (l *list) startItem(s ui.Surface, indentationSpaces int) {
	if len(l.levels) == 0 {
		return
	}
	level := &l.levels[len(l.levels)-1]
	if level.begun {
		s.Newline()
	} else {
		level.begun = true
	}

	depth := len(l.levels)
	if indent := float32(indentationSpaces*(depth-1)) * s.SpaceWidth(); indent > 0 {
		s.Allocate(indent, 0)
	}

	cell, _ := s.Allocate(4*s.SpaceWidth(), s.BodyFontSize())
	if level.counter != nil {
		n := *level.counter
		*level.counter = n + 1
		s.PaintText(
			ui.Point{X: cell.X + cell.W, Y: cell.Y + cell.H/2},
			ui.AnchorRightCenter,
			strconv.Itoa(n)+".",
			ui.TextFormat{Size: s.BodyFontSize()},
		)
	} else {
		radius := cell.H / 6
		if depth > 1 {
			// Nested bullets are hollow.
			s.PaintCircle(cell.Center(), radius, ui.Color{}, ui.Stroke{Width: 0.6, Color: s.Theme().Text})
		} else {
			s.PaintCircle(cell.Center(), radius, s.Theme().Text, ui.Stroke{})
		}
	}
	s.Allocate(afterGlyphSpace, 0)
}
