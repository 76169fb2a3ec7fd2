// Package markdown is the parse front end of the rendering engine. It turns
// source text into the Goldmark AST whose walk order is the parse-event
// stream consumed by the render state machine, and it applies the byte-range
// edits the engine returns for checkbox toggling.
package markdown

import (
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// gfm is the shared parser configured with the GFM extensions the engine
// renders: strikethrough, task lists, tables and footnotes.
var gfm = goldmark.New(goldmark.WithExtensions(
	extension.Strikethrough,
	extension.TaskList,
	extension.Table,
	extension.Footnote,
))

// Parse parses markdown source into an AST. Parsing never fails; malformed
// input degrades to literal text nodes per CommonMark.
func Parse(source []byte) gmast.Node {
	return gfm.Parser().Parse(text.NewReader(source))
}

// BlockLines concatenates the source lines of a block node.
func BlockLines(n gmast.Node, source []byte) []byte {
	var out []byte
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		out = append(out, seg.Value(source)...)
	}
	return out
}
