package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
	gmast "github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

func TestParseNeverFails(t *testing.T) {
	require.NotNil(t, Parse(nil))
	require.NotNil(t, Parse([]byte("[[[~~``*")))
}

func TestParseGFMExtensions(t *testing.T) {
	source := []byte("- [ ] task\n\n~~gone~~\n\n| a |\n|---|\n| b |\n\nRef[^1].\n\n[^1]: note\n")
	doc := Parse(source)

	found := map[gmast.NodeKind]bool{}
	err := gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if entering {
			found[n.Kind()] = true
		}
		return gmast.WalkContinue, nil
	})
	require.NoError(t, err)

	require.True(t, found[extast.KindTaskCheckBox])
	require.True(t, found[extast.KindStrikethrough])
	require.True(t, found[extast.KindTable])
	require.True(t, found[extast.KindFootnoteLink])
}

func TestBlockLines(t *testing.T) {
	source := []byte("```go\npackage main\n\nfunc main() {}\n```\n")
	doc := Parse(source)

	var block gmast.Node
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		if _, ok := c.(*gmast.FencedCodeBlock); ok {
			block = c
		}
	}
	require.NotNil(t, block)
	require.Equal(t, "package main\n\nfunc main() {}\n", string(BlockLines(block, source)))
}
