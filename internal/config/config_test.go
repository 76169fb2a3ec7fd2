package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), p)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/profile.yaml")
	require.Error(t, err)
}

func TestLoadProfile(t *testing.T) {
	path := writeProfile(t, `
dark: true
width: 900
indentation_spaces: 2
max_image_width: 640
implicit_uri_scheme: "bundle://"
show_alt_text_on_hover: false
typography:
  recommended: true
  line_height: 1.4
diagram_store: diagrams.db
`)

	p, err := Load(path)
	require.NoError(t, err)
	require.True(t, p.Dark)
	require.Equal(t, float32(900), p.Width)
	require.Equal(t, "diagrams.db", p.DiagramStore)

	o := p.Options()
	require.Equal(t, 2, o.IndentationSpaces)
	require.Equal(t, float32(640), o.MaxImageWidth)
	require.Equal(t, "bundle://", o.DefaultImplicitURIScheme)
	require.False(t, o.ShowAltTextOnHover)

	// Recommended typography with the line height overridden.
	require.InDelta(t, 16*1.4, o.Typography.ResolveLineHeight(16), 0.01)
	require.InDelta(t, 16*1.5, o.Typography.ResolveParagraphSpacing(16), 0.01)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeProfile(t, "dark: [broken")
	_, err := Load(path)
	require.Error(t, err)
}

func TestOptionsDefaults(t *testing.T) {
	o := Default().Options()
	require.Equal(t, 4, o.IndentationSpaces)
	require.Equal(t, "file://", o.DefaultImplicitURIScheme)
	require.True(t, o.ShowAltTextOnHover)
	require.Zero(t, o.Typography.ResolveLineHeight(16))
}

func TestHighlighterThemeFallback(t *testing.T) {
	p := Default()
	require.NotNil(t, p.Highlighter())

	p.CodeThemeLight = "monokai"
	require.NotNil(t, p.Highlighter())
}
