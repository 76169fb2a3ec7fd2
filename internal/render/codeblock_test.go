package render

import (
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdcanvas/internal/diagram"
	"git.home.luguber.info/inful/mdcanvas/internal/ui"
)

func TestCodeBlockHighlighting(t *testing.T) {
	s := ui.NewHeadless()
	cache := NewCache(nil, nil)

	Render(s, cache, DefaultOptions(), []byte("```go\npackage main\n```\n"))

	texts := s.OpsOfKind(ui.OpText)
	require.NotEmpty(t, texts)
	colored := false
	for _, op := range texts {
		for _, span := range op.Spans {
			require.True(t, span.Format.Code)
			require.Equal(t, s.MonoSize, span.Format.Size)
			if !span.Format.Color.IsZero() {
				colored = true
			}
		}
	}
	require.True(t, colored, "a known language produces colored spans")
	require.Len(t, s.OpsOfKind(ui.OpRectOp), 1)
}

func TestCodeBlockUnknownLanguageFallsBackPlain(t *testing.T) {
	s := ui.NewHeadless()
	cache := NewCache(nil, nil)

	Render(s, cache, DefaultOptions(), []byte("```nosuchlang\nplain text\n```\n"))

	texts := s.OpsOfKind(ui.OpText)
	require.Len(t, texts, 1)
	require.Equal(t, "plain text", texts[0].Spans[0].Text)
	require.True(t, texts[0].Spans[0].Format.Color.IsZero())
}

func TestCodeBlockCopy(t *testing.T) {
	src := []byte("```go\npackage main\n```\n")
	s := ui.NewHeadless()
	s.Clicks = map[string]bool{"button:codeblock-1": true}
	s.Hovers = map[string]bool{"button:codeblock-1": true}
	cache := NewCache(nil, nil)

	Render(s, cache, DefaultOptions(), src)

	// Trailing newline stripped before copy.
	require.Equal(t, []string{"package main"}, s.Copied)

	// While the pointer stays on the affordance, the next pass shows the
	// checkmark.
	s.Reset()
	s.Clicks = nil
	Render(s, cache, DefaultOptions(), src)
	buttons := s.OpsOfKind(ui.OpButton)
	require.Len(t, buttons, 1)
	require.Equal(t, copiedGlyph, buttons[0].Text)

	// Once the pointer leaves, the toggle clears and the glyph reverts.
	s.Reset()
	s.Hovers = nil
	Render(s, cache, DefaultOptions(), src)
	s.Reset()
	Render(s, cache, DefaultOptions(), src)
	buttons = s.OpsOfKind(ui.OpButton)
	require.Len(t, buttons, 1)
	require.Equal(t, copyGlyph, buttons[0].Text)
}

func TestMathCallback(t *testing.T) {
	s := ui.NewHeadless()
	cache := NewCache(nil, nil)
	o := DefaultOptions()
	var got string
	o.RenderMath = func(_ ui.Surface, src string) { got = src }

	Render(s, cache, o, []byte("```math\nx^2\n```\n"))

	require.Equal(t, "x^2\n", got)
	require.Empty(t, s.OpsOfKind(ui.OpButton), "math blocks skip the code path")
}

func TestDiagramWithoutPipelineRendersAsCode(t *testing.T) {
	s := ui.NewHeadless()
	cache := NewCache(nil, nil)

	Render(s, cache, DefaultOptions(), []byte("```mermaid\ngraph TD;\n```\n"))

	require.Empty(t, s.OpsOfKind(ui.OpAllocate))
	require.Len(t, s.OpsOfKind(ui.OpButton), 1)
}

const diagramSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 40 20">` +
	`<rect width="40" height="20" fill="#336699"/></svg>`

func renderUntil(t *testing.T, s *ui.Headless, cache *Cache, src []byte, done func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		s.Reset()
		Render(s, cache, DefaultOptions(), src)
		if done() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("diagram never resolved")
}

func TestDiagramBlockLifecycle(t *testing.T) {
	var calls atomic.Int32
	pipe := diagram.NewPipeline(diagram.RendererFunc(func(string) ([]byte, error) {
		calls.Add(1)
		return []byte(diagramSVG), nil
	}), nil, nil)

	s := ui.NewHeadless()
	cache := NewCache(nil, pipe)
	src := []byte("```mermaid\ngraph TD;\n```\n")

	Render(s, cache, DefaultOptions(), src)

	// First pass shows the placeholder and schedules a repaint.
	require.NotEmpty(t, s.OpsOfKind(ui.OpAllocate))
	require.Contains(t, s.AllText(), "Rendering diagram…")
	require.NotEmpty(t, s.Repaints)
	require.Empty(t, s.OpsOfKind(ui.OpButton), "diagrams never reach the highlighter")

	renderUntil(t, s, cache, src, func() bool {
		return len(s.OpsOfKind(ui.OpImage)) > 0
	})

	imgs := s.OpsOfKind(ui.OpImage)
	require.Len(t, imgs, 1)
	require.Equal(t, ui.Size{W: 40, H: 20}, imgs[0].Size)

	// Re-rendering identical source is memoized.
	s.Reset()
	Render(s, cache, DefaultOptions(), src)
	require.Equal(t, int32(1), calls.Load())
}

func TestDiagramClickSetsLightboxSlot(t *testing.T) {
	pipe := diagram.NewPipeline(diagram.RendererFunc(func(string) ([]byte, error) {
		return []byte(diagramSVG), nil
	}), nil, nil)

	s := ui.NewHeadless()
	cache := NewCache(nil, pipe)
	src := []byte("```mermaid\ngraph TD;\n```\n")

	Render(s, cache, DefaultOptions(), src)
	renderUntil(t, s, cache, src, func() bool {
		return len(s.OpsOfKind(ui.OpImage)) > 0
	})

	tex := s.OpsOfKind(ui.OpImage)[0].Texture
	s.Clicks = map[string]bool{"image:" + strconv.FormatInt(int64(tex), 10): true}
	s.Reset()
	Render(s, cache, DefaultOptions(), src)

	got, ok := cache.LastClickedDiagram()
	require.True(t, ok)
	require.Equal(t, tex, got)

	// The slot is consumed on read.
	_, ok = cache.LastClickedDiagram()
	require.False(t, ok)
}

func TestDiagramErrorState(t *testing.T) {
	pipe := diagram.NewPipeline(diagram.RendererFunc(func(string) ([]byte, error) {
		return nil, errors.New("syntax error in diagram")
	}), nil, nil)

	s := ui.NewHeadless()
	cache := NewCache(nil, pipe)
	src := []byte("```mermaid\nbroken\n```\n")

	Render(s, cache, DefaultOptions(), src)
	renderUntil(t, s, cache, src, func() bool {
		for _, op := range s.OpsOfKind(ui.OpText) {
			for _, span := range op.Spans {
				if span.Format.Color == s.ThemeValue.Error {
					return true
				}
			}
		}
		return false
	})

	require.Contains(t, s.AllText(), "syntax error in diagram")
}
