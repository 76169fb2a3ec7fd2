package diagram

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// MermaidCLI renders mermaid sources to SVG by shelling out to the mermaid
// command line tool (mmdc). It satisfies Renderer and is the default
// backend when nothing else is injected.
type MermaidCLI struct {
	// Binary overrides the executable name; defaults to "mmdc".
	Binary string
	// Timeout bounds a single invocation; defaults to 30s.
	Timeout time.Duration
}

func (m MermaidCLI) binary() string {
	if m.Binary != "" {
		return m.Binary
	}
	return "mmdc"
}

func (m MermaidCLI) timeout() time.Duration {
	if m.Timeout > 0 {
		return m.Timeout
	}
	return 30 * time.Second
}

// RenderSVG writes the source to a temp file, invokes the CLI and reads
// back the SVG it produced.
func (m MermaidCLI) RenderSVG(source string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "mdcanvas-mermaid-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "diagram.mmd")
	out := filepath.Join(dir, "diagram.svg")
	if err := os.WriteFile(in, []byte(source), 0o600); err != nil {
		return nil, fmt.Errorf("write diagram source: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout())
	defer cancel()

	cmd := exec.CommandContext(ctx, m.binary(), "-i", in, "-o", out, "--outputFormat", "svg")
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", m.binary(), err, output)
	}

	svg, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("read rendered svg: %w", err)
	}
	return svg, nil
}
