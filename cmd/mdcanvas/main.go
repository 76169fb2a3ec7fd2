package main

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/mdcanvas/internal/config"
	"git.home.luguber.info/inful/mdcanvas/internal/diagram"
	"git.home.luguber.info/inful/mdcanvas/internal/metrics"
	"git.home.luguber.info/inful/mdcanvas/internal/render"
	"git.home.luguber.info/inful/mdcanvas/internal/ui"
)

var CLI struct {
	Verbose bool   `short:"v" help:"Enable verbose logging"`
	Profile string `short:"p" help:"Viewer profile YAML path"`

	Render struct {
		File    string `arg:"" help:"Markdown file to render" type:"existingfile"`
		Dark    bool   `help:"Use the dark theme"`
		Ops     bool   `help:"Dump raw surface primitives instead of the text layout"`
		Wait    bool   `help:"Resolve diagram blocks before printing"`
		Metrics bool   `help:"Print diagram pipeline metrics after rendering"`
	} `cmd:"" help:"Render a document through the headless surface and print its layout"`

	Outline struct {
		File string `arg:"" help:"Markdown file to outline" type:"existingfile"`
	} `cmd:"" help:"List header titles with their content offsets"`

	Diagram struct {
		File   string `arg:"" help:"Diagram source file" type:"existingfile"`
		Output string `short:"o" help:"PNG output path" default:"diagram.png"`
		Store  string `help:"Sqlite raster cache path (overrides profile)"`
	} `cmd:"" help:"Render one diagram source to a PNG file"`
}

func main() {
	_ = godotenv.Load()
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	profile, err := config.Load(CLI.Profile)
	if err != nil {
		slog.Error("Failed to load profile", "error", err)
		os.Exit(1)
	}

	switch ctx.Command() {
	case "render <file>":
		if err := runRender(profile); err != nil {
			slog.Error("Render failed", "error", err)
			os.Exit(1)
		}
	case "outline <file>":
		if err := runOutline(profile); err != nil {
			slog.Error("Outline failed", "error", err)
			os.Exit(1)
		}
	case "diagram <file>":
		if err := runDiagram(profile); err != nil {
			slog.Error("Diagram render failed", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Unknown command", "command", ctx.Command())
		os.Exit(1)
	}
}

func newSurface(profile config.Profile, dark bool) *ui.Headless {
	s := ui.NewHeadless()
	s.Width = profile.Width
	if profile.Dark || dark {
		s.ThemeValue = ui.DefaultDarkTheme()
	}
	return s
}

func newPipeline(profile config.Profile, storePath string, recorder metrics.Recorder) (*diagram.Pipeline, func(), error) {
	if storePath == "" {
		storePath = profile.DiagramStore
	}
	var store *diagram.Store
	cleanup := func() {}
	if storePath != "" {
		var err error
		store, err = diagram.OpenStore(storePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open diagram store: %w", err)
		}
		cleanup = func() { _ = store.Close() }
	}
	renderer := diagram.MermaidCLI{Binary: profile.MermaidBinary}
	return diagram.NewPipeline(renderer, store, recorder), cleanup, nil
}

func runRender(profile config.Profile) error {
	source, err := os.ReadFile(CLI.Render.File)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	registry := prom.NewRegistry()
	if CLI.Render.Metrics {
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	var pipe *diagram.Pipeline
	if CLI.Render.Wait {
		var cleanup func()
		pipe, cleanup, err = newPipeline(profile, "", recorder)
		if err != nil {
			return err
		}
		defer cleanup()
	}

	s := newSurface(profile, CLI.Render.Dark)
	cache := render.NewCache(profile.Highlighter(), pipe)
	opts := profile.Options()

	region := render.Render(s, cache, opts, source)
	if CLI.Render.Wait && pipe != nil {
		deadline := time.Now().Add(2 * time.Minute)
		for pipe.Busy() && time.Now().Before(deadline) {
			time.Sleep(50 * time.Millisecond)
			s.Reset()
			region = render.Render(s, cache, opts, source)
		}
	}

	if CLI.Render.Ops {
		printOps(s)
	} else {
		printLayout(s)
	}
	slog.Debug("Rendered document", "height", region.H, "ops", len(s.Ops))

	if CLI.Render.Metrics {
		if err := printMetrics(registry); err != nil {
			return err
		}
	}
	return nil
}

func runOutline(profile config.Profile) error {
	source, err := os.ReadFile(CLI.Outline.File)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	s := newSurface(profile, false)
	cache := render.NewCache(profile.Highlighter(), nil)
	render.Render(s, cache, profile.Options(), source)

	positions := cache.HeaderPositions()
	titles := make([]string, 0, len(positions))
	for title := range positions {
		titles = append(titles, title)
	}
	sort.Slice(titles, func(i, j int) bool {
		return positions[titles[i]] < positions[titles[j]]
	})
	for _, title := range titles {
		fmt.Printf("%8.1f  %s\n", positions[title], title)
	}
	return nil
}

func runDiagram(profile config.Profile) error {
	source, err := os.ReadFile(CLI.Diagram.File)
	if err != nil {
		return fmt.Errorf("read diagram source: %w", err)
	}

	renderer := diagram.MermaidCLI{Binary: profile.MermaidBinary}
	svg, err := renderer.RenderSVG(string(source))
	if err != nil {
		return fmt.Errorf("render svg: %w", err)
	}
	clean, err := diagram.Sanitize(svg)
	if err != nil {
		return fmt.Errorf("sanitize svg: %w", err)
	}
	img, err := diagram.Rasterize(clean)
	if err != nil {
		return fmt.Errorf("rasterize svg: %w", err)
	}

	storePath := CLI.Diagram.Store
	if storePath == "" {
		storePath = profile.DiagramStore
	}
	if storePath != "" {
		store, err := diagram.OpenStore(storePath)
		if err != nil {
			return fmt.Errorf("open diagram store: %w", err)
		}
		defer store.Close()
		if err := store.Put(diagram.Hash(string(source)), img); err != nil {
			slog.Warn("Failed to cache raster", "error", err)
		}
	}

	out, err := os.Create(CLI.Diagram.Output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()
	if err := png.Encode(out, img.Pixels); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	slog.Info("Diagram rendered",
		"output", CLI.Diagram.Output,
		"width", img.Logical.W,
		"height", img.Logical.H)
	return nil
}

func printMetrics(registry *prom.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				value = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				value = float64(m.GetHistogram().GetSampleCount())
			}
			fmt.Printf("%s%s %g\n", fam.GetName(), labelString(m.GetLabel()), value)
		}
	}
	return nil
}
