package diagram

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"git.home.luguber.info/inful/mdcanvas/internal/metrics"
	"git.home.luguber.info/inful/mdcanvas/internal/ui"
)

// Pipeline renders diagram sources off the UI thread, one at a time, and
// memoizes results by content hash. All methods must be called from the
// pass that walks the document; only the background worker runs
// concurrently.
type Pipeline struct {
	renderer Renderer
	recorder metrics.Recorder
	store    *Store

	results chan result

	mu       sync.Mutex
	states   map[string]*State
	sources  map[string]string
	active   string
	promoted bool
}

// NewPipeline wires a renderer to the pass-driven state machine. The store
// may be nil, in which case results live only in memory. A nil recorder
// defaults to the no-op implementation.
func NewPipeline(renderer Renderer, store *Store, recorder metrics.Recorder) *Pipeline {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Pipeline{
		renderer: renderer,
		recorder: recorder,
		store:    store,
		results:  make(chan result, 16),
		states:   make(map[string]*State),
		sources:  make(map[string]string),
	}
}

// BeginPass drains finished work and re-arms promotion for the pass that is
// about to walk the document. Finished rasters are uploaded through the
// surface so their textures are ready before any block references them.
func (p *Pipeline) BeginPass(s ui.Surface) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for {
		select {
		case r := <-p.results:
			p.finish(s, r)
		default:
			p.promoted = false
			p.recorder.SetDiagramsWaiting(len(p.sources) + p.activeCount())
			return
		}
	}
}

func (p *Pipeline) activeCount() int {
	if p.active != "" {
		return 1
	}
	return 0
}

func (p *Pipeline) finish(s ui.Surface, r result) {
	st, ok := p.states[r.hash]
	if !ok {
		return
	}
	if p.active == r.hash {
		p.active = ""
	}
	if r.err != nil {
		st.Status = StatusError
		st.Message = r.err.Error()
		p.recorder.IncDiagramResult(metrics.ResultError)
		return
	}
	st.Status = StatusReady
	st.Texture = s.UploadTexture(r.img.Pixels, r.img.Logical)
	st.Size = r.img.Logical
	st.Message = ""
	p.recorder.IncDiagramResult(metrics.ResultReady)
}

// Encounter records that the current pass reached a diagram block and
// returns its state. Unknown sources enter the Rendering state; the first
// waiting diagram encountered while the worker slot is free is promoted to
// the active render. Document order thereby decides who renders next.
func (p *Pipeline) Encounter(s ui.Surface, source string) *State {
	h := Hash(source)

	p.mu.Lock()
	defer p.mu.Unlock()

	if st, ok := p.states[h]; ok {
		p.recorder.IncDiagramLookup(metrics.CacheMemory)
		if st.Status == StatusRendering && p.active == "" && !p.promoted {
			if src, waiting := p.sources[h]; waiting {
				p.spawn(h, src)
			}
		}
		return st
	}

	if p.store != nil {
		if img, err := p.store.Get(h); err == nil && img != nil {
			p.recorder.IncDiagramLookup(metrics.CacheStore)
			st := &State{
				Status:  StatusReady,
				Texture: s.UploadTexture(img.Pixels, img.Logical),
				Size:    img.Logical,
			}
			p.states[h] = st
			return st
		}
	}

	p.recorder.IncDiagramLookup(metrics.CacheMiss)
	st := &State{Status: StatusRendering}
	p.states[h] = st
	p.sources[h] = source
	if p.active == "" && !p.promoted {
		p.spawn(h, source)
	}
	return st
}

// Busy reports whether a render is in flight or queued; callers use it to
// keep repainting until the pipeline settles.
func (p *Pipeline) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active != "" || len(p.sources) > 0
}

// Forget removes a memoized result so the next encounter re-renders it.
func (p *Pipeline) Forget(source string) {
	h := Hash(source)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == h {
		return
	}
	delete(p.states, h)
	delete(p.sources, h)
}

func (p *Pipeline) spawn(hash, source string) {
	p.active = hash
	p.promoted = true
	delete(p.sources, hash)

	go func() {
		start := time.Now()
		img, err := p.render(source)
		label := metrics.ResultReady
		if err != nil {
			label = metrics.ResultError
		}
		p.recorder.ObserveDiagramRenderDuration(time.Since(start), label)
		if err == nil && p.store != nil {
			if serr := p.store.Put(hash, img); serr != nil {
				slog.Warn("diagram store write failed", "hash", hash, "error", serr)
			}
		}
		p.results <- result{hash: hash, img: img, err: err}
	}()
}

func (p *Pipeline) render(source string) (*Raster, error) {
	svg, err := p.renderer.RenderSVG(source)
	if err != nil {
		return nil, err
	}
	clean, err := Sanitize(svg)
	if err != nil {
		return nil, err
	}
	img, err := Rasterize(clean)
	if err != nil {
		if errors.Is(err, ErrNoImage) {
			return nil, ErrNoImage
		}
		return nil, err
	}
	return img, nil
}
