// Package metrics provides observability hooks for the diagram pipeline.
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection is optional and free when disabled.
package metrics

import "time"

// ResultLabel enumerates diagram render outcomes for counters.
type ResultLabel string

const (
	ResultReady ResultLabel = "ready"
	ResultError ResultLabel = "error"
)

// CacheLabel enumerates where a diagram lookup was satisfied.
type CacheLabel string

const (
	CacheMemory CacheLabel = "memory"
	CacheStore  CacheLabel = "store"
	CacheMiss   CacheLabel = "miss"
)

// Recorder defines the pipeline's observability hooks. Implementations may
// forward to Prometheus or anything else; all methods must be non-blocking.
type Recorder interface {
	ObserveDiagramRenderDuration(d time.Duration, result ResultLabel)
	IncDiagramResult(result ResultLabel)
	IncDiagramLookup(cache CacheLabel)
	SetDiagramsWaiting(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveDiagramRenderDuration(time.Duration, ResultLabel) {}
func (NoopRecorder) IncDiagramResult(ResultLabel)                            {}
func (NoopRecorder) IncDiagramLookup(CacheLabel)                             {}
func (NoopRecorder) SetDiagramsWaiting(int)                                  {}
