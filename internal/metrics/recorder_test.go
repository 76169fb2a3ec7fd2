package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNoopRecorderIsSafe(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveDiagramRenderDuration(time.Second, ResultReady)
	r.IncDiagramResult(ResultError)
	r.IncDiagramLookup(CacheMemory)
	r.SetDiagramsWaiting(3)
}

func TestPrometheusRecorderRegisters(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveDiagramRenderDuration(250*time.Millisecond, ResultReady)
	pr.IncDiagramResult(ResultReady)
	pr.IncDiagramLookup(CacheStore)
	pr.SetDiagramsWaiting(1)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	require.True(t, names["mdcanvas_diagram_render_duration_seconds"])
	require.True(t, names["mdcanvas_diagram_results_total"])
	require.True(t, names["mdcanvas_diagram_lookups_total"])
	require.True(t, names["mdcanvas_diagrams_waiting"])
}

func TestNewPrometheusRecorderNilRegistry(t *testing.T) {
	require.NotNil(t, NewPrometheusRecorder(nil))
}
