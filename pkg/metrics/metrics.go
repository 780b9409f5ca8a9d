// Package metrics is a small Prometheus-text metrics registry. Counters,
// gauges, and histograms are registered by name (labels baked into the name
// as name{k="v"}) and rendered in the text exposition format.
package metrics

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultBuckets are latency buckets in seconds.
var DefaultBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

// Counter is a monotonically increasing counter.
type Counter struct{ n atomic.Int64 }

func (c *Counter) Inc()         { c.n.Add(1) }
func (c *Counter) Add(d int64)  { c.n.Add(d) }
func (c *Counter) Value() int64 { return c.n.Load() }

// Gauge is a settable value.
type Gauge struct{ n atomic.Int64 }

func (g *Gauge) Set(v int64)  { g.n.Store(v) }
func (g *Gauge) Inc()         { g.n.Add(1) }
func (g *Gauge) Dec()         { g.n.Add(-1) }
func (g *Gauge) Value() int64 { return g.n.Load() }

// Histogram tracks a distribution over fixed buckets.
type Histogram struct {
	mu      sync.Mutex
	bounds  []float64
	perBkt  []uint64
	sum     float64
	samples uint64
}

func newHistogram(bounds []float64) *Histogram {
	b := append([]float64(nil), bounds...)
	sort.Float64s(b)
	return &Histogram{bounds: b, perBkt: make([]uint64, len(b))}
}

// Observe records one value.
func (h *Histogram) Observe(v float64) {
	h.mu.Lock()
	h.sum += v
	h.samples++
	for i, b := range h.bounds {
		if v <= b {
			h.perBkt[i]++
			break
		}
	}
	h.mu.Unlock()
}

// Since observes the seconds elapsed since t.
func (h *Histogram) Since(t time.Time) { h.Observe(time.Since(t).Seconds()) }

func (h *Histogram) snapshot() ([]float64, []uint64, float64, uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c := append([]uint64(nil), h.perBkt...)
	return h.bounds, c, h.sum, h.samples
}

// Registry holds named metrics and renders them in registration order.
type Registry struct {
	mu         sync.RWMutex
	counters   map[string]*Counter
	gauges     map[string]*Gauge
	histograms map[string]*Histogram
	help       map[string]string
	kinds      map[string]string
	order      []string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		counters:   make(map[string]*Counter),
		gauges:     make(map[string]*Gauge),
		histograms: make(map[string]*Histogram),
		help:       make(map[string]string),
		kinds:      make(map[string]string),
	}
}

func (r *Registry) register(name, kind, help string) {
	base := baseName(name)
	if _, ok := r.kinds[base]; !ok {
		r.order = append(r.order, base)
	}
	r.kinds[base] = kind
	if help != "" {
		r.help[base] = help
	}
}

// Counter returns the counter registered under name, creating it on first use.
func (r *Registry) Counter(name, help string) *Counter {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.counters[name]; ok {
		return c
	}
	c := &Counter{}
	r.counters[name] = c
	r.register(name, "counter", help)
	return c
}

// Gauge returns the gauge registered under name, creating it on first use.
func (r *Registry) Gauge(name, help string) *Gauge {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.gauges[name]; ok {
		return g
	}
	g := &Gauge{}
	r.gauges[name] = g
	r.register(name, "gauge", help)
	return g
}

// Histogram returns the histogram registered under name, creating it with
// the given buckets (DefaultBuckets when nil) on first use.
func (r *Registry) Histogram(name, help string, buckets []float64) *Histogram {
	if buckets == nil {
		buckets = DefaultBuckets
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.histograms[name]; ok {
		return h
	}
	h := newHistogram(buckets)
	r.histograms[name] = h
	r.register(name, "histogram", help)
	return h
}

// WithLabels bakes label pairs into a metric name: WithLabels("x","k","v")
// yields `x{k="v"}`. Each label combination is a distinct series.
func WithLabels(name string, kvs ...string) string {
	if len(kvs) == 0 || len(kvs)%2 != 0 {
		return name
	}
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('{')
	for i := 0; i < len(kvs); i += 2 {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s=%q", kvs[i], kvs[i+1])
	}
	b.WriteByte('}')
	return b.String()
}

func baseName(name string) string {
	if i := strings.IndexByte(name, '{'); i != -1 {
		return name[:i]
	}
	return name
}

// labelSuffix returns the labels of a series name as `,k="v"` for bucket
// injection, or "".
func labelSuffix(name string) string {
	i := strings.IndexByte(name, '{')
	if i == -1 {
		return ""
	}
	inner := name[i+1 : len(name)-1]
	if inner == "" {
		return ""
	}
	return "," + inner
}

func braced(suffix string) string {
	if suffix == "" {
		return ""
	}
	return "{" + suffix[1:] + "}"
}

func seriesOf[M any](all map[string]M, base string) []string {
	var out []string
	for n := range all {
		if baseName(n) == base {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// Render produces the Prometheus text exposition of every registered metric.
func (r *Registry) Render() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var b strings.Builder
	for _, base := range r.order {
		if h, ok := r.help[base]; ok {
			fmt.Fprintf(&b, "# HELP %s %s\n", base, h)
		}
		kind := r.kinds[base]
		fmt.Fprintf(&b, "# TYPE %s %s\n", base, kind)

		switch kind {
		case "counter":
			for _, n := range seriesOf(r.counters, base) {
				fmt.Fprintf(&b, "%s %d\n", n, r.counters[n].Value())
			}
		case "gauge":
			for _, n := range seriesOf(r.gauges, base) {
				fmt.Fprintf(&b, "%s %d\n", n, r.gauges[n].Value())
			}
		case "histogram":
			for _, n := range seriesOf(r.histograms, base) {
				bounds, counts, sum, samples := r.histograms[n].snapshot()
				labels := labelSuffix(n)
				cum := uint64(0)
				for i, bound := range bounds {
					cum += counts[i]
					fmt.Fprintf(&b, "%s_bucket{le=\"%g\"%s} %d\n", base, bound, labels, cum)
				}
				fmt.Fprintf(&b, "%s_bucket{le=\"+Inf\"%s} %d\n", base, labels, samples)
				fmt.Fprintf(&b, "%s_sum%s %g\n", base, braced(labels), sum)
				fmt.Fprintf(&b, "%s_count%s %d\n", base, braced(labels), samples)
			}
		}
	}
	return b.String()
}

// Handler serves the rendered registry.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_, _ = w.Write([]byte(r.Render()))
	})
}
