// Package metrics exposes Prometheus counters for the command path, fed from diagnostics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/coreman2200/blestrip/internal/diagnostics"
)

type Collector struct {
	commands     *prometheus.CounterVec
	faults       prometheus.Counter
	linkEvents   *prometheus.CounterVec
	writeSeconds prometheus.Histogram
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		commands: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blestrip",
			Name:      "commands_total",
			Help:      "Inbound payloads by outcome (on, off, unknown, decode_error)",
		}, []string{"command"}),
		faults: f.NewCounter(prometheus.CounterOpts{
			Namespace: "blestrip",
			Subsystem: "strip",
			Name:      "faults_total",
			Help:      "Strip writes that failed",
		}),
		linkEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blestrip",
			Name:      "link_events_total",
			Help:      "Transport connect and disconnect notifications",
		}, []string{"event"}),
		writeSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "blestrip",
			Subsystem: "strip",
			Name:      "write_seconds",
			Help:      "Time spent acquiring the strip and writing one frame",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}),
	}
}

// Observe updates counters from one diagnostic. Unknown codes are ignored.
func (c *Collector) Observe(d diagnostics.Diagnostic) {
	switch d.Code {
	case diagnostics.CommandOn:
		c.commands.WithLabelValues("on").Inc()
		c.observeWrite(d)
	case diagnostics.CommandOff:
		c.commands.WithLabelValues("off").Inc()
		c.observeWrite(d)
	case diagnostics.CommandUnknown:
		c.commands.WithLabelValues("unknown").Inc()
	case diagnostics.CommandDecode:
		c.commands.WithLabelValues("decode_error").Inc()
	case diagnostics.StripFault:
		c.faults.Inc()
	case diagnostics.LinkConnect:
		c.linkEvents.WithLabelValues("connect").Inc()
	case diagnostics.LinkDisconnect:
		c.linkEvents.WithLabelValues("disconnect").Inc()
	}
}

func (c *Collector) observeWrite(d diagnostics.Diagnostic) {
	if v, ok := d.Evidence[diagnostics.EvidenceWriteSeconds].(float64); ok {
		c.writeSeconds.Observe(v)
	}
}
