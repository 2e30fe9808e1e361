package hww

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// CutflowExporter publishes the counters of a Monitor as Prometheus gauges
// labelled by channel and stage. It uses its own registry to avoid the
// default Go runtime metrics.
type CutflowExporter struct {
	registry *prometheus.Registry
	events   *prometheus.GaugeVec
	weights  *prometheus.GaugeVec
}

func NewCutflowExporter(namespace string) *CutflowExporter {
	e := &CutflowExporter{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cutflow",
			Name:      "events",
			Help:      "Events reaching each cutflow stage.",
		}, []string{"channel", "bin", "stage"}),
		weights: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cutflow",
			Name:      "weight",
			Help:      "Sum of event weights reaching each cutflow stage.",
		}, []string{"channel", "bin", "stage"}),
	}
	e.registry.MustRegister(e.events, e.weights)
	return e
}

func (e *CutflowExporter) Registry() *prometheus.Registry {
	return e.registry
}

// Observe sets every gauge from the current state of m.
func (e *CutflowExporter) Observe(m *Monitor) {
	for bin, c := range m.Counters() {
		for _, ch := range Channels {
			labels := prometheus.Labels{
				"channel": ch.String(),
				"bin":     strconv.Itoa(bin),
				"stage":   c.Name,
			}
			e.events.With(labels).Set(float64(c.Events[ch]))
			e.weights.With(labels).Set(c.Weights[ch])
		}
	}
}

// WriteTextfile dumps the registry in the node exporter textfile format.
func (e *CutflowExporter) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, e.registry)
}
