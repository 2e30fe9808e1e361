package hww

import "fmt"

// Counter accumulates the events reaching one cutflow stage, per channel.
type Counter struct {
	Name    string
	Events  map[Channel]uint64
	Weights map[Channel]float64
}

func newCounter(name string) *Counter {
	return &Counter{
		Name:    name,
		Events:  make(map[Channel]uint64, len(Channels)),
		Weights: make(map[Channel]float64, len(Channels)),
	}
}

// Monitor is the ordered set of cutflow counters of one job. Counters keep
// the order in which their names were first seen, which is the bin order of
// the histograms. A Monitor is not safe for concurrent use: parallel
// workers own one each and merge them at the end.
type Monitor struct {
	counters []*Counter
	index    map[string]int
}

func NewMonitor() *Monitor {
	return &Monitor{index: make(map[string]int)}
}

func (m *Monitor) counter(name string) *Counter {
	if i, ok := m.index[name]; ok {
		return m.counters[i]
	}
	c := newCounter(name)
	m.index[name] = len(m.counters)
	m.counters = append(m.counters, c)
	return c
}

// Declare creates empty counters so that their bins exist, in this order,
// even if no event ever reaches them.
func (m *Monitor) Declare(names ...string) {
	for _, name := range names {
		m.counter(name)
	}
}

func (m *Monitor) Count(ch Channel, name string, weight float64) {
	c := m.counter(name)
	c.Events[ch]++
	c.Weights[ch] += weight
}

// CountAll counts name once in every channel.
func (m *Monitor) CountAll(name string, weight float64) {
	for _, ch := range Channels {
		m.Count(ch, name, weight)
	}
}

func (m *Monitor) add(ch Channel, name string, events uint64, weight float64) {
	c := m.counter(name)
	c.Events[ch] += events
	c.Weights[ch] += weight
}

// Merge adds every counter of other into m, matching by name. Names unknown
// to m are appended in other's order.
func (m *Monitor) Merge(other *Monitor) {
	for _, oc := range other.counters {
		m.counter(oc.Name)
		for _, ch := range Channels {
			m.add(ch, oc.Name, oc.Events[ch], oc.Weights[ch])
		}
	}
}

func (m *Monitor) Len() int {
	return len(m.counters)
}

func (m *Monitor) Names() []string {
	names := make([]string, len(m.counters))
	for i, c := range m.counters {
		names[i] = c.Name
	}
	return names
}

// Events returns the number of events counted for name in ch.
func (m *Monitor) Events(ch Channel, name string) uint64 {
	i, ok := m.index[name]
	if !ok {
		return 0
	}
	return m.counters[i].Events[ch]
}

// Counters returns a copy of the counters in bin order.
func (m *Monitor) Counters() []Counter {
	out := make([]Counter, len(m.counters))
	for i, c := range m.counters {
		cp := *newCounter(c.Name)
		for _, ch := range Channels {
			cp.Events[ch] = c.Events[ch]
			cp.Weights[ch] = c.Weights[ch]
		}
		out[i] = cp
	}
	return out
}

// HistogramSink receives one cutflow histogram per channel.
type HistogramSink interface {
	DeclareCounterHistogram(ch Channel, nBins int) error
	SetBinValue(ch Channel, bin int, value float64) error
	SetBinLabel(ch Channel, bin int, label string) error
}

// FillHistograms writes every counter as a labelled bin of each channel
// histogram.
func (m *Monitor) FillHistograms(sink HistogramSink) error {
	for _, ch := range Channels {
		for j, c := range m.counters {
			if err := sink.SetBinValue(ch, j, float64(c.Events[ch])); err != nil {
				return fmt.Errorf("error filling cutflow_%s: %w", ch, err)
			}
			if err := sink.SetBinLabel(ch, j, c.Name); err != nil {
				return fmt.Errorf("error labelling cutflow_%s: %w", ch, err)
			}
		}
	}
	return nil
}

// Histogram is a labelled one dimensional histogram with unit-width bins.
type Histogram struct {
	Values []float64
	Labels []string
}

// HistogramSet is an in-memory HistogramSink.
type HistogramSet struct {
	Histograms map[Channel]*Histogram
}

func NewHistogramSet() *HistogramSet {
	return &HistogramSet{Histograms: make(map[Channel]*Histogram)}
}

func (h *HistogramSet) DeclareCounterHistogram(ch Channel, nBins int) error {
	h.Histograms[ch] = &Histogram{
		Values: make([]float64, nBins),
		Labels: make([]string, nBins),
	}
	return nil
}

func (h *HistogramSet) bin(ch Channel, bin int) (*Histogram, error) {
	hist, ok := h.Histograms[ch]
	if !ok {
		return nil, &ErrHistogramBin{Channel: ch, Bin: bin}
	}
	if bin < 0 || bin >= len(hist.Values) {
		return nil, &ErrHistogramBin{Channel: ch, Bin: bin, NBins: len(hist.Values)}
	}
	return hist, nil
}

func (h *HistogramSet) SetBinValue(ch Channel, bin int, value float64) error {
	hist, err := h.bin(ch, bin)
	if err != nil {
		return err
	}
	hist.Values[bin] = value
	return nil
}

func (h *HistogramSet) SetBinLabel(ch Channel, bin int, label string) error {
	hist, err := h.bin(ch, bin)
	if err != nil {
		return err
	}
	hist.Labels[bin] = label
	return nil
}
