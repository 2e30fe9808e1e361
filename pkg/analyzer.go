package hww

import "fmt"

// Result summarises what happened to one event.
type Result struct {
	EventID      uint64
	Hypotheses   int
	GoodHyps     []int
	Candidates   []int
	Best         int
	Channel      Channel
	StagesPassed int
	PassedAll    bool
}

// Analyzer runs the full selection on one event at a time and accumulates
// the cutflow in its Monitor. It is not safe for concurrent use; parallel
// jobs build one Analyzer per worker sharing the scoring models.
type Analyzer struct {
	Monitor  *Monitor
	selector *Selector
	cutflow  *Cutflow
	makers   MakerPipeline
}

type Option func(*Analyzer)

// WithCutflow replaces the standard cutflow.
func WithCutflow(c *Cutflow) Option {
	return func(a *Analyzer) {
		a.cutflow = c
	}
}

// WithMakers replaces the default maker pipeline.
func WithMakers(p MakerPipeline) Option {
	return func(a *Analyzer) {
		a.makers = p
	}
}

func NewAnalyzer(electronID, muonIso ScoringModel, thresholds Thresholds, opts ...Option) *Analyzer {
	a := &Analyzer{
		Monitor:  NewMonitor(),
		selector: NewSelector(electronID, muonIso, thresholds),
		makers:   DefaultMakers(thresholds),
	}
	a.cutflow = StandardCutflow(a.selector)
	for _, opt := range opts {
		opt(a)
	}
	a.Monitor.Declare(a.cutflow.Names()...)
	return a
}

func (a *Analyzer) Selector() *Selector {
	return a.selector
}

func (a *Analyzer) Cutflow() *Cutflow {
	return a.cutflow
}

// Analyze processes one event. Every event is counted under TotalEvents in
// all channels before anything else happens.
func (a *Analyzer) Analyze(src *SourceEvent) Result {
	a.Monitor.CountAll(TotalEvents, 1)

	res := Result{EventID: src.Event, Best: -1}
	ev := &EventRecord{}

	a.makers.Run(StageCommon, ev, src)
	res.Hypotheses = len(ev.Hypotheses)
	for _, hyp := range ev.Hypotheses {
		if a.selector.PassFirstCuts(ev, hyp) {
			res.GoodHyps = append(res.GoodHyps, hyp.Index)
		}
	}
	if len(res.GoodHyps) == 0 {
		return res
	}

	a.makers.Run(StageCandidates, ev, src)
	for _, idx := range res.GoodHyps {
		if a.selector.PassBaseline(ev, ev.Hypotheses[idx]) {
			res.Candidates = append(res.Candidates, idx)
		}
	}
	if len(res.Candidates) == 0 {
		return res
	}

	a.makers.Run(StageSelection, ev, src)
	res.Best = BestHypothesis(ev, res.Candidates)
	best := ev.Hypotheses[res.Best]
	res.Channel = best.Channel
	if configuration.Verbosity > 1 {
		message := fmt.Sprintf("Event %d: %d candidates, best hypothesis %d (%s)", ev.EventID, len(res.Candidates), best.Index, best.Channel)
		logger.Info(message, "analyzer")
	}

	res.StagesPassed = a.cutflow.Run(ev, best, a.Monitor)
	res.PassedAll = res.StagesPassed == a.cutflow.Len()
	return res
}

// BookHistograms declares one cutflow histogram per channel.
func BookHistograms(sink HistogramSink, nBins int) error {
	for _, ch := range Channels {
		if err := sink.DeclareCounterHistogram(ch, nBins); err != nil {
			return err
		}
	}
	return nil
}
