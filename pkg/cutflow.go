package hww

import (
	"fmt"
	"math"
)

const TotalEvents = "total events"

// Cut is one named stage of the cutflow. Pass must not modify the event.
type Cut struct {
	Name string
	Pass func(ev *EventRecord, hyp Hypothesis) bool
}

// Cutflow is an ordered list of cuts applied to the selected hypothesis.
type Cutflow struct {
	cuts []Cut
}

func NewCutflow(cuts ...Cut) *Cutflow {
	return &Cutflow{cuts: cuts}
}

// Names returns the stage names in histogram order, starting with the
// total event count.
func (c *Cutflow) Names() []string {
	names := make([]string, 0, len(c.cuts)+1)
	names = append(names, TotalEvents)
	for _, cut := range c.cuts {
		names = append(names, cut.Name)
	}
	return names
}

// Run evaluates the cuts in order, stopping at the first failure, and then
// counts each passed stage in the hypothesis channel. Nothing is counted if
// a cut panics. It returns the number of cuts passed.
func (c *Cutflow) Run(ev *EventRecord, hyp Hypothesis, monitor *Monitor) int {
	passed := c.evaluate(ev, hyp)
	for _, cut := range c.cuts[:passed] {
		monitor.Count(hyp.Channel, cut.Name, 1)
	}
	return passed
}

func (c *Cutflow) evaluate(ev *EventRecord, hyp Hypothesis) int {
	for i, cut := range c.cuts {
		if !cut.Pass(ev, hyp) {
			if configuration.Verbosity > 2 {
				message := fmt.Sprintf("Event %d hypothesis %d (%s) failed %q", ev.EventID, hyp.Index, hyp.Channel, cut.Name)
				logger.Info(message, "cutflow")
			}
			return i
		}
	}
	return len(c.cuts)
}

func (c *Cutflow) Len() int {
	return len(c.cuts)
}

// StandardCutflow is the WW selection in its usual order.
func StandardCutflow(s *Selector) *Cutflow {
	th := s.Thresholds
	return NewCutflow(
		Cut{"baseline", func(*EventRecord, Hypothesis) bool { return true }},
		Cut{"opposite sign", func(ev *EventRecord, h Hypothesis) bool {
			return ev.LeptonCharge(h.Lead)*ev.LeptonCharge(h.Trail) < 0
		}},
		Cut{"full lepton selection", func(ev *EventRecord, h Hypothesis) bool {
			return s.PassLeptonFull(ev, h.Lead) && s.PassLeptonFull(ev, h.Trail)
		}},
		Cut{"extra lepton veto", s.passExtraLeptonVeto},
		Cut{"met > 20 GeV", func(ev *EventRecord, _ Hypothesis) bool {
			ev.require(StageSelection)
			return ev.PFMET.Pt > th.MetCut
		}},
		Cut{"mll > 12 GeV", func(_ *EventRecord, h Hypothesis) bool {
			return h.P4.M() > th.MllCut
		}},
		Cut{"|mll - mZ| > 15 GeV", func(_ *EventRecord, h Hypothesis) bool {
			return !h.Channel.SameFlavor() || math.Abs(h.P4.M()-th.ZMass) > th.ZWindow
		}},
		Cut{"minMET > 20 GeV", func(ev *EventRecord, h Hypothesis) bool {
			return MinProjectedMET(ev, h) > th.MinMetCut
		}},
		Cut{"minMET > 40 GeV for ee/mm", func(ev *EventRecord, h Hypothesis) bool {
			return !h.Channel.SameFlavor() || MinProjectedMET(ev, h) > th.MinMetSFCut
		}},
		Cut{"dPhiDiLepJet < 165 dg for ee/mm", s.passDPhiDiLepJet},
		Cut{"SoftMuons==0", func(ev *EventRecord, h Hypothesis) bool {
			return s.NumSoftMuons(ev, h) == 0
		}},
		Cut{"top veto", func(ev *EventRecord, h Hypothesis) bool {
			return !s.HasBTaggedJet(ev, h)
		}},
		Cut{"ptll > 45 GeV", func(_ *EventRecord, h Hypothesis) bool {
			return h.P4.Pt() > th.PtllCut
		}},
		Cut{"0-jet", func(ev *EventRecord, h Hypothesis) bool {
			return len(s.GoodJets(ev, h, th.JetPt)) == 0
		}},
	)
}
