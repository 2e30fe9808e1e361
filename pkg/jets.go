package hww

import (
	"math"
	"sort"

	"golang.org/x/exp/slices"
)

const softMuonMinTrackerHits = 10

// GoodJets returns the jets above minPt that pass the MVA jet id and are
// separated from both legs, highest pT first.
func (s *Selector) GoodJets(ev *EventRecord, hyp Hypothesis, minPt float64) []PFJet {
	ev.require(StageSelection)
	th := s.Thresholds
	var jets []PFJet
	for _, jet := range ev.Jets {
		if jet.P4.Pt() <= minPt || math.Abs(jet.P4.Eta()) >= th.JetEta {
			continue
		}
		if jet.MVAID <= th.JetMVAID {
			continue
		}
		if s.overlapsLeg(ev, hyp, jet.P4) {
			continue
		}
		jets = append(jets, jet)
	}
	sort.Slice(jets, func(i, j int) bool {
		return jets[i].P4.Pt() > jets[j].P4.Pt()
	})
	return jets
}

func (s *Selector) overlapsLeg(ev *EventRecord, hyp Hypothesis, p P4) bool {
	for _, l := range hyp.Legs() {
		if DeltaR(ev.LeptonP4(l), p) < s.Thresholds.JetLeptonDR {
			return true
		}
	}
	return false
}

// HasBTaggedJet looks for a b-tagged jet above BTagPt away from the legs.
func (s *Selector) HasBTaggedJet(ev *EventRecord, hyp Hypothesis) bool {
	th := s.Thresholds
	for _, jet := range ev.Jets {
		if jet.P4.Pt() <= th.BTagPt || math.Abs(jet.P4.Eta()) >= th.JetEta {
			continue
		}
		if s.overlapsLeg(ev, hyp, jet.P4) {
			continue
		}
		if jet.BTag > th.BTagCut {
			return true
		}
	}
	return false
}

// NumSoftMuons counts non-leg muons compatible with a semileptonic b decay.
func (s *Selector) NumSoftMuons(ev *EventRecord, hyp Hypothesis) int {
	th := s.Thresholds
	legs := hyp.Legs()
	n := 0
	for i, mu := range ev.Muons {
		if slices.Contains(legs, Lepton{Muon, i}) {
			continue
		}
		if mu.P4.Pt() <= th.SoftMuonPt || !mu.IsTracker || mu.TrackIdx < 0 {
			continue
		}
		if ev.Tracks[mu.TrackIdx].ValidHits <= softMuonMinTrackerHits {
			continue
		}
		d0, dz := MuonImpactParameters(ev, i)
		if math.Abs(d0) >= th.SoftMuonD0 || math.Abs(dz) >= th.SoftMuonDz {
			continue
		}
		if mu.P4.Pt() > th.SoftMuonIsoPt && MuonRelIso03(ev, i) >= th.SoftMuonIso {
			continue
		}
		n++
	}
	return n
}

func (s *Selector) passExtraLeptonVeto(ev *EventRecord, hyp Hypothesis) bool {
	legs := hyp.Legs()
	for i, ele := range ev.Electrons {
		l := Lepton{Electron, i}
		if slices.Contains(legs, l) || ele.P4.Pt() <= s.Thresholds.ExtraLeptonPt {
			continue
		}
		if s.PassLeptonFull(ev, l) {
			return false
		}
	}
	for i, mu := range ev.Muons {
		l := Lepton{Muon, i}
		if slices.Contains(legs, l) || mu.P4.Pt() <= s.Thresholds.ExtraLeptonPt {
			continue
		}
		if s.PassLeptonFull(ev, l) {
			return false
		}
	}
	return true
}

// passDPhiDiLepJet rejects same-flavor events where the dilepton system is
// back to back with the leading jet.
func (s *Selector) passDPhiDiLepJet(ev *EventRecord, hyp Hypothesis) bool {
	if !hyp.Channel.SameFlavor() {
		return true
	}
	jets := s.GoodJets(ev, hyp, s.Thresholds.DPhiJetPt)
	if len(jets) == 0 {
		return true
	}
	dphi := DeltaPhi(hyp.P4.Phi(), jets[0].P4.Phi()) * 180 / math.Pi
	return dphi < s.Thresholds.DPhiDiLepJetCut
}
