package hww

import (
	"math"

	"golang.org/x/exp/slices"
)

const (
	conversionMinVtxProb = 1e-6
	conversionMinLxy     = 2.0
)

// Selector evaluates hypothesis and lepton predicates. It holds no per-event
// state, so a single Selector may serve several goroutines as long as its
// scoring models do.
type Selector struct {
	ElectronID ScoringModel
	MuonIso    ScoringModel
	Thresholds Thresholds
}

func NewSelector(electronID, muonIso ScoringModel, thresholds Thresholds) *Selector {
	return &Selector{
		ElectronID: electronID,
		MuonIso:    muonIso,
		Thresholds: thresholds,
	}
}

func (s *Selector) IsGoodVertex(v Vertex) bool {
	if v.IsFake {
		return false
	}
	if v.Ndof < s.Thresholds.VertexNdof {
		return false
	}
	if math.Abs(v.Position.Z) > s.Thresholds.VertexZ {
		return false
	}
	return math.Hypot(v.Position.X, v.Position.Y) <= s.Thresholds.VertexRho
}

// PassFirstCuts applies the cheap requirements that only need the common
// maker stage.
func (s *Selector) PassFirstCuts(ev *EventRecord, hyp Hypothesis) bool {
	th := s.Thresholds

	pv, ok := ev.PrimaryVertex()
	if !ok || !s.IsGoodVertex(pv) {
		return false
	}
	for _, l := range hyp.Legs() {
		if q := ev.LeptonCharge(l); q != 1 && q != -1 {
			return false
		}
	}
	if ev.LeptonP4(hyp.Lead).Pt() < th.LeadingPt || ev.LeptonP4(hyp.Trail).Pt() < th.TrailingPt {
		return false
	}
	for _, l := range hyp.Legs() {
		maxEta := th.MuonMaxEta
		if l.Flavor == Electron {
			maxEta = th.ElectronMaxEta
		}
		if math.Abs(ev.LeptonP4(l).Eta()) >= maxEta {
			return false
		}
	}
	return hyp.P4.M() > th.LooseMll
}

// PassBaseline requires both legs to pass the loose lepton selection.
func (s *Selector) PassBaseline(ev *EventRecord, hyp Hypothesis) bool {
	for _, l := range hyp.Legs() {
		if !s.PassLeptonBaseline(ev, l) {
			return false
		}
	}
	return true
}

func (s *Selector) PassLeptonBaseline(ev *EventRecord, l Lepton) bool {
	if l.Flavor == Electron {
		return s.passElectronBaseline(ev, l.Index)
	}
	return s.passMuonBaseline(ev, l.Index)
}

// PassLeptonFull is the tight lepton selection: baseline plus the tight
// identification and isolation working points.
func (s *Selector) PassLeptonFull(ev *EventRecord, l Lepton) bool {
	if !s.PassLeptonBaseline(ev, l) {
		return false
	}
	if l.Flavor == Electron {
		ele := ev.Electrons[l.Index]
		if ElectronPFIso(ev, l.Index) >= s.Thresholds.ElectronTightIso {
			return false
		}
		return s.ElectronScore(ev, l.Index) > s.Thresholds.ElectronTightMVA[ElectronCategory(ele)]
	}
	mu := ev.Muons[l.Index]
	return s.MuonIsoScore(ev, l.Index) > s.Thresholds.MuonTightIsoMVA[MuonCategory(mu)]
}

func (s *Selector) ElectronScore(ev *EventRecord, idx int) float64 {
	return s.ElectronID.Score(ElectronCategory(ev.Electrons[idx]), ElectronFeatures(ev, idx))
}

func (s *Selector) MuonIsoScore(ev *EventRecord, idx int) float64 {
	return s.MuonIso.Score(MuonCategory(ev.Muons[idx]), MuonFeatures(ev, idx))
}

// LegScores returns the identification score of electron legs and the
// isolation score of muon legs.
func (s *Selector) LegScores(ev *EventRecord, hyp Hypothesis) (lead, trail float64) {
	score := func(l Lepton) float64 {
		if l.Flavor == Electron {
			return s.ElectronScore(ev, l.Index)
		}
		return s.MuonIsoScore(ev, l.Index)
	}
	return score(hyp.Lead), score(hyp.Trail)
}

func (s *Selector) passElectronBaseline(ev *EventRecord, idx int) bool {
	th := s.Thresholds
	ele := ev.Electrons[idx]
	if ele.GsfTrackIdx < 0 {
		return false
	}
	d0, dz := ElectronImpactParameters(ev, idx)
	if math.Abs(d0) >= th.ElectronD0 || math.Abs(dz) >= th.MaxDz {
		return false
	}
	if ev.GsfTracks[ele.GsfTrackIdx].MissingInnerHits > 0 {
		return false
	}
	if IsFromConversion(ev, idx) {
		return false
	}
	if ElectronPFIso(ev, idx) >= th.ElectronLooseIso {
		return false
	}
	return s.ElectronScore(ev, idx) > th.ElectronLooseMVA[ElectronCategory(ele)]
}

func (s *Selector) passMuonBaseline(ev *EventRecord, idx int) bool {
	th := s.Thresholds
	mu := ev.Muons[idx]
	if !mu.IsGlobal && !mu.IsTracker {
		return false
	}
	if mu.TrackIdx < 0 || ev.Tracks[mu.TrackIdx].ValidHits < th.MuonMinTrackerHits {
		return false
	}
	if mu.IsGlobal {
		if mu.GlobalNdof <= 0 || mu.GlobalChi2/mu.GlobalNdof >= th.MuonMaxChi2Ndof || mu.ValidMuonHits == 0 {
			return false
		}
	} else if mu.NMatches < 2 {
		return false
	}
	maxD0 := th.MuonD0HighPt
	if mu.P4.Pt() < 20 {
		maxD0 = th.MuonD0LowPt
	}
	d0, dz := MuonImpactParameters(ev, idx)
	if math.Abs(d0) >= maxD0 || math.Abs(dz) >= th.MaxDz {
		return false
	}
	return s.MuonIsoScore(ev, idx) > th.MuonLooseIsoMVA[MuonCategory(mu)]
}

// IsFromConversion reports whether the electron GSF track is a leg of a
// good conversion vertex with no hits before it.
func IsFromConversion(ev *EventRecord, idx int) bool {
	ev.require(StageCandidates)
	gsf := ev.Electrons[idx].GsfTrackIdx
	if gsf < 0 {
		return false
	}
	for _, conv := range ev.Conversions {
		if !slices.Contains(conv.GsfTrackIdxs, gsf) {
			continue
		}
		if conv.VtxProb <= conversionMinVtxProb || conv.Lxy <= conversionMinLxy {
			continue
		}
		if slices.ContainsFunc(conv.NHitsBeforeVtx, func(n int) bool { return n > 0 }) {
			continue
		}
		return true
	}
	return false
}
