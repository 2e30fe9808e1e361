package hww

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Maker copies one section of a SourceEvent into the EventRecord. Calling
// SetVars twice for the same event leaves the record unchanged.
type Maker interface {
	Name() string
	SetVars(ev *EventRecord, src *SourceEvent)
}

type makerFunc struct {
	name string
	fn   func(ev *EventRecord, src *SourceEvent)
}

func (m makerFunc) Name() string { return m.name }

func (m makerFunc) SetVars(ev *EventRecord, src *SourceEvent) { m.fn(ev, src) }

func NewMaker(name string, fn func(ev *EventRecord, src *SourceEvent)) Maker {
	return makerFunc{name: name, fn: fn}
}

// MakerPipeline runs makers stage by stage. A stage can only run once every
// earlier stage has run for the same event.
type MakerPipeline struct {
	stages [numStages][]Maker
}

func NewMakerPipeline(common, candidates, selection []Maker) MakerPipeline {
	var p MakerPipeline
	p.stages[StageCommon] = common
	p.stages[StageCandidates] = candidates
	p.stages[StageSelection] = selection
	return p
}

func DefaultMakers(th Thresholds) MakerPipeline {
	return NewMakerPipeline(
		[]Maker{
			NewMaker("eventMaker", setEventVars),
			NewMaker("vertexMaker", setVertexVars),
			NewMaker("trackMaker", setTrackVars),
			NewMaker("electronMaker", setElectronVars),
			NewMaker("muonMaker", setMuonVars),
			NewMaker("pfJetMaker", setPFJetVars),
			NewMaker("hypDilepMaker", setHypDilepVars),
		},
		[]Maker{
			NewMaker("pfCandidateMaker", setPFCandidateVars),
			NewMaker("pfElectronMaker", setPFElectronVars),
			NewMaker("pfElToElAssMaker", setPFElToElAssVars),
			NewMaker("gsfTrackMaker", setGsfTrackVars),
			NewMaker("recoConversionMaker", setConversionVars),
			NewMaker("rhoMaker", setRhoVars),
		},
		[]Maker{
			NewMaker("pfMETMaker", setPFMETVars),
			NewMaker("trkMETMaker", func(ev *EventRecord, _ *SourceEvent) {
				setTrkMETVars(ev, th.TrkMetDz)
			}),
			NewMaker("mvaJetIdMaker", setMVAJetIDVars),
		},
	)
}

func (p MakerPipeline) Run(stage MakerStage, ev *EventRecord, src *SourceEvent) {
	for s := StageCommon; s < stage; s++ {
		ev.require(s)
	}
	for _, m := range p.stages[stage] {
		if configuration.Verbosity > 2 {
			message := fmt.Sprintf("Running %s on event %d", m.Name(), ev.EventID)
			logger.Info(message, "makers")
		}
		m.SetVars(ev, src)
	}
	ev.markDone(stage)
}

// validIndex maps out of range references to -1.
func validIndex(idx, n int) int {
	if idx < 0 || idx >= n {
		return -1
	}
	return idx
}

func setEventVars(ev *EventRecord, src *SourceEvent) {
	ev.RunNumber = src.Run
	ev.LumiSection = src.Lumi
	ev.EventID = src.Event
}

func setVertexVars(ev *EventRecord, src *SourceEvent) {
	ev.Vertices = make([]Vertex, len(src.Vertices))
	for i, v := range src.Vertices {
		ev.Vertices[i] = Vertex{
			Position: r3.Vec{X: v.X, Y: v.Y, Z: v.Z},
			Ndof:     v.Ndof,
			IsFake:   v.IsFake,
			SumPt:    v.SumPt,
		}
	}
}

func setTrackVars(ev *EventRecord, src *SourceEvent) {
	ev.Tracks = make([]Track, len(src.Tracks))
	for i, t := range src.Tracks {
		ev.Tracks[i] = Track{
			P4:        t.p4(),
			Charge:    t.Charge,
			RefPoint:  r3.Vec{X: t.VX, Y: t.VY, Z: t.VZ},
			Chi2:      t.Chi2,
			Ndof:      t.Ndof,
			ValidHits: t.ValidHits,
			LostHits:  t.LostHits,
		}
	}
}

// setElectronVars needs the tracks to fill the closest-ctf-track quantities.
func setElectronVars(ev *EventRecord, src *SourceEvent) {
	ev.Electrons = make([]ElectronObj, len(src.Electrons))
	for i, e := range src.Electrons {
		ele := ElectronObj{
			P4:            e.p4(),
			Charge:        e.Charge,
			TrackIdx:      validIndex(e.TrackIdx, len(ev.Tracks)),
			GsfTrackIdx:   validIndex(e.GsfTrackIdx, len(src.GsfTracks)),
			PFElectronIdx: -1,
			SCEta:         e.SCEta,
			SigmaIEtaIEta: e.SigmaIEtaIEta,
			DEtaIn:        e.DEtaIn,
			DPhiIn:        e.DPhiIn,
			HOverE:        e.HOverE,
			FBrem:         e.FBrem,
			EOverPIn:      e.EOverPIn,
			EcalEnergy:    e.EcalEnergy,
			KFChi2:        0,
			KFHits:        -1,
		}
		if ele.TrackIdx >= 0 {
			trk := ev.Tracks[ele.TrackIdx]
			if trk.Ndof > 0 {
				ele.KFChi2 = trk.Chi2 / trk.Ndof
			}
			ele.KFHits = trk.ValidHits
		}
		ev.Electrons[i] = ele
	}
}

func setMuonVars(ev *EventRecord, src *SourceEvent) {
	ev.Muons = make([]MuonObj, len(src.Muons))
	for i, m := range src.Muons {
		ev.Muons[i] = MuonObj{
			P4:            m.p4(),
			Charge:        m.Charge,
			TrackIdx:      validIndex(m.TrackIdx, len(ev.Tracks)),
			IsGlobal:      m.IsGlobal,
			IsTracker:     m.IsTracker,
			GlobalChi2:    m.GlobalChi2,
			GlobalNdof:    m.GlobalNdof,
			ValidMuonHits: m.ValidMuonHits,
			NMatches:      m.NMatches,
		}
	}
}

func setPFJetVars(ev *EventRecord, src *SourceEvent) {
	ev.Jets = make([]PFJet, len(src.Jets))
	for i, j := range src.Jets {
		ev.Jets[i] = PFJet{P4: j.p4(), BTag: j.BTag}
	}
}

func setHypDilepVars(ev *EventRecord, _ *SourceEvent) {
	ev.Hypotheses = BuildHypotheses(ev.Electrons, ev.Muons)
}

func setPFCandidateVars(ev *EventRecord, src *SourceEvent) {
	ev.PFCandidates = make([]PFCandidate, len(src.PFCandidates))
	for i, c := range src.PFCandidates {
		ev.PFCandidates[i] = PFCandidate{
			P4:          c.p4(),
			Charge:      c.Charge,
			ParticleID:  c.PdgID,
			TrackIdx:    validIndex(c.TrackIdx, len(ev.Tracks)),
			GsfTrackIdx: validIndex(c.GsfTrackIdx, len(src.GsfTracks)),
			RefPoint:    r3.Vec{X: c.VX, Y: c.VY, Z: c.VZ},
		}
	}
}

func setPFElectronVars(ev *EventRecord, src *SourceEvent) {
	ev.PFElectrons = make([]PFElectron, len(src.PFElectrons))
	for i, e := range src.PFElectrons {
		ev.PFElectrons[i] = PFElectron{
			P4:          e.p4(),
			GsfTrackIdx: validIndex(e.GsfTrackIdx, len(src.GsfTracks)),
		}
	}
}

// setPFElToElAssVars links each electron to the PF electron sharing its
// GSF track.
func setPFElToElAssVars(ev *EventRecord, _ *SourceEvent) {
	for i := range ev.Electrons {
		ele := &ev.Electrons[i]
		ele.PFElectronIdx = -1
		if ele.GsfTrackIdx < 0 {
			continue
		}
		for j, pfel := range ev.PFElectrons {
			if pfel.GsfTrackIdx == ele.GsfTrackIdx {
				ele.PFElectronIdx = j
				break
			}
		}
	}
}

func setGsfTrackVars(ev *EventRecord, src *SourceEvent) {
	ev.GsfTracks = make([]GsfTrack, len(src.GsfTracks))
	for i, t := range src.GsfTracks {
		ev.GsfTracks[i] = GsfTrack{
			P4:               t.p4(),
			Charge:           t.Charge,
			RefPoint:         r3.Vec{X: t.VX, Y: t.VY, Z: t.VZ},
			Chi2:             t.Chi2,
			Ndof:             t.Ndof,
			MissingInnerHits: t.MissingInnerHits,
		}
	}
}

func setConversionVars(ev *EventRecord, src *SourceEvent) {
	ev.Conversions = make([]Conversion, len(src.Conversions))
	for i, c := range src.Conversions {
		ev.Conversions[i] = Conversion{
			GsfTrackIdxs:   append([]int(nil), c.GsfTrackIdxs...),
			NHitsBeforeVtx: append([]int(nil), c.NHitsBeforeVtx...),
			VtxProb:        c.VtxProb,
			Lxy:            c.Lxy,
		}
	}
}

func setRhoVars(ev *EventRecord, src *SourceEvent) {
	ev.Rho = src.Rho
}

func setPFMETVars(ev *EventRecord, src *SourceEvent) {
	ev.PFMET = MET{Pt: src.PFMET.Pt, Phi: src.PFMET.Phi}
}

func setTrkMETVars(ev *EventRecord, maxDz float64) {
	ev.TrkMET = make([]MET, len(ev.Hypotheses))
	for i, hyp := range ev.Hypotheses {
		ev.TrkMET[i] = trackMET(ev, hyp, maxDz)
	}
}

func setMVAJetIDVars(ev *EventRecord, src *SourceEvent) {
	for i := range ev.Jets {
		if i < len(src.Jets) {
			ev.Jets[i].MVAID = src.Jets[i].MVAID
		}
	}
}
