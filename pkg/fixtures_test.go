package hww

// stubModel returns a fixed score regardless of the input.
type stubModel struct {
	score float64
	calls int
}

func (s *stubModel) Score(int, []float64) float64 {
	s.calls++
	return s.score
}

type lep struct {
	pt, eta, phi float64
	charge       int
}

func goodVertexSource() SourceVertex {
	return SourceVertex{Ndof: 10, SumPt: 150}
}

// newSource builds an event with a good primary vertex where every muon has
// a clean inner track and every electron a clean GSF track, both pointing
// at the vertex.
func newSource(muons []lep, electrons []lep) *SourceEvent {
	src := &SourceEvent{
		Run:      1,
		Event:    42,
		Vertices: []SourceVertex{goodVertexSource()},
		PFMET:    SourceMET{Pt: 50, Phi: -1.5},
	}
	for _, m := range muons {
		kin := SourceKinematics{Pt: m.pt, Eta: m.eta, Phi: m.phi, Mass: 0.105}
		src.Tracks = append(src.Tracks, SourceTrack{
			SourceKinematics: kin,
			Charge:           m.charge,
			Chi2:             15,
			Ndof:             15,
			ValidHits:        15,
		})
		src.Muons = append(src.Muons, SourceMuon{
			SourceKinematics: kin,
			Charge:           m.charge,
			TrackIdx:         len(src.Tracks) - 1,
			IsGlobal:         true,
			IsTracker:        true,
			GlobalChi2:       20,
			GlobalNdof:       20,
			ValidMuonHits:    10,
			NMatches:         3,
		})
	}
	for _, e := range electrons {
		kin := SourceKinematics{Pt: e.pt, Eta: e.eta, Phi: e.phi, Mass: 0.000511}
		src.GsfTracks = append(src.GsfTracks, SourceTrack{
			SourceKinematics: kin,
			Charge:           e.charge,
			Chi2:             10,
			Ndof:             10,
		})
		src.Electrons = append(src.Electrons, SourceElectron{
			SourceKinematics: kin,
			Charge:           e.charge,
			TrackIdx:         -1,
			GsfTrackIdx:      len(src.GsfTracks) - 1,
			SCEta:            e.eta,
			EOverPIn:         1,
			EcalEnergy:       e.pt,
		})
	}
	return src
}

// recordFor runs the maker stages up to and including last.
func recordFor(src *SourceEvent, last MakerStage) *EventRecord {
	ev := &EventRecord{}
	makers := DefaultMakers(DefaultThresholds())
	for s := StageCommon; s <= last; s++ {
		makers.Run(s, ev, src)
	}
	return ev
}

func passingSelector() *Selector {
	return NewSelector(&stubModel{score: 1}, &stubModel{score: 1}, DefaultThresholds())
}

// dimuon is an opposite sign muon pair with mll around 57 GeV and a
// dilepton pT around 18 GeV.
func dimuon() []lep {
	return []lep{
		{pt: 30, eta: 0.5, phi: 0, charge: -1},
		{pt: 25, eta: -0.3, phi: 2.5, charge: 1},
	}
}
