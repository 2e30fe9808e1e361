package hww

import "gonum.org/v1/gonum/spatial/r3"

// MakerStage identifies a group of makers. Stages run in declaration order
// and each one may read what the previous ones filled.
type MakerStage int

const (
	StageCommon MakerStage = iota
	StageCandidates
	StageSelection
	numStages
)

func (s MakerStage) String() string {
	switch s {
	case StageCommon:
		return "common"
	case StageCandidates:
		return "candidates"
	case StageSelection:
		return "selection"
	default:
		return "unknown"
	}
}

// EventRecord holds every collection used by the selection for one event.
// It is rebuilt from scratch for each event.
type EventRecord struct {
	RunNumber   uint32
	LumiSection uint32
	EventID     uint64

	// Filled in StageCommon
	Vertices   []Vertex
	Tracks     []Track
	Electrons  []ElectronObj
	Muons      []MuonObj
	Jets       []PFJet
	Hypotheses []Hypothesis

	// Filled in StageCandidates
	PFCandidates []PFCandidate
	PFElectrons  []PFElectron
	GsfTracks    []GsfTrack
	Conversions  []Conversion
	Rho          float64

	// Filled in StageSelection. TrkMET is indexed like Hypotheses.
	PFMET  MET
	TrkMET []MET

	done [numStages]bool
}

type Vertex struct {
	Position r3.Vec
	Ndof     float64
	IsFake   bool
	SumPt    float64
}

type Track struct {
	P4        P4
	Charge    int
	RefPoint  r3.Vec
	Chi2      float64
	Ndof      float64
	ValidHits int
	LostHits  int
}

type GsfTrack struct {
	P4               P4
	Charge           int
	RefPoint         r3.Vec
	Chi2             float64
	Ndof             float64
	MissingInnerHits int
}

type ElectronObj struct {
	P4            P4
	Charge        int
	TrackIdx      int
	GsfTrackIdx   int
	PFElectronIdx int

	SCEta         float64
	SigmaIEtaIEta float64
	DEtaIn        float64
	DPhiIn        float64
	HOverE        float64
	FBrem         float64
	EOverPIn      float64
	EcalEnergy    float64
	KFChi2        float64
	KFHits        int
}

type MuonObj struct {
	P4            P4
	Charge        int
	TrackIdx      int
	IsGlobal      bool
	IsTracker     bool
	GlobalChi2    float64
	GlobalNdof    float64
	ValidMuonHits int
	NMatches      int
}

type PFCandidate struct {
	P4          P4
	Charge      int
	ParticleID  int
	TrackIdx    int
	GsfTrackIdx int
	RefPoint    r3.Vec
}

type PFElectron struct {
	P4          P4
	GsfTrackIdx int
}

type Conversion struct {
	GsfTrackIdxs   []int
	NHitsBeforeVtx []int
	VtxProb        float64
	Lxy            float64
}

type PFJet struct {
	P4    P4
	BTag  float64
	MVAID float64
}

type MET struct {
	Pt  float64
	Phi float64
}

func (ev *EventRecord) markDone(stage MakerStage) {
	ev.done[stage] = true
}

// Has reports whether the makers of a stage already ran for this event.
func (ev *EventRecord) Has(stage MakerStage) bool {
	return ev.done[stage]
}

func (ev *EventRecord) require(stage MakerStage) {
	if !ev.done[stage] {
		panic(ErrStageOrder)
	}
}

// PrimaryVertex returns the first vertex, which is the one with the highest
// sum pT by construction of the vertex collection.
func (ev *EventRecord) PrimaryVertex() (Vertex, bool) {
	if len(ev.Vertices) == 0 {
		return Vertex{}, false
	}
	return ev.Vertices[0], true
}

// LeptonP4 returns the momentum of a hypothesis leg.
func (ev *EventRecord) LeptonP4(l Lepton) P4 {
	if l.Flavor == Electron {
		return ev.Electrons[l.Index].P4
	}
	return ev.Muons[l.Index].P4
}

func (ev *EventRecord) LeptonCharge(l Lepton) int {
	if l.Flavor == Electron {
		return ev.Electrons[l.Index].Charge
	}
	return ev.Muons[l.Index].Charge
}
