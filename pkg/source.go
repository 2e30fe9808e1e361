package hww

// SourceEvent is one reconstructed event as delivered by the upstream
// framework, one JSON document per event. Index fields use -1 for "none".
type SourceEvent struct {
	Run          uint32              `json:"run"`
	Lumi         uint32              `json:"lumi"`
	Event        uint64              `json:"event"`
	Vertices     []SourceVertex      `json:"vertices"`
	Tracks       []SourceTrack       `json:"tracks"`
	GsfTracks    []SourceTrack       `json:"gsf_tracks"`
	Electrons    []SourceElectron    `json:"electrons"`
	Muons        []SourceMuon        `json:"muons"`
	Jets         []SourceJet         `json:"jets"`
	PFCandidates []SourcePFCandidate `json:"pf_candidates"`
	PFElectrons  []SourcePFElectron  `json:"pf_electrons"`
	Conversions  []SourceConversion  `json:"conversions"`
	Rho          float64             `json:"rho"`
	PFMET        SourceMET           `json:"pf_met"`
}

type SourceKinematics struct {
	Pt   float64 `json:"pt"`
	Eta  float64 `json:"eta"`
	Phi  float64 `json:"phi"`
	Mass float64 `json:"mass"`
}

func (k SourceKinematics) p4() P4 {
	return NewP4PtEtaPhiM(k.Pt, k.Eta, k.Phi, k.Mass)
}

type SourceVertex struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Ndof   float64 `json:"ndof"`
	IsFake bool    `json:"is_fake"`
	SumPt  float64 `json:"sum_pt"`
}

type SourceTrack struct {
	SourceKinematics
	Charge           int     `json:"charge"`
	VX               float64 `json:"vx"`
	VY               float64 `json:"vy"`
	VZ               float64 `json:"vz"`
	Chi2             float64 `json:"chi2"`
	Ndof             float64 `json:"ndof"`
	ValidHits        int     `json:"valid_hits"`
	LostHits         int     `json:"lost_hits"`
	MissingInnerHits int     `json:"missing_inner_hits"`
}

type SourceElectron struct {
	SourceKinematics
	Charge        int     `json:"charge"`
	TrackIdx      int     `json:"track_idx"`
	GsfTrackIdx   int     `json:"gsf_track_idx"`
	SCEta         float64 `json:"sc_eta"`
	SigmaIEtaIEta float64 `json:"sigma_ieta_ieta"`
	DEtaIn        float64 `json:"deta_in"`
	DPhiIn        float64 `json:"dphi_in"`
	HOverE        float64 `json:"h_over_e"`
	FBrem         float64 `json:"fbrem"`
	EOverPIn      float64 `json:"e_over_p_in"`
	EcalEnergy    float64 `json:"ecal_energy"`
}

type SourceMuon struct {
	SourceKinematics
	Charge        int     `json:"charge"`
	TrackIdx      int     `json:"track_idx"`
	IsGlobal      bool    `json:"is_global"`
	IsTracker     bool    `json:"is_tracker"`
	GlobalChi2    float64 `json:"global_chi2"`
	GlobalNdof    float64 `json:"global_ndof"`
	ValidMuonHits int     `json:"valid_muon_hits"`
	NMatches      int     `json:"n_matches"`
}

type SourceJet struct {
	SourceKinematics
	BTag  float64 `json:"btag"`
	MVAID float64 `json:"mva_id"`
}

type SourcePFCandidate struct {
	SourceKinematics
	Charge      int     `json:"charge"`
	PdgID       int     `json:"pdg_id"`
	TrackIdx    int     `json:"track_idx"`
	GsfTrackIdx int     `json:"gsf_track_idx"`
	VX          float64 `json:"vx"`
	VY          float64 `json:"vy"`
	VZ          float64 `json:"vz"`
}

type SourcePFElectron struct {
	SourceKinematics
	GsfTrackIdx int `json:"gsf_track_idx"`
}

type SourceConversion struct {
	GsfTrackIdxs   []int   `json:"gsf_track_idxs"`
	NHitsBeforeVtx []int   `json:"nhits_before_vtx"`
	VtxProb        float64 `json:"vtx_prob"`
	Lxy            float64 `json:"lxy"`
}

type SourceMET struct {
	Pt  float64 `json:"pt"`
	Phi float64 `json:"phi"`
}
