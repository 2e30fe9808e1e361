package hww

import (
	"encoding/json"
	"os"
)

type Configuration struct {
	MaxEvents        int        `json:"max_events"`
	Skip             int        `json:"skip"`
	Verbosity        int        `json:"verbosity"`
	FileIn           string     `json:"file_in"`
	FileOut          string     `json:"file_out"`
	MetricsFile      string     `json:"metrics_file"`
	RunNumber        int        `json:"run_number"`
	NoDB             bool       `json:"no_db"`
	Host             string     `json:"host"`
	User             string     `json:"user"`
	Passwd           string     `json:"pass"`
	DBName           string     `json:"dbname"`
	NumWorkers       int        `json:"num_workers"`
	Parallel         bool       `json:"parallel"`
	CompressionLevel int        `json:"compression_level"`
	NumBins          int        `json:"num_bins"`
	EGammaWeights    []string   `json:"egamma_weights"`
	MuonIsoWeights   []string   `json:"muon_iso_weights"`
	Thresholds       Thresholds `json:"thresholds"`
}

// Thresholds holds every cut value used by the selection. Working point
// arrays are indexed by the scoring category of the lepton.
type Thresholds struct {
	VertexNdof float64 `json:"vertex_ndof"`
	VertexZ    float64 `json:"vertex_z"`
	VertexRho  float64 `json:"vertex_rho"`

	LeadingPt      float64 `json:"leading_pt"`
	TrailingPt     float64 `json:"trailing_pt"`
	ElectronMaxEta float64 `json:"electron_max_eta"`
	MuonMaxEta     float64 `json:"muon_max_eta"`
	LooseMll       float64 `json:"loose_mll"`

	ElectronD0         float64 `json:"electron_d0"`
	MuonD0HighPt       float64 `json:"muon_d0_high_pt"`
	MuonD0LowPt        float64 `json:"muon_d0_low_pt"`
	MaxDz              float64 `json:"max_dz"`
	MuonMinTrackerHits int     `json:"muon_min_tracker_hits"`
	MuonMaxChi2Ndof    float64 `json:"muon_max_chi2_ndof"`
	ElectronLooseIso   float64 `json:"electron_loose_iso"`
	ElectronTightIso   float64 `json:"electron_tight_iso"`

	ElectronLooseMVA [NumCategories]float64 `json:"electron_loose_mva"`
	ElectronTightMVA [NumCategories]float64 `json:"electron_tight_mva"`
	MuonLooseIsoMVA  [NumCategories]float64 `json:"muon_loose_iso_mva"`
	MuonTightIsoMVA  [NumCategories]float64 `json:"muon_tight_iso_mva"`

	ExtraLeptonPt   float64 `json:"extra_lepton_pt"`
	MetCut          float64 `json:"met_cut"`
	MllCut          float64 `json:"mll_cut"`
	ZMass           float64 `json:"z_mass"`
	ZWindow         float64 `json:"z_window"`
	MinMetCut       float64 `json:"min_met_cut"`
	MinMetSFCut     float64 `json:"min_met_sf_cut"`
	DPhiDiLepJetCut float64 `json:"dphi_dilep_jet_cut"`
	DPhiJetPt       float64 `json:"dphi_jet_pt"`
	PtllCut         float64 `json:"ptll_cut"`

	JetPt         float64 `json:"jet_pt"`
	JetEta        float64 `json:"jet_eta"`
	JetLeptonDR   float64 `json:"jet_lepton_dr"`
	JetMVAID      float64 `json:"jet_mva_id"`
	BTagPt        float64 `json:"btag_pt"`
	BTagCut       float64 `json:"btag_cut"`
	SoftMuonPt    float64 `json:"soft_muon_pt"`
	SoftMuonIso   float64 `json:"soft_muon_iso"`
	SoftMuonIsoPt float64 `json:"soft_muon_iso_pt"`
	SoftMuonD0    float64 `json:"soft_muon_d0"`
	SoftMuonDz    float64 `json:"soft_muon_dz"`
	TrkMetDz      float64 `json:"trk_met_dz"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		VertexNdof: 4,
		VertexZ:    24,
		VertexRho:  2,

		LeadingPt:      20,
		TrailingPt:     10,
		ElectronMaxEta: 2.5,
		MuonMaxEta:     2.4,
		LooseMll:       8,

		ElectronD0:         0.02,
		MuonD0HighPt:       0.02,
		MuonD0LowPt:        0.01,
		MaxDz:              0.1,
		MuonMinTrackerHits: 11,
		MuonMaxChi2Ndof:    10,
		ElectronLooseIso:   0.4,
		ElectronTightIso:   0.15,

		ElectronLooseMVA: [NumCategories]float64{-0.5, -0.5, -0.5, -0.5, -0.5, -0.5},
		ElectronTightMVA: [NumCategories]float64{0.00, 0.10, 0.62, 0.94, 0.85, 0.92},
		MuonLooseIsoMVA:  [NumCategories]float64{-0.5, -0.5, -0.5, -0.5, -0.5, -0.5},
		MuonTightIsoMVA:  [NumCategories]float64{0.86, 0.82, 0.82, 0.86, 0.82, 0.86},

		ExtraLeptonPt:   10,
		MetCut:          20,
		MllCut:          12,
		ZMass:           91.1876,
		ZWindow:         15,
		MinMetCut:       20,
		MinMetSFCut:     40,
		DPhiDiLepJetCut: 165,
		DPhiJetPt:       15,
		PtllCut:         45,

		JetPt:         30,
		JetEta:        4.7,
		JetLeptonDR:   0.3,
		JetMVAID:      -0.6,
		BTagPt:        10,
		BTagCut:       2.1,
		SoftMuonPt:    3,
		SoftMuonIso:   0.1,
		SoftMuonIsoPt: 20,
		SoftMuonD0:    0.2,
		SoftMuonDz:    0.2,
		TrkMetDz:      0.1,
	}
}

func DefaultConfiguration() Configuration {
	return Configuration{
		MaxEvents:        1000000000,
		Skip:             0,
		Verbosity:        0,
		FileOut:          "hww_cutflow.h5",
		NoDB:             true,
		Host:             "localhost",
		User:             "dqm",
		Passwd:           "dqm",
		DBName:           "HWW",
		NumWorkers:       1,
		Parallel:         false,
		CompressionLevel: 4,
		NumBins:          20,
		Thresholds:       DefaultThresholds(),
	}
}

// LoadConfiguration reads a JSON configuration file on top of the defaults.
func LoadConfiguration(filename string) (Configuration, error) {
	config := DefaultConfiguration()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, &ErrOpenFile{Filename: filename, Err: err}
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	return config, nil
}

// Validate checks the settings that must abort the job before any event
// is processed.
func (c Configuration) Validate() error {
	if len(c.EGammaWeights) != NumCategories {
		return &ErrModelPaths{Model: EGammaModelName, Got: len(c.EGammaWeights)}
	}
	if len(c.MuonIsoWeights) != NumCategories {
		return &ErrModelPaths{Model: MuonIsoModelName, Got: len(c.MuonIsoWeights)}
	}
	return nil
}

var configuration = DefaultConfiguration()

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}
