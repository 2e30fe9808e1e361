package hww

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	ElectronFeatureCount = 14
	MuonFeatureCount     = 3*numIsoRings + 2

	numIsoRings   = 5
	isoRingWidth  = 0.1
	electronIsoDR = 0.4
	softMuonIsoDR = 0.3
	chargedIsoDz  = 0.2
	barrelEtaMax  = 1.479
	footprintDR   = 1e-3
	pdgPhoton     = 22
)

// Effective areas for the neutral pileup correction of electron isolation,
// by upper edge of |eta|.
var electronEffectiveAreas = []struct {
	etaMax float64
	area   float64
}{
	{1.0, 0.13},
	{1.479, 0.14},
	{2.0, 0.07},
	{2.2, 0.09},
	{2.3, 0.11},
	{2.4, 0.11},
	{math.Inf(1), 0.14},
}

// ElectronCategory selects the electron-ID training category: three |eta|
// bins below 20 GeV, the same three bins above.
func ElectronCategory(ele ElectronObj) int {
	eta := math.Abs(ele.SCEta)
	bin := 2
	switch {
	case eta < 0.8:
		bin = 0
	case eta < barrelEtaMax:
		bin = 1
	}
	if ele.P4.Pt() >= 20 {
		bin += 3
	}
	return bin
}

// MuonCategory selects the isolation training category.
func MuonCategory(mu MuonObj) int {
	switch {
	case mu.IsTracker && !mu.IsGlobal:
		return 4
	case mu.IsGlobal && !mu.IsTracker:
		return 5
	}
	barrel := math.Abs(mu.P4.Eta()) < barrelEtaMax
	switch {
	case mu.P4.Pt() < 10 && barrel:
		return 0
	case mu.P4.Pt() < 10:
		return 1
	case barrel:
		return 2
	default:
		return 3
	}
}

func pvPosition(ev *EventRecord) r3.Vec {
	pv, _ := ev.PrimaryVertex()
	return pv.Position
}

// ElectronImpactParameters uses the GSF track; electrons without one get
// the sentinel 999 for both values.
func ElectronImpactParameters(ev *EventRecord, idx int) (d0, dz float64) {
	ev.require(StageCandidates)
	ele := ev.Electrons[idx]
	if ele.GsfTrackIdx < 0 {
		return 999, 999
	}
	gsf := ev.GsfTracks[ele.GsfTrackIdx]
	return ImpactParameters(gsf.RefPoint, gsf.P4, pvPosition(ev))
}

// MuonImpactParameters uses the inner track; muons without one get the
// sentinel 999 for both values.
func MuonImpactParameters(ev *EventRecord, idx int) (d0, dz float64) {
	mu := ev.Muons[idx]
	if mu.TrackIdx < 0 {
		return 999, 999
	}
	trk := ev.Tracks[mu.TrackIdx]
	return ImpactParameters(trk.RefPoint, trk.P4, pvPosition(ev))
}

// ElectronFeatures builds the electron-ID input vector.
func ElectronFeatures(ev *EventRecord, idx int) []float64 {
	ev.require(StageCandidates)
	ele := ev.Electrons[idx]

	var gsfChi2, invEminusInvP float64
	if ele.GsfTrackIdx >= 0 {
		gsf := ev.GsfTracks[ele.GsfTrackIdx]
		if gsf.Ndof > 0 {
			gsfChi2 = gsf.Chi2 / gsf.Ndof
		}
		p := r3.Norm(gsf.P4.P)
		if ele.EcalEnergy > 0 && p > 0 {
			invEminusInvP = 1/ele.EcalEnergy - 1/p
		}
	}
	d0, dz := ElectronImpactParameters(ev, idx)

	return []float64{
		math.Max(ele.FBrem, -1),
		math.Min(ele.KFChi2, 10),
		float64(ele.KFHits),
		math.Min(gsfChi2, 200),
		math.Min(math.Abs(ele.DEtaIn), 0.06),
		math.Min(math.Abs(ele.DPhiIn), 0.6),
		ele.SigmaIEtaIEta,
		ele.HOverE,
		math.Min(ele.EOverPIn, 20),
		invEminusInvP,
		d0,
		math.Hypot(d0, dz),
		ele.SCEta,
		ele.P4.Pt(),
	}
}

// MuonFeatures builds the isolation-ring input vector: charged, photon and
// neutral hadron PF energy in rings of width 0.1 around the muon, each
// relative to the muon pT, followed by rho and eta.
func MuonFeatures(ev *EventRecord, idx int) []float64 {
	ev.require(StageCandidates)
	mu := ev.Muons[idx]
	pv := pvPosition(ev)

	var charged, photon, neutral [numIsoRings]float64
	for _, cand := range ev.PFCandidates {
		if mu.TrackIdx >= 0 && cand.TrackIdx == mu.TrackIdx {
			continue
		}
		dr := DeltaR(mu.P4, cand.P4)
		if dr >= numIsoRings*isoRingWidth {
			continue
		}
		ring := min(int(dr/isoRingWidth), numIsoRings-1)
		switch {
		case cand.Charge != 0:
			_, dz := ImpactParameters(cand.RefPoint, cand.P4, pv)
			if math.Abs(dz) < chargedIsoDz {
				charged[ring] += cand.P4.Pt()
			}
		case cand.ParticleID == pdgPhoton:
			photon[ring] += cand.P4.Pt()
		default:
			neutral[ring] += cand.P4.Pt()
		}
	}

	pt := mu.P4.Pt()
	features := make([]float64, 0, MuonFeatureCount)
	for _, rings := range [][numIsoRings]float64{charged, photon, neutral} {
		for _, e := range rings {
			features = append(features, math.Min(e/pt, 2.5))
		}
	}
	return append(features, ev.Rho, mu.P4.Eta())
}

// ElectronPFIso is the relative PF isolation in a 0.4 cone with the neutral
// component corrected for pileup with rho times the effective area.
func ElectronPFIso(ev *EventRecord, idx int) float64 {
	ev.require(StageCandidates)
	ele := ev.Electrons[idx]
	pv := pvPosition(ev)

	var pfel *PFElectron
	if ele.PFElectronIdx >= 0 {
		pfel = &ev.PFElectrons[ele.PFElectronIdx]
	}

	var charged, neutral float64
	for _, cand := range ev.PFCandidates {
		if ele.GsfTrackIdx >= 0 && cand.GsfTrackIdx == ele.GsfTrackIdx {
			continue
		}
		if pfel != nil && DeltaR(pfel.P4, cand.P4) < footprintDR {
			continue
		}
		if DeltaR(ele.P4, cand.P4) >= electronIsoDR {
			continue
		}
		if cand.Charge != 0 {
			_, dz := ImpactParameters(cand.RefPoint, cand.P4, pv)
			if math.Abs(dz) < chargedIsoDz {
				charged += cand.P4.Pt()
			}
			continue
		}
		neutral += cand.P4.Pt()
	}

	area := 0.0
	eta := math.Abs(ele.SCEta)
	for _, ea := range electronEffectiveAreas {
		if eta < ea.etaMax {
			area = ea.area
			break
		}
	}
	neutral = math.Max(0, neutral-ev.Rho*area)
	return (charged + neutral) / ele.P4.Pt()
}

// MuonRelIso03 is the relative charged PF isolation in a 0.3 cone.
func MuonRelIso03(ev *EventRecord, idx int) float64 {
	ev.require(StageCandidates)
	mu := ev.Muons[idx]
	pv := pvPosition(ev)
	sum := 0.0
	for _, cand := range ev.PFCandidates {
		if cand.Charge == 0 || (mu.TrackIdx >= 0 && cand.TrackIdx == mu.TrackIdx) {
			continue
		}
		if DeltaR(mu.P4, cand.P4) >= softMuonIsoDR {
			continue
		}
		_, dz := ImpactParameters(cand.RefPoint, cand.P4, pv)
		if math.Abs(dz) < chargedIsoDz {
			sum += cand.P4.Pt()
		}
	}
	return sum / mu.P4.Pt()
}
