package hww

import (
	"math"

	"golang.org/x/exp/slices"
)

// legMatchDR is the cone used to identify PF candidates belonging to a leg.
const legMatchDR = 0.1

// trackMET builds the missing transverse momentum from charged PF
// candidates compatible with the primary vertex plus the two legs of hyp.
func trackMET(ev *EventRecord, hyp Hypothesis, maxDz float64) MET {
	ev.require(StageCandidates)

	legs := []P4{ev.LeptonP4(hyp.Lead), ev.LeptonP4(hyp.Trail)}
	px := legs[0].P.X + legs[1].P.X
	py := legs[0].P.Y + legs[1].P.Y

	pv, ok := ev.PrimaryVertex()
	if ok {
		for _, cand := range ev.PFCandidates {
			if cand.Charge == 0 {
				continue
			}
			_, dz := ImpactParameters(cand.RefPoint, cand.P4, pv.Position)
			if math.Abs(dz) >= maxDz {
				continue
			}
			if slices.ContainsFunc(legs, func(l P4) bool { return DeltaR(l, cand.P4) < legMatchDR }) {
				continue
			}
			px += cand.P4.P.X
			py += cand.P4.P.Y
		}
	}

	met := MET{Pt: math.Hypot(px, py)}
	if met.Pt > 0 {
		met.Phi = math.Atan2(-py, -px)
	}
	return met
}

// ProjectedMET keeps only the component transverse to the closest leg when
// that leg is within pi/2 of the MET direction.
func ProjectedMET(ev *EventRecord, hyp Hypothesis, met MET) float64 {
	dphi := math.Min(
		DeltaPhi(met.Phi, ev.LeptonP4(hyp.Lead).Phi()),
		DeltaPhi(met.Phi, ev.LeptonP4(hyp.Trail).Phi()),
	)
	if dphi < math.Pi/2 {
		return met.Pt * math.Sin(dphi)
	}
	return met.Pt
}

// MinProjectedMET is the smaller of the projected PF and track MET.
func MinProjectedMET(ev *EventRecord, hyp Hypothesis) float64 {
	ev.require(StageSelection)
	pf := ProjectedMET(ev, hyp, ev.PFMET)
	trk := ProjectedMET(ev, hyp, ev.TrkMET[hyp.Index])
	return math.Min(pf, trk)
}
