package hww

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// P4 is a Lorentz four-vector in (px, py, pz, E), GeV.
type P4 struct {
	P r3.Vec
	E float64
}

func NewP4PtEtaPhiM(pt, eta, phi, m float64) P4 {
	p := r3.Vec{
		X: pt * math.Cos(phi),
		Y: pt * math.Sin(phi),
		Z: pt * math.Sinh(eta),
	}
	return P4{P: p, E: math.Sqrt(r3.Norm2(p) + m*m)}
}

func (p P4) Pt() float64 {
	return math.Hypot(p.P.X, p.P.Y)
}

func (p P4) Phi() float64 {
	if p.P.X == 0 && p.P.Y == 0 {
		return 0
	}
	return math.Atan2(p.P.Y, p.P.X)
}

// Eta returns the pseudorapidity. Purely longitudinal vectors get a large
// finite value with the sign of pz.
func (p P4) Eta() float64 {
	pt := p.Pt()
	if pt == 0 {
		switch {
		case p.P.Z > 0:
			return 1e10
		case p.P.Z < 0:
			return -1e10
		}
		return 0
	}
	return math.Asinh(p.P.Z / pt)
}

func (p P4) M2() float64 {
	return p.E*p.E - r3.Norm2(p.P)
}

func (p P4) M() float64 {
	m2 := p.M2()
	if m2 < 0 {
		return 0
	}
	return math.Sqrt(m2)
}

func (p P4) Add(q P4) P4 {
	return P4{P: r3.Add(p.P, q.P), E: p.E + q.E}
}

// DeltaPhi returns |phi1 - phi2| folded into [0, pi].
func DeltaPhi(phi1, phi2 float64) float64 {
	d := math.Mod(math.Abs(phi1-phi2), 2*math.Pi)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

func DeltaR(a, b P4) float64 {
	deta := a.Eta() - b.Eta()
	dphi := DeltaPhi(a.Phi(), b.Phi())
	return math.Hypot(deta, dphi)
}

// ImpactParameters returns the transverse and longitudinal impact
// parameters of a track with reference point ref and momentum p with
// respect to the vertex at pv.
func ImpactParameters(ref r3.Vec, p P4, pv r3.Vec) (d0, dz float64) {
	pt := p.Pt()
	if pt == 0 {
		return 0, ref.Z - pv.Z
	}
	dx := ref.X - pv.X
	dy := ref.Y - pv.Y
	d0 = (-dx*p.P.Y + dy*p.P.X) / pt
	dz = (ref.Z - pv.Z) - (dx*p.P.X+dy*p.P.Y)/pt*(p.P.Z/pt)
	return d0, dz
}
