package hww

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestP4Kinematics(t *testing.T) {
	p := NewP4PtEtaPhiM(40, 1.2, -2.0, 0)
	assert.InDelta(t, 40, p.Pt(), 1e-9)
	assert.InDelta(t, 1.2, p.Eta(), 1e-9)
	assert.InDelta(t, -2.0, p.Phi(), 1e-9)
	assert.InDelta(t, 0, p.M(), 1e-3)
}

func TestInvariantMassBackToBack(t *testing.T) {
	a := NewP4PtEtaPhiM(45, 0, 0, 0)
	b := NewP4PtEtaPhiM(45, 0, math.Pi, 0)
	z := a.Add(b)
	assert.InDelta(t, 90, z.M(), 1e-9)
	assert.InDelta(t, 0, z.Pt(), 1e-9)
}

func TestDeltaPhiWraps(t *testing.T) {
	assert.InDelta(t, 0.2, DeltaPhi(math.Pi-0.1, -math.Pi+0.1), 1e-9)
	assert.InDelta(t, math.Pi, DeltaPhi(0, math.Pi), 1e-9)
	assert.InDelta(t, 0.5, DeltaPhi(-0.25, 0.25), 1e-9)
}

func TestDeltaR(t *testing.T) {
	a := NewP4PtEtaPhiM(10, 0.3, 0.1, 0)
	b := NewP4PtEtaPhiM(20, 0.0, 0.5, 0)
	assert.InDelta(t, 0.5, DeltaR(a, b), 1e-9)
}

func TestImpactParameters(t *testing.T) {
	p := NewP4PtEtaPhiM(10, 0, 0, 0)
	pv := r3.Vec{X: 0, Y: 0, Z: 1}

	d0, dz := ImpactParameters(r3.Vec{X: 0, Y: 0.01, Z: 1.05}, p, pv)
	assert.InDelta(t, 0.01, d0, 1e-12)
	assert.InDelta(t, 0.05, dz, 1e-12)

	d0, dz = ImpactParameters(r3.Vec{X: 0.3, Y: 0, Z: 1}, p, pv)
	assert.InDelta(t, 0, d0, 1e-12)
	assert.InDelta(t, 0, dz, 1e-12)
}
