package hww

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leptons(n int, firstPt float64) ([]ElectronObj, []MuonObj) {
	electrons := make([]ElectronObj, n)
	muons := make([]MuonObj, n)
	for i := 0; i < n; i++ {
		p := NewP4PtEtaPhiM(firstPt+float64(i), 0.1*float64(i), 0.3*float64(i), 0)
		electrons[i] = ElectronObj{P4: p, Charge: 1}
		muons[i] = MuonObj{P4: p, Charge: -1}
	}
	return electrons, muons
}

func TestBuildHypothesesCount(t *testing.T) {
	choose2 := func(n int) int { return n * (n - 1) / 2 }
	for ne := 0; ne <= 4; ne++ {
		for nm := 0; nm <= 4; nm++ {
			t.Run(fmt.Sprintf("%de_%dm", ne, nm), func(t *testing.T) {
				electrons, _ := leptons(ne, 10)
				_, muons := leptons(nm, 15)
				hyps := BuildHypotheses(electrons, muons)
				assert.Len(t, hyps, ne*nm+choose2(ne)+choose2(nm))
				for i, h := range hyps {
					assert.Equal(t, i, h.Index)
				}
			})
		}
	}
}

func TestBuildHypothesesEmpty(t *testing.T) {
	electrons, muons := leptons(1, 20)
	assert.Empty(t, BuildHypotheses(nil, nil))
	assert.Empty(t, BuildHypotheses(electrons, nil))
	assert.Empty(t, BuildHypotheses(nil, muons))
}

func TestBuildHypothesesChannels(t *testing.T) {
	electrons := []ElectronObj{{P4: NewP4PtEtaPhiM(40, 0, 0, 0)}}
	muons := []MuonObj{
		{P4: NewP4PtEtaPhiM(25, 0, 1, 0)},
		{P4: NewP4PtEtaPhiM(60, 0, 2, 0)},
	}
	hyps := BuildHypotheses(electrons, muons)
	require.Len(t, hyps, 3)

	assert.Equal(t, MM, hyps[0].Channel)
	assert.Equal(t, Lepton{Muon, 1}, hyps[0].Lead)
	assert.Equal(t, Lepton{Muon, 0}, hyps[0].Trail)

	// electron 40 leads muon 25
	assert.Equal(t, EM, hyps[1].Channel)
	assert.Equal(t, Lepton{Electron, 0}, hyps[1].Lead)

	// muon 60 leads electron 40
	assert.Equal(t, ME, hyps[2].Channel)
	assert.Equal(t, Lepton{Muon, 1}, hyps[2].Lead)
	assert.Equal(t, Lepton{Electron, 0}, hyps[2].Trail)

	sum := electrons[0].P4.Add(muons[1].P4)
	assert.InDelta(t, sum.M(), hyps[2].P4.M(), 1e-9)
}

func TestChannelOfIsPureFunctionOfLegs(t *testing.T) {
	assert.Equal(t, MM, channelOf(Muon, Muon))
	assert.Equal(t, EE, channelOf(Electron, Electron))
	assert.Equal(t, EM, channelOf(Electron, Muon))
	assert.Equal(t, ME, channelOf(Muon, Electron))
}

func TestParseChannel(t *testing.T) {
	for _, ch := range Channels {
		parsed, err := ParseChannel(ch.String())
		require.NoError(t, err)
		assert.Equal(t, ch, parsed)
	}
	_, err := ParseChannel("tt")
	assert.Error(t, err)
}
