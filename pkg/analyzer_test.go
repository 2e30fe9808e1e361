package hww

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passAllCutflow(n int) *Cutflow {
	names := []string{"one", "two", "three", "four", "five", "six"}
	var cuts []Cut
	for _, name := range names[:n] {
		cuts = append(cuts, fixedCut(name, true))
	}
	return NewCutflow(cuts...)
}

func TestAnalyzeWithoutLeptonsOnlyCountsTotal(t *testing.T) {
	a := NewAnalyzer(&stubModel{score: 1}, &stubModel{score: 1}, DefaultThresholds())
	res := a.Analyze(newSource(nil, nil))

	assert.Equal(t, -1, res.Best)
	assert.Zero(t, res.Hypotheses)
	assert.Empty(t, res.Candidates)
	for _, ch := range Channels {
		assert.Equal(t, uint64(1), a.Monitor.Events(ch, TotalEvents))
		for _, name := range a.Cutflow().Names()[1:] {
			assert.Equal(t, uint64(0), a.Monitor.Events(ch, name))
		}
	}

	set := NewHistogramSet()
	require.NoError(t, BookHistograms(set, 20))
	require.NoError(t, a.Monitor.FillHistograms(set))
	for _, ch := range Channels {
		assert.Equal(t, 1.0, set.Histograms[ch].Values[0])
		assert.Equal(t, TotalEvents, set.Histograms[ch].Labels[0])
	}
}

func TestAnalyzeCountsPassedStagesInBestChannel(t *testing.T) {
	a := NewAnalyzer(&stubModel{score: 1}, &stubModel{score: 1}, DefaultThresholds(), WithCutflow(passAllCutflow(5)))
	res := a.Analyze(newSource(dimuon(), nil))

	require.Equal(t, 0, res.Best)
	assert.Equal(t, MM, res.Channel)
	assert.Equal(t, 5, res.StagesPassed)
	assert.True(t, res.PassedAll)

	names := a.Cutflow().Names()
	assert.Equal(t, names, a.Monitor.Names())
	for _, ch := range Channels {
		assert.Equal(t, uint64(1), a.Monitor.Events(ch, TotalEvents))
		want := uint64(0)
		if ch == MM {
			want = 1
		}
		for _, name := range names[1:] {
			assert.Equal(t, want, a.Monitor.Events(ch, name), "%s %s", ch, name)
		}
	}
}

func TestAnalyzePrefersMuonPairOverHigherPtElectronMuonPair(t *testing.T) {
	muons := []lep{
		{pt: 25, eta: 0.3, phi: 0, charge: -1},
		{pt: 21, eta: -0.8, phi: 2.8, charge: 1},
	}
	electrons := []lep{{pt: 60, eta: 1.0, phi: -1.5, charge: 1}}
	a := NewAnalyzer(&stubModel{score: 1}, &stubModel{score: 1}, DefaultThresholds(), WithCutflow(passAllCutflow(1)))

	res := a.Analyze(newSource(muons, electrons))
	require.Len(t, res.Candidates, 3)
	assert.Equal(t, MM, res.Channel)
	assert.Equal(t, uint64(1), a.Monitor.Events(MM, "one"))
	assert.Equal(t, uint64(0), a.Monitor.Events(EM, "one"))
	assert.Equal(t, uint64(0), a.Monitor.Events(ME, "one"))
}

func TestAnalyzeStopsWhenBaselineFails(t *testing.T) {
	muonIso := &stubModel{score: -1}
	a := NewAnalyzer(&stubModel{score: 1}, muonIso, DefaultThresholds())
	res := a.Analyze(newSource(dimuon(), nil))

	assert.Equal(t, []int{0}, res.GoodHyps)
	assert.Empty(t, res.Candidates)
	assert.Equal(t, -1, res.Best)
	assert.NotZero(t, muonIso.calls)
	assert.Equal(t, uint64(0), a.Monitor.Events(MM, "baseline"))
}

func TestAnalyzeStandardCutflow(t *testing.T) {
	a := NewAnalyzer(&stubModel{score: 1}, &stubModel{score: 1}, DefaultThresholds())
	res := a.Analyze(newSource(dimuon(), nil))

	// the pair has pT around 18 GeV, so the track MET built from the legs
	// alone stays below the projected MET cut
	require.Equal(t, MM, res.Channel)
	assert.Equal(t, 7, res.StagesPassed)
	assert.False(t, res.PassedAll)

	names := a.Monitor.Names()
	for i, name := range names {
		want := uint64(0)
		if i <= 7 {
			want = 1
		}
		assert.Equal(t, want, a.Monitor.Events(MM, name), name)
	}
	assert.Equal(t, "minMET > 20 GeV", names[8])
}

func TestMergedWorkersMatchSingleAnalyzer(t *testing.T) {
	events := []*SourceEvent{
		newSource(dimuon(), nil),
		newSource(nil, nil),
		newSource(nil, []lep{{pt: 35, eta: 0.1, phi: 0, charge: 1}, {pt: 28, eta: 1.1, phi: 2.9, charge: -1}}),
		newSource([]lep{{pt: 40, eta: 0, phi: 1, charge: 1}}, []lep{{pt: 30, eta: -1, phi: -2, charge: -1}}),
		newSource(dimuon(), nil),
	}
	newAnalyzer := func() *Analyzer {
		return NewAnalyzer(&stubModel{score: 1}, &stubModel{score: 1}, DefaultThresholds())
	}

	single := newAnalyzer()
	for _, src := range events {
		single.Analyze(src)
	}

	workers := []*Analyzer{newAnalyzer(), newAnalyzer()}
	for i, src := range events {
		workers[i%2].Analyze(src)
	}
	merged := NewMonitor()
	merged.Declare(single.Cutflow().Names()...)
	for _, w := range workers {
		merged.Merge(w.Monitor)
	}

	assert.Equal(t, single.Monitor.Counters(), merged.Counters())
}
