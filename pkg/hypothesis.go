package hww

// Lepton points at one entry of the electron or muon collection.
type Lepton struct {
	Flavor Flavor
	Index  int
}

// Hypothesis is a candidate lepton pair. Lead is the leg with the higher
// transverse momentum.
type Hypothesis struct {
	Index   int
	Lead    Lepton
	Trail   Lepton
	Channel Channel
	P4      P4
}

func (h Hypothesis) Legs() []Lepton {
	return []Lepton{h.Lead, h.Trail}
}

// BuildHypotheses enumerates every unordered pair of leptons: muon pairs
// first, then electron pairs, then electron-muon pairs.
func BuildHypotheses(electrons []ElectronObj, muons []MuonObj) []Hypothesis {
	nPairs := len(electrons)*len(muons) +
		len(electrons)*(len(electrons)-1)/2 +
		len(muons)*(len(muons)-1)/2
	hyps := make([]Hypothesis, 0, nPairs)

	add := func(a Lepton, pa P4, b Lepton, pb P4) {
		if pb.Pt() > pa.Pt() {
			a, b = b, a
			pa, pb = pb, pa
		}
		hyps = append(hyps, Hypothesis{
			Index:   len(hyps),
			Lead:    a,
			Trail:   b,
			Channel: channelOf(a.Flavor, b.Flavor),
			P4:      pa.Add(pb),
		})
	}

	for i := 0; i < len(muons); i++ {
		for j := i + 1; j < len(muons); j++ {
			add(Lepton{Muon, i}, muons[i].P4, Lepton{Muon, j}, muons[j].P4)
		}
	}
	for i := 0; i < len(electrons); i++ {
		for j := i + 1; j < len(electrons); j++ {
			add(Lepton{Electron, i}, electrons[i].P4, Lepton{Electron, j}, electrons[j].P4)
		}
	}
	for i := range electrons {
		for j := range muons {
			add(Lepton{Electron, i}, electrons[i].P4, Lepton{Muon, j}, muons[j].P4)
		}
	}
	return hyps
}
