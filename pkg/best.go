package hww

// BestHypothesis picks one hypothesis index out of candidates. The channel
// priority decides first; within a channel the larger scalar pT sum of the
// legs wins and exact ties keep the earlier candidate.
//
// candidates must not be empty.
func BestHypothesis(ev *EventRecord, candidates []int) int {
	if len(candidates) == 0 {
		panic("hww: BestHypothesis called without candidates")
	}
	best := candidates[0]
	for _, idx := range candidates[1:] {
		if betterHypothesis(ev, ev.Hypotheses[idx], ev.Hypotheses[best]) {
			best = idx
		}
	}
	return best
}

func betterHypothesis(ev *EventRecord, a, b Hypothesis) bool {
	pa, pb := channelPriority[a.Channel], channelPriority[b.Channel]
	if pa != pb {
		return pa < pb
	}
	return scalarPtSum(ev, a) > scalarPtSum(ev, b)
}

func scalarPtSum(ev *EventRecord, h Hypothesis) float64 {
	return ev.LeptonP4(h.Lead).Pt() + ev.LeptonP4(h.Trail).Pt()
}
