package hww

import "fmt"

// Channel is the flavor classification of a dilepton hypothesis. EM has a
// leading electron and a trailing muon, ME the opposite.
type Channel int

const (
	MM Channel = iota
	EE
	EM
	ME
)

// Channels lists every channel in histogram booking order.
var Channels = []Channel{MM, EE, EM, ME}

// Lower value wins in best hypothesis selection.
var channelPriority = map[Channel]int{
	MM: 0,
	EE: 1,
	EM: 2,
	ME: 3,
}

func (c Channel) String() string {
	switch c {
	case MM:
		return "mm"
	case EE:
		return "ee"
	case EM:
		return "em"
	case ME:
		return "me"
	default:
		return "unknown"
	}
}

func (c Channel) SameFlavor() bool {
	return c == MM || c == EE
}

func ParseChannel(s string) (Channel, error) {
	for _, c := range Channels {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("invalid channel: %s", s)
}

type Flavor int

const (
	Electron Flavor = iota
	Muon
)

func (f Flavor) String() string {
	switch f {
	case Electron:
		return "electron"
	case Muon:
		return "muon"
	default:
		return "unknown"
	}
}

// channelOf tags a pair given the flavors of its leading and trailing legs.
func channelOf(lead, trail Flavor) Channel {
	switch {
	case lead == Muon && trail == Muon:
		return MM
	case lead == Electron && trail == Electron:
		return EE
	case lead == Electron:
		return EM
	default:
		return ME
	}
}
