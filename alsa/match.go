package alsa

import (
	"github.com/zynthbox/a2jmidi/seq"
)

// MatchFunc decides whether a discovered port satisfies a search profile.
// Implementations must be pure functions of their arguments.
type MatchFunc func(caps seq.PortCaps, port seq.PortID, clientName, portName string, profile PortProfile) bool

// Match is the default MatchFunc.
//
// A candidate is rejected outright when its capabilities do not fulfill the
// profile's capability mask. For a "client:port" designation the candidate
// matches when either side resolves numerically or by normalized name:
//
//   - the candidate's client number equals FirstInt, and its port number equals
//     SecondInt or its normalized port name equals SecondName, or
//   - the candidate's normalized client name equals FirstName, and its
//     normalized port name equals SecondName or its port number equals SecondInt.
//
// For a single-token designation the candidate matches on its normalized port
// name alone.
func Match(caps seq.PortCaps, port seq.PortID, clientName, portName string, profile PortProfile) bool {
	if !caps.Fulfills(profile.Caps) {
		return false
	}

	normalPortName := normalizeIdentifier(portName)

	if !profile.HasColon {
		return profile.FirstName == normalPortName
	}

	if profile.FirstInt == port.Client {
		if profile.SecondInt == port.Port {
			return true
		}
		if profile.SecondName == normalPortName {
			return true
		}
	}

	if profile.FirstName == normalizeIdentifier(clientName) {
		if profile.SecondName == normalPortName {
			return true
		}
		if profile.SecondInt == port.Port {
			return true
		}
	}

	return false
}

// FindPort searches through all ports known to the sequencer service and
// returns the first one, in enumeration order, for which match reports true.
//
// Profiles flagged with a parse error never search; FindPort returns
// seq.NullPortID immediately. It also returns seq.NullPortID when the
// enumeration is exhausted without a match.
func FindPort(sq seq.Sequencer, profile PortProfile, match MatchFunc) seq.PortID {
	if profile.Err != nil {
		return seq.NullPortID
	}

	for _, client := range sq.Clients() {
		for _, port := range sq.Ports(client.ID) {
			id := seq.PortID{Client: client.ID, Port: port.Port}
			if match(port.Caps, id, client.Name, port.Name, profile) {
				return id
			}
		}
	}

	return seq.NullPortID
}
