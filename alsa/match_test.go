package alsa

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zynthbox/a2jmidi/seq"
	"github.com/zynthbox/a2jmidi/seq/seqtest"
)

func TestMatch(t *testing.T) {
	senderCaps := seq.CapRead | seq.CapSubsRead
	port := seq.PortID{Client: 24, Port: 1}

	tests := []struct {
		name        string
		designation string
		caps        seq.PortCaps
		expected    bool
	}{
		{"PortNameOnly", "MIDI-In", senderCaps, true},
		{"PortNameOnlyNormalized", "MIDI.In", senderCaps, true},
		{"PortNameOnlyMismatch", "MIDI-Out", senderCaps, false},
		{"ClientNumberAndPortNumber", "24:1", senderCaps, true},
		{"ClientNumberAndPortName", "24:MIDI-In", senderCaps, true},
		{"ClientNameAndPortName", "Keystation:MIDI-In", senderCaps, true},
		{"ClientNameAndPortNumber", "Keystation:1", senderCaps, true},
		{"WrongClientNumber", "25:1", senderCaps, false},
		{"WrongPortNumber", "24:2", senderCaps, false},
		{"WrongClientName", "Launchkey:MIDI-In", senderCaps, false},
		{"InsufficientCaps", "MIDI-In", seq.CapWrite, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := ParseDesignation(tt.caps, tt.designation)
			require.NoError(t, profile.Err)

			result := Match(senderCaps, port, "Keystation", "MIDI-In", profile)
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestFindPort(t *testing.T) {
	t.Run("EmptyService", func(t *testing.T) {
		fake := seqtest.NewFake()
		profile := ParseDesignation(SenderPortCaps, "anything")
		require.Equal(t, seq.NullPortID, FindPort(fake, profile, Match))
	})

	t.Run("ErrorProfileNeverSearches", func(t *testing.T) {
		fake := seqtest.NewFake()
		fake.AddPort(24, 0, "MIDI-In", SenderPortCaps)

		evaluated := 0
		counting := func(caps seq.PortCaps, port seq.PortID, clientName, portName string, profile PortProfile) bool {
			evaluated++
			return true
		}

		profile := ParseDesignation(SenderPortCaps, "a:b:c")
		require.Equal(t, seq.NullPortID, FindPort(fake, profile, counting))
		require.Zero(t, evaluated)
	})

	t.Run("FirstMatchInEnumerationOrder", func(t *testing.T) {
		require := require.New(t)

		fake := seqtest.NewFake()
		fake.AddPort(20, 0, "Timer", 0)
		fake.AddPort(24, 0, "MIDI-In", SenderPortCaps)
		fake.AddPort(24, 1, "MIDI-In", SenderPortCaps)
		fake.AddPort(28, 0, "MIDI-In", SenderPortCaps)

		profile := ParseDesignation(SenderPortCaps, "MIDI-In")
		require.Equal(seq.PortID{Client: 24, Port: 0}, FindPort(fake, profile, Match))
	})

	t.Run("AtMostOneEvaluationPerPort", func(t *testing.T) {
		require := require.New(t)

		fake := seqtest.NewFake()
		fake.AddPort(20, 0, "Timer", 0)
		fake.AddPort(20, 1, "Announce", 0)
		fake.AddPort(24, 0, "MIDI-In", SenderPortCaps)

		evaluated := 0
		counting := func(caps seq.PortCaps, port seq.PortID, clientName, portName string, profile PortProfile) bool {
			evaluated++
			return false
		}

		profile := ParseDesignation(SenderPortCaps, "MIDI-In")
		require.Equal(seq.NullPortID, FindPort(fake, profile, counting))
		require.Equal(3, evaluated)
	})

	t.Run("SelfMatchByOwnPortName", func(t *testing.T) {
		require := require.New(t)

		fake := seqtest.NewFake()
		require.NoError(fake.Open("a2jmidi"))
		port, err := fake.CreatePort("capture", ReceiverPortCaps)
		require.NoError(err)

		profile := ParseDesignation(ReceiverPortCaps, "capture")
		require.Equal(seq.PortID{Client: seqtest.FakeClientID, Port: port}, FindPort(fake, profile, Match))
	})
}
