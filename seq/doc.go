// Package seq defines the boundary to the system MIDI sequencer service (the daemon
// that owns all MIDI ports and routes events between them, e.g. the ALSA sequencer).
//
// The core packages of a2jmidi never talk to the sequencer directly; they consume the
// narrow Sequencer interface declared here. This keeps the session logic testable
// against in-memory implementations and leaves the actual transport (cgo bindings,
// remote daemons) to the embedding program.
//
// Port Identity:
// Every port known to the sequencer is addressed by a PortID, a (client, port) number
// pair. The zero client/port numbers are valid addresses; the sentinel NullPortID
// (client and port both NullID) denotes "no port".
//
// Capabilities:
// PortCaps is a bitmask describing what a port can do (readable, writable, accepts
// subscriptions). Capability checks use PortCaps.Fulfills.
//
// Events:
// A RawEvent is an opaque transport event captured by the sequencer's input stream.
// Only the Sequencer that produced a RawEvent can decode it; Decode turns it into a
// midi.Message, or into an empty message when the transport event does not correspond
// to deliverable MIDI data.
package seq
