package seq

import (
	"fmt"
	"time"

	"gitlab.com/gomidi/midi/v2"
)

// NullID marks a client or port number that does not address anything.
const NullID = -1

// PortCaps is a bitmask describing the capabilities of a sequencer port.
type PortCaps uint32

const (
	// CapRead indicates the port can be read from.
	CapRead PortCaps = 1 << iota
	// CapWrite indicates the port can be written to.
	CapWrite
	// CapSubsRead indicates the port accepts read subscriptions.
	CapSubsRead
	// CapSubsWrite indicates the port accepts write subscriptions.
	CapSubsWrite
)

// Fulfills reports whether the capability set contains every capability in wanted.
func (c PortCaps) Fulfills(wanted PortCaps) bool {
	return c&wanted == wanted
}

// PortID identifies a port on the sequencer service by its (client, port) number pair.
// It is a value type compared by structural equality.
type PortID struct {
	Client int
	Port   int
}

// NullPortID is the sentinel PortID denoting "no port".
var NullPortID = PortID{Client: NullID, Port: NullID}

// IsNull reports whether the PortID is the sentinel "no port" value.
func (p PortID) IsNull() bool {
	return p == NullPortID
}

// String returns the "client:port" representation of the PortID.
func (p PortID) String() string {
	return fmt.Sprintf("%d:%d", p.Client, p.Port)
}

// ClientInfo describes one client known to the sequencer service.
type ClientInfo struct {
	ID   int
	Name string
}

// PortInfo describes one port of a sequencer client.
type PortInfo struct {
	Port int
	Name string
	Caps PortCaps
}

// RawEvent is an opaque transport event produced by a Sequencer input stream.
// Only the Sequencer that produced it knows how to decode it.
type RawEvent any

// EventSink receives raw transport events captured by the sequencer input stream,
// together with their capture time.
//
// The sink is invoked from the sequencer's own delivery context and must not block.
type EventSink func(ev RawEvent, capturedAt time.Time)

// Sequencer is the narrow interface to the external sequencer service.
//
// All query methods reflect the live service state at call time. Implementations
// must treat every method as a quick, non-blocking call; the session core invokes
// them while holding its state lock.
type Sequencer interface {
	// Open establishes a client session with the sequencer service under the
	// requested name. The service may alter the name to make it unique.
	Open(clientName string) error

	// Close releases the client session. Closing an unopened session is an error.
	Close() error

	// ClientID returns the client number assigned by the service, or NullID when
	// the session is not open.
	ClientID() int

	// ClientName returns the name the service holds for this client.
	ClientName() (string, error)

	// CreatePort creates a new port on this client with the given capabilities and
	// returns its port number.
	CreatePort(name string, caps PortCaps) (int, error)

	// PortName returns the name the service holds for the given port of this client.
	PortName(port int) (string, error)

	// Connect subscribes the receiver port to the sender port, so events emitted by
	// the sender are delivered to the receiver.
	Connect(sender PortID, receiver PortID) error

	// Clients enumerates all clients currently known to the service, in ascending
	// client-number order.
	Clients() []ClientInfo

	// Ports enumerates all ports of the given client, in ascending port-number order.
	Ports(client int) []PortInfo

	// InboundConnections returns the ports currently feeding the given port of this
	// client. The result is empty when nothing is connected.
	InboundConnections(port int) []PortID

	// Decode turns a raw transport event into a MIDI message. An empty message with
	// a nil error means the transport event carries no deliverable MIDI data (that
	// is not an error). A non-nil error indicates the event could not be decoded.
	Decode(ev RawEvent) (midi.Message, error)

	// StartInput starts the input stream. Every event arriving at this client's
	// ports is handed to the sink from the service's delivery context.
	StartInput(sink EventSink) error

	// StopInput stops the input stream. No sink invocation happens after it returns.
	StopInput()
}
