// Package seqtest provides a deterministic in-memory Sequencer implementation
// for tests and example programs.
package seqtest

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"gitlab.com/gomidi/midi/v2"

	"github.com/zynthbox/a2jmidi/seq"
)

// FakeClientID is the client number the fake assigns to its own session.
const FakeClientID = 128

type nonMessage struct{}

// NonMessage is a raw event that decodes to "not a deliverable MIDI event".
var NonMessage seq.RawEvent = nonMessage{}

// Connection records one connect request issued to the fake.
type Connection struct {
	Sender   seq.PortID
	Receiver seq.PortID
}

type fakePort struct {
	port int
	name string
	caps seq.PortCaps
}

type fakeClient struct {
	id    int
	name  string
	ports []fakePort // sorted by port number
}

// Fake is an in-memory sequencer service. Clients and ports can be added and
// removed at any time to simulate live service state; connect requests are
// journaled and reflected in InboundConnections.
//
// Injected raw events are either midi.Message values (decoded as themselves),
// the NonMessage sentinel, or anything else (decode error).
type Fake struct {
	mu         sync.Mutex
	opened     bool
	clientName string
	nextPort   int
	clients    []*fakeClient // sorted by client id
	journal    []Connection
	sink       seq.EventSink

	conns *xsync.MapOf[int, []seq.PortID] // receiver port -> senders

	openErr       error
	createPortErr error
	connectErr    error
}

var _ seq.Sequencer = (*Fake)(nil)

// NewFake creates an empty fake sequencer service.
func NewFake() *Fake {
	return &Fake{conns: xsync.NewMapOf[int, []seq.PortID]()}
}

// AddClient registers an external client with the service. Adding an already
// known client renames it.
func (f *Fake) AddClient(id int, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if c := f.findClientLocked(id); c != nil {
		c.name = name
		return
	}
	f.addClientLocked(id, name)
}

// AddPort registers a port on the given client, creating the client on demand.
func (f *Fake) AddPort(client int, port int, name string, caps seq.PortCaps) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := f.findClientLocked(client)
	if c == nil {
		c = f.addClientLocked(client, fmt.Sprintf("Client-%d", client))
	}
	c.ports = append(c.ports, fakePort{port: port, name: name, caps: caps})
	sort.Slice(c.ports, func(i, j int) bool { return c.ports[i].port < c.ports[j].port })
}

// RemovePort removes a port from the given client.
func (f *Fake) RemovePort(client int, port int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := f.findClientLocked(client)
	if c == nil {
		return
	}
	ports := c.ports[:0]
	for _, p := range c.ports {
		if p.port != port {
			ports = append(ports, p)
		}
	}
	c.ports = ports
}

// Connections returns a copy of the connect-request journal.
func (f *Fake) Connections() []Connection {
	f.mu.Lock()
	defer f.mu.Unlock()

	journal := make([]Connection, len(f.journal))
	copy(journal, f.journal)

	return journal
}

// Inject delivers a raw event to the input sink, if the input stream is started.
func (f *Fake) Inject(ev seq.RawEvent, capturedAt time.Time) {
	f.mu.Lock()
	sink := f.sink
	f.mu.Unlock()

	if sink != nil {
		sink(ev, capturedAt)
	}
}

// FailOpen makes the next Open calls fail with err. A nil err restores success.
func (f *Fake) FailOpen(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.openErr = err
}

// FailCreatePort makes the next CreatePort calls fail with err.
func (f *Fake) FailCreatePort(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createPortErr = err
}

// FailConnect makes the next Connect calls fail with err.
func (f *Fake) FailConnect(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connectErr = err
}

// Open implements seq.Sequencer.
func (f *Fake) Open(clientName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.openErr != nil {
		return f.openErr
	}
	if f.opened {
		return fmt.Errorf("client session already open")
	}

	f.opened = true
	f.clientName = clientName
	f.nextPort = 0
	f.addClientLocked(FakeClientID, clientName)

	return nil
}

// Close implements seq.Sequencer.
func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.opened {
		return fmt.Errorf("client session not open")
	}

	f.opened = false
	f.removeClientLocked(FakeClientID)
	f.sink = nil
	f.conns.Clear()

	return nil
}

// ClientID implements seq.Sequencer.
func (f *Fake) ClientID() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.opened {
		return seq.NullID
	}

	return FakeClientID
}

// ClientName implements seq.Sequencer.
func (f *Fake) ClientName() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.opened {
		return "", fmt.Errorf("client session not open")
	}

	return f.clientName, nil
}

// CreatePort implements seq.Sequencer.
func (f *Fake) CreatePort(name string, caps seq.PortCaps) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createPortErr != nil {
		return seq.NullID, f.createPortErr
	}
	if !f.opened {
		return seq.NullID, fmt.Errorf("client session not open")
	}

	c := f.findClientLocked(FakeClientID)
	port := f.nextPort
	f.nextPort++
	c.ports = append(c.ports, fakePort{port: port, name: name, caps: caps})

	return port, nil
}

// PortName implements seq.Sequencer.
func (f *Fake) PortName(port int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := f.findClientLocked(FakeClientID)
	if c != nil {
		for _, p := range c.ports {
			if p.port == port {
				return p.name, nil
			}
		}
	}

	return "", fmt.Errorf("no such port: %d", port)
}

// Connect implements seq.Sequencer.
func (f *Fake) Connect(sender seq.PortID, receiver seq.PortID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.connectErr != nil {
		return f.connectErr
	}
	if !f.portExistsLocked(sender) {
		return fmt.Errorf("no such port: %s", sender)
	}

	f.journal = append(f.journal, Connection{Sender: sender, Receiver: receiver})
	f.conns.Compute(receiver.Port, func(senders []seq.PortID, _ bool) ([]seq.PortID, bool) {
		return append(senders, sender), false
	})

	return nil
}

// Clients implements seq.Sequencer.
func (f *Fake) Clients() []seq.ClientInfo {
	f.mu.Lock()
	defer f.mu.Unlock()

	clients := make([]seq.ClientInfo, 0, len(f.clients))
	for _, c := range f.clients {
		clients = append(clients, seq.ClientInfo{ID: c.id, Name: c.name})
	}

	return clients
}

// Ports implements seq.Sequencer.
func (f *Fake) Ports(client int) []seq.PortInfo {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := f.findClientLocked(client)
	if c == nil {
		return nil
	}

	ports := make([]seq.PortInfo, 0, len(c.ports))
	for _, p := range c.ports {
		ports = append(ports, seq.PortInfo{Port: p.port, Name: p.name, Caps: p.caps})
	}

	return ports
}

// InboundConnections implements seq.Sequencer.
func (f *Fake) InboundConnections(port int) []seq.PortID {
	senders, _ := f.conns.Load(port)
	return senders
}

// Decode implements seq.Sequencer.
func (f *Fake) Decode(ev seq.RawEvent) (midi.Message, error) {
	switch v := ev.(type) {
	case midi.Message:
		return v, nil
	case nonMessage:
		return nil, nil
	default:
		return nil, fmt.Errorf("cannot decode event of type %T", ev)
	}
}

// StartInput implements seq.Sequencer.
func (f *Fake) StartInput(sink seq.EventSink) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.opened {
		return fmt.Errorf("client session not open")
	}
	f.sink = sink

	return nil
}

// StopInput implements seq.Sequencer.
func (f *Fake) StopInput() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sink = nil
}

func (f *Fake) addClientLocked(id int, name string) *fakeClient {
	c := &fakeClient{id: id, name: name}
	f.clients = append(f.clients, c)
	sort.Slice(f.clients, func(i, j int) bool { return f.clients[i].id < f.clients[j].id })

	return c
}

func (f *Fake) removeClientLocked(id int) {
	clients := f.clients[:0]
	for _, c := range f.clients {
		if c.id != id {
			clients = append(clients, c)
		}
	}
	f.clients = clients
}

func (f *Fake) findClientLocked(id int) *fakeClient {
	for _, c := range f.clients {
		if c.id == id {
			return c
		}
	}

	return nil
}

func (f *Fake) portExistsLocked(id seq.PortID) bool {
	c := f.findClientLocked(id.Client)
	if c == nil {
		return false
	}
	for _, p := range c.ports {
		if p.port == id.Port {
			return true
		}
	}

	return false
}
