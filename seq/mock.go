package seq

import (
	"github.com/stretchr/testify/mock"
	"gitlab.com/gomidi/midi/v2"
)

// MockSequencer is a testify mock of the Sequencer interface for strict
// expectation tests.
type MockSequencer struct {
	mock.Mock
}

var _ Sequencer = (*MockSequencer)(nil)

func NewMockSequencer() *MockSequencer {
	return &MockSequencer{}
}

func (m *MockSequencer) Open(clientName string) error {
	args := m.Called(clientName)
	return args.Error(0)
}

func (m *MockSequencer) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSequencer) ClientID() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockSequencer) ClientName() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockSequencer) CreatePort(name string, caps PortCaps) (int, error) {
	args := m.Called(name, caps)
	return args.Int(0), args.Error(1)
}

func (m *MockSequencer) PortName(port int) (string, error) {
	args := m.Called(port)
	return args.String(0), args.Error(1)
}

func (m *MockSequencer) Connect(sender PortID, receiver PortID) error {
	args := m.Called(sender, receiver)
	return args.Error(0)
}

func (m *MockSequencer) Clients() []ClientInfo {
	args := m.Called()
	clients, _ := args.Get(0).([]ClientInfo)
	return clients
}

func (m *MockSequencer) Ports(client int) []PortInfo {
	args := m.Called(client)
	ports, _ := args.Get(0).([]PortInfo)
	return ports
}

func (m *MockSequencer) InboundConnections(port int) []PortID {
	args := m.Called(port)
	conns, _ := args.Get(0).([]PortID)
	return conns
}

func (m *MockSequencer) Decode(ev RawEvent) (midi.Message, error) {
	args := m.Called(ev)
	msg, _ := args.Get(0).(midi.Message)
	return msg, args.Error(1)
}

func (m *MockSequencer) StartInput(sink EventSink) error {
	args := m.Called(sink)
	return args.Error(0)
}

func (m *MockSequencer) StopInput() {
	m.Called()
}
