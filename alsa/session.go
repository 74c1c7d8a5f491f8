package alsa

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"gitlab.com/gomidi/midi/v2"

	"github.com/zynthbox/a2jmidi/internal/queue"
	"github.com/zynthbox/a2jmidi/logger"
	"github.com/zynthbox/a2jmidi/seq"
)

// ReceiverPortCaps are the capabilities the session's receiver port is created
// with: external applications write to it.
const ReceiverPortCaps = seq.CapWrite | seq.CapSubsWrite

// SenderPortCaps are the capabilities a counterpart port must fulfill to be a
// connection candidate: the session reads from it.
const SenderPortCaps = seq.CapRead | seq.CapSubsRead

// MonitorHandler is invoked on every monitor tick with the session's current
// connection target. At most one handler is registered per session; it may only
// be replaced while the session is not running.
//
// The handler runs on the monitor goroutine without the session lock. It must
// only touch sequencer-service state that is safe to access concurrently with
// foreground calls.
type MonitorHandler func(connectTo string)

// EventHandler is invoked by Retrieve for every decoded MIDI event, together
// with the event's capture time. Returning a non-nil error stops delivery for
// the remainder of the Retrieve call.
type EventHandler func(event midi.Message, capturedAt time.Time) error

// Session is a client session with the sequencer service, owning the lifecycle
// closed -> idle -> running and the single receiver port.
//
// All exported methods serialize on one session lock held for their full
// duration. The connection monitor is the only logic that executes concurrently
// with foreground calls; Stop and Close join it before returning.
type Session struct {
	mu  sync.Mutex
	cfg *Config

	logger logger.Logger
	seq    seq.Sequencer

	state atomic.Uint32
	port  atomic.Int32 // receiver port number, seq.NullID when absent

	// connectTo and monitorHandler are written only from foreground operations
	// in states where the monitor is not running.
	connectTo      string
	monitorHandler MonitorHandler

	taskMgr *TaskManager
	events  *queue.EventQueue[seq.RawEvent]

	metrics SessionMetrics
}

// NewSession creates a session over the given sequencer service. The session
// starts in the closed state; nothing touches the service until Open.
func NewSession(ctx context.Context, sq seq.Sequencer, cfg *Config) (*Session, error) {
	if sq == nil {
		return nil, fmt.Errorf("sequencer is nil")
	}
	if cfg == nil {
		var err error
		cfg, err = NewConfig()
		if err != nil {
			return nil, err
		}
	}

	s := &Session{
		cfg:     cfg,
		logger:  cfg.logger,
		seq:     sq,
		taskMgr: NewTaskManager(ctx, cfg.logger),
		events:  queue.NewEventQueue[seq.RawEvent](),
	}
	s.port.Store(seq.NullID)

	return s, nil
}

// State returns the current session state. It blocks only as long as a
// concurrent transition holds the session lock.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.curState()
}

// Open establishes the client session with the sequencer service under the
// requested name and transitions the session from closed to idle.
//
// It fails with ErrBadState when the session is not closed, and with
// ErrSequencer when the service cannot be reached or initialized; in both cases
// the state is unchanged.
func (s *Session) Open(clientName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur := s.curState(); !cur.IsClosed() {
		return fmt.Errorf("%w: cannot open in %s state", ErrBadState, cur)
	}

	if err := s.seq.Open(clientName); err != nil {
		return fmt.Errorf("%w: open client %q: %v", ErrSequencer, clientName, err)
	}

	s.port.Store(seq.NullID)
	s.setState(IdleState)
	s.logger.Debug("session opened", "client_id", s.seq.ClientID(), "client_name", clientName)

	return nil
}

// CreateReceiverPort creates the session's receiver port. External applications
// can write to this port.
//
// connectTo is the designation of a sender port this session shall try to
// connect to; the connection is established (and re-established) by the
// connection monitor while the session is running. An empty string means no
// connection is attempted. The port is created even when the designation never
// resolves.
//
// The call is valid only in the idle state and only once per session: a second
// call fails with ErrPortExists.
func (s *Session) CreateReceiverPort(portName string, connectTo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur := s.curState(); !cur.IsIdle() {
		return fmt.Errorf("%w: cannot create receiver port in %s state", ErrBadState, cur)
	}
	if s.port.Load() != seq.NullID {
		return ErrPortExists
	}

	port, err := s.seq.CreatePort(portName, ReceiverPortCaps)
	if err != nil {
		return fmt.Errorf("%w: create port %q: %v", ErrSequencer, portName, err)
	}

	s.port.Store(int32(port))
	s.connectTo = connectTo
	s.monitorHandler = s.reconcileConnections
	s.logger.Debug("receiver port created", "port", port, "port_name", portName, "connect_to", connectTo)

	return nil
}

// RegisterMonitorHandler replaces the handler invoked on every monitor tick.
// Registration is only allowed while the session is not running.
func (s *Session) RegisterMonitorHandler(handler MonitorHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur := s.curState(); cur.IsRunning() {
		return fmt.Errorf("%w: cannot register monitor handler in %s state", ErrBadState, cur)
	}
	s.monitorHandler = handler

	return nil
}

// Activate transitions the session from idle to running: the connection monitor
// starts ticking and the event queue begins accepting buffered events.
//
// Before returning, Activate pauses for one monitor interval so the first
// monitor tick is guaranteed to have run (unless disabled via
// WithSettleOnActivate).
func (s *Session) Activate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur := s.curState(); !cur.IsIdle() {
		return fmt.Errorf("%w: cannot activate in %s state", ErrBadState, cur)
	}

	if err := s.taskMgr.StartInterval("connection-monitor", s.monitorTick, s.cfg.monitorInterval, true); err != nil {
		return fmt.Errorf("start connection monitor: %w", err)
	}

	s.events.Start()
	if err := s.seq.StartInput(s.events.Push); err != nil {
		s.events.Stop()
		s.taskMgr.Stop()
		s.taskMgr.Wait()

		return fmt.Errorf("%w: start input stream: %v", ErrSequencer, err)
	}

	s.setState(RunningState)

	if s.cfg.settleOnActivate {
		time.Sleep(s.cfg.monitorInterval)
	}

	return nil
}

// Stop transitions the session from running back to idle. It synchronously
// halts the connection monitor and the event source: once Stop returns, no
// further monitor tick executes and no further event is buffered.
//
// Stop is an idempotent no-op when the session is already idle or closed.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.curState().IsRunning() {
		return
	}

	s.stopLocked()
	s.setState(IdleState)
}

// Close releases the session: it forces Stop semantics first, then closes the
// client session with the sequencer service and transitions to closed.
//
// Close never fails; cleanup failures are logged. Repeated calls are no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.curState()
	if cur.IsClosed() {
		return
	}

	if cur.IsRunning() {
		s.stopLocked()
	}

	if err := s.seq.Close(); err != nil {
		s.logger.Warn("close sequencer client", "error", err)
	}

	s.events.Reset()
	s.port.Store(seq.NullID)
	s.connectTo = ""
	s.monitorHandler = nil
	s.setState(ClosedState)
	s.logger.Debug("session closed")
}

// ReceiverConnections lists the ports currently connected to the receiver port.
// It returns an empty result when the session is closed or no receiver port has
// been created.
func (s *Session) ReceiverConnections() []seq.PortID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.curState().IsClosed() {
		return nil
	}
	port := int(s.port.Load())
	if port == seq.NullID {
		return nil
	}

	return s.seq.InboundConnections(port)
}

// ReceiverPort returns the address of the session's receiver port, or
// seq.NullPortID when the session is closed or no receiver port exists.
func (s *Session) ReceiverPort() seq.PortID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.curState().IsClosed() {
		return seq.NullPortID
	}
	port := int(s.port.Load())
	if port == seq.NullID {
		return seq.NullPortID
	}

	return seq.PortID{Client: s.seq.ClientID(), Port: port}
}

// ClientID returns the client number the sequencer service assigned to this
// session, or seq.NullID when the session is closed.
func (s *Session) ClientID() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.curState().IsClosed() {
		return seq.NullID
	}

	return s.seq.ClientID()
}

// ClientName returns the name the sequencer service holds for this session's
// client, or an empty string when the session is closed.
func (s *Session) ClientName() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.curState().IsClosed() {
		return ""
	}

	name, err := s.seq.ClientName()
	if err != nil {
		s.logger.Warn("query client name", "error", err)
		return ""
	}

	return name
}

// PortName returns the name the sequencer service holds for the receiver port,
// or an empty string when the session is closed or no receiver port exists.
func (s *Session) PortName() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.curState().IsClosed() {
		return ""
	}
	port := int(s.port.Load())
	if port == seq.NullID {
		return ""
	}

	name, err := s.seq.PortName(port)
	if err != nil {
		s.logger.Warn("query port name", "error", err)
		return ""
	}

	return name
}

// Metrics returns the session metric counters.
func (s *Session) Metrics() *SessionMetrics {
	return &s.metrics
}

func (s *Session) curState() State {
	return State(s.state.Load())
}

func (s *Session) setState(newState State) {
	s.state.Store(uint32(newState))
}

// stopLocked halts the monitor and the event source. The monitor goroutine is
// joined before returning, so no tick executes afterwards.
func (s *Session) stopLocked() {
	s.taskMgr.Stop()
	s.taskMgr.Wait()
	s.seq.StopInput()
	s.events.Stop()
}
