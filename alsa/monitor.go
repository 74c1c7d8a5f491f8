package alsa

import (
	"github.com/zynthbox/a2jmidi/seq"
)

// monitorTick is the body of the connection-monitor interval task. It invokes
// the registered monitor handler with the current connection target.
//
// The tick runs without the session lock: the handler and target are only
// mutated by foreground operations in states where the monitor is not running,
// and the task manager joins the monitor before those states are reached.
func (s *Session) monitorTick() bool {
	s.metrics.incMonitorTickCount()

	handler := s.monitorHandler
	if handler != nil {
		handler(s.connectTo)
	}

	return true
}

// reconcileConnections is the default monitor handler installed by
// CreateReceiverPort. It implements idempotent, additive-only reconciliation:
//
//  1. An empty target, or a missing receiver port, means there is nothing to do.
//  2. When the receiver port already has inbound connections, reconciliation is
//     assumed done. Existing connections are never torn down or replaced.
//  3. Otherwise the target designation is resolved against all ports known to
//     the service; when it resolves, one connect request is issued. An
//     unresolvable target is logged and retried on the next tick.
func (s *Session) reconcileConnections(connectTo string) {
	if connectTo == "" {
		// no connection requested
		return
	}

	port := int(s.port.Load())
	if port == seq.NullID {
		// no receiver port yet
		return
	}

	if len(s.seq.InboundConnections(port)) > 0 {
		// something is connected; assume it is what we ought to be connected to
		return
	}

	profile := ParseDesignation(SenderPortCaps, connectTo)
	sender := FindPort(s.seq, profile, Match)
	if sender.IsNull() {
		s.logger.Info("no port matches connection target", "connect_to", connectTo)
		return
	}

	receiver := seq.PortID{Client: s.seq.ClientID(), Port: port}
	s.metrics.incConnectAttemptCount()
	if err := s.seq.Connect(sender, receiver); err != nil {
		s.metrics.incConnectErrCount()
		s.logger.Warn("connect failed, retrying on next tick",
			"sender", sender.String(), "receiver", receiver.String(), "error", err)

		return
	}

	s.logger.Info("connected receiver port", "sender", sender.String(), "receiver", receiver.String())
}
