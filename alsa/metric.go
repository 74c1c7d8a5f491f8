package alsa

import (
	"sync/atomic"
)

// SessionMetrics contains atomic metrics for a session.
// Metrics can be used as the value of a prometheus CounterFunc or GaugeFunc.
type SessionMetrics struct {
	// MonitorTickCount indicates the number of monitor ticks executed.
	MonitorTickCount atomic.Uint64
	// ConnectAttemptCount indicates the number of connect requests issued by the monitor.
	ConnectAttemptCount atomic.Uint64
	// ConnectErrCount indicates the number of failed connect requests.
	ConnectErrCount atomic.Uint64

	// EventDeliveredCount indicates the number of events delivered to a retrieve callback.
	EventDeliveredCount atomic.Uint64
	// EventSkippedCount indicates the number of non-message transport events skipped.
	EventSkippedCount atomic.Uint64
	// EventDecodeErrCount indicates the number of transport events that failed to decode.
	EventDecodeErrCount atomic.Uint64
}

func (m *SessionMetrics) incMonitorTickCount() {
	m.MonitorTickCount.Add(1)
}

func (m *SessionMetrics) incConnectAttemptCount() {
	m.ConnectAttemptCount.Add(1)
}

func (m *SessionMetrics) incConnectErrCount() {
	m.ConnectErrCount.Add(1)
}

func (m *SessionMetrics) incEventDeliveredCount() {
	m.EventDeliveredCount.Add(1)
}

func (m *SessionMetrics) incEventSkippedCount() {
	m.EventSkippedCount.Add(1)
}

func (m *SessionMetrics) incEventDecodeErrCount() {
	m.EventDecodeErrCount.Add(1)
}
