package alsa

import (
	"fmt"
	"time"
)

// Retrieve drains all buffered events captured at or before the deadline, in
// capture order, and invokes the handler for each decoded MIDI event.
//
// Transport events that carry no deliverable MIDI data are silently skipped;
// events that fail to decode are logged and skipped. The first handler error
// stops further delivery for this call, but every drained event stays removed
// from the queue; Retrieve returns that error, or nil when every event
// succeeded. Events captured after the deadline remain queued for a later call.
//
// Retrieve fails with ErrBadState when the session is not running, without
// touching the queue. It never blocks on the event source: the call is bounded
// by the number of already-queued events.
func (s *Session) Retrieve(deadline time.Time, handler EventHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur := s.curState(); !cur.IsRunning() {
		return fmt.Errorf("%w: cannot retrieve in %s state", ErrBadState, cur)
	}

	var handlerErr error
	for _, item := range s.events.DrainUpTo(deadline) {
		event, err := s.seq.Decode(item.Value)
		if err != nil {
			s.metrics.incEventDecodeErrCount()
			s.logger.Warn("cannot decode transport event", "error", err)
			continue
		}
		if len(event) == 0 {
			// not a deliverable MIDI event
			s.metrics.incEventSkippedCount()
			continue
		}
		if handlerErr != nil {
			// delivery already stopped; keep consuming drained events
			continue
		}

		s.metrics.incEventDeliveredCount()
		handlerErr = handler(event, item.CapturedAt)
	}

	return handlerErr
}
