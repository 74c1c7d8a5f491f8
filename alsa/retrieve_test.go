package alsa

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"

	"github.com/zynthbox/a2jmidi/seq/seqtest"
)

func newRunningSession(t *testing.T, fake *seqtest.Fake) *Session {
	t.Helper()

	session := newTestSession(t, fake)
	require.NoError(t, session.Open("a2jmidi"))
	require.NoError(t, session.CreateReceiverPort("capture", ""))
	require.NoError(t, session.Activate())

	return session
}

func TestSession_Retrieve(t *testing.T) {
	t.Run("BadStateWhenNotRunning", func(t *testing.T) {
		require := require.New(t)

		session := newTestSession(t, seqtest.NewFake())
		err := session.Retrieve(time.Now(), func(event midi.Message, capturedAt time.Time) error {
			t.Error("callback must not be invoked")
			return nil
		})
		require.ErrorIs(err, ErrBadState)
	})

	t.Run("EmptyQueueWithPastDeadline", func(t *testing.T) {
		require := require.New(t)

		session := newRunningSession(t, seqtest.NewFake())

		invoked := 0
		err := session.Retrieve(time.Now().Add(-time.Hour), func(event midi.Message, capturedAt time.Time) error {
			invoked++
			return nil
		})
		require.NoError(err)
		require.Zero(invoked)
	})

	t.Run("DeliversInCaptureOrder", func(t *testing.T) {
		require := require.New(t)

		fake := seqtest.NewFake()
		session := newRunningSession(t, fake)

		base := time.Now()
		fake.Inject(midi.NoteOn(0, 60, 100), base)
		fake.Inject(midi.NoteOn(0, 62, 100), base.Add(time.Millisecond))
		fake.Inject(midi.NoteOff(0, 60), base.Add(2*time.Millisecond))

		var events []midi.Message
		var stamps []time.Time
		err := session.Retrieve(base.Add(time.Second), func(event midi.Message, capturedAt time.Time) error {
			events = append(events, event)
			stamps = append(stamps, capturedAt)
			return nil
		})
		require.NoError(err)
		require.Len(events, 3)
		require.Equal(midi.NoteOn(0, 60, 100), events[0])
		require.Equal(midi.NoteOn(0, 62, 100), events[1])
		require.Equal(midi.NoteOff(0, 60), events[2])
		require.True(stamps[0].Before(stamps[1]))
	})

	t.Run("DeadlineLeavesLaterEventsQueued", func(t *testing.T) {
		require := require.New(t)

		fake := seqtest.NewFake()
		session := newRunningSession(t, fake)

		base := time.Now()
		fake.Inject(midi.NoteOn(0, 60, 100), base)
		fake.Inject(midi.NoteOn(0, 62, 100), base.Add(time.Minute))

		delivered := 0
		require.NoError(session.Retrieve(base.Add(time.Second), func(event midi.Message, capturedAt time.Time) error {
			delivered++
			return nil
		}))
		require.Equal(1, delivered)

		// the event beyond the deadline is delivered by a later call, exactly once
		delivered = 0
		require.NoError(session.Retrieve(base.Add(2*time.Minute), func(event midi.Message, capturedAt time.Time) error {
			delivered++
			return nil
		}))
		require.Equal(1, delivered)
	})

	t.Run("CallbackErrorStopsDeliveryButDrainsQueue", func(t *testing.T) {
		require := require.New(t)

		fake := seqtest.NewFake()
		session := newRunningSession(t, fake)

		base := time.Now()
		fake.Inject(midi.NoteOn(0, 60, 100), base)
		fake.Inject(midi.NoteOn(0, 62, 100), base.Add(time.Millisecond))
		fake.Inject(midi.NoteOn(0, 64, 100), base.Add(2*time.Millisecond))

		errStop := errors.New("stop")
		invoked := 0
		err := session.Retrieve(base.Add(time.Second), func(event midi.Message, capturedAt time.Time) error {
			invoked++
			if invoked == 2 {
				return errStop
			}
			return nil
		})
		require.ErrorIs(err, errStop)
		require.Equal(2, invoked)

		// all three events were removed from the queue; nothing is redelivered
		invoked = 0
		require.NoError(session.Retrieve(base.Add(time.Second), func(event midi.Message, capturedAt time.Time) error {
			invoked++
			return nil
		}))
		require.Zero(invoked)
	})

	t.Run("NonMessageEventsAreSkipped", func(t *testing.T) {
		require := require.New(t)

		fake := seqtest.NewFake()
		session := newRunningSession(t, fake)

		base := time.Now()
		fake.Inject(seqtest.NonMessage, base)
		fake.Inject(midi.NoteOn(0, 60, 100), base.Add(time.Millisecond))
		fake.Inject(seqtest.NonMessage, base.Add(2*time.Millisecond))

		delivered := 0
		require.NoError(session.Retrieve(base.Add(time.Second), func(event midi.Message, capturedAt time.Time) error {
			delivered++
			return nil
		}))
		require.Equal(1, delivered)
		require.Equal(uint64(2), session.Metrics().EventSkippedCount.Load())
	})

	t.Run("UndecodableEventsAreSkipped", func(t *testing.T) {
		require := require.New(t)

		fake := seqtest.NewFake()
		session := newRunningSession(t, fake)

		base := time.Now()
		fake.Inject(struct{}{}, base)
		fake.Inject(midi.NoteOn(0, 60, 100), base.Add(time.Millisecond))

		delivered := 0
		require.NoError(session.Retrieve(base.Add(time.Second), func(event midi.Message, capturedAt time.Time) error {
			delivered++
			return nil
		}))
		require.Equal(1, delivered)
		require.Equal(uint64(1), session.Metrics().EventDecodeErrCount.Load())
	})

	t.Run("EventsIgnoredAfterStop", func(t *testing.T) {
		require := require.New(t)

		fake := seqtest.NewFake()
		session := newRunningSession(t, fake)

		session.Stop()
		fake.Inject(midi.NoteOn(0, 60, 100), time.Now())

		require.NoError(session.Activate())
		delivered := 0
		require.NoError(session.Retrieve(time.Now(), func(event midi.Message, capturedAt time.Time) error {
			delivered++
			return nil
		}))
		require.Zero(delivered)
	})
}
