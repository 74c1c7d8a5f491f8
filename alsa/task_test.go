package alsa

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zynthbox/a2jmidi/logger"
)

func TestTaskManager_StartInterval(t *testing.T) {
	t.Run("TicksAtInterval", func(t *testing.T) {
		require := require.New(t)

		mgr := NewTaskManager(context.Background(), logger.GetLogger())

		var ticks atomic.Int32
		require.NoError(mgr.StartInterval("ticker", func() bool {
			ticks.Add(1)
			return true
		}, 5*time.Millisecond, false))

		require.Eventually(func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)

		mgr.Stop()
		mgr.Wait()
	})

	t.Run("RunNowExecutesSynchronously", func(t *testing.T) {
		require := require.New(t)

		mgr := NewTaskManager(context.Background(), logger.GetLogger())

		var ticks atomic.Int32
		require.NoError(mgr.StartInterval("ticker", func() bool {
			ticks.Add(1)
			return true
		}, time.Minute, true))

		require.Equal(int32(1), ticks.Load())

		mgr.Stop()
		mgr.Wait()
	})

	t.Run("DuplicateNameRejected", func(t *testing.T) {
		require := require.New(t)

		mgr := NewTaskManager(context.Background(), logger.GetLogger())

		require.NoError(mgr.StartInterval("ticker", func() bool { return true }, time.Minute, false))
		require.Error(mgr.StartInterval("ticker", func() bool { return true }, time.Minute, false))

		mgr.Stop()
		mgr.Wait()
	})

	t.Run("InvalidInterval", func(t *testing.T) {
		mgr := NewTaskManager(context.Background(), logger.GetLogger())
		require.Error(t, mgr.StartInterval("ticker", func() bool { return true }, 0, false))
	})
}

func TestTaskManager_StopJoinsTasks(t *testing.T) {
	require := require.New(t)

	mgr := NewTaskManager(context.Background(), logger.GetLogger())

	var ticks atomic.Int32
	require.NoError(mgr.StartInterval("ticker", func() bool {
		ticks.Add(1)
		return true
	}, time.Millisecond, false))

	require.Eventually(func() bool { return ticks.Load() > 0 }, time.Second, time.Millisecond)

	mgr.Stop()
	mgr.Wait()
	require.Zero(mgr.TaskCount())

	// no tick executes after Wait returns
	stopped := ticks.Load()
	time.Sleep(10 * time.Millisecond)
	require.Equal(stopped, ticks.Load())
}

func TestTaskManager_RestartAfterWait(t *testing.T) {
	require := require.New(t)

	mgr := NewTaskManager(context.Background(), logger.GetLogger())

	require.NoError(mgr.Start("loop", func() bool {
		time.Sleep(time.Millisecond)
		return true
	}))

	mgr.Stop()
	mgr.Wait()

	// the manager re-arms after Wait, so tasks can start again
	var ticks atomic.Int32
	require.NoError(mgr.StartInterval("ticker", func() bool {
		ticks.Add(1)
		return true
	}, time.Millisecond, false))

	require.Eventually(func() bool { return ticks.Load() > 0 }, time.Second, time.Millisecond)

	mgr.Stop()
	mgr.Wait()
}

func TestTaskManager_PanicRecovery(t *testing.T) {
	require := require.New(t)

	mgr := NewTaskManager(context.Background(), logger.GetLogger())

	var ticks atomic.Int32
	require.NoError(mgr.StartInterval("panicky", func() bool {
		ticks.Add(1)
		panic("boom")
	}, time.Millisecond, false))

	// a panicking tick terminates its own task but never kills the process
	require.Eventually(func() bool { return mgr.TaskCount() == 0 }, time.Second, time.Millisecond)
	require.Equal(int32(1), ticks.Load())

	mgr.Stop()
	mgr.Wait()
}
