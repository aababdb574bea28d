package services

import (
	"testing"
	"time"

	"github.com/jayPark21/Pomodoro-timer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, minutes int) (*SessionController, *fakeClock, *fakeSink, *fakeNotifier) {
	t.Helper()
	clock := newFakeClock()
	sink := &fakeSink{}
	notifier := &fakeNotifier{}
	c, err := NewSessionController(minutes, clock, sink, notifier, nil)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c, clock, sink, notifier
}

func countTones(sink *fakeSink, freq float64, wave domain.Waveform) int {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	n := 0
	for _, tone := range sink.played {
		if tone.Frequency == freq && tone.Waveform == wave {
			n++
		}
	}
	return n
}

func TestNewSessionController(t *testing.T) {
	_, err := NewSessionController(7, newFakeClock(), nil, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)

	c, err := NewSessionController(25, newFakeClock(), nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.NewSessionState(25), c.Snapshot())
}

func TestSessionController_StartPlaysStartSequence(t *testing.T) {
	c, clock, sink, _ := newTestController(t, 25)

	c.ToggleRunning()
	clock.Advance(300 * time.Millisecond)

	assert.True(t, c.Snapshot().Running)
	assert.Equal(t, 1, sink.primed)
	assert.Equal(t, []float64{880, 880, 1760}, sink.frequencies())
	assert.Equal(t, 1, clock.liveTickers())
}

func TestSessionController_FullCycle(t *testing.T) {
	c, clock, sink, notifier := newTestController(t, 25)
	require.NoError(t, c.SelectFocusDuration(5))

	var cycles []domain.Cycle
	c.SetOnCycleComplete(func(cycle domain.Cycle) { cycles = append(cycles, cycle) })

	c.ToggleRunning()
	clock.Advance(300 * time.Millisecond)
	clock.Tick(290)

	s := c.Snapshot()
	require.Equal(t, 10, s.Remaining)
	assert.Equal(t, 1, countTones(sink, 880, domain.WaveSine), "beep on reaching 10")

	clock.Tick(10)

	s = c.Snapshot()
	assert.Equal(t, domain.KindBreak, s.Kind)
	assert.Equal(t, domain.BreakSeconds, s.Remaining)
	assert.Equal(t, 1, s.Cycles)
	assert.True(t, s.Running)
	assert.Equal(t, 10, countTones(sink, 880, domain.WaveSine))
	assert.Equal(t, 1, countTones(sink, 440, domain.WaveSine))
	assert.Equal(t, []string{domain.FocusCompleteMessage}, notifier.all())

	require.Len(t, cycles, 1)
	assert.Equal(t, 1, cycles[0].Number)
	assert.Equal(t, 5, cycles[0].FocusMinutes)
	assert.NotEmpty(t, cycles[0].ID)

	clock.Tick(60)

	s = c.Snapshot()
	assert.Equal(t, domain.KindFocus, s.Kind)
	assert.Equal(t, 300, s.Remaining)
	assert.Equal(t, 1, s.Cycles)
	assert.True(t, s.Running)
	assert.Equal(t, 20, countTones(sink, 880, domain.WaveSine))
	assert.Equal(t, 2, countTones(sink, 1760, domain.WaveSquare), "start sequence again after the break")
	assert.Equal(t, []string{domain.FocusCompleteMessage, domain.BreakOverMessage(5)}, notifier.all())
	assert.Len(t, cycles, 1)

	assert.Equal(t, 1, sink.primed, "audio is only primed by user input")
	assert.Equal(t, 1, clock.liveTickers())
}

func TestSessionController_CycleTimestamp(t *testing.T) {
	c, clock, _, _ := newTestController(t, 5)
	start := clock.Now()

	var got domain.Cycle
	c.SetOnCycleComplete(func(cycle domain.Cycle) { got = cycle })

	c.ToggleRunning()
	clock.Tick(300)

	assert.Equal(t, start.Add(300*time.Second), got.CompletedAt)
}

func TestSessionController_PauseCancelsQueuedTones(t *testing.T) {
	c, clock, sink, _ := newTestController(t, 25)

	c.ToggleRunning()
	clock.Advance(100 * time.Millisecond)
	require.Equal(t, []float64{880}, sink.frequencies())

	c.ToggleRunning()
	clock.Advance(2 * time.Second)

	assert.Equal(t, []float64{880}, sink.frequencies())
	assert.Equal(t, 1500, c.Snapshot().Remaining)
	assert.False(t, c.Snapshot().Running)
	assert.Equal(t, 0, clock.liveTickers())
}

func TestSessionController_StaleCallbacksIgnored(t *testing.T) {
	c, clock, sink, _ := newTestController(t, 25)
	clock.leaky = true

	c.ToggleRunning()
	clock.Advance(100 * time.Millisecond)
	c.ToggleRunning()
	clock.Advance(5 * time.Second)

	assert.Equal(t, 1500, c.Snapshot().Remaining, "ticks from a cancelled arm must not count")
	assert.Equal(t, []float64{880}, sink.frequencies(), "tones from a cancelled arm must not play")

	c.ToggleRunning()
	sink.reset()
	clock.Tick(3)
	assert.Equal(t, 1497, c.Snapshot().Remaining, "only the current ticker counts")
}

func TestSessionController_PauseResume(t *testing.T) {
	c, clock, _, _ := newTestController(t, 25)

	c.ToggleRunning()
	clock.Tick(5)
	c.ToggleRunning()
	clock.Tick(5)
	assert.Equal(t, 1495, c.Snapshot().Remaining)

	c.ToggleRunning()
	clock.Tick(1)
	assert.Equal(t, 1494, c.Snapshot().Remaining)
}

func TestSessionController_SingleTicker(t *testing.T) {
	c, clock, _, _ := newTestController(t, 25)

	for i := 0; i < 5; i++ {
		c.ToggleRunning()
	}
	require.True(t, c.Snapshot().Running)
	assert.Equal(t, 1, clock.liveTickers())

	clock.Tick(2)
	assert.Equal(t, 1498, c.Snapshot().Remaining, "one second per tick regardless of toggles")
}

func TestSessionController_SelectWhileRunning(t *testing.T) {
	c, clock, _, _ := newTestController(t, 25)

	c.ToggleRunning()
	clock.Tick(3)
	require.NoError(t, c.SelectFocusDuration(10))

	clock.Tick(3)
	s := c.Snapshot()
	assert.False(t, s.Running)
	assert.Equal(t, 600, s.Remaining)
	assert.Equal(t, 0, clock.liveTickers())
}

func TestSessionController_SelectInvalid(t *testing.T) {
	c, _, _, _ := newTestController(t, 25)
	before := c.Snapshot()

	err := c.SelectFocusDuration(42)

	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
	assert.Equal(t, before, c.Snapshot())
}

func TestSessionController_ResetDuringBreak(t *testing.T) {
	c, clock, _, _ := newTestController(t, 5)

	c.ToggleRunning()
	clock.Tick(310)
	require.Equal(t, domain.KindBreak, c.Snapshot().Kind)

	c.Reset()
	clock.Tick(3)

	s := c.Snapshot()
	assert.Equal(t, domain.KindFocus, s.Kind)
	assert.Equal(t, 300, s.Remaining)
	assert.False(t, s.Running)
	assert.Equal(t, 1, s.Cycles)
	assert.Equal(t, 0, clock.liveTickers())
}

func TestSessionController_CountdownBeepsOff(t *testing.T) {
	c, clock, sink, _ := newTestController(t, 5)
	c.SetCountdownBeeps(false)

	c.ToggleRunning()
	clock.Tick(300)

	assert.Zero(t, countTones(sink, 880, domain.WaveSine))
	assert.Equal(t, 1, countTones(sink, 440, domain.WaveSine), "end tone still plays")
}

func TestSessionController_AudioUnavailable(t *testing.T) {
	c, clock, sink, _ := newTestController(t, 25)
	sink.readyErr = domain.ErrAudioUnavailable

	c.ToggleRunning()
	clock.Tick(2)

	assert.True(t, c.Snapshot().Running)
	assert.Equal(t, 1498, c.Snapshot().Remaining)
}

func TestSessionController_NilSinks(t *testing.T) {
	clock := newFakeClock()
	c, err := NewSessionController(5, clock, nil, nil, nil)
	require.NoError(t, err)
	defer c.Close()

	c.ToggleRunning()
	clock.Tick(300)

	assert.Equal(t, domain.KindBreak, c.Snapshot().Kind)
}

func TestSessionController_OnChange(t *testing.T) {
	c, clock, _, _ := newTestController(t, 25)

	var seen []domain.SessionState
	c.SetOnChange(func(s domain.SessionState) {
		// Reading back from the hook must not deadlock.
		assert.Equal(t, s, c.Snapshot())
		seen = append(seen, s)
	})

	c.ToggleRunning()
	clock.Tick(2)
	c.ToggleRunning()
	clock.Tick(2)
	_ = c.SelectFocusDuration(99)

	require.Len(t, seen, 4)
	assert.True(t, seen[0].Running)
	assert.Equal(t, 1499, seen[1].Remaining)
	assert.Equal(t, 1498, seen[2].Remaining)
	assert.False(t, seen[3].Running)
}

func TestSessionController_ManualTick(t *testing.T) {
	c, _, _, _ := newTestController(t, 5)

	c.Tick()
	assert.Equal(t, 300, c.Snapshot().Remaining, "stopped timer ignores ticks")

	c.ToggleRunning()
	c.Tick()
	assert.Equal(t, 299, c.Snapshot().Remaining)
}

func TestSessionController_Close(t *testing.T) {
	c, clock, _, _ := newTestController(t, 25)

	c.ToggleRunning()
	clock.Tick(1)
	c.Close()
	c.Close()

	assert.Equal(t, 0, clock.liveTickers())

	c.ToggleRunning()
	clock.Tick(3)
	s := c.Snapshot()
	assert.True(t, s.Running, "controller ignores input once closed")
	assert.Equal(t, 1499, s.Remaining)
}
