package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replay feeds outcomes to b: 'f' is a failure, 's' a success.
func replay(b *Breaker, steps string) (opened, closed int) {
	for _, c := range steps {
		var change Change
		switch c {
		case 'f':
			_, change = b.RecordFailure()
		case 's':
			_, change = b.RecordSuccess()
		}
		if change.Opened {
			opened++
		}
		if change.Closed {
			closed++
		}
	}
	return opened, closed
}

func TestBreakerTransitions(t *testing.T) {
	tests := []struct {
		name       string
		failures   int
		successes  int
		steps      string
		wantState  State
		wantOpened int
		wantClosed int
	}{
		{name: "fresh breaker is closed", failures: 3, steps: "", wantState: StateClosed},
		{name: "below threshold stays closed", failures: 3, steps: "ff", wantState: StateClosed},
		{name: "threshold opens once", failures: 3, steps: "fffff", wantState: StateOpen, wantOpened: 1},
		{name: "success resets failure streak", failures: 3, steps: "ffsff", wantState: StateClosed},
		{name: "single success closes by default", failures: 1, steps: "fs", wantState: StateClosed, wantOpened: 1, wantClosed: 1},
		{name: "needs consecutive successes", failures: 1, successes: 2, steps: "fs", wantState: StateOpen, wantOpened: 1},
		{name: "failure resets success streak", failures: 1, successes: 3, steps: "fssfss", wantState: StateOpen, wantOpened: 1},
		{name: "reopens after recovery", failures: 1, steps: "fsf", wantState: StateOpen, wantOpened: 2, wantClosed: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := New("attendance", WithFailureThreshold(tc.failures), WithSuccessThreshold(tc.successes))
			opened, closed := replay(b, tc.steps)
			assert.Equal(t, tc.wantState, b.State())
			assert.Equal(t, tc.wantOpened, opened)
			assert.Equal(t, tc.wantClosed, closed)
		})
	}
}

func TestRecordFailureWhileOpen(t *testing.T) {
	b := New("finance", WithFailureThreshold(1))
	useFallback, change := b.RecordFailure()
	require.True(t, useFallback)
	require.True(t, change.Opened)

	useFallback, change = b.RecordFailure()
	assert.True(t, useFallback)
	assert.Equal(t, Change{}, change)
}

func TestAllowProbesOncePerCooldown(t *testing.T) {
	now := time.Date(2025, 7, 14, 8, 0, 0, 0, time.UTC)
	b := New("health",
		WithFailureThreshold(1),
		WithCooldown(time.Minute),
		WithClock(func() time.Time { return now }),
	)
	require.True(t, b.Allow())

	b.RecordFailure()
	assert.False(t, b.Allow(), "rejects during cooldown")

	now = now.Add(time.Minute)
	assert.True(t, b.Allow(), "probe after cooldown")
	assert.False(t, b.Allow(), "one probe per window")

	b.RecordFailure()
	now = now.Add(30 * time.Second)
	assert.False(t, b.Allow())
	now = now.Add(30 * time.Second)
	assert.True(t, b.Allow())

	usePrimary, change := b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.True(t, change.Closed)
	assert.True(t, b.Allow())
}

func TestReset(t *testing.T) {
	b := New("library", WithFailureThreshold(1))
	b.RecordFailure()
	require.True(t, b.IsOpen())

	b.Reset()
	assert.False(t, b.IsOpen())
	assert.Equal(t, "library", b.Name())
	assert.Equal(t, "closed", b.State().String())
	assert.Equal(t, "open", StateOpen.String())
}
