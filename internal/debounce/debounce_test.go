package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/nfx-chrome/internal/uithread"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	var calls atomic.Int32
	d := New(30*time.Millisecond, nil, func() { calls.Add(1) })

	for i := 0; i < 20; i++ {
		d.Trigger()
	}
	assert.True(t, d.Pending())

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	// no second call sneaks in afterwards
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int64(1), d.Fired())
	assert.False(t, d.Pending())
}

func TestDebouncerRestartsTimer(t *testing.T) {
	var firedAt atomic.Int64
	start := time.Now()
	d := New(60*time.Millisecond, nil, func() { firedAt.Store(int64(time.Since(start))) })

	d.Trigger()
	time.Sleep(40 * time.Millisecond)
	d.Trigger()

	require.Eventually(t, func() bool { return firedAt.Load() != 0 }, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, time.Duration(firedAt.Load()), 100*time.Millisecond)
	assert.Equal(t, int64(1), d.Fired())
}

func TestDebouncerStop(t *testing.T) {
	var calls atomic.Int32
	d := New(20*time.Millisecond, nil, func() { calls.Add(1) })

	d.Trigger()
	d.Stop()
	d.Trigger()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
	assert.False(t, d.Pending())
}

func TestDebouncerFlush(t *testing.T) {
	var calls atomic.Int32
	d := New(time.Hour, uithread.Immediate{}, func() { calls.Add(1) })

	assert.False(t, d.Flush())

	d.Trigger()
	d.Trigger()
	assert.True(t, d.Flush())
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, d.Pending())
	assert.False(t, d.Flush())
}

func TestDebouncerPostsToLoop(t *testing.T) {
	loop := uithread.NewLoop()
	defer loop.Stop()

	done := make(chan struct{})
	d := New(10*time.Millisecond, loop, func() { close(done) })
	d.Trigger()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced call never reached the loop")
	}
}

func TestDebouncerDefaultDelay(t *testing.T) {
	d := New(0, nil, nil)
	assert.Equal(t, DefaultDelay, d.Delay())
}

func TestDebouncerSetDelay(t *testing.T) {
	d := New(time.Hour, nil, nil)
	d.SetDelay(20 * time.Millisecond)
	assert.Equal(t, 20*time.Millisecond, d.Delay())

	d.Trigger()
	assert.Eventually(t, func() bool { return d.Fired() == 1 }, time.Second, 5*time.Millisecond)

	d.SetDelay(-1)
	assert.Equal(t, DefaultDelay, d.Delay())
}
