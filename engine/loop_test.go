// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gviegas/backdrop/scene"
)

type fakeAnim struct {
	surf   *scene.Viewport
	ticks  int
	total  time.Duration
	closed int
}

func (a *fakeAnim) Tick(dt time.Duration) {
	a.ticks++
	a.total += dt
}

func (a *fakeAnim) Surface() scene.Surface {
	if a.surf == nil {
		return nil
	}
	return a.surf
}

func (a *fakeAnim) Close() { a.closed++ }

func TestConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, 60, cfg.FrameRate)
	require.Equal(t, 100*time.Millisecond, cfg.MaxDelta)
	require.Equal(t, time.Second/60, cfg.FrameInterval())

	cfg.FrameRate = 0
	require.Equal(t, time.Second, cfg.FrameInterval())
	cfg.FrameRate = 1000
	require.Equal(t, time.Second/MaxFrameRate, cfg.FrameInterval())
}

func TestStep(t *testing.T) {
	l := New(nil)
	a := &fakeAnim{surf: &scene.Viewport{Width: 10, Height: 10}}
	b := &fakeAnim{surf: &scene.Viewport{Width: 10, Height: 10}}
	l.Add(a)
	idb := l.Add(b)
	require.Equal(t, 2, l.Len())

	require.Equal(t, 2, l.Step(10*time.Millisecond))
	require.Equal(t, 1, a.ticks)
	require.Equal(t, 1, b.ticks)

	// Hidden surfaces stop their animators for good.
	b.surf.Hidden = true
	require.Equal(t, 1, l.Step(10*time.Millisecond))
	require.Equal(t, 1, b.ticks)
	require.Equal(t, 1, b.closed)
	b.surf.Hidden = false
	l.Step(10 * time.Millisecond)
	require.Equal(t, 1, b.ticks)
	require.Equal(t, 1, b.closed)
	require.Equal(t, 3, a.ticks)
	require.Zero(t, a.closed)

	// Removing an unknown animation is a no-op.
	l.Remove(idb)
	require.Equal(t, 1, l.Len())

	c := &fakeAnim{}
	l.Add(c)
	require.Equal(t, 1, l.Step(0))
	require.Equal(t, 1, c.closed)

	// Remove does not close.
	d := &fakeAnim{surf: &scene.Viewport{Width: 1, Height: 1}}
	l.Remove(l.Add(d))
	require.Zero(t, d.closed)
}

// closingAnim stops its timer on Close.
type closingAnim struct {
	fakeAnim
	timer scene.Timer
}

func (a *closingAnim) Close() {
	a.fakeAnim.Close()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

func TestStepCloseStopsTimer(t *testing.T) {
	l := New(nil)
	var n int
	a := &closingAnim{fakeAnim: fakeAnim{surf: &scene.Viewport{Width: 1, Height: 1}}}
	a.timer = l.Every(10*time.Millisecond, func() { n++ })
	l.Add(a)
	l.Step(10 * time.Millisecond)
	require.Equal(t, 1, n)

	a.surf.Hidden = true
	require.Zero(t, l.Step(10*time.Millisecond))
	require.Equal(t, 1, a.closed)
	require.Zero(t, l.Timers())
	for range 10 {
		l.Step(10 * time.Millisecond)
	}
	require.Equal(t, 2, n)
}

func TestStepClamp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDelta = 50 * time.Millisecond
	l := New(&cfg)
	a := &fakeAnim{surf: &scene.Viewport{Width: 1, Height: 1}}
	l.Add(a)
	l.Step(time.Hour)
	l.Step(-time.Second)
	require.Equal(t, 50*time.Millisecond, a.total)
	require.Equal(t, 50*time.Millisecond, l.Clock())
}

func TestEvery(t *testing.T) {
	l := New(nil)
	var n int
	tm := l.Every(time.Second, func() { n++ })
	require.Equal(t, 1, l.Timers())

	for range 59 {
		l.Step(time.Second / 60)
	}
	require.Equal(t, 0, n, "timer fired before its interval elapsed")
	l.Step(time.Second / 60)
	l.Step(time.Second / 60)
	require.Equal(t, 1, n)

	// A long stall fires once, not once per missed interval.
	cfg := DefaultConfig()
	cfg.MaxDelta = time.Minute
	l.cfg = cfg
	l.Step(10 * time.Second)
	require.Equal(t, 2, n)

	tm.Stop()
	tm.Stop()
	require.Equal(t, 0, l.Timers())
	l.Step(5 * time.Second)
	require.Equal(t, 2, n)
}

func TestEveryStopInCallback(t *testing.T) {
	l := New(nil)
	var (
		n  int
		tm scene.Timer
	)
	tm = l.Every(10*time.Millisecond, func() {
		n++
		tm.Stop()
	})
	other := 0
	l.Every(10*time.Millisecond, func() { other++ })
	l.Step(10 * time.Millisecond)
	l.Step(10 * time.Millisecond)
	require.Equal(t, 1, n)
	require.Equal(t, 2, other)
	require.Equal(t, 1, l.Timers())
}

func TestRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameRate = MaxFrameRate
	l := New(&cfg)
	a := &fakeAnim{surf: &scene.Viewport{Width: 1, Height: 1}}
	l.Add(a)

	frames := 0
	errStop := errors.New("stop")
	err := l.Run(context.Background(), func(time.Duration) error {
		if frames++; frames == 3 {
			return errStop
		}
		return nil
	})
	require.ErrorIs(t, err, errStop)
	require.Equal(t, 3, a.ticks)

	a.surf.Hidden = true
	require.NoError(t, l.Run(context.Background(), nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l.Add(&fakeAnim{surf: &scene.Viewport{Width: 1, Height: 1}})
	require.ErrorIs(t, l.Run(ctx, nil), context.Canceled)
}
