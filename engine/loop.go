// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"context"
	"time"

	"github.com/plan-systems/klog"

	"github.com/gviegas/backdrop/scene"
)

// Animator is something the loop updates every frame.
type Animator interface {
	// Tick advances the animation by dt.
	Tick(dt time.Duration)

	// Surface returns the surface the animator
	// draws into. The loop stops updating the
	// animator once the surface is nil or no
	// longer visible.
	Surface() scene.Surface

	// Close releases the animator's resources,
	// including any timers it registered. The
	// loop calls it when the surface goes away.
	// It must be idempotent.
	Close()
}

// Animation identifies an Animator in a Loop.
type Animation int

// timerID identifies a Timer in a Loop.
type timerID int

// Timer is a periodic callback created by Loop.Every.
type Timer struct {
	loop    *Loop
	id      timerID
	every   time.Duration
	next    time.Duration
	f       func()
	stopped bool
}

// Stop cancels t. It is idempotent.
func (t *Timer) Stop() {
	if t.stopped {
		return
	}
	t.stopped = true
	if !t.loop.stepping {
		t.loop.timers.del(t.id)
	}
}

// Loop drives animators and timers from a single
// goroutine. None of its methods are safe for
// concurrent use; timer callbacks and animators run
// on the goroutine that calls Step or Run.
type Loop struct {
	cfg      Config
	anims    registry[Animation, Animator]
	timers   registry[timerID, *Timer]
	clock    time.Duration
	stepping bool
}

// New creates a new loop.
// If cfg is nil, DefaultConfig is used.
func New(cfg *Config) *Loop {
	l := &Loop{cfg: DefaultConfig()}
	if cfg != nil {
		l.cfg = *cfg
	}
	if l.cfg.MaxDelta <= 0 {
		l.cfg.MaxDelta = dflMaxDelta
	}
	return l
}

// Add adds a to the loop.
func (l *Loop) Add(a Animator) Animation {
	id := l.anims.add(a)
	klog.V(2).Infof("engine: added animation %d", id)
	return id
}

// Remove removes the animation identified by id.
// It does nothing if id is not in the loop.
// The animator is not closed.
func (l *Loop) Remove(id Animation) {
	if l.anims.has(id) {
		l.anims.del(id)
	}
}

// Len returns the number of animators in the loop.
func (l *Loop) Len() int { return l.anims.len() }

// Timers returns the number of active timers.
func (l *Loop) Timers() int { return l.timers.len() }

// Clock returns the sum of the deltas given to Step.
func (l *Loop) Clock() time.Duration { return l.clock }

// Every implements scene.Scheduler.
// f is first called once d has elapsed. Non-positive
// values of d are treated as one frame interval.
// Timers are driven by elapsed loop time rather than
// by frame count, and fire at most once per Step.
func (l *Loop) Every(d time.Duration, f func()) scene.Timer {
	if d <= 0 {
		d = l.cfg.FrameInterval()
	}
	t := &Timer{
		loop:  l,
		every: d,
		next:  l.clock + d,
		f:     f,
	}
	t.id = l.timers.add(t)
	return t
}

// Step advances the loop by dt.
// It first runs the timers that are due and then ticks
// every animator whose surface is still visible.
// Animators whose surfaces are hidden are closed and
// removed.
// It returns the number of animators left.
func (l *Loop) Step(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	} else if dt > l.cfg.MaxDelta {
		dt = l.cfg.MaxDelta
	}
	l.clock += dt

	l.stepping = true
	ts := l.timers.all()
	for i := len(ts) - 1; i >= 0; i-- {
		t := ts[i].val
		if t.stopped || l.clock < t.next {
			continue
		}
		t.f()
		if t.next += t.every; t.next <= l.clock {
			t.next = l.clock + t.every
		}
	}
	l.stepping = false
	for i := l.timers.len() - 1; i >= 0; i-- {
		if e := l.timers.all()[i]; e.val.stopped {
			l.timers.del(timerID(e.key))
		}
	}

	as := l.anims.all()
	for i := len(as) - 1; i >= 0; i-- {
		a := as[i].val
		if s := a.Surface(); s == nil || !s.Visible() {
			klog.V(1).Infof("engine: surface of animation %d is gone, stopping it", as[i].key)
			l.anims.del(Animation(as[i].key))
			a.Close()
			as = l.anims.all()
			continue
		}
		a.Tick(dt)
	}
	return l.anims.len()
}

// Run calls Step once per frame interval until ctx is
// done, present returns an error or no animators are
// left. present is called after every Step with the
// delta of that step; it may be nil.
// Run returns nil when the loop runs out of animators.
func (l *Loop) Run(ctx context.Context, present func(dt time.Duration) error) error {
	ticker := time.NewTicker(l.cfg.FrameInterval())
	defer ticker.Stop()
	last := time.Now()
	klog.V(1).Infof("engine: running at %d fps with %d animation(s)", l.cfg.FrameRate, l.Len())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if l.Step(dt) == 0 {
				klog.V(1).Info("engine: no animations left")
				return nil
			}
			if present != nil {
				if err := present(dt); err != nil {
					return err
				}
			}
		}
	}
}
