// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"time"
)

// Lifecycle tracks whether a scene has been initialized.
// A bootstrap creates one Lifecycle per scene and hands
// it to whatever needs to query or reset it.
// The zero value is an uninitialized lifecycle.
type Lifecycle struct {
	initialized bool
}

// Begin marks lc as initialized.
// It returns false if lc was already initialized, in
// which case the caller must not initialize again.
func (lc *Lifecycle) Begin() bool {
	if lc.initialized {
		return false
	}
	lc.initialized = true
	return true
}

// Initialized returns whether Begin succeeded and
// Reset was not called since.
func (lc *Lifecycle) Initialized() bool { return lc.initialized }

// Reset marks lc as uninitialized.
func (lc *Lifecycle) Reset() { lc.initialized = false }

// Surface is the target into which a scene draws.
type Surface interface {
	// Size returns the size of the surface in pixels.
	Size() (width, height int)

	// Visible returns whether the surface is still
	// shown. Animation stops once it returns false.
	Visible() bool
}

// Viewport is a Surface whose size and visibility are
// set explicitly.
type Viewport struct {
	Width, Height int
	Hidden        bool
}

// Size implements Surface.
func (v *Viewport) Size() (int, int) { return v.Width, v.Height }

// Visible implements Surface.
func (v *Viewport) Visible() bool { return !v.Hidden }

// Timer is a periodic callback created by a Scheduler.
type Timer interface {
	// Stop cancels the timer. It is idempotent.
	Stop()
}

// Scheduler runs periodic callbacks on the same
// goroutine that animates scenes.
type Scheduler interface {
	// Every calls f every d until the returned
	// Timer is stopped.
	Every(d time.Duration, f func()) Timer
}

// Rand is the source of randomness used by scenes.
// *math/rand.Rand satisfies it.
type Rand interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// Shuffle pseudo-randomizes the order of n elements
// using r. swap swaps the elements with indices i and j.
func Shuffle(r Rand, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, r.Intn(i+1))
	}
}

// FrameInterval is the duration of a reference frame.
// Per-frame increments of the scenes are expressed in
// reference frames.
const FrameInterval = time.Second / 60

// Frames converts dt into a number of reference frames.
// Non-positive durations count as a single frame.
func Frames(dt time.Duration) float32 {
	if dt <= 0 {
		return 1
	}
	return float32(dt) / float32(FrameInterval)
}
